package statusclass

import "math"

// Strategy classifies a status code. All strategies in this package return
// identical results for every int.
type Strategy func(code int) Class

// NamedStrategy pairs a Strategy with a stable name for reporting.
type NamedStrategy struct {
	Name     string
	Classify Strategy
}

// Strategies lists the integer strategies in a fixed order.
func Strategies() []NamedStrategy {
	return []NamedStrategy{
		{Name: "branch", Classify: ClassOfBranch},
		{Name: "switch", Classify: ClassOfSwitch},
		{Name: "fastdiv", Classify: ClassOfFastDiv},
		{Name: "table", Classify: ClassOfTable},
	}
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (Strategy, bool) {
	for _, s := range Strategies() {
		if s.Name == name {
			return s.Classify, true
		}
	}
	return nil, false
}

// ClassOf returns the class of code.
func ClassOf(code int) Class { return ClassOfBranch(code) }

// ClassOfBranch tests each interval in ascending order.
func ClassOfBranch(code int) Class {
	if Informational.Contains(code) {
		return Informational
	}
	if Success.Contains(code) {
		return Success
	}
	if Redirection.Contains(code) {
		return Redirection
	}
	if ClientError.Contains(code) {
		return ClientError
	}
	if ServerError.Contains(code) {
		return ServerError
	}
	return Unknown
}

// ClassOfSwitch dispatches on code / 100. Negative codes are rejected up
// front so truncating division never decides the result.
func ClassOfSwitch(code int) Class {
	if code < 0 {
		return Unknown
	}
	return byHundreds(code / 100)
}

// ClassOfFastDiv dispatches on a multiply-shift quotient instead of a
// hardware division.
func ClassOfFastDiv(code int) Class { return defaultFastDiv.classify(code) }

// ClassOfTable indexes a six-entry table with the multiply-shift quotient.
func ClassOfTable(code int) Class {
	if code < MinCode || code >= MaxCode {
		return Unknown
	}
	return [...]Class{Unknown, Informational, Success, Redirection, ClientError, ServerError}[fastDiv100(uint32(code))]
}

func byHundreds(q int) Class {
	switch q {
	case 1:
		return Informational
	case 2:
		return Success
	case 3:
		return Redirection
	case 4:
		return ClientError
	case 5:
		return ServerError
	default:
		return Unknown
	}
}

// fastDivMagic is ceil(2^37 / 100). The rounding error is
// fastDivMagic*100 - 2^37 = 28, and the quotient stays exact while
// 28*n < 2^37, which covers every uint32.
const (
	fastDivMagic = 1374389535
	fastDivShift = 37
)

// fastDiv100 returns n / 100 for any uint32 n. The product is formed in 64
// bits; 2^32 * fastDivMagic stays below 2^63.
func fastDiv100(n uint32) uint32 {
	return uint32((uint64(n) * fastDivMagic) >> fastDivShift)
}

type fastDivResolver struct {
	div func(uint32) uint32
}

var defaultFastDiv = fastDivResolver{div: fastDiv100}

// classify guards the divider: it is only ever called with a code that fits
// in a uint32.
func (r fastDivResolver) classify(code int) Class {
	if code < 0 || int64(code) > math.MaxUint32 {
		return Unknown
	}
	return byHundreds(int(r.div(uint32(code))))
}
