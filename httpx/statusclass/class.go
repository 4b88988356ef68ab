// Package statusclass maps HTTP status codes to their status class.
//
// Every function in this package is total: any int, including negative
// values and codes far outside the protocol range, resolves to exactly one
// Class, with Unknown as the fallback. Nothing here allocates, locks or
// keeps state, so all of it is safe for concurrent use.
package statusclass

// Class is the class of an HTTP status code. The zero value is Unknown.
type Class uint8

const (
	Unknown       Class = iota // code < 100 or code >= 600
	Informational              // 1xx
	Success                    // 2xx
	Redirection                // 3xx
	ClientError                // 4xx
	ServerError                // 5xx
)

// MinCode and MaxCode delimit the half-open range [MinCode, MaxCode) covered
// by the bounded classes.
const (
	MinCode = 100
	MaxCode = 600
)

// Classes returns the bounded classes in ascending interval order.
func Classes() []Class {
	return []Class{Informational, Success, Redirection, ClientError, ServerError}
}

// All returns every class, Unknown first.
func All() []Class {
	return []Class{Unknown, Informational, Success, Redirection, ClientError, ServerError}
}

// Bounds returns the half-open interval [min, max) of c. ok is false for
// Unknown and for values outside the enumeration.
func (c Class) Bounds() (min, max int, ok bool) {
	switch c {
	case Informational:
		return 100, 200, true
	case Success:
		return 200, 300, true
	case Redirection:
		return 300, 400, true
	case ClientError:
		return 400, 500, true
	case ServerError:
		return 500, 600, true
	default:
		return 0, 0, false
	}
}

// Contains reports whether code falls into c.
func (c Class) Contains(code int) bool {
	if c == Unknown {
		return code < MinCode || code >= MaxCode
	}
	min, max, ok := c.Bounds()
	return ok && code >= min && code < max
}

// Label returns the default reason phrase used when a response carries no
// explicit reason text.
func (c Class) Label() string {
	switch c {
	case Informational:
		return "Informational"
	case Success:
		return "Success"
	case Redirection:
		return "Redirection"
	case ClientError:
		return "Client Error"
	case ServerError:
		return "Server Error"
	default:
		return "Unknown Status"
	}
}

func (c Class) String() string { return c.Label() }

// Valid reports whether c is one of the six defined classes.
func (c Class) Valid() bool { return c <= ServerError }

// IsError reports whether c is ClientError or ServerError.
func (c Class) IsError() bool { return c == ClientError || c == ServerError }

// ParseLabel resolves a default reason phrase back to its class.
func ParseLabel(label string) (Class, bool) {
	for _, c := range All() {
		if c.Label() == label {
			return c, true
		}
	}
	return Unknown, false
}
