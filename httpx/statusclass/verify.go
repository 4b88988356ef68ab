package statusclass

import "fmt"

// Mismatch records a strategy disagreeing with the branch chain.
type Mismatch struct {
	Code     int
	Strategy string
	Got      Class
	Want     Class
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s(%d) = %s, want %s", m.Strategy, m.Code, m.Got, m.Want)
}

// Disagreements returns every strategy whose result for code differs from
// ClassOfBranch. The result is empty when all strategies agree.
func Disagreements(code int) []Mismatch {
	want := ClassOfBranch(code)
	var out []Mismatch
	for _, s := range Strategies() {
		if got := s.Classify(code); got != want {
			out = append(out, Mismatch{Code: code, Strategy: s.Name, Got: got, Want: want})
		}
	}
	return out
}
