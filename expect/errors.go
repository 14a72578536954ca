package expect

import (
	"fmt"
	"strings"
)

// Mismatch is one expectation that did not hold.
type Mismatch struct {
	Expectation string
	Expected    string
	Actual      string
}

func (m Mismatch) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", m.Expectation, m.Expected, m.Actual)
}

// AssertionError reports every failed expectation for one response, in the order they were
// declared.
type AssertionError struct {
	Checked  int
	Failures []error
}

func (e *AssertionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d expectations failed", len(e.Failures), e.Checked)
	for _, f := range e.Failures {
		b.WriteString("\n- ")
		b.WriteString(f.Error())
	}
	return b.String()
}

// Mismatches returns only the failures that were value comparisons, leaving out errors such as
// an unparseable body.
func (e *AssertionError) Mismatches() []Mismatch {
	var ret []Mismatch
	for _, f := range e.Failures {
		if m, ok := f.(Mismatch); ok {
			ret = append(ret, m)
		}
	}
	return ret
}
