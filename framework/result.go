package framework

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

func (r Results) SkippedCount() int {
	n := 0
	for _, t := range r.Tests {
		if t.Skipped {
			n++
		}
	}
	return n
}

// FailedIDs returns the identifiers of all failed tests, in the order they ran.
func (r Results) FailedIDs() []TestID {
	ret := make([]TestID, 0, len(r.Failures))
	for _, f := range r.Failures {
		ret = append(ret, f.TestID)
	}
	return ret
}

type TestID struct {
	Path []string
}

// Plus returns the identifier of a subtest of this test.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

// Pattern returns a regex for -run that selects this test, along with anything run inside it.
func (t TestID) Pattern() string {
	return "^" + regexp.QuoteMeta(t.String()) + "$"
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// PrintResults writes a summary of a test run to standard output.
func PrintResults(results Results) {
	skipped := results.SkippedCount()
	passed := len(results.Tests) - len(results.Failures) - skipped
	if results.OK() {
		color.Green("All tests passed (%d passed, %d skipped)", passed, skipped)
		return
	}
	color.Red("FAILED TESTS (%d):", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Printf("  * %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("      %s\n", line)
			}
		}
	}
	fmt.Printf("%d passed, %d failed, %d skipped\n", passed, len(results.Failures), skipped)
}
