package expect

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/apicheck/reqres-contract-tests/client"
	"github.com/apicheck/reqres-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const missing = "<missing>"

// Expectation is one condition on a response.
type Expectation interface {
	Description() string
	// Check returns nil if the condition holds, a Mismatch if it does not, or some other error
	// if it could not be evaluated.
	Check(resp *client.Response) error
}

type composite interface {
	parts() []Expectation
}

type statusExpectation struct {
	status int
}

// Status expects the given HTTP status code.
func Status(status int) Expectation {
	return statusExpectation{status}
}

func (e statusExpectation) Description() string { return "status" }

func (e statusExpectation) Check(resp *client.Response) error {
	if resp.StatusCode == e.status {
		return nil
	}
	return Mismatch{Expectation: e.Description(), Expected: strconv.Itoa(e.status), Actual: strconv.Itoa(resp.StatusCode)}
}

type valueExpectation struct {
	path     string
	expected ldvalue.Value
}

// Value expects the JSON value at path to equal expected, which can be any value that
// ldvalue.CopyArbitraryValue accepts. Numbers are compared by value, so 2001 matches 2001.0.
func Value(path string, expected interface{}) Expectation {
	return ValueOf(path, ldvalue.CopyArbitraryValue(expected))
}

// ValueOf is like Value but takes an ldvalue.Value.
func ValueOf(path string, expected ldvalue.Value) Expectation {
	return valueExpectation{path: path, expected: expected}
}

func (e valueExpectation) Description() string { return "value at " + displayPath(e.path) }

func (e valueExpectation) Check(resp *client.Response) error {
	doc, err := resp.JSON()
	if err != nil {
		return err
	}
	actual, found := Lookup(doc, e.path)
	if found && actual.Equal(e.expected) {
		return nil
	}
	m := Mismatch{Expectation: e.Description(), Expected: e.expected.JSONString(), Actual: missing}
	if found {
		m.Actual = actual.JSONString()
	}
	return m
}

type keyExpectation struct {
	path string
}

// HasKey expects a top-level key, or a nested one given as a dot-separated path, to be present.
// Its value is not checked and may be null.
func HasKey(path string) Expectation {
	return keyExpectation{path}
}

func (e keyExpectation) Description() string { return "key " + displayPath(e.path) }

func (e keyExpectation) Check(resp *client.Response) error {
	doc, err := resp.JSON()
	if err != nil {
		return err
	}
	if _, found := Lookup(doc, e.path); found {
		return nil
	}
	return Mismatch{Expectation: e.Description(), Expected: "present", Actual: missing}
}

type noKeyExpectation struct {
	path string
}

// NoKey expects a key, or a dot-separated path, to be absent.
func NoKey(path string) Expectation {
	return noKeyExpectation{path}
}

func (e noKeyExpectation) Description() string { return "no key " + displayPath(e.path) }

func (e noKeyExpectation) Check(resp *client.Response) error {
	doc, err := resp.JSON()
	if err != nil {
		return err
	}
	if actual, found := Lookup(doc, e.path); found {
		return Mismatch{Expectation: e.Description(), Expected: "absent", Actual: actual.JSONString()}
	}
	return nil
}

type bodyExpectation struct {
	text string
}

// Body expects the raw body to be exactly text. Body("") means an empty body.
func Body(text string) Expectation {
	return bodyExpectation{text}
}

func (e bodyExpectation) Description() string { return "body" }

func (e bodyExpectation) Check(resp *client.Response) error {
	if resp.BodyText() == e.text {
		return nil
	}
	return Mismatch{Expectation: e.Description(), Expected: strconv.Quote(e.text), Actual: strconv.Quote(resp.BodyText())}
}

type elapsedExpectation struct {
	min time.Duration
}

// ElapsedAtLeast expects the exchange to have taken at least d.
func ElapsedAtLeast(d time.Duration) Expectation {
	return elapsedExpectation{d}
}

func (e elapsedExpectation) Description() string { return "elapsed time" }

func (e elapsedExpectation) Check(resp *client.Response) error {
	if resp.Elapsed >= e.min {
		return nil
	}
	return Mismatch{
		Expectation: e.Description(),
		Expected:    fmt.Sprintf(">= %dms", e.min.Milliseconds()),
		Actual:      fmt.Sprintf("%dms", resp.ElapsedMillis()),
	}
}

type allExpectation struct {
	description  string
	expectations []Expectation
}

// All groups expectations under one name. Verify reports each of them separately.
func All(description string, expectations ...Expectation) Expectation {
	return allExpectation{description: description, expectations: expectations}
}

func (e allExpectation) Description() string { return e.description }

func (e allExpectation) parts() []Expectation { return e.expectations }

func (e allExpectation) Check(resp *client.Response) error {
	return Verify(resp, e.expectations...)
}

// Record expects every defined field of rec to appear, with the same value, in the response
// object found at prefix. Fields of rec that are unset are not checked.
func Record(prefix string, rec servicedef.Record) Expectation {
	var parts []Expectation
	for _, f := range servicedef.DefinedFields(rec, prefix) {
		parts = append(parts, ValueOf(f.Path, f.Value))
	}
	return All(rec.RecordSchema().Name+" at "+displayPath(prefix), parts...)
}

// Verify checks all the expectations against the response, and returns nil if they all hold or
// an *AssertionError listing every one that did not. If the body could not be parsed, that is
// reported once rather than for each expectation that needed it.
func Verify(resp *client.Response, expectations ...Expectation) error {
	all := flatten(expectations)
	var failures []error
	parseFailed := false
	for _, e := range all {
		err := e.Check(resp)
		if err == nil {
			continue
		}
		var pe *servicedef.ParseError
		if errors.As(err, &pe) {
			if parseFailed {
				continue
			}
			parseFailed = true
		}
		failures = append(failures, err)
	}
	if len(failures) == 0 {
		return nil
	}
	return &AssertionError{Checked: len(all), Failures: failures}
}

func flatten(expectations []Expectation) []Expectation {
	var ret []Expectation
	for _, e := range expectations {
		if c, ok := e.(composite); ok {
			ret = append(ret, flatten(c.parts())...)
		} else {
			ret = append(ret, e)
		}
	}
	return ret
}

func displayPath(path string) string {
	if path == "" {
		return "$"
	}
	return path
}
