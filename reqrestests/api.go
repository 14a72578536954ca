package reqrestests

import (
	"context"
	"encoding/json"
	"time"

	"github.com/apicheck/reqres-contract-tests/client"
	"github.com/apicheck/reqres-contract-tests/expect"
	"github.com/apicheck/reqres-contract-tests/framework"

	"github.com/stretchr/testify/require"
)

const defaultDelaySeconds = 3

// Options are the parameters of a test run that are not part of the client configuration.
type Options struct {
	// DelaySeconds is the delay requested from the API in the delayed response test. Zero means
	// the default of 3 seconds.
	DelaySeconds int
}

type environment struct {
	client  *client.Client
	options Options
}

// T represents a test or group of tests in the reqres suite.
//
// Like testing.T, it can be passed to the assert and require packages. Its request methods send
// through a client that writes every request and response to the test's debug output, so the
// exchange can be shown if the test fails.
type T struct {
	context *framework.Context
	env     *environment
	client  *client.Client
}

func newT(context *framework.Context, env *environment) *T {
	return &T{
		context: context,
		env:     env,
		client:  env.client.WithLogger(context.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a test, which can be excluded by the -run and -skip filters.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newT(c, t.env))
	})
}

// Group runs a group of tests. The group is always entered, and each test inside it is
// filtered separately.
func (t *T) Group(name string, action func(*T)) {
	t.context.RunGroup(name, func(c *framework.Context) {
		action(newT(c, t.env))
	})
}

// Debug adds a line to the test's debug output.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) delay() time.Duration {
	if t.env.options.DelaySeconds > 0 {
		return time.Duration(t.env.options.DelaySeconds) * time.Second
	}
	return defaultDelaySeconds * time.Second
}

// Request sends a request and returns the response. If no response was received at all, the
// test fails and exits.
func (t *T) Request(method, path string, body interface{}) *client.Response {
	resp, err := t.client.Do(context.Background(), method, path, body)
	require.NoError(t, err)
	return resp
}

// RequireResponse checks all of the expectations against the response. If any of them do not
// hold, each failure is reported and the test exits.
func (t *T) RequireResponse(resp *client.Response, expectations ...expect.Expectation) {
	if err := expect.Verify(resp, expectations...); err != nil {
		t.Errorf("%s %s: %s", resp.Method, resp.URL, err)
		t.FailNow()
	}
}

// RequireRecord decodes the response body into target. If that fails, the test fails and exits.
func (t *T) RequireRecord(resp *client.Response, target json.Unmarshaler) {
	if err := target.UnmarshalJSON(resp.Body); err != nil {
		t.Errorf("%s %s: %s", resp.Method, resp.URL, err)
		t.FailNow()
	}
}
