package client

import (
	"net/http"
	"time"

	"github.com/apicheck/reqres-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is a completed HTTP exchange with the body already read.
type Response struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
	// Elapsed is the time from sending the request until the whole body was read.
	Elapsed time.Duration

	parsed   bool
	value    ldvalue.Value
	parseErr error
}

func (r *Response) BodyText() string {
	return string(r.Body)
}

func (r *Response) ElapsedMillis() int64 {
	return r.Elapsed.Milliseconds()
}

// JSON parses the body, returning a *servicedef.ParseError if it is not valid JSON. The result
// is cached.
func (r *Response) JSON() (ldvalue.Value, error) {
	if !r.parsed {
		r.value, r.parseErr = servicedef.ParseValue(r.Body)
		r.parsed = true
	}
	return r.value, r.parseErr
}
