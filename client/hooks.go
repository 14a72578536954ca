package client

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries a random identifier for each request, so that a request seen in the
// debug output can be matched with the server's logs.
const RequestIDHeader = "X-Request-Id"

// RequestHook can modify a request before it is sent.
type RequestHook func(*http.Request)

// UserAgent sets the User-Agent header to "app/version".
func UserAgent(app, version string) RequestHook {
	userAgent := fmt.Sprintf("%s/%s", app, version)
	return func(req *http.Request) {
		req.Header.Set("User-Agent", userAgent)
	}
}

// APIKey sends an API key in the given header. An empty key disables the hook.
func APIKey(header, key string) RequestHook {
	return func(req *http.Request) {
		if key != "" {
			req.Header.Set(header, key)
		}
	}
}

// RequestID gives every request a new random X-Request-Id.
func RequestID() RequestHook {
	return func(req *http.Request) {
		req.Header.Set(RequestIDHeader, uuid.New().String())
	}
}
