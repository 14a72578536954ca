package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apicheck/reqres-contract-tests/framework"
)

const jsonContentType = "application/json; charset=utf-8"

var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Config contains the parameters for NewClient.
type Config struct {
	// BaseURL is the absolute http or https URL that request paths are resolved against.
	BaseURL string
	// HTTPClient is used for all requests. If nil, a client with a pooled transport is created.
	HTTPClient *http.Client
	// RequestHooks are called in order on every request just before it is sent.
	RequestHooks []RequestHook
}

// Client sends JSON requests to the API under test and reads back the complete response. It
// holds no per-request state, so one instance can be shared by all scenarios.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	hooks      []RequestHook
	logger     framework.Logger
}

// NewClient validates the configuration and creates a Client.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	u, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base URL must be an absolute http or https URL, got %q", config.BaseURL)
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = DefaultPooledHTTPClient()
	}
	return &Client{
		baseURL:    u,
		httpClient: httpClient,
		hooks:      append([]RequestHook(nil), config.RequestHooks...),
		logger:     framework.NullLogger(),
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// WithLogger returns a copy of the client that describes every request and response to the
// specified logger.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	if logger == nil {
		logger = framework.NullLogger()
	}
	c1 := *c
	c1.logger = logger
	return &c1
}

// URL resolves a request path against the base URL. A path prefix in the base URL is kept, and
// so is a query string in the path.
func (c *Client) URL(path string) string {
	query := ""
	if i := strings.Index(path, "?"); i >= 0 {
		path, query = path[:i], path[i:]
	}
	return strings.TrimSuffix(c.baseURL.Scheme+"://"+c.baseURL.Host+c.baseURL.Path, "/") +
		"/" + strings.TrimPrefix(path, "/") + query
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do sends one request and waits for the whole response body. If body is not nil, it is
// encoded as JSON. A non-2xx status is not an error; only a failure to get a response is, and
// that is reported as a *ConnectionError.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	if !supportedMethods[method] {
		return nil, fmt.Errorf("unsupported HTTP method %q", method)
	}
	target := c.URL(path)

	var bodyData []byte
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("could not encode request body for %s %s: %w", method, target, err)
		}
		bodyData = data
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("could not create request for %s %s: %w", method, target, err)
	}
	req.Header.Set("Accept", "application/json")
	if bodyData != nil {
		req.Header.Set("Content-Type", jsonContentType)
	}
	for _, hook := range c.hooks {
		hook(req)
	}

	c.logger.Printf(">> %s %s", method, target)
	if id := req.Header.Get(RequestIDHeader); id != "" {
		c.logger.Printf(">> %s: %s", RequestIDHeader, id)
	}
	if bodyData != nil {
		c.logger.Printf(">> %s", string(bodyData))
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("<< request failed: %s", err)
		return nil, &ConnectionError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()
	respData, err := ioutil.ReadAll(resp.Body)
	elapsed := time.Since(startTime)
	if err != nil {
		c.logger.Printf("<< reading response failed: %s", err)
		return nil, &ConnectionError{Method: method, URL: target, Err: err}
	}

	c.logger.Printf("<< %d (%dms)", resp.StatusCode, elapsed.Milliseconds())
	if len(respData) > 0 {
		c.logger.Printf("<< %s", string(respData))
	}

	return &Response{
		Method:     method,
		URL:        target,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respData,
		Elapsed:    elapsed,
	}, nil
}
