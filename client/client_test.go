package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/apicheck/reqres-contract-tests/framework"
	"github.com/apicheck/reqres-contract-tests/servicedef"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, hooks ...RequestHook) *Client {
	c, err := NewClient(Config{BaseURL: baseURL, RequestHooks: hooks})
	require.NoError(t, err)
	return c
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	for _, bad := range []string{"", "reqres.in", "/api", "ftp://reqres.in/", "http://"} {
		t.Run(bad, func(t *testing.T) {
			_, err := NewClient(Config{BaseURL: bad})
			assert.Error(t, err)
		})
	}
	c, err := NewClient(Config{BaseURL: "https://reqres.in/"})
	require.NoError(t, err)
	assert.Equal(t, "https://reqres.in/", c.BaseURL())
}

func TestURLJoining(t *testing.T) {
	c := newTestClient(t, "https://reqres.in/")
	assert.Equal(t, "https://reqres.in/api/users", c.URL("api/users"))
	assert.Equal(t, "https://reqres.in/api/users", c.URL("/api/users"))
	assert.Equal(t, "https://reqres.in/api/users?page=2", c.URL("api/users?page=2"))

	prefixed := newTestClient(t, "http://localhost:8080/mock")
	assert.Equal(t, "http://localhost:8080/mock/api/users/2", prefixed.URL("/api/users/2"))
}

func TestGetSendsNoBody(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(200, nil, []byte(`{"page":2,"total":12}`)))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := newTestClient(t, server.URL)
		resp, err := c.Get(context.Background(), "api/users?page=2")
		require.NoError(t, err)

		r := <-requestsCh
		assert.Equal(t, "GET", r.Request.Method)
		assert.Equal(t, "/api/users", r.Request.URL.Path)
		assert.Equal(t, "page=2", r.Request.URL.RawQuery)
		assert.Equal(t, "application/json", r.Request.Header.Get("Accept"))
		assert.Equal(t, "", r.Request.Header.Get("Content-Type"))
		assert.Len(t, r.Body, 0)

		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "GET", resp.Method)
		assert.Equal(t, server.URL+"/api/users?page=2", resp.URL)
		assert.Equal(t, `{"page":2,"total":12}`, resp.BodyText())
	})
}

func TestPostSendsJSONBody(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(
		httphelpers.HandlerWithResponse(201, nil, []byte(`{"name":"Evgeniy","job":"QA","id":"1"}`)))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := newTestClient(t, server.URL)
		user := servicedef.User{Name: ldvalue.NewOptionalString("Evgeniy"), Job: ldvalue.NewOptionalString("QA")}
		resp, err := c.Post(context.Background(), "/api/users", user)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		r := <-requestsCh
		assert.Equal(t, "POST", r.Request.Method)
		assert.Equal(t, "application/json; charset=utf-8", r.Request.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"name":"Evgeniy","job":"QA"}`, string(r.Body))
	})
}

func TestEachMethodIsSentAsIs(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(204))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := newTestClient(t, server.URL)
		ctx := context.Background()
		body := servicedef.User{Name: ldvalue.NewOptionalString("Mike")}

		_, err := c.Put(ctx, "/api/users/1", body)
		require.NoError(t, err)
		_, err = c.Patch(ctx, "/api/users/1", body)
		require.NoError(t, err)
		resp, err := c.Delete(ctx, "/api/users/1")
		require.NoError(t, err)

		for _, method := range []string{"PUT", "PATCH", "DELETE"} {
			r := <-requestsCh
			assert.Equal(t, method, r.Request.Method)
			assert.Equal(t, "/api/users/1", r.Request.URL.Path)
		}
		assert.Equal(t, 204, resp.StatusCode)
		assert.Equal(t, "", resp.BodyText())
	})
}

func TestUnsupportedMethodFailsWithoutSending(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := newTestClient(t, server.URL)
		_, err := c.Do(context.Background(), "OPTIONS", "/api/users", nil)
		require.Error(t, err)
		assert.Len(t, requestsCh, 0)
	})
}

func TestNonSuccessStatusIsNotAnError(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithResponse(404, nil, []byte(`{}`)), func(server *httptest.Server) {
		resp, err := newTestClient(t, server.URL).Get(context.Background(), "/api/users/23")
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		v, err := resp.JSON()
		require.NoError(t, err)
		assert.Equal(t, 0, v.Count())
	})
}

func TestMalformedBodyGivesParseError(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithResponse(200, nil, []byte(`<html>`)), func(server *httptest.Server) {
		resp, err := newTestClient(t, server.URL).Get(context.Background(), "/api/users")
		require.NoError(t, err)
		_, err = resp.JSON()
		var pe *servicedef.ParseError
		assert.True(t, errors.As(err, &pe))
	})
}

func TestUnreachableHostGivesConnectionError(t *testing.T) {
	var closedURL string
	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		closedURL = server.URL
	})
	_, err := newTestClient(t, closedURL).Get(context.Background(), "/api/users")
	require.Error(t, err)
	var ce *ConnectionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "GET", ce.Method)
	assert.Equal(t, closedURL+"/api/users", ce.URL)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestElapsedIncludesServerDelay(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(150 * time.Millisecond)
		w.WriteHeader(200)
	})
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		resp, err := newTestClient(t, server.URL).Get(context.Background(), "/api/users?delay=1")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, resp.ElapsedMillis(), int64(150))
	})
}

func TestHooksSetHeaders(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := newTestClient(t, server.URL,
			UserAgent("reqres-contract-tests", "1.0.0"),
			APIKey("x-api-key", "reqres-free-v1"),
			RequestID(),
		)
		_, err := c.Get(context.Background(), "/api/users")
		require.NoError(t, err)
		_, err = c.Get(context.Background(), "/api/users")
		require.NoError(t, err)

		r1, r2 := <-requestsCh, <-requestsCh
		assert.Equal(t, "reqres-contract-tests/1.0.0", r1.Request.Header.Get("User-Agent"))
		assert.Equal(t, "reqres-free-v1", r1.Request.Header.Get("x-api-key"))
		id1, err := uuid.Parse(r1.Request.Header.Get(RequestIDHeader))
		require.NoError(t, err)
		id2, err := uuid.Parse(r2.Request.Header.Get(RequestIDHeader))
		require.NoError(t, err)
		assert.NotEqual(t, id1, id2)
	})
}

func TestEmptyAPIKeyIsNotSent(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(200))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		_, err := newTestClient(t, server.URL, APIKey("x-api-key", "")).Get(context.Background(), "/")
		require.NoError(t, err)
		r := <-requestsCh
		_, present := r.Request.Header["X-Api-Key"]
		assert.False(t, present)
	})
}

func TestWithLoggerDescribesExchange(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithResponse(201, nil, []byte(`{"id":"7"}`)), func(server *httptest.Server) {
		base := newTestClient(t, server.URL)
		logger := &framework.CapturingLogger{}
		c := base.WithLogger(logger)
		_, err := c.Post(context.Background(), "/api/users", servicedef.User{Job: ldvalue.NewOptionalString("QA")})
		require.NoError(t, err)

		var messages []string
		for _, m := range logger.Output() {
			messages = append(messages, m.Message)
		}
		all := strings.Join(messages, "\n")
		assert.Contains(t, all, ">> POST "+server.URL+"/api/users")
		assert.Contains(t, all, `>> {"job":"QA"}`)
		assert.Contains(t, all, "<< 201")
		assert.Contains(t, all, `<< {"id":"7"}`)

		_, err = base.Get(context.Background(), "/api/users")
		require.NoError(t, err)
		assert.Len(t, logger.Output(), len(messages))
	})
}
