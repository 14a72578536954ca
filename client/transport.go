package client

import (
	"net"
	"net/http"
	"runtime"
	"time"
)

// DefaultPooledTransport returns a new http.Transport with the same defaults as
// http.DefaultTransport, but not shared with anything else in the process.
func DefaultPooledTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
	}
}

// DefaultPooledHTTPClient returns an http.Client using DefaultPooledTransport.
func DefaultPooledHTTPClient() *http.Client {
	return &http.Client{Transport: DefaultPooledTransport()}
}
