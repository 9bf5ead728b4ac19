package app

import (
	"net"
	"net/http"
	"time"
)

// newFetchHTTPClient returns an HTTP client shared by all fetches. A query
// fans out to at most one connection per candidate, so the pool is sized for
// many hosts rather than many connections per host. Per-request deadlines come
// from the fetcher; the client timeout is only a backstop.
func newFetchHTTPClient(fetchTimeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   fetchTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   fetchTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   2 * fetchTimeout,
	}
}
