package app

import (
	"net/http"
	"reflect"
	"testing"
	"time"
)

func TestNewFetchHTTPClient_Config(t *testing.T) {
	c := newFetchHTTPClient(5 * time.Second)
	if c.Timeout != 10*time.Second {
		t.Fatalf("expected backstop timeout of 10s, got %v", c.Timeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("expected http.Transport")
	}
	if tr.TLSHandshakeTimeout != 5*time.Second {
		t.Fatalf("expected TLS handshake timeout to follow fetch timeout, got %v", tr.TLSHandshakeTimeout)
	}
	// Ensure we didn't return the default client's transport
	if reflect.ValueOf(http.DefaultTransport).Pointer() == reflect.ValueOf(tr).Pointer() {
		t.Fatalf("transport should not be default")
	}
}
