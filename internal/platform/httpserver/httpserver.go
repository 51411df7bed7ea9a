// Package httpserver constructs the process's http.Server. Per-request
// deadlines live in middleware; the timeouts here only guard the connection
// itself against slow or idle clients.
package httpserver

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
)

// New returns a server for the given address. WriteTimeout stays unset so a
// long report listing is cut off by the request-level deadline, not the
// connection.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
}
