package httpserver

import (
	"net/http"
	"time"
)

// New builds the civreg HTTP server. Every payload this API carries is a
// small JSON body, so the read and write timeouts are tight; slow-client
// protection matters more than streaming support here.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
