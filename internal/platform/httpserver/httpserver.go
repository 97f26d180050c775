package httpserver

import (
	"net/http"
	"time"

	"journal-service/internal/platform/config"
)

// New builds the journal API server. Zero timeouts in cfg fall back to
// defaults that outlast a slow Crossref round trip.
func New(cfg config.Server, handler http.Handler) *http.Server {
	read := cfg.ReadTimeout
	if read <= 0 {
		read = 30 * time.Second
	}
	write := cfg.WriteTimeout
	if write <= 0 {
		write = 60 * time.Second
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       read,
		WriteTimeout:      write,
		IdleTimeout:       2 * write,
		MaxHeaderBytes:    1 << 20,
	}
}
