package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

type Config struct {
	Port              int
	Timeout           time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration
}

// New wires handler into an http.Server whose requests inherit ctx. Handlers
// get Timeout on top of the write timeout.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	h := handler
	if config.Timeout > 0 {
		h = http.TimeoutHandler(handler, config.Timeout, "request timed out")
	}
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: h,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadTimeout:       config.ReadTimeout,
		WriteTimeout:      config.Timeout + config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}
}
