package server

import (
	"context"
	"net/http"
	"time"

	"github.com/oggyb/sms-gateway-connector/internal/middleware"
	routes "github.com/oggyb/sms-gateway-connector/internal/router"
)

// Server owns the underlying http.Server instance.
type Server struct {
	http *http.Server
}

// New creates an HTTP server bound to addr. writeTimeout must leave room
// for POST /messages to wait on the gateway.
func New(addr string, deps routes.AppDeps, writeTimeout time.Duration) *Server {
	mux := http.NewServeMux()
	routes.Register(mux, deps)

	root := Chain(
		mux,
		middleware.RequestLogger(),
		middleware.Recoverer(),
	)

	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           root,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      writeTimeout,
		},
	}
}

// Start runs the HTTP server and blocks until ListenAndServe returns.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight
// requests to complete until the given context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
