package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	httpServer *http.Server
}

const (
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// New builds a server for port ("8080" or ":8080") serving handler.
func New(port string, handler http.Handler) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              normalizeAddr(port),
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}}
}

func normalizeAddr(port string) string {
	if port == "" {
		return ":8080"
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Addr is the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Run listens and serves until Shutdown. A graceful shutdown returns nil.
func (s *Server) Run() error {
	return ignoreClosed(s.httpServer.ListenAndServe())
}

// Serve is Run on an existing listener.
func (s *Server) Serve(l net.Listener) error {
	return ignoreClosed(s.httpServer.Serve(l))
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
