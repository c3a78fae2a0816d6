// Package http wires the Gin engine, middleware and handlers into the
// quoteboard HTTP server.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteboard/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteboard/internal/platform/config"
)

// Server owns the Gin engine and the net/http server that serves it.
type Server struct {
	engine   *gin.Engine
	srv      *http.Server
	cfg      *config.ServerConfig
	logger   *slog.Logger
	listener net.Listener
}

// New builds a server bound to cfg.Host:cfg.Port. Routes are registered on
// Engine before Start is called.
func New(cfg *config.ServerConfig, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(limitBody(cfg.MaxRequestSize))

	return &Server{
		engine: engine,
		cfg:    cfg,
		logger: logger,
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           engine,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}
}

// Engine returns the Gin engine for route registration.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the bound address once Start has succeeded, otherwise the
// configured one. With port 0 this is where the kernel-assigned port shows up.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.srv.Addr
}

// Start binds the listener synchronously, so a taken port is reported
// immediately, then serves in the background. The returned channel yields
// at most one serve error and is closed when serving stops.
func (s *Server) Start() (<-chan error, error) {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("binding %s: %w", s.srv.Addr, err)
	}

	s.listener = ln

	s.logger.Info("quoteboard listening",
		slog.String("addr", ln.Addr().String()),
		slog.Duration("read_timeout", s.cfg.ReadTimeout),
		slog.Duration("write_timeout", s.cfg.WriteTimeout),
		slog.Int64("max_request_size", s.cfg.MaxRequestSize),
	)

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)

		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serving http: %w", err)
		}
	}()

	return errCh, nil
}

// Shutdown stops accepting connections and drains in-flight requests until
// ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("draining http connections")

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	s.logger.Info("http server stopped")

	return nil
}

// limitBody caps request bodies at maxBytes. Requests that declare a larger
// Content-Length are refused before any handler runs; chunked bodies are cut
// off by http.MaxBytesReader while being read.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			dto.RespondWithErrorCode(c, dto.ErrorCodePayloadTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", maxBytes))
			c.Abort()

			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
