package api

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Server runs an http.Server in the background.
type Server struct {
	server *http.Server
	err    chan error
}

func NewServer(h http.Handler, address string) *Server {
	s := &Server{
		server: &http.Server{
			Addr:              address,
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		},
		err: make(chan error, 1),
	}

	s.start()

	return s
}

func (s *Server) start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.err <- err
		}
		close(s.err)
	}()
}

// Err is closed when the server stops; it carries the error if the server failed.
func (s *Server) Err() <-chan error {
	return s.err
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx)
}
