package infra

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cloudcopper/levelpanel/ports"
)

const webServerShutdownTimeout = 5 * time.Second

type WebServer struct {
	log     ports.Logger
	srv     *http.Server
	addr    net.Addr
	closeWg sync.WaitGroup
}

func NewWebServer(log ports.Logger, addr string, handler http.Handler) (*WebServer, error) {
	log = log.With(slog.String("entity", "WebServer"))

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s := &WebServer{
		log:  log,
		srv:  &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second},
		addr: l.Addr(),
	}

	s.closeWg.Add(1)
	go func() {
		defer s.closeWg.Done()
		log.Info("started", slog.String("addr", l.Addr().String()))
		defer log.Warn("complete")
		defer l.Close()
		err := s.srv.Serve(l)
		if err != nil && err != http.ErrServerClosed {
			log.Error("serve error", slog.Any("err", err))
		}
	}()

	return s, nil
}

// Addr returns actual listen address
func (s *WebServer) Addr() net.Addr {
	return s.addr
}

func (s *WebServer) Close() {
	if s.srv == nil {
		return
	}
	s.log.Info("closing")
	ctx, cancel := context.WithTimeout(context.Background(), webServerShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.log.Error("shutdown error", slog.Any("err", err))
	}
	s.closeWg.Wait()
	s.srv = nil
}
