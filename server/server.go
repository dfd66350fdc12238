// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const BaseURL = "/ext"

// Wrapper wraps the handler of every route.
type Wrapper interface {
	WrapHandler(h http.Handler) http.Handler
}

type Config struct {
	ReadTimeout       time.Duration `json:"readTimeout"       yaml:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout"      yaml:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"       yaml:"idleTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout"   yaml:"shutdownTimeout"`

	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
	AllowedHosts   []string `json:"allowedHosts"   yaml:"allowedHosts"`
}

func NewDefaultConfig() Config {
	return Config{
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		AllowedOrigins:    []string{wildcard},
		AllowedHosts:      []string{wildcard},
	}
}

// Server serves every registered route below [BaseURL].
type Server struct {
	log             logging.Logger
	shutdownTimeout time.Duration

	router   *router
	srv      *http.Server
	listener net.Listener
}

func New(
	log logging.Logger,
	listener net.Listener,
	cfg Config,
	wrappers ...Wrapper,
) *Server {
	router := newRouter()
	var handler http.Handler = filterInvalidHosts(router, cfg.AllowedHosts)
	handler = cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(handler)
	handler = gziphandler.GzipHandler(handler)
	for _, wrapper := range wrappers {
		handler = wrapper.WrapHandler(handler)
	}

	log.Info("API created",
		zap.Stringer("address", listener.Addr()),
		zap.Strings("allowedOrigins", cfg.AllowedOrigins),
	)
	return &Server{
		log:             log,
		shutdownTimeout: cfg.ShutdownTimeout,
		router:          router,
		srv: &http.Server{
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		listener: listener,
	}
}

// AddRoute serves [handler] at [BaseURL]/[base][endpoint].
func (s *Server) AddRoute(handler http.Handler, base, endpoint string) error {
	url := fmt.Sprintf("%s/%s", BaseURL, base)
	s.log.Info("adding route",
		zap.String("url", url),
		zap.String("endpoint", endpoint),
	)
	return s.router.AddRouter(url, endpoint, handler)
}

// Dispatch blocks until the server is shut down.
func (s *Server) Dispatch() error {
	err := s.srv.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	// Force close any connection left behind by a timed out shutdown.
	_ = s.srv.Close()
	return err
}
