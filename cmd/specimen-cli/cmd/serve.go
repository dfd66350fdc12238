// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/specimenvm/consts"
	"github.com/ava-labs/specimenvm/rpc"
	"github.com/ava-labs/specimenvm/server"
)

const metricsEndpoint = "/metrics"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the read-only JSON-RPC API over the local database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		return withHandler(ctx, func(h *Handler) error {
			return serve(ctx, h)
		})
	},
}

func serve(ctx context.Context, h *Handler) error {
	cfg := h.cfg
	listener, err := net.Listen("tcp", cfg.GetRPCAddress())
	if err != nil {
		return err
	}
	httpConfig := server.NewDefaultConfig()
	httpConfig.AllowedOrigins = cfg.GetAllowedOrigins()
	s := server.New(h.Logger(), listener, httpConfig)

	handler, err := server.NewJSONRPCHandler(rpc.Name, rpc.NewJSONRPCServer(h))
	if err != nil {
		return err
	}
	if err := s.AddRoute(handler, consts.Name, rpc.JSONRPCEndpoint); err != nil {
		return err
	}
	if cfg.GetMetricsEnabled() {
		metrics := promhttp.HandlerFor(h.Registry(), promhttp.HandlerOpts{})
		if err := s.AddRoute(metrics, consts.Name, metricsEndpoint); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(s.Dispatch)
	g.Go(func() error {
		<-gctx.Done()
		h.Logger().Info("shutting down API", zap.Error(context.Cause(gctx)))
		return s.Shutdown(context.Background())
	})
	return g.Wait()
}
