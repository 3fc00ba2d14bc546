package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/nutricare-client/internal/gateway"
)

func gatewayCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Serve the backend API to a local SPA, keeping tokens server-side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Gateway.Addr()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.log.Info("starting gateway",
				slog.String("env", a.cfg.Env),
				slog.String("addr", addr),
				slog.String("api", a.cfg.API.BaseURL),
			)

			router := gateway.NewRouter(a.api, gateway.Options{
				Logger:         a.log,
				Timeout:        a.cfg.Timeouts.Gateway,
				BasePath:       "/api",
				AllowedOrigins: a.cfg.Gateway.AllowedOrigins,
			})

			srv := gateway.NewServer(router, gateway.ServerOptions{
				Addr:            addr,
				Logger:          a.log,
				ShutdownTimeout: a.cfg.Timeouts.Shutdown,
				Gatherer:        a.reg,
			})

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config gateway.host:gateway.port)")

	return cmd
}
