package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Wyydra/vtprovider/internal/adapter/driven/call/memory"
	"github.com/Wyydra/vtprovider/internal/adapter/driven/gateway/ws"
	handler "github.com/Wyydra/vtprovider/internal/adapter/driving/http"
	"github.com/Wyydra/vtprovider/internal/config"
	"github.com/Wyydra/vtprovider/internal/core/looper"
	"github.com/Wyydra/vtprovider/internal/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept controller connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
				v.Set("listen", listen)
			}
			cfg, err := config.FromViper(v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("listen", "", "override the listen address")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	l := telemetry.SetupLogger(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	mainLooper := looper.New(looper.WithCapacity(cfg.QueueCapacity))
	hub := ws.NewHub()

	opts := handler.Options{
		ReadBufferSize:  cfg.ReadBuffer,
		WriteBufferSize: cfg.WriteBuffer,
		SendQueue:       cfg.SendQueue,
		WriteTimeout:    cfg.WriteTimeout,
	}
	if cfg.MetricsEnabled {
		opts.MetricsPath = cfg.MetricsPath
	}
	h := handler.NewHandler(mainLooper, hub, func() handler.CallHandler {
		return memory.NewVideoCall()
	}, opts)

	ln, err := handler.Listen(ctx, cfg.Listen)
	if err != nil {
		return err
	}

	go hub.Run()
	go func() {
		if err := mainLooper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.Error().Err(err).Msg("Looper exited")
		}
	}()

	srv := &http.Server{Handler: h.NewRouter()}
	errc := make(chan error, 1)
	go func() {
		l.Info().Str("listen", cfg.Listen).Msg("Starting server")
		errc <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			l.Error().Err(err).Msg("Server failed")
			hub.Stop()
			mainLooper.Stop()
			return err
		}
	}

	l.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// hijacked websocket connections are not tracked by Shutdown
	hub.Stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}
	mainLooper.Stop()

	l.Info().Msg("Server exited")
	return nil
}
