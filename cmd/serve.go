package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/taixiu-predictor/internal/adapters/httpapi"
	"github.com/bnema/taixiu-predictor/internal/config"
	"github.com/bnema/taixiu-predictor/internal/platform/otel"
	"github.com/bnema/taixiu-predictor/internal/version"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const serviceName = "taixiu-predictor"

func newServeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serverCfg, err := config.ParseServerEnv()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, app, serverCfg)
		},
	}
}

func runServe(ctx context.Context, app *app, serverCfg config.ServerConfig) error {
	shutdownTracing, err := otel.Setup(ctx, serviceName, version.Version, serverCfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverCfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			app.logger.Warn("flush traces", slog.String("error", err.Error()))
		}
	}()

	server, err := httpapi.Listen(serverCfg.Addr(), httpapi.NewHandler(app.service, app.logger), serverCfg.ReadHeaderTimeout)
	if err != nil {
		return err
	}
	app.logger.Info("api listening",
		slog.String("addr", server.Addr()),
		slog.String("source", app.cfg.SourceKind),
		slog.Bool("tracing", serverCfg.OTelEndpoint != ""),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Serve)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverCfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	app.logger.Info("api stopped")
	return nil
}
