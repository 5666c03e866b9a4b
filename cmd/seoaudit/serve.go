package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Bahjat/seo-audit/internal/analyzer"
	"github.com/Bahjat/seo-audit/internal/pageinsight"
	"github.com/Bahjat/seo-audit/internal/platform/config"
	"github.com/Bahjat/seo-audit/internal/platform/middleware"
)

const readHeaderTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP audit service",
		Long: `Start the HTTP service. Endpoints:

  GET  /analyze?url=<url>
  POST /analyze   {"url": "<url>"}
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, newServer(cfg, log, newEngine(cfg)), cfg.ShutdownTimeout, log)
		},
	}
}

func newEngine(cfg config.Config) *pageinsight.Engine {
	fetcher := pageinsight.NewHTTPClient(pageinsight.ClientOptions{
		Timeout:              cfg.FetchTimeout,
		UserAgent:            cfg.UserAgent,
		MaxBodyBytes:         cfg.MaxBodyBytes,
		AllowPrivateNetworks: cfg.AllowPrivateNetworks,
	})
	return pageinsight.NewEngine(fetcher)
}

func newServer(cfg config.Config, log *slog.Logger, provider analyzer.ReportProvider) *http.Server {
	svc := analyzer.NewService(provider, log)
	transport := analyzer.NewTransport(svc, log, cfg.AnalyzeTimeout)

	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)

	return &http.Server{
		Addr: cfg.Addr(),
		Handler: middleware.Chain(mux,
			middleware.Recover(log),
			middleware.RequestID,
			middleware.Logging(log),
		),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
}

// runServer serves until ctx is cancelled or the listener fails, then
// drains in-flight requests within the grace period.
func runServer(ctx context.Context, srv *http.Server, grace time.Duration, log *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "grace", grace)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
