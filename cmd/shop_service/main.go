package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/shopfront/internal/app"
	"github.com/abgdnv/shopfront/internal/config"
	"github.com/abgdnv/shopfront/internal/service"
	"github.com/abgdnv/shopfront/migrations"
	"github.com/abgdnv/shopfront/pkg/auth"
	"github.com/abgdnv/shopfront/pkg/bootstrap"
	"github.com/abgdnv/shopfront/pkg/config/configloader"
	"github.com/abgdnv/shopfront/pkg/messaging"
	natsclient "github.com/abgdnv/shopfront/pkg/nats"
	"github.com/abgdnv/shopfront/pkg/objectstore"
	"github.com/abgdnv/shopfront/pkg/telemetry"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads the configuration, connects the collaborators and serves HTTP until ctx is cancelled.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](app.ServiceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	if cfg.Database.Migrate {
		version, err := migrations.Up(cfg.Database.URL)
		if err != nil {
			return err
		}
		logger.Info("Database schema is up to date", "version", version)
	}

	dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
	if err != nil {
		return err
	}
	defer dbPool.Close()
	logger.Info("Successfully connected to the database!")

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	metrics, err := telemetry.NewMeterProvider(app.ServiceName)
	if err != nil {
		return err
	}
	defer shutdownWithTimeout(metrics.Provider.Shutdown, cfg, logger, "meter provider")

	if cfg.Telemetry.Traces.Enabled {
		tp, err := telemetry.NewTracerProvider(ctx, app.ServiceName, cfg.Telemetry)
		if err != nil {
			return err
		}
		defer shutdownWithTimeout(tp.Shutdown, cfg, logger, "tracer provider")
	}

	publisher, closePublisher, err := newPublisher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	var verifier auth.Verifier
	var images service.ImageStorage
	if cfg.IdP.Enabled() {
		jwtVerifier, err := auth.NewJWTVerifier(ctx, cfg.IdP)
		if err != nil {
			return fmt.Errorf("failed to create JWT verifier: %w", err)
		}
		verifier = jwtVerifier

		s3Storage, err := objectstore.NewS3Storage(ctx, cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create object storage: %w", err)
		}
		images = s3Storage
		logger.Info("Shop writes enabled", "issuer", cfg.IdP.Issuer, "bucket", cfg.Storage.Bucket)
	} else {
		logger.Warn("No identity provider configured, shop writes are disabled")
	}

	deps := app.SetupDependencies(dbPool, publisher, images, verifier, metrics.Handler, logger)
	httpServer := app.SetupHttpServer(deps, cfg)
	pprofServer := &http.Server{Addr: cfg.PProf.Addr}

	g, gCtx := errgroup.WithContext(ctx)

	serve(gCtx, g, httpServer, "HTTP", cfg, logger)
	if cfg.PProf.Enabled {
		serve(gCtx, g, pprofServer, "pprof", cfg, logger)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// serve runs srv in g and shuts it down gracefully once ctx is done.
func serve(ctx context.Context, g *errgroup.Group, srv *http.Server, name string, cfg *config.Config, logger *slog.Logger) {
	g.Go(func() error {
		logger.Info(name+" server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server failed: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down " + name + " server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// newPublisher connects to JetStream when NATS is enabled, otherwise events are only logged.
func newPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.Nats.Enabled {
		logger.Warn("NATS disabled, order events will not be published")
		return messaging.NewLogPublisher(logger), func() {}, nil
	}
	nc, err := natsclient.NewClient(cfg.Nats.Url, cfg.Nats.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := natsclient.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	if err := natsclient.EnsureStream(ctx, js, cfg.Nats.Stream, messaging.OrdersSubjects); err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.Info("Connected to NATS", "url", cfg.Nats.Url, "stream", cfg.Nats.Stream)
	return natsclient.NewNatsPublisher(js), func() { drain(nc, logger) }, nil
}

func drain(nc *nats.Conn, logger *slog.Logger) {
	if err := nc.Drain(); err != nil {
		logger.Error("Failed to drain NATS connection", "error", err)
		return
	}
	logger.Info("NATS connection drained")
}

func shutdownWithTimeout(shutdown func(context.Context) error, cfg *config.Config, logger *slog.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Error("Failed to shut down "+name, "error", err)
	}
}
