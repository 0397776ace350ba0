// Package app wires the shop service together.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/shopfront/internal/config"
	"github.com/abgdnv/shopfront/internal/service"
	"github.com/abgdnv/shopfront/internal/store"
	"github.com/abgdnv/shopfront/internal/transport/rest"
	"github.com/abgdnv/shopfront/pkg/auth"
	"github.com/abgdnv/shopfront/pkg/messaging"
	"github.com/abgdnv/shopfront/pkg/server"
	"github.com/abgdnv/shopfront/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ServiceName = "shop"

type Dependencies struct {
	CategoryService service.CategoryService
	ProductService  service.ProductService
	OrderService    service.OrderService
	ShopService     service.ShopService
	DB              rest.Pinger
	// Verifier is nil when no identity provider is configured; shop writes are then not routed.
	Verifier       auth.Verifier
	MetricsHandler http.Handler
	Logger         *slog.Logger
}

// SetupDependencies builds the services over a PostgreSQL pool.
// images may be nil when shop writes are disabled.
func SetupDependencies(dbPool *pgxpool.Pool, publisher messaging.Publisher, images service.ImageStorage,
	verifier auth.Verifier, metricsHandler http.Handler, logger *slog.Logger) *Dependencies {
	pgStore := store.NewPgStore(dbPool)
	products := pgStore.Products()

	return &Dependencies{
		CategoryService: service.NewCategories(pgStore.Categories()),
		ProductService:  service.NewProducts(products),
		OrderService:    service.NewOrders(pgStore.Orders(), service.NewEnricher(products), publisher),
		ShopService:     service.NewShops(pgStore.Shops(), images),
		DB:              pgStore,
		Verifier:        verifier,
		MetricsHandler:  metricsHandler,
		Logger:          logger,
	}
}

// SetupHttpHandler builds the router with the shared middleware stack and every route.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger, server.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxAge:         cfg.CORS.MaxAge,
	})
	wireRoutes(mux, deps, cfg)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies, cfg *config.Config) {
	handler := rest.NewHandler(
		deps.CategoryService,
		deps.ProductService,
		deps.OrderService,
		deps.ShopService,
		deps.DB,
		cfg.HTTPServer.MaxUploadBytes,
		deps.Logger,
	)
	var authMw func(http.Handler) http.Handler
	if deps.Verifier != nil {
		authMw = web.AuthMiddleware(deps.Verifier, deps.Logger)
	}
	handler.RegisterRoutes(mux, authMw)

	if deps.MetricsHandler != nil {
		mux.Handle("/metrics", deps.MetricsHandler)
	}
}

// SetupHttpServer creates the HTTP server of the shop service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps, cfg)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}
	return server.NewHTTPServer(httpCfg, ServiceName, mux)
}
