// Package server builds the HTTP server and the chi router shared middleware stack.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/shopfront/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HTTPConfig has the configuration for the HTTP server.
type HTTPConfig struct {
	Port           int
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	ReadHeader     time.Duration
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         time.Duration
}

// NewHTTPServer creates an HTTP server whose handler is traced with otelhttp.
func NewHTTPServer(cfg HTTPConfig, serviceName string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           otelhttp.NewHandler(handler, serviceName),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: cfg.ReadHeader,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// NewChiRouter creates a chi router with request id injection, structured logging,
// panic recovery and CORS.
func NewChiRouter(logger *slog.Logger, corsCfg CORSConfig) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(web.RequestIDInjector)
	mux.Use(web.StructuredLogger(logger))
	mux.Use(web.Recoverer(logger))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           int(corsCfg.MaxAge.Seconds()),
	}))
	return mux
}
