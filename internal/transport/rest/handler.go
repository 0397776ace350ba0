// Package rest provides the HTTP handlers of the shop service.
package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	shoperrors "github.com/abgdnv/shopfront/internal/errors"
	"github.com/abgdnv/shopfront/internal/service"
	"github.com/abgdnv/shopfront/pkg/web"
	"github.com/go-chi/chi/v5"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	categories     service.CategoryService
	products       service.ProductService
	orders         service.OrderService
	shops          service.ShopService
	db             Pinger
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewHandler creates the HTTP handler set over the given services.
func NewHandler(
	categories service.CategoryService,
	products service.ProductService,
	orders service.OrderService,
	shops service.ShopService,
	db Pinger,
	maxUploadBytes int64,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		categories:     categories,
		products:       products,
		orders:         orders,
		shops:          shops,
		db:             db,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes. Shop writes are only registered when authMw is given.
func (h *Handler) RegisterRoutes(r chi.Router, authMw func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
		r.Get("/shop/{ownerId}", h.FindShop)

		if authMw != nil {
			r.Group(func(r chi.Router) {
				r.Use(authMw)
				r.Post("/shop", h.CreateShop)
				r.Put("/shop", h.UpdateShop)
			})
		}

		r.Group(func(r chi.Router) {
			r.Use(web.TenantMiddleware(h.logger))

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", h.FindCategories)
				r.Get("/{id}", h.FindCategoryByID)
			})
			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.FindProductsByIDs)
				r.Get("/category/{categoryId}", h.FindProductsByCategory)
				r.Get("/{id}", h.FindProductByID)
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.FindOrdersByIDs)
				r.Post("/", h.CreateOrder)
				r.Get("/{orderId}", h.FindOrderByID)
				r.Put("/{orderId}/status", h.ChangeOrderStatus)
			})
		})
	})
}

// HealthCheck answers 200 when the database responds to a ping.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "Health check failed", "error", err)
		web.RespondJSON(w, h.logger, http.StatusServiceUnavailable,
			map[string]string{"status": "error", "message": "Database unavailable"})
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK,
		map[string]string{"status": "ok", "message": "Health check passed"})
}

// respondServiceError maps service errors onto HTTP statuses. Unknown errors become a 500
// carrying only failure.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	ctx := r.Context()
	var validationErr *shoperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.logger.WarnContext(ctx, "Validation errors occurred", "errors", validationErr.Fields)
		message := validationErr.Message
		if validationErr.Field != "" {
			message = fmt.Sprintf("%s %s", validationErr.Field, validationErr.Message)
		}
		web.RespondValidationError(w, h.logger, message, validationErr.Fields)
	case errors.Is(err, shoperrors.ErrCategoryNotFound),
		errors.Is(err, shoperrors.ErrProductNotFound),
		errors.Is(err, shoperrors.ErrOrderNotFound),
		errors.Is(err, shoperrors.ErrShopNotFound):
		h.logger.WarnContext(ctx, "Resource not found", "error", err)
		web.RespondError(w, h.logger, http.StatusNotFound, notFoundMessage(err))
	case errors.Is(err, shoperrors.ErrShopAlreadyExists):
		h.logger.WarnContext(ctx, "Shop already exists")
		web.RespondError(w, h.logger, http.StatusConflict, "Shop already exists for this owner")
	case errors.Is(err, shoperrors.ErrImageUpload):
		h.logger.ErrorContext(ctx, failure, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to upload image")
	default:
		h.logger.ErrorContext(ctx, failure, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, failure)
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, shoperrors.ErrCategoryNotFound):
		return "Category not found"
	case errors.Is(err, shoperrors.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, shoperrors.ErrOrderNotFound):
		return "Order not found"
	default:
		return "Shop not found"
	}
}
