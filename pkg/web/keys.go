package web

import (
	"context"

	"github.com/abgdnv/shopfront/pkg/logger"
)

type ownerIDKey struct{}

// WithOwnerID adds the tenant id to the context, for handlers and for log records.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	ctx = logger.WithOwnerID(ctx, ownerID)
	return context.WithValue(ctx, ownerIDKey{}, ownerID)
}

// OwnerIDFromContext returns the tenant id set by TenantMiddleware or AuthMiddleware.
func OwnerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ownerIDKey{}).(string)
	return id, ok && id != ""
}
