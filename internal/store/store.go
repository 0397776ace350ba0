// Package store provides the storage contracts of the shop service and their PostgreSQL implementations.
// Every operation is scoped by the owner (tenant) id.
package store

import (
	"context"

	"github.com/abgdnv/shopfront/internal/store/db"
	"github.com/google/uuid"
)

// CategoryStore reads categories and the owner's category ordering.
type CategoryStore interface {
	// FindByOwner returns all categories of the owner, in storage order.
	FindByOwner(ctx context.Context, ownerID string) ([]db.Category, error)

	// FindByID returns ErrCategoryNotFound if the owner has no category with the given ID.
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*db.Category, error)

	// FindSequence returns the owner's category ordering, nil when none was saved.
	FindSequence(ctx context.Context, ownerID string) ([]string, error)
}

// ProductStore reads products and the per-category product ordering.
type ProductStore interface {
	// FindByCategory returns all products of a category, in storage order.
	FindByCategory(ctx context.Context, ownerID string, categoryID uuid.UUID) ([]db.Product, error)

	// FindByID returns ErrProductNotFound if the owner has no product with the given ID.
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*db.Product, error)

	// FindByIDs returns the found products in the order of ids. Unknown ids are skipped.
	FindByIDs(ctx context.Context, ownerID string, ids []uuid.UUID) ([]db.Product, error)

	// FindTitles returns id and title of the requested products in one query.
	// Ids that are not UUIDs or are unknown are absent from the result.
	FindTitles(ctx context.Context, ownerID string, ids []string) ([]db.ProductTitle, error)

	// FindSequence returns the product ordering of a category, nil when none was saved.
	FindSequence(ctx context.Context, ownerID string, categoryID uuid.UUID) ([]string, error)
}

// OrderStore persists orders. Every write touches a single row.
type OrderStore interface {
	// Create inserts an order. ID and timestamps are assigned by the database.
	Create(ctx context.Context, params db.CreateOrderParams) (*db.Order, error)

	// FindByID returns ErrOrderNotFound if the owner has no order with the given ID.
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*db.Order, error)

	// FindByIDs returns the found orders in the order of ids. Unknown ids are skipped.
	FindByIDs(ctx context.Context, ownerID string, ids []uuid.UUID) ([]db.Order, error)

	// UpdateStatus overwrites the status and reports how many rows changed (0 or 1).
	UpdateStatus(ctx context.Context, ownerID string, id uuid.UUID, status db.OrderStatus) (int64, error)
}

// ShopStore persists the single shop of an owner.
type ShopStore interface {
	// FindByOwner returns ErrShopNotFound if the owner has no shop.
	FindByOwner(ctx context.Context, ownerID string) (*db.Shop, error)

	// Create returns ErrShopAlreadyExists if the owner already has a shop.
	Create(ctx context.Context, params db.CreateShopParams) (*db.Shop, error)

	// Update applies the non-nil fields. Returns ErrShopNotFound if the owner has no shop.
	Update(ctx context.Context, params db.UpdateShopParams) (*db.Shop, error)
}
