package service

import (
	"context"
	"log/slog"

	"github.com/abgdnv/shopfront/internal/sequence"
	"github.com/abgdnv/shopfront/internal/store"
	"github.com/abgdnv/shopfront/internal/store/db"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ProductService reads an owner's products.
type ProductService interface {
	// FindSortedInCategory returns the products of a category in the owner-defined order,
	// or newest first when no order was saved.
	FindSortedInCategory(ctx context.Context, ownerID string, categoryID uuid.UUID) ([]ProductDto, error)

	// FindByID returns ErrProductNotFound if the owner has no product with the given ID.
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*ProductDto, error)

	// FindByIDs returns the found products in the order of ids.
	FindByIDs(ctx context.Context, ownerID string, ids []uuid.UUID) ([]ProductDto, error)
}

type ProductDto struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          string    `json:"ownerId"`
	CategoryID       uuid.UUID `json:"categoryId"`
	Title            string    `json:"title"`
	ImageUrl         string    `json:"imageUrl"`
	ImagePath        string    `json:"imagePath"`
	Description      *string   `json:"description"`
	Price            int64     `json:"price"`
	IsVisible        bool      `json:"isVisible"`
	IsOrderAccepting bool      `json:"isOrderAccepting"`
	CreatedAt        string    `json:"createdAt"`
	UpdatedAt        string    `json:"updatedAt"`
}

type Products struct {
	store store.ProductStore
}

func NewProducts(productStore store.ProductStore) *Products {
	return &Products{store: productStore}
}

func (s *Products) FindSortedInCategory(ctx context.Context, ownerID string, categoryID uuid.UUID) ([]ProductDto, error) {
	var products []db.Product
	var order []string

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.store.FindByCategory(gCtx, ownerID, categoryID)
		return err
	})
	g.Go(func() error {
		seq, err := s.store.FindSequence(gCtx, ownerID, categoryID)
		if err != nil {
			slog.WarnContext(ctx, "Failed to load product sequence", "category_id", categoryID, "error", err)
			return nil
		}
		order = seq
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return toProductDtos(sequence.Resolve(products, order)), nil
}

func (s *Products) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*ProductDto, error) {
	product, err := s.store.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toProductDto(product), nil
}

func (s *Products) FindByIDs(ctx context.Context, ownerID string, ids []uuid.UUID) ([]ProductDto, error) {
	if len(ids) == 0 {
		return []ProductDto{}, nil
	}
	products, err := s.store.FindByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	return toProductDtos(products), nil
}

func toProductDtos(products []db.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i := range products {
		dtos[i] = *toProductDto(&products[i])
	}
	return dtos
}

func toProductDto(p *db.Product) *ProductDto {
	return &ProductDto{
		ID:               p.ID,
		OwnerID:          p.OwnerID,
		CategoryID:       p.CategoryID,
		Title:            p.Title,
		ImageUrl:         p.ImageUrl,
		ImagePath:        p.ImagePath,
		Description:      p.Description,
		Price:            p.Price,
		IsVisible:        p.IsVisible,
		IsOrderAccepting: p.IsOrderAccepting,
		CreatedAt:        formatTime(p.CreatedAt),
		UpdatedAt:        formatTime(p.UpdatedAt),
	}
}
