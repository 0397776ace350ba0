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

// CategoryService reads an owner's categories.
type CategoryService interface {
	// FindSorted returns the owner's categories in the owner-defined order,
	// or newest first when no order was saved.
	FindSorted(ctx context.Context, ownerID string) ([]CategoryDto, error)

	// FindByID returns ErrCategoryNotFound if the owner has no category with the given ID.
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*CategoryDto, error)
}

type CategoryDto struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

type Categories struct {
	store store.CategoryStore
}

func NewCategories(categoryStore store.CategoryStore) *Categories {
	return &Categories{store: categoryStore}
}

func (s *Categories) FindSorted(ctx context.Context, ownerID string) ([]CategoryDto, error) {
	var categories []db.Category
	var order []string

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.store.FindByOwner(gCtx, ownerID)
		return err
	})
	g.Go(func() error {
		seq, err := s.store.FindSequence(gCtx, ownerID)
		if err != nil {
			// fall back to recency order
			slog.WarnContext(ctx, "Failed to load category sequence", "error", err)
			return nil
		}
		order = seq
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sorted := sequence.Resolve(categories, order)
	dtos := make([]CategoryDto, len(sorted))
	for i := range sorted {
		dtos[i] = *toCategoryDto(&sorted[i])
	}
	return dtos, nil
}

func (s *Categories) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*CategoryDto, error) {
	category, err := s.store.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return toCategoryDto(category), nil
}

func toCategoryDto(c *db.Category) *CategoryDto {
	return &CategoryDto{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Title:     c.Title,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}
