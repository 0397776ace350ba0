package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	shoperrors "github.com/abgdnv/shopfront/internal/errors"
	"github.com/abgdnv/shopfront/internal/store"
	"github.com/abgdnv/shopfront/internal/store/db"
	"github.com/abgdnv/shopfront/pkg/objectstore"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ShopService manages the single shop of an owner.
type ShopService interface {
	// FindByOwner returns ErrShopNotFound if the owner has no shop.
	FindByOwner(ctx context.Context, ownerID string) (*ShopDto, error)

	// Create stores the owner's shop, uploading image first when given.
	// Returns ErrShopAlreadyExists if the owner already has one.
	Create(ctx context.Context, ownerID string, shop ShopCreateDto, image *Image) (*ShopDto, error)

	// Update applies the non-nil fields of shop. A new image replaces the stored one.
	Update(ctx context.Context, ownerID string, shop ShopUpdateDto, image *Image) (*ShopDto, error)
}

// ImageStorage keeps uploaded shop images.
type ImageStorage interface {
	Upload(ctx context.Context, ownerID, fileName, contentType string, data []byte) (objectstore.Object, error)
	Delete(ctx context.Context, path string) error
}

// Image is an uploaded file.
type Image struct {
	FileName    string
	ContentType string
	Data        []byte
}

type ShopDto struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          string    `json:"ownerId"`
	Title            string    `json:"title"`
	ImageUrl         string    `json:"imageUrl"`
	ImagePath        string    `json:"imagePath"`
	Description      *string   `json:"description"`
	Prefecture       string    `json:"prefecture"`
	City             string    `json:"city"`
	StreetAddress    string    `json:"streetAddress"`
	Building         *string   `json:"building"`
	IsVisible        bool      `json:"isVisible"`
	IsOrderAccepting bool      `json:"isOrderAccepting"`
	CreatedAt        string    `json:"createdAt"`
	UpdatedAt        string    `json:"updatedAt"`
}

// ShopCreateDto is the input of a new shop. ImageUrl and ImagePath are required
// unless an image file accompanies the request.
type ShopCreateDto struct {
	Title            string  `json:"title" validate:"required,max=255"`
	ImageUrl         string  `json:"imageUrl" validate:"max=2048"`
	ImagePath        string  `json:"imagePath" validate:"max=1024"`
	Description      *string `json:"description" validate:"omitempty,max=1000"`
	Prefecture       string  `json:"prefecture" validate:"required,prefecture"`
	City             string  `json:"city" validate:"required,max=100"`
	StreetAddress    string  `json:"streetAddress" validate:"required,max=200"`
	Building         *string `json:"building" validate:"omitempty,max=200"`
	IsVisible        bool    `json:"isVisible"`
	IsOrderAccepting bool    `json:"isOrderAccepting"`
}

// ShopUpdateDto holds the fields to change. Nil fields are left untouched.
type ShopUpdateDto struct {
	Title            *string `json:"title" validate:"omitnil,min=1,max=255"`
	ImageUrl         *string `json:"imageUrl" validate:"omitempty,max=2048"`
	ImagePath        *string `json:"imagePath" validate:"omitempty,max=1024"`
	Description      *string `json:"description" validate:"omitempty,max=1000"`
	Prefecture       *string `json:"prefecture" validate:"omitempty,prefecture"`
	City             *string `json:"city" validate:"omitnil,min=1,max=100"`
	StreetAddress    *string `json:"streetAddress" validate:"omitnil,min=1,max=200"`
	Building         *string `json:"building" validate:"omitempty,max=200"`
	IsVisible        *bool   `json:"isVisible"`
	IsOrderAccepting *bool   `json:"isOrderAccepting"`
}

type Shops struct {
	store    store.ShopStore
	images   ImageStorage
	validate *validator.Validate
}

func NewShops(shopStore store.ShopStore, images ImageStorage) *Shops {
	return &Shops{store: shopStore, images: images, validate: newValidator()}
}

func (s *Shops) FindByOwner(ctx context.Context, ownerID string) (*ShopDto, error) {
	shop, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return toShopDto(shop), nil
}

func (s *Shops) Create(ctx context.Context, ownerID string, shop ShopCreateDto, image *Image) (*ShopDto, error) {
	fields, err := fieldErrors(s.validate.Struct(shop))
	if err != nil {
		return nil, err
	}
	if image == nil {
		if shop.ImageUrl == "" {
			fields["imageUrl"] = "is required"
		}
		if shop.ImagePath == "" {
			fields["imagePath"] = "is required"
		}
	}
	if len(fields) > 0 {
		return nil, shoperrors.NewFieldsValidationError(fields)
	}

	imageURL, imagePath := shop.ImageUrl, shop.ImagePath
	if image != nil {
		obj, err := s.upload(ctx, ownerID, image)
		if err != nil {
			return nil, err
		}
		imageURL, imagePath = obj.URL, obj.Path
	}

	created, err := s.store.Create(ctx, db.CreateShopParams{
		OwnerID:          ownerID,
		Title:            shop.Title,
		ImageUrl:         imageURL,
		ImagePath:        imagePath,
		Description:      shop.Description,
		Prefecture:       shop.Prefecture,
		City:             shop.City,
		StreetAddress:    shop.StreetAddress,
		Building:         shop.Building,
		IsVisible:        shop.IsVisible,
		IsOrderAccepting: shop.IsOrderAccepting,
	})
	if err != nil {
		if image != nil {
			s.deleteImage(ctx, imagePath)
		}
		return nil, err
	}
	return toShopDto(created), nil
}

func (s *Shops) Update(ctx context.Context, ownerID string, shop ShopUpdateDto, image *Image) (*ShopDto, error) {
	if err := s.validate.Struct(shop); err != nil {
		return nil, toValidationError(err)
	}

	var oldPath string
	if image != nil {
		current, err := s.store.FindByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		oldPath = current.ImagePath

		obj, err := s.upload(ctx, ownerID, image)
		if err != nil {
			return nil, err
		}
		shop.ImageUrl, shop.ImagePath = &obj.URL, &obj.Path
	}

	updated, err := s.store.Update(ctx, db.UpdateShopParams{
		OwnerID:          ownerID,
		Title:            shop.Title,
		ImageUrl:         shop.ImageUrl,
		ImagePath:        shop.ImagePath,
		Description:      shop.Description,
		Prefecture:       shop.Prefecture,
		City:             shop.City,
		StreetAddress:    shop.StreetAddress,
		Building:         shop.Building,
		IsVisible:        shop.IsVisible,
		IsOrderAccepting: shop.IsOrderAccepting,
	})
	if err != nil {
		if image != nil {
			s.deleteImage(ctx, *shop.ImagePath)
		}
		return nil, err
	}

	if image != nil && oldPath != updated.ImagePath {
		s.deleteImage(ctx, oldPath)
	}
	return toShopDto(updated), nil
}

func (s *Shops) upload(ctx context.Context, ownerID string, image *Image) (objectstore.Object, error) {
	if isJPEG(image.ContentType) && !bytes.HasPrefix(image.Data, []byte{0xFF, 0xD8}) {
		slog.WarnContext(ctx, "Image declared as JPEG has no JPEG signature",
			"file_name", image.FileName, "size", len(image.Data))
	}
	obj, err := s.images.Upload(ctx, ownerID, image.FileName, image.ContentType, image.Data)
	if err != nil {
		slog.ErrorContext(ctx, "Image upload failed", "file_name", image.FileName, "error", err)
		return objectstore.Object{}, fmt.Errorf("%w: %w", shoperrors.ErrImageUpload, err)
	}
	return obj, nil
}

func (s *Shops) deleteImage(ctx context.Context, path string) {
	if err := s.images.Delete(ctx, path); err != nil {
		slog.WarnContext(ctx, "Failed to delete shop image", "path", path, "error", err)
	}
}

func isJPEG(contentType string) bool {
	ct := strings.ToLower(contentType)
	return ct == "image/jpeg" || ct == "image/jpg"
}

func toShopDto(s *db.Shop) *ShopDto {
	return &ShopDto{
		ID:               s.ID,
		OwnerID:          s.OwnerID,
		Title:            s.Title,
		ImageUrl:         s.ImageUrl,
		ImagePath:        s.ImagePath,
		Description:      s.Description,
		Prefecture:       s.Prefecture,
		City:             s.City,
		StreetAddress:    s.StreetAddress,
		Building:         s.Building,
		IsVisible:        s.IsVisible,
		IsOrderAccepting: s.IsOrderAccepting,
		CreatedAt:        formatTime(s.CreatedAt),
		UpdatedAt:        formatTime(s.UpdatedAt),
	}
}
