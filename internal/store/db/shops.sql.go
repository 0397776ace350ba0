package db

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const shopColumns = `id, owner_id, title, image_url, image_path, description, prefecture, city, street_address, building, is_visible, is_order_accepting, created_at, updated_at`

func scanShop(row pgx.Row) (Shop, error) {
	var i Shop
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Title,
		&i.ImageUrl,
		&i.ImagePath,
		&i.Description,
		&i.Prefecture,
		&i.City,
		&i.StreetAddress,
		&i.Building,
		&i.IsVisible,
		&i.IsOrderAccepting,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findShopByOwner = `-- name: FindShopByOwner :one
SELECT ` + shopColumns + `
FROM shops
WHERE owner_id = $1
`

func (q *Queries) FindShopByOwner(ctx context.Context, ownerID string) (Shop, error) {
	return scanShop(q.db.QueryRow(ctx, findShopByOwner, ownerID))
}

const createShop = `-- name: CreateShop :one
INSERT INTO shops (owner_id, title, image_url, image_path, description, prefecture, city, street_address, building, is_visible, is_order_accepting)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + shopColumns + `
`

type CreateShopParams struct {
	OwnerID          string
	Title            string
	ImageUrl         string
	ImagePath        string
	Description      *string
	Prefecture       string
	City             string
	StreetAddress    string
	Building         *string
	IsVisible        bool
	IsOrderAccepting bool
}

func (q *Queries) CreateShop(ctx context.Context, arg CreateShopParams) (Shop, error) {
	return scanShop(q.db.QueryRow(ctx, createShop,
		arg.OwnerID,
		arg.Title,
		arg.ImageUrl,
		arg.ImagePath,
		arg.Description,
		arg.Prefecture,
		arg.City,
		arg.StreetAddress,
		arg.Building,
		arg.IsVisible,
		arg.IsOrderAccepting,
	))
}

// Nil fields keep the stored value.
const updateShop = `-- name: UpdateShop :one
UPDATE shops
SET title              = COALESCE($2, title),
    image_url          = COALESCE($3, image_url),
    image_path         = COALESCE($4, image_path),
    description        = COALESCE($5, description),
    prefecture         = COALESCE($6, prefecture),
    city               = COALESCE($7, city),
    street_address     = COALESCE($8, street_address),
    building           = COALESCE($9, building),
    is_visible         = COALESCE($10, is_visible),
    is_order_accepting = COALESCE($11, is_order_accepting),
    updated_at         = NOW()
WHERE owner_id = $1
RETURNING ` + shopColumns + `
`

type UpdateShopParams struct {
	OwnerID          string
	Title            *string
	ImageUrl         *string
	ImagePath        *string
	Description      *string
	Prefecture       *string
	City             *string
	StreetAddress    *string
	Building         *string
	IsVisible        *bool
	IsOrderAccepting *bool
}

func (q *Queries) UpdateShop(ctx context.Context, arg UpdateShopParams) (Shop, error) {
	return scanShop(q.db.QueryRow(ctx, updateShop,
		arg.OwnerID,
		arg.Title,
		arg.ImageUrl,
		arg.ImagePath,
		arg.Description,
		arg.Prefecture,
		arg.City,
		arg.StreetAddress,
		arg.Building,
		arg.IsVisible,
		arg.IsOrderAccepting,
	))
}
