package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, owner_id, category_id, title, image_url, image_path, description, price, is_visible, is_order_accepting, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var i Product
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.CategoryID,
		&i.Title,
		&i.ImageUrl,
		&i.ImagePath,
		&i.Description,
		&i.Price,
		&i.IsVisible,
		&i.IsOrderAccepting,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		i, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findProductsByCategory = `-- name: FindProductsByCategory :many
SELECT ` + productColumns + `
FROM products
WHERE owner_id = $1 AND category_id = $2
ORDER BY created_at
`

type FindProductsByCategoryParams struct {
	OwnerID    string
	CategoryID uuid.UUID
}

func (q *Queries) FindProductsByCategory(ctx context.Context, arg FindProductsByCategoryParams) ([]Product, error) {
	rows, err := q.db.Query(ctx, findProductsByCategory, arg.OwnerID, arg.CategoryID)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

const findProductByID = `-- name: FindProductByID :one
SELECT ` + productColumns + `
FROM products
WHERE owner_id = $1 AND id = $2
`

type FindProductByIDParams struct {
	OwnerID string
	ID      uuid.UUID
}

func (q *Queries) FindProductByID(ctx context.Context, arg FindProductByIDParams) (Product, error) {
	return scanProduct(q.db.QueryRow(ctx, findProductByID, arg.OwnerID, arg.ID))
}

const findProductsByIDs = `-- name: FindProductsByIDs :many
SELECT ` + productColumns + `
FROM products
WHERE owner_id = $1 AND id = ANY($2::uuid[])
`

type FindProductsByIDsParams struct {
	OwnerID string
	IDs     []uuid.UUID
}

func (q *Queries) FindProductsByIDs(ctx context.Context, arg FindProductsByIDsParams) ([]Product, error) {
	rows, err := q.db.Query(ctx, findProductsByIDs, arg.OwnerID, arg.IDs)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

const findProductTitles = `-- name: FindProductTitles :many
SELECT id, title
FROM products
WHERE owner_id = $1 AND id = ANY($2::uuid[])
`

type FindProductTitlesParams struct {
	OwnerID string
	IDs     []uuid.UUID
}

func (q *Queries) FindProductTitles(ctx context.Context, arg FindProductTitlesParams) ([]ProductTitle, error) {
	rows, err := q.db.Query(ctx, findProductTitles, arg.OwnerID, arg.IDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ProductTitle{}
	for rows.Next() {
		var i ProductTitle
		if err := rows.Scan(&i.ID, &i.Title); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findProductSequence = `-- name: FindProductSequence :one
SELECT product_ids
FROM product_sequences
WHERE owner_id = $1 AND category_id = $2
`

type FindProductSequenceParams struct {
	OwnerID    string
	CategoryID uuid.UUID
}

func (q *Queries) FindProductSequence(ctx context.Context, arg FindProductSequenceParams) ([]string, error) {
	row := q.db.QueryRow(ctx, findProductSequence, arg.OwnerID, arg.CategoryID)
	var productIds []string
	err := row.Scan(&productIds)
	return productIds, err
}
