package db

import (
	"context"

	"github.com/google/uuid"
)

const findCategoriesByOwner = `-- name: FindCategoriesByOwner :many
SELECT id, owner_id, title, created_at, updated_at
FROM categories
WHERE owner_id = $1
ORDER BY created_at
`

func (q *Queries) FindCategoriesByOwner(ctx context.Context, ownerID string) ([]Category, error) {
	rows, err := q.db.Query(ctx, findCategoriesByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Category{}
	for rows.Next() {
		var i Category
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Title, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findCategoryByID = `-- name: FindCategoryByID :one
SELECT id, owner_id, title, created_at, updated_at
FROM categories
WHERE owner_id = $1 AND id = $2
`

type FindCategoryByIDParams struct {
	OwnerID string
	ID      uuid.UUID
}

func (q *Queries) FindCategoryByID(ctx context.Context, arg FindCategoryByIDParams) (Category, error) {
	row := q.db.QueryRow(ctx, findCategoryByID, arg.OwnerID, arg.ID)
	var i Category
	err := row.Scan(&i.ID, &i.OwnerID, &i.Title, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const findCategorySequence = `-- name: FindCategorySequence :one
SELECT category_ids
FROM category_sequence
WHERE owner_id = $1
`

func (q *Queries) FindCategorySequence(ctx context.Context, ownerID string) ([]string, error) {
	row := q.db.QueryRow(ctx, findCategorySequence, ownerID)
	var categoryIds []string
	err := row.Scan(&categoryIds)
	return categoryIds, err
}
