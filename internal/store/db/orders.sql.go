package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, owner_id, user_id, pickup_id, items, product_ids, order_status, order_date, total, created_at, updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var i Order
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.UserID,
		&i.PickupID,
		&i.Items,
		&i.ProductIDs,
		&i.OrderStatus,
		&i.OrderDate,
		&i.Total,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (owner_id, user_id, pickup_id, items, product_ids, order_status, order_date, total)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + orderColumns + `
`

type CreateOrderParams struct {
	OwnerID     string
	UserID      *string
	PickupID    string
	Items       map[string]int32
	ProductIDs  []string
	OrderStatus OrderStatus
	OrderDate   time.Time
	Total       int64
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, createOrder,
		arg.OwnerID,
		arg.UserID,
		arg.PickupID,
		arg.Items,
		arg.ProductIDs,
		string(arg.OrderStatus),
		arg.OrderDate,
		arg.Total,
	))
}

const findOrderByID = `-- name: FindOrderByID :one
SELECT ` + orderColumns + `
FROM orders
WHERE owner_id = $1 AND id = $2
`

type FindOrderByIDParams struct {
	OwnerID string
	ID      uuid.UUID
}

func (q *Queries) FindOrderByID(ctx context.Context, arg FindOrderByIDParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, findOrderByID, arg.OwnerID, arg.ID))
}

const findOrdersByIDs = `-- name: FindOrdersByIDs :many
SELECT ` + orderColumns + `
FROM orders
WHERE owner_id = $1 AND id = ANY($2::uuid[])
`

type FindOrdersByIDsParams struct {
	OwnerID string
	IDs     []uuid.UUID
}

func (q *Queries) FindOrdersByIDs(ctx context.Context, arg FindOrdersByIDsParams) ([]Order, error) {
	rows, err := q.db.Query(ctx, findOrdersByIDs, arg.OwnerID, arg.IDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Order{}
	for rows.Next() {
		i, err := scanOrder(rows)
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

const updateOrderStatus = `-- name: UpdateOrderStatus :execrows
UPDATE orders
SET order_status = $3, updated_at = NOW()
WHERE owner_id = $1 AND id = $2
`

type UpdateOrderStatusParams struct {
	OwnerID     string
	ID          uuid.UUID
	OrderStatus OrderStatus
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateOrderStatus, arg.OwnerID, arg.ID, string(arg.OrderStatus))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
