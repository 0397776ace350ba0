package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID
	OwnerID   string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Category) SequenceKey() string     { return c.ID.String() }
func (c Category) LastUpdated() time.Time { return c.UpdatedAt }

type Product struct {
	ID               uuid.UUID
	OwnerID          string
	CategoryID       uuid.UUID
	Title            string
	ImageUrl         string
	ImagePath        string
	Description      *string
	Price            int64
	IsVisible        bool
	IsOrderAccepting bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p Product) SequenceKey() string     { return p.ID.String() }
func (p Product) LastUpdated() time.Time { return p.UpdatedAt }

// ProductTitle is the projection used to label order lines.
type ProductTitle struct {
	ID    uuid.UUID
	Title string
}

type Shop struct {
	ID               uuid.UUID
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
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type OrderStatus string

const (
	OrderStatusNewOrder  OrderStatus = "newOrder"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCanceled  OrderStatus = "canceled"
	OrderStatusCooking   OrderStatus = "cooking"
	OrderStatusPrepared  OrderStatus = "prepared"
	OrderStatusServed    OrderStatus = "served"
)

// AllOrderStatuses lists every status in lifecycle order.
var AllOrderStatuses = []OrderStatus{
	OrderStatusNewOrder,
	OrderStatusConfirmed,
	OrderStatusCanceled,
	OrderStatusCooking,
	OrderStatusPrepared,
	OrderStatusServed,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNewOrder, OrderStatusConfirmed, OrderStatusCanceled,
		OrderStatusCooking, OrderStatusPrepared, OrderStatusServed:
		return true
	}
	return false
}

// ParseOrderStatus maps a wire value onto the closed status set.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown order status: %q", s)
	}
	return status, nil
}

type Order struct {
	ID          uuid.UUID
	OwnerID     string
	UserID      *string
	PickupID    string
	Items       map[string]int32
	ProductIDs  []string
	OrderStatus OrderStatus
	OrderDate   time.Time
	Total       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
