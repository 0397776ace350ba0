// Package events holds the payloads published for order lifecycle changes.
package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/shopfront/pkg/messaging"
	"github.com/google/uuid"
)

// OrderCreatedEvent is published after an order row has been inserted.
type OrderCreatedEvent struct {
	Carrier   map[string]string `json:"carrier,omitempty"`
	OrderID   uuid.UUID         `json:"order_id"`
	OwnerID   string            `json:"owner_id"`
	PickupID  string            `json:"pickup_id"`
	Total     int64             `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
}

func (o OrderCreatedEvent) Subject() string {
	return messaging.OrdersCreatedSubject
}

func (o OrderCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}

// OrderStatusChangedEvent is published after an order status overwrite.
type OrderStatusChangedEvent struct {
	Carrier   map[string]string `json:"carrier,omitempty"`
	OrderID   uuid.UUID         `json:"order_id"`
	OwnerID   string            `json:"owner_id"`
	Status    string            `json:"status"`
	ChangedAt time.Time         `json:"changed_at"`
}

func (o OrderStatusChangedEvent) Subject() string {
	return messaging.OrdersStatusChangedSubject
}

func (o OrderStatusChangedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}
