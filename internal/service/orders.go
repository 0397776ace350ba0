package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	shoperrors "github.com/abgdnv/shopfront/internal/errors"
	"github.com/abgdnv/shopfront/internal/store"
	"github.com/abgdnv/shopfront/internal/store/db"
	"github.com/abgdnv/shopfront/pkg/messaging"
	"github.com/abgdnv/shopfront/pkg/messaging/events"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

// OrderService manages the order lifecycle.
type OrderService interface {
	// Create validates and stores a new order and returns it with product titles.
	// Returns a *ValidationError if the input is rejected; nothing is stored then.
	Create(ctx context.Context, ownerID string, order OrderCreateDto) (*OrderDto, error)

	// ChangeStatus overwrites the status of an order. Any status may follow any other.
	// Returns a *ValidationError for an unknown status and ErrOrderNotFound if no order matched.
	ChangeStatus(ctx context.Context, ownerID string, id uuid.UUID, status string) error

	// FindByID returns ErrOrderNotFound if the owner has no order with the given ID.
	FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*OrderDto, error)

	// FindByIDs returns the found orders in the order of ids.
	FindByIDs(ctx context.Context, ownerID string, ids []uuid.UUID) ([]OrderDto, error)
}

// OrderDto is an order as returned to clients, with the title of every ordered product.
type OrderDto struct {
	ID            uuid.UUID         `json:"id"`
	OwnerID       string            `json:"ownerId"`
	UserID        *string           `json:"userId"`
	PickupID      string            `json:"pickupId"`
	Items         map[string]int32  `json:"items"`
	ProductIDs    []string          `json:"productIds"`
	OrderStatus   string            `json:"orderStatus"`
	OrderDate     string            `json:"orderDate"`
	Total         int64             `json:"total"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
	ProductTitles map[string]string `json:"productTitles"`
}

// OrderCreateDto is the input of a new order. Items maps product ids to quantities.
type OrderCreateDto struct {
	UserID      *string          `json:"userId" validate:"omitempty,max=255"`
	PickupID    string           `json:"pickupId" validate:"required,max=255"`
	Items       map[string]int32 `json:"items" validate:"required,dive,keys,required,max=255,endkeys,gt=0"`
	ProductIDs  []string         `json:"productIds" validate:"required"`
	OrderStatus string           `json:"orderStatus" validate:"omitempty,oneof=newOrder confirmed canceled cooking prepared served"`
	OrderDate   *time.Time       `json:"orderDate"`
	Total       *int64           `json:"total" validate:"required,min=0"`
}

// OrderStatusDto is the body of a status change.
type OrderStatusDto struct {
	OrderStatus string `json:"orderStatus"`
}

type Orders struct {
	store         store.OrderStore
	enricher      *Enricher
	publisher     messaging.Publisher
	validate      *validator.Validate
	ordersCounter metric.Int64Counter
	statusCounter metric.Int64Counter
	now           func() time.Time
}

func NewOrders(orderStore store.OrderStore, enricher *Enricher, publisher messaging.Publisher) *Orders {
	meter := otel.Meter(meterName)
	ordersCounter, err := meter.Int64Counter("orders_created", metric.WithDescription("Total number of created orders"))
	if err != nil {
		panic(fmt.Sprintf("failed to create orders_created counter: %v", err))
	}
	statusCounter, err := meter.Int64Counter("order_status_changes", metric.WithDescription("Total number of order status changes"))
	if err != nil {
		panic(fmt.Sprintf("failed to create order_status_changes counter: %v", err))
	}
	return &Orders{
		store:         orderStore,
		enricher:      enricher,
		publisher:     publisher,
		validate:      newValidator(),
		ordersCounter: ordersCounter,
		statusCounter: statusCounter,
		now:           time.Now,
	}
}

func (s *Orders) Create(ctx context.Context, ownerID string, order OrderCreateDto) (*OrderDto, error) {
	if err := s.validate.Struct(order); err != nil {
		return nil, toValidationError(err)
	}

	status := db.OrderStatusNewOrder
	if order.OrderStatus != "" {
		status = db.OrderStatus(order.OrderStatus)
	}
	orderDate := s.now()
	if order.OrderDate != nil {
		orderDate = *order.OrderDate
	}

	created, err := s.store.Create(ctx, db.CreateOrderParams{
		OwnerID:     ownerID,
		UserID:      order.UserID,
		PickupID:    order.PickupID,
		Items:       order.Items,
		ProductIDs:  syncProductIDs(order.Items, order.ProductIDs),
		OrderStatus: status,
		OrderDate:   orderDate,
		Total:       *order.Total,
	})
	if err != nil {
		return nil, err
	}

	event := events.OrderCreatedEvent{
		Carrier:   traceCarrier(ctx),
		OrderID:   created.ID,
		OwnerID:   created.OwnerID,
		PickupID:  created.PickupID,
		Total:     created.Total,
		CreatedAt: created.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish OrderCreatedEvent", "order_id", created.ID, "error", err)
	}
	s.ordersCounter.Add(ctx, 1)

	return &s.enricher.Enrich(ctx, ownerID, []db.Order{*created})[0], nil
}

func (s *Orders) ChangeStatus(ctx context.Context, ownerID string, id uuid.UUID, status string) error {
	parsed, err := db.ParseOrderStatus(status)
	if err != nil {
		return shoperrors.NewValidationError("orderStatus", err.Error())
	}

	rows, err := s.store.UpdateStatus(ctx, ownerID, id, parsed)
	if err != nil {
		return err
	}
	if rows == 0 {
		return shoperrors.ErrOrderNotFound
	}

	event := events.OrderStatusChangedEvent{
		Carrier:   traceCarrier(ctx),
		OrderID:   id,
		OwnerID:   ownerID,
		Status:    string(parsed),
		ChangedAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish OrderStatusChangedEvent", "order_id", id, "error", err)
	}
	s.statusCounter.Add(ctx, 1)
	return nil
}

func (s *Orders) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*OrderDto, error) {
	order, err := s.store.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return &s.enricher.Enrich(ctx, ownerID, []db.Order{*order})[0], nil
}

func (s *Orders) FindByIDs(ctx context.Context, ownerID string, ids []uuid.UUID) ([]OrderDto, error) {
	if len(ids) == 0 {
		return []OrderDto{}, nil
	}
	orders, err := s.store.FindByIDs(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}
	return s.enricher.Enrich(ctx, ownerID, orders), nil
}

// syncProductIDs makes the product id list match the keys of items. Requested ids keep
// their position; ids missing from items are dropped and unlisted keys are appended sorted.
func syncProductIDs(items map[string]int32, requested []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, id := range requested {
		if _, ok := items[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(items)) {
		if !seen[id] {
			out = append(out, id)
		}
	}
	return out
}

func traceCarrier(ctx context.Context) map[string]string {
	carrier := make(propagation.MapCarrier)
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	if len(carrier) == 0 {
		return nil
	}
	return carrier
}

func toOrderDto(o *db.Order) *OrderDto {
	items := o.Items
	if items == nil {
		items = map[string]int32{}
	}
	productIDs := o.ProductIDs
	if productIDs == nil {
		productIDs = []string{}
	}
	return &OrderDto{
		ID:          o.ID,
		OwnerID:     o.OwnerID,
		UserID:      o.UserID,
		PickupID:    o.PickupID,
		Items:       items,
		ProductIDs:  productIDs,
		OrderStatus: string(o.OrderStatus),
		OrderDate:   formatTime(o.OrderDate),
		Total:       o.Total,
		CreatedAt:   formatTime(o.CreatedAt),
		UpdatedAt:   formatTime(o.UpdatedAt),
	}
}
