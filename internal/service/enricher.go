package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/abgdnv/shopfront/internal/store/db"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// TitleSource looks up product titles in bulk.
type TitleSource interface {
	FindTitles(ctx context.Context, ownerID string, ids []string) ([]db.ProductTitle, error)
}

// Enricher attaches product titles to orders with one lookup per batch.
type Enricher struct {
	titles   TitleSource
	degraded metric.Int64Counter
}

func NewEnricher(titles TitleSource) *Enricher {
	meter := otel.Meter(meterName)
	degraded, err := meter.Int64Counter("order_enrichment_degraded",
		metric.WithDescription("Order batches returned without product titles because the lookup failed"))
	if err != nil {
		panic(fmt.Sprintf("failed to create order_enrichment_degraded counter: %v", err))
	}
	return &Enricher{titles: titles, degraded: degraded}
}

// Enrich returns one OrderDto per order, in input order. Every product id in an order's
// items gets a title; ids without a known product are labelled with the id itself.
// A failed lookup is logged and the orders are returned labelled with ids only.
func (e *Enricher) Enrich(ctx context.Context, ownerID string, orders []db.Order) []OrderDto {
	if len(orders) == 0 {
		return []OrderDto{}
	}

	distinct := make(map[string]struct{})
	for _, o := range orders {
		for id := range o.Items {
			distinct[id] = struct{}{}
		}
	}

	titleByID := map[string]string{}
	if len(distinct) > 0 {
		ids := slices.Sorted(maps.Keys(distinct))
		found, err := e.titles.FindTitles(ctx, ownerID, ids)
		if err != nil {
			slog.WarnContext(ctx, "Product title lookup failed, returning orders without titles",
				"orders", len(orders), "products", len(ids), "error", err)
			e.degraded.Add(ctx, 1)
		} else {
			for _, t := range found {
				titleByID[t.ID.String()] = t.Title
			}
		}
	}

	out := make([]OrderDto, len(orders))
	for i := range orders {
		titles := make(map[string]string, len(orders[i].Items))
		for id := range orders[i].Items {
			titles[id] = titleFor(titleByID, id)
		}
		dto := toOrderDto(&orders[i])
		dto.ProductTitles = titles
		out[i] = *dto
	}
	return out
}

// titleFor matches id against canonical product ids, so "67E26FBF-..." finds "67e26fbf-...".
func titleFor(titleByID map[string]string, id string) string {
	if title, ok := titleByID[id]; ok {
		return title
	}
	if parsed, err := uuid.Parse(id); err == nil {
		if title, ok := titleByID[parsed.String()]; ok {
			return title
		}
	}
	return id
}
