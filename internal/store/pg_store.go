package store

import (
	"context"
	"errors"
	"fmt"

	shoperrors "github.com/abgdnv/shopfront/internal/errors"
	"github.com/abgdnv/shopfront/internal/store/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PgStore implements the store interfaces on a PostgreSQL pool.
// Each interface is exposed through its own accessor since method names overlap.
type PgStore struct {
	db *pgxpool.Pool
	q  *db.Queries
}

// NewPgStore creates a new instance of PgStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
		q:  db.New(dbp),
	}
}

func (p *PgStore) Categories() CategoryStore { return &pgCategoryStore{q: p.q} }
func (p *PgStore) Products() ProductStore    { return &pgProductStore{q: p.q} }
func (p *PgStore) Orders() OrderStore        { return &pgOrderStore{q: p.q} }
func (p *PgStore) Shops() ShopStore          { return &pgShopStore{q: p.q} }

// Ping checks that the database answers.
func (p *PgStore) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

// sequenceOrNil maps a missing sequence row to nil.
func sequenceOrNil(ids []string, err error) ([]string, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

type pgCategoryStore struct {
	q *db.Queries
}

func (s *pgCategoryStore) FindByOwner(ctx context.Context, ownerID string) ([]db.Category, error) {
	categories, err := s.q.FindCategoriesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

func (s *pgCategoryStore) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*db.Category, error) {
	category, err := s.q.FindCategoryByID(ctx, db.FindCategoryByIDParams{OwnerID: ownerID, ID: id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shoperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (s *pgCategoryStore) FindSequence(ctx context.Context, ownerID string) ([]string, error) {
	ids, err := sequenceOrNil(s.q.FindCategorySequence(ctx, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to find category sequence: %w", err)
	}
	return ids, nil
}

type pgProductStore struct {
	q *db.Queries
}

func (s *pgProductStore) FindByCategory(ctx context.Context, ownerID string, categoryID uuid.UUID) ([]db.Product, error) {
	products, err := s.q.FindProductsByCategory(ctx, db.FindProductsByCategoryParams{OwnerID: ownerID, CategoryID: categoryID})
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

func (s *pgProductStore) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*db.Product, error) {
	product, err := s.q.FindProductByID(ctx, db.FindProductByIDParams{OwnerID: ownerID, ID: id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shoperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (s *pgProductStore) FindByIDs(ctx context.Context, ownerID string, ids []uuid.UUID) ([]db.Product, error) {
	if len(ids) == 0 {
		return []db.Product{}, nil
	}
	products, err := s.q.FindProductsByIDs(ctx, db.FindProductsByIDsParams{OwnerID: ownerID, IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}
	return inIDOrder(ids, products, func(p db.Product) uuid.UUID { return p.ID }), nil
}

func (s *pgProductStore) FindTitles(ctx context.Context, ownerID string, ids []string) ([]db.ProductTitle, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if u, err := uuid.Parse(id); err == nil {
			parsed = append(parsed, u)
		}
	}
	if len(parsed) == 0 {
		return []db.ProductTitle{}, nil
	}
	titles, err := s.q.FindProductTitles(ctx, db.FindProductTitlesParams{OwnerID: ownerID, IDs: parsed})
	if err != nil {
		return nil, fmt.Errorf("failed to find product titles: %w", err)
	}
	return titles, nil
}

func (s *pgProductStore) FindSequence(ctx context.Context, ownerID string, categoryID uuid.UUID) ([]string, error) {
	ids, err := sequenceOrNil(s.q.FindProductSequence(ctx, db.FindProductSequenceParams{OwnerID: ownerID, CategoryID: categoryID}))
	if err != nil {
		return nil, fmt.Errorf("failed to find product sequence: %w", err)
	}
	return ids, nil
}

type pgOrderStore struct {
	q *db.Queries
}

func (s *pgOrderStore) Create(ctx context.Context, params db.CreateOrderParams) (*db.Order, error) {
	order, err := s.q.CreateOrder(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &order, nil
}

func (s *pgOrderStore) FindByID(ctx context.Context, ownerID string, id uuid.UUID) (*db.Order, error) {
	order, err := s.q.FindOrderByID(ctx, db.FindOrderByIDParams{OwnerID: ownerID, ID: id})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shoperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

func (s *pgOrderStore) FindByIDs(ctx context.Context, ownerID string, ids []uuid.UUID) ([]db.Order, error) {
	if len(ids) == 0 {
		return []db.Order{}, nil
	}
	orders, err := s.q.FindOrdersByIDs(ctx, db.FindOrdersByIDsParams{OwnerID: ownerID, IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to find orders by ids: %w", err)
	}
	return inIDOrder(ids, orders, func(o db.Order) uuid.UUID { return o.ID }), nil
}

func (s *pgOrderStore) UpdateStatus(ctx context.Context, ownerID string, id uuid.UUID, status db.OrderStatus) (int64, error) {
	rows, err := s.q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{OwnerID: ownerID, ID: id, OrderStatus: status})
	if err != nil {
		return 0, fmt.Errorf("failed to update order status: %w", err)
	}
	return rows, nil
}

type pgShopStore struct {
	q *db.Queries
}

func (s *pgShopStore) FindByOwner(ctx context.Context, ownerID string) (*db.Shop, error) {
	shop, err := s.q.FindShopByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shoperrors.ErrShopNotFound
		}
		return nil, fmt.Errorf("failed to find shop: %w", err)
	}
	return &shop, nil
}

func (s *pgShopStore) Create(ctx context.Context, params db.CreateShopParams) (*db.Shop, error) {
	shop, err := s.q.CreateShop(ctx, params)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, shoperrors.ErrShopAlreadyExists
		}
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	return &shop, nil
}

func (s *pgShopStore) Update(ctx context.Context, params db.UpdateShopParams) (*db.Shop, error) {
	shop, err := s.q.UpdateShop(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shoperrors.ErrShopNotFound
		}
		return nil, fmt.Errorf("failed to update shop: %w", err)
	}
	return &shop, nil
}

// inIDOrder arranges rows in the order of ids. Duplicate ids yield the row once.
func inIDOrder[T any](ids []uuid.UUID, rows []T, idOf func(T) uuid.UUID) []T {
	byID := make(map[uuid.UUID]T, len(rows))
	for _, row := range rows {
		byID[idOf(row)] = row
	}
	out := make([]T, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, row)
			delete(byID, id)
		}
	}
	return out
}
