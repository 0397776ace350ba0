package service

import (
	"context"
	"sync"

	shoperrors "github.com/abgdnv/shopfront/internal/errors"
	"github.com/abgdnv/shopfront/internal/store/db"
	"github.com/abgdnv/shopfront/pkg/messaging"
	"github.com/abgdnv/shopfront/pkg/objectstore"
	"github.com/google/uuid"
)

// mockCategoryStore is a mock implementation of the CategoryStore interface
type mockCategoryStore struct {
	categories  []db.Category
	category    *db.Category
	sequence    []string
	error       error
	sequenceErr error
}

func (m *mockCategoryStore) FindByOwner(_ context.Context, _ string) ([]db.Category, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.categories, nil
}

func (m *mockCategoryStore) FindByID(_ context.Context, _ string, _ uuid.UUID) (*db.Category, error) {
	if m.error != nil {
		return nil, m.error
	}
	if m.category == nil {
		return nil, shoperrors.ErrCategoryNotFound
	}
	return m.category, nil
}

func (m *mockCategoryStore) FindSequence(_ context.Context, _ string) ([]string, error) {
	if m.sequenceErr != nil {
		return nil, m.sequenceErr
	}
	return m.sequence, nil
}

// mockProductStore is a mock implementation of the ProductStore interface.
// It records the FindTitles and FindByIDs calls.
type mockProductStore struct {
	products   []db.Product
	product    *db.Product
	sequence   []string
	titles     []db.ProductTitle
	error      error
	titlesErr  error
	titleCalls [][]string
	byIDsCalls int
}

func (m *mockProductStore) FindByCategory(_ context.Context, _ string, _ uuid.UUID) ([]db.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockProductStore) FindByID(_ context.Context, _ string, _ uuid.UUID) (*db.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	if m.product == nil {
		return nil, shoperrors.ErrProductNotFound
	}
	return m.product, nil
}

func (m *mockProductStore) FindByIDs(_ context.Context, _ string, _ []uuid.UUID) ([]db.Product, error) {
	m.byIDsCalls++
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockProductStore) FindTitles(_ context.Context, _ string, ids []string) ([]db.ProductTitle, error) {
	m.titleCalls = append(m.titleCalls, ids)
	if m.titlesErr != nil {
		return nil, m.titlesErr
	}
	return m.titles, nil
}

func (m *mockProductStore) FindSequence(_ context.Context, _ string, _ uuid.UUID) ([]string, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.sequence, nil
}

// mockOrderStore is a mock implementation of the OrderStore interface
type mockOrderStore struct {
	order        *db.Order
	orders       []db.Order
	error        error
	rowsAffected int64
	created      *db.CreateOrderParams
	calls        int
}

func (m *mockOrderStore) Create(_ context.Context, params db.CreateOrderParams) (*db.Order, error) {
	m.calls++
	m.created = &params
	if m.error != nil {
		return nil, m.error
	}
	if m.order != nil {
		return m.order, nil
	}
	return &db.Order{
		ID:          uuid.New(),
		OwnerID:     params.OwnerID,
		UserID:      params.UserID,
		PickupID:    params.PickupID,
		Items:       params.Items,
		ProductIDs:  params.ProductIDs,
		OrderStatus: params.OrderStatus,
		OrderDate:   params.OrderDate,
		Total:       params.Total,
		CreatedAt:   params.OrderDate,
		UpdatedAt:   params.OrderDate,
	}, nil
}

func (m *mockOrderStore) FindByID(_ context.Context, _ string, _ uuid.UUID) (*db.Order, error) {
	m.calls++
	if m.error != nil {
		return nil, m.error
	}
	if m.order == nil {
		return nil, shoperrors.ErrOrderNotFound
	}
	return m.order, nil
}

func (m *mockOrderStore) FindByIDs(_ context.Context, _ string, _ []uuid.UUID) ([]db.Order, error) {
	m.calls++
	if m.error != nil {
		return nil, m.error
	}
	return m.orders, nil
}

func (m *mockOrderStore) UpdateStatus(_ context.Context, _ string, _ uuid.UUID, _ db.OrderStatus) (int64, error) {
	m.calls++
	if m.error != nil {
		return 0, m.error
	}
	return m.rowsAffected, nil
}

// mockShopStore is a mock implementation of the ShopStore interface
type mockShopStore struct {
	shop      *db.Shop
	error     error
	createErr error
	updateErr error
	created   *db.CreateShopParams
	updated   *db.UpdateShopParams
}

func (m *mockShopStore) FindByOwner(_ context.Context, _ string) (*db.Shop, error) {
	if m.error != nil {
		return nil, m.error
	}
	if m.shop == nil {
		return nil, shoperrors.ErrShopNotFound
	}
	return m.shop, nil
}

func (m *mockShopStore) Create(_ context.Context, params db.CreateShopParams) (*db.Shop, error) {
	m.created = &params
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &db.Shop{
		ID:            uuid.New(),
		OwnerID:       params.OwnerID,
		Title:         params.Title,
		ImageUrl:      params.ImageUrl,
		ImagePath:     params.ImagePath,
		Prefecture:    params.Prefecture,
		City:          params.City,
		StreetAddress: params.StreetAddress,
	}, nil
}

func (m *mockShopStore) Update(_ context.Context, params db.UpdateShopParams) (*db.Shop, error) {
	m.updated = &params
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	updated := *m.shop
	if params.Title != nil {
		updated.Title = *params.Title
	}
	if params.ImageUrl != nil {
		updated.ImageUrl = *params.ImageUrl
	}
	if params.ImagePath != nil {
		updated.ImagePath = *params.ImagePath
	}
	return &updated, nil
}

// mockPublisher collects published events
type mockPublisher struct {
	mu     sync.Mutex
	events []messaging.Event
	error  error
}

func (m *mockPublisher) Publish(_ context.Context, event messaging.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.error
}

// mockImageStorage is a mock implementation of the ImageStorage interface
type mockImageStorage struct {
	object    objectstore.Object
	uploadErr error
	deleteErr error
	uploaded  []string
	deleted   []string
}

func (m *mockImageStorage) Upload(_ context.Context, _, fileName, _ string, _ []byte) (objectstore.Object, error) {
	m.uploaded = append(m.uploaded, fileName)
	if m.uploadErr != nil {
		return objectstore.Object{}, m.uploadErr
	}
	return m.object, nil
}

func (m *mockImageStorage) Delete(_ context.Context, path string) error {
	m.deleted = append(m.deleted, path)
	return m.deleteErr
}
