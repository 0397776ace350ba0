package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	shoperrors "github.com/abgdnv/shopfront/internal/errors"
	"github.com/abgdnv/shopfront/internal/service"
	"github.com/abgdnv/shopfront/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCategoryService is a mock implementation of the CategoryService interface
type mockCategoryService struct {
	categories []service.CategoryDto
	category   *service.CategoryDto
	error      error
}

func (m *mockCategoryService) FindSorted(_ context.Context, _ string) ([]service.CategoryDto, error) {
	return m.categories, m.error
}

func (m *mockCategoryService) FindByID(_ context.Context, _ string, _ uuid.UUID) (*service.CategoryDto, error) {
	return m.category, m.error
}

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	products []service.ProductDto
	product  *service.ProductDto
	ids      []uuid.UUID
	error    error
}

func (m *mockProductService) FindSortedInCategory(_ context.Context, _ string, _ uuid.UUID) ([]service.ProductDto, error) {
	return m.products, m.error
}

func (m *mockProductService) FindByID(_ context.Context, _ string, _ uuid.UUID) (*service.ProductDto, error) {
	return m.product, m.error
}

func (m *mockProductService) FindByIDs(_ context.Context, _ string, ids []uuid.UUID) ([]service.ProductDto, error) {
	m.ids = ids
	return m.products, m.error
}

// mockOrderService is a mock implementation of the OrderService interface
type mockOrderService struct {
	order   *service.OrderDto
	orders  []service.OrderDto
	ownerID string
	status  string
	error   error
}

func (m *mockOrderService) Create(_ context.Context, ownerID string, _ service.OrderCreateDto) (*service.OrderDto, error) {
	m.ownerID = ownerID
	return m.order, m.error
}

func (m *mockOrderService) ChangeStatus(_ context.Context, ownerID string, _ uuid.UUID, status string) error {
	m.ownerID = ownerID
	m.status = status
	return m.error
}

func (m *mockOrderService) FindByID(_ context.Context, _ string, _ uuid.UUID) (*service.OrderDto, error) {
	return m.order, m.error
}

func (m *mockOrderService) FindByIDs(_ context.Context, _ string, _ []uuid.UUID) ([]service.OrderDto, error) {
	return m.orders, m.error
}

// mockShopService is a mock implementation of the ShopService interface
type mockShopService struct {
	shop    *service.ShopDto
	created service.ShopCreateDto
	image   *service.Image
	error   error
}

func (m *mockShopService) FindByOwner(_ context.Context, _ string) (*service.ShopDto, error) {
	return m.shop, m.error
}

func (m *mockShopService) Create(_ context.Context, _ string, shop service.ShopCreateDto, image *service.Image) (*service.ShopDto, error) {
	m.created = shop
	m.image = image
	return m.shop, m.error
}

func (m *mockShopService) Update(_ context.Context, _ string, _ service.ShopUpdateDto, image *service.Image) (*service.ShopDto, error) {
	m.image = image
	return m.shop, m.error
}

type mockPinger struct {
	error error
}

func (m mockPinger) Ping(_ context.Context) error { return m.error }

type ErrorResponse struct {
	Error string `json:"error"`
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(b)
}

type handlerMocks struct {
	categories *mockCategoryService
	products   *mockProductService
	orders     *mockOrderService
	shops      *mockShopService
	db         mockPinger
}

func newTestHandler(m handlerMocks) *Handler {
	if m.categories == nil {
		m.categories = &mockCategoryService{}
	}
	if m.products == nil {
		m.products = &mockProductService{}
	}
	if m.orders == nil {
		m.orders = &mockOrderService{}
	}
	if m.shops == nil {
		m.shops = &mockShopService{}
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewHandler(m.categories, m.products, m.orders, m.shops, m.db, 1<<20, logger)
}

// withOwner scopes a request to an owner the way the tenant middleware does
func withOwner(req *http.Request, ownerID string) *http.Request {
	return req.WithContext(web.WithOwnerID(req.Context(), ownerID))
}

func Test_Handler_HealthCheck(t *testing.T) {
	testCases := []struct {
		name         string
		db           mockPinger
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - database reachable",
			expectedCode: http.StatusOK,
			expectedBody: `{"status":"ok","message":"Health check passed"}`,
		},
		{
			name:         "Error - database unreachable",
			db:           mockPinger{error: errors.New("dial tcp: connection refused")},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"status":"error","message":"Database unavailable"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(handlerMocks{db: tc.db})
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			rr := httptest.NewRecorder()
			// when
			api.HealthCheck(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_Handler_FindCategoryByID(t *testing.T) {
	id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	category := &service.CategoryDto{ID: id, OwnerID: "owner-1", Title: "Drinks"}

	testCases := []struct {
		name         string
		mockService  *mockCategoryService
		pathID       string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - category found",
			mockService:  &mockCategoryService{category: category},
			pathID:       id.String(),
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, category),
		},
		{
			name:         "Error - invalid id",
			mockService:  &mockCategoryService{},
			pathID:       "123-invalid-id",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid ID: 123-invalid-id"}),
		},
		{
			name:         "Error - category not found",
			mockService:  &mockCategoryService{error: shoperrors.ErrCategoryNotFound},
			pathID:       id.String(),
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, ErrorResponse{Error: "Category not found"}),
		},
		{
			name:         "Error - service error",
			mockService:  &mockCategoryService{error: errors.New("pq: relation does not exist")},
			pathID:       id.String(),
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to retrieve category"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(handlerMocks{categories: tc.mockService})
			req := withOwner(httptest.NewRequest(http.MethodGet, "/api/categories/"+tc.pathID, nil), "owner-1")
			req.SetPathValue("id", tc.pathID)
			rr := httptest.NewRecorder()
			// when
			api.FindCategoryByID(rr, req)
			// then
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_Handler_FindProductsByIDs(t *testing.T) {
	a := uuid.MustParse("123e4567-e89b-12d3-a456-426614174001")
	b := uuid.MustParse("123e4567-e89b-12d3-a456-426614174002")

	t.Run("Success - ids passed in request order", func(t *testing.T) {
		products := &mockProductService{products: []service.ProductDto{{ID: b}, {ID: a}}}
		api := newTestHandler(handlerMocks{products: products})
		req := withOwner(httptest.NewRequest(http.MethodGet, "/api/products?ids="+b.String()+","+a.String(), nil), "owner-1")
		rr := httptest.NewRecorder()

		api.FindProductsByIDs(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []uuid.UUID{b, a}, products.ids)
	})

	t.Run("Error - no ids", func(t *testing.T) {
		api := newTestHandler(handlerMocks{})
		req := withOwner(httptest.NewRequest(http.MethodGet, "/api/products", nil), "owner-1")
		rr := httptest.NewRecorder()

		api.FindProductsByIDs(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func Test_Handler_CreateOrder(t *testing.T) {
	orderID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174010")
	created := &service.OrderDto{
		ID:            orderID,
		OwnerID:       "owner-1",
		PickupID:      "A-12",
		Items:         map[string]int32{"p1": 2},
		ProductIDs:    []string{"p1"},
		OrderStatus:   "newOrder",
		Total:         1200,
		ProductTitles: map[string]string{"p1": "Tea"},
	}

	testCases := []struct {
		name         string
		mockService  *mockOrderService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - order created",
			mockService:  &mockOrderService{order: created},
			body:         `{"pickupId":"A-12","items":{"p1":2},"productIds":["p1"],"total":1200}`,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, created),
		},
		{
			name:         "Error - malformed body",
			mockService:  &mockOrderService{},
			body:         `{"pickupId":`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid request body"}),
		},
		{
			name:         "Error - fractional quantity",
			mockService:  &mockOrderService{},
			body:         `{"pickupId":"A-12","items":{"p1":1.5},"productIds":["p1"],"total":1200}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, ErrorResponse{Error: "Invalid request body"}),
		},
		{
			name: "Error - validation failed",
			mockService: &mockOrderService{error: shoperrors.NewFieldsValidationError(map[string]string{
				"pickupId": "is required",
				"total":    "is required",
			})},
			body:         `{"items":{"p1":2},"productIds":["p1"]}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"error":"pickupId is required","validation_errors":{"pickupId":"is required","total":"is required"}}`,
		},
		{
			name:         "Error - store failure is not leaked",
			mockService:  &mockOrderService{error: errors.New("pq: connection reset by peer")},
			body:         `{"pickupId":"A-12","items":{"p1":2},"productIds":["p1"],"total":1200}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, ErrorResponse{Error: "Failed to create order"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(handlerMocks{orders: tc.mockService})
			req := withOwner(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tc.body)), "owner-1")
			rr := httptest.NewRecorder()
			// when
			api.CreateOrder(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_Handler_ChangeOrderStatus(t *testing.T) {
	orderID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174010")

	testCases := []struct {
		name         string
		mockService  *mockOrderService
		body         string
		expectedCode int
	}{
		{name: "Success - status changed", mockService: &mockOrderService{}, body: `{"orderStatus":"served"}`, expectedCode: http.StatusOK},
		{
			name:         "Error - unknown status",
			mockService:  &mockOrderService{error: shoperrors.NewValidationError("orderStatus", "unknown order status")},
			body:         `{"orderStatus":"shipped"}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - order not found",
			mockService:  &mockOrderService{error: shoperrors.ErrOrderNotFound},
			body:         `{"orderStatus":"served"}`,
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(handlerMocks{orders: tc.mockService})
			req := withOwner(httptest.NewRequest(http.MethodPut, "/api/orders/"+orderID.String()+"/status", strings.NewReader(tc.body)), "owner-1")
			req.SetPathValue("orderId", orderID.String())
			rr := httptest.NewRecorder()
			// when
			api.ChangeOrderStatus(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.Equal(t, "owner-1", tc.mockService.ownerID)
		})
	}
}

func multipartShop(t *testing.T, shopJSON string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("shop", shopJSON))
	if image != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="front.jpg"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func Test_Handler_CreateShop(t *testing.T) {
	shopID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174020")

	t.Run("Success - shop with image", func(t *testing.T) {
		shops := &mockShopService{shop: &service.ShopDto{ID: shopID}}
		api := newTestHandler(handlerMocks{shops: shops})
		body, contentType := multipartShop(t, `{"title":"Kissa","prefecture":"東京都","city":"Shibuya","streetAddress":"1-2-3"}`, []byte{0xFF, 0xD8})
		req := withOwner(httptest.NewRequest(http.MethodPost, "/api/shop", body), "owner-1")
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		api.CreateShop(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"id":"`+shopID.String()+`"}`, rr.Body.String())
		assert.Equal(t, "Kissa", shops.created.Title)
		require.NotNil(t, shops.image)
		assert.Equal(t, "front.jpg", shops.image.FileName)
		assert.Equal(t, "image/jpeg", shops.image.ContentType)
	})

	t.Run("Error - shop already exists", func(t *testing.T) {
		shops := &mockShopService{error: shoperrors.ErrShopAlreadyExists}
		api := newTestHandler(handlerMocks{shops: shops})
		body, contentType := multipartShop(t, `{"title":"Kissa"}`, nil)
		req := withOwner(httptest.NewRequest(http.MethodPost, "/api/shop", body), "owner-1")
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		api.CreateShop(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Nil(t, shops.image)
	})

	t.Run("Error - missing shop part", func(t *testing.T) {
		api := newTestHandler(handlerMocks{})
		body, contentType := multipartShop(t, "", nil)
		req := withOwner(httptest.NewRequest(http.MethodPost, "/api/shop", body), "owner-1")
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		api.CreateShop(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Error - upload failure", func(t *testing.T) {
		shops := &mockShopService{error: errors.Join(shoperrors.ErrImageUpload, errors.New("AccessDenied"))}
		api := newTestHandler(handlerMocks{shops: shops})
		body, contentType := multipartShop(t, `{"title":"Kissa"}`, []byte{0xFF, 0xD8})
		req := withOwner(httptest.NewRequest(http.MethodPost, "/api/shop", body), "owner-1")
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		api.CreateShop(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, toJSON(t, ErrorResponse{Error: "Failed to upload image"}), rr.Body.String())
	})
}

func Test_Handler_Routes(t *testing.T) {
	orderID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174010")
	orders := &mockOrderService{order: &service.OrderDto{ID: orderID}}
	api := newTestHandler(handlerMocks{orders: orders, shops: &mockShopService{shop: &service.ShopDto{OwnerID: "owner-1"}}})
	r := chi.NewRouter()
	api.RegisterRoutes(r, nil)

	testCases := []struct {
		name         string
		method       string
		target       string
		expectedCode int
	}{
		{name: "order with owner", method: http.MethodGet, target: "/api/orders/" + orderID.String() + "?ownerId=owner-1", expectedCode: http.StatusOK},
		{name: "order without owner", method: http.MethodGet, target: "/api/orders/" + orderID.String(), expectedCode: http.StatusUnauthorized},
		{name: "public shop", method: http.MethodGet, target: "/api/shop/owner-1", expectedCode: http.StatusOK},
		{name: "shop writes disabled", method: http.MethodPost, target: "/api/shop", expectedCode: http.StatusNotFound},
		{name: "health", method: http.MethodGet, target: "/api/health", expectedCode: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.target, nil))
			assert.Equal(t, tc.expectedCode, rr.Code)
		})
	}
}
