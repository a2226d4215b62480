package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/mocks"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(api *mocks.MockStoreAPI, health Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(zerolog.Nop()), CORS())
	NewHandler(api, health).RegisterRoutes(r)
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Routes(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		setupMocks   func(*mocks.MockStoreAPI)
		expectedCode int
		expectedBody string
	}{
		{
			name: "customers",
			path: "/api/customers",
			setupMocks: func(api *mocks.MockStoreAPI) {
				api.On("ListCustomers", mock.Anything).Return([]domain.CustomerSummary{
					{ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", City: "London"},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":1,"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","city":"London"}]`,
		},
		{
			name: "empty products",
			path: "/api/products",
			setupMocks: func(api *mocks.MockStoreAPI) {
				api.On("ListProducts", mock.Anything).Return([]domain.ProductSummary{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name: "orders",
			path: "/api/orders",
			setupMocks: func(api *mocks.MockStoreAPI) {
				api.On("ListOrders", mock.Anything).Return([]domain.OrderSummary{
					{ID: 7, OrderNumber: "ORD-7", Status: domain.StatusCancelled, TotalAmount: decimal.RequireFromString("99.95"), CustomerFullName: "Ada Lovelace"},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":7,"orderNumber":"ORD-7","orderDate":"0001-01-01T00:00:00Z","status":"Cancelled","totalAmount":99.95,"customerFullName":"Ada Lovelace"}]`,
		},
		{
			name: "stats",
			path: "/api/stats",
			setupMocks: func(api *mocks.MockStoreAPI) {
				api.On("GetStats", mock.Anything).Return(domain.StoreStats{
					CustomerCount: 100, ProductCount: 50, OrderCount: 200, OrderItemCount: 500,
					TotalRevenue: decimal.RequireFromString("1234.5"),
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"customerCount":100,"productCount":50,"orderCount":200,"orderItemCount":500,"totalRevenue":1234.5}`,
		},
		{
			name: "store failure",
			path: "/api/customers",
			setupMocks: func(api *mocks.MockStoreAPI) {
				api.On("ListCustomers", mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"database error"}`,
		},
		{
			name: "stats failure",
			path: "/api/stats",
			setupMocks: func(api *mocks.MockStoreAPI) {
				api.On("GetStats", mock.Anything).Return(domain.StoreStats{}, errors.New("timeout"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"timeout"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(mocks.MockStoreAPI)
			tt.setupMocks(api)

			w := serve(newTestRouter(api, nil), http.MethodGet, tt.path)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
			api.AssertExpectations(t)
		})
	}
}

func TestHandler_Health(t *testing.T) {
	tests := []struct {
		name         string
		health       Pinger
		expectedCode int
		expected     HealthResponse
	}{
		{name: "no pinger", expectedCode: http.StatusOK, expected: HealthResponse{Status: "ok"}},
		{name: "store up", health: stubPinger{}, expectedCode: http.StatusOK, expected: HealthResponse{Status: "ok"}},
		{
			name:         "store down",
			health:       stubPinger{err: domain.ErrStoreUnreachable},
			expectedCode: http.StatusServiceUnavailable,
			expected:     HealthResponse{Status: "unavailable", Error: "store unreachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newTestRouter(new(mocks.MockStoreAPI), tt.health), http.MethodGet, "/healthz")

			assert.Equal(t, tt.expectedCode, w.Code)
			var got HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	api := new(mocks.MockStoreAPI)
	w := serve(newTestRouter(api, nil), http.MethodOptions, "/api/orders")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
	api.AssertNotCalled(t, "ListOrders", mock.Anything)
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	api := new(mocks.MockStoreAPI)
	api.On("ListProducts", mock.Anything).Return([]domain.ProductSummary{}, nil)
	r := newTestRouter(api, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}
