package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/infra"
	"storefront/internal/repository/sqlstore"
	"storefront/internal/seeddata"
	"storefront/internal/services"
	"storefront/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededAPI serves a freshly seeded store and returns the local service next
// to a client for the served API.
func seededAPI(t *testing.T) (*services.StoreService, *infra.StoreClient, string) {
	t.Helper()
	repo := sqlstore.NewStoreRepository(testutil.NewSQLite(t), zerolog.Nop())
	volumes := seeddata.Volumes{Customers: 12, Products: 12, Orders: 15, OrderItems: 30}
	seeder := services.NewSeedService(repo, seeddata.NewGenerator(time.Time{}), volumes, zerolog.Nop())
	ok, err := seeder.Reseed(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	store := services.NewStoreService(repo, zerolog.Nop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store, store).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return store, infra.NewStoreClient(srv.URL, 2*time.Second), srv.URL
}

func TestRoundTrip_ClientMatchesLocal(t *testing.T) {
	store, client, _ := seededAPI(t)
	ctx := context.Background()

	localCustomers, err := store.ListCustomers(ctx)
	require.NoError(t, err)
	remoteCustomers, err := client.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, localCustomers, remoteCustomers)

	localProducts, err := store.ListProducts(ctx)
	require.NoError(t, err)
	remoteProducts, err := client.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, remoteProducts, len(localProducts))
	for i := range localProducts {
		l, r := localProducts[i], remoteProducts[i]
		assert.Equal(t, l.ID, r.ID)
		assert.Equal(t, l.Name, r.Name)
		assert.Equal(t, l.Category, r.Category)
		assert.Equal(t, l.StockQuantity, r.StockQuantity)
		assert.True(t, l.Price.Equal(r.Price), "product %d price %s != %s", l.ID, l.Price, r.Price)
	}

	localOrders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	remoteOrders, err := client.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, remoteOrders, len(localOrders))
	for i := range localOrders {
		l, r := localOrders[i], remoteOrders[i]
		assert.Equal(t, l.ID, r.ID)
		assert.Equal(t, l.OrderNumber, r.OrderNumber)
		assert.Equal(t, l.Status, r.Status)
		assert.Equal(t, l.CustomerFullName, r.CustomerFullName)
		assert.True(t, l.OrderDate.Equal(r.OrderDate))
		assert.True(t, l.TotalAmount.Equal(r.TotalAmount), "order %d total %s != %s", l.ID, l.TotalAmount, r.TotalAmount)
	}

	localStats, err := store.GetStats(ctx)
	require.NoError(t, err)
	remoteStats, err := client.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, localStats.CustomerCount, remoteStats.CustomerCount)
	assert.Equal(t, localStats.ProductCount, remoteStats.ProductCount)
	assert.Equal(t, localStats.OrderCount, remoteStats.OrderCount)
	assert.Equal(t, localStats.OrderItemCount, remoteStats.OrderItemCount)
	assert.True(t, localStats.TotalRevenue.Equal(remoteStats.TotalRevenue))
}

func TestRoundTrip_MoneyIsNumeric(t *testing.T) {
	_, _, baseURL := seededAPI(t)

	tests := []struct {
		name  string
		path  string
		field string
		list  bool
	}{
		{name: "stats revenue", path: "/api/stats", field: "totalRevenue"},
		{name: "product price", path: "/api/products", field: "price", list: true},
		{name: "order total", path: "/api/orders", field: "totalAmount", list: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(baseURL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var obj map[string]any
			if tt.list {
				var rows []map[string]any
				require.NoError(t, json.Unmarshal(body, &rows))
				require.NotEmpty(t, rows)
				obj = rows[0]
			} else {
				require.NoError(t, json.Unmarshal(body, &obj))
			}
			assert.IsType(t, float64(0), obj[tt.field])
		})
	}
}
