package seeddata

import (
	"testing"

	"storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallDataset() Dataset {
	return NewGenerator(testAnchor).Generate(Volumes{Customers: 5, Products: 4, Orders: 8, OrderItems: 20})
}

func TestDataset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Dataset)
		wantErr bool
	}{
		{
			name:   "generated dataset is valid",
			mutate: func(*Dataset) {},
		},
		{
			name: "duplicate email",
			mutate: func(d *Dataset) {
				d.Customers[1].Email = d.Customers[0].Email
			},
			wantErr: true,
		},
		{
			name: "duplicate sku",
			mutate: func(d *Dataset) {
				d.Products[2].SKU = d.Products[0].SKU
			},
			wantErr: true,
		},
		{
			name: "duplicate order number",
			mutate: func(d *Dataset) {
				d.Orders[3].OrderNumber = d.Orders[0].OrderNumber
			},
			wantErr: true,
		},
		{
			name: "order with missing customer",
			mutate: func(d *Dataset) {
				d.Orders[0].CustomerID = 999
			},
			wantErr: true,
		},
		{
			name: "item with missing order",
			mutate: func(d *Dataset) {
				d.OrderItems[0].OrderID = 999
			},
			wantErr: true,
		},
		{
			name: "item with missing product",
			mutate: func(d *Dataset) {
				d.OrderItems[0].ProductID = 999
			},
			wantErr: true,
		},
		{
			name: "item with zero quantity",
			mutate: func(d *Dataset) {
				d.OrderItems[0].Quantity = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := smallDataset()
			tt.mutate(&ds)

			err := ds.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrConstraintViolation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDataset_Index(t *testing.T) {
	ds := smallDataset()
	idx := ds.Index()

	assert.Len(t, idx.Customers, 5)
	assert.Len(t, idx.Products, 4)
	assert.Len(t, idx.Orders, 8)

	total := 0
	for orderID, items := range idx.ItemsByOrder {
		assert.Contains(t, idx.Orders, orderID)
		for _, it := range items {
			assert.Equal(t, orderID, it.OrderID)
		}
		total += len(items)
	}
	assert.Equal(t, len(ds.OrderItems), total)
}
