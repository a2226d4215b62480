package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PageSize caps every list projection. There is no cursor.
const PageSize = 10

// Money goes on the wire as a JSON number.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type CustomerSummary struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	City      string `json:"city"`
}

type ProductSummary struct {
	ID            uint64          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	StockQuantity int             `json:"stockQuantity"`
}

type OrderSummary struct {
	ID               uint64          `json:"id"`
	OrderNumber      string          `json:"orderNumber"`
	OrderDate        time.Time       `json:"orderDate"`
	Status           OrderStatus     `json:"status"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	CustomerFullName string          `json:"customerFullName"`
}

type StoreStats struct {
	CustomerCount  int64           `json:"customerCount"`
	ProductCount   int64           `json:"productCount"`
	OrderCount     int64           `json:"orderCount"`
	OrderItemCount int64           `json:"orderItemCount"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
}

// TableCounts holds row counts for the four store tables.
type TableCounts struct {
	Customers  int64 `json:"customers"`
	Products   int64 `json:"products"`
	Orders     int64 `json:"orders"`
	OrderItems int64 `json:"orderItems"`
}

// AllPopulated reports whether every table holds at least one row.
func (c TableCounts) AllPopulated() bool {
	return c.Customers > 0 && c.Products > 0 && c.Orders > 0 && c.OrderItems > 0
}
