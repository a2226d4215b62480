// Package seeddata builds the synthetic store contents. Every record is drawn
// from its own faker seeded with the record's 1-based ordinal, so row n of a
// collection is identical on every run for a given anchor time.
package seeddata

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"storefront/internal/domain"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// DefaultAnchor is the reference instant all generated dates are relative to.
var DefaultAnchor = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

type Volumes struct {
	Customers  int `json:"customers"`
	Products   int `json:"products"`
	Orders     int `json:"orders"`
	OrderItems int `json:"orderItems"`
}

var DefaultVolumes = Volumes{
	Customers:  100,
	Products:   50,
	Orders:     200,
	OrderItems: 500,
}

type Generator struct {
	anchor time.Time
}

func NewGenerator(anchor time.Time) *Generator {
	if anchor.IsZero() {
		anchor = DefaultAnchor
	}
	return &Generator{anchor: anchor.UTC()}
}

func (g *Generator) Anchor() time.Time {
	return g.anchor
}

// rowFaker returns a faker whose stream depends only on the ordinal.
func rowFaker(ordinal int) *gofakeit.Faker {
	return gofakeit.New(uint64(ordinal))
}

// Generate produces the four collections in dependency order: orders sample
// customer ids and items sample order and product ids from what was already
// generated.
func (g *Generator) Generate(v Volumes) Dataset {
	customers := g.Customers(v.Customers)
	products := g.Products(v.Products)
	orders := g.Orders(v.Orders, customers)
	items := g.OrderItems(v.OrderItems, orders, products)

	return Dataset{
		Customers:  customers,
		Products:   products,
		Orders:     orders,
		OrderItems: items,
	}
}

func (g *Generator) Customers(count int) []domain.Customer {
	out := make([]domain.Customer, 0, max(count, 0))
	for i := 1; i <= count; i++ {
		out = append(out, g.Customer(i))
	}
	return out
}

func (g *Generator) Customer(ordinal int) domain.Customer {
	f := rowFaker(ordinal)

	first := f.FirstName()
	last := f.LastName()
	addr := f.Address()
	created := g.pastWithin(f, 2)

	return domain.Customer{
		ID:           uint64(ordinal),
		FirstName:    first,
		LastName:     last,
		Email:        email(first, last, ordinal, f.DomainName()),
		Phone:        f.PhoneFormatted(),
		Address:      addr.Street,
		City:         addr.City,
		State:        addr.State,
		ZipCode:      addr.Zip,
		Country:      addr.Country,
		DateOfBirth:  g.between(f, g.anchor.AddDate(-68, 0, 0), g.anchor.AddDate(-18, 0, 0)),
		CreatedDate:  created,
		ModifiedDate: created,
	}
}

func (g *Generator) Products(count int) []domain.Product {
	out := make([]domain.Product, 0, max(count, 0))
	for i := 1; i <= count; i++ {
		out = append(out, g.Product(i))
	}
	return out
}

func (g *Generator) Product(ordinal int) domain.Product {
	f := rowFaker(ordinal)

	created := g.pastWithin(f, 1)

	return domain.Product{
		ID:            uint64(ordinal),
		Name:          f.ProductName(),
		Description:   f.ProductDescription(),
		Price:         money(f, 10, 1000),
		Category:      domain.ProductCategories[f.IntRange(0, len(domain.ProductCategories)-1)],
		SKU:           ean13(f, ordinal),
		StockQuantity: f.IntRange(0, 100),
		IsActive:      f.Float64() < 0.9,
		CreatedDate:   created,
		ModifiedDate:  created,
	}
}

// Orders returns nothing when there are no customers to own them.
func (g *Generator) Orders(count int, customers []domain.Customer) []domain.Order {
	if len(customers) == 0 {
		return []domain.Order{}
	}
	out := make([]domain.Order, 0, max(count, 0))
	for i := 1; i <= count; i++ {
		out = append(out, g.Order(i, customers))
	}
	return out
}

func (g *Generator) Order(ordinal int, customers []domain.Customer) domain.Order {
	f := rowFaker(ordinal)

	customer := customers[f.IntRange(0, len(customers)-1)]
	orderDate := g.pastWithin(f, 1)

	o := domain.Order{
		ID:              uint64(ordinal),
		CustomerID:      customer.ID,
		OrderNumber:     fmt.Sprintf("ORD-%05d-%04d", f.IntRange(10000, 99999), f.IntRange(1000, 9999)),
		OrderDate:       orderDate,
		Status:          domain.OrderStatuses[f.IntRange(0, len(domain.OrderStatuses)-1)],
		TotalAmount:     money(f, 50, 2000),
		ShippingAddress: f.Address().Address,
		BillingAddress:  f.Address().Address,
		CreatedDate:     orderDate,
		ModifiedDate:    orderDate,
	}
	if f.Float64() < 0.3 {
		note := f.Phrase()
		o.Notes = &note
	}
	return o
}

// OrderItems returns nothing when either parent collection is empty.
func (g *Generator) OrderItems(count int, orders []domain.Order, products []domain.Product) []domain.OrderItem {
	if len(orders) == 0 || len(products) == 0 {
		return []domain.OrderItem{}
	}
	out := make([]domain.OrderItem, 0, max(count, 0))
	for i := 1; i <= count; i++ {
		out = append(out, g.OrderItem(i, orders, products))
	}
	return out
}

func (g *Generator) OrderItem(ordinal int, orders []domain.Order, products []domain.Product) domain.OrderItem {
	f := rowFaker(ordinal)

	order := orders[f.IntRange(0, len(orders)-1)]
	product := products[f.IntRange(0, len(products)-1)]
	quantity := f.IntRange(1, 5)
	unitPrice := money(f, 10, 500)
	created := g.pastWithin(f, 1)

	return domain.OrderItem{
		ID:           uint64(ordinal),
		OrderID:      order.ID,
		ProductID:    product.ID,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TotalPrice:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedDate:  created,
		ModifiedDate: created,
	}
}

// pastWithin draws an instant in the given number of years before the anchor.
func (g *Generator) pastWithin(f *gofakeit.Faker, years int) time.Time {
	return g.between(f, g.anchor.AddDate(-years, 0, 0), g.anchor)
}

// Stores keep second precision at best, so dates are truncated up front.
func (g *Generator) between(f *gofakeit.Faker, start, end time.Time) time.Time {
	return f.DateRange(start, end).UTC().Truncate(time.Second)
}

func money(f *gofakeit.Faker, lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(f.Float64Range(lo, hi)).Round(2)
}

func email(first, last string, ordinal int, domainName string) string {
	return fmt.Sprintf("%s.%s%d@%s", localPart(first), localPart(last), ordinal, strings.ToLower(domainName))
}

func localPart(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// ean13 builds a valid EAN-13 in the in-store prefix range whose payload ends
// with the ordinal, which keeps codes unique up to 99999 products.
func ean13(f *gofakeit.Faker, ordinal int) string {
	payload := fmt.Sprintf("2%01d%05d%05d", f.IntRange(0, 9), f.IntRange(0, 99999), ordinal%100000)

	sum := 0
	for i, r := range payload {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	check := (10 - sum%10) % 10
	return fmt.Sprintf("%s%d", payload, check)
}
