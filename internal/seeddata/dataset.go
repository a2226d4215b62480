package seeddata

import (
	"fmt"

	"storefront/internal/domain"
)

// Dataset is one generated store, ready to be loaded in dependency order.
type Dataset struct {
	Customers  []domain.Customer
	Products   []domain.Product
	Orders     []domain.Order
	OrderItems []domain.OrderItem
}

func (d Dataset) Counts() domain.TableCounts {
	return domain.TableCounts{
		Customers:  int64(len(d.Customers)),
		Products:   int64(len(d.Products)),
		Orders:     int64(len(d.Orders)),
		OrderItems: int64(len(d.OrderItems)),
	}
}

// Index maps identities to records. Relationships are resolved through it
// instead of through references held on the records themselves.
type Index struct {
	Customers    map[uint64]domain.Customer
	Products     map[uint64]domain.Product
	Orders       map[uint64]domain.Order
	ItemsByOrder map[uint64][]domain.OrderItem
}

func (d Dataset) Index() Index {
	idx := Index{
		Customers:    make(map[uint64]domain.Customer, len(d.Customers)),
		Products:     make(map[uint64]domain.Product, len(d.Products)),
		Orders:       make(map[uint64]domain.Order, len(d.Orders)),
		ItemsByOrder: make(map[uint64][]domain.OrderItem, len(d.Orders)),
	}
	for _, c := range d.Customers {
		idx.Customers[c.ID] = c
	}
	for _, p := range d.Products {
		idx.Products[p.ID] = p
	}
	for _, o := range d.Orders {
		idx.Orders[o.ID] = o
	}
	for _, it := range d.OrderItems {
		idx.ItemsByOrder[it.OrderID] = append(idx.ItemsByOrder[it.OrderID], it)
	}
	return idx
}

// Validate checks the invariants the store would otherwise reject: unique
// keys and natural keys, and every foreign key pointing at a generated parent.
// Violations match domain.ErrConstraintViolation.
func (d Dataset) Validate() error {
	idx := d.Index()

	if len(idx.Customers) != len(d.Customers) {
		return fmt.Errorf("%w: duplicate customer id", domain.ErrConstraintViolation)
	}
	if len(idx.Products) != len(d.Products) {
		return fmt.Errorf("%w: duplicate product id", domain.ErrConstraintViolation)
	}
	if len(idx.Orders) != len(d.Orders) {
		return fmt.Errorf("%w: duplicate order id", domain.ErrConstraintViolation)
	}

	emails := make(map[string]struct{}, len(d.Customers))
	for _, c := range d.Customers {
		if _, dup := emails[c.Email]; dup {
			return fmt.Errorf("%w: duplicate email %q", domain.ErrConstraintViolation, c.Email)
		}
		emails[c.Email] = struct{}{}
	}

	skus := make(map[string]struct{}, len(d.Products))
	for _, p := range d.Products {
		if _, dup := skus[p.SKU]; dup {
			return fmt.Errorf("%w: duplicate sku %q", domain.ErrConstraintViolation, p.SKU)
		}
		if p.Price.IsNegative() || p.StockQuantity < 0 {
			return fmt.Errorf("%w: product %d has negative price or stock", domain.ErrConstraintViolation, p.ID)
		}
		skus[p.SKU] = struct{}{}
	}

	numbers := make(map[string]struct{}, len(d.Orders))
	for _, o := range d.Orders {
		if _, dup := numbers[o.OrderNumber]; dup {
			return fmt.Errorf("%w: duplicate order number %q", domain.ErrConstraintViolation, o.OrderNumber)
		}
		numbers[o.OrderNumber] = struct{}{}
		if _, ok := idx.Customers[o.CustomerID]; !ok {
			return fmt.Errorf("%w: order %d references missing customer %d", domain.ErrConstraintViolation, o.ID, o.CustomerID)
		}
	}

	seen := make(map[uint64]struct{}, len(d.OrderItems))
	for _, it := range d.OrderItems {
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("%w: duplicate order item id", domain.ErrConstraintViolation)
		}
		seen[it.ID] = struct{}{}
		if _, ok := idx.Orders[it.OrderID]; !ok {
			return fmt.Errorf("%w: order item %d references missing order %d", domain.ErrConstraintViolation, it.ID, it.OrderID)
		}
		if _, ok := idx.Products[it.ProductID]; !ok {
			return fmt.Errorf("%w: order item %d references missing product %d", domain.ErrConstraintViolation, it.ID, it.ProductID)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: order item %d has quantity %d", domain.ErrConstraintViolation, it.ID, it.Quantity)
		}
	}
	return nil
}
