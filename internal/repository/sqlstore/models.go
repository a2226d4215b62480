package sqlstore

import "storefront/internal/domain"

// The record types exist only so migrations declare foreign keys. Reads and
// writes go through the domain types, which share the table names through
// the promoted TableName methods.

type customerRecord struct {
	domain.Customer
}

type productRecord struct {
	domain.Product
}

type orderRecord struct {
	domain.Order
	Customer *customerRecord `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

type orderItemRecord struct {
	domain.OrderItem
	Order   *orderRecord   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Product *productRecord `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// schemaModels is in dependency order, parents first.
func schemaModels() []any {
	return []any{&customerRecord{}, &productRecord{}, &orderRecord{}, &orderItemRecord{}}
}
