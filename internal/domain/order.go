package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses is the closed set a seeded order draws its status from.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

type Order struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID      uint64          `json:"customerId" gorm:"not null;index"`
	OrderNumber     string          `json:"orderNumber" gorm:"size:50;not null;uniqueIndex"`
	OrderDate       time.Time       `json:"orderDate" gorm:"not null;index"`
	Status          OrderStatus     `json:"status" gorm:"size:50;not null;default:'Pending'"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:decimal(18,2);not null"`
	ShippingAddress string          `json:"shippingAddress" gorm:"size:500"`
	BillingAddress  string          `json:"billingAddress" gorm:"size:500"`
	Notes           *string         `json:"notes,omitempty" gorm:"size:1000"`
	CreatedDate     time.Time       `json:"createdDate" gorm:"not null"`
	ModifiedDate    time.Time       `json:"modifiedDate" gorm:"not null"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID           uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID      uint64          `json:"orderId" gorm:"not null;index"`
	ProductID    uint64          `json:"productId" gorm:"not null;index"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	UnitPrice    decimal.Decimal `json:"unitPrice" gorm:"type:decimal(18,2);not null"`
	TotalPrice   decimal.Decimal `json:"totalPrice" gorm:"type:decimal(18,2);not null"`
	CreatedDate  time.Time       `json:"createdDate" gorm:"not null"`
	ModifiedDate time.Time       `json:"modifiedDate" gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }
