package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategories is the closed set of catalogue labels.
var ProductCategories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Home & Garden",
	"Sports",
	"Toys",
	"Automotive",
	"Health & Beauty",
}

type Product struct {
	ID            uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string          `json:"name" gorm:"size:200;not null"`
	Description   string          `json:"description" gorm:"size:1000"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(18,2);not null"`
	Category      string          `json:"category" gorm:"size:100;not null;index"`
	SKU           string          `json:"sku" gorm:"column:sku;size:50;not null;uniqueIndex"`
	StockQuantity int             `json:"stockQuantity" gorm:"not null"`
	IsActive      bool            `json:"isActive" gorm:"not null"`
	CreatedDate   time.Time       `json:"createdDate" gorm:"not null"`
	ModifiedDate  time.Time       `json:"modifiedDate" gorm:"not null"`
}

func (Product) TableName() string { return "products" }
