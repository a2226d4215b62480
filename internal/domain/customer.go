package domain

import "time"

type Customer struct {
	ID           uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName    string    `json:"firstName" gorm:"size:100;not null"`
	LastName     string    `json:"lastName" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Phone        string    `json:"phone" gorm:"size:21"`
	Address      string    `json:"address" gorm:"size:500"`
	City         string    `json:"city" gorm:"size:100"`
	State        string    `json:"state" gorm:"size:50"`
	ZipCode      string    `json:"zipCode" gorm:"size:20"`
	Country      string    `json:"country" gorm:"size:100"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	CreatedDate  time.Time `json:"createdDate" gorm:"not null"`
	ModifiedDate time.Time `json:"modifiedDate" gorm:"not null"`
}

func (Customer) TableName() string { return "customers" }

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
