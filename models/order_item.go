package models

import (
	"time"
)

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"orderId"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order        *Order    `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID    uint      `gorm:"not null;index" json:"productId"`
	Product      *Product  `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product,omitempty"`
	ProductName  string    `gorm:"type:varchar(255);not null" json:"productName"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	PriceAtOrder Money     `gorm:"not null" json:"priceAtOrder"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

func (i *OrderItem) Subtotal() Money { return i.PriceAtOrder.Times(i.Quantity) }
