package models

import "time"

// Order is one intake batch. Rows are only ever inserted.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	SessionID uint        `gorm:"not null;index" json:"sessionId"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `gorm:"not null" json:"createdAt"`
}

func (o *Order) Subtotal() Money {
	var sum Money
	for _, it := range o.Items {
		sum += it.Subtotal()
	}
	return sum
}
