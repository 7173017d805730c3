package models

import "time"

// Session is one continuous occupancy of a table. TotalAmount is recomputed from
// the lines while the session is open and frozen once EndTime is set.
type Session struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TableID     uint       `gorm:"not null;index" json:"tableId"`
	Table       *Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"tableHistory,omitempty"`
	StartTime   time.Time  `gorm:"not null" json:"startTime"`
	EndTime     *time.Time `gorm:"index" json:"endTime"`
	TotalAmount Money      `gorm:"not null;default:0" json:"totalAmount"`
	Orders      []Order    `gorm:"foreignKey:SessionID" json:"orders"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updatedAt"`
}

func (s *Session) Closed() bool { return s.EndTime != nil }

// ComputeTotal sums priceAtOrder * quantity over every loaded line.
func (s *Session) ComputeTotal() Money {
	var total Money
	for _, o := range s.Orders {
		total += o.Subtotal()
	}
	return total
}
