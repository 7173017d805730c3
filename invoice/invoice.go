// Package invoice projects a closed table session into the billing document
// handed to printers and downstream consumers.
package invoice

import (
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/bar-pos/models"
)

var ErrSessionOpen = errors.New("invoice: session is still open")

type Line struct {
	ProductID uint         `json:"productId"`
	Name      string       `json:"name"`
	Quantity  int          `json:"quantity"`
	UnitPrice models.Money `json:"unitPrice"`
	Subtotal  models.Money `json:"subtotal"`
}

type Invoice struct {
	Number      string       `json:"number"`
	SessionID   uint         `json:"sessionId"`
	TableID     uint         `json:"tableId"`
	TableNumber int          `json:"tableNumber"`
	StartTime   time.Time    `json:"startTime"`
	EndTime     time.Time    `json:"endTime"`
	Lines       []Line       `json:"lines"`
	Total       models.Money `json:"total"`
}

// Number follows the receipt numbering scheme: INV/<close date>/<session id>.
func Number(sessionID uint, closedAt time.Time) string {
	return fmt.Sprintf("INV/%s/%06d", closedAt.Format("20060102"), sessionID)
}

// FromSession builds the invoice for a closed session whose orders, items and
// table were loaded. Lines for the same product at the same captured price are
// merged in first-seen order.
func FromSession(s *models.Session) (Invoice, error) {
	if s.EndTime == nil {
		return Invoice{}, ErrSessionOpen
	}

	inv := Invoice{
		Number:    Number(s.ID, *s.EndTime),
		SessionID: s.ID,
		TableID:   s.TableID,
		StartTime: s.StartTime,
		EndTime:   *s.EndTime,
		Lines:     []Line{},
		Total:     s.TotalAmount,
	}
	if s.Table != nil {
		inv.TableNumber = s.Table.Number
	}

	type lineKey struct {
		product uint
		price   models.Money
	}
	index := make(map[lineKey]int)

	for _, o := range s.Orders {
		for _, it := range o.Items {
			k := lineKey{it.ProductID, it.PriceAtOrder}
			if i, ok := index[k]; ok {
				inv.Lines[i].Quantity += it.Quantity
				inv.Lines[i].Subtotal += it.Subtotal()
				continue
			}
			index[k] = len(inv.Lines)
			inv.Lines = append(inv.Lines, Line{
				ProductID: it.ProductID,
				Name:      it.ProductName,
				Quantity:  it.Quantity,
				UnitPrice: it.PriceAtOrder,
				Subtotal:  it.Subtotal(),
			})
		}
	}

	return inv, nil
}
