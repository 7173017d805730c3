package services

import (
	"context"
	"errors"

	"github.com/yeremiapane/bar-pos/invoice"
	"github.com/yeremiapane/bar-pos/models"
)

// Reporting derives everything from closed sessions; nothing is stored.
type Reporting struct {
	ledger *SessionLedger
}

type InvoiceSummary struct {
	TotalSales    models.Money    `json:"totalSales"`
	TotalOrders   int             `json:"totalOrders"`
	AverageTicket models.Money    `json:"averageTicket"`
	Sessions      []ClosedSession `json:"sessions"`
}

func (r *Reporting) GetInvoiceSummary(ctx context.Context, f ClosedFilter) (*InvoiceSummary, error) {
	sessions, err := r.ledger.ListClosedSessions(ctx, f)
	if err != nil {
		return nil, err
	}

	sum := &InvoiceSummary{Sessions: sessions, TotalOrders: len(sessions)}
	for _, s := range sessions {
		sum.TotalSales += s.TotalAmount
	}
	sum.AverageTicket = average(sum.TotalSales, len(sessions))
	return sum, nil
}

// GetInvoice rebuilds the invoice of a closed session.
func (r *Reporting) GetInvoice(ctx context.Context, sessionID uint) (*invoice.Invoice, error) {
	session, err := r.ledger.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	inv, err := invoice.FromSession(session)
	if errors.Is(err, invoice.ErrSessionOpen) {
		return nil, invalidStatef("session %d is still open", sessionID)
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// average rounds half away from zero to the cent.
func average(total models.Money, n int) models.Money {
	if n == 0 {
		return 0
	}
	d := models.Money(n)
	if total < 0 {
		return -((-total*2 + d) / (2 * d))
	}
	return (total*2 + d) / (2 * d)
}
