package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/bar-pos/models"
)

func (f *fixture) serve(t *testing.T, tableID uint, items ...ItemRequest) *models.Session {
	t.Helper()
	_, err := f.svc.Ledger.OpenSession(f.ctx, tableID)
	require.NoError(t, err)
	if len(items) > 0 {
		_, err = f.svc.Orders.AddItems(f.ctx, tableID, items)
		require.NoError(t, err)
	}
	s, err := f.svc.Ledger.CloseSession(f.ctx, tableID)
	require.NoError(t, err)
	return s
}

func TestInvoiceSummary(t *testing.T) {
	f := newFixture(t)
	t1 := f.table(t, 1)
	t2 := f.table(t, 2)
	coffee := f.product(t, "Coffee", 300)
	cake := f.product(t, "Cake", 500)

	a := f.serve(t, t1.ID, ItemRequest{ProductID: coffee.ID, Quantity: 1})
	b := f.serve(t, t2.ID, ItemRequest{ProductID: cake.ID, Quantity: 2})
	c := f.serve(t, t1.ID)

	// an open session is not reported
	_, err := f.svc.Ledger.OpenSession(f.ctx, t2.ID)
	require.NoError(t, err)

	sum, err := f.svc.Reports.GetInvoiceSummary(f.ctx, ClosedFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalOrders)
	assert.Equal(t, models.Cents(1300), sum.TotalSales)
	assert.Equal(t, models.Cents(433), sum.AverageTicket)

	require.Len(t, sum.Sessions, 3)
	assert.Equal(t, []uint{c.ID, b.ID, a.ID}, []uint{sum.Sessions[0].ID, sum.Sessions[1].ID, sum.Sessions[2].ID})
	assert.Equal(t, 1, sum.Sessions[0].TableNumber)
	assert.Equal(t, 2, sum.Sessions[1].TableHistory.Number)
	assert.Equal(t, models.Cents(1000), sum.Sessions[1].TotalAmount)
	assert.Contains(t, sum.Sessions[2].InvoiceNumber, "INV/20260501/")
}

func TestInvoiceSummaryEmpty(t *testing.T) {
	f := newFixture(t)

	sum, err := f.svc.Reports.GetInvoiceSummary(f.ctx, ClosedFilter{})
	require.NoError(t, err)
	assert.Zero(t, sum.TotalOrders)
	assert.Equal(t, models.Money(0), sum.TotalSales)
	assert.Equal(t, models.Money(0), sum.AverageTicket)
	assert.NotNil(t, sum.Sessions)
	assert.Empty(t, sum.Sessions)
}

func TestInvoiceSummaryWindow(t *testing.T) {
	f := newFixture(t)
	tb := f.table(t, 1)
	beer := f.product(t, "Beer", 500)

	first := f.serve(t, tb.ID, ItemRequest{ProductID: beer.ID, Quantity: 1})
	second := f.serve(t, tb.ID, ItemRequest{ProductID: beer.ID, Quantity: 2})

	from := second.StartTime.UTC()
	sum, err := f.svc.Reports.GetInvoiceSummary(f.ctx, ClosedFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, sum.Sessions, 1)
	assert.Equal(t, second.ID, sum.Sessions[0].ID)
	assert.Equal(t, models.Cents(1000), sum.TotalSales)

	to := first.EndTime.UTC().Add(time.Second)
	sum, err = f.svc.Reports.GetInvoiceSummary(f.ctx, ClosedFilter{To: &to})
	require.NoError(t, err)
	require.Len(t, sum.Sessions, 1)
	assert.Equal(t, first.ID, sum.Sessions[0].ID)
}

func TestGetInvoice(t *testing.T) {
	f := newFixture(t)
	tb := f.table(t, 5)
	coffee := f.product(t, "Coffee", 300)
	cake := f.product(t, "Cake", 500)

	_, err := f.svc.Ledger.OpenSession(f.ctx, tb.ID)
	require.NoError(t, err)
	_, err = f.svc.Orders.AddItems(f.ctx, tb.ID, []ItemRequest{{ProductID: coffee.ID, Quantity: 2}})
	require.NoError(t, err)
	_, err = f.svc.Orders.AddItems(f.ctx, tb.ID, []ItemRequest{{ProductID: cake.ID, Quantity: 1}, {ProductID: coffee.ID, Quantity: 1}})
	require.NoError(t, err)

	open, err := f.svc.Tables.GetTable(f.ctx, tb.ID)
	require.NoError(t, err)
	_, err = f.svc.Reports.GetInvoice(f.ctx, *open.CurrentSessionID)
	assert.ErrorIs(t, err, ErrInvalidState)

	s, err := f.svc.Ledger.CloseSession(f.ctx, tb.ID)
	require.NoError(t, err)

	inv, err := f.svc.Reports.GetInvoice(f.ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, inv.TableNumber)
	assert.Equal(t, models.Cents(1400), inv.Total)
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "Coffee", inv.Lines[0].Name)
	assert.Equal(t, 3, inv.Lines[0].Quantity)
	assert.Equal(t, models.Cents(900), inv.Lines[0].Subtotal)
	assert.Equal(t, "Cake", inv.Lines[1].Name)

	_, err = f.svc.Reports.GetInvoice(f.ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAverageRoundsHalfUp(t *testing.T) {
	assert.Equal(t, models.Money(0), average(0, 0))
	assert.Equal(t, models.Cents(433), average(1300, 3))
	assert.Equal(t, models.Cents(167), average(500, 3))
	assert.Equal(t, models.Cents(2), average(3, 2))
	assert.Equal(t, models.Cents(-2), average(-3, 2))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(notFoundf("x")))
	assert.Equal(t, ErrorKind(""), KindOf(assert.AnError))
}
