package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/bar-pos/models"
)

func closedSession() *models.Session {
	start := time.Date(2026, 2, 14, 19, 30, 0, 0, time.UTC)
	end := start.Add(95 * time.Minute)
	return &models.Session{
		ID:          12,
		TableID:     3,
		Table:       &models.Table{ID: 3, Number: 5},
		StartTime:   start,
		EndTime:     &end,
		TotalAmount: 1400,
		Orders: []models.Order{
			{Items: []models.OrderItem{
				{ProductID: 1, ProductName: "Coffee", Quantity: 2, PriceAtOrder: 300},
			}},
			{Items: []models.OrderItem{
				{ProductID: 2, ProductName: "Cake", Quantity: 1, PriceAtOrder: 500},
				{ProductID: 1, ProductName: "Coffee", Quantity: 1, PriceAtOrder: 300},
			}},
		},
	}
}

func TestNumber(t *testing.T) {
	at := time.Date(2026, 2, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "INV/20260214/000012", Number(12, at))
	assert.Equal(t, "INV/20260214/1234567", Number(1234567, at))
}

func TestFromSessionMergesLines(t *testing.T) {
	inv, err := FromSession(closedSession())
	require.NoError(t, err)

	assert.Equal(t, "INV/20260214/000012", inv.Number)
	assert.Equal(t, 5, inv.TableNumber)
	assert.Equal(t, uint(3), inv.TableID)
	assert.Equal(t, models.Money(1400), inv.Total)
	assert.Equal(t, []Line{
		{ProductID: 1, Name: "Coffee", Quantity: 3, UnitPrice: 300, Subtotal: 900},
		{ProductID: 2, Name: "Cake", Quantity: 1, UnitPrice: 500, Subtotal: 500},
	}, inv.Lines)
}

func TestFromSessionKeepsPriceChangesApart(t *testing.T) {
	s := closedSession()
	s.Orders = append(s.Orders, models.Order{Items: []models.OrderItem{
		{ProductID: 1, ProductName: "Coffee", Quantity: 1, PriceAtOrder: 350},
	}})
	s.TotalAmount = 1750

	inv, err := FromSession(s)
	require.NoError(t, err)
	require.Len(t, inv.Lines, 3)
	assert.Equal(t, models.Money(350), inv.Lines[2].UnitPrice)
}

func TestFromSessionRejectsOpenSession(t *testing.T) {
	s := closedSession()
	s.EndTime = nil
	_, err := FromSession(s)
	assert.ErrorIs(t, err, ErrSessionOpen)
}

func TestFromSessionWithoutOrders(t *testing.T) {
	s := closedSession()
	s.Orders = nil
	s.TotalAmount = 0

	inv, err := FromSession(s)
	require.NoError(t, err)
	assert.NotNil(t, inv.Lines)
	assert.Empty(t, inv.Lines)
	assert.Equal(t, models.Money(0), inv.Total)
}

func TestRenderPDF(t *testing.T) {
	inv, err := FromSession(closedSession())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, inv, PDFOptions{RestaurantName: "Café Noir", CurrencySymbol: "$"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	empty := inv
	empty.Lines = nil
	buf.Reset()
	require.NoError(t, RenderPDF(&buf, empty, PDFOptions{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
