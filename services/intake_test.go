package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/bar-pos/models"
)

func TestAddItemsValidation(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, 1)
	water := f.product(t, "Water", 150)
	_, err := f.svc.Ledger.OpenSession(f.ctx, table.ID)
	require.NoError(t, err)

	cases := map[string][]ItemRequest{
		"empty":         {},
		"zero quantity": {{ProductID: water.ID, Quantity: 0}},
		"negative":      {{ProductID: water.ID, Quantity: -2}},
		"missing id":    {{Quantity: 1}},
		"over the cap":  {{ProductID: water.ID, Quantity: MaxQuantity + 1}},
		"huge quantity": {{ProductID: water.ID, Quantity: 1 << 60}},
		"one bad entry": {{ProductID: water.ID, Quantity: 1}, {ProductID: water.ID, Quantity: 0}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Orders.AddItems(f.ctx, table.ID, items)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	var orders int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestAddItemsRequiresOpenSession(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, 2)
	water := f.product(t, "Water", 150)
	items := []ItemRequest{{ProductID: water.ID, Quantity: 1}}

	_, err := f.svc.Orders.AddItems(f.ctx, table.ID, items)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = f.svc.Ledger.OpenSession(f.ctx, table.ID)
	require.NoError(t, err)
	_, err = f.svc.Ledger.CloseSession(f.ctx, table.ID)
	require.NoError(t, err)

	_, err = f.svc.Orders.AddItems(f.ctx, table.ID, items)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = f.svc.Orders.AddItems(f.ctx, 404, items)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddItemsRejectsUnavailableProducts(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, 3)
	water := f.product(t, "Water", 150)
	retired := f.product(t, "Retired", 100)
	gone := f.product(t, "Gone", 100)

	off := false
	_, err := f.svc.Catalog.UpdateProduct(f.ctx, retired.ID, ProductUpdate{IsActive: &off})
	require.NoError(t, err)
	require.NoError(t, f.svc.Catalog.DeleteProduct(f.ctx, gone.ID))

	_, err = f.svc.Ledger.OpenSession(f.ctx, table.ID)
	require.NoError(t, err)

	for _, id := range []uint{retired.ID, gone.ID, 9999} {
		_, err := f.svc.Orders.AddItems(f.ctx, table.ID, []ItemRequest{
			{ProductID: water.ID, Quantity: 1},
			{ProductID: id, Quantity: 1},
		})
		assert.ErrorIs(t, err, ErrNotFound, "product %d", id)
	}

	got, err := f.svc.Tables.GetTable(f.ctx, table.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentSession)
	assert.Empty(t, got.CurrentSession.Orders)
	assert.Equal(t, models.Money(0), got.CurrentSession.TotalAmount)
}

func TestAddItemsSplitOrBatchedGiveSameTotal(t *testing.T) {
	f := newFixture(t)
	coffee := f.product(t, "Coffee", 300)
	cake := f.product(t, "Cake", 500)
	tea := f.product(t, "Tea", 250)
	items := []ItemRequest{
		{ProductID: coffee.ID, Quantity: 2},
		{ProductID: cake.ID, Quantity: 1},
		{ProductID: tea.ID, Quantity: 3},
	}

	split := f.table(t, 1)
	batched := f.table(t, 2)
	for _, tb := range []*models.Table{split, batched} {
		_, err := f.svc.Ledger.OpenSession(f.ctx, tb.ID)
		require.NoError(t, err)
	}

	for _, it := range items {
		_, err := f.svc.Orders.AddItems(f.ctx, split.ID, []ItemRequest{it})
		require.NoError(t, err)
	}
	_, err := f.svc.Orders.AddItems(f.ctx, batched.ID, items)
	require.NoError(t, err)

	a, err := f.svc.Ledger.CloseSession(f.ctx, split.ID)
	require.NoError(t, err)
	b, err := f.svc.Ledger.CloseSession(f.ctx, batched.ID)
	require.NoError(t, err)

	assert.Equal(t, models.Cents(1850), a.TotalAmount)
	assert.Equal(t, a.TotalAmount, b.TotalAmount)
	assert.Len(t, a.Orders, 3)
	assert.Len(t, b.Orders, 1)
}

func TestPriceChangeKeepsPlacedLines(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, 6)
	coffee := f.product(t, "Coffee", 300)

	_, err := f.svc.Ledger.OpenSession(f.ctx, table.ID)
	require.NoError(t, err)
	_, err = f.svc.Orders.AddItems(f.ctx, table.ID, []ItemRequest{{ProductID: coffee.ID, Quantity: 1}})
	require.NoError(t, err)

	price := models.Cents(350)
	name := "Flat White"
	_, err = f.svc.Catalog.UpdateProduct(f.ctx, coffee.ID, ProductUpdate{Price: &price, Name: &name})
	require.NoError(t, err)

	res, err := f.svc.Orders.AddItems(f.ctx, table.ID, []ItemRequest{{ProductID: coffee.ID, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, models.Cents(650), res.Total)
	require.Len(t, res.Order.Items, 1)
	assert.Equal(t, "Flat White", res.Order.Items[0].ProductName)

	closed, err := f.svc.Ledger.CloseSession(f.ctx, table.ID)
	require.NoError(t, err)
	require.Len(t, closed.Orders, 2)
	first := closed.Orders[0].Items[0]
	assert.Equal(t, models.Cents(300), first.PriceAtOrder)
	assert.Equal(t, "Coffee", first.ProductName)
	assert.Equal(t, models.Cents(350), closed.Orders[1].Items[0].PriceAtOrder)
	assert.Equal(t, models.Cents(650), closed.TotalAmount)
}

func TestAddItemsResultCarriesLines(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, 11)
	coffee := f.product(t, "Coffee", 300)
	s, err := f.svc.Ledger.OpenSession(f.ctx, table.ID)
	require.NoError(t, err)

	res, err := f.svc.Orders.AddItems(f.ctx, table.ID, []ItemRequest{
		{ProductID: coffee.ID, Quantity: 1},
		{ProductID: coffee.ID, Quantity: 2},
	})
	require.NoError(t, err)

	assert.NotZero(t, res.Order.ID)
	assert.Equal(t, s.ID, res.Order.SessionID)
	assert.Len(t, res.Order.Items, 2, "repeated products stay separate lines")
	assert.Equal(t, models.Cents(900), res.Order.Subtotal())
	assert.Equal(t, models.Cents(900), res.Total)
}

func TestAddItemsAcceptsMaxQuantity(t *testing.T) {
	f := newFixture(t)
	table := f.table(t, 4)
	pricey := f.product(t, "Whole Cellar", int64(models.MaxMoney))
	_, err := f.svc.Ledger.OpenSession(f.ctx, table.ID)
	require.NoError(t, err)

	res, err := f.svc.Orders.AddItems(f.ctx, table.ID, []ItemRequest{{ProductID: pricey.ID, Quantity: MaxQuantity}})
	require.NoError(t, err)
	assert.Equal(t, models.MaxMoney.Times(MaxQuantity), res.Total)

	got, err := f.svc.Tables.GetTable(f.ctx, table.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TableOccupied, got.Status)
}
