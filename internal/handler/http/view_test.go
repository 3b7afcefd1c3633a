package http

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robomart/toystore/internal/domain"
)

func TestFormatMinorUnits(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{99, "$0.99"},
		{100, "$1.00"},
		{1234, "$12.34"},
		{250000, "$2500.00"},
		{-1234, "-$12.34"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMinorUnits(tt.amount))
	}
}

func TestNewCartViewModel(t *testing.T) {
	cart := &domain.Cart{
		SessionID: "sess-1",
		Items: []domain.LineItem{
			{ProductID: "p1", Name: "Robo Friend", UnitPrice: 2499, Quantity: 2},
			{ProductID: "p2", Name: "Rocket Kite", UnitPrice: 1299, Quantity: 1},
		},
	}

	view := NewCartViewModel(cart)

	assert.Equal(t, 3, view.Badge)
	assert.False(t, view.IsEmpty)
	assert.Len(t, view.Rows, 2)
	assert.Equal(t, int64(2499), view.Rows[0].UnitPrice)
	assert.Equal(t, "$24.99", view.Rows[0].UnitPriceDisplay)
	assert.Equal(t, int64(4998), view.Rows[0].Subtotal)
	assert.Equal(t, "$49.98", view.Rows[0].SubtotalDisplay)
	assert.Equal(t, int64(6297), view.Total)
	assert.Equal(t, "$62.97", view.TotalDisplay)
	// Rows keep insertion order.
	assert.Equal(t, "p1", view.Rows[0].ProductID)
	assert.Equal(t, "p2", view.Rows[1].ProductID)
}

func TestNewCartViewModelEmpty(t *testing.T) {
	view := NewCartViewModel(domain.NewCart("sess-1"))

	assert.True(t, view.IsEmpty)
	assert.Equal(t, 0, view.Badge)
	assert.Equal(t, int64(0), view.Total)
	assert.Equal(t, "$0.00", view.TotalDisplay)
	assert.Empty(t, view.Rows)
}
