package http

import (
	"fmt"

	"github.com/robomart/toystore/internal/domain"
)

// CartRow is one rendered cart line: raw minor-unit amounts plus their
// display strings.
type CartRow struct {
	ProductID        string `json:"product_id"`
	Name             string `json:"name"`
	Quantity         int    `json:"quantity"`
	UnitPrice        int64  `json:"unit_price"`
	UnitPriceDisplay string `json:"unit_price_display"`
	Subtotal         int64  `json:"subtotal"`
	SubtotalDisplay  string `json:"subtotal_display"`
}

// CartViewModel is the cart as the storefront renders it: one row per line
// item in insertion order, formatted prices, and the header badge count.
// It is pure formatting over cart state; it holds no logic of its own.
type CartViewModel struct {
	SessionID    string    `json:"session_id"`
	Badge        int       `json:"badge"`
	Rows         []CartRow `json:"rows"`
	Total        int64     `json:"total"`
	TotalDisplay string    `json:"total_display"`
	IsEmpty      bool      `json:"is_empty"`
}

// NewCartViewModel renders a cart snapshot.
func NewCartViewModel(cart *domain.Cart) CartViewModel {
	rows := make([]CartRow, len(cart.Items))
	for i, item := range cart.Items {
		rows[i] = CartRow{
			ProductID:        item.ProductID,
			Name:             item.Name,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			UnitPriceDisplay: formatMinorUnits(item.UnitPrice),
			Subtotal:         item.Subtotal(),
			SubtotalDisplay:  formatMinorUnits(item.Subtotal()),
		}
	}

	return CartViewModel{
		SessionID:    cart.SessionID,
		Badge:        cart.ItemCount(),
		Rows:         rows,
		Total:        cart.Total(),
		TotalDisplay: formatMinorUnits(cart.Total()),
		IsEmpty:      cart.IsEmpty(),
	}
}

// formatMinorUnits renders an amount of cents as a dollar string, e.g.
// 1234 -> "$12.34".
func formatMinorUnits(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s$%d.%02d", sign, amount/100, amount%100)
}
