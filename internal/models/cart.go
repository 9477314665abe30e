package models

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const TaxRate = 0.08

type CartItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
}

func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartTotals keeps full precision; rounding happens in Display only.
type CartTotals struct {
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
}

func (t CartTotals) Display() DisplayTotals {
	return DisplayTotals{
		Subtotal: FormatMoney(t.Subtotal),
		Tax:      FormatMoney(t.Tax),
		Total:    FormatMoney(t.Total),
	}
}

type DisplayTotals struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type Badge struct {
	Count   int  `json:"count"`
	Visible bool `json:"visible"`
}

type CartLine struct {
	CartItem
	LineTotal        float64 `json:"lineTotal"`
	DisplayPrice     string  `json:"displayPrice"`
	DisplayLineTotal string  `json:"displayLineTotal"`
	CanDecrement     bool    `json:"canDecrement"`
}

type CartView struct {
	Lines        []CartLine    `json:"lines"`
	Empty        bool          `json:"empty"`
	Summary      string        `json:"summary"`
	ShowCheckout bool          `json:"showCheckout"`
	Totals       CartTotals    `json:"totals"`
	Display      DisplayTotals `json:"display"`
}

type AddToCartRequest struct {
	ProductID int `json:"productId"`
}

// QuantityRequest is nil-safe: a body without quantity is rejected rather
// than read as zero.
type QuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type CartResponse struct {
	View   *CartView `json:"cart,omitempty"`
	Badge  Badge     `json:"badge"`
	Notice *Notice   `json:"notice,omitempty"`
}

// FormatMoney renders an amount with two decimals and thousands separators.
func FormatMoney(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func ItemsSummary(count int) string {
	if count == 0 {
		return "Your cart is empty"
	}
	if count == 1 {
		return "1 item in your cart"
	}
	return fmt.Sprintf("%d items in your cart", count)
}
