package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{9.5, "9.50"},
		{249, "249.00"},
		{1497, "1,497.00"},
		{1616.76, "1,616.76"},
		{1234567.89, "1,234,567.89"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMoney(tt.in))
	}
}

func TestItemsSummary(t *testing.T) {
	assert.Equal(t, "Your cart is empty", ItemsSummary(0))
	assert.Equal(t, "1 item in your cart", ItemsSummary(1))
	assert.Equal(t, "7 items in your cart", ItemsSummary(7))
}

func TestLineTotal(t *testing.T) {
	assert.InDelta(t, 498.0, CartItem{Price: 249, Quantity: 2}.LineTotal(), 1e-9)
}

func TestPublicHidesPasswordHash(t *testing.T) {
	u := User{ID: 1, Name: "Admin", Email: "admin@gmail.com", PasswordHash: "$2a$hash", IsAdmin: true}

	public := u.Public()
	assert.Empty(t, public.PasswordHash)
	assert.Equal(t, "$2a$hash", u.PasswordHash, "receiver keeps its hash")

	data, err := json.Marshal(public)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "passwordHash")
}

func TestNotices(t *testing.T) {
	n := NewNotice(LevelSuccess, "Cart cleared")
	assert.Equal(t, &Notice{Message: "Cart cleared", Level: LevelSuccess, DismissAfterMs: 3000}, n)

	r := NewRedirect(PageLogin, 1500*time.Millisecond)
	assert.Equal(t, &Redirect{Page: "login.html", AfterMs: 1500}, r)
}
