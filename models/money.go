package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money is an amount that serializes with exactly two fraction digits, e.g. "250.00"
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}

// MarshalJSON writes the price in the same two-digit form as other amounts
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		Price Money `json:"price"`
	}{plain: plain(p), Price: NewMoney(p.Price)})
}
