// server/internal/models/money.go
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money is an exact decimal amount. It marshals to a BSON Decimal128 and a
// JSON string with two decimal places, so cost arithmetic never goes
// through float64.
type Money struct {
	dec decimal.Decimal
}

func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{dec: d}, nil
}

func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{dec: d}
}

func (m Money) Add(o Money) Money {
	return Money{dec: m.dec.Add(o.dec)}
}

func (m Money) Equal(o Money) bool {
	return m.dec.Equal(o.dec)
}

func (m Money) IsNegative() bool {
	return m.dec.IsNegative()
}

func (m Money) Decimal() decimal.Decimal {
	return m.dec
}

// String renders with exactly two decimal places, e.g. "1234.50".
func (m Money) String() string {
	return m.dec.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		m.dec = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	m.dec = d
	return nil
}

func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d128, err := primitive.ParseDecimal128(m.dec.String())
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(d128)
}

func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var d128 primitive.Decimal128
	if err := bson.UnmarshalValue(t, data, &d128); err != nil {
		return err
	}
	d, err := decimal.NewFromString(d128.String())
	if err != nil {
		return err
	}
	m.dec = d
	return nil
}
