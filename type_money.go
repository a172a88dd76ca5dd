package ustax

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency codes handled by the calculator.
const (
	KRW = money.KRW
	USD = money.USD
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money worth value in currency.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the amount formatted for its currency, rounded to the currency fraction digits.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string             { return m.cur }
func (m Money) Decimal() decimal.Decimal     { return m.value }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(r Rate) Money             { return Money{value: m.value.Mul(r.value), cur: m.cur} }
func (m Money) Div(r Rate) Money             { return Money{value: m.value.Div(r.value), cur: m.cur} }
func (m Money) Add(n Money) Money            { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money            { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }
func (m Money) Number() json.Number          { return json.Number(m.value.String()) }
func (m Money) In(currency string) Money     { return Money{value: m.value, cur: currency} }
func (m Money) Max(n Money) Money            { return pick(m.GreaterThan(n), m, n) }
func (m Money) Min(n Money) Money            { return pick(m.LessThan(n), m, n) }

func pick(first bool, a, b Money) Money {
	if first {
		return a
	}
	return b
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// Convert converts m into currency 'to' using krwPerUSD.
//
// Only the KRW/USD pair is supported: an amount not already in 'to' is
// considered to be in the other currency of the pair. Converting to USD divides
// by the rate, so the rate must not be zero in that direction.
func Convert(m Money, to string, krwPerUSD Rate) Money {
	if m.cur == to {
		return m
	}
	switch to {
	case KRW:
		return m.Mul(krwPerUSD).In(KRW)
	case USD:
		return m.Div(krwPerUSD).In(USD)
	default:
		panic("unsupported conversion to " + to)
	}
}
