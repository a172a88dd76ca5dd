package ustax

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Rate is a dimensionless multiplier: a tax rate (0.242) or an exchange rate
// expressed in KRW per USD (1300).
type Rate struct {
	value decimal.Decimal
}

// R returns the Rate value.
func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

func (r Rate) Equal(s Rate) bool        { return r.value.Equal(s.value) }
func (r Rate) IsPositive() bool         { return r.value.IsPositive() }
func (r Rate) Decimal() decimal.Decimal { return r.value }
func (r Rate) String() string           { return r.value.String() }

// Percent returns the rate as a percentage, e.g. "24.2%".
func (r Rate) Percent() string {
	return r.value.Shift(2).String() + "%"
}

// Won returns the exchange rate formatted as a KRW amount, keeping the
// fractional digits when the rate has some: "₩1,300" or "₩1,312.55".
func (r Rate) Won() string {
	cur := money.GetCurrency(KRW)
	fraction := int32(0)
	if !r.value.IsInteger() {
		fraction = -r.value.Exponent()
	}
	f := money.NewFormatter(int(fraction), cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(r.value.Shift(fraction).IntPart())
}
