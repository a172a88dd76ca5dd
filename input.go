package ustax

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultExchangeRate is the KRW per USD rate used when none is provided.
const DefaultExchangeRate = 1300

// ErrInvalidInput is wrapped by every input validation failure.
var ErrInvalidInput = errors.New("all amounts must be zero or positive and the exchange rate must be greater than zero")

// TaxInput holds the figures of one calculation.
//
// Amounts are in USD, the exchange rate in KRW per USD. Compute expects a
// valid TaxInput, see Validate.
type TaxInput struct {
	PurchasePrice Money
	SalePrice     Money
	Dividends     Money
	ExchangeRate  Rate
}

// NewTaxInput returns a TaxInput from USD amounts and a KRW per USD rate.
func NewTaxInput(purchase, sale, dividends, exchangeRate float64) TaxInput {
	return TaxInput{
		PurchasePrice: M(purchase, USD),
		SalePrice:     M(sale, USD),
		Dividends:     M(dividends, USD),
		ExchangeRate:  R(exchangeRate),
	}
}

// Validate checks the input bounds, and returns all failures joined together.
func (in TaxInput) Validate() error {
	var errs error
	check := func(name string, m Money) {
		if m.IsNegative() {
			errs = errors.Join(errs, fmt.Errorf("%s cannot be negative (%s): %w", name, m.Decimal(), ErrInvalidInput))
		}
		if m.Currency() != "" && m.Currency() != USD {
			errs = errors.Join(errs, fmt.Errorf("%s must be in USD, got %s: %w", name, m.Currency(), ErrInvalidInput))
		}
	}
	check("purchase price", in.PurchasePrice)
	check("sale price", in.SalePrice)
	check("dividends", in.Dividends)
	if !in.ExchangeRate.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("exchange rate must be greater than zero (%s): %w", in.ExchangeRate, ErrInvalidInput))
	}
	return errs
}

// ParseInput parses user typed amounts into a valid TaxInput.
//
// Thousands separators (',' and '_') are accepted. An empty amount is zero, an
// empty exchange rate is DefaultExchangeRate.
func ParseInput(purchase, sale, dividends, exchangeRate string) (TaxInput, error) {
	var errs error
	parse := func(name, s string, def decimal.Decimal) decimal.Decimal {
		d, err := parseDecimal(s, def)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid %s %q: %w: %w", name, s, ErrInvalidInput, err))
		}
		return d
	}
	in := TaxInput{
		PurchasePrice: M(parse("purchase price", purchase, decimal.Zero), USD),
		SalePrice:     M(parse("sale price", sale, decimal.Zero), USD),
		Dividends:     M(parse("dividends", dividends, decimal.Zero), USD),
		ExchangeRate:  R(parse("exchange rate", exchangeRate, decimal.NewFromInt(DefaultExchangeRate))),
	}
	if errs != nil {
		return TaxInput{}, errs
	}
	if err := in.Validate(); err != nil {
		return TaxInput{}, err
	}
	return in, nil
}

func parseDecimal(s string, def decimal.Decimal) (decimal.Decimal, error) {
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return def, nil
	}
	return decimal.NewFromString(s)
}

// ParseRate parses a user typed exchange rate, an empty rate is
// DefaultExchangeRate.
func ParseRate(s string) (Rate, error) {
	d, err := parseDecimal(s, decimal.NewFromInt(DefaultExchangeRate))
	if err != nil {
		return Rate{}, fmt.Errorf("invalid exchange rate %q: %w: %w", s, ErrInvalidInput, err)
	}
	return R(d), nil
}

// DecodeInput reads a JSON encoded TaxInput from r and validates it. A missing
// exchangeRate is DefaultExchangeRate.
func DecodeInput(r io.Reader) (TaxInput, error) {
	return DecodeInputWithRate(r, R(DefaultExchangeRate))
}

// DecodeInputWithRate is like DecodeInput, but a missing exchangeRate is defaultRate.
func DecodeInputWithRate(r io.Reader, defaultRate Rate) (TaxInput, error) {
	var aux jsonInput
	if err := json.NewDecoder(r).Decode(&aux); err != nil {
		return TaxInput{}, fmt.Errorf("cannot decode input: %w", err)
	}
	in := aux.input(defaultRate)
	if err := in.Validate(); err != nil {
		return TaxInput{}, err
	}
	return in, nil
}

// jsonInput is the wire form of a TaxInput, amounts can be JSON numbers or strings.
type jsonInput struct {
	PurchasePrice decimal.Decimal  `json:"purchasePrice"`
	SalePrice     decimal.Decimal  `json:"salePrice"`
	Dividends     decimal.Decimal  `json:"dividends"`
	ExchangeRate  *decimal.Decimal `json:"exchangeRate"`
}

func (aux jsonInput) input(defaultRate Rate) TaxInput {
	rate := defaultRate
	if aux.ExchangeRate != nil {
		rate = R(*aux.ExchangeRate)
	}
	return TaxInput{
		PurchasePrice: M(aux.PurchasePrice, USD),
		SalePrice:     M(aux.SalePrice, USD),
		Dividends:     M(aux.Dividends, USD),
		ExchangeRate:  rate,
	}
}

// MarshalJSON encodes the input with amounts as JSON numbers.
func (in TaxInput) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("purchasePrice", in.PurchasePrice.Number())
	w.Append("salePrice", in.SalePrice.Number())
	w.Append("dividends", in.Dividends.Number())
	w.Append("exchangeRate", json.Number(in.ExchangeRate.String()))
	return w.MarshalJSON()
}

// UnmarshalJSON decodes an input, amounts can be JSON numbers or strings.
// A missing exchangeRate is DefaultExchangeRate.
func (in *TaxInput) UnmarshalJSON(data []byte) error {
	var aux jsonInput
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*in = aux.input(R(DefaultExchangeRate))
	return nil
}
