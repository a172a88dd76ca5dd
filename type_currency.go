package ustax

import (
	"fmt"
	"strings"
)

// DisplayCurrency selects the currency used to present a TaxResult.
type DisplayCurrency int

const (
	// DisplayKRW presents every amount in Korean won, the currency the Korean tax is assessed in.
	DisplayKRW DisplayCurrency = iota
	// DisplayUSD presents every amount in US dollars, converting KRW amounts back with the exchange rate.
	DisplayUSD
)

func (c DisplayCurrency) String() string {
	switch c {
	case DisplayKRW:
		return KRW
	case DisplayUSD:
		return USD
	default:
		return "unknown"
	}
}

// Code returns the ISO currency code of the display currency.
func (c DisplayCurrency) Code() string { return c.String() }

// ParseDisplayCurrency parses a currency code, case insensitive, into a DisplayCurrency.
// An empty string is KRW.
func ParseDisplayCurrency(s string) (DisplayCurrency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", KRW:
		return DisplayKRW, nil
	case USD:
		return DisplayUSD, nil
	default:
		return 0, fmt.Errorf("unknown display currency: %q (want KRW or USD)", s)
	}
}
