package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/ustax"
)

// Line is one amount of the report with the calculation that produced it.
type Line struct {
	Amount  string
	Formula string
}

// Tax is the view of a TaxResult in a display currency, ready to be rendered.
type Tax struct {
	Currency          string
	Rate              string
	USDividendTaxRate string

	CapitalGain      Line
	Dividends        Line
	USDividendTax    Line
	KRCapitalGainTax Line
	KRDividendTax    Line
	ForeignTaxCredit Line
	TotalKRTax       Line
}

// views holds the presentation strategy of each display currency.
var views = map[ustax.DisplayCurrency]func(ustax.TaxResult) *Tax{
	ustax.DisplayKRW: wonView,
	ustax.DisplayUSD: dollarView,
}

// NewTax returns the view of r in currency c. Unknown currencies fall back to KRW.
func NewTax(r ustax.TaxResult, c ustax.DisplayCurrency) *Tax {
	view, ok := views[c]
	if !ok {
		view = wonView
	}
	t := view(r)
	t.Rate = r.Input.ExchangeRate.Won()
	t.USDividendTaxRate = ustax.R(ustax.USDividendWithholdingRate).Percent()
	return t
}

// wonView presents every amount in KRW, as assessed by the Korean tax office.
func wonView(r ustax.TaxResult) *Tax {
	in := r.Input
	rate := in.ExchangeRate.Won()
	krRate := ustax.R(ustax.KRCapitalGainTaxRate).Percent()
	divRate := ustax.R(ustax.KRDividendTaxRate).Percent()
	return &Tax{
		Currency: ustax.KRW,
		CapitalGain: Line{
			Amount:  r.KRWCapitalGain.String(),
			Formula: fmt.Sprintf("%s × %s", r.CapitalGainUSD(), rate),
		},
		Dividends: Line{
			Amount:  r.KRWDividends.String(),
			Formula: fmt.Sprintf("%s × %s", in.Dividends.In(ustax.USD), rate),
		},
		USDividendTax: Line{
			Amount:  r.USDividendTaxKRW.String(),
			Formula: fmt.Sprintf("%s × %s", r.USDividendTax, rate),
		},
		KRCapitalGainTax: Line{
			Amount:  r.KRCapitalGainTax.String(),
			Formula: fmt.Sprintf("max(₩0, %s - %s) × %s", r.KRWCapitalGain, r.BasicDeduction, krRate),
		},
		KRDividendTax: Line{
			Amount:  r.KRDividendTax.String(),
			Formula: fmt.Sprintf("%s × %s", r.KRWDividends, divRate),
		},
		ForeignTaxCredit: Line{
			Amount:  r.ForeignTaxCredit.String(),
			Formula: fmt.Sprintf("min(%s, %s)", r.USDividendTaxKRW, r.KRDividendTax),
		},
		TotalKRTax: Line{
			Amount:  r.TotalKRTax.String(),
			Formula: fmt.Sprintf("%s + %s - %s", r.KRCapitalGainTax, r.KRDividendTax, r.ForeignTaxCredit),
		},
	}
}

// dollarView presents every amount in USD, KRW amounts are converted back with the exchange rate.
func dollarView(r ustax.TaxResult) *Tax {
	in := r.Input
	rate := in.ExchangeRate.Won()
	usd := func(m ustax.Money) ustax.Money { return m.Div(in.ExchangeRate).In(ustax.USD) }
	krRate := ustax.R(ustax.KRCapitalGainTaxRate).Percent()
	divRate := ustax.R(ustax.KRDividendTaxRate).Percent()
	return &Tax{
		Currency: ustax.USD,
		CapitalGain: Line{
			Amount:  r.CapitalGainUSD().String(),
			Formula: fmt.Sprintf("%s ÷ %s", r.KRWCapitalGain, rate),
		},
		Dividends: Line{
			Amount:  in.Dividends.In(ustax.USD).String(),
			Formula: fmt.Sprintf("%s ÷ %s", r.KRWDividends, rate),
		},
		USDividendTax: Line{
			Amount:  r.USDividendTax.String(),
			Formula: fmt.Sprintf("%s × %s", in.Dividends.In(ustax.USD), ustax.R(ustax.USDividendWithholdingRate).Percent()),
		},
		KRCapitalGainTax: Line{
			Amount:  usd(r.KRCapitalGainTax).String(),
			Formula: fmt.Sprintf("%s × %s", usd(r.TaxableCapitalGain), krRate),
		},
		KRDividendTax: Line{
			Amount:  usd(r.KRDividendTax).String(),
			Formula: fmt.Sprintf("%s × %s", in.Dividends.In(ustax.USD), divRate),
		},
		ForeignTaxCredit: Line{
			Amount:  usd(r.ForeignTaxCredit).String(),
			Formula: fmt.Sprintf("min(%s, %s)", r.USDividendTax, usd(r.KRDividendTax)),
		},
		TotalKRTax: Line{
			Amount:  usd(r.TotalKRTax).String(),
			Formula: fmt.Sprintf("%s + %s - %s", usd(r.KRCapitalGainTax), usd(r.KRDividendTax), usd(r.ForeignTaxCredit)),
		},
	}
}

// TaxMarkdown renders the tax result r as a markdown report in currency c.
// Unknown currencies fall back to KRW.
func TaxMarkdown(r ustax.TaxResult, c ustax.DisplayCurrency) string {
	if _, ok := views[c]; !ok {
		c = ustax.DisplayKRW
	}
	partials := map[string]string{
		"tax_title":      "tax_title.md",
		"tax_income":     "tax_income.md",
		"tax_taxes":      "tax_taxes.md",
		"tax_settlement": "tax_settlement.md",
	}
	var b strings.Builder
	b.WriteString(renderTemplate("tax", "tax.md", partials, NewTax(r, c)))
	writeNotes(&b, r, c)
	return b.String()
}

// writeNotes appends a notes section, only if there is something worth noting.
func writeNotes(w io.Writer, r ustax.TaxResult, c ustax.DisplayCurrency) {
	ConditionalBlock(w, func(w io.Writer) bool {
		amount := func(m ustax.Money) ustax.Money {
			return ustax.Convert(m, c.Code(), r.Input.ExchangeRate)
		}
		fmt.Fprint(w, "\n## Notes\n\n")
		notes := 0
		switch {
		case r.KRWCapitalGain.IsNegative():
			fmt.Fprintf(w, "- The capital loss of %s is not refunded and does not offset the dividend tax.\n", amount(r.KRWCapitalGain.Neg()))
			notes++
		case r.KRWCapitalGain.IsPositive() && r.TaxableCapitalGain.IsZero():
			fmt.Fprintf(w, "- The capital gain is within the %s basic deduction: no capital gains tax.\n", amount(r.BasicDeduction))
			notes++
		}
		if r.ForeignTaxCredit.IsPositive() {
			fmt.Fprintf(w, "- The foreign tax credit only offsets the dividend tax.\n")
			notes++
		}
		if r.TotalKRTax.IsNegative() {
			fmt.Fprintf(w, "- The total is negative: the foreign tax credit exceeds the Korean tax.\n")
			notes++
		}
		return notes > 0
	})
}
