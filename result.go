package ustax

// TaxResult is the tax breakdown of one TaxInput, as returned by Compute.
//
// USDividendTax is in USD, every other amount is in KRW.
type TaxResult struct {
	Input TaxInput // the input the result was derived from

	USDividendTax      Money // US withholding on dividends.
	USDividendTaxKRW   Money // US withholding, converted.
	KRWCapitalGain     Money // sale minus purchase, converted.
	BasicDeduction     Money // yearly allowance on capital gains.
	TaxableCapitalGain Money // capital gain after deduction, never negative.
	KRCapitalGainTax   Money // Korean tax on the taxable capital gain.
	KRWDividends       Money // dividends, converted.
	KRDividendTax      Money // Korean tax on dividends.
	ForeignTaxCredit   Money // offset for the US tax already paid.
	TotalKRTax         Money // net Korean tax payable.
}

// CapitalGainUSD returns the sale price minus the purchase price, a loss is negative.
func (r TaxResult) CapitalGainUSD() Money {
	return r.Input.SalePrice.Sub(r.Input.PurchasePrice).In(USD)
}

// MarshalJSON encodes the result in a stable key order, amounts are JSON numbers.
func (r TaxResult) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("input", r.Input)
	w.Append("usDividendTax", r.USDividendTax.Number())
	w.Append("usDividendTaxKRW", r.USDividendTaxKRW.Number())
	w.Append("krwCapitalGain", r.KRWCapitalGain.Number())
	w.Append("basicDeduction", r.BasicDeduction.Number())
	w.Append("taxableCapitalGain", r.TaxableCapitalGain.Number())
	w.Append("krCapitalGainTax", r.KRCapitalGainTax.Number())
	w.Append("krwDividends", r.KRWDividends.Number())
	w.Append("krDividendTax", r.KRDividendTax.Number())
	w.Append("foreignTaxCredit", r.ForeignTaxCredit.Number())
	w.Append("totalKrTax", r.TotalKRTax.Number())
	return w.MarshalJSON()
}
