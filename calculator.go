package ustax

// Tax policy parameters. They are fixed for a calculation and are not
// configurable at call time.
const (
	// USDividendWithholdingRate is the US withholding on dividends under the US-Korea tax treaty.
	USDividendWithholdingRate = 0.15
	// BasicDeductionKRW is the yearly allowance deducted from capital gains.
	BasicDeductionKRW = 50_000_000
	// KRCapitalGainTaxRate is 22% plus 2.2% local income tax.
	KRCapitalGainTaxRate = 0.242
	// KRDividendTaxRate is a flat approximation of the progressive rate, 22% plus 2.2% local income tax.
	KRDividendTaxRate = 0.242
)

// Compute returns the tax breakdown of in.
//
// in must be valid (see TaxInput.Validate); Compute does not check it again.
// Amounts are exact decimals and are never rounded. The foreign tax credit
// only offsets the dividend tax, and the total is not floored at zero.
func Compute(in TaxInput) TaxResult {
	rate := in.ExchangeRate

	// US side
	capitalGain := in.SalePrice.Sub(in.PurchasePrice)
	usDividendTax := in.Dividends.Mul(R(USDividendWithholdingRate))

	// capital gains
	krwCapitalGain := Convert(capitalGain.In(USD), KRW, rate)
	deduction := M(BasicDeductionKRW, KRW)
	taxable := krwCapitalGain.Sub(deduction).Max(M(0, KRW))
	krCapitalGainTax := taxable.Mul(R(KRCapitalGainTaxRate))

	// dividends
	krwDividends := Convert(in.Dividends.In(USD), KRW, rate)
	krDividendTax := krwDividends.Mul(R(KRDividendTaxRate))

	usDividendTaxKRW := Convert(usDividendTax.In(USD), KRW, rate)
	credit := usDividendTaxKRW.Min(krDividendTax)

	return TaxResult{
		Input:              in,
		USDividendTax:      usDividendTax.In(USD),
		USDividendTaxKRW:   usDividendTaxKRW,
		KRWCapitalGain:     krwCapitalGain,
		BasicDeduction:     deduction,
		TaxableCapitalGain: taxable,
		KRCapitalGainTax:   krCapitalGainTax,
		KRWDividends:       krwDividends,
		KRDividendTax:      krDividendTax,
		ForeignTaxCredit:   credit,
		TotalKRTax:         krCapitalGainTax.Add(krDividendTax).Sub(credit),
	}
}
