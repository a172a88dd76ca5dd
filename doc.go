// Package ustax computes the Korean tax owed by a Korean resident individual
// investor on US listed equities.
//
// The calculation takes four figures, a purchase price, a sale price and
// dividends in USD, plus an exchange rate in KRW per USD, and produces:
//   - the US withholding tax on dividends (15% under the US-Korea treaty),
//   - the Korean capital gains tax, after the 50,000,000 KRW basic deduction,
//   - the Korean dividend tax, at a flat 24.2% approximation,
//   - the foreign tax credit for the US tax already paid,
//   - the net Korean tax payable.
//
// Compute is a pure function: it holds no state, does no I/O and is safe to
// call from any goroutine. Validating the input is the caller's job, see
// TaxInput.Validate and ParseInput.
//
// Amounts are exact decimals. Rounding only happens when formatting for
// display, in the renderer package.
package ustax
