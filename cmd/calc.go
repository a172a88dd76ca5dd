package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/ustax"
	"github.com/etnz/ustax/renderer"
	"github.com/google/subcommands"
)

// calcCmd holds the flags for the 'calc' subcommand.
type calcCmd struct {
	purchase  string
	sale      string
	dividends string
	rate      string
	currency  string
	inputFile string
	asJSON    bool
	query     string
	raw       bool
}

func (*calcCmd) Name() string     { return "calc" }
func (*calcCmd) Synopsis() string { return "compute the Korean tax on US stocks" }
func (*calcCmd) Usage() string {
	return `ustax calc [-purchase <usd>] [-sale <usd>] [-dividends <usd>] [-rate <krw>] [-currency KRW|USD] [-i <file>] [-json] [-q <jsonpath>] [-raw]

  Computes the US withholding tax, the Korean capital gains and dividend taxes,
  the foreign tax credit and the Korean tax payable.

  Amounts are in USD, the exchange rate in KRW per USD. With -i the input is
  read from a JSON file ('-' for stdin) instead of the flags, -rate is used
  when the file has no exchangeRate.
`
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.purchase, "purchase", "", "Purchase price in USD")
	f.StringVar(&c.sale, "sale", "", "Sale price in USD")
	f.StringVar(&c.dividends, "dividends", "", "Dividends received in USD")
	f.StringVar(&c.rate, "rate", *defaultRate, "Exchange rate in KRW per USD")
	f.StringVar(&c.currency, "currency", *defaultCurrency, "Display currency (KRW, USD)")
	f.StringVar(&c.inputFile, "i", "", "Read the input from a JSON file, '-' for stdin")
	f.BoolVar(&c.asJSON, "json", false, "Print the result as JSON")
	f.StringVar(&c.query, "q", "", "Print only the value selected by a JSONPath query on the JSON result, e.g. '$.totalKrTax'")
	f.BoolVar(&c.raw, "raw", false, "Print the markdown report without terminal rendering")
}

func (c *calcCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %v\n", f.Args())
		return subcommands.ExitUsageError
	}
	if err := c.run(os.Stdout, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, ustax.ErrInvalidInput) || errors.Is(err, errUsage) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

var errUsage = errors.New("invalid usage")

// run computes the tax and prints it into w. stdin is read when the input file is '-'.
func (c *calcCmd) run(w io.Writer, stdin io.Reader) error {
	currency, err := ustax.ParseDisplayCurrency(c.currency)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if c.asJSON && c.query != "" {
		return fmt.Errorf("%w: -json and -q cannot be used together", errUsage)
	}

	in, err := c.input(stdin)
	if err != nil {
		return err
	}
	logf("computing tax for purchase=%s sale=%s dividends=%s rate=%s", in.PurchasePrice, in.SalePrice, in.Dividends, in.ExchangeRate)

	res := ustax.Compute(in)

	switch {
	case c.query != "":
		return printQuery(w, res, c.query)
	case c.asJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("cannot encode result: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case c.raw:
		fmt.Fprint(w, renderer.TaxMarkdown(res, currency))
	default:
		printMarkdown(w, renderer.TaxMarkdown(res, currency))
	}
	return nil
}

// input returns the validated input, from the input file if any, otherwise from the flags.
func (c *calcCmd) input(stdin io.Reader) (ustax.TaxInput, error) {
	if c.inputFile == "" {
		return ustax.ParseInput(c.purchase, c.sale, c.dividends, c.rate)
	}
	if c.purchase != "" || c.sale != "" || c.dividends != "" {
		return ustax.TaxInput{}, fmt.Errorf("%w: -i cannot be used with amount flags", errUsage)
	}

	r := stdin
	if c.inputFile != "-" {
		f, err := os.Open(c.inputFile)
		if err != nil {
			return ustax.TaxInput{}, fmt.Errorf("cannot open input file %q: %w", c.inputFile, err)
		}
		defer f.Close()
		r = f
	}
	// the rate flag, or its environment default, applies when the file has none.
	rate, err := ustax.ParseRate(c.rate)
	if err != nil {
		return ustax.TaxInput{}, err
	}
	logf("reading input from %q", c.inputFile)
	return ustax.DecodeInputWithRate(r, rate)
}

// printQuery prints the value selected by the JSONPath query on the JSON encoded res.
func printQuery(w io.Writer, res ustax.TaxResult, query string) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("cannot encode result: %w", err)
	}
	// keep numbers as they are encoded, to avoid float rounding.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return fmt.Errorf("cannot decode result: %w", err)
	}

	jval, err := jsonpath.Get(query, jobj)
	if err != nil {
		return fmt.Errorf("%w: query %q: %w", errUsage, query, err)
	}
	out, err := json.Marshal(jval)
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", query, err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
