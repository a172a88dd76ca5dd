package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/ustax"
)

func TestCalcCmd_Run(t *testing.T) {
	testCases := []struct {
		name string
		cmd  calcCmd
		want []string
	}{
		{
			name: "query total",
			cmd:  calcCmd{purchase: "10000", sale: "12000", dividends: "500", rate: "1300", query: "$.totalKrTax"},
			want: []string{"59800\n"},
		},
		{
			name: "query input",
			cmd:  calcCmd{purchase: "10,000", sale: "12,000", rate: "1300", query: "$.input.salePrice"},
			want: []string{"12000\n"},
		},
		{
			name: "default rate",
			cmd:  calcCmd{sale: "1", query: "$.input.exchangeRate"},
			want: []string{"1300\n"},
		},
		{
			name: "json",
			cmd:  calcCmd{purchase: "100000", sale: "200000", rate: "1300", asJSON: true},
			want: []string{`"krCapitalGainTax": 19360000`, `"totalKrTax": 19360000`},
		},
		{
			name: "raw markdown in USD",
			cmd:  calcCmd{purchase: "10000", sale: "12000", dividends: "500", rate: "1300", currency: "usd", raw: true},
			want: []string{"# US Stock Tax Report", "**$46.00**"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := tc.cmd.run(&out, strings.NewReader("")); err != nil {
				t.Fatalf("run() unexpected error: %v", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("run() output does not contain %q, got:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestCalcCmd_Input(t *testing.T) {
	const input = `{"purchasePrice": 10000, "salePrice": 12000, "dividends": 500, "exchangeRate": 1300}`

	t.Run("file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "input.json")
		if err := os.WriteFile(file, []byte(input), 0644); err != nil {
			t.Fatal(err)
		}
		c := calcCmd{inputFile: file, asJSON: true}
		var out bytes.Buffer
		if err := c.run(&out, nil); err != nil {
			t.Fatalf("run() unexpected error: %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("run() printed invalid JSON: %v\n%s", err, out.String())
		}
		if got["totalKrTax"] != 59800.0 {
			t.Errorf("totalKrTax = %v, want 59800", got["totalKrTax"])
		}
	})

	t.Run("stdin", func(t *testing.T) {
		c := calcCmd{inputFile: "-", query: "$.foreignTaxCredit"}
		var out bytes.Buffer
		if err := c.run(&out, strings.NewReader(input)); err != nil {
			t.Fatalf("run() unexpected error: %v", err)
		}
		if got, want := out.String(), "97500\n"; got != want {
			t.Errorf("run() = %q, want %q", got, want)
		}
	})

	t.Run("rate flag as default", func(t *testing.T) {
		testCases := []struct {
			name  string
			input string
			rate  string
			want  string
		}{
			{"missing in file", `{"salePrice": 1}`, "1400", "1400\n"},
			{"set in file", `{"salePrice": 1, "exchangeRate": 1250}`, "1400", "1250\n"},
			{"no flag", `{"salePrice": 1}`, "", "1300\n"},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				c := calcCmd{inputFile: "-", rate: tc.rate, query: "$.input.exchangeRate"}
				var out bytes.Buffer
				if err := c.run(&out, strings.NewReader(tc.input)); err != nil {
					t.Fatalf("run() unexpected error: %v", err)
				}
				if got := out.String(); got != tc.want {
					t.Errorf("run() = %q, want %q", got, tc.want)
				}
			})
		}
	})

	t.Run("missing file", func(t *testing.T) {
		c := calcCmd{inputFile: filepath.Join(t.TempDir(), "nope.json")}
		err := c.run(&bytes.Buffer{}, nil)
		if err == nil || errors.Is(err, errUsage) || errors.Is(err, ustax.ErrInvalidInput) {
			t.Errorf("run() error = %v, want an I/O error", err)
		}
	})
}

func TestCalcCmd_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		cmd     calcCmd
		wantErr error
	}{
		{"negative amount", calcCmd{purchase: "-1", rate: "1300"}, ustax.ErrInvalidInput},
		{"zero rate", calcCmd{rate: "0"}, ustax.ErrInvalidInput},
		{"not a number", calcCmd{sale: "twelve", rate: "1300"}, ustax.ErrInvalidInput},
		{"unknown currency", calcCmd{currency: "EUR"}, errUsage},
		{"json and query", calcCmd{asJSON: true, query: "$.totalKrTax"}, errUsage},
		{"input file and flags", calcCmd{inputFile: "-", sale: "1"}, errUsage},
		{"input file and bad rate", calcCmd{inputFile: "-", rate: "abc"}, ustax.ErrInvalidInput},
		{"unknown query key", calcCmd{rate: "1300", query: "$.unknownField"}, errUsage},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cmd.run(&bytes.Buffer{}, strings.NewReader(""))
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("run() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
