package networth

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	// Stored collections use plain JSON numbers for amounts.
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultCurrency is the currency used to display amounts.
// There is a single currency for the whole book.
const DefaultCurrency = money.USD

// currency returns a never nil currency for code, falling back to the default one.
func currency(code string) money.Currency {
	if code == "" {
		code = DefaultCurrency
	}
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, strings.ToUpper(code)).Currency()
}

// FormatAmount returns the value formatted in the currency 'code', e.g. "$1,234.50".
func FormatAmount(v decimal.Decimal, code string) string {
	cur := currency(code)
	dec := v.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// FormatSigned is like FormatAmount but always shows the sign.
// 0 is represented as a "-".
func FormatSigned(v decimal.Decimal, code string) string {
	switch {
	case v.IsZero():
		return "-"
	case v.IsPositive():
		return "+" + FormatAmount(v, code)
	default:
		return FormatAmount(v, code)
	}
}

// ParseAmount parses a decimal number as written in a bank export.
// Thousand separators and currency symbols are not accepted here, bank formats strip them first.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %w", err)
	}
	return d, nil
}

