// Package currencyutils normalizes the numeric tokens found in receipts into exact
// decimal values. Receipts use either ',' or '.' as decimal separator and never carry
// thousands separators, so a token holds at most one separator.
package currencyutils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/receipt-csv/internal/parsererror"
)

const (
	// AmountPlaces is the number of decimal places kept for currency values.
	AmountPlaces int32 = 2
	// QuantityPlaces is the number of decimal places kept for weighed quantities.
	QuantityPlaces int32 = 3
)

var (
	numericPattern = regexp.MustCompile(`^[+-]?(?:\d+(?:[.,]\d*)?|[.,]\d+)$`)

	errNotNumeric = errors.New("not a decimal number")
)

// ParseDecimal converts a locale formatted token such as "2,35", "-0.60" or "-,50"
// into an exact decimal. Surrounding whitespace is ignored.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	return parseField("", raw)
}

// ParseField is ParseDecimal with the name of the field being parsed carried into
// the returned error.
func ParseField(field, raw string) (decimal.Decimal, error) {
	return parseField(field, raw)
}

func parseField(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if !numericPattern.MatchString(s) {
		return decimal.Zero, &parsererror.MalformedNumericError{Field: field, Value: raw, Err: errNotNumeric}
	}

	s = strings.Replace(s, ",", ".", 1)
	s = strings.TrimPrefix(s, "+")
	// decimal.NewFromString rejects "5." and ".5" with a sign in front; pad both sides.
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	} else if strings.HasPrefix(s, "-.") {
		s = "-0" + s[1:]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &parsererror.MalformedNumericError{Field: field, Value: raw, Err: err}
	}
	return d, nil
}

// ParseAmount parses a currency token, rounded to two decimals.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := parseField(field, raw)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(AmountPlaces), nil
}

// ParseQuantity parses a weighed quantity token, rounded to three decimals.
func ParseQuantity(field, raw string) (decimal.Decimal, error) {
	d, err := parseField(field, raw)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Round(QuantityPlaces), nil
}

// UnitPrice divides a total by a quantity and rounds to two decimals.
// A zero quantity yields a zero unit price.
func UnitPrice(total, quantity decimal.Decimal) decimal.Decimal {
	if quantity.IsZero() {
		return decimal.Zero
	}
	return total.DivRound(quantity, AmountPlaces+4).Round(AmountPlaces)
}

// RoundAmount rounds a value to currency precision.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}

// FormatAmount formats an amount with exactly two decimal places, e.g. "12.30".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountPlaces)
}

// FormatLocale formats a value with the given number of places and decimal separator.
// Output of FormatLocale(d, 2, ",") parses back to d rounded to 2 places.
func FormatLocale(d decimal.Decimal, places int32, sep string) string {
	s := d.StringFixed(places)
	if sep != "" && sep != "." {
		s = strings.Replace(s, ".", sep, 1)
	}
	return s
}

// ToMinorUnits scales an amount into integer minor units, e.g. 1000 for milliunits.
func ToMinorUnits(amount decimal.Decimal, scale int64) int64 {
	return amount.Mul(decimal.NewFromInt(scale)).Round(0).IntPart()
}
