// Package dateutils builds and formats the payment timestamps printed on receipts.
package dateutils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/receipt-csv/internal/parsererror"
)

// Date layouts used for output.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutDateTime = "2006-01-02 15:04"
	DateLayoutEuropean = "02/01/2006"
	DateLayoutConsum   = "02.01.2006"
)

// PaymentDateField is the field name reported in errors raised while building a payment date.
const PaymentDateField = "payment_date"

var errOutOfRange = errors.New("date component out of range")

// BuildPaymentDate assembles a timestamp from the numeric components captured on a
// receipt. Empty hour and minute default to midnight. Components that do not form a
// real calendar date (31/02, 25:00) are rejected rather than normalized.
func BuildPaymentDate(day, month, year, hour, minute string) (time.Time, error) {
	raw := fmt.Sprintf("%s/%s/%s %s:%s", day, month, year, hour, minute)

	d, err := atoi(day)
	if err != nil {
		return time.Time{}, malformed(raw, err)
	}
	m, err := atoi(month)
	if err != nil {
		return time.Time{}, malformed(raw, err)
	}
	y, err := atoi(year)
	if err != nil {
		return time.Time{}, malformed(raw, err)
	}

	h, mi := 0, 0
	if strings.TrimSpace(hour) != "" {
		if h, err = atoi(hour); err != nil {
			return time.Time{}, malformed(raw, err)
		}
	}
	if strings.TrimSpace(minute) != "" {
		if mi, err = atoi(minute); err != nil {
			return time.Time{}, malformed(raw, err)
		}
	}

	if h > 23 || mi > 59 {
		return time.Time{}, malformed(raw, errOutOfRange)
	}

	t := time.Date(y, time.Month(m), d, h, mi, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m || t.Year() != y {
		return time.Time{}, malformed(raw, errOutOfRange)
	}
	return t, nil
}

func atoi(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errOutOfRange
	}
	return n, nil
}

func malformed(raw string, err error) error {
	return &parsererror.MalformedNumericError{Field: PaymentDateField, Value: raw, Err: err}
}

// FormatDate formats a time.Time value according to the specified layout
// If no layout is provided, DateLayoutDateTime is used
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutDateTime
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
