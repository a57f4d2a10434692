package batch

import (
	"fmt"
	"time"

	"fjacquet/receipt-csv/internal/dateutils"
)

// DateRange is the span of payment dates covered by a batch.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the range as "YYYY-MM-DD_YYYY-MM-DD", or "" when either bound is zero.
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s", dr.Start.Format(dateutils.DateLayoutISO), dr.End.Format(dateutils.DateLayoutISO))
}

// Merge returns the smallest range covering both ranges. Zero bounds are ignored.
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if start.IsZero() || (!other.Start.IsZero() && other.Start.Before(start)) {
		start = other.Start
	}
	if end.IsZero() || (!other.End.IsZero() && other.End.After(end)) {
		end = other.End
	}
	return DateRange{Start: start, End: end}
}

// OutputFilename builds the consolidated CSV name for a batch run.
func OutputFilename(prefix string, dr DateRange) string {
	if prefix == "" {
		prefix = "receipts"
	}
	if s := dr.String(); s != "" {
		return fmt.Sprintf("%s_%s.csv", prefix, s)
	}
	return prefix + ".csv"
}
