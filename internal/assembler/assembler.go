// Package assembler turns receipt text into a reconciled invoice: it selects the
// vendor grammar, classifies the lines, extracts the header fields and checks the
// declared total against the items.
package assembler

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"fjacquet/receipt-csv/internal/currencyutils"
	"fjacquet/receipt-csv/internal/factory"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parsererror"
	"fjacquet/receipt-csv/internal/textutils"
)

// MismatchPolicy decides what happens when the declared total disagrees with the items.
type MismatchPolicy int

const (
	// Lenient logs a warning and returns the invoice without error.
	Lenient MismatchPolicy = iota
	// Strict returns the invoice together with a *parsererror.TotalMismatchError.
	Strict
)

func (p MismatchPolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "lenient"
}

// Assembler parses receipt text into invoices. It holds no per-document state and
// may be used from several goroutines.
type Assembler struct {
	logger    logging.Logger
	policy    MismatchPolicy
	tolerance decimal.Decimal
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithPolicy sets the mismatch policy.
func WithPolicy(p MismatchPolicy) Option {
	return func(a *Assembler) { a.policy = p }
}

// WithStrict selects Strict when strict is true and Lenient otherwise.
func WithStrict(strict bool) Option {
	return func(a *Assembler) {
		if strict {
			a.policy = Strict
		} else {
			a.policy = Lenient
		}
	}
}

// WithTolerance sets the largest accepted difference between declared and computed totals.
// Negative values are ignored.
func WithTolerance(t decimal.Decimal) Option {
	return func(a *Assembler) {
		if !t.IsNegative() {
			a.tolerance = t
		}
	}
}

// New creates an Assembler. The default is Lenient with a tolerance of 0.01.
func New(logger logging.Logger, opts ...Option) *Assembler {
	if logger == nil {
		logger = logging.GetLogger()
	}
	a := &Assembler{
		logger:    logger,
		policy:    Lenient,
		tolerance: decimal.RequireFromString(models.DefaultTolerance),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Policy returns the configured mismatch policy.
func (a *Assembler) Policy() MismatchPolicy { return a.policy }

// Tolerance returns the configured tolerance.
func (a *Assembler) Tolerance() decimal.Decimal { return a.tolerance }

// Parse builds an invoice from receipt text.
//
// Vendor detection happens before any extraction. Missing or malformed header
// fields are fatal and return a nil invoice. A total mismatch under Strict returns
// both the invoice and the *parsererror.TotalMismatchError.
func (a *Assembler) Parse(text string) (*models.Invoice, error) {
	text = textutils.NormalizeLines(text)

	vendor, grammar, err := factory.SelectGrammar(text, a.logger)
	if err != nil {
		return nil, err
	}
	log := a.logger.WithField(logging.FieldVendor, vendor.String())

	products := grammar.ClassifyLines(text)
	log.Debug("Extracted products", logging.F(logging.FieldCount, len(products)))

	meta, err := grammar.ExtractMetadata(text)
	if err != nil {
		return nil, err
	}

	inv, err := models.NewInvoiceBuilder().
		WithVendor(vendor).
		WithMetadata(meta).
		WithProducts(products).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s invoice: %w", vendor, err)
	}

	if err := a.reconcile(inv, log); err != nil {
		return inv, err
	}

	log.Info("Parsed invoice",
		logging.F(logging.FieldInvoiceNumber, inv.InvoiceNumber),
		logging.F(logging.FieldCount, len(inv.Products)))
	return inv, nil
}

func (a *Assembler) reconcile(inv *models.Invoice, log logging.Logger) error {
	err := inv.Reconcile(a.tolerance)
	if err == nil {
		return nil
	}

	var mismatch *parsererror.TotalMismatchError
	if !errors.As(err, &mismatch) {
		return err
	}

	fields := []logging.Field{
		logging.F(logging.FieldInvoiceNumber, inv.InvoiceNumber),
		logging.F(logging.FieldDeclaredTotal, mismatch.Declared),
		logging.F(logging.FieldComputedTotal, mismatch.Computed),
	}
	if a.policy == Strict {
		log.Error("Declared total does not match the sum of items", fields...)
		return err
	}
	log.Warn("Declared total does not match the sum of items", fields...)
	return nil
}

// Difference returns declared minus computed total, rounded to currency precision.
func Difference(inv *models.Invoice) decimal.Decimal {
	return currencyutils.RoundAmount(inv.Total.Sub(inv.SumTotal()))
}
