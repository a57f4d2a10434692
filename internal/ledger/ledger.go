// Package ledger maps a parsed invoice onto a budgeting ledger transaction: amounts
// become negative integers in the ledger's minor units and every product becomes a
// split line. Submitting the transaction is left to the caller.
package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"fjacquet/receipt-csv/internal/currencyutils"
	"fjacquet/receipt-csv/internal/dateutils"
	"fjacquet/receipt-csv/internal/models"
)

// DefaultScale converts currency units to milliunits.
const DefaultScale int64 = 1000

// AdjustmentMemo labels the split line that absorbs a difference between the
// declared total and the products.
const AdjustmentMemo = "Unmatched amount"

// importNamespace seeds the deterministic import identifiers.
var importNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/fjacquet/receipt-csv"))

// Options carries the ledger identifiers the transaction is filed under.
type Options struct {
	AccountID  string
	CategoryID string
	Scale      int64
	Approved   bool
}

// SubTransaction is one split line of a transaction.
type SubTransaction struct {
	Amount     int64  `json:"amount" yaml:"amount"`
	PayeeName  string `json:"payee_name,omitempty" yaml:"payee_name,omitempty"`
	CategoryID string `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	Memo       string `json:"memo,omitempty" yaml:"memo,omitempty"`
}

// Transaction is the ledger representation of one invoice.
type Transaction struct {
	AccountID       string           `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	Date            string           `json:"date" yaml:"date"`
	Amount          int64            `json:"amount" yaml:"amount"`
	PayeeName       string           `json:"payee_name" yaml:"payee_name"`
	CategoryID      string           `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	Memo            string           `json:"memo,omitempty" yaml:"memo,omitempty"`
	Approved        bool             `json:"approved" yaml:"approved"`
	ImportID        string           `json:"import_id" yaml:"import_id"`
	SubTransactions []SubTransaction `json:"subtransactions,omitempty" yaml:"subtransactions,omitempty"`
}

// ImportID returns a stable identifier for the invoice, so re-importing the same
// receipt is recognized as a duplicate.
func ImportID(inv *models.Invoice) string {
	return uuid.NewSHA1(importNamespace, []byte(inv.Vendor.String()+models.InvoiceNumberSeparator+inv.InvoiceNumber)).String()
}

// FromInvoice builds the ledger transaction of inv. The split lines always add up
// to the transaction amount; a difference between the declared total and the
// products goes to an adjustment line.
func FromInvoice(inv *models.Invoice, opts Options) (Transaction, error) {
	if inv == nil {
		return Transaction{}, fmt.Errorf("cannot build a ledger transaction from a nil invoice")
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	tx := Transaction{
		AccountID:  opts.AccountID,
		Date:       dateutils.ToISODate(inv.PaymentDate),
		Amount:     -currencyutils.ToMinorUnits(inv.Total, scale),
		PayeeName:  inv.Vendor.String(),
		CategoryID: opts.CategoryID,
		Memo:       inv.InvoiceNumber,
		Approved:   opts.Approved,
		ImportID:   ImportID(inv),
	}

	if len(inv.Products) == 0 {
		return tx, nil
	}

	var sum int64
	for _, p := range inv.Products {
		amount := -currencyutils.ToMinorUnits(p.TotalPrice, scale)
		sum += amount
		tx.SubTransactions = append(tx.SubTransactions, SubTransaction{
			Amount:     amount,
			PayeeName:  tx.PayeeName,
			CategoryID: opts.CategoryID,
			Memo:       strings.TrimSpace(p.Name + " " + p.Unit),
		})
	}
	if diff := tx.Amount - sum; diff != 0 {
		tx.SubTransactions = append(tx.SubTransactions, SubTransaction{
			Amount:     diff,
			PayeeName:  tx.PayeeName,
			CategoryID: opts.CategoryID,
			Memo:       AdjustmentMemo,
		})
	}
	return tx, nil
}

// Encode writes tx to w as "json" or "yaml".
func Encode(w io.Writer, tx Transaction, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tx)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tx); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported ledger output format %q", format)
	}
}
