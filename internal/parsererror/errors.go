// Package parsererror defines the typed errors raised while turning receipt text
// into an invoice. Callers match kinds with errors.Is against the sentinel values
// and pull details out with errors.As.
package parsererror

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Every typed error below reports Is(kind) == true for its kind.
var (
	ErrUnsupportedVendor = errors.New("unsupported vendor")
	ErrMissingField      = errors.New("missing field")
	ErrMalformedNumeric  = errors.New("malformed numeric field")
	ErrTotalMismatch     = errors.New("total mismatch")
	ErrInvalidFormat     = errors.New("invalid format")
)

// UnsupportedVendorError is returned when no vendor signature is found in the text.
type UnsupportedVendorError struct {
	Snippet string // leading part of the text that was searched
}

func (e *UnsupportedVendorError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("unsupported vendor: no known vendor signature found. Text snippet: '%s'", e.Snippet)
	}
	return "unsupported vendor: no known vendor signature found"
}

func (e *UnsupportedVendorError) Is(target error) bool { return target == ErrUnsupportedVendor }

// MissingFieldError is returned when a required metadata pattern does not match.
// It usually points at poor OCR quality or a document variant the grammar does not know.
type MissingFieldError struct {
	Vendor  string
	Field   string
	Snippet string
}

func (e *MissingFieldError) Error() string {
	msg := fmt.Sprintf("%s: required field '%s' not found (poor OCR quality or unsupported document variant?)",
		e.Vendor, e.Field)
	if e.Snippet != "" {
		msg += fmt.Sprintf(". Text snippet: '%s'", e.Snippet)
	}
	return msg
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// MalformedNumericError is returned when a matched numeric token cannot be normalized.
type MalformedNumericError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedNumericError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed numeric field %s='%s': %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("malformed numeric field %s='%s'", e.Field, e.Value)
}

func (e *MalformedNumericError) Unwrap() error { return e.Err }

func (e *MalformedNumericError) Is(target error) bool { return target == ErrMalformedNumeric }

// TotalMismatchError reports a disagreement between the declared total and the sum of
// the extracted item totals. Whether it is fatal is decided by the caller.
type TotalMismatchError struct {
	Vendor        string
	InvoiceNumber string
	Declared      string
	Computed      string
	Tolerance     string
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("%s invoice %s: declared total %s does not match sum of items %s (tolerance %s)",
		e.Vendor, e.InvoiceNumber, e.Declared, e.Computed, e.Tolerance)
}

func (e *TotalMismatchError) Is(target error) bool { return target == ErrTotalMismatch }

// ParseError represents a failure while acquiring or reading a document.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file is not a document type
// the acquisition layer can read.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string // Optional: a snippet of the actual content for debugging
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Is(target error) bool { return target == ErrInvalidFormat }
