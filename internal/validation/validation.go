package validation

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/receipt-csv/internal/fileutils"
)

// Output formats accepted by the commands.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// ParseFormats are the formats the parse command can print.
var ParseFormats = []string{FormatText, FormatJSON, FormatYAML, FormatCSV}

// LedgerFormats are the encodings of a ledger transaction.
var LedgerFormats = []string{FormatJSON, FormatYAML}

// IsValidInputFile checks that path exists, is a regular file and has a receipt extension.
func IsValidInputFile(path string) error {
	if path == "" {
		return fmt.Errorf("input file is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	if !fileutils.IsReceiptFile(path) {
		return fmt.Errorf("unsupported file extension for %s (expected one of %s)",
			path, strings.Join(fileutils.ReceiptExtensions, ", "))
	}
	return nil
}

// IsValidDirectory checks that path exists and is a directory.
func IsValidDirectory(path string) error {
	if path == "" {
		return fmt.Errorf("directory is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", path)
	}
	return nil
}

// IsValidOutputFormat checks if format is one of supported, ignoring case.
func IsValidOutputFormat(format string, supported ...string) error {
	for _, s := range supported {
		if strings.EqualFold(format, s) {
			return nil
		}
	}
	return fmt.Errorf("unsupported output format: %s. Supported formats are '%s'",
		format, strings.Join(supported, "', '"))
}
