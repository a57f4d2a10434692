// Package parser provides the grammar contract shared by vendor parsers together with
// the line classifier and metadata helpers they are built from.
package parser

import (
	"fjacquet/receipt-csv/internal/logging"
)

// BaseParser provides common functionality for all vendor grammars.
//
// Vendor grammars should embed BaseParser to inherit common functionality:
//
//	type Grammar struct {
//		parser.BaseParser
//		// vendor-specific pattern tables
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a new BaseParser instance with the provided logger.
// If logger is nil, a default logger will be used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.GetLogger()
	}

	return BaseParser{
		logger: logger,
	}
}

// SetLogger replaces the logger used by the parser.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}
