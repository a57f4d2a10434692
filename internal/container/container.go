// Package container provides dependency injection for the receipt-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/receipt-csv/internal/assembler"
	"fjacquet/receipt-csv/internal/batch"
	"fjacquet/receipt-csv/internal/common"
	"fjacquet/receipt-csv/internal/config"
	"fjacquet/receipt-csv/internal/extractor"
	"fjacquet/receipt-csv/internal/factory"
	"fjacquet/receipt-csv/internal/ledger"
	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/models"
	"fjacquet/receipt-csv/internal/parser"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	assembler *assembler.Assembler
	extractor extractor.TextExtractor
	csvWriter *common.CSVWriter
	processor *batch.Processor

	grammars map[models.Vendor]parser.Grammar
}

// Option overrides a dependency before the container is wired.
type Option func(*options)

type options struct {
	logger    logging.Logger
	extractor extractor.TextExtractor
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithExtractor replaces the PDF/OCR document extractor.
func WithExtractor(e extractor.TextExtractor) Option {
	return func(o *options) { o.extractor = e }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	grammars := make(map[models.Vendor]parser.Grammar)
	for _, vendor := range models.Vendors() {
		g, err := factory.GetGrammar(vendor, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s grammar: %w", vendor, err)
		}
		grammars[vendor] = g
	}

	asm := assembler.New(logger,
		assembler.WithStrict(cfg.Reconcile.Strict),
		assembler.WithTolerance(cfg.Tolerance()))

	ext := o.extractor
	if ext == nil {
		ocr := extractor.NewOCRExtractor(extractor.OCRConfig{
			TesseractPath: cfg.OCR.TesseractPath,
			Languages:     cfg.OCR.Languages,
			Timeout:       cfg.OCRTimeout(),
		}, logger)
		ext = extractor.NewFileExtractor(extractor.NewPDFExtractor(), ocr, logger)
	}

	csvWriter := common.NewCSVWriter(cfg.Delimiter(), logger)
	processor := batch.NewProcessor(ext, asm, logger, cfg.Batch.Workers)

	logger.Debug("Container initialized successfully",
		logging.F("grammars_count", len(grammars)),
		logging.F("policy", asm.Policy().String()),
		logging.F(logging.FieldWorkers, processor.Workers()))

	return &Container{
		logger:    logger,
		config:    cfg,
		assembler: asm,
		extractor: ext,
		csvWriter: csvWriter,
		processor: processor,
		grammars:  grammars,
	}, nil
}

// GetGrammar returns the grammar registered for vendor.
func (c *Container) GetGrammar(vendor models.Vendor) (parser.Grammar, error) {
	g, ok := c.grammars[vendor]
	if !ok {
		return nil, fmt.Errorf("unknown vendor: %s", vendor)
	}
	return g, nil
}

// GetLogger returns the configured logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the application configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetAssembler returns the invoice assembler.
func (c *Container) GetAssembler() *assembler.Assembler {
	return c.assembler
}

// GetExtractor returns the document text extractor.
func (c *Container) GetExtractor() extractor.TextExtractor {
	return c.extractor
}

// GetCSVWriter returns the CSV writer configured with the application delimiter.
func (c *Container) GetCSVWriter() *common.CSVWriter {
	return c.csvWriter
}

// GetProcessor returns the batch processor.
func (c *Container) GetProcessor() *batch.Processor {
	return c.processor
}

// LedgerOptions returns the ledger identifiers from configuration.
func (c *Container) LedgerOptions() ledger.Options {
	return ledger.Options{
		AccountID:  c.config.Ledger.AccountID,
		CategoryID: c.config.Ledger.CategoryID,
		Scale:      c.config.Ledger.CurrencyScale,
	}
}
