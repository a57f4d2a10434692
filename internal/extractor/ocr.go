package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/parsererror"
)

// Default tesseract settings for receipt images.
const (
	DefaultTesseractPath = "tesseract"
	DefaultOCRLanguages  = "spa+eng"
	DefaultOCRTimeout    = 60 * time.Second
)

// Runner lets tests stub external commands.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct {
	logger logging.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- binary path comes from configuration
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	fields := []logging.Field{
		logging.F("cmd", name),
		logging.F("args", strings.Join(args, " ")),
		logging.F("duration_ms", time.Since(start).Milliseconds()),
	}
	if err != nil {
		r.logger.WithError(err).Error("OCR command failed", append(fields, logging.F("stderr", truncate(errb.String(), 8<<10)))...)
	} else {
		r.logger.Debug("OCR command finished", append(fields, logging.F("stdout_bytes", out.Len()))...)
	}
	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...(truncated)"
}

// OCRConfig configures the tesseract invocation.
type OCRConfig struct {
	TesseractPath string
	Languages     string
	Timeout       time.Duration
}

// OCRExtractor recognizes the text of a receipt image with tesseract.
type OCRExtractor struct {
	cfg    OCRConfig
	runner Runner
}

// NewOCRExtractor creates an OCRExtractor. Zero config values take the defaults.
func NewOCRExtractor(cfg OCRConfig, logger logging.Logger) *OCRExtractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return NewOCRExtractorWithRunner(cfg, execRunner{logger: logger})
}

// NewOCRExtractorWithRunner creates an OCRExtractor that runs commands through runner.
func NewOCRExtractorWithRunner(cfg OCRConfig, runner Runner) *OCRExtractor {
	if cfg.TesseractPath == "" {
		cfg.TesseractPath = DefaultTesseractPath
	}
	if cfg.Languages == "" {
		cfg.Languages = DefaultOCRLanguages
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultOCRTimeout
	}
	return &OCRExtractor{cfg: cfg, runner: runner}
}

// Args returns the tesseract arguments used for path. Page segmentation mode 6
// treats the receipt as one uniform block of text.
func (e *OCRExtractor) Args(path string) []string {
	return []string{path, "stdout", "--oem", "1", "--psm", "6", "-l", e.cfg.Languages}
}

// ExtractText implements TextExtractor.
func (e *OCRExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	out, errb, err := e.runner.Run(ctx, e.cfg.TesseractPath, e.Args(path)...)
	if err != nil {
		if msg := strings.TrimSpace(string(errb)); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", &parsererror.ParseError{Parser: "OCR", Field: "image", Value: path, Err: err}
	}
	return string(out), nil
}
