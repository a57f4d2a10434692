// Package extractor acquires the raw text of a receipt document: PDF files through
// MuPDF and PNG images through the tesseract OCR engine.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/receipt-csv/internal/logging"
	"fjacquet/receipt-csv/internal/parsererror"
)

// TextExtractor defines the interface for extracting text from a document.
// This interface allows for dependency injection and makes acquisition testable
// by providing different implementations for production and testing.
type TextExtractor interface {
	// ExtractText returns the text content of the document at path.
	ExtractText(ctx context.Context, path string) (string, error)
}

// FileExtractor routes a file to the PDF or OCR extractor according to its leading bytes.
type FileExtractor struct {
	pdf    TextExtractor
	image  TextExtractor
	logger logging.Logger
}

// NewFileExtractor creates a FileExtractor over the given PDF and image extractors.
func NewFileExtractor(pdf, image TextExtractor, logger logging.Logger) *FileExtractor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &FileExtractor{pdf: pdf, image: image, logger: logger}
}

// ExtractText implements TextExtractor.
func (e *FileExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	fileType, header, err := SniffFile(path)
	if err != nil {
		return "", &parsererror.ParseError{Parser: "extractor", Field: "file", Value: path, Err: err}
	}

	log := e.logger.WithFields(
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldFileType, string(fileType)))

	var next TextExtractor
	switch fileType {
	case FileTypePDF:
		next = e.pdf
	case FileTypePNG:
		next = e.image
	default:
		return "", &parsererror.InvalidFormatError{
			FilePath:             path,
			ExpectedFormat:       "PDF or PNG document",
			ActualContentSnippet: fmt.Sprintf("%q", header),
			Msg:                  "unrecognized file signature",
		}
	}

	log.Debug("Extracting document text")
	text, err := next.ExtractText(ctx, path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", &parsererror.ParseError{
			Parser: string(fileType), Field: "text", Value: path,
			Err: fmt.Errorf("document contains no text"),
		}
	}

	log.Debug("Extracted document text", logging.F(logging.FieldCount, len(text)))
	return text, nil
}
