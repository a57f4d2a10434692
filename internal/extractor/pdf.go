package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"fjacquet/receipt-csv/internal/parsererror"
)

// PDFExtractor extracts the embedded text layer of a PDF with MuPDF.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDFExtractor instance.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText returns the text of every page joined by newlines.
func (e *PDFExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", &parsererror.ParseError{Parser: "PDF", Field: "document", Value: path, Err: err}
	}
	defer func() { _ = doc.Close() }()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := doc.Text(i)
		if err != nil {
			return "", &parsererror.ParseError{
				Parser: "PDF", Field: "page", Value: fmt.Sprintf("%s#%d", path, i+1), Err: err,
			}
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}
