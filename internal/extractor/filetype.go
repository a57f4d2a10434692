package extractor

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// FileType is the document type found by sniffing the leading bytes of a file.
type FileType string

// Supported document types
const (
	FileTypeUnknown FileType = "unknown"
	FileTypePDF     FileType = "pdf"
	FileTypePNG     FileType = "png"
)

var (
	pdfMagic = []byte("%PDF")
	pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
)

// sniffLen is the number of leading bytes needed to recognize every supported type.
const sniffLen = 8

// DetectFileType recognizes a document from its leading bytes.
func DetectFileType(header []byte) FileType {
	switch {
	case bytes.HasPrefix(header, pdfMagic):
		return FileTypePDF
	case bytes.HasPrefix(header, pngMagic):
		return FileTypePNG
	default:
		return FileTypeUnknown
	}
}

// SniffFile reads the leading bytes of path and returns its type.
func SniffFile(path string) (FileType, []byte, error) {
	f, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return FileTypeUnknown, nil, fmt.Errorf("error opening file: %w", err)
	}
	defer func() { _ = f.Close() }()

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FileTypeUnknown, nil, fmt.Errorf("error reading file header: %w", err)
	}
	header = header[:n]
	return DetectFileType(header), header, nil
}
