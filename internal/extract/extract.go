// Package extract turns resume files into plain text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is the resume file kind, derived from the file extension.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// ErrUnsupported is returned for files that are neither PDF nor CSV.
var ErrUnsupported = errors.New("unsupported file type")

// DetectFormat inspects the extension of name, ignoring case.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(name))) {
	case ".pdf":
		return FormatPDF
	case ".csv":
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// File extracts text from the file at path. Unsupported extensions are
// rejected before the file is opened.
func File(path string) (string, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	switch format {
	case FormatPDF:
		info, err := f.Stat()
		if err != nil {
			return "", err
		}
		return PDF(f, info.Size())
	default:
		return CSV(f)
	}
}

// Bytes extracts text from an in-memory upload named name.
func Bytes(name string, data []byte) (string, error) {
	switch DetectFormat(name) {
	case FormatPDF:
		return PDF(bytes.NewReader(data), int64(len(data)))
	case FormatCSV:
		return CSV(bytes.NewReader(data))
	default:
		return "", fmt.Errorf("%s: %w", name, ErrUnsupported)
	}
}
