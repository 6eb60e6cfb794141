package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

type pageSource interface {
	NumPage() int
	PageText(n int) (string, error)
}

type pdfPages struct {
	reader *pdf.Reader
}

func (p pdfPages) NumPage() int {
	return p.reader.NumPage()
}

func (p pdfPages) PageText(n int) (string, error) {
	page := p.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// PDF reads every page in order and joins their text, each page followed by
// a single newline. Pages without text are skipped.
func PDF(r io.ReaderAt, size int64) (text string, err error) {
	// the pdf package panics on some broken cross-reference tables
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("read pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	return joinPages(pdfPages{reader: reader})
}

func joinPages(src pageSource) (string, error) {
	var b strings.Builder
	for n := 1; n <= src.NumPage(); n++ {
		text, err := src.PageText(n)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", n, err)
		}
		// GetPlainText starts every text line with a newline
		text = strings.Trim(text, "\r\n")
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}
