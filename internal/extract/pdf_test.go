package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakePages struct {
	pages []string
	errAt int
}

func (f fakePages) NumPage() int { return len(f.pages) }

func (f fakePages) PageText(n int) (string, error) {
	if n == f.errAt {
		return "", errors.New("broken content stream")
	}
	return f.pages[n-1], nil
}

func TestJoinPagesSkipsEmptyPages(t *testing.T) {
	got, err := joinPages(fakePages{pages: []string{"first", "", "third"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "first\nthird\n" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestJoinPagesTrimsLineBreaks(t *testing.T) {
	got, err := joinPages(fakePages{pages: []string{"\nfirst\nline two", "\n\n", "\nthird\r\n"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "first\nline two\nthird\n" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestJoinPagesNoText(t *testing.T) {
	got, err := joinPages(fakePages{pages: []string{"", ""}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestJoinPagesPropagatesErrors(t *testing.T) {
	_, err := joinPages(fakePages{pages: []string{"a", "b"}, errAt: 2})
	if err == nil || !strings.Contains(err.Error(), "page 2") {
		t.Fatalf("expected page 2 error, got %v", err)
	}
}

func TestPDFThreePagesSecondBlank(t *testing.T) {
	data := buildPDF("Page one", "", "Page three")

	got, err := PDF(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "Page one\nPage three\n" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestPDFRejectsGarbage(t *testing.T) {
	data := []byte("%PDF-1.4\nthis is not really a pdf")
	if _, err := PDF(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Fatal("expected error")
	}
}

// buildPDF writes a minimal PDF with one page per entry. Empty entries produce
// a page whose content stream draws nothing.
func buildPDF(pages ...string) []byte {
	var objects []string
	fontID := 3 + 2*len(pages)

	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+2*i))
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
	)

	for i, text := range pages {
		content := "q Q"
		if text != "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontID, 4+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}
