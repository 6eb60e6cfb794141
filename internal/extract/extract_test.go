package extract

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want Format
	}{
		{name: "resume.pdf", want: FormatPDF},
		{name: "RESUME.PDF", want: FormatPDF},
		{name: "/tmp/x/candidates.Csv", want: FormatCSV},
		{name: "resume.docx", want: FormatUnknown},
		{name: "pdf", want: FormatUnknown},
		{name: "", want: FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectFormat(tt.name); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestFileRejectsUnsupportedWithoutOpening(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.docx"))
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestFileReadsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.CSV")
	if err := os.WriteFile(path, []byte("name,score\nAlice,90\n"), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	got, err := File(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := " name score\nAlice    90"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFileReadsPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.pdf")
	if err := os.WriteFile(path, buildPDF("Go developer"), 0o600); err != nil {
		t.Fatalf("write pdf: %v", err)
	}

	got, err := File(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Go developer\n" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestBytesDispatch(t *testing.T) {
	got, err := Bytes("table.csv", []byte("a\n1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a\n1" {
		t.Fatalf("unexpected csv text: %q", got)
	}

	if _, err := Bytes("notes.txt", []byte("hello")); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}

	if _, err := Bytes("broken.pdf", []byte("not a pdf at all")); err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}
