package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const missingCell = "NaN"

// ErrNoColumns is returned when a CSV input has no header row.
var ErrNoColumns = errors.New("no columns to parse from file")

// CSV parses r and renders it as a right-aligned plain-text table with the
// header on the first line and no row index. Cells are kept as written,
// including leading spaces.
func CSV(r io.Reader) (string, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return "", fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return "", ErrNoColumns
	}

	return renderTable(records[0], records[1:]), nil
}

func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}

	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(header))
		for i := range header {
			value := missingCell
			if i < len(row) && row[i] != "" {
				value = row[i]
			}
			cells[r][i] = value
			if w := utf8.RuneCountInString(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, renderLine(header, widths))
	for _, row := range cells {
		lines = append(lines, renderLine(row, widths))
	}

	return strings.Join(lines, "\n")
}

func renderLine(values []string, widths []int) string {
	padded := make([]string, len(values))
	for i, v := range values {
		padded[i] = strings.Repeat(" ", widths[i]-utf8.RuneCountInString(v)) + v
	}
	return strings.Join(padded, " ")
}
