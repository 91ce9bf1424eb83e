// Package sheet converts between xlsx workbooks and header-keyed rows.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoRows the first sheet has a header row but no data.
var ErrNoRows = errors.New("sheet has no data rows")

// Table one sheet of tabular data.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}

// Parsed first sheet of an uploaded workbook.
type Parsed struct {
	Headers []string
	Rows    []map[string]string
}

// ReadRows parses the first sheet of r. The first row is the header row;
// every later non-blank row becomes a map keyed by trimmed header.
func ReadRows(r io.Reader) (*Parsed, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	out := &Parsed{Headers: headers}
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		m := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				m[h] = strings.TrimSpace(row[i])
			} else {
				m[h] = ""
			}
		}
		out.Rows = append(out.Rows, m)
	}
	if len(out.Rows) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// MissingHeaders returns the required names absent from headers, in required order.
func MissingHeaders(headers, required []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var missing []string
	for _, r := range required {
		if _, ok := present[r]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

// Write renders tables as one workbook, one sheet per table, in order.
func Write(tables ...Table) (*bytes.Buffer, error) {
	if len(tables) == 0 {
		return nil, errors.New("no tables to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	for i, t := range tables {
		idx, err := f.NewSheet(t.Sheet)
		if err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", t.Sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(idx)
		}

		for col, h := range t.Headers {
			f.SetCellValue(t.Sheet, cell(col, 1), h)
			name := colName(col)
			f.SetColWidth(t.Sheet, name, name, width(h, t.Rows, col))
		}
		if len(t.Headers) > 0 {
			f.SetCellStyle(t.Sheet, cell(0, 1), cell(len(t.Headers)-1, 1), headerStyle)
		}

		for r, row := range t.Rows {
			for col, v := range row {
				f.SetCellValue(t.Sheet, cell(col, r+2), v)
			}
		}
	}

	if tables[0].Sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

// width fits the widest of the header and the first rows, clamped.
func width(header string, rows [][]string, col int) float64 {
	w := len(header)
	for i, row := range rows {
		if i == 50 {
			break
		}
		if col < len(row) && len(row[col]) > w {
			w = len(row[col])
		}
	}
	switch {
	case w < 8:
		w = 8
	case w > 50:
		w = 50
	}
	return float64(w + 2)
}
