// Package pdf renders report tables as printable documents.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Document a titled table.
type Document struct {
	Title    string
	Subtitle string
	Headers  []string
	Rows     [][]string
	// GeneratedAt printed in the footer; zero means now.
	GeneratedAt time.Time
}

const (
	marginMM   = 10.0
	rowHeight  = 7.0
	maxCellLen = 60
)

// Render lays d out on A4, landscape when there are more than five columns.
func Render(d Document) (*bytes.Buffer, error) {
	if len(d.Headers) == 0 {
		return nil, errors.New("pdf: document has no columns")
	}

	orientation := "P"
	pageWidth := 210.0
	if len(d.Headers) > 5 {
		orientation = "L"
		pageWidth = 297.0
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	generated := d.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Dibuat pada: %s  |  Halaman %d", generated.Format("02 January 2006 15:04"), pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	colWidth := (pageWidth - 2*marginMM) / float64(len(d.Headers))

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(217, 225, 242)
		for _, h := range d.Headers {
			pdf.CellFormat(colWidth, rowHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr(d.Title), "", 1, "L", false, 0, "")
	if d.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr(d.Subtitle), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
	header()

	_, pageHeight := pdf.GetPageSize()
	for _, row := range d.Rows {
		if pdf.GetY()+rowHeight > pageHeight-marginMM-12 {
			pdf.AddPage()
			header()
		}
		for i := range d.Headers {
			v := ""
			if i < len(row) {
				v = truncate(row[i])
			}
			pdf.CellFormat(colWidth, rowHeight, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellLen {
		return s
	}
	return string(r[:maxCellLen-3]) + "..."
}
