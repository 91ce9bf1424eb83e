package service

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	pkgerrors "pptq-absensi/pkg/errors"
	"pptq-absensi/pkg/pdf"
	"pptq-absensi/pkg/sheet"
)

// Export formats.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

var (
	ErrNothingToExport    = fmt.Errorf("%w: no records to export", pkgerrors.ErrValidation)
	ErrUnknownFormat      = fmt.Errorf("%w: unknown export format", pkgerrors.ErrValidation)
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

// ExportFile a generated download.
type ExportFile struct {
	Buf         *bytes.Buffer
	Filename    string
	ContentType string
}

// ReportTable tabular content of one filtered report.
type ReportTable struct {
	Category string
	Subtitle string
	Headers  []string
	Rows     [][]string
}

// ExportService renders report tables to files.
type ExportService interface {
	Report(t *ReportTable, format string) (*ExportFile, error)
}

type exportService struct {
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(now func() time.Time, logger *zap.Logger) ExportService {
	return &exportService{now: now, logger: logger}
}

// sheetTitle "absensi" → "Absensi".
func sheetTitle(category string) string {
	if category == "" {
		return "Laporan"
	}
	return strings.ToUpper(category[:1]) + category[1:]
}

func (s *exportService) Report(t *ReportTable, format string) (*ExportFile, error) {
	if format == "" {
		format = FormatXLSX
	}
	base := "laporan_" + t.Category

	switch format {
	case FormatXLSX:
		buf, err := sheet.Write(sheet.Table{
			Sheet:   sheetTitle(t.Category),
			Headers: t.Headers,
			Rows:    t.Rows,
		})
		if err != nil {
			s.logger.Error("write xlsx failed", zap.String("category", t.Category), zap.Error(err))
			return nil, ErrExportGenerateFail
		}
		return &ExportFile{
			Buf:         buf,
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		}, nil

	case FormatPDF:
		buf, err := pdf.Render(pdf.Document{
			Title:       "Laporan " + sheetTitle(t.Category),
			Subtitle:    t.Subtitle,
			Headers:     t.Headers,
			Rows:        t.Rows,
			GeneratedAt: s.now(),
		})
		if err != nil {
			s.logger.Error("write pdf failed", zap.String("category", t.Category), zap.Error(err))
			return nil, ErrExportGenerateFail
		}
		return &ExportFile{
			Buf:         buf,
			Filename:    base + ".pdf",
			ContentType: "application/pdf",
		}, nil
	}
	return nil, ErrUnknownFormat
}
