package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/model"
	"pptq-absensi/internal/report"
	"pptq-absensi/internal/repository"
	pkgerrors "pptq-absensi/pkg/errors"
)

// Report categories.
const (
	CategoryAttendance = "absensi"
	CategoryIncident   = "pelanggaran"
	CategoryHealth     = "kesehatan"
)

var ErrUnknownCategory = fmt.Errorf("%w: unknown report category", pkgerrors.ErrValidation)

// ReportService filtered report views, their export and their AI summary.
type ReportService interface {
	List(ctx context.Context, category string, q *dto.ReportQuery) (*dto.ReportResponse, error)
	Export(ctx context.Context, category string, q *dto.ReportQuery, format string) (*ExportFile, error)
	Summarize(ctx context.Context, category string, q *dto.ReportQuery) (*dto.ReportSummaryResponse, error)
}

type reportService struct {
	repo    *repository.Repository
	export  ExportService
	summary SummaryService
	logger  *zap.Logger
}

// NewReportService creates a ReportService.
func NewReportService(repo *repository.Repository, export ExportService, summary SummaryService, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, export: export, summary: summary, logger: logger}
}

// reportSet one filtered category, in both list and tabular form.
type reportSet struct {
	category string
	query    report.Query
	list     interface{}
	items    []interface{}
	headers  []string
	rows     [][]string
}

func (rs *reportSet) count() int { return len(rs.items) }

// ToQuery converts the query string into a validated filter.
func ToQuery(q *dto.ReportQuery) (report.Query, error) {
	period, err := report.ParsePeriod(q.Period)
	if err != nil {
		return report.Query{}, err
	}
	query := report.Query{
		Period: period,
		Date:   strings.TrimSpace(q.Date),
		Month:  strings.TrimSpace(q.Month),
		Class:  strings.TrimSpace(q.Kelas),
		Status: strings.TrimSpace(q.Status),
		Search: strings.TrimSpace(q.Q),
	}
	if err := query.Validate(); err != nil {
		return report.Query{}, err
	}
	return query, nil
}

// ────── List ──────

func (s *reportService) List(ctx context.Context, category string, q *dto.ReportQuery) (*dto.ReportResponse, error) {
	rs, err := s.collect(ctx, category, q)
	if err != nil {
		return nil, err
	}
	return &dto.ReportResponse{
		Category:  rs.category,
		Period:    string(rs.query.Period),
		Date:      rs.query.Date,
		Month:     rs.query.Month,
		WeekLabel: rs.query.WeekLabel(),
		Total:     rs.count(),
		List:      rs.list,
	}, nil
}

// ────── Export ──────

func (s *reportService) Export(ctx context.Context, category string, q *dto.ReportQuery, format string) (*ExportFile, error) {
	rs, err := s.collect(ctx, category, q)
	if err != nil {
		return nil, err
	}
	if rs.count() == 0 {
		return nil, ErrNothingToExport
	}
	return s.export.Report(&ReportTable{
		Category: rs.category,
		Subtitle: periodLabel(rs.query),
		Headers:  rs.headers,
		Rows:     rs.rows,
	}, format)
}

// periodLabel human-readable description of the selected period.
func periodLabel(q report.Query) string {
	switch {
	case q.Period == report.PeriodWeekly && q.Date != "":
		return "Periode mingguan: " + q.WeekLabel()
	case q.Period == report.PeriodMonthly && q.Month != "":
		return "Periode bulanan: " + q.Month
	case q.Period == report.PeriodDaily && q.Date != "":
		return "Tanggal: " + q.Date
	}
	return "Semua data"
}

// ────── Summarize ──────

func (s *reportService) Summarize(ctx context.Context, category string, q *dto.ReportQuery) (*dto.ReportSummaryResponse, error) {
	rs, err := s.collect(ctx, category, q)
	if err != nil {
		return nil, err
	}

	data := make([]json.RawMessage, 0, rs.count())
	for _, it := range rs.items {
		b, err := json.Marshal(it)
		if err != nil {
			return nil, err
		}
		data = append(data, b)
	}

	text, err := s.summary.Summarize(ctx, rs.category, data)
	if err != nil {
		return nil, err
	}
	return &dto.ReportSummaryResponse{Category: rs.category, Records: rs.count(), Summary: text}, nil
}

// collect loads and filters one category.
func (s *reportService) collect(ctx context.Context, category string, q *dto.ReportQuery) (*reportSet, error) {
	query, err := ToQuery(q)
	if err != nil {
		return nil, err
	}

	switch category {
	case CategoryAttendance:
		recs, err := s.repo.Attendance.List(ctx)
		if err != nil {
			s.logger.Error("load attendance history failed", zap.Error(err))
			return nil, err
		}
		return buildSet(category, query, recs, attendanceColumns, attendanceRow), nil

	case CategoryIncident:
		recs, err := s.repo.Incident.List(ctx)
		if err != nil {
			s.logger.Error("load incidents failed", zap.Error(err))
			return nil, err
		}
		classes, err := s.classLookup(ctx)
		if err != nil {
			return nil, err
		}
		for i := range recs {
			recs[i].Kelas = classes[recs[i].SantriID]
		}
		return buildSet(category, query, recs, incidentColumns, incidentRow), nil

	case CategoryHealth:
		recs, err := s.repo.Health.List(ctx)
		if err != nil {
			s.logger.Error("load health records failed", zap.Error(err))
			return nil, err
		}
		classes, err := s.classLookup(ctx)
		if err != nil {
			return nil, err
		}
		for i := range recs {
			recs[i].Kelas = classes[recs[i].SantriID]
		}
		return buildSet(category, query, recs, healthColumns, healthRow), nil
	}
	return nil, ErrUnknownCategory
}

func (s *reportService) classLookup(ctx context.Context) (map[uint]string, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("load roster failed", zap.Error(err))
		return nil, err
	}
	return report.ClassLookup(students), nil
}

func buildSet[T report.Record](category string, q report.Query, all []T, headers []string, row func(T) []string) *reportSet {
	matched := report.Apply(all, q)
	rs := &reportSet{
		category: category,
		query:    q,
		list:     nonNil(matched),
		items:    make([]interface{}, 0, len(matched)),
		headers:  headers,
		rows:     make([][]string, 0, len(matched)),
	}
	for _, m := range matched {
		rs.items = append(rs.items, m)
		rs.rows = append(rs.rows, row(m))
	}
	return rs
}

// ── tabular columns ──

var (
	attendanceColumns = []string{"Tanggal", "Waktu", "Nama Santri", "Kelas", "Kegiatan", "Status", "Keterangan"}
	incidentColumns   = []string{"Tanggal", "Nama Santri", "Kelas", "Jenis Pelanggaran", "Deskripsi", "Pembina"}
	healthColumns     = []string{"Tanggal", "Nama Santri", "Kelas", "Status", "Catatan", "Pembina"}
)

func attendanceRow(r model.AttendanceRecord) []string {
	note := ""
	if r.Keterangan != nil {
		note = *r.Keterangan
	}
	return []string{r.Tanggal, r.Waktu, r.SantriNama, r.Kelas, r.Kegiatan, r.Status, note}
}

func incidentRow(r model.Incident) []string {
	return []string{r.Tanggal, r.SantriNama, r.Kelas, r.Jenis, r.Deskripsi, r.Pembina}
}

func healthRow(r model.HealthRecord) []string {
	return []string{r.Tanggal, r.SantriNama, r.Kelas, r.Status, r.Catatan, r.Pembina}
}
