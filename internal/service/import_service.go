package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pptq-absensi/config"
	"pptq-absensi/internal/dto"
	"pptq-absensi/internal/model"
	pkgerrors "pptq-absensi/pkg/errors"
	"pptq-absensi/pkg/metrics"
	"pptq-absensi/pkg/sheet"
)

// Import kinds.
const (
	ImportSantri  = "santri"
	ImportPembina = "pembina"
)

// Required headers per kind, in template order.
var (
	SantriHeaders  = []string{"nomor_induk", "nama", "kelas", "ttl", "wali", "kontak_wali", "alamat"}
	PembinaHeaders = []string{"id_pembina", "nama", "kontak", "alamat", "pendidikan", "status", "kelas_diampu"}
)

var (
	ErrImportUnknownKind = fmt.Errorf("%w: unknown import kind", pkgerrors.ErrValidation)
	ErrImportEmpty       = fmt.Errorf("%w: file has no data rows", pkgerrors.ErrImportShape)
	ErrImportUnreadable  = fmt.Errorf("%w: file is not a readable workbook", pkgerrors.ErrImportShape)
	ErrImportTooManyRows = fmt.Errorf("%w: too many rows", pkgerrors.ErrImportShape)
	ErrImportFailed      = errors.New("import failed")
)

// ImportHeaderError lists the required headers the file lacks.
type ImportHeaderError struct {
	Missing []string
}

func (e *ImportHeaderError) Error() string {
	return "missing required headers: " + strings.Join(e.Missing, ", ")
}

func (e *ImportHeaderError) Unwrap() error { return pkgerrors.ErrImportShape }

// ImportService spreadsheet templates and bulk creation.
type ImportService interface {
	Template(kind string) (*ExportFile, error)
	// Import creates one entity per row. Rows are validated up front; creates
	// then run concurrently and finish in no particular order. A failure
	// stops the batch without undoing rows already created.
	Import(ctx context.Context, kind string, r io.Reader) (*dto.ImportResponse, error)
}

type importService struct {
	cfg         *config.ImportConfig
	students    EntityService[model.Student]
	supervisors EntityService[model.Supervisor]
	validate    *modelValidator
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewImportService creates an ImportService. m may be nil.
func NewImportService(
	cfg *config.ImportConfig,
	students EntityService[model.Student],
	supervisors EntityService[model.Supervisor],
	m *metrics.Metrics,
	logger *zap.Logger,
) ImportService {
	return &importService{
		cfg:         cfg,
		students:    students,
		supervisors: supervisors,
		validate:    newModelValidator(),
		metrics:     m,
		logger:      logger,
	}
}

// ────── Template ──────

func (s *importService) Template(kind string) (*ExportFile, error) {
	var t sheet.Table
	switch kind {
	case ImportSantri:
		t = sheet.Table{
			Sheet:   "Template Santri",
			Headers: SantriHeaders,
			Rows:    [][]string{{"S101", "Nama Santri", "1A", "Jakarta, 01 Januari 2010", "Nama Wali", "081234567890", "Alamat Lengkap"}},
		}
	case ImportPembina:
		t = sheet.Table{
			Sheet:   "Template Pembina",
			Headers: PembinaHeaders,
			Rows:    [][]string{{"P101", "Nama Pembina", "081234567890", "Alamat Lengkap", "S1 Pendidikan", "Aktif", "1A, 1B"}},
		}
	default:
		return nil, ErrImportUnknownKind
	}

	buf, err := sheet.Write(t)
	if err != nil {
		s.logger.Error("write template failed", zap.String("kind", kind), zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return &ExportFile{
		Buf:         buf,
		Filename:    "template_" + kind + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

// ────── Import ──────

func (s *importService) Import(ctx context.Context, kind string, r io.Reader) (*dto.ImportResponse, error) {
	var required []string
	switch kind {
	case ImportSantri:
		required = SantriHeaders
	case ImportPembina:
		required = PembinaHeaders
	default:
		return nil, ErrImportUnknownKind
	}

	parsed, err := sheet.ReadRows(r)
	if err != nil {
		if errors.Is(err, sheet.ErrNoRows) {
			return nil, ErrImportEmpty
		}
		return nil, fmt.Errorf("%w: %v", ErrImportUnreadable, err)
	}

	if missing := sheet.MissingHeaders(parsed.Headers, required); len(missing) > 0 {
		return nil, &ImportHeaderError{Missing: missing}
	}
	if s.cfg.MaxRows > 0 && len(parsed.Rows) > s.cfg.MaxRows {
		return nil, fmt.Errorf("%w: %d rows, limit is %d", ErrImportTooManyRows, len(parsed.Rows), s.cfg.MaxRows)
	}

	var created int64
	switch kind {
	case ImportSantri:
		items, err := convertRows(parsed.Rows, studentFromRow, s.validate)
		if err != nil {
			return nil, err
		}
		created, err = runCreates(ctx, s, kind, items, s.students.Create)
		if err != nil {
			return nil, err
		}
	case ImportPembina:
		items, err := convertRows(parsed.Rows, supervisorFromRow, s.validate)
		if err != nil {
			return nil, err
		}
		created, err = runCreates(ctx, s, kind, items, s.supervisors.Create)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("import finished", zap.String("kind", kind), zap.Int64("created", created))
	return &dto.ImportResponse{Kind: kind, Total: len(parsed.Rows), Created: int(created)}, nil
}

// convertRows maps and validates every row before anything is written.
func convertRows[T any](rows []map[string]string, convert func(map[string]string) *T, v *modelValidator) ([]*T, error) {
	items := make([]*T, 0, len(rows))
	for i, row := range rows {
		item := convert(row)
		if err := v.check(item); err != nil {
			// +2: one for the header row, one for 1-based numbering
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func runCreates[T any](ctx context.Context, s *importService, kind string, items []*T, create func(context.Context, *T) (*T, error)) (int64, error) {
	limit := s.cfg.Concurrency
	if limit <= 0 {
		limit = 1
	}

	var created atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		row := i + 2
		item := item
		g.Go(func() error {
			if _, err := create(gctx, item); err != nil {
				s.countRow(kind, "error")
				return fmt.Errorf("row %d: %w", row, err)
			}
			created.Add(1)
			s.countRow(kind, "created")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		n := created.Load()
		s.logger.Warn("import stopped",
			zap.String("kind", kind),
			zap.Int64("created", n),
			zap.Int("total", len(items)),
			zap.Error(err),
		)
		return n, fmt.Errorf("%w: %d of %d rows created: %w", ErrImportFailed, n, len(items), err)
	}
	return created.Load(), nil
}

func (s *importService) countRow(kind, result string) {
	if s.metrics != nil {
		s.metrics.ImportRowsTotal.WithLabelValues(kind, result).Inc()
	}
}

// ── row mapping ──

func studentFromRow(row map[string]string) *model.Student {
	return &model.Student{
		NomorInduk: row["nomor_induk"],
		Nama:       row["nama"],
		Kelas:      row["kelas"],
		TTL:        row["ttl"],
		Wali:       row["wali"],
		KontakWali: row["kontak_wali"],
		Alamat:     row["alamat"],
	}
}

func supervisorFromRow(row map[string]string) *model.Supervisor {
	status := row["status"]
	if status == "" {
		status = "Aktif"
	}
	return &model.Supervisor{
		IDPembina:   row["id_pembina"],
		Nama:        row["nama"],
		Kontak:      row["kontak"],
		Alamat:      row["alamat"],
		Pendidikan:  row["pendidikan"],
		Status:      status,
		KelasDiampu: model.SplitList(row["kelas_diampu"]),
	}
}
