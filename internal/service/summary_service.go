package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pptq-absensi/config"
	"pptq-absensi/pkg/ai"
	pkgerrors "pptq-absensi/pkg/errors"
	"pptq-absensi/pkg/metrics"
)

var (
	ErrSummaryInvalidInput = fmt.Errorf("%w: data and reportType are required", pkgerrors.ErrValidation)
	ErrSummaryUnavailable  = errors.New("ai summary is not configured")
	ErrSummaryFailed       = errors.New("ai summary generation failed")
)

// SummaryService relays report records to the text generator.
type SummaryService interface {
	Summarize(ctx context.Context, reportType string, data []json.RawMessage) (string, error)
}

type summaryService struct {
	cfg     *config.AIConfig
	gen     ai.Generator
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSummaryService creates a SummaryService. m may be nil.
func NewSummaryService(cfg *config.AIConfig, gen ai.Generator, m *metrics.Metrics, logger *zap.Logger) SummaryService {
	return &summaryService{cfg: cfg, gen: gen, metrics: m, logger: logger}
}

func (s *summaryService) Summarize(ctx context.Context, reportType string, data []json.RawMessage) (string, error) {
	reportType = strings.TrimSpace(reportType)
	if reportType == "" || len(data) == 0 {
		s.count("invalid")
		return "", ErrSummaryInvalidInput
	}

	prompt, err := ai.SummaryPrompt(s.cfg.InstitutionName, reportType, data, s.cfg.MaxRecords)
	if err != nil {
		s.count("invalid")
		return "", fmt.Errorf("%w: %v", ErrSummaryInvalidInput, err)
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	started := time.Now()
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			s.count("unavailable")
			return "", ErrSummaryUnavailable
		}
		s.count("error")
		s.logger.Error("ai summary failed",
			zap.String("report_type", reportType),
			zap.Int("records", len(data)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrSummaryFailed, err)
	}

	s.count("ok")
	s.logger.Info("ai summary generated",
		zap.String("report_type", reportType),
		zap.Int("records", len(data)),
		zap.Duration("latency", time.Since(started)),
	)
	return text, nil
}

func (s *summaryService) count(result string) {
	if s.metrics != nil {
		s.metrics.SummariesTotal.WithLabelValues(result).Inc()
	}
}
