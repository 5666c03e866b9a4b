package analyzer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Bahjat/seo-audit/internal/model"
	"github.com/Bahjat/seo-audit/internal/platform/errs"
	"github.com/Bahjat/seo-audit/internal/platform/requestid"
)

// Service orchestrates a ReportProvider and logs results.
type Service struct {
	provider ReportProvider
	logger   *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(provider ReportProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Analyze delegates to the provider and logs the outcome.
func (s *Service) Analyze(ctx context.Context, targetURL string) (*model.Report, error) {
	logger := s.logger.With("url", targetURL, "request_id", requestid.FromContext(ctx))

	report, err := s.provider.Analyze(ctx, targetURL)
	if err != nil {
		var appErr *errs.AppError
		if !errors.As(err, &appErr) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: "Failed to fetch URL",
				Cause:   err,
			}
		}

		attrs := []any{"error", err}
		if errors.As(err, &appErr) && appErr.UpstreamStatus != 0 {
			attrs = append(attrs, "target_status", appErr.UpstreamStatus)
		}
		if errors.As(err, &appErr) && appErr.Kind == errs.InvalidInput {
			logger.Warn("analysis rejected", attrs...)
		} else {
			logger.Error("analysis failed", attrs...)
		}
		return nil, err
	}

	logger.Info("analysis complete",
		"total_issues", report.TotalIssues,
		"critical_issues", len(report.CriticalIssues),
		"high_impact_issues", len(report.HighImpactIssues),
		"total_warnings", report.TotalWarnings,
		"info", len(report.Info),
	)
	return report, nil
}
