package analyzer

import (
	"context"

	"github.com/Bahjat/seo-audit/internal/model"
)

// ReportProvider defines the contract for any audit engine.
type ReportProvider interface {
	Analyze(ctx context.Context, targetURL string) (*model.Report, error)
}
