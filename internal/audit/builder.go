package audit

import (
	"time"

	"github.com/Bahjat/seo-audit/internal/model"
)

const reportTitlePrefix = "SEO Technical Analysis Report for "

// Build turns a completed session into a Report. The critical and
// high-impact views are severity filters over the issues, not moves: the
// raw issue list is kept on the report in its original order.
//
// A nil session is a programming error and panics.
func Build(s *Session, scannedAt time.Time) model.Report {
	if s == nil {
		panic("audit: Build called with nil session")
	}

	return model.Report{
		Title:            reportTitlePrefix + s.targetURL,
		URL:              s.targetURL,
		ScanDate:         scannedAt,
		Issues:           cloneFindings(s.issues),
		CriticalIssues:   filterBySeverity(s.issues, model.SeverityCritical),
		HighImpactIssues: filterBySeverity(s.issues, model.SeverityHigh),
		Warnings:         cloneFindings(s.warnings),
		Info:             cloneFindings(s.info),
		TotalIssues:      len(s.issues),
		TotalWarnings:    len(s.warnings),
	}
}

func filterBySeverity(findings []model.Finding, sev model.Severity) []model.Finding {
	out := make([]model.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// cloneFindings copies findings into a non-nil slice so the report never
// aliases session storage and encodes as [] rather than null.
func cloneFindings(findings []model.Finding) []model.Finding {
	out := make([]model.Finding, len(findings))
	copy(out, findings)
	return out
}
