package audit

import "github.com/Bahjat/seo-audit/internal/model"

// Session accumulates the findings of a single analysis. It is not safe for
// concurrent use; each analysis creates its own.
type Session struct {
	targetURL string
	issues    []model.Finding
	warnings  []model.Finding
	info      []model.Finding
}

// NewSession returns an empty session for targetURL.
func NewSession(targetURL string) *Session {
	return &Session{targetURL: targetURL}
}

// TargetURL returns the URL under analysis.
func (s *Session) TargetURL() string {
	return s.targetURL
}

// Add files each finding into the bucket named by its Kind, preserving
// insertion order.
func (s *Session) Add(findings ...model.Finding) {
	for _, f := range findings {
		switch f.Kind {
		case model.KindIssue:
			s.issues = append(s.issues, f)
		case model.KindWarning:
			s.warnings = append(s.warnings, f)
		case model.KindInfo:
			f.Severity = model.SeverityNone
			f.Impact = ""
			f.Recommendation = ""
			s.info = append(s.info, f)
		}
	}
}

// Issues returns the issues recorded so far.
func (s *Session) Issues() []model.Finding { return s.issues }

// Warnings returns the warnings recorded so far.
func (s *Session) Warnings() []model.Finding { return s.warnings }

// Info returns the info notes recorded so far.
func (s *Session) Info() []model.Finding { return s.info }
