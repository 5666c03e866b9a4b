package model

import "encoding/json"

// Severity ranks how much a finding matters. Info notes carry SeverityNone.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the label used in impact sentences, e.g. "High".
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	default:
		return ""
	}
}

// Kind is the report bucket a finding is filed into.
type Kind int

const (
	KindIssue Kind = iota
	KindWarning
	KindInfo
)

func (k Kind) String() string {
	switch k {
	case KindIssue:
		return "issue"
	case KindWarning:
		return "warning"
	case KindInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Finding is one fact an inspector surfaced about the analyzed page.
type Finding struct {
	Category       string
	Message        string
	Kind           Kind
	Severity       Severity
	Impact         string
	Recommendation string
}

// NewIssue returns an actionable finding with the given severity.
func NewIssue(category string, sev Severity, message, impact, recommendation string) Finding {
	return Finding{
		Category:       category,
		Message:        message,
		Kind:           KindIssue,
		Severity:       sev,
		Impact:         impact,
		Recommendation: recommendation,
	}
}

// NewWarning returns a lower-priority finding with the given severity.
func NewWarning(category string, sev Severity, message, impact, recommendation string) Finding {
	return Finding{
		Category:       category,
		Message:        message,
		Kind:           KindWarning,
		Severity:       sev,
		Impact:         impact,
		Recommendation: recommendation,
	}
}

// NewInfo returns an observational note. Info notes never carry a severity
// or a recommendation.
func NewInfo(category, message string) Finding {
	return Finding{Category: category, Message: message, Kind: KindInfo}
}

// ImpactLine renders the severity label in front of the impact sentence,
// e.g. "High - Page may not be mobile-friendly".
func (f Finding) ImpactLine() string {
	if f.Severity == SeverityNone {
		return f.Impact
	}
	if f.Impact == "" {
		return f.Severity.String()
	}
	return f.Severity.String() + " - " + f.Impact
}

type issueJSON struct {
	Category       string `json:"category"`
	Issue          string `json:"issue"`
	Impact         string `json:"impact"`
	Recommendation string `json:"recommendation"`
}

type infoJSON struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// MarshalJSON writes issues and warnings as {category, issue, impact,
// recommendation} and info notes as {category, message}.
func (f Finding) MarshalJSON() ([]byte, error) {
	if f.Kind == KindInfo {
		return json.Marshal(infoJSON{Category: f.Category, Message: f.Message})
	}
	return json.Marshal(issueJSON{
		Category:       f.Category,
		Issue:          f.Message,
		Impact:         f.ImpactLine(),
		Recommendation: f.Recommendation,
	})
}
