package model

import "time"

// Report is the immutable result of one page analysis.
type Report struct {
	Title            string    `json:"report"`
	URL              string    `json:"url"`
	ScanDate         time.Time `json:"scan_date"`
	Issues           []Finding `json:"-"`
	CriticalIssues   []Finding `json:"critical_issues"`
	HighImpactIssues []Finding `json:"high_impact_issues"`
	Warnings         []Finding `json:"warnings"`
	Info             []Finding `json:"info"`
	TotalIssues      int       `json:"total_issues"`
	TotalWarnings    int       `json:"total_warnings"`
}

// ErrorResponse is the JSON shape returned when no report can be produced.
type ErrorResponse struct {
	Error string `json:"error"`
}
