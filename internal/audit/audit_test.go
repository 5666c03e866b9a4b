package audit

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Bahjat/seo-audit/internal/htmldoc"
	"github.com/Bahjat/seo-audit/internal/model"
)

var fixedTime = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

const wellFormedPage = `<!DOCTYPE html><html><head>
<link rel="canonical" href="https://example.com/page">
<meta name="viewport" content="width=device-width, initial-scale=1">
<script type="application/ld+json">{"@context":"https://schema.org","@type":"Organization"}</script>
</head><body>
<h1>Main</h1>
<h2>Section</h2>
<h3>Detail</h3>
<img src="a.png" alt="A">
</body></html>`

func TestRun_EndToEnd(t *testing.T) {
	report := Run(mustParse(t, wellFormedPage), "https://example.com/page", fixedTime)

	if report.TotalIssues != 2 {
		t.Fatalf("total issues = %d, want 2: %+v", report.TotalIssues, report.Issues)
	}
	if report.Issues[0].Category != CategoryTitle || report.Issues[0].Severity != model.SeverityCritical {
		t.Errorf("issue 0 = %+v, want critical missing title", report.Issues[0])
	}
	if report.Issues[1].Category != CategoryMetaDesc || report.Issues[1].Severity != model.SeverityHigh {
		t.Errorf("issue 1 = %+v, want high missing description", report.Issues[1])
	}

	if report.TotalWarnings != 1 {
		t.Fatalf("total warnings = %d, want 1: %+v", report.TotalWarnings, report.Warnings)
	}
	if w := report.Warnings[0]; w.Category != CategoryRobots || w.Severity != model.SeverityLow {
		t.Errorf("warning = %+v, want low robots warning", w)
	}

	if len(report.Info) != 1 || report.Info[0].Message != "Found 1 schema.org scripts" {
		t.Errorf("info = %+v, want one ld+json note", report.Info)
	}

	if len(report.CriticalIssues) != 1 || len(report.HighImpactIssues) != 1 {
		t.Errorf("critical = %d, high = %d; want 1 and 1", len(report.CriticalIssues), len(report.HighImpactIssues))
	}
	if report.URL != "https://example.com/page" {
		t.Errorf("URL = %q", report.URL)
	}
	if !strings.Contains(report.Title, "https://example.com/page") {
		t.Errorf("Title = %q, want URL mentioned", report.Title)
	}
	if !report.ScanDate.Equal(fixedTime) {
		t.Errorf("ScanDate = %v, want %v", report.ScanDate, fixedTime)
	}
}

func TestRun_Idempotent(t *testing.T) {
	doc := mustParse(t, `<html><head><title>x</title><meta name="robots" content="noindex,nofollow"></head>
<body><h2>a</h2><h4>b</h4><img src="x.png" width="2000" height="10"></body></html>`)

	first := Run(doc, "http://example.com", fixedTime)
	second := Run(doc, "http://example.com", fixedTime.Add(time.Hour))

	second.ScanDate = first.ScanDate
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reports differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRun_OrderFollowsInspectors(t *testing.T) {
	report := Run(mustParse(t, "<html></html>"), "http://example.com", fixedTime)

	var categories []string
	for _, f := range report.Issues {
		categories = append(categories, f.Category)
	}
	want := []string{
		CategoryTitle,
		CategoryMetaDesc,
		CategoryHeadings,
		CategoryCanonical,
		CategoryMobile,
		CategorySecurity,
	}
	if !reflect.DeepEqual(categories, want) {
		t.Errorf("issue order = %v, want %v", categories, want)
	}
}

func TestRunWith_PanickingInspectorIsIsolated(t *testing.T) {
	boom := Inspector{
		Name:     "boom",
		Category: "Boom",
		Inspect: func(*htmldoc.Document, string) []model.Finding {
			panic("malformed attribute")
		},
	}
	inspectors := append([]Inspector{boom}, Inspectors()...)

	report := RunWith(inspectors, mustParse(t, wellFormedPage), "https://example.com/page", fixedTime)

	if report.TotalIssues != 2 {
		t.Errorf("total issues = %d, want 2", report.TotalIssues)
	}
	if len(report.Info) != 2 {
		t.Fatalf("info = %+v, want fault note plus schema note", report.Info)
	}
	note := report.Info[0]
	if note.Category != "Boom" || !strings.Contains(note.Message, "boom check failed: malformed attribute") {
		t.Errorf("fault note = %+v", note)
	}
	if note.Severity != model.SeverityNone || note.Recommendation != "" {
		t.Errorf("fault note carries severity or recommendation: %+v", note)
	}
}

func TestRun_NilDocumentDoesNotCrash(t *testing.T) {
	report := Run(nil, "http://example.com", fixedTime)

	// Only the security check does not touch the document.
	if report.TotalIssues != 1 || report.Issues[0].Category != CategorySecurity {
		t.Errorf("issues = %+v, want only the security issue", report.Issues)
	}
	if len(report.Info) != len(Inspectors())-1 {
		t.Errorf("info notes = %d, want %d", len(report.Info), len(Inspectors())-1)
	}
}

func TestInspectors_ReturnsCopy(t *testing.T) {
	ins := Inspectors()
	ins[0].Name = "changed"
	if Inspectors()[0].Name != "title" {
		t.Error("Inspectors() exposed the registry")
	}
}
