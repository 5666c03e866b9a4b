// Package audit evaluates a fixed battery of on-page SEO rules against a
// parsed HTML document and assembles the findings into a report.
//
// Inspectors are pure functions of (document, target URL). Run executes
// them sequentially in registry order, files their findings into a fresh
// Session and hands the session to Build. A panicking inspector is recorded
// as an info note; it never aborts the analysis.
package audit

import (
	"fmt"
	"time"

	"github.com/Bahjat/seo-audit/internal/htmldoc"
	"github.com/Bahjat/seo-audit/internal/model"
)

// Categories reported by the inspectors.
const (
	CategoryTitle       = "Title Tag"
	CategoryMetaDesc    = "Meta Description"
	CategoryHeadings    = "Heading Structure"
	CategoryImages      = "Image Optimization"
	CategoryCanonical   = "Canonical Tag"
	CategoryRobots      = "Robots Meta"
	CategorySchema      = "Structured Data"
	CategoryPerformance = "Performance"
	CategoryMobile      = "Mobile Optimization"
	CategorySecurity    = "Security"
)

// InspectFunc inspects one facet of a page.
type InspectFunc func(doc *htmldoc.Document, targetURL string) []model.Finding

// Inspector is a named, single-facet rule.
type Inspector struct {
	Name     string
	Category string
	Inspect  InspectFunc
}

var defaultInspectors = []Inspector{
	{Name: "title", Category: CategoryTitle, Inspect: checkTitle},
	{Name: "meta description", Category: CategoryMetaDesc, Inspect: checkMetaDescription},
	{Name: "headings", Category: CategoryHeadings, Inspect: checkHeadings},
	{Name: "images", Category: CategoryImages, Inspect: checkImages},
	{Name: "canonical", Category: CategoryCanonical, Inspect: checkCanonical},
	{Name: "robots", Category: CategoryRobots, Inspect: checkRobots},
	{Name: "structured data", Category: CategorySchema, Inspect: checkStructuredData},
	{Name: "performance", Category: CategoryPerformance, Inspect: checkPerformance},
	{Name: "mobile", Category: CategoryMobile, Inspect: checkMobile},
	{Name: "security", Category: CategorySecurity, Inspect: checkSecurity},
}

// Inspectors returns the default inspectors in execution order.
func Inspectors() []Inspector {
	out := make([]Inspector, len(defaultInspectors))
	copy(out, defaultInspectors)
	return out
}

// Run analyzes doc with the default inspectors and builds the report,
// stamped with scannedAt.
func Run(doc *htmldoc.Document, targetURL string, scannedAt time.Time) model.Report {
	return RunWith(defaultInspectors, doc, targetURL, scannedAt)
}

// RunWith is Run with an explicit inspector list.
func RunWith(inspectors []Inspector, doc *htmldoc.Document, targetURL string, scannedAt time.Time) model.Report {
	s := NewSession(targetURL)
	for _, in := range inspectors {
		s.Add(inspect(in, doc, targetURL)...)
	}
	return Build(s, scannedAt)
}

// inspect invokes one inspector, converting a panic into an info note.
func inspect(in Inspector, doc *htmldoc.Document, targetURL string) (findings []model.Finding) {
	defer func() {
		if r := recover(); r != nil {
			findings = []model.Finding{
				model.NewInfo(in.Category, fmt.Sprintf("%s check failed: %v", in.Name, r)),
			}
		}
	}()
	return in.Inspect(doc, targetURL)
}
