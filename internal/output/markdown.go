package output

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/Bahjat/seo-audit/internal/model"
)

const scanDateLayout = "2006-01-02 15:04:05 MST"

// RenderMarkdown writes the report as a Markdown document: a summary table,
// an alert sized to the worst finding, then one table per severity bucket.
func RenderMarkdown(w io.Writer, report *model.Report) error {
	md := markdown.NewMarkdown(w)

	md.H1(report.Title)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Scan Date", report.ScanDate.Format(scanDateLayout)},
			{"Total Issues", strconv.Itoa(report.TotalIssues)},
			{"Total Warnings", strconv.Itoa(report.TotalWarnings)},
		},
	})
	md.PlainText("")

	writeAlert(md, report)

	writeSection(md, "Critical Issues", report.CriticalIssues)
	writeSection(md, "High Impact Issues", report.HighImpactIssues)
	writeSection(md, "Warnings", report.Warnings)
	writeInfo(md, report.Info)

	return md.Build()
}

func writeAlert(md *markdown.Markdown, report *model.Report) {
	switch {
	case len(report.CriticalIssues) > 0:
		md.Cautionf("%d critical issue(s) need immediate attention.", len(report.CriticalIssues))
	case len(report.HighImpactIssues) > 0:
		md.Warningf("%d high impact issue(s) found.", len(report.HighImpactIssues))
	case report.TotalIssues > 0:
		md.Importantf("%d issue(s) found.", report.TotalIssues)
	case report.TotalWarnings > 0:
		md.Note("No issues found, only warnings.")
	default:
		md.Tip("No SEO issues detected.")
	}
	md.PlainText("")
}

func writeSection(md *markdown.Markdown, title string, findings []model.Finding) {
	md.H2(title)
	md.PlainText("")

	if len(findings) == 0 {
		md.PlainText("None.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(findings))
	for i, f := range findings {
		rows[i] = []string{f.Category, f.Message, f.ImpactLine(), f.Recommendation}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Issue", "Impact", "Recommendation"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeInfo(md *markdown.Markdown, findings []model.Finding) {
	md.H2("Info")
	md.PlainText("")

	if len(findings) == 0 {
		md.PlainText("None.")
		md.PlainText("")
		return
	}

	items := make([]string, len(findings))
	for i, f := range findings {
		items[i] = f.Category + ": " + f.Message
	}
	md.BulletList(items...)
	md.PlainText("")
}
