package audit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Bahjat/seo-audit/internal/htmldoc"
	"github.com/Bahjat/seo-audit/internal/model"
)

const (
	MinTitleLength = 30
	MaxTitleLength = 60

	MinDescriptionLength = 70
	MaxDescriptionLength = 155

	MaxImageDimension = 1000

	MaxPageSizeBytes = 100000

	ldJSONType = "application/ld+json"
)

func checkTitle(doc *htmldoc.Document, _ string) []model.Finding {
	var title string
	if el, ok := doc.Find("title", nil); ok {
		title = el.Text()
	}

	if title == "" {
		return []model.Finding{model.NewIssue(CategoryTitle, model.SeverityCritical,
			"Missing title tag",
			"Title tags are crucial for SEO and user experience",
			"Add a descriptive title tag between 30-60 characters",
		)}
	}

	length := utf8.RuneCountInString(title)
	switch {
	case length < MinTitleLength:
		return []model.Finding{model.NewIssue(CategoryTitle, model.SeverityHigh,
			fmt.Sprintf("Title too short (%d characters): %s", length, title),
			"Short titles may not be descriptive enough for search engines and users",
			"Expand title to be between 30-60 characters",
		)}
	case length > MaxTitleLength:
		return []model.Finding{model.NewIssue(CategoryTitle, model.SeverityMedium,
			fmt.Sprintf("Title too long (%d characters): %s", length, title),
			"Long titles will be truncated in search results",
			"Reduce title length to be between 30-60 characters",
		)}
	}
	return nil
}

func checkMetaDescription(doc *htmldoc.Document, _ string) []model.Finding {
	meta, ok := doc.FindMeta("description")
	if !ok {
		return []model.Finding{model.NewIssue(CategoryMetaDesc, model.SeverityHigh,
			"Missing meta description",
			"Meta descriptions are important for CTR in search results",
			"Add a compelling meta description between 70-155 characters",
		)}
	}

	content, _ := meta.Attr("content")
	if content == "" {
		return nil
	}

	length := utf8.RuneCountInString(content)
	switch {
	case length < MinDescriptionLength:
		return []model.Finding{model.NewWarning(CategoryMetaDesc, model.SeverityMedium,
			fmt.Sprintf("Description too short (%d characters)", length),
			"Short descriptions may not provide enough context",
			"Expand description to be between 70-155 characters",
		)}
	case length > MaxDescriptionLength:
		return []model.Finding{model.NewWarning(CategoryMetaDesc, model.SeverityLow,
			fmt.Sprintf("Description too long (%d characters)", length),
			"Long descriptions will be truncated in search results",
			"Reduce description length to be between 70-155 characters",
		)}
	}
	return nil
}

func checkHeadings(doc *htmldoc.Document, _ string) []model.Finding {
	headings := doc.FindAll("h1", "h2", "h3", "h4", "h5", "h6")

	var findings []model.Finding

	h1Count := 0
	for _, h := range headings {
		if h.Tag() == "h1" {
			h1Count++
		}
	}

	if h1Count == 0 {
		findings = append(findings, model.NewIssue(CategoryHeadings, model.SeverityHigh,
			"Missing H1 heading",
			"H1 is a crucial signal for page topic and structure",
			"Add a single, descriptive H1 heading",
		))
	}
	if h1Count > 1 {
		findings = append(findings, model.NewWarning(CategoryHeadings, model.SeverityMedium,
			fmt.Sprintf("Multiple H1 headings found (%d)", h1Count),
			"Multiple H1s can confuse page hierarchy",
			"Use only one H1 heading per page",
		))
	}

	// Level 0 is the document start, so a page opening on H3 is a skip.
	prev := 0
	for _, h := range headings {
		level := int(h.Tag()[1] - '0')
		if level-prev > 1 {
			findings = append(findings, model.NewWarning(CategoryHeadings, model.SeverityMedium,
				fmt.Sprintf("Skipped heading level (from H%d to H%d)", prev, level),
				"Improper heading hierarchy affects accessibility and SEO",
				"Maintain proper heading hierarchy (H1 → H2 → H3)",
			))
		}
		prev = level
	}

	return findings
}

func checkImages(doc *htmldoc.Document, _ string) []model.Finding {
	var missingAlt, oversized int
	for _, img := range doc.FindAll("img") {
		if alt, _ := img.Attr("alt"); alt == "" {
			missingAlt++
		}
		if isOversized(img) {
			oversized++
		}
	}

	var findings []model.Finding
	if missingAlt > 0 {
		findings = append(findings, model.NewIssue(CategoryImages, model.SeverityHigh,
			fmt.Sprintf("Missing alt text on %d images", missingAlt),
			"Alt text is crucial for accessibility and image SEO",
			"Add descriptive alt text to all images",
		))
	}
	if oversized > 0 {
		findings = append(findings, model.NewIssue(CategoryImages, model.SeverityMedium,
			fmt.Sprintf("Found %d images exceeding %dpx in width or height", oversized, MaxImageDimension),
			"Large images can slow down page load times",
			"Optimize large images by resizing or compressing them",
		))
	}
	return findings
}

// isOversized reports whether both width and height are plain non-negative
// integers and either exceeds MaxImageDimension. Anything else is skipped.
func isOversized(img *htmldoc.Element) bool {
	wRaw, okW := img.Attr("width")
	hRaw, okH := img.Attr("height")
	if !okW || !okH {
		return false
	}

	w, okW := parseDimension(wRaw)
	h, okH := parseDimension(hRaw)
	if !okW || !okH {
		return false
	}
	return w > MaxImageDimension || h > MaxImageDimension
}

// parseDimension accepts only ASCII digit strings. Values too large for a
// uint64 saturate rather than fail, since they are certainly oversized.
func parseDimension(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return ^uint64(0), true
	}
	if err != nil {
		return 0, false
	}
	return v, true
}

func checkCanonical(doc *htmldoc.Document, targetURL string) []model.Finding {
	link, ok := doc.Find("link", func(el *htmldoc.Element) bool {
		return el.HasToken("rel", "canonical")
	})
	if !ok {
		return []model.Finding{model.NewIssue(CategoryCanonical, model.SeverityHigh,
			"Missing canonical tag",
			"Canonical tags help prevent duplicate content issues",
			"Add a canonical tag pointing to the preferred URL",
		)}
	}

	href, _ := link.Attr("href")
	if href != "" && href != targetURL {
		return []model.Finding{model.NewWarning(CategoryCanonical, model.SeverityMedium,
			fmt.Sprintf("Canonical URL (%s) differs from current URL", href),
			"May indicate content duplication or incorrect configuration",
			"Verify canonical URL is correct",
		)}
	}
	return nil
}

func checkRobots(doc *htmldoc.Document, _ string) []model.Finding {
	meta, ok := doc.FindMeta("robots")
	if !ok {
		meta, ok = doc.FindMeta("googlebot")
	}
	if !ok {
		return []model.Finding{model.NewWarning(CategoryRobots, model.SeverityLow,
			"Missing robots meta tag",
			"Default behavior allows indexing and following",
			"Consider adding robots meta tag for explicit control",
		)}
	}

	content, _ := meta.Attr("content")
	content = strings.ToLower(content)

	var findings []model.Finding
	if strings.Contains(content, "noindex") {
		findings = append(findings, model.NewIssue(CategoryRobots, model.SeverityCritical,
			"Page is set to noindex",
			"Page will not be indexed by search engines",
			"Remove noindex if page should be indexed",
		))
	}
	if strings.Contains(content, "nofollow") {
		findings = append(findings, model.NewWarning(CategoryRobots, model.SeverityHigh,
			"Page is set to nofollow",
			"Links on page won't pass authority",
			"Remove nofollow if links should be followed",
		))
	}
	return findings
}

func checkStructuredData(doc *htmldoc.Document, _ string) []model.Finding {
	var scripts int
	for _, s := range doc.FindAll("script") {
		if t, _ := s.Attr("type"); strings.EqualFold(strings.TrimSpace(t), ldJSONType) {
			scripts++
		}
	}

	mentionsSchema := strings.Contains(strings.ToLower(doc.HTML()), "schema.org")
	if scripts == 0 && !mentionsSchema {
		return []model.Finding{model.NewWarning(CategorySchema, model.SeverityMedium,
			"No schema.org structured data found",
			"Structured data helps search engines understand content",
			"Add relevant schema.org markup for your content type",
		)}
	}

	return []model.Finding{model.NewInfo(CategorySchema,
		fmt.Sprintf("Found %d schema.org scripts", scripts),
	)}
}

func checkPerformance(doc *htmldoc.Document, _ string) []model.Finding {
	size := doc.Size()
	if size <= MaxPageSizeBytes {
		return nil
	}
	return []model.Finding{model.NewWarning(CategoryPerformance, model.SeverityMedium,
		fmt.Sprintf("Large page size (%.1fKB)", float64(size)/1000),
		"Large pages load slower and may affect Core Web Vitals",
		"Optimize page size by minimizing HTML, CSS, and JavaScript",
	)}
}

func checkMobile(doc *htmldoc.Document, _ string) []model.Finding {
	if _, ok := doc.FindMeta("viewport"); ok {
		return nil
	}
	return []model.Finding{model.NewIssue(CategoryMobile, model.SeverityHigh,
		"Missing viewport meta tag",
		"Page may not be mobile-friendly",
		"Add proper viewport meta tag for mobile devices",
	)}
}

func checkSecurity(_ *htmldoc.Document, targetURL string) []model.Finding {
	if strings.HasPrefix(targetURL, "https") {
		return nil
	}
	return []model.Finding{model.NewIssue(CategorySecurity, model.SeverityHigh,
		"Not using HTTPS",
		"HTTPS is a ranking factor and security requirement",
		"Implement SSL/HTTPS on your website",
	)}
}
