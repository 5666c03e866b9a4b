package pageinsight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Bahjat/seo-audit/internal/audit"
	"github.com/Bahjat/seo-audit/internal/htmldoc"
	"github.com/Bahjat/seo-audit/internal/model"
	"github.com/Bahjat/seo-audit/internal/platform/errs"
)

const fetchFailedMessage = "Failed to fetch URL"

var errUpstreamStatus = errors.New("target returned an error status")

// Engine orchestrates page fetching, HTML parsing, and the audit rules.
type Engine struct {
	fetcher Fetcher
	now     func() time.Time
}

// NewEngine returns an Engine backed by the given Fetcher.
func NewEngine(fetcher Fetcher) *Engine {
	return &Engine{
		fetcher: fetcher,
		now:     time.Now,
	}
}

// Analyze validates and fetches a URL, parses the HTML, and runs every
// audit rule against it. Failures are returned as *errs.AppError.
func (e *Engine) Analyze(ctx context.Context, targetURL string) (*model.Report, error) {
	if err := validateURL(targetURL); err != nil {
		return nil, err
	}

	body, statusCode, err := e.fetcher.Fetch(ctx, targetURL)
	if err != nil {
		kind := errs.Unreachable
		if errors.Is(err, context.DeadlineExceeded) {
			kind = errs.Timeout
		}
		return nil, &errs.AppError{
			Kind:    kind,
			Message: fetchFailedMessage,
			Cause:   err,
		}
	}
	defer func() { _ = body.Close() }()

	if statusCode >= 400 {
		return nil, &errs.AppError{
			Kind:           errs.Unreachable,
			UpstreamStatus: statusCode,
			Message:        fetchFailedMessage,
			Cause:          fmt.Errorf("%w: %d %s for url: %s", errUpstreamStatus, statusCode, http.StatusText(statusCode), targetURL),
		}
	}

	doc, err := htmldoc.Parse(body)
	if err != nil {
		kind := errs.ParsingFailed
		if errors.Is(err, context.DeadlineExceeded) {
			kind = errs.Timeout
		}
		return nil, &errs.AppError{
			Kind:    kind,
			Message: fetchFailedMessage,
			Cause:   err,
		}
	}

	report := audit.Run(doc, targetURL, e.now())
	return &report, nil
}

func validateURL(targetURL string) error {
	parsed, err := url.Parse(targetURL)
	if err != nil {
		return &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL",
			Cause:   err,
		}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL: expected an absolute URL such as https://example.com",
		}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL: only http and https URLs are supported",
		}
	}
	return nil
}
