package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Bahjat/seo-audit/internal/analyzer"
	"github.com/Bahjat/seo-audit/internal/model"
	"github.com/Bahjat/seo-audit/internal/output"
	"github.com/Bahjat/seo-audit/internal/platform/config"
	"github.com/Bahjat/seo-audit/internal/platform/errs"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	return newAnalyzeCmd(func(cfg config.Config) analyzer.ReportProvider { return newEngine(cfg) })
}

func newAnalyzeCmd(newProvider func(config.Config) analyzer.ReportProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Audit a single page and print the report",
		Example: `  # JSON report
  seoaudit analyze https://example.com

  # Markdown report
  seoaudit analyze https://example.com --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != formatJSON && format != formatMarkdown {
				return fmt.Errorf("invalid output format %q: must be %q or %q", format, formatJSON, formatMarkdown)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), cfg)
			svc := analyzer.NewService(newProvider(cfg), log)

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.AnalyzeTimeout)
			defer cancel()

			report, err := svc.Analyze(ctx, args[0])
			if err != nil {
				return renderFailure(cmd.OutOrStdout(), err)
			}
			return render(cmd.OutOrStdout(), format, report)
		},
	}

	cmd.Flags().StringP("format", "f", formatJSON, "Output format: json, markdown")
	return cmd
}

func render(w io.Writer, format string, report *model.Report) error {
	if format == formatMarkdown {
		return output.RenderMarkdown(w, report)
	}
	return output.RenderJSON(w, report)
}

// renderFailure prints fetch failures as an error body, the same way the
// HTTP service answers them. Other errors are returned to the caller.
func renderFailure(w io.Writer, err error) error {
	var appErr *errs.AppError
	if errors.As(err, &appErr) && appErr.FetchFailed() {
		return output.RenderJSON(w, model.ErrorResponse{Error: appErr.Error()})
	}
	return err
}
