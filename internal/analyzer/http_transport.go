package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Bahjat/seo-audit/internal/model"
	"github.com/Bahjat/seo-audit/internal/platform/errs"
)

const defaultAnalyzeTimeout = 60 * time.Second

const (
	msgURLRequired    = "URL parameter is required"
	msgInvalidBody    = "Invalid request body. Please send a JSON object with a \"url\" field."
	msgInternalError  = "Internal Server Error"
	maxRequestBodyLen = 1 << 20 // 1 MB
)

var errURLRequired = errors.New(msgURLRequired)

// Transport handles HTTP requests for page audits.
type Transport struct {
	service *Service
	logger  *slog.Logger
	timeout time.Duration
}

// NewTransport creates an HTTP transport backed by the given service. Each
// analysis runs under its own deadline; a non-positive timeout uses 60s.
func NewTransport(service *Service, logger *slog.Logger, timeout time.Duration) *Transport {
	if timeout <= 0 {
		timeout = defaultAnalyzeTimeout
	}
	return &Transport{service: service, logger: logger, timeout: timeout}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /analyze", t.handleAnalyze)
	mux.HandleFunc("POST /analyze", t.handleAnalyze)
	mux.HandleFunc("GET /healthz", t.handleHealth)
}

type analyzeRequest struct {
	URL string `json:"url"`
}

func (r analyzeRequest) validate() error {
	if r.URL == "" {
		return errURLRequired
	}
	return nil
}

// decodeRequest takes the url query parameter first and falls back to a
// JSON body on POST. An empty body is not an error.
func decodeRequest(w http.ResponseWriter, r *http.Request) (analyzeRequest, error) {
	req := analyzeRequest{URL: r.URL.Query().Get("url")}
	if req.URL != "" || r.Method != http.MethodPost {
		return req, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyLen)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}

func (t *Transport) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		t.renderError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := req.validate(); err != nil {
		t.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), t.timeout)
	defer cancel()

	report, err := t.service.Analyze(ctx, req.URL)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, report)
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t.renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleServiceError maps an analysis failure onto the wire. Fetch failures
// are a normal analysis outcome and answer 200 with an error body.
func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		switch {
		case appErr.Kind == errs.InvalidInput:
			t.renderError(w, http.StatusBadRequest, appErr.Message)
			return
		case appErr.FetchFailed():
			t.renderError(w, http.StatusOK, appErr.Error())
			return
		}
	}

	t.renderError(w, http.StatusInternalServerError, msgInternalError)
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{Error: message})
}
