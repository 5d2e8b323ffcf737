// Package httpapi exposes the assessment core over HTTP for the external
// presentation layer: JSON in and out, except for chart artifacts which are
// delivered as SVG bytes.
package httpapi

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/tidefit/fit-server/internal/assessment"
	"github.com/tidefit/fit-server/internal/metrics"
	"github.com/tidefit/fit-server/internal/radar"
	"github.com/tidefit/fit-server/internal/service"
)

const (
	defaultCacheDuration  = 10 * time.Minute
	defaultRequestTimeout = 10 * time.Second
	maxUploadBytes        = 1 << 20
)

type cacheKeyType string

const (
	cacheKeyEvaluate    cacheKeyType = "http:evaluate"
	cacheKeyChart       cacheKeyType = "http:chart"
	cacheKeyInteractive cacheKeyType = "http:interactive"
)

var errBadPayload = errors.New("malformed request body")

type Handlers struct {
	svc      FitService
	cache    Cacher
	logger   *zap.Logger
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

// NewHandlers initializes the HTTP handlers.
func NewHandlers(svc FitService, cache Cacher, logger *zap.Logger, ttl time.Duration) *Handlers {
	if svc == nil {
		panic("nil FitService provided to NewHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &Handlers{
		svc:      svc,
		cache:    cache,
		logger:   logger.Named("http-handler"),
		cacheTTL: ttl,
	}
}

// Routes mounts all assessment endpoints on the given router.
func (h *Handlers) Routes(r chi.Router) {
	r.Post("/v1/assessments/evaluate", h.Evaluate)
	r.Post("/v1/assessments/chart", h.Chart)
	r.Post("/v1/interactive/evaluate", h.EvaluateInteractive)
	r.Get("/v1/themes", h.Themes)
}

type evaluateRequest struct {
	Rows [][]string `json:"rows"`
}

type chartRequest struct {
	Rows   [][]string `json:"rows,omitempty"`
	Values []int      `json:"values,omitempty"`
}

type interactiveRequest struct {
	Values []int `json:"values"`
}

type evaluateResponse struct {
	Preview []assessment.Row         `json:"preview"`
	Result  service.EvaluationResult `json:"result"`
}

type themesResponse struct {
	TabularThemes         []string  `json:"tabular_themes"`
	InteractiveThemes     []string  `json:"interactive_themes"`
	ReferenceCapabilities []float64 `json:"reference_capabilities"`
	CSVTemplate           string    `json:"csv_template"`
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Evaluate handles the upload workflow: a CSV file (multipart field "file")
// or JSON rows are normalized, scored and classified per theme.
func (h *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	a, err := h.decodeTabular(r)
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues("tabular", "rejected").Inc()
		h.writeError(w, "Evaluate", err)
		return
	}

	key := assessmentKey(cacheKeyEvaluate, a)

	result, err := FindAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) (service.EvaluationResult, error) {
		return h.svc.Evaluate(fetchCtx, a)
	})
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues("tabular", "error").Inc()
		h.writeError(w, "Evaluate", err)
		return
	}

	metrics.EvaluationsTotal.WithLabelValues("tabular", "ok").Inc()
	h.writeJSON(w, http.StatusOK, evaluateResponse{Preview: a.Rows(), Result: result})
}

// Chart handles both workflows: JSON rows or a CSV upload select the upload
// preset, slider values the interactive preset. The artifact is SVG.
func (h *Handlers) Chart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	var (
		a    *assessment.Assessment
		cfg  radar.Config
		mode string
		err  error
	)

	if isMultipart(r) {
		a, err = h.decodeTabular(r)
		cfg, mode = radar.DefaultConfig(), "tabular"
	} else {
		var req chartRequest
		if decErr := json.NewDecoder(r.Body).Decode(&req); decErr != nil {
			h.writeError(w, "Chart", fmt.Errorf("%w: %v", errBadPayload, decErr))
			return
		}
		if len(req.Values) > 0 {
			a, err = assessment.FromSliders(req.Values)
			cfg, mode = radar.InteractiveConfig(), "interactive"
		} else {
			a, err = assessment.FromRecords(req.Rows)
			cfg, mode = radar.DefaultConfig(), "tabular"
		}
	}
	if err != nil {
		h.writeError(w, "Chart", err)
		return
	}

	key := assessmentKey(cacheKeyChart, a) + ":" + mode

	svg, err := FindAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) ([]byte, error) {
		return h.svc.RenderChart(fetchCtx, a, cfg)
	})
	if err != nil {
		h.writeError(w, "Chart", err)
		return
	}

	metrics.ChartsRendered.WithLabelValues(mode).Inc()
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// EvaluateInteractive handles the slider workflow: nine integer capacity
// values scored with the min-plus-weighted-difference fit metric.
func (h *Handlers) EvaluateInteractive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	var req interactiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.EvaluationsTotal.WithLabelValues("interactive", "rejected").Inc()
		h.writeError(w, "EvaluateInteractive", fmt.Errorf("%w: %v", errBadPayload, err))
		return
	}

	a, err := assessment.FromSliders(req.Values)
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues("interactive", "rejected").Inc()
		h.writeError(w, "EvaluateInteractive", err)
		return
	}

	key := assessmentKey(cacheKeyInteractive, a)

	result, err := FindAndCache(ctx, h.cache, &h.sfGroup, key, h.cacheTTL, h.logger, func(fetchCtx context.Context) (service.InteractiveResult, error) {
		return h.svc.EvaluateInteractive(fetchCtx, a)
	})
	if err != nil {
		metrics.EvaluationsTotal.WithLabelValues("interactive", "error").Inc()
		h.writeError(w, "EvaluateInteractive", err)
		return
	}

	metrics.EvaluationsTotal.WithLabelValues("interactive", "ok").Inc()
	h.writeJSON(w, http.StatusOK, result)
}

// Themes serves the fixed reference data the presentation layer needs to
// build its input controls, plus a downloadable CSV template.
func (h *Handlers) Themes(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, themesResponse{
		TabularThemes:         assessment.TabularThemes,
		InteractiveThemes:     assessment.InteractiveThemes,
		ReferenceCapabilities: assessment.ReferenceCapabilities,
		CSVTemplate:           csvTemplate(),
	})
}

func (h *Handlers) decodeTabular(r *http.Request) (*assessment.Assessment, error) {
	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadPayload, err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("%w: missing file field", errBadPayload)
		}
		defer file.Close()
		return assessment.FromCSV(file)
	}

	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadPayload, err)
	}
	return assessment.FromRecords(req.Rows)
}

func (h *Handlers) writeError(w http.ResponseWriter, op string, err error) {
	kind, status := classifyError(err)

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("op", op), zap.Error(err))
	} else {
		h.logger.Info("request rejected",
			zap.String("op", op),
			zap.String("kind", kind),
			zap.Error(err))
	}

	h.writeJSON(w, status, errorResponse{Kind: kind, Message: err.Error()})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("response encode failed", zap.Error(err))
	}
}

// classifyError maps the validation taxonomy onto response kinds and HTTP
// status codes. Validation failures are unprocessable input, geometry and
// payload problems are bad requests, everything else is internal.
func classifyError(err error) (kind string, status int) {
	switch {
	case errors.Is(err, assessment.ErrSchema):
		return "schema", http.StatusUnprocessableEntity
	case errors.Is(err, assessment.ErrRowCount):
		return "row_count", http.StatusUnprocessableEntity
	case errors.Is(err, assessment.ErrValueType):
		return "value_type", http.StatusUnprocessableEntity
	case errors.Is(err, assessment.ErrValueRange):
		return "value_range", http.StatusUnprocessableEntity
	case errors.Is(err, radar.ErrGeometry):
		return "geometry", http.StatusBadRequest
	case errors.Is(err, errBadPayload):
		return "bad_payload", http.StatusBadRequest
	default:
		return "internal", http.StatusInternalServerError
	}
}

// assessmentKey derives a content-addressed cache key so identical
// resubmissions reuse cached results.
func assessmentKey(prefix cacheKeyType, a *assessment.Assessment) string {
	h := sha256.New()
	for i := range a.Labels {
		fmt.Fprintf(h, "%s|%g|%g;", a.Labels[i], a.Community[i], a.Organization[i])
	}
	return fmt.Sprintf("%s:%x", prefix, h.Sum(nil))
}

func csvTemplate() string {
	var b strings.Builder
	b.WriteString("Theme,Community Capacity,Organization Capability\n")
	comm := []int{7, 5, 8, 6, 4, 5, 9, 7, 8}
	org := []int{8, 6, 7, 5, 7, 4, 9, 8, 9}
	for i, theme := range assessment.TabularThemes {
		fmt.Fprintf(&b, "\"%s\",%d,%d\n", theme, comm[i], org[i])
	}
	return b.String()
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func withTimeout(r *http.Request) (context.Context, func()) {
	return context.WithTimeout(r.Context(), defaultRequestTimeout)
}
