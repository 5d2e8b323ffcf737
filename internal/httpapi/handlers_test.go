package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tidefit/fit-server/internal/assessment"
	"github.com/tidefit/fit-server/internal/httpapi/mocks"
	"github.com/tidefit/fit-server/internal/radar"
	"github.com/tidefit/fit-server/internal/service"
)

func validRows() [][]string {
	return [][]string{
		{"1.1 Awareness & Education", "7", "8"},
		{"1.2 Community Governance", "5", "6"},
		{"1.3 Tradition Preservation", "8", "7"},
		{"2.1 Income & Revenue", "6", "5"},
		{"2.2 Employment", "4", "7"},
		{"2.3 Amenities", "5", "4"},
		{"3.1 Habitat Conservation", "9", "9"},
		{"3.2 Shark Preservation", "7", "8"},
		{"3.3 Protected Area", "8", "9"},
	}
}

func newRouter(h *Handlers) chi.Router {
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestNewHandlers(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		mockSvc := &mocks.MockFitService{}
		mockCache := &mocks.MockCacher{}
		ttl := 5 * time.Minute

		h := NewHandlers(mockSvc, mockCache, zap.NewNop(), ttl)

		assert.NotNil(t, h)
		assert.Equal(t, ttl, h.cacheTTL)
		assert.NotNil(t, h.logger)
	})

	t.Run("nil service panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewHandlers(nil, &mocks.MockCacher{}, zap.NewNop(), time.Minute)
		})
	})

	t.Run("zero TTL uses default", func(t *testing.T) {
		h := NewHandlers(&mocks.MockFitService{}, &mocks.MockCacher{}, zap.NewNop(), 0)

		assert.Equal(t, defaultCacheDuration, h.cacheTTL)
	})
}

func TestEvaluateHandler(t *testing.T) {
	t.Run("json rows happy path", func(t *testing.T) {
		mockSvc := &mocks.MockFitService{
			EvaluateFunc: func(ctx context.Context, a *assessment.Assessment) (service.EvaluationResult, error) {
				assert.Len(t, a.Labels, assessment.Dimensions)
				return service.EvaluationResult{
					AssessmentID: "test-id",
					Themes: []service.FitClassification{
						{Label: a.Labels[0], Score: 5, Band: service.BandRedundant},
					},
				}, nil
			},
		}
		h := NewHandlers(mockSvc, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/v1/assessments/evaluate",
			jsonBody(t, evaluateRequest{Rows: validRows()}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp evaluateResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "test-id", resp.Result.AssessmentID)
		assert.Len(t, resp.Preview, assessment.Dimensions)
		assert.Equal(t, "1.1 Awareness & Education", resp.Preview[0].Label)
	})

	t.Run("csv upload happy path", func(t *testing.T) {
		mockSvc := &mocks.MockFitService{
			EvaluateFunc: func(ctx context.Context, a *assessment.Assessment) (service.EvaluationResult, error) {
				return service.EvaluationResult{AssessmentID: "upload-id"}, nil
			},
		}
		h := NewHandlers(mockSvc, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", "assessment.csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte("Theme,Community Capacity,Organization Capability\n"))
		require.NoError(t, err)
		for _, row := range validRows() {
			_, err = fmt.Fprintf(fw, "\"%s\",%s,%s\n", row[0], row[1], row[2])
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/v1/assessments/evaluate", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp evaluateResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "upload-id", resp.Result.AssessmentID)
	})

	t.Run("two-column input rejected before scoring", func(t *testing.T) {
		evaluated := false
		mockSvc := &mocks.MockFitService{
			EvaluateFunc: func(ctx context.Context, a *assessment.Assessment) (service.EvaluationResult, error) {
				evaluated = true
				return service.EvaluationResult{}, nil
			},
		}
		h := NewHandlers(mockSvc, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/v1/assessments/evaluate",
			jsonBody(t, evaluateRequest{Rows: [][]string{{"Theme", "5"}}}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.False(t, evaluated)

		var resp errorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "schema", resp.Kind)
	})

	t.Run("out-of-range value names its row", func(t *testing.T) {
		h := NewHandlers(&mocks.MockFitService{}, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

		rows := validRows()
		rows[4][1] = "11"

		req := httptest.NewRequest(http.MethodPost, "/v1/assessments/evaluate",
			jsonBody(t, evaluateRequest{Rows: rows}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp errorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "value_range", resp.Kind)
		assert.Contains(t, resp.Message, "row 5")
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		h := NewHandlers(&mocks.MockFitService{}, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/v1/assessments/evaluate",
			strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("cache hit skips the service", func(t *testing.T) {
		cached := service.EvaluationResult{AssessmentID: "cached-id"}
		evaluated := false

		mockSvc := &mocks.MockFitService{
			EvaluateFunc: func(ctx context.Context, a *assessment.Assessment) (service.EvaluationResult, error) {
				evaluated = true
				return service.EvaluationResult{AssessmentID: "fresh-id"}, nil
			},
		}
		mockCache := &mocks.MockCacher{
			GetFunc: func(ctx context.Context, key string, dest any) error {
				*(dest.(*service.EvaluationResult)) = cached
				return nil
			},
		}
		h := NewHandlers(mockSvc, mockCache, zap.NewNop(), time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/v1/assessments/evaluate",
			jsonBody(t, evaluateRequest{Rows: validRows()}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, evaluated)

		var resp evaluateResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "cached-id", resp.Result.AssessmentID)
	})

	t.Run("service failure is internal", func(t *testing.T) {
		mockSvc := &mocks.MockFitService{
			EvaluateFunc: func(ctx context.Context, a *assessment.Assessment) (service.EvaluationResult, error) {
				return service.EvaluationResult{}, errors.New("boom")
			},
		}
		h := NewHandlers(mockSvc, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/v1/assessments/evaluate",
			jsonBody(t, evaluateRequest{Rows: validRows()}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestChartHandler(t *testing.T) {
	t.Run("tabular rows render with the default preset", func(t *testing.T) {
		mockSvc := &mocks.MockFitService{
			RenderChartFunc: func(ctx context.Context, a *assessment.Assessment, cfg radar.Config) ([]byte, error) {
				assert.True(t, cfg.DualTickLabels)
				return []byte("<svg>tabular</svg>"), nil
			},
		}
		h := NewHandlers(mockSvc, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/v1/assessments/chart",
			jsonBody(t, chartRequest{Rows: validRows()}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
		assert.Equal(t, "<svg>tabular</svg>", rec.Body.String())
	})

	t.Run("slider values render with the interactive preset", func(t *testing.T) {
		mockSvc := &mocks.MockFitService{
			RenderChartFunc: func(ctx context.Context, a *assessment.Assessment, cfg radar.Config) ([]byte, error) {
				assert.False(t, cfg.DualTickLabels)
				assert.Equal(t, assessment.InteractiveThemes, a.Labels)
				return []byte("<svg>interactive</svg>"), nil
			},
		}
		h := NewHandlers(mockSvc, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/v1/assessments/chart",
			jsonBody(t, chartRequest{Values: []int{7, 5, 8, 6, 4, 5, 9, 7, 8}}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<svg>interactive</svg>", rec.Body.String())
	})

	t.Run("invalid input rejected", func(t *testing.T) {
		h := NewHandlers(&mocks.MockFitService{}, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/v1/assessments/chart",
			jsonBody(t, chartRequest{Values: []int{1, 2}}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestEvaluateInteractiveHandler(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		mockSvc := &mocks.MockFitService{
			EvaluateInteractiveFunc: func(ctx context.Context, a *assessment.Assessment) (service.InteractiveResult, error) {
				assert.Equal(t, assessment.ReferenceCapabilities, a.Organization)
				return service.InteractiveResult{
					AssessmentID: "interactive-id",
					OverallFit:   6.5,
					Band:         service.OverallGood,
				}, nil
			},
		}
		h := NewHandlers(mockSvc, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/v1/interactive/evaluate",
			jsonBody(t, interactiveRequest{Values: []int{7, 5, 8, 6, 4, 5, 9, 7, 8}}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp service.InteractiveResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "interactive-id", resp.AssessmentID)
		assert.Equal(t, service.OverallGood, resp.Band)
	})

	t.Run("wrong value count rejected", func(t *testing.T) {
		h := NewHandlers(&mocks.MockFitService{}, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

		req := httptest.NewRequest(http.MethodPost, "/v1/interactive/evaluate",
			jsonBody(t, interactiveRequest{Values: []int{1, 2, 3}}))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		newRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var resp errorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "row_count", resp.Kind)
	})
}

func TestThemesHandler(t *testing.T) {
	h := NewHandlers(&mocks.MockFitService{}, &mocks.MockCacher{}, zap.NewNop(), time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/v1/themes", nil)
	rec := httptest.NewRecorder()

	newRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp themesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.TabularThemes, assessment.Dimensions)
	assert.Len(t, resp.InteractiveThemes, assessment.Dimensions)
	assert.Len(t, resp.ReferenceCapabilities, assessment.Dimensions)
	assert.True(t, strings.HasPrefix(resp.CSVTemplate, "Theme,Community Capacity,Organization Capability\n"))
	assert.Contains(t, resp.CSVTemplate, "3.3 Protected Area")
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		kind   string
		status int
	}{
		{"schema", assessment.ErrSchema, "schema", http.StatusUnprocessableEntity},
		{"row count", assessment.ErrRowCount, "row_count", http.StatusUnprocessableEntity},
		{"value type", assessment.ErrValueType, "value_type", http.StatusUnprocessableEntity},
		{"value range", assessment.ErrValueRange, "value_range", http.StatusUnprocessableEntity},
		{"geometry", radar.ErrGeometry, "geometry", http.StatusBadRequest},
		{"payload", errBadPayload, "bad_payload", http.StatusBadRequest},
		{"wrapped sentinel", fmt.Errorf("outer: %w", assessment.ErrValueRange), "value_range", http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), "internal", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, status := classifyError(tc.err)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestAssessmentKeyIsContentAddressed(t *testing.T) {
	a1, err := assessment.FromRecords(validRows())
	require.NoError(t, err)
	a2, err := assessment.FromRecords(validRows())
	require.NoError(t, err)

	assert.Equal(t, assessmentKey(cacheKeyEvaluate, a1), assessmentKey(cacheKeyEvaluate, a2))

	a2.Community[0] = 1
	assert.NotEqual(t, assessmentKey(cacheKeyEvaluate, a1), assessmentKey(cacheKeyEvaluate, a2))

	assert.NotEqual(t, assessmentKey(cacheKeyEvaluate, a1), assessmentKey(cacheKeyChart, a1))
}
