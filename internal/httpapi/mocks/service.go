package mocks

import (
	"context"
	"errors"

	"github.com/tidefit/fit-server/internal/assessment"
	"github.com/tidefit/fit-server/internal/radar"
	"github.com/tidefit/fit-server/internal/service"
)

// MockFitService is a mock implementation of the FitService interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockFitService struct {
	EvaluateFunc            func(ctx context.Context, a *assessment.Assessment) (service.EvaluationResult, error)
	EvaluateInteractiveFunc func(ctx context.Context, a *assessment.Assessment) (service.InteractiveResult, error)
	RenderChartFunc         func(ctx context.Context, a *assessment.Assessment, cfg radar.Config) ([]byte, error)
}

// Evaluate implements the FitService interface
func (m *MockFitService) Evaluate(ctx context.Context, a *assessment.Assessment) (service.EvaluationResult, error) {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, a)
	}
	return service.EvaluationResult{}, errors.New("EvaluateFunc not implemented")
}

// EvaluateInteractive implements the FitService interface
func (m *MockFitService) EvaluateInteractive(ctx context.Context, a *assessment.Assessment) (service.InteractiveResult, error) {
	if m.EvaluateInteractiveFunc != nil {
		return m.EvaluateInteractiveFunc(ctx, a)
	}
	return service.InteractiveResult{}, errors.New("EvaluateInteractiveFunc not implemented")
}

// RenderChart implements the FitService interface
func (m *MockFitService) RenderChart(ctx context.Context, a *assessment.Assessment, cfg radar.Config) ([]byte, error) {
	if m.RenderChartFunc != nil {
		return m.RenderChartFunc(ctx, a, cfg)
	}
	return nil, errors.New("RenderChartFunc not implemented")
}
