package httpapi

import (
	"context"
	"time"

	"github.com/tidefit/fit-server/internal/assessment"
	"github.com/tidefit/fit-server/internal/radar"
	"github.com/tidefit/fit-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// FitService is the scoring and rendering surface the handlers depend on.
type FitService interface {
	Evaluate(ctx context.Context, a *assessment.Assessment) (service.EvaluationResult, error)
	EvaluateInteractive(ctx context.Context, a *assessment.Assessment) (service.InteractiveResult, error)
	RenderChart(ctx context.Context, a *assessment.Assessment, cfg radar.Config) ([]byte, error)
}
