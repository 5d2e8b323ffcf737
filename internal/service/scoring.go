package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tidefit/fit-server/internal/assessment"
	"github.com/tidefit/fit-server/internal/radar"
)

// Recommendation texts per band. The partial-gap text is completed with a
// remediation suggestion looked up from the theme catalogue.
const (
	textAligned   = "Congratulations! On this theme, the project seems to be suitable for this community."
	textRedundant = "The capacity and capability seem to overlap for this theme. The added benefit from the organization's strategy may be negated. Strategic effort should be placed on other themes."
	textGap       = "There is a gap between the community context and the strategy of the organization. It might be indicative of a bad fit."
	textPartial   = "There is a gap between the community context and the strategy of the organization. This could potentially be solved by changing the strategy to include: %s."
)

// Overall verdict texts for the interactive workflow.
const (
	summaryExcellent = "Excellent fit! This community shows strong alignment with the organization's capabilities."
	summaryGood      = "Good fit with some areas for development. Consider targeted capacity building."
	summaryLimited   = "Limited fit. This community may require significant preliminary work or alternative approaches."
)

// FitService computes fit scores and classifications for an assessment and
// renders its radar chart.
type FitService struct {
	logger *zap.Logger
}

// NewFitService creates a new FitService instance.
func NewFitService(logger *zap.Logger) *FitService {
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &FitService{logger: logger}
}

// Evaluate applies the upload-workflow rule to every theme: the fit score is
// organization capability plus community capacity minus 10, classified as
// aligned (0), redundant (positive), gap (below -2) or partial gap (-2 up to
// but excluding 0). Partial gaps carry a theme-specific remediation.
func (s *FitService) Evaluate(ctx context.Context, a *assessment.Assessment) (EvaluationResult, error) {
	if err := ctx.Err(); err != nil {
		return EvaluationResult{}, err
	}

	result := EvaluationResult{
		AssessmentID: uuid.New().String(),
		Themes:       make([]FitClassification, len(a.Labels)),
	}

	var total float64
	for i, label := range a.Labels {
		score := a.Organization[i] + a.Community[i] - assessment.MaxValue
		total += score

		band, text := classify(score, label)
		result.Themes[i] = FitClassification{
			Label:          label,
			Score:          score,
			Band:           band,
			Recommendation: text,
		}
	}
	result.AverageScore = total / float64(len(a.Labels))

	s.logger.Info("assessment evaluated",
		zap.String("assessment_id", result.AssessmentID),
		zap.Int("themes", len(result.Themes)),
		zap.Float64("average_score", result.AverageScore))

	return result, nil
}

func classify(score float64, label string) (Band, string) {
	switch {
	case score == 0:
		return BandAligned, textAligned
	case score > 0:
		return BandRedundant, textRedundant
	case score < -2:
		return BandGap, textGap
	default: // -2 <= score < 0
		return BandPartialGap, fmt.Sprintf(textPartial, assessment.LookupRemediation(label))
	}
}

// EvaluateInteractive applies the slider-workflow metric: per theme,
// min(org, comm) + 0.1 * |org - comm|, with the overall fit being the mean.
// This metric is deliberately different from the upload-workflow score; the
// two serve different data-collection contexts and are not interchangeable.
func (s *FitService) EvaluateInteractive(ctx context.Context, a *assessment.Assessment) (InteractiveResult, error) {
	if err := ctx.Err(); err != nil {
		return InteractiveResult{}, err
	}

	result := InteractiveResult{
		AssessmentID: uuid.New().String(),
		Dimensions:   make([]DimensionFit, len(a.Labels)),
	}

	var total float64
	for i, label := range a.Labels {
		org, comm := a.Organization[i], a.Community[i]
		fit := math.Min(org, comm) + math.Abs(org-comm)*0.1
		total += fit
		result.Dimensions[i] = DimensionFit{Label: label, Fit: fit}
	}
	result.OverallFit = total / float64(len(a.Labels))

	switch {
	case result.OverallFit >= 8:
		result.Band, result.Summary = OverallExcellent, summaryExcellent
	case result.OverallFit >= 6:
		result.Band, result.Summary = OverallGood, summaryGood
	default:
		result.Band, result.Summary = OverallLimited, summaryLimited
	}

	s.logger.Info("interactive assessment evaluated",
		zap.String("assessment_id", result.AssessmentID),
		zap.Float64("overall_fit", result.OverallFit),
		zap.String("band", string(result.Band)))

	return result, nil
}

// RenderChart builds the dual-direction radar geometry for the assessment
// and renders it with the given cosmetic configuration.
func (s *FitService) RenderChart(ctx context.Context, a *assessment.Assessment, cfg radar.Config) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chart, err := radar.Build(a.Organization, a.Community, a.Labels)
	if err != nil {
		return nil, fmt.Errorf("build chart geometry: %w", err)
	}

	svg := chart.RenderSVG(cfg)

	s.logger.Debug("chart rendered",
		zap.Int("dimensions", chart.N),
		zap.Int("bytes", len(svg)))

	return svg, nil
}
