package service

// Band classifies one theme's fit score under the upload workflow.
type Band string

const (
	BandAligned    Band = "aligned"
	BandRedundant  Band = "redundant"
	BandGap        Band = "gap"
	BandPartialGap Band = "partial_gap"
)

// OverallBand classifies the interactive workflow's mean fit score.
type OverallBand string

const (
	OverallExcellent OverallBand = "excellent"
	OverallGood      OverallBand = "good"
	OverallLimited   OverallBand = "limited"
)

// FitClassification is the derived per-theme record: the score, its band and
// the recommendation text the presentation layer shows next to it.
type FitClassification struct {
	Label          string  `json:"label"`
	Score          float64 `json:"score"`
	Band           Band    `json:"band"`
	Recommendation string  `json:"recommendation"`
}

// EvaluationResult is the upload-workflow response: one classification per
// theme plus the average score across all of them.
type EvaluationResult struct {
	AssessmentID string              `json:"assessment_id"`
	Themes       []FitClassification `json:"themes"`
	AverageScore float64             `json:"average_score"`
}

// DimensionFit is one theme's score under the interactive fit metric.
type DimensionFit struct {
	Label string  `json:"label"`
	Fit   float64 `json:"fit"`
}

// InteractiveResult is the slider-workflow response: per-theme fit scores,
// their mean, and the overall verdict.
type InteractiveResult struct {
	AssessmentID string         `json:"assessment_id"`
	Dimensions   []DimensionFit `json:"dimensions"`
	OverallFit   float64        `json:"overall_fit"`
	Band         OverallBand    `json:"band"`
	Summary      string         `json:"summary"`
}
