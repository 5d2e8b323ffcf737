// Package assessment holds the data model and input normalization for
// organization/community fit assessments: two aligned capacity vectors plus
// their theme labels, built fresh from a single submission and never mutated.
package assessment

// Dimensions is the number of themes every assessment covers.
const Dimensions = 9

// Value bounds for every capacity and capability entry.
const (
	MinValue = 0.0
	MaxValue = 10.0
)

// Assessment is one validated submission: theme labels positionally aligned
// with a community capacity vector and an organization capability vector.
// All three slices have length Dimensions.
type Assessment struct {
	Labels       []string
	Community    []float64
	Organization []float64
}

// Row is one parsed input row, echoed back to callers so the presentation
// layer can render a preview table of what was accepted.
type Row struct {
	Label        string  `json:"label"`
	Community    float64 `json:"community_capacity"`
	Organization float64 `json:"organization_capability"`
}

// Rows returns the assessment as preview rows in input order.
func (a *Assessment) Rows() []Row {
	rows := make([]Row, len(a.Labels))
	for i := range a.Labels {
		rows[i] = Row{
			Label:        a.Labels[i],
			Community:    a.Community[i],
			Organization: a.Organization[i],
		}
	}
	return rows
}

func inRange(v float64) bool {
	return v >= MinValue && v <= MaxValue
}
