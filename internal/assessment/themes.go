package assessment

import "strings"

// TabularThemes are the canonical theme names expected in uploaded tables.
// Labels in uploads do not have to match these exactly; remediation lookup
// is fuzzy (see LookupRemediation).
var TabularThemes = []string{
	"1.1 Awareness & Education",
	"1.2 Community Governance",
	"1.3 Tradition Preservation",
	"2.1 Income & Revenue",
	"2.2 Employment",
	"2.3 Amenities",
	"3.1 Habitat Conservation",
	"3.2 Shark Preservation",
	"3.3 Protected Area",
}

// InteractiveThemes are the fixed theme names for the slider workflow, in
// the order the controls are presented.
var InteractiveThemes = []string{
	"Generational Development",
	"Community Cohesion",
	"Tradition Preservation",
	"Infrastructure",
	"Employment",
	"Revenue",
	"Habitat Conservation",
	"Shark Population",
	"Protected Land",
}

// ReferenceCapabilities is the hardcoded organization capability vector the
// slider workflow pairs community input against.
var ReferenceCapabilities = []float64{5, 4, 5, 3, 4, 2, 4, 6, 6}

// Remediation pairs a canonical theme name with its suggestion text.
// Catalogue order matters: lookup takes the first match.
type Remediation struct {
	Theme      string
	Suggestion string
}

// RemediationCatalogue maps each canonical theme to a concrete strategic
// suggestion, used when a theme shows a moderate shortfall.
var RemediationCatalogue = []Remediation{
	{"1.1 Awareness & Education", "improving communication on the effects of conservation, or reaching out to younger generations"},
	{"1.2 Community Governance", "strengthening ties with community members to gain trust"},
	{"1.3 Tradition Preservation", "collaborating with the community to include traditional elements in ecotourism"},
	{"2.1 Income & Revenue", "adapting business model to increase the portion of the revenue reserved for tour guide salaries and conservation"},
	{"2.2 Employment", "offer employment to more local residents with opportunities to develop skills and expertise"},
	{"2.3 Amenities", "improve infrastructure for the daily lives of residents and adapt it to accommodate tourists"},
	{"3.1 Habitat Conservation", "creating habitat improvements for the natural resource"},
	{"3.2 Shark Preservation", "strengthening fishing conservation efforts"},
	{"3.3 Protected Area", "strengthening and implementing area protection regulations"},
}

// GenericRemediation is the fallback suggestion when no catalogue entry
// matches a label.
const GenericRemediation = "general strategic adjustments"

// LookupRemediation resolves a theme label to a suggestion by
// case-insensitive matching against the catalogue, in catalogue order.
// A catalogue entry matches when its full name is a substring of the label
// or when any word of the name appears in the label. Numbering tokens and
// punctuation ("1.1", "&") are ignored as words, so only meaningful terms
// can trigger a match.
func LookupRemediation(label string) string {
	l := strings.ToLower(label)
	for _, entry := range RemediationCatalogue {
		key := strings.ToLower(entry.Theme)
		if strings.Contains(l, key) {
			return entry.Suggestion
		}
		for _, word := range strings.Fields(key) {
			if !hasLetter(word) {
				continue
			}
			if strings.Contains(l, word) {
				return entry.Suggestion
			}
		}
	}
	return GenericRemediation
}

func hasLetter(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}
