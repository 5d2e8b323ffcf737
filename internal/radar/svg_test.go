package radar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChart(t *testing.T) *Chart {
	t.Helper()
	outward := []float64{8, 6, 7, 5, 7, 4, 9, 8, 9}
	inward := []float64{7, 5, 8, 6, 4, 5, 9, 7, 8}
	labels := []string{
		"1.1 Awareness & Education", "1.2 Community Governance", "1.3 Tradition Preservation",
		"2.1 Income & Revenue", "2.2 Employment", "2.3 Amenities",
		"3.1 Habitat Conservation", "3.2 Shark Preservation", "3.3 Protected Area",
	}
	c, err := Build(outward, inward, labels)
	require.NoError(t, err)
	return c
}

func TestRenderSVG(t *testing.T) {
	t.Run("default preset renders a complete document", func(t *testing.T) {
		svg := string(buildChart(t).RenderSVG(DefaultConfig()))

		assert.True(t, strings.HasPrefix(svg, "<svg"))
		assert.True(t, strings.HasSuffix(strings.TrimSpace(svg), "</svg>"))
		assert.Contains(t, svg, `width="720"`)
		assert.Contains(t, svg, "#1f77b4")
		assert.Contains(t, svg, "#2ca02c")
		assert.Contains(t, svg, "Organization Capability")
		assert.Contains(t, svg, "Community Capacity")
	})

	t.Run("labels are escaped", func(t *testing.T) {
		svg := string(buildChart(t).RenderSVG(DefaultConfig()))

		assert.Contains(t, svg, "1.1 Awareness &amp; Education")
		assert.NotContains(t, svg, "Awareness & Education<")
	})

	t.Run("eleven uniform gridlines over the radial axis", func(t *testing.T) {
		svg := string(buildChart(t).RenderSVG(DefaultConfig()))

		// Ten ring circles; the center point is the eleventh gridline.
		assert.Equal(t, 10, strings.Count(svg, `fill="none" stroke="#d9d9d9"`))
	})

	t.Run("dual preset carries colored tick numerals", func(t *testing.T) {
		svg := string(buildChart(t).RenderSVG(DefaultConfig()))

		assert.Contains(t, svg, `font-weight="bold" fill="#1f77b4">1</text>`)
		assert.Contains(t, svg, `font-weight="bold" fill="#2ca02c">10</text>`)
	})

	t.Run("interactive preset uses neutral even ticks", func(t *testing.T) {
		svg := string(buildChart(t).RenderSVG(InteractiveConfig()))

		assert.Contains(t, svg, `width="600"`)
		assert.Contains(t, svg, `fill="#666666">2</text>`)
		assert.NotContains(t, svg, `fill="#666666">3</text>`)
		assert.NotContains(t, svg, `font-weight="bold" fill="#1f77b4">1</text>`)
	})

	t.Run("legend can be disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ShowLegend = false
		cfg.Title = ""

		svg := string(buildChart(t).RenderSVG(cfg))

		assert.NotContains(t, svg, "Organization Capability")
	})

	t.Run("zero size falls back to default", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Size = 0

		svg := string(buildChart(t).RenderSVG(cfg))

		assert.Contains(t, svg, `width="720"`)
	})
}
