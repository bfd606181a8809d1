package render

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bastiangx/passcloud/pkg/analysis"
	"github.com/bastiangx/passcloud/pkg/cloud"
	"github.com/bastiangx/passcloud/pkg/partial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport(t *testing.T) *analysis.Report {
	t.Helper()
	a := analysis.New(analysis.DefaultOptions())
	a.LoadText("123456\n123456\npassword\nmypass123\nmypass123\nadmin2020\nadmin2020\nqwerty\n", "sample.txt")
	r, err := a.Report(context.Background(), cloud.Options{Limit: 5})
	require.NoError(t, err)
	return r
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	Text(&buf, sampleReport(t), NewTheme(true, 20))
	out := buf.String()

	for _, want := range []string{
		"sample.txt", "Statistics", "Duplicate rate", "37.5%",
		"Top 5", "123456", "Length distribution",
		"heatmap", "51-100", "Partial matches", "Word cloud", "mypass123",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTextPartialNoMatches(t *testing.T) {
	var buf bytes.Buffer
	TextPartial(&buf, &partial.Result{}, NewTheme(false, 0), 10)
	assert.Contains(t, buf.String(), "no partial phrases found")
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(0, 10, 10))
	assert.Equal(t, "", bar(5, 0, 10))
	assert.Equal(t, strings.Repeat(barRune, 10), bar(10, 10, 10))
	assert.Equal(t, strings.Repeat(barRune, 5), bar(5, 10, 10))
	assert.Equal(t, barRune, bar(0.01, 10, 10), "non-zero values get at least one cell")
}

func TestMarkdownReport(t *testing.T) {
	md := MarkdownReport(sampleReport(t))

	assert.True(t, strings.HasPrefix(md, "# PassCloud report"))
	assert.Contains(t, md, "| Total | 8 |")
	assert.Contains(t, md, "| 1 | `123456` | 2 | 25.00% |")
	assert.Contains(t, md, "## Heatmap")
	assert.Contains(t, md, "| `my` | 2 |")
	assert.Contains(t, md, "## Word cloud")
}

func TestMarkdownRenders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, "# Title\n\nsome *text*\n", true, 60))
	assert.Contains(t, buf.String(), "Title")
	assert.Contains(t, buf.String(), "text")
}

func TestEscapeCell(t *testing.T) {
	assert.Equal(t, `a\|b'c`, escapeCell("a|b`c"))
}

func TestExports(t *testing.T) {
	r := sampleReport(t)

	var js bytes.Buffer
	require.NoError(t, Write(&js, "json", r, NewTheme(false, 0)))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Contains(t, decoded, "stats")
	assert.Contains(t, decoded, "heatmap")

	var ym bytes.Buffer
	require.NoError(t, Write(&ym, "yaml", r, NewTheme(false, 0)))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	stats, ok := fromYAML["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 8, stats["total_passwords"])

	assert.Error(t, Write(&bytes.Buffer{}, "html", r, NewTheme(false, 0)))
}
