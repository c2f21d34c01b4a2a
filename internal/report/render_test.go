package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lispmeister/hashline/internal/compare"
	"github.com/lispmeister/hashline/internal/results"
)

func intp(n int64) *int64       { return &n }
func floatp(v float64) *float64 { return &v }

func set(version, commit, runner string, rs ...results.Result) *results.Set {
	return &results.Set{Version: version, Commit: commit, Runner: runner, Results: rs}
}

func mapOf(rs ...results.Result) map[results.Key]float64 {
	m := make(map[results.Key]float64, len(rs))
	for _, r := range rs {
		m[r.Key()] = *r.Value
	}
	return m
}

func TestRenderComparison_Header(t *testing.T) {
	base := set("1.0", "abc", "ci",
		results.Result{Benchmark: "parse", FileLines: intp(100), EditCount: intp(1), Value: floatp(50.0)})
	curr := set("1.1", "def", "ci",
		results.Result{Benchmark: "parse", FileLines: intp(100), EditCount: intp(1), Value: floatp(52.0)})

	out, err := compare.Compare(mapOf(base.Results...), mapOf(curr.Results...), 15.0)
	require.NoError(t, err)

	var buf bytes.Buffer
	NewRenderer(false).RenderComparison(&buf, base, curr, out)
	text := buf.String()

	assert.Contains(t, text, "Baseline : 1.0 @ abc (ci)")
	assert.Contains(t, text, "Current  : 1.1 @ def (ci)")
	assert.Contains(t, text, "Threshold: 15.0%")
	assert.Contains(t, text, "Benchmark")
	assert.Contains(t, text, "Base (µs)")
	assert.Contains(t, text, "Curr (µs)")
	assert.Contains(t, text, "+4.0%")
	assert.Contains(t, text, "OK: no regressions above 15.0% threshold.")
}

func TestRenderComparison_RegressionSummary(t *testing.T) {
	base := set("1.0", "abc", "ci",
		results.Result{Benchmark: "parse", FileLines: intp(100), EditCount: intp(1), Value: floatp(50.0)})
	curr := set("1.0", "def", "ci",
		results.Result{Benchmark: "parse", FileLines: intp(100), EditCount: intp(1), Value: floatp(60.0)})

	out, err := compare.Compare(mapOf(base.Results...), mapOf(curr.Results...), 15.0)
	require.NoError(t, err)

	var buf bytes.Buffer
	NewRenderer(false).RenderComparison(&buf, base, curr, out)
	text := buf.String()

	assert.Contains(t, text, "REGRESSION (+20.0%)")
	assert.Contains(t, text, "FAIL: 1 regression(s) exceed 15.0% threshold:")
	assert.Contains(t, text, "  parse lines=100 edits=1: 50.0 -> 60.0 µs (+20.0%)")
}

func TestRenderComparison_MissingValues(t *testing.T) {
	base := set("1.0", "abc", "ci",
		results.Result{Benchmark: "removed", FileLines: intp(100), Value: floatp(10.0)})
	curr := set("1.0", "def", "ci",
		results.Result{Benchmark: "added", Value: floatp(20.0)})

	out, err := compare.Compare(mapOf(base.Results...), mapOf(curr.Results...), 15.0)
	require.NoError(t, err)

	var buf bytes.Buffer
	NewRenderer(false).RenderComparison(&buf, base, curr, out)
	text := buf.String()

	var addedLine, removedLine string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "added") {
			addedLine = line
		}
		if strings.HasPrefix(line, "removed") {
			removedLine = line
		}
	}

	require.NotEmpty(t, addedLine)
	require.NotEmpty(t, removedLine)

	// NEW row: no baseline value, no edit count, absent lines render as 0.
	assert.Contains(t, addedLine, " 0 ")
	assert.Contains(t, addedLine, "-")
	assert.Contains(t, addedLine, "N/A")
	assert.Contains(t, addedLine, "NEW")

	assert.Contains(t, removedLine, "10.0")
	assert.Contains(t, removedLine, "REMOVED")
}

func TestRenderComparison_ColumnAlignment(t *testing.T) {
	base := set("1.0", "abc", "ci",
		results.Result{Benchmark: "a", FileLines: intp(1), Value: floatp(1.0)},
		results.Result{Benchmark: "benchmark_with_long_name", FileLines: intp(1), Value: floatp(1.0)})
	curr := set("1.0", "abc", "ci",
		results.Result{Benchmark: "a", FileLines: intp(1), Value: floatp(1.0)},
		results.Result{Benchmark: "benchmark_with_long_name", FileLines: intp(1), Value: floatp(1.0)})

	out, err := compare.Compare(mapOf(base.Results...), mapOf(curr.Results...), 15.0)
	require.NoError(t, err)

	var buf bytes.Buffer
	NewRenderer(false).RenderComparison(&buf, base, curr, out)
	lines := strings.Split(buf.String(), "\n")

	// Header, separator, and every row share the same rune width up to the
	// Change column; the name column is padded to the longest name + 2.
	var header, sep string
	for i, line := range lines {
		if strings.HasPrefix(line, "Benchmark") {
			header = line
			sep = lines[i+1]
			break
		}
	}
	require.NotEmpty(t, header)
	assert.Equal(t, strings.Repeat("-", len([]rune(header))), sep)
	assert.True(t, strings.HasPrefix(header, "Benchmark"+strings.Repeat(" ", len("benchmark_with_long_name")+2-len("Benchmark"))))
}

func TestRenderComparison_Idempotent(t *testing.T) {
	base := set("1.0", "abc", "ci",
		results.Result{Benchmark: "parse", FileLines: intp(100), EditCount: intp(1), Value: floatp(50.0)},
		results.Result{Benchmark: "hash", FileLines: intp(500), Value: floatp(7.5)})
	curr := set("1.1", "def", "ci",
		results.Result{Benchmark: "parse", FileLines: intp(100), EditCount: intp(1), Value: floatp(61.0)},
		results.Result{Benchmark: "hash", FileLines: intp(500), Value: floatp(7.0)})

	render := func() string {
		out, err := compare.Compare(mapOf(base.Results...), mapOf(curr.Results...), 15.0)
		require.NoError(t, err)
		var buf bytes.Buffer
		NewRenderer(false).RenderComparison(&buf, base, curr, out)
		return buf.String()
	}

	assert.Equal(t, render(), render())
}

func TestRenderComparison_ColoredNoteStillCarriesText(t *testing.T) {
	base := set("1.0", "abc", "ci",
		results.Result{Benchmark: "parse", FileLines: intp(100), Value: floatp(50.0)})
	curr := set("1.0", "def", "ci",
		results.Result{Benchmark: "parse", FileLines: intp(100), Value: floatp(60.0)})

	out, err := compare.Compare(mapOf(base.Results...), mapOf(curr.Results...), 15.0)
	require.NoError(t, err)

	var buf bytes.Buffer
	NewRenderer(true).RenderComparison(&buf, base, curr, out)

	// Whatever the terminal profile, the note text itself must survive.
	assert.Contains(t, buf.String(), "REGRESSION")
}

func TestRenderSet(t *testing.T) {
	s := set("1.0", "abc", "ci",
		results.Result{Benchmark: "parse", FileLines: intp(100), EditCount: intp(1), Value: floatp(50.0)},
		results.Result{Benchmark: "hash", Value: floatp(12.5)})

	var buf bytes.Buffer
	NewRenderer(false).RenderSet(&buf, s)
	text := buf.String()

	assert.Contains(t, text, "Run      : 1.0 @ abc (ci)")
	assert.Contains(t, text, "Value (µs)")
	assert.Contains(t, text, "parse")
	assert.Contains(t, text, "50.0")
	assert.Contains(t, text, "12.5")
}

func TestFormatPct(t *testing.T) {
	assert.Equal(t, "15.0", formatPct(15.0))
	assert.Equal(t, "12.5", formatPct(12.5))
	assert.Equal(t, "7.25", formatPct(7.25))
}
