// Package report renders comparison outcomes and single result sets as
// fixed-width tables on a writer. Color is applied only to the Note column
// and only when the renderer is built with color enabled, so piped output
// stays byte-stable.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/lispmeister/hashline/internal/compare"
	"github.com/lispmeister/hashline/internal/results"
)

var (
	regressionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)
	improvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")) // Green
	newStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // Cyan/Teal
	removedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Orange
)

// Renderer writes comparison reports. Color controls whether the Note
// column is styled; everything else is plain text either way.
type Renderer struct {
	Color bool
}

func NewRenderer(color bool) *Renderer {
	return &Renderer{Color: color}
}

// RenderComparison writes the full report: metadata header, comparison
// table, and the trailing FAIL/OK summary block.
func (r *Renderer) RenderComparison(w io.Writer, base, curr *results.Set, out *compare.Outcome) {
	fmt.Fprintf(w, "Baseline : %s @ %s (%s)\n", base.Version, base.Commit, base.Runner)
	fmt.Fprintf(w, "Current  : %s @ %s (%s)\n", curr.Version, curr.Commit, curr.Runner)
	fmt.Fprintf(w, "Threshold: %s%%\n\n", formatPct(out.Threshold))

	benchW := benchWidth(out.Rows)
	header := fmt.Sprintf("%-*s %7s %6s %10s %10s %8s  %s",
		benchW, "Benchmark", "Lines", "Edits", "Base (µs)", "Curr (µs)", "Change", "Note")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", utf8.RuneCountInString(header)))

	for _, row := range out.Rows {
		fmt.Fprintf(w, "%-*s %7d %6s %10s %10s %8s  %s\n",
			benchW, row.Key.Benchmark,
			row.Key.FileLines,
			formatEdits(row.Key),
			formatValue(row.Base),
			formatValue(row.Curr),
			row.Change(),
			r.note(row))
	}

	fmt.Fprintln(w)
	if len(out.Regressions) > 0 {
		fmt.Fprintf(w, "FAIL: %d regression(s) exceed %s%% threshold:\n",
			len(out.Regressions), formatPct(out.Threshold))
		for _, row := range out.Regressions {
			fmt.Fprintf(w, "  %s lines=%d edits=%s: %.1f -> %.1f µs (+%.1f%%)\n",
				row.Key.Benchmark, row.Key.FileLines, formatEdits(row.Key),
				*row.Base, *row.Curr, *row.Pct)
		}
	} else {
		fmt.Fprintf(w, "OK: no regressions above %s%% threshold.\n", formatPct(out.Threshold))
	}
}

// RenderSet writes a single result set as a table, for `benchcmp show`.
func (r *Renderer) RenderSet(w io.Writer, set *results.Set) {
	fmt.Fprintf(w, "Run      : %s @ %s (%s)\n\n", set.Version, set.Commit, set.Runner)

	benchW := len("Benchmark") + 2
	for _, res := range set.Results {
		if len(res.Benchmark)+2 > benchW {
			benchW = len(res.Benchmark) + 2
		}
	}
	header := fmt.Sprintf("%-*s %7s %6s %12s", benchW, "Benchmark", "Lines", "Edits", "Value (µs)")
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", utf8.RuneCountInString(header)))

	for _, res := range set.Results {
		k := res.Key()
		fmt.Fprintf(w, "%-*s %7d %6s %12.1f\n",
			benchW, k.Benchmark, k.FileLines, formatEdits(k), *res.Value)
	}
}

func (r *Renderer) note(row compare.Row) string {
	note := row.Note()
	if !r.Color {
		return note
	}
	switch row.Status {
	case compare.StatusRegression:
		return regressionStyle.Render(note)
	case compare.StatusImproved:
		return improvedStyle.Render(note)
	case compare.StatusNew:
		return newStyle.Render(note)
	case compare.StatusRemoved:
		return removedStyle.Render(note)
	default:
		return note
	}
}

func benchWidth(rows []compare.Row) int {
	w := 0
	for _, row := range rows {
		if len(row.Key.Benchmark) > w {
			w = len(row.Key.Benchmark)
		}
	}
	return w + 2
}

// formatPct prints a threshold the way the report headers expect: minimal
// digits, but always with a decimal point (15 renders as "15.0").
func formatPct(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatEdits(k results.Key) string {
	if !k.HasEditCount {
		return "-"
	}
	return strconv.FormatInt(k.EditCount, 10)
}

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
