// Package compare joins two benchmark result mappings and classifies each
// configuration as new, removed, improved, regressed, or within the noise
// band. It performs no I/O; rendering and exit decisions live elsewhere.
package compare

import (
	"fmt"
	"sort"

	"github.com/lispmeister/hashline/internal/results"
)

// Status classifies one comparison row.
type Status int

const (
	StatusUnchanged Status = iota // present in both, within the threshold band
	StatusNew                     // present only in current
	StatusRemoved                 // present only in baseline
	StatusRegression              // slower than baseline by more than the threshold
	StatusImproved                // faster than baseline by more than 5%
)

// Row is one line of the comparison: the join key, the values on each side
// (nil when the key is absent from that run) and the computed delta.
type Row struct {
	Key    results.Key
	Base   *float64
	Curr   *float64
	Pct    *float64
	Status Status
}

// Change returns the Change column value: the signed percentage, or "N/A"
// when the key exists on only one side.
func (r Row) Change() string {
	if r.Pct == nil {
		return "N/A"
	}
	return fmt.Sprintf("%+.1f%%", *r.Pct)
}

// Note returns the Note column value, the qualitative tag for the row.
func (r Row) Note() string {
	switch r.Status {
	case StatusNew:
		return "NEW"
	case StatusRemoved:
		return "REMOVED"
	case StatusRegression:
		return fmt.Sprintf("REGRESSION (+%.1f%%)", *r.Pct)
	case StatusImproved:
		return fmt.Sprintf("improved (%.1f%%)", *r.Pct)
	default:
		return fmt.Sprintf("%+.1f%%", *r.Pct)
	}
}

// Outcome holds the classified rows in presentation order plus the subset
// that regressed beyond the threshold, which drives the exit status.
type Outcome struct {
	Rows        []Row
	Regressions []Row
	Threshold   float64
}

// ZeroBaselineError reports a key whose baseline value is exactly 0, for
// which the percentage-change formula is undefined. One degenerate record
// aborts the whole comparison.
type ZeroBaselineError struct {
	Key results.Key
}

func (e *ZeroBaselineError) Error() string {
	return fmt.Sprintf("baseline value for %s (lines=%d edits=%d) is 0; percentage change undefined",
		e.Key.Benchmark, e.Key.FileLines, e.Key.EditCount)
}

// Compare joins the two mappings over the sorted union of their keys and
// classifies every row. A row regresses when its percentage increase exceeds
// threshold, and improves when it drops by more than 5%.
func Compare(base, curr map[results.Key]float64, threshold float64) (*Outcome, error) {
	keys := unionKeys(base, curr)

	out := &Outcome{Threshold: threshold}
	for _, k := range keys {
		row := Row{Key: k}
		bv, inBase := base[k]
		cv, inCurr := curr[k]

		switch {
		case !inBase:
			row.Curr = &cv
			row.Status = StatusNew
		case !inCurr:
			row.Base = &bv
			row.Status = StatusRemoved
		default:
			if bv == 0 {
				return nil, &ZeroBaselineError{Key: k}
			}
			pct := (cv - bv) / bv * 100
			row.Base = &bv
			row.Curr = &cv
			row.Pct = &pct
			switch {
			case pct > threshold:
				row.Status = StatusRegression
			case pct < -5:
				row.Status = StatusImproved
			default:
				row.Status = StatusUnchanged
			}
		}

		out.Rows = append(out.Rows, row)
		if row.Status == StatusRegression {
			out.Regressions = append(out.Regressions, row)
		}
	}
	return out, nil
}

func unionKeys(base, curr map[results.Key]float64) []results.Key {
	seen := make(map[results.Key]struct{}, len(base)+len(curr))
	var keys []results.Key
	for k := range base {
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for k := range curr {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
