package results

import (
	"encoding/json"
	"fmt"
	"os"
)

// ParseError reports a result document that could not be loaded: unreadable
// file, malformed JSON, or a missing required field. It always names the
// offending file so the diagnostic is actionable from CI logs.
type ParseError struct {
	File   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads one result document and produces the key→value mapping used by
// the comparison plus the raw result set with its metadata.
//
// Duplicate keys within one document silently overwrite, last-write-wins;
// uniqueness is assumed, not enforced.
func Load(path string) (map[Key]float64, *Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &ParseError{File: path, Reason: "cannot read file", Err: err}
	}

	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, nil, &ParseError{File: path, Reason: "malformed JSON", Err: err}
	}

	if err := validate(path, &set); err != nil {
		return nil, nil, err
	}

	values := make(map[Key]float64, len(set.Results))
	for _, r := range set.Results {
		values[r.Key()] = *r.Value
	}
	return values, &set, nil
}

func validate(path string, set *Set) error {
	for _, f := range []struct{ name, value string }{
		{"version", set.Version},
		{"commit", set.Commit},
		{"runner", set.Runner},
	} {
		if f.value == "" {
			return &ParseError{File: path, Reason: fmt.Sprintf("missing required field %q", f.name)}
		}
	}
	if set.Results == nil {
		return &ParseError{File: path, Reason: `missing required field "results"`}
	}
	for i, r := range set.Results {
		if r.Benchmark == "" {
			return &ParseError{File: path, Reason: fmt.Sprintf("results[%d]: missing required field %q", i, "benchmark")}
		}
		if r.Value == nil {
			return &ParseError{File: path, Reason: fmt.Sprintf("results[%d]: missing required field %q", i, "value")}
		}
	}
	return nil
}
