package results

// Result represents a single benchmark measurement.
// FileLines and EditCount are optional dimensions of the benchmark input;
// Value is required and is a pointer only so the loader can tell a missing
// field apart from a measured 0.
type Result struct {
	Benchmark string   `json:"benchmark"`
	FileLines *int64   `json:"file_lines,omitempty"`
	EditCount *int64   `json:"edit_count,omitempty"`
	Value     *float64 `json:"value"`
}

// Set represents one benchmark run: its metadata plus the ordered
// list of measurements as they appeared in the document.
type Set struct {
	Version string   `json:"version"`
	Commit  string   `json:"commit"`
	Runner  string   `json:"runner"`
	Results []Result `json:"results"`
}

// Key identifies one benchmark configuration across runs. The Has* flags
// keep an absent dimension distinguishable from an explicit 0, so
// (parse, 100, absent) and (parse, 100, 0) stay separate keys.
type Key struct {
	Benchmark    string
	FileLines    int64
	EditCount    int64
	HasFileLines bool
	HasEditCount bool
}

// Key returns the join key for the measurement.
func (r Result) Key() Key {
	k := Key{Benchmark: r.Benchmark}
	if r.FileLines != nil {
		k.FileLines = *r.FileLines
		k.HasFileLines = true
	}
	if r.EditCount != nil {
		k.EditCount = *r.EditCount
		k.HasEditCount = true
	}
	return k
}

// Less orders keys by benchmark name, then file_lines, then edit_count.
// An absent dimension sorts as 0. The order is purely presentational: it
// groups a benchmark's size/edit variants and sorts them ascending.
func (k Key) Less(other Key) bool {
	if k.Benchmark != other.Benchmark {
		return k.Benchmark < other.Benchmark
	}
	if k.FileLines != other.FileLines {
		return k.FileLines < other.FileLines
	}
	return k.EditCount < other.EditCount
}
