package scan

import "fmt"

// RemoteScan performs exactly one remote round trip for a single chunk and
// returns the parsed table. The returned table holds Points+1 rows (chunk
// start and end inclusive). Any error aborts the enclosing run.
type RemoteScan func(c Chunk) (Table, error)

// Runner drives a chunked scan: validate, partition, fetch each chunk in
// order, and stitch the partial tables into one.
type Runner struct {
	// MaxChunkPoints caps the step count of a single remote request.
	MaxChunkPoints int
	Remote         RemoteScan
}

// NewRunner returns a Runner using the given per-request point cap.
func NewRunner(maxChunkPoints int, remote RemoteScan) *Runner {
	return &Runner{MaxChunkPoints: maxChunkPoints, Remote: remote}
}

// Run validates d against b, partitions it, and fetches each chunk
// sequentially. Consecutive chunks share a boundary sample, so every
// chunk's final row except the last chunk's is dropped before
// concatenation; the assembled table holds d.Points+1 rows.
//
// The first failing chunk aborts the run: no partial table is returned and
// no retry is attempted.
func (r *Runner) Run(d Domain, b Bounds) (Table, error) {
	if err := b.Check(d); err != nil {
		return nil, err
	}
	chunks, err := Partition(d.Start, d.End, d.Points, r.MaxChunkPoints)
	if err != nil {
		return nil, err
	}

	out := make(Table, 0, d.Points+1)
	for i, c := range chunks {
		t, err := r.Remote(c)
		if err != nil {
			return nil, fmt.Errorf("chunk %d of %d [%g, %g]: %w", i+1, len(chunks), c.Start, c.End, err)
		}
		if i < len(chunks)-1 && len(t) > 0 {
			t = t[:len(t)-1]
		}
		out = append(out, t...)
	}
	return out, nil
}
