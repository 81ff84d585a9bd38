package scan

// Chunk is one sub-range of a Domain, sized to fit a single remote request.
// Consecutive chunks share their boundary value: chunk[i].End equals
// chunk[i+1].Start.
type Chunk struct {
	Start  float64
	End    float64
	Points int
}

// Partition splits [start, end] with the given uniform point count into
// ordered chunks of at most maxPoints steps each. Boundaries are computed
// by direct interpolation rather than repeated stride addition so they do
// not accumulate floating-point drift; the last chunk's End is pinned to
// exactly end regardless.
func Partition(start, end float64, points, maxPoints int) ([]Chunk, error) {
	if err := (Unbounded).Check(Domain{Start: start, End: end, Points: points}); err != nil {
		return nil, err
	}
	if maxPoints < 1 {
		return nil, &ValidationError{Reason: "max points per chunk must be at least 1"}
	}

	boundary := func(i int) float64 {
		return start + float64(i)*(end-start)/float64(points)
	}

	chunks := make([]Chunk, 0, (points+maxPoints-1)/maxPoints)
	for i := 0; i < points; i += maxPoints {
		n := points - i
		if n > maxPoints {
			n = maxPoints
		}
		c := Chunk{Start: boundary(i), End: boundary(i + n), Points: n}
		chunks = append(chunks, c)
	}
	chunks[len(chunks)-1].End = end
	return chunks, nil
}
