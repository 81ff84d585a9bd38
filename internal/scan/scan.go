// Package scan implements range partitioning and chunked scan orchestration
// for remote reflectivity calculations. The remote service caps the number
// of sample points per request, so a requested domain is split into
// contiguous sub-ranges, fetched one at a time, and stitched back into a
// single ordered table.
package scan

import (
	"fmt"
	"math"
)

// Domain is a requested 1D sweep over one independent variable (energy,
// wavelength or angle). Points is the number of uniform steps between
// Start and End; the assembled result holds Points+1 samples.
type Domain struct {
	Start  float64
	End    float64
	Points int
}

// Bounds limits the domain a scan may request. Min and Max apply to
// Domain.Start and Domain.End respectively.
type Bounds struct {
	Min float64
	Max float64
}

// Unbounded places no limit on the scan domain.
var Unbounded = Bounds{Min: math.Inf(-1), Max: math.Inf(1)}

// Check validates d against the bounds. It returns a *ValidationError if
// the domain is malformed or falls outside [Min, Max].
func (b Bounds) Check(d Domain) error {
	if d.Points < 1 {
		return &ValidationError{Reason: fmt.Sprintf("point count must be at least 1, got %d", d.Points)}
	}
	if d.End <= d.Start {
		return &ValidationError{Reason: fmt.Sprintf("scan range [%g, %g] must have positive span", d.Start, d.End)}
	}
	if d.Start < b.Min {
		return &ValidationError{Reason: fmt.Sprintf("scan start %g below minimum %g", d.Start, b.Min)}
	}
	if d.End > b.Max {
		return &ValidationError{Reason: fmt.Sprintf("scan end %g above maximum %g", d.End, b.Max)}
	}
	return nil
}

// ValidationError reports a scan domain outside the bounds of applicability
// for the chosen mirror and scan kind. It is raised before any remote call
// is made and is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid scan domain: " + e.Reason
}
