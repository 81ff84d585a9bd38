// Package sweep drives two-dimensional reflectivity sweeps: one chunked
// energy scan per angle, assembled into an energy x angle matrix.
package sweep

import (
	"fmt"
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ctderoo/reflectivity/internal/scan"
)

// ScanFunc runs one 1D energy scan at a fixed grazing angle and returns at
// least points rows. cxro.Client.EnergyScan curried over a mirror
// satisfies it.
type ScanFunc func(e0, e1 float64, points int, angleDeg float64) (scan.Table, error)

// EnergyAngle runs a grid of energy scans across a range of angles. Scans
// execute strictly sequentially; Progress may be read from any goroutine
// while a sweep runs.
type EnergyAngle struct {
	scan     ScanFunc
	progress atomic.Uint64 // float64 bits
}

// NewEnergyAngle creates a sweep driver around the given scan function.
func NewEnergyAngle(scan ScanFunc) *EnergyAngle {
	return &EnergyAngle{scan: scan}
}

// Progress reports the fraction of angle scans started, in [0, 1]. It is
// non-decreasing over one Scan call and reaches exactly 1 only once the
// final angle's scan has completed.
func (s *EnergyAngle) Progress() float64 {
	return math.Float64frombits(s.progress.Load())
}

func (s *EnergyAngle) setProgress(v float64) {
	s.progress.Store(math.Float64bits(v))
}

// Scan sweeps energy over [e0, e1] with eStep points at each of thetaStep
// angles evenly spaced across [theta0, theta1] inclusive, and returns an
// eStep x thetaStep matrix of reflectivities. Column i holds the scan at
// the i-th angle, ascending.
//
// The first failing scan aborts the sweep; the partially filled matrix is
// discarded.
func (s *EnergyAngle) Scan(e0, e1 float64, eStep int, theta0, theta1 float64, thetaStep int) (*mat.Dense, error) {
	if eStep < 1 {
		return nil, &scan.ValidationError{Reason: fmt.Sprintf("energy step count must be at least 1, got %d", eStep)}
	}
	if thetaStep < 1 {
		return nil, &scan.ValidationError{Reason: fmt.Sprintf("angle step count must be at least 1, got %d", thetaStep)}
	}

	thetas := Angles(theta0, theta1, thetaStep)
	out := mat.NewDense(eStep, thetaStep, nil)

	s.setProgress(0)
	for i, theta := range thetas {
		s.setProgress(float64(i) / float64(thetaStep))
		table, err := s.scan(e0, e1, eStep, theta)
		if err != nil {
			return nil, fmt.Errorf("energy scan at %g deg: %w", theta, err)
		}
		if len(table) < eStep {
			return nil, fmt.Errorf("energy scan at %g deg returned %d rows, need %d", theta, len(table), eStep)
		}
		for r := 0; r < eStep; r++ {
			out.Set(r, i, table[r].Reflectivity)
		}
	}
	s.setProgress(1)

	return out, nil
}

// Angles returns n angles evenly spaced across [theta0, theta1], both
// endpoints included. n == 1 yields just theta0.
func Angles(theta0, theta1 float64, n int) []float64 {
	if n == 1 {
		return []float64{theta0}
	}
	return floats.Span(make([]float64, n), theta0, theta1)
}
