package scan

import (
	"encoding/csv"
	"io"
	"strconv"
)

// Row is one sample returned by the service: the independent variable
// (eV, nm or deg depending on the scan kind), reflectivity, and
// transmission into the substrate. Reflectivity and transmission are
// unitless and expected in [0, 1], but not clamped here.
type Row struct {
	X            float64
	Reflectivity float64
	Transmission float64
}

// Table is an ordered sequence of rows, increasing in X.
type Table []Row

// Reflectivities returns the reflectivity column.
func (t Table) Reflectivities() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = r.Reflectivity
	}
	return out
}

// Xs returns the independent-variable column.
func (t Table) Xs() []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = r.X
	}
	return out
}

// WriteCSV writes the table as three-column CSV with the given header
// names (e.g. "energy_ev,reflectivity,transmission").
func (t Table) WriteCSV(w io.Writer, header []string) error {
	cw := csv.NewWriter(w)
	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for _, r := range t {
		rec := []string{
			strconv.FormatFloat(r.X, 'g', -1, 64),
			strconv.FormatFloat(r.Reflectivity, 'g', -1, 64),
			strconv.FormatFloat(r.Transmission, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
