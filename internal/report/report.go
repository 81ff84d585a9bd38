// Package report renders scan results for human inspection: PNG
// reflectivity curves and HTML sweep heatmaps.
package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ctderoo/reflectivity/internal/scan"
)

// CurvePNG writes a reflectivity-vs-x line plot of a 1D scan to path. The
// image format follows the path extension (.png, .svg, .pdf).
func CurvePNG(t scan.Table, title, xLabel, path string) error {
	if len(t) == 0 {
		return fmt.Errorf("empty table, nothing to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Reflectivity"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(t))
	for i, r := range t {
		pts[i].X = r.X
		pts[i].Y = r.Reflectivity
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building reflectivity line: %w", err)
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(line)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}

// SweepHTML renders an energy x angle reflectivity matrix as a standalone
// HTML heatmap. energies labels the rows and thetas the columns; their
// lengths must match the matrix dimensions.
func SweepHTML(m *mat.Dense, energies, thetas []float64, title string, w io.Writer) error {
	rows, cols := m.Dims()
	if len(energies) != rows || len(thetas) != cols {
		return fmt.Errorf("axis labels (%d, %d) do not match matrix shape (%d, %d)",
			len(energies), len(thetas), rows, cols)
	}

	maxR := 0.0
	data := make([]opts.HeatMapData, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := m.At(r, c)
			if v > maxR {
				maxR = v
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, r, v}})
		}
	}
	if maxR == 0 {
		maxR = 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "Grazing angle (deg)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: "Energy (eV)", Data: axisLabels(energies)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxR),
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#31688e", "#35b779", "#fde725"}},
		}),
	)

	hm.SetXAxis(axisLabels(thetas)).AddSeries("reflectivity", data)
	return hm.Render(w)
}

func axisLabels(vals []float64) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprintf("%g", v)
	}
	return out
}
