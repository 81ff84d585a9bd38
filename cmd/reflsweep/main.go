// Command reflsweep runs a 2D energy/angle reflectivity sweep: one energy
// scan per angle, written as a CSV matrix with optional HTML heatmap.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ctderoo/reflectivity/internal/config"
	"github.com/ctderoo/reflectivity/internal/cxro"
	"github.com/ctderoo/reflectivity/internal/report"
	"github.com/ctderoo/reflectivity/internal/scan"
	"github.com/ctderoo/reflectivity/internal/sweep"
)

func main() {
	baseURL := flag.String("url", cxro.DefaultBaseURL, "Base URL of the reflectivity service")
	mirrorKind := flag.String("mirror", "multilayer", "Mirror kind: thick, single, bilayer, multilayer (service defaults)")
	mirrorFile := flag.String("mirror-file", "", "JSON mirror preset (overrides -mirror)")

	e0 := flag.Float64("e0", 100, "Energy scan start (eV)")
	e1 := flag.Float64("e1", 1000, "Energy scan end (eV)")
	eSteps := flag.Int("e-steps", 200, "Energy steps per scan (matrix rows)")
	theta0 := flag.Float64("theta0", 0, "First grazing angle (deg)")
	theta1 := flag.Float64("theta1", 10, "Last grazing angle (deg)")
	thetaSteps := flag.Int("theta-steps", 11, "Number of angles (matrix columns)")

	output := flag.String("output", "", "Output CSV filename (defaults to sweep-<runid>-<timestamp>.csv)")
	htmlFile := flag.String("html", "", "Optional HTML heatmap filename")
	flag.Parse()

	runID := uuid.NewString()[:8]

	mirror, err := buildMirror(*mirrorFile, *mirrorKind)
	if err != nil {
		log.Fatalf("Mirror configuration: %v", err)
	}

	client := cxro.NewClient(nil, *baseURL)
	sweeper := sweep.NewEnergyAngle(func(e0, e1 float64, points int, angleDeg float64) (scan.Table, error) {
		return client.EnergyScan(mirror, e0, e1, points, angleDeg)
	})

	log.Printf("Run %s: sweeping %g-%g eV (%d steps) over %g-%g deg (%d angles)",
		runID, *e0, *e1, *eSteps, *theta0, *theta1, *thetaSteps)

	// Watch progress from a separate goroutine while the sweep blocks.
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				log.Printf("Run %s: %.0f%% of angle scans started", runID, sweeper.Progress()*100)
			}
		}
	}()

	started := time.Now()
	matrix, err := sweeper.Scan(*e0, *e1, *eSteps, *theta0, *theta1, *thetaSteps)
	close(done)
	if err != nil {
		var verr *scan.ValidationError
		if errors.As(err, &verr) {
			log.Fatalf("Requested sweep is invalid: %v", err)
		}
		log.Fatalf("Sweep failed: %v", err)
	}
	log.Printf("Run %s: sweep finished in %v", runID, time.Since(started).Round(time.Second))

	thetas := sweep.Angles(*theta0, *theta1, *thetaSteps)
	energies := make([]float64, *eSteps)
	for i := range energies {
		energies[i] = *e0 + float64(i)*(*e1-*e0)/float64(*eSteps)
	}

	filename := *output
	if filename == "" {
		filename = fmt.Sprintf("sweep-%s-%s.csv", runID, time.Now().Format("20060102-150405"))
	}
	rows, cols := matrix.Dims()
	if err := writeMatrixCSV(filename, rows, cols, matrix.At, energies, thetas); err != nil {
		log.Fatalf("Writing %s: %v", filename, err)
	}
	log.Printf("Wrote %s", filename)

	if *htmlFile != "" {
		f, err := os.Create(*htmlFile)
		if err != nil {
			log.Fatalf("Could not create %s: %v", *htmlFile, err)
		}
		defer f.Close()
		title := fmt.Sprintf("Reflectivity sweep %s", runID)
		if err := report.SweepHTML(matrix, energies, thetas, title, f); err != nil {
			log.Fatalf("Rendering %s: %v", *htmlFile, err)
		}
		log.Printf("Wrote %s", *htmlFile)
	}
}

func buildMirror(presetPath, kind string) (cxro.Mirror, error) {
	if presetPath != "" {
		cfg, err := config.LoadMirrorConfig(presetPath)
		if err != nil {
			return nil, err
		}
		return cfg.Mirror()
	}
	switch kind {
	case "thick":
		return cxro.NewThickMirror(), nil
	case "single":
		return cxro.NewSingleLayerMirror(), nil
	case "bilayer":
		return cxro.NewBiLayerMirror(), nil
	case "multilayer":
		return cxro.NewMultilayerMirror(), nil
	}
	return nil, fmt.Errorf("unknown mirror kind %q", kind)
}

// writeMatrixCSV writes one row per energy: the energy value followed by
// the reflectivity at each angle. The header names the angle columns.
func writeMatrixCSV(filename string, rows, cols int, at func(i, j int) float64, energies, thetas []float64) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := make([]string, 0, cols+1)
	header = append(header, "energy_ev")
	for _, th := range thetas {
		header = append(header, fmt.Sprintf("theta_%g_deg", th))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	rec := make([]string, cols+1)
	for r := 0; r < rows; r++ {
		rec[0] = strconv.FormatFloat(energies[r], 'g', -1, 64)
		for c := 0; c < cols; c++ {
			rec[c+1] = strconv.FormatFloat(at(r, c), 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
