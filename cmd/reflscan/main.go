// Command reflscan runs a 1D reflectivity scan against the CXRO service
// and writes the result table as CSV, optionally with a PNG curve.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ctderoo/reflectivity/internal/config"
	"github.com/ctderoo/reflectivity/internal/cxro"
	"github.com/ctderoo/reflectivity/internal/report"
	"github.com/ctderoo/reflectivity/internal/scan"
	"github.com/ctderoo/reflectivity/internal/units"
)

func main() {
	baseURL := flag.String("url", cxro.DefaultBaseURL, "Base URL of the reflectivity service")
	mirrorKind := flag.String("mirror", "thick", "Mirror kind: thick, single, bilayer, multilayer (service defaults; use -mirror-file to customise stacks)")
	mirrorFile := flag.String("mirror-file", "", "JSON mirror preset (overrides -mirror)")

	scanKind := flag.String("scan", "energy", "Scan kind: energy (eV), wave (nm), angle (deg)")
	min := flag.Float64("min", 100, "Scan start (eV, nm or deg per -scan)")
	max := flag.Float64("max", 1000, "Scan end")
	points := flag.Int("points", 500, "Number of scan steps (result has points+1 rows)")
	fixed := flag.Float64("fixed", 2.0, "Fixed parameter: grazing angle in deg for energy/wave scans, photon energy in eV for angle scans")

	// Thick-mirror shortcuts, so simple scans need no preset file
	formula := flag.String("formula", "SiO2", "Chemical formula (thick mirror only)")
	density := flag.Float64("density", -1, "Density in g/cm3, -1 for tabulated (thick mirror only)")
	roughness := flag.Float64("roughness", 0, "RMS surface roughness in nm (thick mirror only)")
	pol := flag.Int("pol", 1, "Polarization: 1 s, -1 p, 0 unpolarized (thick mirror only)")

	output := flag.String("output", "", "Output CSV filename (defaults to scan-<timestamp>.csv)")
	plotFile := flag.String("plot", "", "Optional reflectivity curve image (.png, .svg or .pdf)")
	flag.Parse()

	mirror, err := buildMirror(*mirrorFile, *mirrorKind, *formula, *density, *roughness, *pol)
	if err != nil {
		log.Fatalf("Mirror configuration: %v", err)
	}

	kind, xLabel, err := parseScanKind(*scanKind)
	if err != nil {
		log.Fatal(err)
	}

	if kind == cxro.EnergyScan {
		log.Printf("Energy scan %g-%g eV (%.4g-%.4g nm) at %g deg",
			*min, *max, units.EnergyToWavelength(*max), units.EnergyToWavelength(*min), *fixed)
	}

	client := cxro.NewClient(nil, *baseURL)
	started := time.Now()
	table, err := client.Scan(mirror, kind, scan.Domain{Start: *min, End: *max, Points: *points}, *fixed)
	if err != nil {
		var verr *scan.ValidationError
		if errors.As(err, &verr) {
			log.Fatalf("Requested domain is invalid: %v", err)
		}
		log.Fatalf("Service call failed: %v", err)
	}
	log.Printf("Scan finished: %d rows in %v", len(table), time.Since(started).Round(time.Millisecond))

	filename := *output
	if filename == "" {
		filename = fmt.Sprintf("scan-%s.csv", time.Now().Format("20060102-150405"))
	}
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("Could not create output file %s: %v", filename, err)
	}
	defer f.Close()

	if err := table.WriteCSV(f, []string{csvHeader(kind), "reflectivity", "transmission"}); err != nil {
		log.Fatalf("Writing %s: %v", filename, err)
	}
	log.Printf("Wrote %s", filename)

	if *plotFile != "" {
		title := fmt.Sprintf("%s scan, fixed=%g", kind, *fixed)
		if err := report.CurvePNG(table, title, xLabel, *plotFile); err != nil {
			log.Fatalf("Rendering %s: %v", *plotFile, err)
		}
		log.Printf("Wrote %s", *plotFile)
	}
}

func buildMirror(presetPath, kind, formula string, density, roughness float64, pol int) (cxro.Mirror, error) {
	if presetPath != "" {
		cfg, err := config.LoadMirrorConfig(presetPath)
		if err != nil {
			return nil, err
		}
		return cfg.Mirror()
	}
	switch kind {
	case "thick":
		m := cxro.NewThickMirror()
		m.Formula = formula
		m.Density = density
		m.Roughness = roughness
		m.Polarization = pol
		return m, nil
	case "single":
		return cxro.NewSingleLayerMirror(), nil
	case "bilayer":
		return cxro.NewBiLayerMirror(), nil
	case "multilayer":
		return cxro.NewMultilayerMirror(), nil
	}
	return nil, fmt.Errorf("unknown mirror kind %q", kind)
}

func parseScanKind(s string) (cxro.ScanKind, string, error) {
	switch s {
	case "energy":
		return cxro.EnergyScan, "Energy (eV)", nil
	case "wave", "wavelength":
		return cxro.WavelengthScan, "Wavelength (nm)", nil
	case "angle":
		return cxro.AngleScan, "Grazing angle (deg)", nil
	}
	return 0, "", fmt.Errorf("invalid scan kind %q (must be energy, wave or angle)", s)
}

func csvHeader(k cxro.ScanKind) string {
	switch k {
	case cxro.WavelengthScan:
		return "wavelength_" + units.NM
	case cxro.AngleScan:
		return "angle_" + units.DEG
	}
	return "energy_" + units.EV
}
