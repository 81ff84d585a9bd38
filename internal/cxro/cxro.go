// Package cxro queries the Center for X-Ray Optics reflectivity service at
// henke.lbl.gov. The service models X-ray reflection and transmission off
// single- and multi-layer mirrors behind a CGI form-post interface: each
// request computes one scan of at most MaxPointsPerRequest sample points
// and answers with an HTML page linking a plaintext data file.
//
// Larger scans go through the chunked runner in the scan package, which
// issues one request per sub-range and stitches the results.
package cxro

import (
	"strconv"

	"github.com/ctderoo/reflectivity/internal/scan"
)

const (
	// DefaultBaseURL is the public CXRO server.
	DefaultBaseURL = "https://henke.lbl.gov"

	// MaxPointsPerRequest is the service's cap on sample points per call.
	MaxPointsPerRequest = 500
)

// ScanKind selects the independent variable of a 1D scan.
type ScanKind int

const (
	// EnergyScan sweeps photon energy in eV at a fixed grazing angle in deg.
	EnergyScan ScanKind = iota
	// WavelengthScan sweeps wavelength in nm at a fixed grazing angle in deg.
	WavelengthScan
	// AngleScan sweeps grazing angle in deg at a fixed photon energy in eV.
	AngleScan
)

func (k ScanKind) String() string {
	switch k {
	case EnergyScan:
		return "energy"
	case WavelengthScan:
		return "wavelength"
	case AngleScan:
		return "angle"
	}
	return "unknown"
}

// formName is the value the service expects in the Scan form field.
func (k ScanKind) formName() string {
	switch k {
	case WavelengthScan:
		return "Wave"
	case AngleScan:
		return "Angle"
	}
	return "Energy"
}

// layeredBounds are the service's documented limits for layered-mirror
// scans: 30-30000 eV, 0.041-41 nm, 0-90 deg.
func layeredBounds(k ScanKind) scan.Bounds {
	switch k {
	case WavelengthScan:
		return scan.Bounds{Min: 0.041, Max: 41.0}
	case AngleScan:
		return scan.Bounds{Min: 0, Max: 90}
	}
	return scan.Bounds{Min: 30, Max: 30000}
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
