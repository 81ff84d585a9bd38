package cxro

import (
	"net/url"
	"strconv"

	"github.com/ctderoo/reflectivity/internal/scan"
)

// Layer is one material in a mirror stack. Density is in g/cm3; -1 selects
// the service's tabulated density for the formula.
type Layer struct {
	Formula string
	Density float64
}

// Mirror is one of the closed set of mirror configurations the service can
// model. Each kind knows its CGI script, its form encoding, and the scan
// bounds it accepts. Implementations live in this package only.
type Mirror interface {
	script() string
	formValues() url.Values
	bounds(k ScanKind) scan.Bounds
}

// ThickMirror is a semi-infinite homogeneous mirror (mirror.pl). The
// service imposes no scan bounds on it.
type ThickMirror struct {
	Formula      string
	Density      float64 // g/cm3, -1 for tabulated
	Roughness    float64 // RMS surface roughness, nm
	Polarization int     // 1 s, -1 p, 0 unpolarized
}

// NewThickMirror returns a thick mirror with the service defaults: fused
// silica at tabulated density, ideally smooth, s-polarized.
func NewThickMirror() *ThickMirror {
	return &ThickMirror{Formula: "SiO2", Density: -1, Roughness: 0, Polarization: 1}
}

func (m *ThickMirror) script() string { return "mirror.pl" }

func (m *ThickMirror) formValues() url.Values {
	v := url.Values{}
	v.Set("Formula", m.Formula)
	v.Set("Density", ftoa(m.Density))
	v.Set("Sigma", ftoa(m.Roughness))
	v.Set("Pol", strconv.Itoa(m.Polarization))
	return v
}

func (m *ThickMirror) bounds(ScanKind) scan.Bounds { return scan.Unbounded }

// SingleLayerMirror is one coating layer on a substrate (laymir.pl).
type SingleLayerMirror struct {
	Layer              Layer
	Thickness          float64 // nm
	Roughness          float64 // nm
	Substrate          Layer
	SubstrateRoughness float64 // nm
	Polarization       int
}

// NewSingleLayerMirror returns the service defaults: 30 nm of carbon on
// fused silica.
func NewSingleLayerMirror() *SingleLayerMirror {
	return &SingleLayerMirror{
		Layer:        Layer{Formula: "C", Density: -1},
		Thickness:    30,
		Substrate:    Layer{Formula: "SiO2", Density: -1},
		Polarization: 1,
	}
}

func (m *SingleLayerMirror) script() string { return "laymir.pl" }

func (m *SingleLayerMirror) formValues() url.Values {
	v := url.Values{}
	v.Set("Layer", m.Layer.Formula)
	v.Set("Ldensity", ftoa(m.Layer.Density))
	v.Set("Thick", ftoa(m.Thickness))
	v.Set("Sigma1", ftoa(m.Roughness))
	v.Set("Substrate", m.Substrate.Formula)
	v.Set("Sdensity", ftoa(m.Substrate.Density))
	v.Set("Sigma2", ftoa(m.SubstrateRoughness))
	v.Set("Pol", strconv.Itoa(m.Polarization))
	return v
}

func (m *SingleLayerMirror) bounds(k ScanKind) scan.Bounds { return layeredBounds(k) }

// BiLayerMirror is two coating layers on a substrate (bimir.pl).
type BiLayerMirror struct {
	Top                Layer
	TopThickness       float64 // nm
	TopRoughness       float64 // nm
	Bottom             Layer
	BottomThickness    float64 // nm
	BottomRoughness    float64 // nm
	Substrate          Layer
	SubstrateRoughness float64 // nm
	Polarization       int
}

// NewBiLayerMirror returns the service defaults: 30 nm C over 10 nm Cr on
// fused silica.
func NewBiLayerMirror() *BiLayerMirror {
	return &BiLayerMirror{
		Top:             Layer{Formula: "C", Density: -1},
		TopThickness:    30,
		Bottom:          Layer{Formula: "Cr", Density: -1},
		BottomThickness: 10,
		Substrate:       Layer{Formula: "SiO2", Density: -1},
		Polarization:    1,
	}
}

func (m *BiLayerMirror) script() string { return "bimir.pl" }

func (m *BiLayerMirror) formValues() url.Values {
	v := url.Values{}
	v.Set("Tlayer", m.Top.Formula)
	v.Set("Tdensity", ftoa(m.Top.Density))
	v.Set("Thickt", ftoa(m.TopThickness))
	v.Set("Sigmat", ftoa(m.TopRoughness))
	v.Set("Blayer", m.Bottom.Formula)
	v.Set("Bdensity", ftoa(m.Bottom.Density))
	v.Set("Thickb", ftoa(m.BottomThickness))
	v.Set("Sigmab", ftoa(m.BottomRoughness))
	v.Set("Substrate", m.Substrate.Formula)
	v.Set("Sdensity", ftoa(m.Substrate.Density))
	v.Set("Sigmas", ftoa(m.SubstrateRoughness))
	v.Set("Pol", strconv.Itoa(m.Polarization))
	return v
}

func (m *BiLayerMirror) bounds(k ScanKind) scan.Bounds { return layeredBounds(k) }

// MultilayerMirror is a periodic two-material stack on a substrate
// (multi.pl). Ratio is the bottom layer thickness divided by the period.
type MultilayerMirror struct {
	Top            Layer
	Bottom         Layer
	Period         float64 // nm
	Ratio          float64 // bottom thickness / period
	Interdiffusion float64 // nm
	Periods        int
	Substrate      Layer
	Polarization   int
}

// NewMultilayerMirror returns the service defaults: a 40-period Mo/Si
// stack with 6.9 nm period, the classic EUV coating.
func NewMultilayerMirror() *MultilayerMirror {
	return &MultilayerMirror{
		Top:          Layer{Formula: "Si", Density: -1},
		Bottom:       Layer{Formula: "Mo", Density: -1},
		Period:       6.9,
		Ratio:        0.4,
		Periods:      40,
		Substrate:    Layer{Formula: "SiO2", Density: -1},
		Polarization: 1,
	}
}

func (m *MultilayerMirror) script() string { return "multi.pl" }

func (m *MultilayerMirror) formValues() url.Values {
	v := url.Values{}
	v.Set("Layer2", m.Top.Formula)
	v.Set("Density2", ftoa(m.Top.Density))
	v.Set("Layer1", m.Bottom.Formula)
	v.Set("Density1", ftoa(m.Bottom.Density))
	v.Set("Thick", ftoa(m.Period))
	v.Set("Gamma", ftoa(m.Ratio))
	v.Set("Sigma", ftoa(m.Interdiffusion))
	v.Set("Ncells", strconv.Itoa(m.Periods))
	v.Set("Substrate", m.Substrate.Formula)
	v.Set("Sdensity", ftoa(m.Substrate.Density))
	v.Set("Pol", strconv.Itoa(m.Polarization))
	return v
}

func (m *MultilayerMirror) bounds(k ScanKind) scan.Bounds { return layeredBounds(k) }
