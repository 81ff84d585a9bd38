// Package config loads mirror preset files for the command-line tools.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ctderoo/reflectivity/internal/cxro"
)

// LayerConfig describes one material in a preset. Density omitted or -1
// selects the service's tabulated density.
type LayerConfig struct {
	Formula string   `json:"formula"`
	Density *float64 `json:"density,omitempty"`
}

// MirrorConfig is the JSON schema for a mirror preset. Kind selects which
// field set applies; omitted fields keep the service defaults, so partial
// presets are safe.
type MirrorConfig struct {
	Kind string `json:"kind"` // "thick", "single", "bilayer" or "multilayer"

	// Thick mirror
	Formula   *string  `json:"formula,omitempty"`
	Density   *float64 `json:"density,omitempty"`
	Roughness *float64 `json:"roughness,omitempty"`

	// Single layer
	Layer              *LayerConfig `json:"layer,omitempty"`
	Thickness          *float64     `json:"thickness_nm,omitempty"`
	LayerRoughness     *float64     `json:"layer_roughness_nm,omitempty"`
	SubstrateRoughness *float64     `json:"substrate_roughness_nm,omitempty"`

	// Bilayer
	Top             *LayerConfig `json:"top,omitempty"`
	TopThickness    *float64     `json:"top_thickness_nm,omitempty"`
	TopRoughness    *float64     `json:"top_roughness_nm,omitempty"`
	Bottom          *LayerConfig `json:"bottom,omitempty"`
	BottomThickness *float64     `json:"bottom_thickness_nm,omitempty"`
	BottomRoughness *float64     `json:"bottom_roughness_nm,omitempty"`

	// Multilayer
	Period         *float64 `json:"period_nm,omitempty"`
	Ratio          *float64 `json:"ratio,omitempty"`
	Interdiffusion *float64 `json:"interdiffusion_nm,omitempty"`
	Periods        *int     `json:"periods,omitempty"`

	// Shared
	Substrate    *LayerConfig `json:"substrate,omitempty"`
	Polarization *int         `json:"polarization,omitempty"`
}

// LoadMirrorConfig reads a preset from a JSON file.
func LoadMirrorConfig(path string) (*MirrorConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("mirror preset must have .json extension, got %q", ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("reading mirror preset: %w", err)
	}
	cfg := &MirrorConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing mirror preset: %w", err)
	}
	return cfg, nil
}

// Mirror builds the cxro mirror the preset describes, applying service
// defaults for any omitted field.
func (c *MirrorConfig) Mirror() (cxro.Mirror, error) {
	switch c.Kind {
	case "thick":
		m := cxro.NewThickMirror()
		setString(&m.Formula, c.Formula)
		setFloat(&m.Density, c.Density)
		setFloat(&m.Roughness, c.Roughness)
		setInt(&m.Polarization, c.Polarization)
		return m, nil
	case "single":
		m := cxro.NewSingleLayerMirror()
		applyLayer(&m.Layer, c.Layer)
		setFloat(&m.Thickness, c.Thickness)
		setFloat(&m.Roughness, c.LayerRoughness)
		applyLayer(&m.Substrate, c.Substrate)
		setFloat(&m.SubstrateRoughness, c.SubstrateRoughness)
		setInt(&m.Polarization, c.Polarization)
		return m, nil
	case "bilayer":
		m := cxro.NewBiLayerMirror()
		applyLayer(&m.Top, c.Top)
		setFloat(&m.TopThickness, c.TopThickness)
		setFloat(&m.TopRoughness, c.TopRoughness)
		applyLayer(&m.Bottom, c.Bottom)
		setFloat(&m.BottomThickness, c.BottomThickness)
		setFloat(&m.BottomRoughness, c.BottomRoughness)
		applyLayer(&m.Substrate, c.Substrate)
		setFloat(&m.SubstrateRoughness, c.SubstrateRoughness)
		setInt(&m.Polarization, c.Polarization)
		return m, nil
	case "multilayer":
		m := cxro.NewMultilayerMirror()
		applyLayer(&m.Top, c.Top)
		applyLayer(&m.Bottom, c.Bottom)
		setFloat(&m.Period, c.Period)
		setFloat(&m.Ratio, c.Ratio)
		setFloat(&m.Interdiffusion, c.Interdiffusion)
		setInt(&m.Periods, c.Periods)
		applyLayer(&m.Substrate, c.Substrate)
		setInt(&m.Polarization, c.Polarization)
		return m, nil
	}
	return nil, fmt.Errorf("unknown mirror kind %q (want thick, single, bilayer or multilayer)", c.Kind)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func applyLayer(dst *cxro.Layer, v *LayerConfig) {
	if v == nil {
		return
	}
	if v.Formula != "" {
		dst.Formula = v.Formula
	}
	if v.Density != nil {
		dst.Density = *v.Density
	}
}
