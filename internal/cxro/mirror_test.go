package cxro

import (
	"math"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMirrorFormValues(t *testing.T) {
	tests := []struct {
		name       string
		mirror     Mirror
		wantScript string
		want       url.Values
	}{
		{
			name:       "thick mirror defaults",
			mirror:     NewThickMirror(),
			wantScript: "mirror.pl",
			want: url.Values{
				"Formula": {"SiO2"},
				"Density": {"-1"},
				"Sigma":   {"0"},
				"Pol":     {"1"},
			},
		},
		{
			name: "single layer",
			mirror: &SingleLayerMirror{
				Layer:              Layer{Formula: "Au", Density: 19.3},
				Thickness:          25,
				Roughness:          0.5,
				Substrate:          Layer{Formula: "Si", Density: -1},
				SubstrateRoughness: 0.3,
				Polarization:       1,
			},
			wantScript: "laymir.pl",
			want: url.Values{
				"Layer":     {"Au"},
				"Ldensity":  {"19.3"},
				"Thick":     {"25"},
				"Sigma1":    {"0.5"},
				"Substrate": {"Si"},
				"Sdensity":  {"-1"},
				"Sigma2":    {"0.3"},
				"Pol":       {"1"},
			},
		},
		{
			name:       "bilayer defaults",
			mirror:     NewBiLayerMirror(),
			wantScript: "bimir.pl",
			want: url.Values{
				"Tlayer":    {"C"},
				"Tdensity":  {"-1"},
				"Thickt":    {"30"},
				"Sigmat":    {"0"},
				"Blayer":    {"Cr"},
				"Bdensity":  {"-1"},
				"Thickb":    {"10"},
				"Sigmab":    {"0"},
				"Substrate": {"SiO2"},
				"Sdensity":  {"-1"},
				"Sigmas":    {"0"},
				"Pol":       {"1"},
			},
		},
		{
			name:       "multilayer defaults",
			mirror:     NewMultilayerMirror(),
			wantScript: "multi.pl",
			want: url.Values{
				"Layer2":    {"Si"},
				"Density2":  {"-1"},
				"Layer1":    {"Mo"},
				"Density1":  {"-1"},
				"Thick":     {"6.9"},
				"Gamma":     {"0.4"},
				"Sigma":     {"0"},
				"Ncells":    {"40"},
				"Substrate": {"SiO2"},
				"Sdensity":  {"-1"},
				"Pol":       {"1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mirror.script(); got != tt.wantScript {
				t.Errorf("script = %q, want %q", got, tt.wantScript)
			}
			if diff := cmp.Diff(tt.want, tt.mirror.formValues()); diff != "" {
				t.Errorf("form values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMirrorBounds(t *testing.T) {
	layered := NewMultilayerMirror()

	tests := []struct {
		kind     ScanKind
		min, max float64
	}{
		{EnergyScan, 30, 30000},
		{WavelengthScan, 0.041, 41.0},
		{AngleScan, 0, 90},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			b := layered.bounds(tt.kind)
			if b.Min != tt.min || b.Max != tt.max {
				t.Errorf("bounds = [%g, %g], want [%g, %g]", b.Min, b.Max, tt.min, tt.max)
			}
		})
	}

	// Thick mirrors are unbounded for every scan kind.
	for _, kind := range []ScanKind{EnergyScan, WavelengthScan, AngleScan} {
		b := NewThickMirror().bounds(kind)
		if !math.IsInf(b.Min, -1) || !math.IsInf(b.Max, 1) {
			t.Errorf("thick mirror %s bounds = [%g, %g], want unbounded", kind, b.Min, b.Max)
		}
	}
}
