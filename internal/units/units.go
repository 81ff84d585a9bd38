// Package units provides shared constants and conversions for scan axes
package units

// Axis unit names as used in CSV headers and CLI flags
const (
	EV  = "ev"
	NM  = "nm"
	DEG = "deg"
)

// ValidAxes contains all valid independent-variable units
var ValidAxes = []string{EV, NM, DEG}

// HCEVnm is the product h*c expressed in eV*nm, the conversion factor
// between photon energy and wavelength (CODATA).
const HCEVnm = 1239.8419843320026

// IsValid checks if the given axis unit is in the list of valid units
func IsValid(axis string) bool {
	for _, v := range ValidAxes {
		if axis == v {
			return true
		}
	}
	return false
}

// EnergyToWavelength converts a photon energy in eV to a wavelength in nm.
// Returns 0 for non-positive energies.
func EnergyToWavelength(energyEV float64) float64 {
	if energyEV <= 0 {
		return 0
	}
	return HCEVnm / energyEV
}

// WavelengthToEnergy converts a wavelength in nm to a photon energy in eV.
// Returns 0 for non-positive wavelengths.
func WavelengthToEnergy(wavelengthNM float64) float64 {
	if wavelengthNM <= 0 {
		return 0
	}
	return HCEVnm / wavelengthNM
}
