// core/thermo/tm.go
// Thermodynamic quantities for nucleic-acid duplexes and the two-state Tm formulas.
// Units: ΔH in cal/mol, ΔS in cal/(K·mol), Tm in °C.
//
//	Tm = ΔH / (ΔS + R ln(CT/F)) − 273.15       (bimolecular duplex)
//	Tm = ΔH / ΔS − 273.15                       (monomolecular hairpin)
//
// This package has no app/output deps; every other core package imports it.

package thermo

import (
	"errors"
	"math"
)

const (
	// R is the gas constant in cal/(K·mol) used by the nearest-neighbor formulas.
	R = 1.99

	// Kelvin is the offset between Kelvin and Celsius.
	Kelvin = 273.15
)

// Thermodynamics is an immutable enthalpy/entropy pair.
type Thermodynamics struct {
	Enthalpy float64 `json:"enthalpy" yaml:"enthalpy"` // cal/mol
	Entropy  float64 `json:"entropy" yaml:"entropy"`   // cal/(K·mol)
}

// Add returns t + o.
func (t Thermodynamics) Add(o Thermodynamics) Thermodynamics {
	return Thermodynamics{Enthalpy: t.Enthalpy + o.Enthalpy, Entropy: t.Entropy + o.Entropy}
}

// Scale returns t multiplied by k.
func (t Thermodynamics) Scale(k float64) Thermodynamics {
	return Thermodynamics{Enthalpy: t.Enthalpy * k, Entropy: t.Entropy * k}
}

// Result is the running accumulator of one computation.
// SaltIndependentEntropy collects loop entropy that must not be salt-corrected;
// it is folded into Tm after the ion correction.
type Result struct {
	Enthalpy               float64 `json:"enthalpy"`
	Entropy                float64 `json:"entropy"`
	SaltIndependentEntropy float64 `json:"salt_independent_entropy,omitempty"`
	Tm                     float64 `json:"tm"`
}

// Add accumulates a salt-dependent increment.
func (r *Result) Add(t Thermodynamics) {
	r.Enthalpy += t.Enthalpy
	r.Entropy += t.Entropy
}

// AddSaltIndependent accumulates enthalpy normally and routes the entropy
// to the salt-independent term.
func (r *Result) AddSaltIndependent(t Thermodynamics) {
	r.Enthalpy += t.Enthalpy
	r.SaltIndependentEntropy += t.Entropy
}

// Thermo returns the current enthalpy/entropy pair.
func (r *Result) Thermo() Thermodynamics {
	return Thermodynamics{Enthalpy: r.Enthalpy, Entropy: r.Entropy}
}

// MeltingTemperature computes the two-state duplex Tm in °C.
// ct is the total strand concentration (mol/L), factor is 1 for
// self-complementary duplexes and 4 (or 1) otherwise.
func MeltingTemperature(enthalpy, entropy, ct float64, factor int) (float64, error) {
	if ct <= 0 {
		return 0, errors.New("Tm: oligomer concentration must be > 0")
	}
	if factor <= 0 {
		return 0, errors.New("Tm: correction factor must be > 0")
	}
	den := entropy + R*math.Log(ct/float64(factor))
	if den == 0 {
		return 0, errors.New("Tm: zero denominator")
	}
	return enthalpy/den - Kelvin, nil
}

// HairpinTemperature computes the monomolecular Tm in °C.
func HairpinTemperature(enthalpy, entropy float64) (float64, error) {
	if entropy == 0 {
		return 0, errors.New("Tm: hairpin entropy is zero")
	}
	return enthalpy/entropy - Kelvin, nil
}

// FoldSaltIndependent applies 1/Tm' = 1/(Tm+273.15) + S/ΔH and returns Tm' in °C.
// A zero term or zero enthalpy leaves tm unchanged.
func FoldSaltIndependent(tm, saltIndependentEntropy, enthalpy float64) float64 {
	if saltIndependentEntropy == 0 || enthalpy == 0 {
		return tm
	}
	inv := 1/(tm+Kelvin) + saltIndependentEntropy/enthalpy
	return 1/inv - Kelvin
}
