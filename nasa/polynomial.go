// Package nasa fits and evaluates two-range, seven-coefficient NASA
// polynomials.
//
// Within each range the coefficients a1..a7 (a[0]..a[6] here) give
//
//	Cp/R = a1 + a2 T + a3 T^2 + a4 T^3 + a5 T^4
//	H/RT = a1 + a2 T/2 + a3 T^2/3 + a4 T^3/4 + a5 T^4/5 + a6/T
//	S/R  = a1 ln T + a2 T + a3 T^2/2 + a4 T^3/3 + a5 T^4/4 + a7
package nasa

import (
	"math"

	"github.com/skasiraj/pMuTT/thermo"
)

// NumCoeffs is the number of coefficients per temperature range
const NumCoeffs = 7

// numCp is the number of Cp/R coefficients fitted by least squares
const numCp = 5

// Coeffs is one range of a NASA polynomial
type Coeffs [NumCoeffs]float64

// Polynomial is a fitted two-range NASA polynomial. Low applies to
// T <= TMid and High above it.
type Polynomial struct {
	TLow  float64
	TMid  float64
	THigh float64
	Low   Coeffs
	High  Coeffs
}

// CpoR is the dimensionless heat capacity
func (a Coeffs) CpoR(T float64) float64 {
	return a[0] + T*(a[1]+T*(a[2]+T*(a[3]+T*a[4])))
}

func (a Coeffs) hoRTPoly(T float64) float64 {
	return a[0] + T*(a[1]/2+T*(a[2]/3+T*(a[3]/4+T*a[4]/5)))
}

func (a Coeffs) soRPoly(T float64) float64 {
	return a[0]*math.Log(T) + T*(a[1]+T*(a[2]/2+T*(a[3]/3+T*a[4]/4)))
}

// HoRT is the dimensionless enthalpy
func (a Coeffs) HoRT(T float64) float64 {
	return a.hoRTPoly(T) + a[5]/T
}

// SoR is the dimensionless entropy
func (a Coeffs) SoR(T float64) float64 {
	return a.soRPoly(T) + a[6]
}

// Range returns the coefficients that apply at T
func (p Polynomial) Range(T float64) Coeffs {
	if T <= p.TMid {
		return p.Low
	}
	return p.High
}

// InRange reports whether T lies within [TLow, THigh]. Evaluation outside
// the range extrapolates.
func (p Polynomial) InRange(T float64) bool {
	return T >= p.TLow && T <= p.THigh
}

func (p Polynomial) CpoR(T float64) float64 {
	return p.Range(T).CpoR(T)
}

func (p Polynomial) HoRT(T float64) float64 {
	return p.Range(T).HoRT(T)
}

func (p Polynomial) SoR(T float64) float64 {
	return p.Range(T).SoR(T)
}

// GoRT is the dimensionless Gibbs energy, H/RT - S/R
func (p Polynomial) GoRT(T float64) float64 {
	a := p.Range(T)
	return a.HoRT(T) - a.SoR(T)
}

// Sample makes a Polynomial usable wherever a thermo.Sampler is expected
func (p Polynomial) Sample(T float64) thermo.Sample {
	a := p.Range(T)
	return thermo.Sample{
		T:    T,
		CpoR: a.CpoR(T),
		HoRT: a.HoRT(T),
		SoR:  a.SoR(T),
	}
}
