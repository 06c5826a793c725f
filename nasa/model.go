package nasa

import (
	"fmt"
	"strconv"

	"github.com/skasiraj/pMuTT/thermo"
)

// Parameter names of the thermo.Nasa model
const (
	LowKey   = "a_low"
	HighKey  = "a_high"
	TLowKey  = "T_low"
	TMidKey  = "T_mid"
	THighKey = "T_high"
)

func init() {
	thermo.SetEvaluator(thermo.Nasa, func(p thermo.Params) (thermo.Sampler, error) {
		return FromParams(p)
	})
}

// FromParams rebuilds a Polynomial from model parameters, the inverse of
// Params. T_low and T_high are optional.
func FromParams(p thermo.Params) (Polynomial, error) {
	var (
		poly Polynomial
		err  error
	)
	for _, r := range []struct {
		key string
		dst *Coeffs
	}{{LowKey, &poly.Low}, {HighKey, &poly.High}} {
		a, err := p.Floats(r.key)
		if err != nil {
			return poly, err
		}
		if len(a) != NumCoeffs {
			return poly, &thermo.FieldError{
				Field: r.key,
				Err:   fmt.Errorf("want %d coefficients, got %d", NumCoeffs, len(a)),
			}
		}
		copy(r.dst[:], a)
	}
	if poly.TMid, err = p.Float(TMidKey, 0); err != nil {
		return poly, err
	}
	if _, ok := p[TMidKey]; !ok {
		return poly, &thermo.FieldError{Field: TMidKey, Err: thermo.ErrMissingField}
	}
	if poly.TLow, err = p.Float(TLowKey, 0); err != nil {
		return poly, err
	}
	if poly.THigh, err = p.Float(THighKey, 0); err != nil {
		return poly, err
	}
	return poly, nil
}

// Params encodes p as parameters of the thermo.Nasa model
func (p Polynomial) Params() thermo.Params {
	format := func(f float64) string {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	low := make([]string, NumCoeffs)
	high := make([]string, NumCoeffs)
	for i := range low {
		low[i] = format(p.Low[i])
		high[i] = format(p.High[i])
	}
	return thermo.Params{
		LowKey:   low,
		HighKey:  high,
		TLowKey:  {format(p.TLow)},
		TMidKey:  {format(p.TMid)},
		THighKey: {format(p.THigh)},
	}
}
