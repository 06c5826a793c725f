package thermo

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Column names of the Tabulated model
const (
	TKey    = "T"
	CpoRKey = "CpoR"
	HoRTKey = "HoRT"
	SoRKey  = "SoR"
)

type tabulated struct {
	tmin, tmax float64
	cp, h, s   interp.AkimaSpline
}

// newTabulated interpolates externally computed Cp/R, H/RT and S/R tables
func newTabulated(p Params) (Sampler, error) {
	cols := make([][]float64, 4)
	for i, key := range []string{TKey, CpoRKey, HoRTKey, SoRKey} {
		col, err := p.Floats(key)
		if err != nil {
			return nil, err
		}
		for _, v := range col {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &FieldError{Field: key, Err: fmt.Errorf("non-finite value %v", v)}
			}
		}
		cols[i] = col
	}
	n := len(cols[0])
	for i, key := range []string{CpoRKey, HoRTKey, SoRKey} {
		if len(cols[i+1]) != n {
			return nil, &FieldError{
				Field: key,
				Err:   fmt.Errorf("%d values for %d temperatures", len(cols[i+1]), n),
			}
		}
	}
	if n < 3 {
		return nil, &FieldError{Field: TKey, Err: fmt.Errorf("need at least 3 rows, got %d", n)}
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return cols[0][idx[a]] < cols[0][idx[b]] })
	sorted := make([][]float64, 4)
	for c := range cols {
		sorted[c] = make([]float64, n)
		for i, j := range idx {
			sorted[c][i] = cols[c][j]
		}
	}
	for i := 1; i < n; i++ {
		if sorted[0][i] == sorted[0][i-1] {
			return nil, &FieldError{Field: TKey, Err: fmt.Errorf("duplicate temperature %v", sorted[0][i])}
		}
	}
	t := &tabulated{tmin: sorted[0][0], tmax: sorted[0][n-1]}
	for i, sp := range []*interp.AkimaSpline{&t.cp, &t.h, &t.s} {
		if err := sp.Fit(sorted[0], sorted[i+1]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *tabulated) Sample(T float64) Sample {
	if !(T >= t.tmin && T <= t.tmax) {
		nan := math.NaN()
		return Sample{T: T, CpoR: nan, HoRT: nan, SoR: nan}
	}
	return Sample{
		T:    T,
		CpoR: t.cp.Predict(T),
		HoRT: t.h.Predict(T),
		SoR:  t.s.Predict(T),
	}
}

// Column names of the Constant model
const (
	H0oRKey = "H0oR"
	S0oRKey = "S0oR"
)

type constant struct {
	cp, h0, s0 float64
}

// newConstant is a constant heat capacity model: H = H0 + Cp*T and
// S = S0 + Cp*ln(T)
func newConstant(p Params) (Sampler, error) {
	var (
		c   constant
		err error
	)
	if c.cp, err = p.Float(CpoRKey, 0); err != nil {
		return nil, err
	}
	if c.h0, err = p.Float(H0oRKey, 0); err != nil {
		return nil, err
	}
	if c.s0, err = p.Float(S0oRKey, 0); err != nil {
		return nil, err
	}
	return c, nil
}

func (c constant) Sample(T float64) Sample {
	return Sample{
		T:    T,
		CpoR: c.cp,
		HoRT: c.cp + c.h0/T,
		SoR:  c.cp*math.Log(T) + c.s0,
	}
}
