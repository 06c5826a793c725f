package nasa

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/skasiraj/pMuTT/thermo"
)

const (
	// DefaultPoints is the default size of the fitting grid
	DefaultPoints = 50
	// rcond is the relative singular value cutoff for the Cp/R fit
	rcond = 1e-10
)

var errNoConvergence = errors.New("nasa: SVD did not converge")

// Config controls Fit. The zero value fits 50 points, selects T_mid with
// MinResidual and anchors the low range at T_low.
type Config struct {
	// TMid fixes the breakpoint; zero selects it with Midpoint
	TMid float64
	// Points is the number of grid temperatures
	Points int
	// Anchor is the temperature at which the low range reproduces the
	// sampled H/RT and S/R; zero means T_low
	Anchor float64
	// Midpoint selects T_mid when TMid is zero
	Midpoint MidpointPolicy
}

// Result is a fitted polynomial with its fit diagnostics
type Result struct {
	Polynomial
	Quality Quality
}

// Fit samples s on a uniform grid over [tLow, tHigh] and fits a two-range
// NASA polynomial to it.
//
// The Cp/R coefficients of each range come from an independent least-squares
// fit. The low range integration constants reproduce the sampled H/RT and S/R
// at the anchor temperature; the high range constants are then chosen so that
// H/RT and S/R are continuous at T_mid.
func Fit(s thermo.Sampler, tLow, tHigh float64, cfg Config) (Result, error) {
	if err := checkRange(tLow, cfg.TMid, tHigh); err != nil {
		return Result{}, err
	}
	n := cfg.Points
	if n == 0 {
		n = DefaultPoints
	}
	if n < 2 {
		return Result{}, &InsufficientDataError{Range: "grid", Points: n}
	}
	grid := floats.Span(make([]float64, n), tLow, tHigh)
	samples := make([]thermo.Sample, n)
	cp := make([]float64, n)
	for i, T := range grid {
		smp, err := sample(s, T)
		if err != nil {
			return Result{}, err
		}
		samples[i] = smp
		cp[i] = smp.CpoR
	}

	tMid := cfg.TMid
	if tMid == 0 {
		policy := cfg.Midpoint
		if policy == nil {
			policy = MinResidual{}
		}
		var err error
		if tMid, err = policy.Select(grid, cp); err != nil {
			return Result{}, err
		}
		if err := checkRange(tLow, tMid, tHigh); err != nil {
			return Result{}, err
		}
	}

	low, high, _, err := fitRanges(grid, cp, tMid)
	if err != nil {
		return Result{}, err
	}

	anchor := cfg.Anchor
	if anchor == 0 {
		anchor = tLow
	}
	if !(anchor > 0) || math.IsInf(anchor, 0) {
		return Result{}, &InvalidRangeError{
			TLow: tLow, TMid: tMid, THigh: tHigh,
			Msg: "anchor temperature must be positive",
		}
	}
	ref, err := sample(s, anchor)
	if err != nil {
		return Result{}, err
	}
	low[5] = (ref.HoRT - low.hoRTPoly(anchor)) * anchor
	low[6] = ref.SoR - low.soRPoly(anchor)
	high[5] = (low.HoRT(tMid) - high.hoRTPoly(tMid)) * tMid
	high[6] = low.SoR(tMid) - high.soRPoly(tMid)

	p := Polynomial{TLow: tLow, TMid: tMid, THigh: tHigh, Low: low, High: high}
	return Result{Polynomial: p, Quality: assess(p, samples)}, nil
}

func checkRange(tLow, tMid, tHigh float64) error {
	bad := func(msg string) error {
		return &InvalidRangeError{TLow: tLow, TMid: tMid, THigh: tHigh, Msg: msg}
	}
	switch {
	case !(tLow > 0) || math.IsInf(tLow, 0) || math.IsInf(tHigh, 0) || math.IsNaN(tHigh):
		return bad("bounds must be positive and finite")
	case tLow >= tHigh:
		return bad("T_low must be below T_high")
	case tMid != 0 && !(tLow < tMid && tMid < tHigh):
		return bad("T_mid must lie strictly between T_low and T_high")
	}
	return nil
}

// sample calls s and rejects non-finite values
func sample(s thermo.Sampler, T float64) (thermo.Sample, error) {
	smp := s.Sample(T)
	smp.T = T
	for _, q := range []struct {
		name string
		v    float64
	}{{"Cp/R", smp.CpoR}, {"H/RT", smp.HoRT}, {"S/R", smp.SoR}} {
		if math.IsNaN(q.v) || math.IsInf(q.v, 0) {
			return smp, &NonFiniteSampleError{T: T, Quantity: q.name, Value: q.v}
		}
	}
	return smp, nil
}

// fitRanges splits the grid at tMid and fits Cp/R in each range, returning
// the combined sum of squared residuals
func fitRanges(T, cp []float64, tMid float64) (low, high Coeffs, sse float64, err error) {
	var tl, cl, th, ch []float64
	for i, t := range T {
		if t <= tMid {
			tl = append(tl, t)
			cl = append(cl, cp[i])
		} else {
			th = append(th, t)
			ch = append(ch, cp[i])
		}
	}
	lowCp, sseLow, err := fitCpoR(tl, cl)
	if err != nil {
		return low, high, 0, rangeErr(err, "low")
	}
	highCp, sseHigh, err := fitCpoR(th, ch)
	if err != nil {
		return low, high, 0, rangeErr(err, "high")
	}
	copy(low[:], lowCp[:])
	copy(high[:], highCp[:])
	return low, high, sseLow + sseHigh, nil
}

func rangeErr(err error, name string) error {
	var ide *InsufficientDataError
	if errors.As(err, &ide) {
		ide.Range = name
	}
	return err
}

// fitCpoR fits a degree-4 polynomial in T to cp by least squares. The
// abscissa is mapped onto [-1, 1] for conditioning and the solution is
// expanded back into powers of T.
func fitCpoR(T, cp []float64) (a [numCp]float64, sse float64, err error) {
	n := len(T)
	if n < numCp {
		return a, 0, &InsufficientDataError{Points: n}
	}
	lo, hi := floats.Min(T), floats.Max(T)
	c, h := (lo+hi)/2, (hi-lo)/2
	if h == 0 {
		return a, 0, &InsufficientDataError{Points: n}
	}
	v := mat.NewDense(n, numCp, nil)
	for i, t := range T {
		x, p := (t-c)/h, 1.0
		for j := 0; j < numCp; j++ {
			v.Set(i, j, p)
			p *= x
		}
	}
	var svd mat.SVD
	if !svd.Factorize(v, mat.SVDThin) {
		return a, 0, errNoConvergence
	}
	if rank := svd.Rank(rcond); rank < numCp {
		return a, 0, &InsufficientDataError{Points: n}
	}
	b := mat.NewVecDense(n, cp)
	var x mat.VecDense
	svd.SolveVecTo(&x, b, numCp)

	var r mat.VecDense
	r.MulVec(v, &x)
	r.SubVec(&r, b)
	sse = mat.Dot(&r, &r)

	// sum_j x_j ((T-c)/h)^j = sum_k a_k T^k
	for j := 0; j < numCp; j++ {
		xj := x.AtVec(j) / math.Pow(h, float64(j))
		for k := 0; k <= j; k++ {
			a[k] += xj * float64(combin.Binomial(j, k)) * math.Pow(-c, float64(j-k))
		}
	}
	return a, sse, nil
}
