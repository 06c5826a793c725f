package nasa

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/skasiraj/pMuTT/thermo"
)

// Quality describes how well a Polynomial reproduces its samples. It is
// advisory: Fit never fails because of it.
type Quality struct {
	// absolute differences between the low and high ranges at T_mid
	CpoRJump float64
	HoRTJump float64
	SoRJump  float64
	// MaxRelDev is the largest of the three jumps relative to the value
	MaxRelDev float64

	// deviations from the samples over the fitting grid
	CpoRRMSE   float64
	MaxCpoRErr float64
	MaxHoRTErr float64
	MaxSoRErr  float64
}

func relDev(a, b float64) float64 {
	d := math.Abs(a - b)
	if d == 0 {
		return 0
	}
	return d / math.Max(math.Abs(a), math.Abs(b))
}

func assess(p Polynomial, samples []thermo.Sample) (q Quality) {
	t := p.TMid
	lc, hc := p.Low.CpoR(t), p.High.CpoR(t)
	lh, hh := p.Low.HoRT(t), p.High.HoRT(t)
	ls, hs := p.Low.SoR(t), p.High.SoR(t)
	q.CpoRJump = math.Abs(lc - hc)
	q.HoRTJump = math.Abs(lh - hh)
	q.SoRJump = math.Abs(ls - hs)
	q.MaxRelDev = math.Max(relDev(lc, hc), math.Max(relDev(lh, hh), relDev(ls, hs)))

	sq := make([]float64, len(samples))
	for i, s := range samples {
		fit := p.Sample(s.T)
		dc := fit.CpoR - s.CpoR
		sq[i] = dc * dc
		q.MaxCpoRErr = math.Max(q.MaxCpoRErr, math.Abs(dc))
		q.MaxHoRTErr = math.Max(q.MaxHoRTErr, math.Abs(fit.HoRT-s.HoRT))
		q.MaxSoRErr = math.Max(q.MaxSoRErr, math.Abs(fit.SoR-s.SoR))
	}
	if len(sq) > 0 {
		q.CpoRRMSE = math.Sqrt(stat.Mean(sq, nil))
	}
	return q
}
