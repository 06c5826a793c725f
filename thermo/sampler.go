package thermo

// Sample is the dimensionless state of a species at temperature T
type Sample struct {
	T    float64
	CpoR float64
	HoRT float64
	SoR  float64
}

// Sampler yields thermodynamic samples at arbitrary temperatures. It must be
// a pure function of T; guarding numerically delicate temperatures is the
// Sampler's job, and values it cannot produce are returned as NaN.
type Sampler interface {
	Sample(T float64) Sample
}

// SamplerFunc adapts a function to the Sampler interface
type SamplerFunc func(T float64) Sample

func (f SamplerFunc) Sample(T float64) Sample {
	return f(T)
}

type offsetSampler struct {
	Sampler
	hoR float64
}

func (o offsetSampler) Sample(T float64) Sample {
	s := o.Sampler.Sample(T)
	s.HoRT += o.hoR / T
	return s
}

// WithOffset shifts the enthalpy of s by hoR, an enthalpy divided by the gas
// constant (K). Heat capacity and entropy are unchanged.
func WithOffset(s Sampler, hoR float64) Sampler {
	if hoR == 0 {
		return s
	}
	return offsetSampler{Sampler: s, hoR: hoR}
}
