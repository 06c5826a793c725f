// Package refs solves for per-element enthalpy offsets that align ab-initio
// energies with a standard thermochemical reference state.
package refs

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/skasiraj/pMuTT/thermo"
)

// Record keys of a reference row
const (
	TRefKey    = "T_ref"
	HoRTRefKey = "HoRT_ref"
)

// Reference is a species with a known dimensionless enthalpy at TRef
type Reference struct {
	thermo.Species
	TRef    float64
	HoRTRef float64
}

// FromRecord builds a Reference from a flattened input row
func FromRecord(r thermo.Record) (Reference, error) {
	sp, err := thermo.NewSpecies(r)
	if err != nil {
		return Reference{}, err
	}
	tref, err := r.Float(TRefKey)
	if err != nil {
		return Reference{}, err
	}
	if !(tref > 0) || math.IsInf(tref, 0) {
		return Reference{}, &thermo.FieldError{
			Record: sp.Name, Field: TRefKey,
			Err: fmt.Errorf("reference temperature %v is not positive", tref),
		}
	}
	hort, err := r.Float(HoRTRefKey)
	if err != nil {
		return Reference{}, err
	}
	return Reference{Species: sp, TRef: tref, HoRTRef: hort}, nil
}

// Set holds the offsets solved from a list of references. It is read-only
// after New returns and safe for concurrent use.
type Set struct {
	// TRef is the temperature at which Offsets are dimensionless
	TRef float64
	// Offsets maps element symbols to H/RT offsets at TRef
	Offsets map[string]float64
}

// New solves refs and returns the resulting Set
func New(refs []Reference) (*Set, error) {
	offsets, err := Solve(refs)
	if err != nil {
		return nil, err
	}
	return &Set{TRef: refs[0].TRef, Offsets: offsets}, nil
}

// Solve returns the element offsets that make the corrected enthalpy of each
// reference equal its HoRTRef:
//
//	HoRTRef[i] = sum_e count[i][e]*offset[e] + HoRT_model[i](TRef)
//
// The system must be square. Rows are sorted by name and columns by element
// symbol so the result does not depend on the order of refs.
func Solve(refs []Reference) (map[string]float64, error) {
	if len(refs) == 0 {
		return nil, &ReferenceSetError{Msg: "no references"}
	}
	tref := refs[0].TRef
	seen := make(map[string]bool)
	var elements []string
	for _, ref := range refs {
		if ref.TRef != tref {
			return nil, &ReferenceSetError{
				Msg: fmt.Sprintf("mixed reference temperatures %v K and %v K (%s)",
					tref, ref.TRef, ref.Name),
			}
		}
		for _, e := range ref.Symbols() {
			if !seen[e] {
				seen[e] = true
				elements = append(elements, e)
			}
		}
	}
	sort.Strings(elements)
	if len(elements) != len(refs) {
		return nil, &ReferenceSetError{
			References: len(refs),
			Elements:   elements,
		}
	}

	sorted := make([]Reference, len(refs))
	copy(sorted, refs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	n := len(sorted)
	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	for i, ref := range sorted {
		s, err := ref.Sampler()
		if err != nil {
			return nil, err
		}
		hort := s.Sample(tref).HoRT
		if math.IsNaN(hort) || math.IsInf(hort, 0) {
			return nil, fmt.Errorf("reference %s: non-finite H/RT %v at %v K", ref.Name, hort, tref)
		}
		for j, e := range elements {
			a.Set(i, j, float64(ref.Elements[e]))
		}
		b.SetVec(i, ref.HoRTRef-hort)
	}

	var lu mat.LU
	lu.Factorize(a)
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, b); err != nil {
		var cond mat.Condition
		if errors.Is(err, mat.ErrSingular) || errors.As(err, &cond) {
			return nil, &SingularSystemError{Elements: elements, Err: err}
		}
		return nil, err
	}
	offsets := make(map[string]float64, n)
	for j, e := range elements {
		offsets[e] = x.AtVec(j)
	}
	return offsets, nil
}

// HoROffset returns the enthalpy offset of a composition divided by the gas
// constant, in K. Every element with a non-zero count must have an offset.
// Terms are summed in symbol order.
func (s *Set) HoROffset(elements map[string]int) (float64, error) {
	symbols := make([]string, 0, len(elements))
	for e, n := range elements {
		if n != 0 {
			symbols = append(symbols, e)
		}
	}
	sort.Strings(symbols)
	var sum float64
	for _, e := range symbols {
		n := elements[e]
		off, ok := s.Offsets[e]
		if !ok {
			return 0, &MissingElementError{Element: e}
		}
		sum += float64(n) * off
	}
	return sum * s.TRef, nil
}

// HoRTOffset is HoROffset expressed as H/RT at temperature T
func (s *Set) HoRTOffset(elements map[string]int, T float64) (float64, error) {
	hoR, err := s.HoROffset(elements)
	if err != nil {
		return 0, err
	}
	return hoR / T, nil
}

// Sampler evaluates the model of sp and applies its reference offset. A nil
// Set applies no offset.
func (s *Set) Sampler(sp thermo.Species) (thermo.Sampler, error) {
	sampler, err := sp.Sampler()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return sampler, nil
	}
	hoR, err := s.HoROffset(sp.Elements)
	if err != nil {
		return nil, fmt.Errorf("species %s: %w", sp.Name, err)
	}
	return thermo.WithOffset(sampler, hoR), nil
}
