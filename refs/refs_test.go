package refs

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"strconv"
	"testing"

	"github.com/skasiraj/pMuTT/thermo"
)

func ref(t *testing.T, name string, elements map[string]int, h0oR, hortRef float64) Reference {
	t.Helper()
	r := thermo.Record{
		"name":           {name},
		"phase":          {"G"},
		"statmech_model": {"Constant"},
		"CpoR":           {"3.5"},
		"H0oR":           {strconv.FormatFloat(h0oR, 'g', -1, 64)},
		"T_ref":          {"298"},
		"HoRT_ref":       {strconv.FormatFloat(hortRef, 'g', -1, 64)},
	}
	for e, n := range elements {
		r["elements."+e] = []string{strconv.Itoa(n)}
	}
	got, err := FromRecord(r)
	if err != nil {
		t.Fatalf("FromRecord(%s): %v", name, err)
	}
	return got
}

func testRefs(t *testing.T) []Reference {
	return []Reference{
		ref(t, "IPA", map[string]int{"C": 3, "H": 8, "O": 1}, -738460, -110.1078),
		ref(t, "H2O", map[string]int{"H": 2, "O": 1}, -165030, -97.606043),
		ref(t, "H2", map[string]int{"H": 2}, -78445, 0),
	}
}

func TestSolveResidual(t *testing.T) {
	refs := testRefs(t)
	offsets, err := Solve(refs)
	if err != nil {
		t.Fatalf("got an error %v, but didn't want one", err)
	}
	for _, r := range refs {
		s, err := r.Sampler()
		if err != nil {
			t.Fatal(err)
		}
		lhs := s.Sample(r.TRef).HoRT
		for e, n := range r.Elements {
			lhs += float64(n) * offsets[e]
		}
		if math.Abs(lhs-r.HoRTRef) > 1e-9 {
			t.Errorf("%s: got %v, wanted %v", r.Name, lhs, r.HoRTRef)
		}
	}
}

func TestSolveOrderInvariant(t *testing.T) {
	refs := testRefs(t)
	want, err := Solve(refs)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 5; i++ {
		rng.Shuffle(len(refs), func(i, j int) { refs[i], refs[j] = refs[j], refs[i] })
		got, err := Solve(refs)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, wanted %v", got, want)
		}
	}
}

func TestSolveDoesNotMutate(t *testing.T) {
	refs := testRefs(t)
	names := []string{refs[0].Name, refs[1].Name, refs[2].Name}
	if _, err := Solve(refs); err != nil {
		t.Fatal(err)
	}
	got := []string{refs[0].Name, refs[1].Name, refs[2].Name}
	if !reflect.DeepEqual(got, names) {
		t.Errorf("got %v, wanted %v", got, names)
	}
}

func TestSolveErrors(t *testing.T) {
	t.Run("under-determined", func(t *testing.T) {
		_, err := Solve(testRefs(t)[:2])
		var rse *ReferenceSetError
		if !errors.As(err, &rse) {
			t.Fatalf("got %v, wanted a ReferenceSetError", err)
		}
		if rse.References != 2 || len(rse.Elements) != 3 {
			t.Errorf("got %d refs %v, wanted 2 refs over 3 elements", rse.References, rse.Elements)
		}
	})
	t.Run("over-determined", func(t *testing.T) {
		refs := append(testRefs(t), ref(t, "H2b", map[string]int{"H": 2}, -78000, 0))
		var rse *ReferenceSetError
		if _, err := Solve(refs); !errors.As(err, &rse) {
			t.Errorf("got %v, wanted a ReferenceSetError", err)
		}
	})
	t.Run("mixed temperatures", func(t *testing.T) {
		refs := testRefs(t)
		refs[1].TRef = 300
		var rse *ReferenceSetError
		if _, err := Solve(refs); !errors.As(err, &rse) {
			t.Errorf("got %v, wanted a ReferenceSetError", err)
		}
	})
	t.Run("empty", func(t *testing.T) {
		var rse *ReferenceSetError
		if _, err := Solve(nil); !errors.As(err, &rse) {
			t.Errorf("got %v, wanted a ReferenceSetError", err)
		}
	})
	t.Run("singular", func(t *testing.T) {
		refs := []Reference{
			ref(t, "H2O", map[string]int{"H": 2, "O": 1}, -165030, -97.606043),
			ref(t, "H4O2", map[string]int{"H": 4, "O": 2}, -330000, -195),
		}
		var sse *SingularSystemError
		if _, err := Solve(refs); !errors.As(err, &sse) {
			t.Errorf("got %v, wanted a SingularSystemError", err)
		}
	})
}

func TestSetSampler(t *testing.T) {
	refs := testRefs(t)
	set, err := New(refs)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range refs {
		s, err := set.Sampler(r.Species)
		if err != nil {
			t.Fatal(err)
		}
		if got := s.Sample(r.TRef).HoRT; math.Abs(got-r.HoRTRef) > 1e-9 {
			t.Errorf("%s: got %v, wanted %v", r.Name, got, r.HoRTRef)
		}
	}
	t.Run("offset scales with temperature", func(t *testing.T) {
		comp := map[string]int{"H": 2, "O": 1}
		at298, _ := set.HoRTOffset(comp, 298)
		at596, _ := set.HoRTOffset(comp, 596)
		if math.Abs(at298-2*at596) > 1e-9 {
			t.Errorf("got %v and %v, wanted a factor of 2", at298, at596)
		}
	})
	t.Run("missing element", func(t *testing.T) {
		sp := thermo.Species{
			Name:     "NH3",
			Elements: map[string]int{"N": 1, "H": 3},
			Model:    thermo.Model{Kind: thermo.Constant},
		}
		var mee *MissingElementError
		if _, err := set.Sampler(sp); !errors.As(err, &mee) || mee.Element != "N" {
			t.Errorf("got %v, wanted a MissingElementError for N", err)
		}
	})
}

func TestHoROffsetOrder(t *testing.T) {
	// 1e16 + 1 rounds back to 1e16, so only A, B, C in order sums to 1
	set := &Set{TRef: 1, Offsets: map[string]float64{"A": 1e16, "B": -1e16, "C": 1}}
	elements := map[string]int{"A": 1, "B": 1, "C": 1}
	for i := 0; i < 50; i++ {
		got, err := set.HoROffset(elements)
		if err != nil {
			t.Fatal(err)
		}
		if got != 1 {
			t.Fatalf("got %v, wanted %v", got, 1.0)
		}
	}
}
