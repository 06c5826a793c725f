package thermo

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Phase is the single-letter thermdat phase code
type Phase string

const (
	Gas     Phase = "G"
	Surface Phase = "S"
	Liquid  Phase = "L"
)

// ParsePhase accepts either the thermdat letter or the spelled-out name
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "g", "gas":
		return Gas, nil
	case "s", "surface":
		return Surface, nil
	case "l", "liquid":
		return Liquid, nil
	}
	return "", fmt.Errorf("unknown phase %q", s)
}

// Species is a named chemical species with its composition and the model
// used to sample its thermodynamic functions. Construct it with NewSpecies;
// the maps are copied so the value can be shared between goroutines.
type Species struct {
	Name     string
	Phase    Phase
	Elements map[string]int
	Model    Model
}

// Record keys with a fixed meaning
const (
	NameKey     = "name"
	PhaseKey    = "phase"
	ModelKey    = "statmech_model"
	ElementsKey = "elements."
)

// Record is one flattened input row. Repeated columns, such as the
// vibrational wavenumbers, accumulate in order under the same key.
type Record map[string][]string

// Get returns the first non-empty value stored under key
func (r Record) Get(key string) (string, bool) {
	for _, v := range r[key] {
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}
	return "", false
}

// Float parses the first value under key
func (r Record) Float(key string) (float64, error) {
	v, ok := r.Get(key)
	if !ok {
		return 0, r.fieldErr(key, ErrMissingField)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, r.fieldErr(key, err)
	}
	return f, nil
}

// Name is the record's species name, or "" when absent
func (r Record) Name() string {
	name, _ := r.Get(NameKey)
	return name
}

func (r Record) fieldErr(key string, err error) error {
	return &FieldError{Record: r.Name(), Field: key, Err: err}
}

// MaxCount is the largest element count a species may carry
const MaxCount = 999

// Elements extracts the elements.<Symbol> columns. Counts must be whole
// numbers; zero counts are dropped.
func (r Record) Elements() (map[string]int, error) {
	elements := make(map[string]int)
	for key := range r {
		if !strings.HasPrefix(key, ElementsKey) {
			continue
		}
		symbol := strings.TrimPrefix(key, ElementsKey)
		v, ok := r.Get(key)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, r.fieldErr(key, err)
		}
		if f < 0 || f != math.Trunc(f) {
			return nil, r.fieldErr(key, fmt.Errorf("count %v is not a non-negative integer", f))
		}
		if f > MaxCount {
			return nil, r.fieldErr(key, fmt.Errorf("count %v exceeds %d", f, MaxCount))
		}
		if symbol == "" {
			return nil, r.fieldErr(key, fmt.Errorf("empty element symbol"))
		}
		if f != 0 {
			elements[symbol] = int(f)
		}
	}
	return elements, nil
}

// NewSpecies builds a Species from a record. Every column that is not one of
// the fixed keys is kept as a model parameter.
func NewSpecies(r Record) (Species, error) {
	name, ok := r.Get(NameKey)
	if !ok {
		return Species{}, r.fieldErr(NameKey, ErrMissingField)
	}
	p, ok := r.Get(PhaseKey)
	if !ok {
		return Species{}, r.fieldErr(PhaseKey, ErrMissingField)
	}
	phase, err := ParsePhase(p)
	if err != nil {
		return Species{}, r.fieldErr(PhaseKey, err)
	}
	elements, err := r.Elements()
	if err != nil {
		return Species{}, err
	}
	m, ok := r.Get(ModelKey)
	if !ok {
		return Species{}, r.fieldErr(ModelKey, ErrMissingField)
	}
	kind, err := ParseModelKind(m)
	if err != nil {
		return Species{}, r.fieldErr(ModelKey, err)
	}
	params := make(Params)
	for key, vals := range r {
		switch {
		case key == NameKey, key == PhaseKey, key == ModelKey:
		case strings.HasPrefix(key, ElementsKey):
		default:
			params[key] = append([]string(nil), vals...)
		}
	}
	return Species{
		Name:     name,
		Phase:    phase,
		Elements: elements,
		Model:    Model{Kind: kind, Params: params},
	}, nil
}

// Symbols returns the element symbols of s in alphabetical order
func (s Species) Symbols() []string {
	symbols := make([]string, 0, len(s.Elements))
	for sym, n := range s.Elements {
		if n != 0 {
			symbols = append(symbols, sym)
		}
	}
	sort.Strings(symbols)
	return symbols
}

// Sampler evaluates the species model
func (s Species) Sampler() (Sampler, error) {
	sampler, err := s.Model.Sampler()
	if err != nil {
		return nil, fmt.Errorf("species %s: %w", s.Name, err)
	}
	return sampler, nil
}
