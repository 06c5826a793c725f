package thermo

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// ModelKind selects the evaluator for a Model
type ModelKind int

// Known model kinds. Harmonic and IdealGas are the statistical-mechanics
// models named in input records; their evaluators are provided by the caller
// through SetEvaluator.
const (
	Tabulated ModelKind = iota
	Constant
	Nasa
	Harmonic
	IdealGas
	NumModels
)

func (k ModelKind) String() string {
	if k < 0 || k >= NumModels {
		return "ModelKind(" + strconv.Itoa(int(k)) + ")"
	}
	return [...]string{
		"Tabulated",
		"Constant",
		"Nasa",
		"Harmonic",
		"IdealGas",
	}[k]
}

// ParseModelKind matches s against the model names, ignoring case
func ParseModelKind(s string) (ModelKind, error) {
	s = strings.TrimSpace(s)
	for k := ModelKind(0); k < NumModels; k++ {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown statmech model %q", s)
}

// Params holds the raw model parameters of a record, keyed by column
type Params map[string][]string

// Floats parses every non-empty value under key
func (p Params) Floats(key string) ([]float64, error) {
	vals, ok := p[key]
	if !ok {
		return nil, &FieldError{Field: key, Err: ErrMissingField}
	}
	ret := make([]float64, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, &FieldError{Field: key, Err: err}
		}
		ret = append(ret, f)
	}
	if len(ret) == 0 {
		return nil, &FieldError{Field: key, Err: ErrMissingField}
	}
	return ret, nil
}

// Float returns the single value under key, or def when key is absent
func (p Params) Float(key string, def float64) (float64, error) {
	if _, ok := p[key]; !ok {
		return def, nil
	}
	fs, err := p.Floats(key)
	if err != nil {
		return 0, err
	}
	if len(fs) != 1 {
		return 0, &FieldError{Field: key, Err: fmt.Errorf("want 1 value, got %d", len(fs))}
	}
	return fs[0], nil
}

// Model is a tagged variant over the supported thermodynamic models
type Model struct {
	Kind   ModelKind
	Params Params
}

// Evaluator turns model parameters into a Sampler
type Evaluator func(Params) (Sampler, error)

var (
	evalMu     sync.RWMutex
	evaluators = [NumModels]Evaluator{
		Tabulated: newTabulated,
		Constant:  newConstant,
	}
)

// SetEvaluator installs ev for kind, replacing any previous evaluator.
// Passing a nil ev removes it.
func SetEvaluator(kind ModelKind, ev Evaluator) {
	if kind < 0 || kind >= NumModels {
		panic("thermo: SetEvaluator with unknown kind " + kind.String())
	}
	evalMu.Lock()
	evaluators[kind] = ev
	evalMu.Unlock()
}

// Sampler evaluates m with the evaluator registered for its kind
func (m Model) Sampler() (Sampler, error) {
	if m.Kind < 0 || m.Kind >= NumModels {
		return nil, fmt.Errorf("%w %v", ErrNoEvaluator, m.Kind)
	}
	evalMu.RLock()
	ev := evaluators[m.Kind]
	evalMu.RUnlock()
	if ev == nil {
		return nil, fmt.Errorf("%w %v", ErrNoEvaluator, m.Kind)
	}
	return ev(m.Params)
}
