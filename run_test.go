package main

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/skasiraj/pMuTT/nasa"
	"github.com/skasiraj/pMuTT/thermdat"
	"github.com/skasiraj/pMuTT/thermo"
)

func testConfig(t *testing.T) Config {
	keymap, err := ParseInfile("testfiles/sample.in")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := NewConfig(keymap)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Output = filepath.Join(t.TempDir(), "thermdat")
	return cfg
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	var logs bytes.Buffer
	if err := Run(cfg, NewLogger(&logs, false)); err != nil {
		t.Fatalf("got an error %v, but didn't want one", err)
	}
	f, err := os.Open(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, _, err := thermdat.Read(f)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, sp := range got {
		names = append(names, sp.Name)
		if sp.Code != cfg.Code {
			t.Errorf("%s: got code %q, wanted %q", sp.Name, sp.Code, cfg.Code)
		}
		if sp.TLow != cfg.TLow || sp.THigh != cfg.THigh {
			t.Errorf("%s: got range %v-%v", sp.Name, sp.TLow, sp.THigh)
		}
	}
	if want := []string{"CH3CHOHCH3(S)", "H(S)", "H2O"}; !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, wanted %v\n", names, want)
	}

	// constant heat capacity is reproduced exactly, offset included
	set, err := LoadReferences(cfg.References)
	if err != nil {
		t.Fatal(err)
	}
	species, err := LoadSpecies(cfg.Species)
	if err != nil {
		t.Fatal(err)
	}
	s, err := set.Sampler(species[1])
	if err != nil {
		t.Fatal(err)
	}
	for _, T := range []float64{300, 650, 1100} {
		want := s.Sample(T)
		if math.Abs(got[1].CpoR(T)-want.CpoR) > 1e-6 {
			t.Errorf("Cp/R(%v): got %v, wanted %v", T, got[1].CpoR(T), want.CpoR)
		}
		if math.Abs(got[1].HoRT(T)-want.HoRT) > 1e-6*math.Abs(want.HoRT) {
			t.Errorf("H/RT(%v): got %v, wanted %v", T, got[1].HoRT(T), want.HoRT)
		}
		if math.Abs(got[1].SoR(T)-want.SoR) > 1e-6 {
			t.Errorf("S/R(%v): got %v, wanted %v", T, got[1].SoR(T), want.SoR)
		}
	}
	if !strings.Contains(logs.String(), "msg=wrote") {
		t.Errorf("missing write log in %q", logs.String())
	}
}

func TestFitAllOrder(t *testing.T) {
	cfg := testConfig(t)
	species, err := LoadSpecies(cfg.Species)
	if err != nil {
		t.Fatal(err)
	}
	logger := NewLogger(io.Discard, false)
	cfg.ConcJobs = 1
	want, err := FitAll(species, nil, cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	cfg.ConcJobs = 8
	got, err := FitAll(species, nil, cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestFitAllErrors(t *testing.T) {
	cfg := testConfig(t)
	species, err := LoadSpecies(cfg.Species)
	if err != nil {
		t.Fatal(err)
	}
	// tabulated data ends at 1150 K
	cfg.THigh = 1500
	var logs bytes.Buffer
	got, err := FitAll(species, nil, cfg, NewLogger(&logs, false))
	var nonFinite *nasa.NonFiniteSampleError
	if !errors.As(err, &nonFinite) {
		t.Fatalf("got %v, wanted a NonFiniteSampleError", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d fitted species, wanted 2", len(got))
	}
	if !strings.Contains(logs.String(), "level=ERROR") {
		t.Errorf("missing error log in %q", logs.String())
	}

	harmonic := thermo.Species{
		Name:     "CO(S)",
		Phase:    thermo.Surface,
		Elements: map[string]int{"C": 1, "O": 1},
		Model:    thermo.Model{Kind: thermo.Harmonic},
	}
	if _, err := FitAll([]thermo.Species{harmonic}, nil, cfg, NewLogger(io.Discard, false)); !errors.Is(err, thermo.ErrNoEvaluator) {
		t.Errorf("got %v, wanted %v", err, thermo.ErrNoEvaluator)
	}
}

func TestRunWritesNothingOnFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.THigh = 1500
	if err := Run(cfg, NewLogger(io.Discard, false)); err == nil {
		t.Fatal("wanted an error, but didn't get one")
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Errorf("got %v, wanted no output file", err)
	}
}

func TestPoorFitWarning(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxRelDev = 0
	species, err := LoadSpecies(cfg.Species)
	if err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	if _, err := FitAll(species[:1], nil, cfg, NewLogger(&logs, false)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), `msg="poor fit"`) {
		t.Errorf("missing warning in %q", logs.String())
	}
}
