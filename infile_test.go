package main

import (
	"reflect"
	"runtime"
	"testing"

	"github.com/skasiraj/pMuTT/nasa"
)

func TestParseInfile(t *testing.T) {
	got, err := ParseInfile("testfiles/sample.in")
	if err != nil {
		t.Fatalf("got an error %v, but didn't want one", err)
	}
	want := map[Key]string{
		SpeciesKey:   "testfiles/species.yaml",
		RefsKey:      "testfiles/references.yaml",
		OutputKey:    "testfiles/thermdat.out",
		TLowKey:      "300",
		THighKey:     "1100",
		TRefKey:      "300",
		PointsKey:    "50",
		MidpointKey:  "Bisect",
		CodeKey:      "20181106",
		ConcJobKey:   "2",
		MaxRelDevKey: "0.005",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, wanted %#v\n", got, want)
	}
}

func TestNewConfig(t *testing.T) {
	keymap, err := ParseInfile("testfiles/sample.in")
	if err != nil {
		t.Fatal(err)
	}
	got, err := NewConfig(keymap)
	if err != nil {
		t.Fatalf("got an error %v, but didn't want one", err)
	}
	want := Config{
		Species:    "testfiles/species.yaml",
		References: "testfiles/references.yaml",
		Output:     "testfiles/thermdat.out",
		TLow:       300,
		THigh:      1100,
		TRef:       300,
		Points:     50,
		Midpoint:   nasa.Bisect{},
		Code:       "20181106",
		ConcJobs:   2,
		MaxRelDev:  0.005,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, wanted %#v\n", got, want)
	}
}

func TestNewConfigDefaults(t *testing.T) {
	got, err := NewConfig(map[Key]string{
		SpeciesKey: "s.yaml",
		TLowKey:    "300",
		THighKey:   "1100",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Output != "thermdat" || got.Points != nasa.DefaultPoints ||
		got.Midpoint != (nasa.MinResidual{}) || got.ConcJobs != runtime.NumCPU() {
		t.Errorf("got %#v", got)
	}
}

func TestNewConfigErrors(t *testing.T) {
	base := func() map[Key]string {
		return map[Key]string{SpeciesKey: "s.yaml", TLowKey: "300", THighKey: "1100"}
	}
	tests := []struct {
		name string
		edit func(map[Key]string)
	}{
		{"missing species", func(m map[Key]string) { delete(m, SpeciesKey) }},
		{"missing tlow", func(m map[Key]string) { delete(m, TLowKey) }},
		{"bad float", func(m map[Key]string) { m[THighKey] = "hot" }},
		{"bad int", func(m map[Key]string) { m[PointsKey] = "many" }},
		{"no workers", func(m map[Key]string) { m[ConcJobKey] = "0" }},
		{"bad policy", func(m map[Key]string) { m[MidpointKey] = "golden" }},
		{"tref below tlow", func(m map[Key]string) { m[TRefKey] = "298.15" }},
		{"tref above thigh", func(m map[Key]string) { m[TRefKey] = "1200" }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := base()
			test.edit(m)
			if _, err := NewConfig(m); err == nil {
				t.Errorf("wanted an error, but didn't get one")
			}
		})
	}
}
