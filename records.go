package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/skasiraj/pMuTT/refs"
	"github.com/skasiraj/pMuTT/thermo"
)

// LoadRecords reads a YAML list of species rows. Nested mappings are
// flattened to dotted keys, so
//
//	elements: {C: 3, H: 8}
//
// and
//
//	elements.C: 3
//	elements.H: 8
//
// give the same record. Sequences become repeated values and nulls are
// dropped.
func LoadRecords(filename string) ([]thermo.Record, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseRecords(data)
}

// ParseRecords is LoadRecords on an in-memory document
func ParseRecords(data []byte) ([]thermo.Record, error) {
	var rows []map[string]any
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("records: %w", err)
	}
	records := make([]thermo.Record, 0, len(rows))
	for i, row := range rows {
		r := make(thermo.Record)
		if err := flatten(r, "", row); err != nil {
			return nil, fmt.Errorf("records: row %d: %w", i+1, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func flatten(r thermo.Record, prefix string, v any) error {
	switch v := v.(type) {
	case nil:
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if err := flatten(r, key, v[k]); err != nil {
				return err
			}
		}
	case []any:
		for _, e := range v {
			switch e.(type) {
			case map[string]any, []any:
				return fmt.Errorf("%s: nested value in list", prefix)
			}
			if err := flatten(r, prefix, e); err != nil {
				return err
			}
		}
	default:
		if prefix == "" {
			return fmt.Errorf("scalar row %v", v)
		}
		r[prefix] = append(r[prefix], scalar(v))
	}
	return nil
}

func scalar(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return fmt.Sprint(v)
}

// LoadSpecies reads the species to fit from filename
func LoadSpecies(filename string) ([]thermo.Species, error) {
	records, err := LoadRecords(filename)
	if err != nil {
		return nil, err
	}
	species := make([]thermo.Species, len(records))
	for i, r := range records {
		if species[i], err = thermo.NewSpecies(r); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}
	return species, nil
}

// LoadReferences reads the reference species in filename and solves for
// their element offsets. An empty filename yields a nil Set, which applies
// no offset.
func LoadReferences(filename string) (*refs.Set, error) {
	if filename == "" {
		return nil, nil
	}
	records, err := LoadRecords(filename)
	if err != nil {
		return nil, err
	}
	references := make([]refs.Reference, len(records))
	for i, r := range records {
		if references[i], err = refs.FromRecord(r); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}
	set, err := refs.New(references)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return set, nil
}
