package main

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"github.com/skasiraj/pMuTT/nasa"
)

// Key is a custom type used as the keys in the Input map
type Key int

// Keys for Input map
const (
	SpeciesKey Key = iota
	RefsKey
	OutputKey
	TLowKey
	THighKey
	TMidKey
	TRefKey
	PointsKey
	MidpointKey
	CodeKey
	ConcJobKey
	MaxRelDevKey
	NumKeys
)

func (k Key) String() string {
	return [...]string{
		"SpeciesKey",
		"RefsKey",
		"OutputKey",
		"TLowKey",
		"THighKey",
		"TMidKey",
		"TRefKey",
		"PointsKey",
		"MidpointKey",
		"CodeKey",
		"ConcJobKey",
		"MaxRelDevKey",
	}[k]
}

// Regexp consists of an embedded *regexp.Regexp and an associated Key
type Regexp struct {
	*regexp.Regexp
	Name Key
}

var keywords = []Regexp{
	{regexp.MustCompile(`(?i)^\s*species\s*=`), SpeciesKey},
	{regexp.MustCompile(`(?i)^\s*references\s*=`), RefsKey},
	{regexp.MustCompile(`(?i)^\s*output\s*=`), OutputKey},
	{regexp.MustCompile(`(?i)^\s*tlow\s*=`), TLowKey},
	{regexp.MustCompile(`(?i)^\s*thigh\s*=`), THighKey},
	{regexp.MustCompile(`(?i)^\s*tmid\s*=`), TMidKey},
	{regexp.MustCompile(`(?i)^\s*tref\s*=`), TRefKey},
	{regexp.MustCompile(`(?i)^\s*points\s*=`), PointsKey},
	{regexp.MustCompile(`(?i)^\s*midpoint\s*=`), MidpointKey},
	{regexp.MustCompile(`(?i)^\s*code\s*=`), CodeKey},
	{regexp.MustCompile(`(?i)^\s*concjobs\s*=`), ConcJobKey},
	{regexp.MustCompile(`(?i)^\s*maxreldev\s*=`), MaxRelDevKey},
}

// ReadFile returns the lines of filename with surrounding whitespace
// trimmed from the file as a whole
func ReadFile(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n"), nil
}

// ParseInfile parses filename and loads matching keywords into the
// returned map. Lines starting with # are comments.
func ParseInfile(filename string) (map[Key]string, error) {
	lines, err := ReadFile(filename)
	if err != nil {
		return nil, err
	}
	keymap := map[Key]string{}
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 1 || line[0] == '#' {
			continue
		}
		matched := false
		for _, kword := range keywords {
			if kword.MatchString(line) {
				_, val, _ := strings.Cut(line, "=")
				keymap[kword.Name] = strings.TrimSpace(val)
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("%s:%d: unrecognized keyword in %q", filename, i+1, line)
		}
	}
	return keymap, nil
}

// Config is the validated form of an infile
type Config struct {
	Species    string
	References string
	Output     string
	TLow       float64
	THigh      float64
	// TMid of zero selects T_mid with Midpoint
	TMid float64
	// TRef anchors H and S of the low range and must lie in [TLow, THigh];
	// zero means TLow
	TRef      float64
	Points    int
	Midpoint  nasa.MidpointPolicy
	Code      string
	ConcJobs  int
	MaxRelDev float64
}

// NewConfig fills a Config from an infile keymap, applying defaults for
// missing optional keys
func NewConfig(keymap map[Key]string) (Config, error) {
	cfg := Config{
		Output:    "thermdat",
		Points:    nasa.DefaultPoints,
		Midpoint:  nasa.MinResidual{},
		ConcJobs:  runtime.NumCPU(),
		MaxRelDev: 0.01,
	}
	for _, k := range []Key{SpeciesKey, TLowKey, THighKey} {
		if keymap[k] == "" {
			return cfg, fmt.Errorf("infile: missing required key %v", k)
		}
	}
	cfg.Species = keymap[SpeciesKey]
	cfg.References = keymap[RefsKey]
	if v, ok := keymap[OutputKey]; ok {
		cfg.Output = v
	}
	cfg.Code = keymap[CodeKey]

	floatKeys := []struct {
		key Key
		dst *float64
	}{
		{TLowKey, &cfg.TLow},
		{THighKey, &cfg.THigh},
		{TMidKey, &cfg.TMid},
		{TRefKey, &cfg.TRef},
		{MaxRelDevKey, &cfg.MaxRelDev},
	}
	for _, f := range floatKeys {
		v, ok := keymap[f.key]
		if !ok {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("infile: %v: %w", f.key, err)
		}
		*f.dst = x
	}
	intKeys := []struct {
		key Key
		dst *int
	}{
		{PointsKey, &cfg.Points},
		{ConcJobKey, &cfg.ConcJobs},
	}
	for _, f := range intKeys {
		v, ok := keymap[f.key]
		if !ok {
			continue
		}
		x, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("infile: %v: %w", f.key, err)
		}
		*f.dst = x
	}
	if cfg.TRef != 0 && (cfg.TRef < cfg.TLow || cfg.TRef > cfg.THigh) {
		return cfg, fmt.Errorf("infile: %v %v outside [%v, %v]", TRefKey, cfg.TRef, cfg.TLow, cfg.THigh)
	}
	if cfg.ConcJobs < 1 {
		return cfg, fmt.Errorf("infile: %v must be at least 1", ConcJobKey)
	}
	if v, ok := keymap[MidpointKey]; ok {
		policy, err := ParseMidpoint(v)
		if err != nil {
			return cfg, err
		}
		cfg.Midpoint = policy
	}
	return cfg, nil
}

// ParseMidpoint maps a policy name to a nasa.MidpointPolicy
func ParseMidpoint(s string) (nasa.MidpointPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bisect":
		return nasa.Bisect{}, nil
	case "minresidual", "":
		return nasa.MinResidual{}, nil
	}
	return nil, fmt.Errorf("infile: unknown midpoint policy %q", s)
}
