package thermdat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/skasiraj/pMuTT/nasa"
	"github.com/skasiraj/pMuTT/thermo"
)

// Read parses a thermdat file. Blank lines and lines starting with '!' are
// skipped. Reading stops at END.
func Read(r io.Reader) ([]Species, Header, error) {
	var (
		h       Header
		species []Species
		group   []string
		start   int
		state   int // 0: want THERMO, 1: want temperatures, 2: species
	)
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || line[0] == '!' {
			continue
		}
		switch state {
		case 0:
			if !strings.HasPrefix(strings.ToUpper(line), "THERMO") {
				return nil, h, &ParseError{Line: n, Msg: "expected THERMO"}
			}
			state = 1
		case 1:
			f := strings.Fields(line)
			if len(f) < 3 {
				return nil, h, &ParseError{Line: n, Msg: "expected three global temperatures"}
			}
			temps := make([]float64, 3)
			for i := range temps {
				v, err := strconv.ParseFloat(f[i], 64)
				if err != nil {
					return nil, h, &ParseError{Line: n, Msg: "global temperature", Err: err}
				}
				temps[i] = v
			}
			h = Header{TLow: temps[0], TMid: temps[1], THigh: temps[2]}
			state = 2
		case 2:
			if len(group) == 0 && strings.EqualFold(strings.TrimSpace(line), "END") {
				return species, h, nil
			}
			if len(group) == 0 {
				start = n
			}
			group = append(group, line)
			if len(group) < 4 {
				continue
			}
			s, err := parseSpecies(group, start)
			if err != nil {
				return nil, h, err
			}
			species = append(species, s)
			group = group[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, h, err
	}
	if len(group) > 0 {
		return nil, h, &ParseError{Line: n, Msg: fmt.Sprintf("truncated species starting at line %d", start)}
	}
	return nil, h, &ParseError{Line: n, Msg: "missing END"}
}

func parseSpecies(lines []string, start int) (Species, error) {
	var s Species
	for i, l := range lines {
		if len(l) != lineLen || l[lineLen-1] != byte('1'+i) {
			return s, &ParseError{Line: start + i, Msg: fmt.Sprintf("expected sequence number %d in column %d", i+1, lineLen)}
		}
	}
	l := lines[0]
	s.Name = strings.TrimSpace(l[:nameWidth])
	s.Code = strings.TrimSpace(l[nameWidth : nameWidth+codeWidth])
	s.Elements = make(map[string]int)
	for c := elemCol; c+5 <= phaseCol; c += 5 {
		sym := strings.TrimSpace(l[c : c+2])
		if sym == "" {
			continue
		}
		count, err := strconv.ParseFloat(strings.TrimSpace(l[c+2:c+5]), 64)
		if err != nil {
			return s, &ParseError{Line: start, Msg: "element " + sym, Err: err}
		}
		if count != 0 {
			s.Elements[sym] = int(count)
		}
	}
	phase, err := thermo.ParsePhase(l[phaseCol : phaseCol+1])
	if err != nil {
		return s, &ParseError{Line: start, Msg: "phase", Err: err}
	}
	s.Phase = phase
	f := strings.Fields(l[phaseCol+1 : lineLen-1])
	if len(f) < 3 {
		return s, &ParseError{Line: start, Msg: "expected T_low, T_high and T_mid"}
	}
	temps := make([]float64, 3)
	for i := range temps {
		if temps[i], err = strconv.ParseFloat(f[i], 64); err != nil {
			return s, &ParseError{Line: start, Msg: "temperature", Err: err}
		}
	}
	s.TLow, s.THigh, s.TMid = temps[0], temps[1], temps[2]

	coeffs := make([]float64, 0, 2*nasa.NumCoeffs)
	for i, per := range []int{5, 5, 4} {
		l := lines[i+1]
		for j := 0; j < per; j++ {
			field := strings.TrimSpace(l[j*coeffWidth : (j+1)*coeffWidth])
			// Fortran double precision exponents
			field = strings.NewReplacer("D", "E", "d", "e").Replace(field)
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return s, &ParseError{Line: start + i + 1, Msg: "coefficient", Err: err}
			}
			coeffs = append(coeffs, v)
		}
	}
	copy(s.High[:], coeffs[:nasa.NumCoeffs])
	copy(s.Low[:], coeffs[nasa.NumCoeffs:])
	return s, nil
}

// ThermoSpecies converts s to a thermo.Species backed by the thermo.Nasa model so
// that it can be sampled and refitted.
func (s Species) ThermoSpecies() thermo.Species {
	elements := make(map[string]int, len(s.Elements))
	for e, n := range s.Elements {
		elements[e] = n
	}
	return thermo.Species{
		Name:     s.Name,
		Phase:    s.Phase,
		Elements: elements,
		Model:    thermo.Model{Kind: thermo.Nasa, Params: s.Polynomial.Params()},
	}
}
