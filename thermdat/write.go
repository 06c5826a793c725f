// Package thermdat reads and writes NASA polynomials in the fixed-column
// thermdat format used by combustion and microkinetic modelling codes.
//
// Each species takes four 80-column lines:
//
//	cols  0-15  name
//	cols 16-23  identification code (optional)
//	cols 24-43  up to four elements as %-2s%3d
//	col  44     phase
//	cols 45-72  T_low, T_high, T_mid as %-10.1f%-10.1f%-8.1f
//	col  79     line sequence number 1-4
//
// followed by fourteen %15.8E coefficients, high range first.
package thermdat

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/skasiraj/pMuTT/nasa"
	"github.com/skasiraj/pMuTT/thermo"
)

const (
	lineLen     = 80
	nameWidth   = 16
	codeWidth   = 8
	elemCol     = 24
	maxElements = 4
	phaseCol    = 44
	coeffWidth  = 15
)

// Species is one thermdat entry
type Species struct {
	Name string
	// Code fills the identification columns, traditionally a date
	Code     string
	Phase    thermo.Phase
	Elements map[string]int
	nasa.Polynomial
}

// Header holds the three global temperatures under THERMO ALL
type Header struct {
	TLow, TMid, THigh float64
}

// DefaultHeader is the header written by Format
var DefaultHeader = Header{TLow: 100, TMid: 500, THigh: 1500}

// Format renders species under DefaultHeader
func Format(species []Species) (string, error) {
	var b strings.Builder
	if err := Write(&b, species, DefaultHeader); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Write renders species to w between the THERMO ALL header and END. Nothing
// is written if any species fails validation.
func Write(w io.Writer, species []Species, h Header) error {
	lines := make([]string, 0, 4*len(species)+3)
	lines = append(lines, "THERMO ALL",
		fmt.Sprintf("%10.0f%10.0f%10.0f", h.TLow, h.TMid, h.THigh))
	for _, s := range species {
		sl, err := s.Lines()
		if err != nil {
			return err
		}
		lines = append(lines, sl[:]...)
	}
	lines = append(lines, "END")
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		bw.WriteString(l)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// terminate pads line to column 79 and appends the sequence digit
func terminate(line string, seq int) string {
	return fmt.Sprintf("%-*s%d", lineLen-1, line, seq)
}

// Lines renders the four lines of s
func (s Species) Lines() (lines [4]string, err error) {
	bad := func(field, msg string, args ...any) error {
		return &FieldError{Species: s.Name, Field: field, Msg: fmt.Sprintf(msg, args...)}
	}
	switch {
	case s.Name == "":
		return lines, bad("name", "empty")
	case len(s.Name) > nameWidth:
		return lines, bad("name", "longer than %d characters", nameWidth)
	case strings.ContainsAny(s.Name, " \t"):
		return lines, bad("name", "contains whitespace")
	case len(s.Code) > codeWidth:
		return lines, bad("code", "longer than %d characters", codeWidth)
	}
	if _, err := thermo.ParsePhase(string(s.Phase)); err != nil || len(s.Phase) != 1 {
		return lines, bad("phase", "%q is not G, S or L", s.Phase)
	}

	symbols := make([]string, 0, len(s.Elements))
	for e, n := range s.Elements {
		switch {
		case n == 0:
			continue
		case n < 0 || n > thermo.MaxCount:
			return lines, bad("elements."+e, "count %d out of range", n)
		case len(e) == 0 || len(e) > 2:
			return lines, bad("elements."+e, "symbol must be 1 or 2 characters")
		}
		symbols = append(symbols, e)
	}
	sort.Strings(symbols)
	if len(symbols) == 0 {
		return lines, bad("elements", "no elements")
	}
	if len(symbols) > maxElements {
		return lines, bad("elements", "%d elements, at most %d fit", len(symbols), maxElements)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s%-*s", nameWidth, s.Name, codeWidth, s.Code)
	for _, e := range symbols {
		fmt.Fprintf(&b, "%-2s%3d", e, s.Elements[e])
	}
	fmt.Fprintf(&b, "%-*s", phaseCol-b.Len(), "")
	b.WriteString(string(s.Phase))
	for _, t := range []struct {
		name  string
		v     float64
		width int
	}{{"T_low", s.TLow, 10}, {"T_high", s.THigh, 10}, {"T_mid", s.TMid, 8}} {
		f := fmt.Sprintf("%-*.1f", t.width, t.v)
		if !(t.v > 0) || math.IsInf(t.v, 0) || len(f) > t.width || f[t.width-1] != ' ' {
			return lines, bad(t.name, "%v does not fit the column", t.v)
		}
		b.WriteString(f)
	}
	lines[0] = terminate(b.String(), 1)

	coeffs := make([]string, 0, 2*nasa.NumCoeffs)
	for i, a := range append(s.High[:], s.Low[:]...) {
		f := fmt.Sprintf("%*.8E", coeffWidth, a)
		if math.IsNaN(a) || math.IsInf(a, 0) || len(f) > coeffWidth || f[len(f)-4] != 'E' {
			rng, j := "high", i
			if i >= nasa.NumCoeffs {
				rng, j = "low", i-nasa.NumCoeffs
			}
			return lines, bad(fmt.Sprintf("a_%s[%d]", rng, j), "%v cannot be written", a)
		}
		coeffs = append(coeffs, f)
	}
	lines[1] = terminate(strings.Join(coeffs[0:5], ""), 2)
	lines[2] = terminate(strings.Join(coeffs[5:10], ""), 3)
	lines[3] = terminate(strings.Join(coeffs[10:14], ""), 4)
	return lines, nil
}
