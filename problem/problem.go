// Package problem parses the small bounds-problem text format the CLI
// accepts: variable declarations, tableau row definitions, and bound
// assertions. It is deliberately much simpler than DIMACS/OPB (gophersat's
// own input formats, solver/parser.go and solver/pb.go) since this
// engine's domain has no clauses or pseudo-boolean constraints, only
// linear equalities and bounds.
package problem

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gophersimplex/gophersimplex/simplex"
)

// AssertKind distinguishes the three assertion operations the engine
// exposes.
type AssertKind int

const (
	AssertLower AssertKind = iota
	AssertUpper
	AssertEquality
)

// Assertion is one ordered bound assertion read from the input.
type Assertion struct {
	Kind    AssertKind
	Var     string
	Value   simplex.DeltaRational
	Literal string
}

// RowDef is one tableau row declaration: Basic = sum(Coeffs[i] * Vars[i]).
type RowDef struct {
	Basic  string
	Vars   []string
	Coeffs []simplex.Rational
}

// Problem is the parsed bounds-problem: the declared variables in
// declaration order, the rows to seed the tableau with, and the ordered
// assertions to replay against the engine.
type Problem struct {
	Vars       []string
	Rows       []RowDef
	Assertions []Assertion
}

// Parse reads a bounds-problem file from r.
func Parse(r io.Reader) (*Problem, error) {
	p := &Problem{}
	seen := map[string]bool{}
	declareVar := func(name string) {
		if !seen[name] {
			seen[name] = true
			p.Vars = append(p.Vars, name)
		}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "var":
			for _, name := range fields[1:] {
				declareVar(name)
			}
		case "row":
			row, err := parseRow(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			declareVar(row.Basic)
			for _, v := range row.Vars {
				declareVar(v)
			}
			p.Rows = append(p.Rows, row)
		case "lower", "upper", "eq":
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: expected 'KIND var value', got %q", lineNo, line)
			}
			val, err := parseRational(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			declareVar(fields[1])
			kind := AssertLower
			switch fields[0] {
			case "upper":
				kind = AssertUpper
			case "eq":
				kind = AssertEquality
			}
			p.Assertions = append(p.Assertions, Assertion{
				Kind:    kind,
				Var:     fields[1],
				Value:   simplex.DR(val),
				Literal: line,
			})
		default:
			return nil, fmt.Errorf("line %d: unrecognized directive %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseRow parses "<basic> = <coeff> <var> [+ <coeff> <var>]*".
func parseRow(fields []string) (RowDef, error) {
	if len(fields) < 3 || fields[1] != "=" {
		return RowDef{}, fmt.Errorf("expected '<basic> = <coeff> <var> ...'")
	}
	row := RowDef{Basic: fields[0]}
	rest := fields[2:]
	for i := 0; i < len(rest); {
		if rest[i] == "+" {
			i++
			continue
		}
		if i+1 >= len(rest) {
			return RowDef{}, fmt.Errorf("dangling coefficient in row definition")
		}
		coeff, err := parseRational(rest[i])
		if err != nil {
			return RowDef{}, err
		}
		row.Coeffs = append(row.Coeffs, coeff)
		row.Vars = append(row.Vars, rest[i+1])
		i += 2
	}
	return row, nil
}

func parseRational(s string) (simplex.Rational, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			return simplex.Rational{}, fmt.Errorf("bad numerator %q: %w", num, err)
		}
		d, err := strconv.ParseInt(den, 10, 64)
		if err != nil {
			return simplex.Rational{}, fmt.Errorf("bad denominator %q: %w", den, err)
		}
		return simplex.NewRational(n, d), nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return simplex.Rational{}, fmt.Errorf("bad rational %q: %w", s, err)
	}
	return simplex.NewRationalInt(n), nil
}
