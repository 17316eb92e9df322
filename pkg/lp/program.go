package lp

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
)

func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	}
	return "?"
}

var (
	ErrInvalidProgram = errors.New("invalid linear program")
	ErrInfeasible     = errors.New("linear program is infeasible")
	ErrUnbounded      = errors.New("linear program is unbounded")
)

// Constraint is the row Coeffs·x (Sense) RHS.
type Constraint struct {
	Coeffs []float64
	Sense  Sense
	RHS    float64
}

func Le(rhs float64, coeffs ...float64) Constraint {
	return Constraint{Coeffs: coeffs, Sense: LessEqual, RHS: rhs}
}

func Ge(rhs float64, coeffs ...float64) Constraint {
	return Constraint{Coeffs: coeffs, Sense: GreaterEqual, RHS: rhs}
}

func Eq(rhs float64, coeffs ...float64) Constraint {
	return Constraint{Coeffs: coeffs, Sense: Equal, RHS: rhs}
}

func (c Constraint) lhs(point []float64) float64 {
	sum := 0.0
	for i, a := range c.Coeffs {
		sum += a * point[i]
	}
	return sum
}

// Satisfied reports whether point satisfies the row within tol.
func (c Constraint) Satisfied(point []float64, tol float64) bool {
	v := c.lhs(point)
	switch c.Sense {
	case LessEqual:
		return v <= c.RHS+tol
	case GreaterEqual:
		return v >= c.RHS-tol
	default:
		return math.Abs(v-c.RHS) <= tol
	}
}

// LinearProgram is an immutable linear program over non-negative variables.
// Every variable carries the implicit bound x_i >= 0.
type LinearProgram struct {
	name        string
	objective   []float64
	maximize    bool
	constraints []Constraint
}

func NewLinearProgram(name string, objective []float64, maximize bool, constraints ...Constraint) (*LinearProgram, error) {
	if len(objective) == 0 {
		return nil, fmt.Errorf("%w: empty objective", ErrInvalidProgram)
	}
	for i, v := range objective {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: objective coefficient %d is not finite", ErrInvalidProgram, i)
		}
	}

	rows := make([]Constraint, 0, len(constraints))
	for i, c := range constraints {
		if len(c.Coeffs) != len(objective) {
			return nil, fmt.Errorf("%w: constraint %d has %d coefficients, want %d", ErrInvalidProgram,
				i, len(c.Coeffs), len(objective))
		}
		if c.Sense < LessEqual || c.Sense > Equal {
			return nil, fmt.Errorf("%w: constraint %d has unknown sense %d", ErrInvalidProgram, i, c.Sense)
		}
		if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
			return nil, fmt.Errorf("%w: constraint %d right hand side is not finite", ErrInvalidProgram, i)
		}
		rows = append(rows, Constraint{Coeffs: cloneFloats(c.Coeffs), Sense: c.Sense, RHS: c.RHS})
	}

	return &LinearProgram{
		name:        name,
		objective:   cloneFloats(objective),
		maximize:    maximize,
		constraints: rows,
	}, nil
}

func (p *LinearProgram) Name() string {
	return p.name
}

func (p *LinearProgram) NumVars() int {
	return len(p.objective)
}

func (p *LinearProgram) Maximize() bool {
	return p.maximize
}

func (p *LinearProgram) Objective() []float64 {
	return cloneFloats(p.objective)
}

func (p *LinearProgram) Constraints() []Constraint {
	rows := make([]Constraint, len(p.constraints))
	for i, c := range p.constraints {
		rows[i] = Constraint{Coeffs: cloneFloats(c.Coeffs), Sense: c.Sense, RHS: c.RHS}
	}
	return rows
}

// Costs returns the cost vector of the equivalent minimization problem.
func (p *LinearProgram) Costs() []float64 {
	c := cloneFloats(p.objective)
	if p.maximize {
		for i := range c {
			c[i] = -c[i]
		}
	}
	return c
}

// Evaluate returns the objective at point in the program's own sense.
func (p *LinearProgram) Evaluate(point []float64) float64 {
	sum := 0.0
	for i, c := range p.objective {
		sum += c * point[i]
	}
	return sum
}

// InternalValue converts an objective value in the program's sense to the
// minimized value used by the solvers, and back.
func (p *LinearProgram) InternalValue(v float64) float64 {
	if p.maximize {
		return -v
	}
	return v
}

func (p *LinearProgram) IsFeasible(point []float64, tol float64) bool {
	if len(point) != len(p.objective) {
		return false
	}
	for _, v := range point {
		if v < -tol {
			return false
		}
	}
	for _, c := range p.constraints {
		if !c.Satisfied(point, tol) {
			return false
		}
	}
	return true
}

func (p *LinearProgram) String() string {
	var sb strings.Builder
	if p.maximize {
		sb.WriteString("max ")
	} else {
		sb.WriteString("min ")
	}
	sb.WriteString(formatRow(p.objective))
	for _, c := range p.constraints {
		sb.WriteString("\n  s.t. ")
		sb.WriteString(formatRow(c.Coeffs))
		sb.WriteString(fmt.Sprintf(" %s %g", c.Sense, c.RHS))
	}
	return sb.String()
}

func formatRow(coeffs []float64) string {
	terms := make([]string, 0, len(coeffs))
	for i, a := range coeffs {
		if a == 0 {
			continue
		}
		terms = append(terms, fmt.Sprintf("%gx%d", a, i+1))
	}
	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

func cloneFloats(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
