package lp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"
)

// RelaxedSolution is the optimum of a program solved without integrality.
// Value is the internal (minimized) objective: for a maximization problem it
// is the negated profit.
type RelaxedSolution struct {
	Point []float64
	Value float64
}

// Objective returns the optimal value in the sense of program p.
func (s *RelaxedSolution) Objective(p *LinearProgram) float64 {
	return p.InternalValue(s.Value)
}

type Solver interface {
	Solve(ctx context.Context, p *LinearProgram) (*RelaxedSolution, error)
}

// SimplexSolver solves the continuous relaxation with the gonum simplex.
type SimplexSolver struct {
	Tol float64
}

func NewSimplexSolver() *SimplexSolver {
	return &SimplexSolver{}
}

/*
Solve. The program

	min c·x  s.t.  G x (<=,>=,=) h,  x >= 0

is rewritten into the standard form accepted by lp.Simplex

	min c'·x'  s.t.  A x' = b,  x' >= 0

by appending one slack column per "<=" row and one surplus column per ">="
row. Rows whose right hand side is negative are multiplied by -1 so that
b >= 0.
*/
func (s *SimplexSolver) Solve(ctx context.Context, p *LinearProgram) (*RelaxedSolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sf, err := newStandardForm(p)
	if err != nil {
		return nil, err
	}

	point := make([]float64, p.NumVars())
	if sf.A == nil {
		// no effective rows and no negative cost: the origin is optimal.
		return &RelaxedSolution{Point: point, Value: 0}, nil
	}

	opt, x, err := gonumlp.Simplex(sf.c, sf.A, sf.b, s.Tol, nil)
	if err != nil {
		return nil, mapSimplexError(err)
	}

	for k, j := range sf.vars {
		point[j] = x[k]
	}
	return &RelaxedSolution{Point: point, Value: opt}, nil
}

type standardForm struct {
	c []float64
	A *mat.Dense
	b []float64
	// vars maps the leading columns of A back to program variables.
	vars []int
}

func newStandardForm(p *LinearProgram) (*standardForm, error) {
	costs := p.Costs()

	rows := make([]Constraint, 0, len(p.constraints))
	for i, r := range p.constraints {
		if r.Sense == Equal && isZero(r.Coeffs) {
			if r.RHS != 0 {
				return nil, fmt.Errorf("%w: row %d reads 0 = %g", ErrInfeasible, i, r.RHS)
			}
			continue
		}
		rows = append(rows, r)
	}

	// a variable absent from every row is pinned to its bound 0, or unbounded.
	vars := make([]int, 0, len(costs))
	for j := range costs {
		used := false
		for _, r := range rows {
			if r.Coeffs[j] != 0 {
				used = true
				break
			}
		}
		if used {
			vars = append(vars, j)
			continue
		}
		if costs[j] < 0 {
			return nil, ErrUnbounded
		}
	}

	sf := &standardForm{vars: vars}
	m := len(rows)
	if m == 0 {
		return sf, nil
	}

	slacks := 0
	for _, r := range rows {
		if r.Sense != Equal {
			slacks++
		}
	}
	n := len(vars)
	cols := n + slacks

	sf.c = make([]float64, cols)
	for k, j := range vars {
		sf.c[k] = costs[j]
	}

	sf.A = mat.NewDense(m, cols, nil)
	sf.b = make([]float64, m)
	slack := n
	for i, r := range rows {
		for k, j := range vars {
			sf.A.Set(i, k, r.Coeffs[j])
		}
		switch r.Sense {
		case LessEqual:
			sf.A.Set(i, slack, 1)
			slack++
		case GreaterEqual:
			sf.A.Set(i, slack, -1)
			slack++
		}
		sf.b[i] = r.RHS
		if sf.b[i] < 0 {
			for j := 0; j < cols; j++ {
				sf.A.Set(i, j, -sf.A.At(i, j))
			}
			sf.b[i] = -sf.b[i]
		}
	}
	return sf, sf.dropDependentRows()
}

const rankTol = 1e-9

/*
dropDependentRows removes the rows of [A | b] that are linear combinations of
earlier rows, since lp.Simplex needs A with full row rank. Each row is reduced
against the echelon basis built from the rows kept so far:

	r <- r - (r[p] / e[p]) e   for every basis row e with pivot column p

A row whose A part vanishes is redundant when its b part vanishes too, and
contradicts the kept rows otherwise.
*/
func (sf *standardForm) dropDependentRows() error {
	m, cols := sf.A.Dims()
	type pivotRow struct {
		row   []float64
		pivot int
	}
	basis := make([]pivotRow, 0, m)
	keep := make([]int, 0, m)
	for i := 0; i < m; i++ {
		r := make([]float64, cols+1)
		mat.Row(r[:cols], i, sf.A)
		r[cols] = sf.b[i]
		scale := math.Max(floats.Norm(r, math.Inf(1)), 1)

		for _, e := range basis {
			if f := r[e.pivot] / e.row[e.pivot]; f != 0 {
				floats.AddScaled(r, -f, e.row)
			}
		}

		pivot, best := -1, rankTol*scale
		for j := 0; j < cols; j++ {
			if a := math.Abs(r[j]); a > best {
				pivot, best = j, a
			}
		}
		if pivot < 0 {
			if math.Abs(r[cols]) > rankTol*scale {
				return fmt.Errorf("%w: equality row %d contradicts the rows before it", ErrInfeasible, i)
			}
			continue
		}
		basis = append(basis, pivotRow{row: r, pivot: pivot})
		keep = append(keep, i)
	}
	if len(keep) == m {
		return nil
	}

	A := mat.NewDense(len(keep), cols, nil)
	b := make([]float64, len(keep))
	for k, i := range keep {
		A.SetRow(k, sf.A.RawRowView(i))
		b[k] = sf.b[i]
	}
	sf.A, sf.b = A, b
	return nil
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func mapSimplexError(err error) error {
	switch {
	case errors.Is(err, gonumlp.ErrInfeasible):
		return ErrInfeasible
	case errors.Is(err, gonumlp.ErrUnbounded):
		return ErrUnbounded
	}
	return fmt.Errorf("simplex: %w", err)
}
