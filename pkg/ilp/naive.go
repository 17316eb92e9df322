package ilp

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/pleguide/pkg/lp"
	"golang.org/x/exp/slices"
)

var (
	ErrNoFeasibleSolution = errors.New("no feasible solution")
	ErrNoIntegralSolution = errors.New("no feasible integral solution")
)

// Candidate is a point on the work list together with the internal
// (minimized) objective value it inherited from its parent.
type Candidate struct {
	Point []float64
	Value float64
}

func (c Candidate) IsIntegral() bool {
	for _, v := range c.Point {
		if !Integral(v) {
			return false
		}
	}
	return true
}

// IntPoint truncates the coordinates of an integral candidate.
func (c Candidate) IntPoint() []int {
	out := make([]int, len(c.Point))
	for i, v := range c.Point {
		out[i] = int(v)
	}
	return out
}

// Leaf is an integral candidate popped from the work list.
type Leaf struct {
	Candidate
	// Improved is set when the leaf replaced the best candidate.
	Improved bool
	// SatisfiesConstraints is informational only, the search never consults it.
	SatisfiesConstraints bool
}

type NaiveResult struct {
	Relaxed *lp.RelaxedSolution
	Best    *Candidate
	Leaves  []Leaf
	Pops    int
}

// BestObjective returns the best candidate's value in the program's sense.
func (r *NaiveResult) BestObjective(p *lp.LinearProgram) float64 {
	if r.Best == nil {
		return math.NaN()
	}
	return p.InternalValue(r.Best.Value)
}

// DistinctLeaves returns the integral points reached, sorted and deduplicated.
func (r *NaiveResult) DistinctLeaves() [][]float64 {
	pts := make([][]float64, 0, len(r.Leaves))
	for _, l := range r.Leaves {
		pts = append(pts, l.Point)
	}
	slices.SortFunc(pts, func(a, b []float64) int {
		return slices.Compare(a, b)
	})
	return slices.CompactFunc(pts, func(a, b []float64) bool {
		return slices.Equal(a, b)
	})
}

// Integral is an exact test, 12.000000001 is not integral.
func Integral(v float64) bool {
	return !math.IsInf(v, 0) && v == math.Trunc(v)
}

/*
NaiveRoundingSearch solves the continuous relaxation once and then rounds the
relaxed point toward integer coordinates:

 1. the relaxed point seeds a LIFO work list;
 2. a popped candidate whose coordinates are all integral replaces the best
    candidate when its value is strictly lower;
 3. otherwise, for every non-integral coordinate (in index order) two children
    are pushed, the coordinate floored and then ceiled, each carrying the
    parent's value unchanged.

Branches are never re-solved nor checked against the constraints, and nothing
is pruned by bound, so the reported point may violate the program and its
value is always the relaxed optimum.

A failed relaxation returns ErrNoFeasibleSolution without evaluating any
candidate. A search that reaches no integral leaf returns the result together
with ErrNoIntegralSolution.
*/
func NaiveRoundingSearch(ctx context.Context, solver lp.Solver, p *lp.LinearProgram) (*NaiveResult, error) {
	relaxed, err := solver.Solve(ctx, p)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrNoFeasibleSolution, err)
	}

	res := SearchFrom(relaxed, p)
	if res.Best == nil {
		return res, ErrNoIntegralSolution
	}
	return res, nil
}

// SearchFrom runs the work-list phase from an already relaxed point. p is
// only used to annotate leaves and may be nil.
func SearchFrom(relaxed *lp.RelaxedSolution, p *lp.LinearProgram) *NaiveResult {
	res := &NaiveResult{Relaxed: relaxed}

	stack := []Candidate{{Point: cloneFloats(relaxed.Point), Value: relaxed.Value}}
	bestVal := math.Inf(1)

	for len(stack) > 0 {
		cand := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res.Pops++

		if cand.IsIntegral() {
			leaf := Leaf{Candidate: cand}
			if p != nil {
				leaf.SatisfiesConstraints = p.IsFeasible(cand.Point, 0)
			}
			if cand.Value < bestVal {
				best := cand
				res.Best = &best
				bestVal = cand.Value
				leaf.Improved = true
			}
			res.Leaves = append(res.Leaves, leaf)
			continue
		}

		for i, v := range cand.Point {
			// non-finite coordinates have no floor/ceil pair and stay a dead end.
			if Integral(v) || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			stack = append(stack, withCoord(cand, i, math.Floor(v)), withCoord(cand, i, math.Ceil(v)))
		}
	}
	return res
}

func withCoord(parent Candidate, i int, v float64) Candidate {
	pt := cloneFloats(parent.Point)
	pt[i] = v
	return Candidate{Point: pt, Value: parent.Value}
}

func cloneFloats(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
