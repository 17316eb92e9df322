package ilp

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lintang-b-s/pleguide/pkg/lp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inf() float64 { return math.Inf(1) }

type stubSolver struct {
	sol   *lp.RelaxedSolution
	err   error
	calls int
}

func (s *stubSolver) Solve(_ context.Context, _ *lp.LinearProgram) (*lp.RelaxedSolution, error) {
	s.calls++
	return s.sol, s.err
}

func annaProgram(t *testing.T) *lp.LinearProgram {
	t.Helper()
	p, err := lp.NewLinearProgram("anna", []float64{100, 250}, true, lp.Le(71, 3, 5), lp.Ge(30, 1, 2))
	require.NoError(t, err)
	return p
}

func TestSearchFromBranchesOnFourCorners(t *testing.T) {
	relaxed := &lp.RelaxedSolution{Point: []float64{12.4, 8.8}, Value: -3440}

	res := SearchFrom(relaxed, annaProgram(t))

	want := [][]float64{{12, 8}, {12, 9}, {13, 8}, {13, 9}}
	if diff := cmp.Diff(want, res.DistinctLeaves()); diff != "" {
		t.Errorf("leaves mismatch (-want +got):\n%s", diff)
	}
	for _, leaf := range res.Leaves {
		assert.Equal(t, -3440.0, leaf.Value, "leaf %v must carry the parent value", leaf.Point)
		assert.False(t, leaf.SatisfiesConstraints)
	}

	// (13, 9) is the first integral leaf popped and no later leaf is strictly better.
	require.NotNil(t, res.Best)
	assert.Equal(t, []float64{13, 9}, res.Best.Point)
	assert.Equal(t, []int{13, 9}, res.Best.IntPoint())
	assert.Equal(t, 3440.0, res.BestObjective(annaProgram(t)))

	improved := 0
	for _, leaf := range res.Leaves {
		if leaf.Improved {
			improved++
		}
	}
	assert.Equal(t, 1, improved)
	// root, 4 half-rounded children and 8 integral leaves.
	assert.Equal(t, 13, res.Pops)
	assert.Len(t, res.Leaves, 8)
}

// TestSearchFromThreeFractionalCoordinates follows exercise 8.1: every node
// branches on all of its fractional coordinates, so the work list revisits
// the same corners many times.
func TestSearchFromThreeFractionalCoordinates(t *testing.T) {
	p, err := lp.NewLinearProgram("ejercicio-8.1", []float64{4, 3, 3}, true,
		lp.Le(10, 4, 2, 1), lp.Le(14, 3, 4, 2), lp.Le(7, 2, 1, 3))
	require.NoError(t, err)

	res := SearchFrom(&lp.RelaxedSolution{Point: []float64{1.2, 2.2, 0.8}, Value: -13.8}, p)

	assert.Equal(t, 79, res.Pops)
	assert.Len(t, res.Leaves, 48)
	assert.Len(t, res.DistinctLeaves(), 8)
	require.NotNil(t, res.Best)
	assert.Equal(t, []int{2, 3, 1}, res.Best.IntPoint())
	assert.InDelta(t, 13.8, res.BestObjective(p), 1e-9)
	assert.False(t, p.IsFeasible(res.Best.Point, 0))
}

func TestSearchFromIntegralRelaxation(t *testing.T) {
	res := SearchFrom(&lp.RelaxedSolution{Point: []float64{3, 4}, Value: -7}, nil)

	require.NotNil(t, res.Best)
	assert.Equal(t, 1, res.Pops)
	assert.Equal(t, []float64{3, 4}, res.Best.Point)
	assert.Equal(t, -7.0, res.Best.Value)
}

func TestSearchFromOneFractionalCoordinate(t *testing.T) {
	res := SearchFrom(&lp.RelaxedSolution{Point: []float64{0, 14.2}, Value: -3550}, nil)

	// ceil is pushed last, so popped first, and wins the tie.
	require.NotNil(t, res.Best)
	assert.Equal(t, []float64{0, 15}, res.Best.Point)
	assert.Equal(t, [][]float64{{0, 14}, {0, 15}}, res.DistinctLeaves())
}

func TestSearchFromTerminates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(4)
		pt := make([]float64, n)
		for j := range pt {
			pt[j] = rng.Float64() * 50
			if rng.Intn(3) == 0 {
				pt[j] = float64(rng.Intn(50))
			}
		}
		res := SearchFrom(&lp.RelaxedSolution{Point: pt, Value: -1}, nil)
		require.NotNil(t, res.Best)
		assert.LessOrEqual(t, len(res.DistinctLeaves()), 1<<n)
	}
}

func TestSearchFromNonFiniteCoordinate(t *testing.T) {
	res := SearchFrom(&lp.RelaxedSolution{Point: []float64{1.5, inf()}, Value: -1}, nil)
	assert.Nil(t, res.Best)
	assert.Equal(t, 3, res.Pops)
}

func TestNaiveRoundingSearchInfeasibleRelaxation(t *testing.T) {
	solver := &stubSolver{err: lp.ErrInfeasible}

	res, err := NaiveRoundingSearch(context.Background(), solver, annaProgram(t))

	require.ErrorIs(t, err, ErrNoFeasibleSolution)
	require.ErrorIs(t, err, lp.ErrInfeasible)
	assert.Nil(t, res)
	assert.Equal(t, 1, solver.calls)
}

func TestNaiveRoundingSearchWorkedExample(t *testing.T) {
	res, err := NaiveRoundingSearch(context.Background(), lp.NewSimplexSolver(), annaProgram(t))
	require.ErrorIs(t, err, ErrNoFeasibleSolution)
	assert.Nil(t, res)
}

func TestNaiveRoundingSearchFeasibleVariant(t *testing.T) {
	p, err := lp.NewLinearProgram("anna-variant", []float64{100, 250}, true, lp.Le(71, 3, 5), lp.Le(30, 1, 2))
	require.NoError(t, err)

	res, err := NaiveRoundingSearch(context.Background(), lp.NewSimplexSolver(), p)
	require.NoError(t, err)
	require.NotNil(t, res.Best)

	// the rounded point keeps the relaxed value even when it leaves the region.
	assert.InDelta(t, 3550, res.BestObjective(p), 1e-6)
	for _, leaf := range res.Leaves {
		assert.InDelta(t, res.Relaxed.Value, leaf.Value, 0)
	}
}

func TestNaiveRoundingSearchIsDeterministic(t *testing.T) {
	solver := &stubSolver{sol: &lp.RelaxedSolution{Point: []float64{12.4, 8.8}, Value: -3440}}
	p := annaProgram(t)

	first, err := NaiveRoundingSearch(context.Background(), solver, p)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := NaiveRoundingSearch(context.Background(), solver, p)
		require.NoError(t, err)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestNaiveRoundingSearchPropagatesCancellation(t *testing.T) {
	solver := &stubSolver{err: context.Canceled}
	_, err := NaiveRoundingSearch(context.Background(), solver, annaProgram(t))
	require.True(t, errors.Is(err, context.Canceled))
	require.False(t, errors.Is(err, ErrNoFeasibleSolution))
}

func TestIntegral(t *testing.T) {
	assert.True(t, Integral(12))
	assert.True(t, Integral(-3))
	assert.False(t, Integral(12.4))
	assert.False(t, Integral(12.000000001))
	assert.False(t, Integral(inf()))
}
