package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lintang-b-s/pleguide/pkg/ilp"
	"github.com/lintang-b-s/pleguide/pkg/lesson"
	"github.com/lintang-b-s/pleguide/pkg/lp"
	"github.com/lintang-b-s/pleguide/pkg/util"
	"go.uber.org/zap"
)

// LessonService serves the lesson page and its computations. The lesson is
// fixed, so the solved outcomes are computed once and shared by every request.
type LessonService struct {
	log     *zap.Logger
	builder PageBuilder

	mu       sync.Mutex
	outcomes *lesson.Outcomes
}

func NewLessonService(log *zap.Logger, builder PageBuilder) *LessonService {
	return &LessonService{
		log:     log,
		builder: builder,
	}
}

func (ls *LessonService) solved(ctx context.Context) (*lesson.Outcomes, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.outcomes != nil {
		return ls.outcomes, nil
	}
	out, err := ls.builder.Solve(ctx)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "solving lesson: %v", err)
	}
	ls.outcomes = out
	return out, nil
}

func (ls *LessonService) Page(ctx context.Context, form lesson.FormState) (*lesson.Page, error) {
	out, err := ls.solved(ctx)
	if err != nil {
		return nil, err
	}
	return ls.builder.Compose(out, form), nil
}

func (ls *LessonService) Chart(ctx context.Context) ([]byte, error) {
	out, err := ls.solved(ctx)
	if err != nil {
		return nil, err
	}
	if out.ChartErr != nil {
		return nil, util.WrapErrorf(out.ChartErr, util.ErrInternalServerError, "rendering chart: %v", out.ChartErr)
	}
	return out.ChartSVG, nil
}

var ErrUnknownProblem = errors.New("unknown problem")

// problemRun is the stored rounding search of one lesson problem.
type problemRun struct {
	prog *lp.LinearProgram
	res  *ilp.NaiveResult
	err  error
}

// lookup selects a problem by name. An empty name is the worked example.
func (ls *LessonService) lookup(out *lesson.Outcomes, problem string) (problemRun, error) {
	example, exercise := ls.builder.Example(), ls.builder.Exercise()
	switch problem {
	case "", example.Name():
		return problemRun{prog: example, res: out.Naive, err: out.NaiveErr}, nil
	case exercise.Name():
		return problemRun{prog: exercise, res: out.ExerciseNaive, err: out.ExerciseNaiveErr}, nil
	}
	return problemRun{}, util.WrapErrorf(ErrUnknownProblem, util.ErrNotFound,
		"problem %q not found, expected %q or %q", problem, example.Name(), exercise.Name())
}

// Relaxation returns the program and its LP relaxation. An infeasible or
// unbounded relaxation is reported as ilp.ErrNoFeasibleSolution.
func (ls *LessonService) Relaxation(ctx context.Context, problem string) (*lp.LinearProgram, *lp.RelaxedSolution, error) {
	out, err := ls.solved(ctx)
	if err != nil {
		return nil, nil, err
	}
	run, err := ls.lookup(out, problem)
	if err != nil {
		return nil, nil, err
	}
	if run.prog == ls.builder.Example() {
		if out.RelaxedErr != nil {
			return run.prog, nil, solverError(out.RelaxedErr)
		}
		return run.prog, out.Relaxed, nil
	}
	if run.res == nil || run.res.Relaxed == nil {
		if run.err == nil {
			run.err = ilp.ErrNoFeasibleSolution
		}
		return run.prog, nil, solverError(run.err)
	}
	return run.prog, run.res.Relaxed, nil
}

func (ls *LessonService) RoundingSearch(ctx context.Context, problem string) (*lp.LinearProgram, *ilp.NaiveResult, error) {
	out, err := ls.solved(ctx)
	if err != nil {
		return nil, nil, err
	}
	run, err := ls.lookup(out, problem)
	if err != nil {
		return nil, nil, err
	}
	if run.err != nil {
		return run.prog, run.res, solverError(run.err)
	}
	return run.prog, run.res, nil
}

func (ls *LessonService) Messages() lesson.Messages {
	return ls.builder.Lesson().Messages
}

func (ls *LessonService) FormBounds() (min, max, def int) {
	f := ls.builder.Lesson().Exercises.Form
	return f.NumVarsMin, f.NumVarsMax, f.NumVarsDefault
}

// solverError keeps the "no solution" outcomes recognisable and turns the rest
// into internal errors.
func solverError(err error) error {
	switch {
	case errors.Is(err, ilp.ErrNoFeasibleSolution), errors.Is(err, ilp.ErrNoIntegralSolution):
		return err
	case errors.Is(err, lp.ErrInfeasible), errors.Is(err, lp.ErrUnbounded):
		return fmt.Errorf("%w: %w", ilp.ErrNoFeasibleSolution, err)
	default:
		return util.WrapErrorf(err, util.ErrInternalServerError, "solver: %v", err)
	}
}
