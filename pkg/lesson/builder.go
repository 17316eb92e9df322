package lesson

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lintang-b-s/pleguide/pkg/chart"
	"github.com/lintang-b-s/pleguide/pkg/concurrent"
	"github.com/lintang-b-s/pleguide/pkg/ilp"
	"github.com/lintang-b-s/pleguide/pkg/lp"
	"go.uber.org/zap"
)

type Builder struct {
	lesson   *Lesson
	solver   lp.Solver
	log      *zap.Logger
	example  *lp.LinearProgram
	exercise *lp.LinearProgram

	workers     int
	chartWidth  float64
	chartHeight float64
}

type Option func(*Builder)

func WithWorkers(n int) Option {
	return func(b *Builder) { b.workers = n }
}

func WithChartSize(widthInch, heightInch float64) Option {
	return func(b *Builder) {
		b.chartWidth = widthInch
		b.chartHeight = heightInch
	}
}

func NewBuilder(l *Lesson, solver lp.Solver, log *zap.Logger, opts ...Option) (*Builder, error) {
	example, err := l.WorkedExample.Problem.Program()
	if err != nil {
		return nil, err
	}
	exercise, err := l.DocumentExercises.Problem.Program()
	if err != nil {
		return nil, err
	}
	b := &Builder{
		lesson:      l,
		solver:      solver,
		log:         log,
		example:     example,
		exercise:    exercise,
		workers:     4,
		chartWidth:  8,
		chartHeight: 6,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Builder) Lesson() *Lesson {
	return b.lesson
}

func (b *Builder) Example() *lp.LinearProgram {
	return b.example
}

func (b *Builder) Exercise() *lp.LinearProgram {
	return b.exercise
}

// Outcomes holds everything the page displays that has to be computed.
// Solver failures are kept as values, they are never returned by Solve.
type Outcomes struct {
	Relaxed    *lp.RelaxedSolution
	RelaxedErr error

	Naive    *ilp.NaiveResult
	NaiveErr error

	ChartSVG []byte
	ChartErr error

	// ExerciseNaive runs the same rounding search on exercise 8.1. Its
	// Relaxed field is the exercise relaxation.
	ExerciseNaive    *ilp.NaiveResult
	ExerciseNaiveErr error
}

func (b *Builder) Relax(ctx context.Context) (*lp.RelaxedSolution, error) {
	return b.solver.Solve(ctx, b.example)
}

func (b *Builder) NaiveSearch(ctx context.Context) (*ilp.NaiveResult, error) {
	return ilp.NaiveRoundingSearch(ctx, b.solver, b.example)
}

func (b *Builder) ExerciseSearch(ctx context.Context) (*ilp.NaiveResult, error) {
	return ilp.NaiveRoundingSearch(ctx, b.solver, b.exercise)
}

func (b *Builder) Chart() ([]byte, error) {
	region, err := chart.ForProgram(b.example, b.lesson.WorkedExample.Chart.Region())
	if err != nil {
		return nil, err
	}
	return chart.Render(region, b.chartWidth, b.chartHeight)
}

// Solve runs the independent computations of the page on the worker pool.
func (b *Builder) Solve(ctx context.Context) (*Outcomes, error) {
	out := &Outcomes{}
	tasks := []func(context.Context){
		func(ctx context.Context) { out.Relaxed, out.RelaxedErr = b.Relax(ctx) },
		func(ctx context.Context) { out.Naive, out.NaiveErr = b.NaiveSearch(ctx) },
		func(context.Context) { out.ChartSVG, out.ChartErr = b.Chart() },
		func(ctx context.Context) { out.ExerciseNaive, out.ExerciseNaiveErr = b.ExerciseSearch(ctx) },
	}
	concurrent.Map(ctx, b.workers, tasks, func(ctx context.Context, task func(context.Context)) struct{} {
		task(ctx)
		return struct{}{}
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.logOutcomes(out)
	return out, nil
}

func (b *Builder) logOutcomes(out *Outcomes) {
	fields := []zap.Field{zap.String("problem", b.example.Name())}
	if out.RelaxedErr != nil {
		fields = append(fields, zap.NamedError("relaxation", out.RelaxedErr))
	} else {
		fields = append(fields, zap.Float64s("relaxed_point", out.Relaxed.Point))
	}
	if out.NaiveErr != nil {
		fields = append(fields, zap.NamedError("rounding_search", out.NaiveErr))
	} else {
		fields = append(fields, zap.Int("rounding_pops", out.Naive.Pops))
	}
	if out.ChartErr != nil {
		b.log.Error("feasible region chart failed", zap.Error(out.ChartErr))
	}
	b.log.Debug("lesson solved", fields...)
}

// Build composes the page for one request.
func (b *Builder) Build(ctx context.Context, form FormState) (*Page, error) {
	out, err := b.Solve(ctx)
	if err != nil {
		return nil, err
	}
	return b.Compose(out, form), nil
}

func (b *Builder) Compose(out *Outcomes, form FormState) *Page {
	l := b.lesson
	msg := l.Messages
	spec := l.WorkedExample.Problem

	if form.NumVars == 0 {
		form.NumVars = l.Exercises.Form.NumVarsDefault
	}
	page := &Page{
		PageTitle: l.PageTitle,
		Title:     l.Title,
		Subtitle:  l.Subtitle,
		Form:      form,
		FormSpec:  l.Exercises.Form,
		ChartNote: msg.ChartTerminal,
		FormNote:  msg.FormTerminal,
	}

	page.heading(1, l.Title)
	if l.Subtitle != "" {
		page.heading(3, l.Subtitle)
	}

	page.heading(2, l.Introduction.Heading)
	page.markdown(l.Introduction.Body)

	page.heading(2, l.WorkedExample.Heading)
	page.markdown(l.WorkedExample.Body)
	for _, f := range l.WorkedExample.Formulas {
		page.add(Block{Kind: FormulaBlock, Text: f})
	}

	page.heading(3, l.WorkedExample.Chart.Heading)
	if out.ChartErr == nil {
		page.ChartSVG = out.ChartSVG
		page.add(Block{Kind: ChartBlock, Text: l.WorkedExample.Chart.Title, Anchor: "chart"})
	} else {
		page.result(true, msg.ChartFailed)
	}

	page.heading(3, l.Relaxation.Heading)
	if out.RelaxedErr == nil {
		page.result(false,
			msg.RelaxedTitle,
			FormatPoint(spec, out.Relaxed.Point),
			fmt.Sprintf(msg.RelaxedProfit, out.Relaxed.Objective(b.example)),
		)
	} else {
		page.result(true, msg.NoFeasible)
	}
	page.markdown(l.Relaxation.After)

	if out.NaiveErr == nil {
		page.result(false,
			msg.IntegralTitle,
			FormatIntPoint(spec, out.Naive.Best.IntPoint()),
			fmt.Sprintf(msg.IntegralProfit, FormatNumber(out.Naive.BestObjective(b.example))),
		)
		page.markdown(b.naiveNote(b.example, out.Naive))
	} else {
		page.result(true, msg.NoIntegral)
	}

	page.heading(2, l.Exercises.Heading)
	page.markdown(l.Exercises.Body)
	page.heading(3, l.Exercises.Form.Heading)
	page.add(Block{Kind: FormBlock, Anchor: "form"})
	if form.Submitted {
		page.FormMessages = []string{msg.Solving, msg.InConstruction}
	}

	page.heading(2, l.DocumentExercises.Heading)
	page.markdown(l.DocumentExercises.Body)
	b.composeExercise(page, out)

	return page
}

func (b *Builder) naiveNote(prog *lp.LinearProgram, res *ilp.NaiveResult) string {
	msg := b.lesson.Messages
	var sb strings.Builder
	sb.WriteString(msg.NaiveNote)
	sb.WriteString("\n\n")
	for _, pt := range res.DistinctLeaves() {
		coords := make([]string, len(pt))
		for i, v := range pt {
			coords[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		label := strings.Join(coords, ", ")
		line := fmt.Sprintf(msg.LeafInfeasible, label)
		if prog.IsFeasible(pt, 0) {
			line = fmt.Sprintf(msg.LeafFeasible, label)
		}
		sb.WriteString("- ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Builder) composeExercise(page *Page, out *Outcomes) {
	l := b.lesson
	msg := l.Messages
	spec := l.DocumentExercises.Problem
	if l.DocumentExercises.SolutionHeading == "" {
		return
	}

	page.heading(3, l.DocumentExercises.SolutionHeading)
	res := out.ExerciseNaive
	if res == nil || res.Relaxed == nil {
		page.result(true, msg.NoFeasible)
		return
	}
	page.result(false,
		msg.RelaxedTitle,
		FormatPoint(spec, res.Relaxed.Point),
		fmt.Sprintf(msg.RelaxedProfit, res.Relaxed.Objective(b.exercise)),
	)

	if out.ExerciseNaiveErr != nil || res.Best == nil {
		page.result(true, msg.NoIntegral)
		return
	}
	page.result(false,
		msg.IntegralTitle,
		FormatIntPoint(spec, res.Best.IntPoint()),
		fmt.Sprintf(msg.IntegralProfit, FormatNumber(res.BestObjective(b.exercise))),
		fmt.Sprintf(msg.SearchStats, res.Pops, len(res.Leaves)),
	)
	page.markdown(b.naiveNote(b.exercise, res))
}

// FormatPoint renders "Farmhouse (x) = 0.00, Designer (y) = 14.20".
func FormatPoint(spec ProblemSpec, point []float64) string {
	parts := make([]string, len(point))
	for i, v := range point {
		parts[i] = fmt.Sprintf("%s = %.2f", spec.Label(i), v)
	}
	return strings.Join(parts, ", ")
}

func FormatIntPoint(spec ProblemSpec, point []int) string {
	parts := make([]string, len(point))
	for i, v := range point {
		parts[i] = fmt.Sprintf("%s = %d", spec.Label(i), v)
	}
	return strings.Join(parts, ", ")
}

// FormatNumber prints the shortest representation, keeping one decimal for
// whole numbers: 3550 -> "3550.0".
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
