package lesson

import (
	_ "embed"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/pleguide/pkg/chart"
	"github.com/lintang-b-s/pleguide/pkg/lp"
	"gopkg.in/yaml.v3"
)

//go:embed lesson.yaml
var defaultLesson []byte

type Lesson struct {
	PageTitle         string            `yaml:"page_title" validate:"required"`
	Title             string            `yaml:"title" validate:"required"`
	Subtitle          string            `yaml:"subtitle"`
	Introduction      TextSection       `yaml:"introduction"`
	WorkedExample     WorkedExample     `yaml:"worked_example"`
	Relaxation        RelaxationSection `yaml:"relaxation"`
	Exercises         ExercisesSection  `yaml:"exercises"`
	DocumentExercises DocumentExercises `yaml:"document_exercises"`
	Messages          Messages          `yaml:"messages"`
}

type TextSection struct {
	Heading string `yaml:"heading" validate:"required"`
	Body    string `yaml:"body"`
}

type WorkedExample struct {
	Heading  string       `yaml:"heading" validate:"required"`
	Body     string       `yaml:"body"`
	Formulas []string     `yaml:"formulas"`
	Problem  ProblemSpec  `yaml:"problem"`
	Chart    ChartSection `yaml:"chart"`
}

type ChartSection struct {
	Heading string  `yaml:"heading"`
	Title   string  `yaml:"title"`
	XLabel  string  `yaml:"x_label"`
	YLabel  string  `yaml:"y_label"`
	XMin    float64 `yaml:"x_min"`
	XMax    float64 `yaml:"x_max" validate:"gtfield=XMin"`
	YMin    float64 `yaml:"y_min"`
	YMax    float64 `yaml:"y_max" validate:"gtfield=YMin"`
	Samples int     `yaml:"samples" validate:"gte=2"`
}

type RelaxationSection struct {
	Heading string `yaml:"heading" validate:"required"`
	After   string `yaml:"after"`
}

type ExercisesSection struct {
	Heading string      `yaml:"heading" validate:"required"`
	Body    string      `yaml:"body"`
	Form    FormSection `yaml:"form"`
}

type FormSection struct {
	Heading          string `yaml:"heading"`
	NumVarsLabel     string `yaml:"num_vars_label"`
	NumVarsMin       int    `yaml:"num_vars_min" validate:"gte=1"`
	NumVarsMax       int    `yaml:"num_vars_max" validate:"gtefield=NumVarsMin"`
	NumVarsDefault   int    `yaml:"num_vars_default" validate:"gtefield=NumVarsMin,ltefield=NumVarsMax"`
	ObjectiveLabel   string `yaml:"objective_label"`
	ConstraintsLabel string `yaml:"constraints_label"`
	SubmitLabel      string `yaml:"submit_label" validate:"required"`
}

type DocumentExercises struct {
	Heading         string      `yaml:"heading" validate:"required"`
	Body            string      `yaml:"body"`
	SolutionHeading string      `yaml:"solution_heading"`
	Problem         ProblemSpec `yaml:"problem"`
}

type Messages struct {
	RelaxedTitle   string `yaml:"relaxed_title" validate:"required"`
	RelaxedProfit  string `yaml:"relaxed_profit" validate:"required"`
	NoFeasible     string `yaml:"no_feasible" validate:"required"`
	IntegralTitle  string `yaml:"integral_title" validate:"required"`
	IntegralProfit string `yaml:"integral_profit" validate:"required"`
	NoIntegral     string `yaml:"no_integral" validate:"required"`
	NaiveNote      string `yaml:"naive_note"`
	LeafFeasible   string `yaml:"leaf_feasible" validate:"required"`
	LeafInfeasible string `yaml:"leaf_infeasible" validate:"required"`
	SearchStats    string `yaml:"search_stats" validate:"required"`
	ChartFailed    string `yaml:"chart_failed" validate:"required"`
	ChartTerminal  string `yaml:"chart_terminal"`
	FormTerminal   string `yaml:"form_terminal"`
	Solving        string `yaml:"solving" validate:"required"`
	InConstruction string `yaml:"in_construction" validate:"required"`
}

type ProblemSpec struct {
	Name        string           `yaml:"name" validate:"required"`
	Maximize    bool             `yaml:"maximize"`
	Objective   []float64        `yaml:"objective" validate:"required,min=1"`
	Labels      []string         `yaml:"labels"`
	Constraints []ConstraintSpec `yaml:"constraints" validate:"dive"`
}

type ConstraintSpec struct {
	Coeffs []float64 `yaml:"coeffs" validate:"required"`
	Sense  string    `yaml:"sense" validate:"oneof=<= >= ="`
	RHS    float64   `yaml:"rhs"`
}

// Program builds the immutable linear program described by the spec.
func (ps ProblemSpec) Program() (*lp.LinearProgram, error) {
	rows := make([]lp.Constraint, 0, len(ps.Constraints))
	for _, c := range ps.Constraints {
		var sense lp.Sense
		switch c.Sense {
		case "<=":
			sense = lp.LessEqual
		case ">=":
			sense = lp.GreaterEqual
		case "=":
			sense = lp.Equal
		default:
			return nil, fmt.Errorf("problem %s: unknown sense %q", ps.Name, c.Sense)
		}
		rows = append(rows, lp.Constraint{Coeffs: c.Coeffs, Sense: sense, RHS: c.RHS})
	}
	return lp.NewLinearProgram(ps.Name, ps.Objective, ps.Maximize, rows...)
}

// Label names variable i, falling back to x1, x2, ...
func (ps ProblemSpec) Label(i int) string {
	if i < len(ps.Labels) && ps.Labels[i] != "" {
		return ps.Labels[i]
	}
	return fmt.Sprintf("x%d", i+1)
}

func (cs ChartSection) Region() chart.FeasibleRegion {
	return chart.FeasibleRegion{
		Title:   cs.Title,
		XLabel:  cs.XLabel,
		YLabel:  cs.YLabel,
		XMin:    cs.XMin,
		XMax:    cs.XMax,
		YMin:    cs.YMin,
		YMax:    cs.YMax,
		Samples: cs.Samples,
	}
}

// Load parses the embedded lesson.
func Load() (*Lesson, error) {
	return Parse(defaultLesson)
}

func Parse(data []byte) (*Lesson, error) {
	var l Lesson
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("lesson: %w", err)
	}
	if err := validator.New().Struct(l); err != nil {
		return nil, fmt.Errorf("lesson: %w", err)
	}
	for _, ps := range []ProblemSpec{l.WorkedExample.Problem, l.DocumentExercises.Problem} {
		if _, err := ps.Program(); err != nil {
			return nil, fmt.Errorf("lesson: %w", err)
		}
	}
	return &l, nil
}
