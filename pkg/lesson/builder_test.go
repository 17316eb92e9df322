package lesson

import (
	"context"
	"strings"
	"testing"

	"github.com/lintang-b-s/pleguide/pkg/lp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedSolver map[string]*lp.RelaxedSolution

func (f fixedSolver) Solve(ctx context.Context, p *lp.LinearProgram) (*lp.RelaxedSolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sol, ok := f[p.Name()]
	if !ok {
		return nil, lp.ErrInfeasible
	}
	return sol, nil
}

func newBuilder(t *testing.T, solver lp.Solver, opts ...Option) *Builder {
	t.Helper()
	l, err := Load()
	require.NoError(t, err)
	b, err := NewBuilder(l, solver, zap.NewNop(), opts...)
	require.NoError(t, err)
	return b
}

func resultLines(p *Page) [][]string {
	var out [][]string
	for _, b := range p.Blocks {
		if b.Kind == ResultBlock {
			out = append(out, b.Lines)
		}
	}
	return out
}

func TestBuildWorkedExample(t *testing.T) {
	b := newBuilder(t, lp.NewSimplexSolver())

	page, err := b.Build(context.Background(), FormState{})
	require.NoError(t, err)

	assert.Equal(t, "Programación Lineal Entera", page.Title)
	assert.NotEmpty(t, page.ChartSVG)
	assert.Equal(t, 3, page.Form.NumVars)
	assert.Empty(t, page.FormMessages)

	lines := resultLines(page)
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"No se encontró una solución factible."}, lines[0])
	assert.Equal(t, []string{"No se encontró una solución entera factible."}, lines[1])

	// exercise 8.1
	assert.Equal(t, "x1 = 1.20, x2 = 2.20, x3 = 0.80", lines[2][1])
	assert.Equal(t, "Ganancia máxima aproximada: $13.80", lines[2][2])
	require.Len(t, lines[3], 4)
	assert.Equal(t, "**Solución entera óptima usando Branch and Bound:**", lines[3][0])
	assert.True(t, strings.HasPrefix(lines[3][3], "Candidatos extraídos de la pila:"))
}

func TestBuildReportsRoundedCandidate(t *testing.T) {
	solver := fixedSolver{
		"anna":          {Point: []float64{12.4, 8.8}, Value: -3440},
		"ejercicio-8.1": {Point: []float64{1.2, 2.2, 0.8}, Value: -13.8},
	}
	b := newBuilder(t, solver)

	page, err := b.Build(context.Background(), FormState{})
	require.NoError(t, err)

	lines := resultLines(page)
	require.Len(t, lines, 4)
	assert.Equal(t, []string{
		"**Solución óptima fraccional (sin restricciones enteras):**",
		"Farmhouse (x) = 12.40, Designer (y) = 8.80",
		"Ganancia máxima aproximada: $3440.00",
	}, lines[0])
	assert.Equal(t, []string{
		"**Solución entera óptima usando Branch and Bound:**",
		"Farmhouse (x) = 13, Designer (y) = 9",
		"Ganancia máxima: $3440.0",
	}, lines[1])

	assert.Equal(t, []string{
		"**Solución entera óptima usando Branch and Bound:**",
		"x1 = 2, x2 = 3, x3 = 1",
		"Ganancia máxima: $13.8",
		"Candidatos extraídos de la pila: 79, hojas enteras: 48",
	}, lines[3])

	var notes []string
	for _, blk := range page.Blocks {
		if blk.Kind == MarkdownBlock && strings.HasPrefix(blk.Text, "Nota:") {
			notes = append(notes, blk.Text)
		}
	}
	require.Len(t, notes, 2)
	assert.Contains(t, notes[0], "(12, 8) no cumple las restricciones")
	assert.Contains(t, notes[0], "(13, 9) no cumple las restricciones")
	assert.Contains(t, notes[1], "(1, 2, 1) cumple las restricciones")
	assert.Contains(t, notes[1], "(2, 3, 1) no cumple las restricciones")
}

func TestBuildSubmittedFormOnlyEchoes(t *testing.T) {
	b := newBuilder(t, fixedSolver{})

	form := FormState{NumVars: 4, Objective: "4x1 + 3x2", Constraints: "x1 <= 3", Submitted: true}
	page, err := b.Build(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Resolviendo el problema...",
		"Función de objetivo y restricciones procesadas (en construcción).",
	}, page.FormMessages)
	assert.Equal(t, form, page.Form)
}

func TestBuildCanceled(t *testing.T) {
	b := newBuilder(t, lp.NewSimplexSolver())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, FormState{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{in: 3550, want: "3550.0"},
		{in: 13.8, want: "13.8"},
		{in: -2, want: "-2.0"},
	}
	for _, tt := range testCases {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}
