package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lintang-b-s/pleguide/pkg/ilp"
	"github.com/lintang-b-s/pleguide/pkg/lesson"
	"github.com/lintang-b-s/pleguide/pkg/lp"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Resuelve el ejemplo y el ejercicio sin renderizar la guía",
	RunE:  runSolve,
}

func runSolve(cmd *cobra.Command, args []string) error {
	log, builder, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	out, err := builder.Solve(ctx)
	if err != nil {
		return err
	}
	printOutcomes(cmd.OutOrStdout(), builder, out)
	return nil
}

func printOutcomes(w io.Writer, b *lesson.Builder, out *lesson.Outcomes) {
	l := b.Lesson()
	msg := l.Messages
	example := l.WorkedExample.Problem
	exercise := l.DocumentExercises.Problem

	fmt.Fprintf(w, "%s\n", b.Example())
	if out.RelaxedErr != nil {
		fmt.Fprintf(w, "  relajación: %s (%v)\n", msg.NoFeasible, out.RelaxedErr)
	} else {
		fmt.Fprintf(w, "  relajación: (%s) = %.2f\n",
			lesson.FormatPoint(example, out.Relaxed.Point), out.Relaxed.Objective(b.Example()))
	}

	printSearch(w, msg, example, b.Example(), out.Naive, out.NaiveErr)

	fmt.Fprintf(w, "%s\n", b.Exercise())
	printSearch(w, msg, exercise, b.Exercise(), out.ExerciseNaive, out.ExerciseNaiveErr)
}

func printSearch(w io.Writer, msg lesson.Messages, spec lesson.ProblemSpec, p *lp.LinearProgram, res *ilp.NaiveResult, err error) {
	switch {
	case err != nil && errors.Is(err, ilp.ErrNoFeasibleSolution):
		fmt.Fprintf(w, "  redondeo: %s\n", msg.NoIntegral)
	case err != nil && res != nil:
		fmt.Fprintf(w, "  redondeo: %s (%d extracciones)\n", msg.NoIntegral, res.Pops)
	case err != nil:
		fmt.Fprintf(w, "  redondeo: %v\n", err)
	default:
		fmt.Fprintf(w, "  redondeo: (%s) = %s (%d extracciones, %d hojas)\n",
			lesson.FormatIntPoint(spec, res.Best.IntPoint()),
			lesson.FormatNumber(res.BestObjective(p)),
			res.Pops, len(res.Leaves))
		for _, pt := range res.DistinctLeaves() {
			state := "fuera"
			if p.IsFeasible(pt, 0) {
				state = "dentro"
			}
			fmt.Fprintf(w, "    hoja %v %s de la región factible\n", pt, state)
		}
	}
}
