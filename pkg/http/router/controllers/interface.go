package controllers

import (
	"context"
	"io"

	"github.com/lintang-b-s/pleguide/pkg/ilp"
	"github.com/lintang-b-s/pleguide/pkg/lesson"
	"github.com/lintang-b-s/pleguide/pkg/lp"
)

type LessonService interface {
	Page(ctx context.Context, form lesson.FormState) (*lesson.Page, error)
	Chart(ctx context.Context) ([]byte, error)
	Relaxation(ctx context.Context, problem string) (*lp.LinearProgram, *lp.RelaxedSolution, error)
	RoundingSearch(ctx context.Context, problem string) (*lp.LinearProgram, *ilp.NaiveResult, error)
	Messages() lesson.Messages
	FormBounds() (min, max, def int)
}

type PageRenderer interface {
	Render(w io.Writer, page *lesson.Page) error
}
