package usecases

import (
	"context"

	"github.com/lintang-b-s/pleguide/pkg/lesson"
	"github.com/lintang-b-s/pleguide/pkg/lp"
)

type PageBuilder interface {
	Lesson() *lesson.Lesson
	Example() *lp.LinearProgram
	Exercise() *lp.LinearProgram
	Solve(ctx context.Context) (*lesson.Outcomes, error)
	Compose(out *lesson.Outcomes, form lesson.FormState) *lesson.Page
}
