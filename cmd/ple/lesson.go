package main

import (
	"context"
	"os"

	"github.com/lintang-b-s/pleguide/pkg/lesson"
	"github.com/lintang-b-s/pleguide/pkg/terminal"
	"github.com/spf13/cobra"
)

var (
	style string
	width int
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Imprime la guía en la terminal",
	RunE:  runLesson,
}

func init() {
	lessonCmd.Flags().StringVar(&style, "style", "auto", "glamour style (auto, dark, light, notty)")
	lessonCmd.Flags().IntVar(&width, "width", 100, "word wrap width")
}

func runLesson(cmd *cobra.Command, args []string) error {
	log, builder, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	page, err := builder.Build(ctx, lesson.FormState{})
	if err != nil {
		return err
	}

	r, err := terminal.NewRenderer(style, width)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if out == nil {
		out = os.Stdout
	}
	return r.Render(out, page)
}
