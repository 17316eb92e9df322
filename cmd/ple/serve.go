package main

import (
	"context"

	"github.com/lintang-b-s/pleguide/pkg/http"
	"github.com/lintang-b-s/pleguide/pkg/http/usecases"
	"github.com/lintang-b-s/pleguide/pkg/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var useRateLimit bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sirve la guía como página web y API JSON",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&useRateLimit, "rate-limit", false, "enable the global rate limiter")
}

func runServe(cmd *cobra.Command, args []string) error {
	log, builder, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		return err
	}
	lessonService := usecases.NewLessonService(log, builder)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	api := http.NewServer(log)
	if _, err := api.Use(ctx, log, useRateLimit, lessonService, renderer); err != nil {
		return err
	}

	stopped := make(chan error, 1)
	go func() { stopped <- api.Wait() }()

	go func() {
		signal := http.GracefulShutdown()
		log.Info("PLE Guide Server Stopped", zap.String("signal", signal.String()))
		cancel()
	}()

	return <-stopped
}
