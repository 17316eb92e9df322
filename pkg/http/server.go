package http

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/pleguide/pkg/http/router"
	"github.com/lintang-b-s/pleguide/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/pleguide/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	lessonService controllers.LessonService,
	pageRenderer controllers.PageRenderer,
) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", "10s")
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", "60s")
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", "5s")

	config := http_server.Config{
		Port:              viper.GetInt("API_PORT"),
		Timeout:           viper.GetDuration("API_TIMEOUT"),
		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:      viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT"),
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	s.g = &errgroup.Group{}
	s.g.Go(func() error {
		return server.Run(
			ctx, config,
			useRateLimit, lessonService, pageRenderer,
		)
	})

	return s, nil
}

// Wait blocks until the API server returns. A canceled ctx is a clean stop.
func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	err := s.g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// GracefulShutdown blocks until SIGINT or SIGTERM and returns the signal.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	return <-quit
}
