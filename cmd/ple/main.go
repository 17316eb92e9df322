package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lintang-b-s/pleguide/pkg/lesson"
	"github.com/lintang-b-s/pleguide/pkg/logger"
	"github.com/lintang-b-s/pleguide/pkg/lp"
	"github.com/lintang-b-s/pleguide/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configDir string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "ple",
	Short: "Guía de Programación Lineal Entera",
	Long: `ple sirve la guía de Programación Lineal Entera como página web,
la imprime en la terminal o resuelve el ejemplo desde la línea de comandos.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./data/", "directory holding config.yaml")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "solver timeout")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(solveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup reads the configuration and builds the logger and the lesson builder
// every subcommand shares.
func setup() (*zap.Logger, *lesson.Builder, error) {
	if err := util.ReadConfig(configDir); err != nil {
		return nil, nil, err
	}
	log, err := logger.New()
	if err != nil {
		return nil, nil, err
	}

	l, err := lesson.Load()
	if err != nil {
		return nil, nil, err
	}

	viper.SetDefault("WORKERS", 4)
	viper.SetDefault("CHART_WIDTH_INCH", 8.0)
	viper.SetDefault("CHART_HEIGHT_INCH", 6.0)

	builder, err := lesson.NewBuilder(l, lp.NewSimplexSolver(), log,
		lesson.WithWorkers(viper.GetInt("WORKERS")),
		lesson.WithChartSize(viper.GetFloat64("CHART_WIDTH_INCH"), viper.GetFloat64("CHART_HEIGHT_INCH")),
	)
	if err != nil {
		return nil, nil, err
	}
	return log, builder, nil
}
