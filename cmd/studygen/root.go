package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tubestudy/internal/bootstrap"
	"tubestudy/internal/domain"
	"tubestudy/internal/infra"
	"tubestudy/internal/studygen"
)

// generator is the part of studygen.Service the commands drive.
type generator interface {
	Generate(ctx context.Context, req studygen.Request) (*domain.GenerationResult, error)
}

// openGenerator builds the pipeline from the environment. The returned func
// releases it.
var openGenerator = func(ctx context.Context) (generator, func(), error) {
	deps, err := loadDeps(ctx)
	if err != nil {
		return nil, nil, err
	}
	return deps.Service, deps.Close, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "studygen",
		Short:         "Turn a YouTube video into a quiz or flashcards",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("copy", false, "Copy the generated text to the clipboard")
	root.PersistentFlags().Bool("markdown", false, "Print a markdown document with a metadata header")
	root.AddCommand(newGenerateCmd("mcq", "Generate a 10 question multiple-choice quiz"))
	root.AddCommand(newGenerateCmd("flashcards", "Generate a set of 15 flashcards"))
	root.AddCommand(newBundleCmd())
	return root
}

func Execute() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "studygen: %v\n", err)
		os.Exit(1)
	}
}

// loadDeps builds the pipeline from the environment. Logs go to stderr so
// stdout carries only the generated text.
func loadDeps(ctx context.Context) (*bootstrap.Deps, error) {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := infra.NewCLILogger(os.Stderr, cfg.AppEnv).With().Str("cmd", "studygen").Logger()
	return bootstrap.Build(ctx, cfg, logger)
}
