package main

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tubestudy/internal/domain"
	"tubestudy/internal/storage"
	"tubestudy/internal/studygen"
)

func newGenerateCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <youtube-url>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			kind, err := domain.ParseArtifactKind(name)
			if err != nil {
				return err
			}
			return runGenerate(command, args[0], kind)
		},
	}
}

func runGenerate(command *cobra.Command, url string, kind domain.ArtifactKind) error {
	ctx := command.Context()
	gen, closeFn, err := openGenerator(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := generate(ctx, gen, url, kind)
	if err != nil {
		return err
	}

	out := res.Content
	if md, _ := command.Flags().GetBool("markdown"); md {
		out = string(storage.RenderArtifact(res, time.Now()))
	}
	fmt.Fprintln(command.OutOrStdout(), out)

	if cp, _ := command.Flags().GetBool("copy"); cp {
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(command.ErrOrStderr(), "Copied to clipboard.")
	}
	return nil
}

func generate(ctx context.Context, gen generator, url string, kind domain.ArtifactKind) (*domain.GenerationResult, error) {
	res, err := gen.Generate(ctx, studygen.Request{URL: url, Kind: kind, RequestID: uuid.NewString()})
	if err != nil {
		if domain.IsClientError(err) {
			return nil, fmt.Errorf("could not process the video, check that it has transcripts available: %w", err)
		}
		return nil, err
	}
	return res, nil
}
