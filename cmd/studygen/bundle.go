package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tubestudy/internal/domain"
	"tubestudy/internal/storage"
	"tubestudy/pkg/bundle"
)

func newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle <youtube-url>",
		Short: "Generate both the quiz and the flashcards and zip them",
		Args:  cobra.ExactArgs(1),
		RunE:  runBundle,
	}
	cmd.Flags().StringP("output", "o", "", "Zip file to write (default <video_id>.zip)")
	return cmd
}

func runBundle(command *cobra.Command, args []string) error {
	ctx := command.Context()
	gen, closeFn, err := openGenerator(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	var (
		entries []bundle.Entry
		videoID string
	)
	for _, kind := range []domain.ArtifactKind{domain.ArtifactMCQ, domain.ArtifactFlashcard} {
		res, err := generate(ctx, gen, args[0], kind)
		if err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
		videoID = res.VideoID
		now := time.Now()
		entries = append(entries, bundle.Entry{
			Name:     fmt.Sprintf("%s/%s.md", kind, res.VideoID),
			Modified: now,
			Data:     storage.RenderArtifact(res, now),
		})
	}

	data, err := bundle.Archive(entries)
	if err != nil {
		return err
	}
	output, _ := command.Flags().GetString("output")
	if strings.TrimSpace(output) == "" {
		output = videoID + ".zip"
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(command.OutOrStdout(), "Wrote %s (%d documents)\n", output, len(entries))
	return nil
}
