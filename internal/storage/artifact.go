package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tubestudy/internal/domain"
)

// ArtifactKey is the relative path an artifact is exported to.
func ArtifactKey(kind domain.ArtifactKind, videoID, generationID string) string {
	return fmt.Sprintf("%s/%s-%s.md", kind, videoID, generationID)
}

// RenderArtifact formats a result as a standalone markdown document.
func RenderArtifact(res *domain.GenerationResult, generatedAt time.Time) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", res.Kind.DisplayName())
	fmt.Fprintf(&sb, "- Video: https://www.youtube.com/watch?v=%s\n", res.VideoID)
	if res.Model != "" {
		fmt.Fprintf(&sb, "- Model: %s\n", res.Model)
	}
	fmt.Fprintf(&sb, "- Transcript length: %d characters\n", res.TranscriptLength)
	if !generatedAt.IsZero() {
		fmt.Fprintf(&sb, "- Generated: %s\n", generatedAt.UTC().Format(time.RFC3339))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.TrimSpace(res.Content))
	sb.WriteString("\n")
	return []byte(sb.String())
}

// SaveArtifact renders res and writes it under ArtifactKey.
func (s *FileStore) SaveArtifact(ctx context.Context, res *domain.GenerationResult, generationID string, generatedAt time.Time) (string, error) {
	if res == nil {
		return "", fmt.Errorf("storage: nil artifact")
	}
	return s.Write(ctx, ArtifactKey(res.Kind, res.VideoID, generationID), RenderArtifact(res, generatedAt))
}
