package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ArtifactKind selects which study material the generation stage produces.
type ArtifactKind string

const (
	ArtifactMCQ       ArtifactKind = "mcq"
	ArtifactFlashcard ArtifactKind = "flashcard"
)

// ParseArtifactKind accepts the canonical names plus a few plural/long aliases.
func ParseArtifactKind(s string) (ArtifactKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mcq", "mcqs", "quiz":
		return ArtifactMCQ, nil
	case "flashcard", "flashcards":
		return ArtifactFlashcard, nil
	default:
		return "", fmt.Errorf("unknown artifact kind %q", s)
	}
}

// DisplayName renders the kind for headings, e.g. "Flashcards".
func (k ArtifactKind) DisplayName() string {
	switch k {
	case ArtifactMCQ:
		return "MCQ Quiz"
	case ArtifactFlashcard:
		return "Flashcards"
	default:
		return cases.Title(language.English).String(string(k))
	}
}

// Valid reports whether k is a supported kind.
func (k ArtifactKind) Valid() bool {
	return k == ArtifactMCQ || k == ArtifactFlashcard
}

// TranscriptSegment is one caption snippet in spoken order.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// SegmentTexts returns the text of every segment, preserving order.
func SegmentTexts(segs []TranscriptSegment) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		out = append(out, s.Text)
	}
	return out
}

// GenerationResult is what a successful pipeline run hands back to the caller.
type GenerationResult struct {
	Kind             ArtifactKind
	VideoID          string
	Content          string
	TranscriptLength int
	Model            string
}
