package domain

import "time"

// GenerationStatus is the outcome stored for one pipeline run.
type GenerationStatus string

const (
	GenerationSucceeded GenerationStatus = "succeeded"
	GenerationFailed    GenerationStatus = "failed"
)

// GenerationRecord is the audit trail of a single request. It is written after
// the pipeline returns and is never read back by the pipeline.
type GenerationRecord struct {
	ID               string
	RequestID        string
	VideoID          string
	Kind             ArtifactKind
	Status           GenerationStatus
	ErrorKind        string
	ErrorMessage     string
	Model            string
	TranscriptLength int
	LatencyMS        int64
	CreatedAt        time.Time
}
