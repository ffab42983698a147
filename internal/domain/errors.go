package domain

import (
	"errors"
	"fmt"
)

var (
	// Pipeline failure kinds. Callers branch on these with errors.Is.
	ErrInvalidURL            = errors.New("invalid youtube url")
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrModelInitialization   = errors.New("model initialization failed")
	ErrExecution             = errors.New("generation execution failed")
)

// Stage names used in logs and stage errors.
const (
	StageExtract   = "extract"
	StageFetch     = "fetch"
	StageModelInit = "model_init"
	StageExecute   = "execute"
)

// StageError attaches the failing stage and failure kind to an underlying error.
type StageError struct {
	Stage string
	Kind  error
	Err   error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the cause.
func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsClientError reports whether err should be reported to the caller as a bad request.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidURL) || errors.Is(err, ErrTranscriptUnavailable)
}

// ErrorKind returns a short stable label for the failure kind of err.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrTranscriptUnavailable):
		return "transcript_unavailable"
	case errors.Is(err, ErrModelInitialization):
		return "model_initialization"
	case errors.Is(err, ErrExecution):
		return "execution"
	default:
		return "internal"
	}
}
