package studygen

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"tubestudy/internal/crew"
	"tubestudy/internal/domain"
	"tubestudy/internal/infra"
	"tubestudy/internal/providers/genai"
	"tubestudy/internal/youtube"
)

// TranscriptSource returns the caption segments of a video in spoken order.
type TranscriptSource interface {
	Fetch(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error)
}

// Model is a language model client bound to one model id.
type Model interface {
	crew.LLM
	Model() string
}

// ConnectFunc initializes a model client. It is called once per run, only
// after a transcript is in hand.
type ConnectFunc func(ctx context.Context) (Model, error)

// GenaiConnector adapts a genai.Connector to a ConnectFunc.
func GenaiConnector(c *genai.Connector) ConnectFunc {
	return func(ctx context.Context) (Model, error) {
		client, err := c.Connect(ctx)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// Request identifies one generation.
type Request struct {
	URL       string
	Kind      domain.ArtifactKind
	RequestID string
}

// Outcome describes a finished run, successful or not.
type Outcome struct {
	Request  Request
	VideoID  string
	Result   *domain.GenerationResult
	Err      error
	Started  time.Time
	Duration time.Duration
}

// Recorder observes outcomes. It cannot change the result handed to the caller.
type Recorder interface {
	Record(ctx context.Context, o Outcome)
}

// Service drives one video through extraction, transcript fetch,
// normalization and the two task crew.
type Service struct {
	transcripts TranscriptSource
	connect     ConnectFunc
	recorder    Recorder
	logger      infra.Logger
	now         func() time.Time
}

type Option func(*Service)

// WithRecorder attaches a Recorder that sees every outcome.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func NewService(transcripts TranscriptSource, connect ConnectFunc, logger infra.Logger, opts ...Option) *Service {
	s := &Service{
		transcripts: transcripts,
		connect:     connect,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs the full pipeline for req. Failures are *domain.StageError
// values carrying one of the domain failure kinds.
func (s *Service) Generate(ctx context.Context, req Request) (*domain.GenerationResult, error) {
	started := s.now()
	videoID, res, err := s.run(ctx, req)
	// Recording is synchronous; the recorder bounds its own latency.
	if s.recorder != nil {
		s.recorder.Record(ctx, Outcome{
			Request:  req,
			VideoID:  videoID,
			Result:   res,
			Err:      err,
			Started:  started,
			Duration: s.now().Sub(started),
		})
	}
	return res, err
}

func (s *Service) run(ctx context.Context, req Request) (string, *domain.GenerationResult, error) {
	log := s.logger.With().Str("request_id", req.RequestID).Str("kind", string(req.Kind)).Logger()

	if !req.Kind.Valid() {
		return "", nil, s.fail(log, domain.StageExtract, domain.ErrInvalidURL, fmt.Errorf("unsupported artifact kind %q", req.Kind))
	}

	videoID, ok := youtube.ExtractVideoID(req.URL)
	if !ok {
		return "", nil, s.fail(log, domain.StageExtract, domain.ErrInvalidURL, nil)
	}
	log = log.With().Str("video_id", videoID).Logger()

	segments, err := s.transcripts.Fetch(ctx, videoID)
	if err == nil && len(segments) == 0 {
		err = youtube.ErrNoSegments
	}
	if err != nil {
		return videoID, nil, s.fail(log, domain.StageFetch, domain.ErrTranscriptUnavailable, err)
	}

	transcript := youtube.Normalize(domain.SegmentTexts(segments))
	log.Debug().Int("segments", len(segments)).Int("transcript_length", utf8.RuneCountInString(transcript)).Msg("transcript ready")

	model, err := s.connect(ctx)
	if err != nil {
		return videoID, nil, s.fail(log, domain.StageModelInit, domain.ErrModelInitialization, err)
	}
	log = log.With().Str("model", model.Model()).Logger()
	log.Info().Msg("connected to model")

	tasks, err := BuildTasks(model, req.Kind)
	if err != nil {
		return videoID, nil, s.fail(log, domain.StageExecute, domain.ErrExecution, err)
	}
	c := &crew.Crew{Tasks: tasks, Process: crew.Sequential, Logger: &log}
	outputs, err := c.Kickoff(ctx, TaskInputs(videoID, transcript))
	if err != nil {
		return videoID, nil, s.fail(log, domain.StageExecute, domain.ErrExecution, err)
	}

	res := &domain.GenerationResult{
		Kind:             req.Kind,
		VideoID:          videoID,
		Content:          outputs[len(outputs)-1],
		TranscriptLength: utf8.RuneCountInString(transcript),
		Model:            model.Model(),
	}
	log.Info().Int("output_length", len(res.Content)).Msg("generation succeeded")
	return videoID, res, nil
}

func (s *Service) fail(log infra.Logger, stage string, kind, cause error) error {
	ev := log.Error()
	if errors.Is(cause, youtube.ErrTranscriptsDisabled) {
		ev = log.Warn()
	}
	if cause != nil {
		ev = ev.Err(cause).Str("error_type", errorType(cause))
	}
	ev.Str("stage", stage).Msg(kind.Error())
	return &domain.StageError{Stage: stage, Kind: kind, Err: cause}
}

// errorType names the innermost error in a single wrap chain.
func errorType(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}
