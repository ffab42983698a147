package studygen

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tubestudy/internal/domain"
	"tubestudy/internal/infra"
	"tubestudy/internal/storage"
)

// recordTimeout bounds bookkeeping. Record runs before the response is written,
// so a slow database adds at most this much (plus the export write) to it.
const recordTimeout = 5 * time.Second

// HistoryRecorder stores each outcome in the generation history and, when an
// export store is configured, writes successful artifacts to it. Failures are
// logged and otherwise ignored.
type HistoryRecorder struct {
	Repo    domain.GenerationRepository
	Exports *storage.FileStore
	Logger  infra.Logger
}

func (h *HistoryRecorder) Record(ctx context.Context, o Outcome) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	rec := newRecord(o)
	log := h.Logger.With().Str("request_id", rec.RequestID).Str("video_id", rec.VideoID).Logger()

	if h.Repo != nil {
		if err := h.Repo.Create(ctx, rec); err != nil {
			log.Error().Err(err).Msg("failed to record generation")
		}
	}

	if h.Exports != nil && o.Result != nil {
		key, err := h.Exports.SaveArtifact(ctx, o.Result, rec.ID, o.Started)
		if err != nil {
			log.Error().Err(err).Msg("failed to export artifact")
			return
		}
		log.Debug().Str("key", key).Msg("artifact exported")
	}
}

func newRecord(o Outcome) *domain.GenerationRecord {
	rec := &domain.GenerationRecord{
		ID:        uuid.NewString(),
		RequestID: o.Request.RequestID,
		VideoID:   o.VideoID,
		Kind:      o.Request.Kind,
		Status:    domain.GenerationSucceeded,
		LatencyMS: o.Duration.Milliseconds(),
		CreatedAt: o.Started.UTC(),
	}
	if o.Result != nil {
		rec.Model = o.Result.Model
		rec.TranscriptLength = o.Result.TranscriptLength
	}
	if o.Err != nil {
		rec.Status = domain.GenerationFailed
		rec.ErrorKind = domain.ErrorKind(o.Err)
		rec.ErrorMessage = o.Err.Error()
	}
	return rec
}
