package repo

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"tubestudy/internal/domain"
	"tubestudy/internal/infra"
	"tubestudy/internal/sqlinline"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	maxErrorMessage  = 500
)

// GenerationRepositoryPG implements domain.GenerationRepository on Postgres.
type GenerationRepositoryPG struct {
	sql infra.SQLExecutor
	now func() time.Time
}

// NewGenerationRepository creates a repository backed by the given executor.
func NewGenerationRepository(sql infra.SQLExecutor) *GenerationRepositoryPG {
	return &GenerationRepositoryPG{sql: sql, now: time.Now}
}

// Create inserts rec, assigning an id and timestamp when missing.
func (r *GenerationRepositoryPG) Create(ctx context.Context, rec *domain.GenerationRecord) error {
	if rec == nil {
		return errors.New("generation record is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now().UTC()
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertGeneration,
		rec.ID,
		rec.RequestID,
		rec.VideoID,
		string(rec.Kind),
		string(rec.Status),
		rec.ErrorKind,
		truncate(rec.ErrorMessage, maxErrorMessage),
		rec.Model,
		rec.TranscriptLength,
		rec.LatencyMS,
		rec.CreatedAt,
	)
	return err
}

// ListRecent returns the newest records first.
func (r *GenerationRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.GenerationRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListRecentGenerations, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.GenerationRecord
	for rows.Next() {
		var rec domain.GenerationRecord
		var kind, status string
		if err := rows.Scan(
			&rec.ID,
			&rec.RequestID,
			&rec.VideoID,
			&kind,
			&status,
			&rec.ErrorKind,
			&rec.ErrorMessage,
			&rec.Model,
			&rec.TranscriptLength,
			&rec.LatencyMS,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Kind = domain.ArtifactKind(kind)
		rec.Status = domain.GenerationStatus(status)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

var _ domain.GenerationRepository = (*GenerationRepositoryPG)(nil)
