package handlers

import (
	"net/http"
	"strconv"
	"time"
)

type generationItem struct {
	ID               string    `json:"id"`
	RequestID        string    `json:"request_id,omitempty"`
	VideoID          string    `json:"video_id"`
	Kind             string    `json:"kind"`
	Status           string    `json:"status"`
	ErrorKind        string    `json:"error_kind,omitempty"`
	Model            string    `json:"model,omitempty"`
	TranscriptLength int       `json:"transcript_length"`
	LatencyMS        int64     `json:"latency_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListGenerations returns the most recent pipeline runs.
func (a *App) ListGenerations(w http.ResponseWriter, r *http.Request) {
	if a.History == nil {
		a.error(w, http.StatusServiceUnavailable, "Generation history is not configured.")
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			a.error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}
	records, err := a.History.ListRecent(r.Context(), limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to list generations")
		a.error(w, http.StatusInternalServerError, "Internal server error: failed to list generations")
		return
	}
	items := make([]generationItem, 0, len(records))
	for _, rec := range records {
		items = append(items, generationItem{
			ID:               rec.ID,
			RequestID:        rec.RequestID,
			VideoID:          rec.VideoID,
			Kind:             string(rec.Kind),
			Status:           string(rec.Status),
			ErrorKind:        rec.ErrorKind,
			Model:            rec.Model,
			TranscriptLength: rec.TranscriptLength,
			LatencyMS:        rec.LatencyMS,
			CreatedAt:        rec.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
