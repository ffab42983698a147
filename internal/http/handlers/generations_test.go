package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tubestudy/internal/domain"
	"tubestudy/internal/infra"
)

type stubHistory struct {
	records []domain.GenerationRecord
	err     error
	limit   int
}

func (s *stubHistory) Create(context.Context, *domain.GenerationRecord) error { return nil }

func (s *stubHistory) ListRecent(_ context.Context, limit int) ([]domain.GenerationRecord, error) {
	s.limit = limit
	return s.records, s.err
}

func TestListGenerations(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	history := &stubHistory{records: []domain.GenerationRecord{{
		ID:        "g1",
		VideoID:   "abc123",
		Kind:      domain.ArtifactMCQ,
		Status:    domain.GenerationSucceeded,
		Model:     "gemini-1.5-flash",
		LatencyMS: 1200,
		CreatedAt: created,
	}}}
	app := NewApp(nil, history, infra.NopLogger())

	rec := httptest.NewRecorder()
	app.ListGenerations(rec, httptest.NewRequest(http.MethodGet, "/generations?limit=5", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if history.limit != 5 {
		t.Fatalf("limit = %d, want 5", history.limit)
	}
	var body struct {
		Items []generationItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].ID != "g1" || body.Items[0].Kind != "mcq" || !body.Items[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected items %+v", body.Items)
	}
}

func TestListGenerationsErrors(t *testing.T) {
	tests := []struct {
		name    string
		history domain.GenerationRepository
		query   string
		want    int
	}{
		{"no database", nil, "", http.StatusServiceUnavailable},
		{"bad limit", &stubHistory{}, "?limit=abc", http.StatusBadRequest},
		{"negative limit", &stubHistory{}, "?limit=-1", http.StatusBadRequest},
		{"query failure", &stubHistory{err: errors.New("db down")}, "", http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := NewApp(nil, tc.history, infra.NopLogger())
			rec := httptest.NewRecorder()
			app.ListGenerations(rec, httptest.NewRequest(http.MethodGet, "/generations"+tc.query, nil))
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
