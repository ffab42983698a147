package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tubestudy/internal/domain"
	"tubestudy/internal/infra"
	"tubestudy/internal/middleware"
	"tubestudy/internal/studygen"
)

type stubGenerator struct {
	res  *domain.GenerationResult
	err  error
	reqs []studygen.Request
}

func (s *stubGenerator) Generate(_ context.Context, req studygen.Request) (*domain.GenerationResult, error) {
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	res := *s.res
	res.Kind = req.Kind
	return &res, nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestProcessVideoSuccess(t *testing.T) {
	gen := &stubGenerator{res: &domain.GenerationResult{VideoID: "abc123", Content: "S"}}
	app := NewApp(gen, nil, infra.NopLogger())

	tests := []struct {
		name    string
		handler http.HandlerFunc
		field   string
		kind    domain.ArtifactKind
	}{
		{"mcq", app.ProcessVideo, "mcq_data", domain.ArtifactMCQ},
		{"flashcards", app.ProcessVideoFlashcards, "flashcard_data", domain.ArtifactFlashcard},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"url":"https://youtu.be/abc123"}`))
			req = req.WithContext(middleware.WithRequestID(req.Context(), "rid-9"))
			rec := httptest.NewRecorder()
			tc.handler(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			body := decodeBody(t, rec)
			want := map[string]string{tc.field: "S", "video_id": "abc123", "status": "success"}
			if len(body) != len(want) {
				t.Fatalf("body = %v, want %v", body, want)
			}
			for k, v := range want {
				if body[k] != v {
					t.Fatalf("body[%s] = %q, want %q", k, body[k], v)
				}
			}
			last := gen.reqs[len(gen.reqs)-1]
			if last.Kind != tc.kind || last.URL != "https://youtu.be/abc123" || last.RequestID != "rid-9" {
				t.Fatalf("unexpected pipeline request %+v", last)
			}
		})
	}
}

func TestProcessVideoErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantDetail string
		wantCalls  int
	}{
		{
			name:       "malformed body",
			body:       `{"url":`,
			wantStatus: http.StatusBadRequest,
			wantDetail: detailInvalidBody,
		},
		{
			name:       "missing url",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantDetail: detailInvalidBody,
		},
		{
			name:       "invalid url",
			body:       `{"url":"not-a-url"}`,
			err:        &domain.StageError{Stage: domain.StageExtract, Kind: domain.ErrInvalidURL},
			wantStatus: http.StatusBadRequest,
			wantDetail: detailUnprocessable,
			wantCalls:  1,
		},
		{
			name:       "transcript unavailable",
			body:       `{"url":"https://youtu.be/abc123"}`,
			err:        &domain.StageError{Stage: domain.StageFetch, Kind: domain.ErrTranscriptUnavailable, Err: errors.New("disabled")},
			wantStatus: http.StatusBadRequest,
			wantDetail: detailUnprocessable,
			wantCalls:  1,
		},
		{
			name:       "model init",
			body:       `{"url":"https://youtu.be/abc123"}`,
			err:        &domain.StageError{Stage: domain.StageModelInit, Kind: domain.ErrModelInitialization, Err: errors.New("secret detail")},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Internal server error: model initialization failed",
			wantCalls:  1,
		},
		{
			name:       "unclassified",
			body:       `{"url":"https://youtu.be/abc123"}`,
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Internal server error: unexpected failure",
			wantCalls:  1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGenerator{err: tc.err}
			app := NewApp(gen, nil, infra.NopLogger())
			rec := httptest.NewRecorder()
			app.ProcessVideo(rec, httptest.NewRequest(http.MethodPost, "/process-video", strings.NewReader(tc.body)))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if got := decodeBody(t, rec)["detail"]; got != tc.wantDetail {
				t.Fatalf("detail = %q, want %q", got, tc.wantDetail)
			}
			if len(gen.reqs) != tc.wantCalls {
				t.Fatalf("pipeline calls = %d, want %d", len(gen.reqs), tc.wantCalls)
			}
		})
	}
}

func TestRootAndHealth(t *testing.T) {
	app := NewApp(nil, nil, infra.NopLogger())

	rec := httptest.NewRecorder()
	app.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := decodeBody(t, rec)["message"]; got != "YouTube Learning Generator API is running" {
		t.Fatalf("root message = %q", got)
	}

	rec = httptest.NewRecorder()
	app.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if got := decodeBody(t, rec)["status"]; got != "healthy" {
		t.Fatalf("health status = %q", got)
	}
}
