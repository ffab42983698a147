package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"tubestudy/internal/domain"
	"tubestudy/internal/middleware"
	"tubestudy/internal/studygen"
)

const (
	maxRequestBody = 64 << 10

	detailUnprocessable = "Could not process the video. Please check if the video has transcripts available."
	detailInvalidBody   = "Request body must be JSON with a non-empty url field."
)

type videoRequest struct {
	URL string `json:"url"`
}

type mcqResponse struct {
	MCQData string `json:"mcq_data"`
	VideoID string `json:"video_id"`
	Status  string `json:"status"`
}

type flashcardResponse struct {
	FlashcardData string `json:"flashcard_data"`
	VideoID       string `json:"video_id"`
	Status        string `json:"status"`
}

// ProcessVideo generates a multiple-choice quiz for the posted video url.
func (a *App) ProcessVideo(w http.ResponseWriter, r *http.Request) {
	res, ok := a.process(w, r, domain.ArtifactMCQ)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, mcqResponse{MCQData: res.Content, VideoID: res.VideoID, Status: "success"})
}

// ProcessVideoFlashcards generates a flashcard set for the posted video url.
func (a *App) ProcessVideoFlashcards(w http.ResponseWriter, r *http.Request) {
	res, ok := a.process(w, r, domain.ArtifactFlashcard)
	if !ok {
		return
	}
	a.json(w, http.StatusOK, flashcardResponse{FlashcardData: res.Content, VideoID: res.VideoID, Status: "success"})
}

func (a *App) process(w http.ResponseWriter, r *http.Request, kind domain.ArtifactKind) (*domain.GenerationResult, bool) {
	var req videoRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		a.error(w, http.StatusBadRequest, detailInvalidBody)
		return nil, false
	}

	requestID := middleware.RequestIDFromContext(r.Context())
	a.Logger.Info().
		Str("request_id", requestID).
		Str("kind", string(kind)).
		Str("url", req.URL).
		Msg("processing video")

	res, err := a.Generator.Generate(r.Context(), studygen.Request{
		URL:       strings.TrimSpace(req.URL),
		Kind:      kind,
		RequestID: requestID,
	})
	if err != nil {
		if domain.IsClientError(err) {
			a.error(w, http.StatusBadRequest, detailUnprocessable)
			return nil, false
		}
		a.error(w, http.StatusInternalServerError, "Internal server error: "+failureSummary(err))
		return nil, false
	}
	return res, true
}

// failureSummary reports the failure kind without the wrapped cause, which
// may carry upstream detail not meant for clients.
func failureSummary(err error) string {
	var stageErr *domain.StageError
	if errors.As(err, &stageErr) && stageErr.Kind != nil {
		return stageErr.Kind.Error()
	}
	return "unexpected failure"
}
