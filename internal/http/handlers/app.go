package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"tubestudy/internal/domain"
	"tubestudy/internal/infra"
	"tubestudy/internal/studygen"
)

// Generator runs the study material pipeline.
type Generator interface {
	Generate(ctx context.Context, req studygen.Request) (*domain.GenerationResult, error)
}

type App struct {
	Generator Generator
	// History is nil when no database is configured.
	History domain.GenerationRepository
	Logger  infra.Logger
}

func NewApp(gen Generator, history domain.GenerationRepository, logger infra.Logger) *App {
	return &App{Generator: gen, History: history, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, detail string) {
	a.json(w, code, map[string]string{"detail": detail})
}
