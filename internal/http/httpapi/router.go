package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"tubestudy/internal/http/handlers"
	"tubestudy/internal/infra"
	"tubestudy/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins  []string
	RateLimitPerMin int
	Logger          infra.Logger
}

func NewRouter(app *handlers.App, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(cfg.Logger),
		middleware.CORS(cfg.AllowedOrigins),
	)

	r.Get("/", app.Root)
	r.Get("/health", app.Health)
	r.Get("/generations", app.ListGenerations)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
		r.Post("/process-video", app.ProcessVideo)
		r.Post("/process-video-flashcards", app.ProcessVideoFlashcards)
	})

	return r
}
