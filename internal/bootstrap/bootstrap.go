// Package bootstrap assembles the generation pipeline from configuration so
// the API server and the CLI run the same wiring.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"tubestudy/internal/adapter/repo"
	"tubestudy/internal/domain"
	"tubestudy/internal/infra"
	"tubestudy/internal/infra/credentials"
	"tubestudy/internal/providers/genai"
	"tubestudy/internal/storage"
	"tubestudy/internal/studygen"
	"tubestudy/internal/youtube"
)

type Deps struct {
	Service *studygen.Service
	// History is nil without DATABASE_URL.
	History domain.GenerationRepository
	close   []func()
}

// Close releases the database pool when one was opened.
func (d *Deps) Close() {
	for i := len(d.close) - 1; i >= 0; i-- {
		d.close[i]()
	}
}

func Build(ctx context.Context, cfg *infra.Config, logger infra.Logger) (*Deps, error) {
	deps := &Deps{}

	var store *credentials.Store
	var history *repo.GenerationRepositoryPG
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		deps.close = append(deps.close, pool.Close)
		runner := infra.NewSQLRunner(pool, logger)
		store = credentials.NewStore(runner)
		history = repo.NewGenerationRepository(runner)
		deps.History = history
	}

	var exports *storage.FileStore
	if cfg.ExportDir != "" {
		fs, err := storage.NewFileStore(cfg.ExportDir)
		if err != nil {
			deps.Close()
			return nil, err
		}
		exports = fs
		logger.Info().Str("export_dir", fs.BasePath()).Msg("artifact export enabled")
	}

	fetcher, err := youtube.NewFetcher(youtube.FetcherConfig{
		Languages: cfg.TranscriptLanguages,
		Timeout:   cfg.TranscriptTimeout,
	}, nil, logger)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("transcript fetcher: %w", err)
	}

	connector := genai.NewConnector(genai.ConnectorOptions{
		APIKey:     genai.KeyFunc(credentials.EnvThenStore(cfg.GoogleAPIKey, store)),
		Models:     cfg.GeminiModels,
		BaseURL:    cfg.GeminiBaseURL,
		Verify:     cfg.GeminiVerifyModel,
		MaxRetries: cfg.LLMMaxRetries,
		Timeout:    cfg.LLMTimeout,
		HTTPClient: &http.Client{Timeout: cfg.LLMTimeout},
		Logger:     &logger,
	})

	var opts []studygen.Option
	if history != nil || exports != nil {
		rec := &studygen.HistoryRecorder{Exports: exports, Logger: logger}
		if history != nil {
			rec.Repo = history
		}
		opts = append(opts, studygen.WithRecorder(rec))
	}

	deps.Service = studygen.NewService(fetcher, studygen.GenaiConnector(connector), logger, opts...)
	return deps, nil
}
