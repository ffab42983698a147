package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"tubestudy/internal/infra"
	"tubestudy/internal/sqlinline"
)

// ProviderGoogle identifies the Gemini credential row in integration_tokens.
const ProviderGoogle = "google"

// Store reads and writes provider credentials kept in Postgres.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// GoogleAPIKey returns the stored key, or "" when none was saved.
func (s *Store) GoogleAPIKey(ctx context.Context) (string, error) {
	return s.token(ctx, ProviderGoogle)
}

func (s *Store) SetGoogleAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("google api key is required")
	}
	return s.upsert(ctx, ProviderGoogle, key, map[string]any{"source": "cli"})
}

func (s *Store) token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

func (s *Store) upsert(ctx context.Context, provider, token string, props map[string]any) error {
	payload := props
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token, raw)
	return err
}

// KeyFunc resolves the model credential at first use.
type KeyFunc func(ctx context.Context) (string, error)

// EnvThenStore prefers the environment value and falls back to the store when
// one is configured. An empty result with a nil error means "no credential".
func EnvThenStore(envKey string, store *Store) KeyFunc {
	envKey = strings.TrimSpace(envKey)
	return func(ctx context.Context) (string, error) {
		if envKey != "" {
			return envKey, nil
		}
		if store == nil {
			return "", nil
		}
		return store.GoogleAPIKey(ctx)
	}
}
