package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tubestudy/internal/infra"
)

// ErrNoModelAvailable is returned when every candidate model failed to initialize.
var ErrNoModelAvailable = errors.New("no gemini model could be initialized")

// KeyFunc resolves the API key when a client is first needed.
type KeyFunc func(ctx context.Context) (string, error)

type ConnectorOptions struct {
	APIKey     KeyFunc
	Models     []string
	BaseURL    string
	Verify     bool
	MaxRetries int
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Connector builds a fresh Client per run, walking the ordered model list and
// keeping the first model that initializes.
type Connector struct {
	opts ConnectorOptions
}

func NewConnector(opts ConnectorOptions) *Connector {
	if len(opts.Models) == 0 {
		opts.Models = []string{DefaultModel}
	}
	if opts.Logger == nil {
		l := infra.NopLogger()
		opts.Logger = &l
	}
	return &Connector{opts: opts}
}

// Connect resolves the credential and returns a client bound to the first
// usable model. Without Verify a model counts as usable once the client is built.
func (c *Connector) Connect(ctx context.Context) (*Client, error) {
	var key string
	if c.opts.APIKey != nil {
		k, err := c.opts.APIKey(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve api key: %w", err)
		}
		key = k
	}
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	var lastErr error
	for _, model := range c.opts.Models {
		client, err := NewClient(Options{
			APIKey:     key,
			BaseURL:    c.opts.BaseURL,
			Model:      model,
			MaxRetries: c.opts.MaxRetries,
			Timeout:    c.opts.Timeout,
			HTTPClient: c.opts.HTTPClient,
			Logger:     c.opts.Logger,
		})
		if err == nil && c.opts.Verify {
			err = client.Verify(ctx)
		}
		if err != nil {
			lastErr = err
			c.opts.Logger.Warn().Err(err).Str("model", model).Msg("genai: model failed to initialize")
			continue
		}
		return client, nil
	}

	if lastErr == nil {
		return nil, ErrNoModelAvailable
	}
	return nil, fmt.Errorf("%w: %w", ErrNoModelAvailable, lastErr)
}
