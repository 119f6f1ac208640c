package assist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"snipbox/logging"
	"snipbox/model"
)

const (
	DefaultModel   = "gpt-4o-mini"
	defaultTimeout = 45 * time.Second
)

const systemPrompt = `You write reusable shell command templates.
Reply with a single JSON object and nothing else, using exactly these keys:
  "title": short name for the command,
  "template": the command; mark every value the user must supply as {{name}},
  "description": one sentence on what it does,
  "category": one broad category such as Git, Docker, Files or Networking,
  "tags": array of short lowercase keywords.
Placeholder names must not contain "}". Do not wrap the JSON in markdown.`

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	// Retries is how often a failed request is retried; zero disables it.
	Retries int
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// OpenAI drafts commands with the chat completions API.
type OpenAI struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAI(cfg Config) (*OpenAI, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("assist: no API key configured")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.Retries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &OpenAI{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

func (o *OpenAI) Suggest(ctx context.Context, prompt string) (model.CommandForm, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return model.CommandForm{}, ErrEmptyPrompt
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	logging.Debug().Str("model", o.model).Msg("assist request")
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		logging.Warn().Err(err).Msg("assist request failed")
		return model.CommandForm{}, fmt.Errorf("assist request: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return model.CommandForm{}, fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}

	form, err := ParseSuggestion(resp.Choices[0].Message.Content)
	if err != nil {
		logging.Warn().Err(err).Msg("assist reply rejected")
		return model.CommandForm{}, err
	}
	return form, nil
}
