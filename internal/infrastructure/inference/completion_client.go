package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"hr-assistant-api/internal/config"
	"hr-assistant-api/internal/domain/dialog"
	"hr-assistant-api/internal/infrastructure/metrics"
	"hr-assistant-api/internal/infrastructure/observability"
	"hr-assistant-api/internal/utils/httpclients"
	"hr-assistant-api/internal/utils/platformerrors"
)

const (
	answerTemperature  float32 = 1
	subjectTemperature float32 = 0.6
	subjectMaxTokens           = 20
	maxErrorBody               = 4 * 1024
)

// Options configures a CompletionClient.
type Options struct {
	BaseURL      string
	APIKey       string
	Model        string
	SubjectModel string
	// Sanitizer scrubs question text in debug logs; nil logs it as is.
	Sanitizer *observability.Sanitizer
}

// CompletionClient calls an OpenAI-compatible chat completions endpoint.
type CompletionClient struct {
	client  *resty.Client
	baseURL string
	opts    Options
	log     zerolog.Logger
}

var _ dialog.Completer = (*CompletionClient)(nil)

// NewCompletionClient builds the client from configuration.
func NewCompletionClient(cfg *config.Config, log zerolog.Logger) *CompletionClient {
	client := httpclients.NewClient("openai", cfg.OpenAITimeout)
	return New(client, Options{
		BaseURL:      cfg.OpenAIBaseURL,
		APIKey:       cfg.OpenAISecret,
		Model:        cfg.OpenAIModel,
		SubjectModel: cfg.OpenAISubjectModel,
		Sanitizer:    observability.NewSanitizerFromConfig(cfg),
	}, log)
}

// New wraps an existing resty client.
func New(client *resty.Client, opts Options, log zerolog.Logger) *CompletionClient {
	if opts.SubjectModel == "" {
		opts.SubjectModel = opts.Model
	}
	return &CompletionClient{
		client:  client,
		baseURL: strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		opts:    opts,
		log:     log.With().Str("component", "completion-client").Logger(),
	}
}

// Complete sends the dialog history and returns the trimmed assistant reply.
func (c *CompletionClient) Complete(ctx context.Context, messages []dialog.CompletionMessage, maxTokens int) (string, error) {
	wire := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		wire = append(wire, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}

	return c.create(ctx, "answer", openai.ChatCompletionRequest{
		Model:       c.opts.Model,
		Messages:    wire,
		MaxTokens:   maxTokens,
		Temperature: answerTemperature,
		N:           1,
	})
}

// Subject asks for a short label of question using instruction as the system prompt.
func (c *CompletionClient) Subject(ctx context.Context, instruction, question string) (string, error) {
	return c.create(ctx, "subject", openai.ChatCompletionRequest{
		Model: c.opts.SubjectModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		MaxTokens:   subjectMaxTokens,
		Temperature: subjectTemperature,
		N:           1,
	})
}

func (c *CompletionClient) create(ctx context.Context, purpose string, request openai.ChatCompletionRequest) (string, error) {
	if e := c.log.Debug(); e.Enabled() && len(request.Messages) > 0 {
		e.Str("model", request.Model).
			Str("purpose", purpose).
			Int("messages", len(request.Messages)).
			Str("question", c.opts.Sanitizer.SanitizeText(request.Messages[len(request.Messages)-1].Content)).
			Msg("completion requested")
	}
	start := time.Now()
	content, usage, err := c.do(ctx, request)
	metrics.RecordCompletion(request.Model, purpose, time.Since(start).Seconds())
	if err != nil {
		reason := "upstream"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			reason = "timeout"
		}
		metrics.RecordCompletionError(request.Model, purpose, reason)
		c.log.Warn().
			Err(err).
			Str("model", request.Model).
			Str("purpose", purpose).
			Str("request_id", platformerrors.RequestIDFromContext(ctx)).
			Msg("completion call failed")
		return "", err
	}
	metrics.RecordTokens(request.Model, usage.PromptTokens, usage.CompletionTokens)
	return content, nil
}

func (c *CompletionClient) do(ctx context.Context, request openai.ChatCompletionRequest) (string, openai.Usage, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.opts.APIKey).
		SetBody(request).
		SetDoNotParseResponse(true).
		Post(c.baseURL + "/chat/completions")
	if err != nil {
		// Unparsed responses are never closed by resty.
		if resp != nil && resp.RawResponse != nil && resp.RawResponse.Body != nil {
			_ = resp.RawResponse.Body.Close()
		}
		return "", openai.Usage{}, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "completion request failed", err, "4d6f8a0c-2e4a-4c6e-8a0c-2e4a6c8e0a2d")
	}
	if resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return "", openai.Usage{}, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "completion response has no body", nil, "6f8a0c2e-4a6c-4e8a-a0c2-e4a6c8e0a2d4")
	}
	defer resp.RawResponse.Body.Close()

	if resp.IsError() {
		return "", openai.Usage{}, errorFromBody(ctx, resp.StatusCode(), resp.RawResponse.Body)
	}

	var body openai.ChatCompletionResponse
	if err := json.NewDecoder(resp.RawResponse.Body).Decode(&body); err != nil {
		return "", openai.Usage{}, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "decode completion response", err, "8a0c2e4a-6c8e-4a0c-b2e4-a6c8e0a2d4f6")
	}
	if len(body.Choices) == 0 {
		return "", body.Usage, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "completion response has no choices", nil, "0c2e4a6c-8e0a-4c2e-84a6-c8e0a2d4f6a8")
	}

	return strings.TrimSpace(body.Choices[0].Message.Content), body.Usage, nil
}

// errorFromBody builds an upstream error carrying the provider's own message when it sent one.
func errorFromBody(ctx context.Context, status int, body io.Reader) error {
	raw, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	detail := strings.TrimSpace(string(raw))

	var apiErr openai.ErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != nil && apiErr.Error.Message != "" {
		detail = apiErr.Error.Message
	}

	message := fmt.Sprintf("completion API returned status %d", status)
	if detail != "" {
		message = fmt.Sprintf("%s: %s", message, detail)
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "2e4a6c8e-0a2c-4e4a-96c8-e0a2d4f6a8c0", map[string]any{
		"upstream_status": status,
	})
}
