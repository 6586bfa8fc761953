package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// Invoker is the boundary to the generative backend. Implementations make
// exactly one outbound call per invocation; retries are caller policy.
type Invoker interface {
	Generate(ctx context.Context, model Model, messages []*Message, cfg *GenerateConfig) (string, error)
	Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error)
}

// GenerateConfig carries the sampling settings for one Generate call.
// Nil pointer fields fall back to the backend defaults below.
type GenerateConfig struct {
	Temperature *float32
	TopP        *float32
	TopK        *float32
	MaxTokens   int32
}

// Backend generation defaults, applied when the caller sets nothing.
const (
	defaultTemperature float32 = 0.7
	defaultTopP        float32 = 0.95
	defaultTopK        float32 = 40
	defaultMaxTokens   int32   = 8192
)

const embeddingModel = "embedding-001"

func (o *Options) generateConfig() *GenerateConfig {
	return &GenerateConfig{
		Temperature: o.Temperature,
		TopP:        o.TopP,
		TopK:        o.TopK,
		MaxTokens:   o.MaxTokens,
	}
}

// GoogleInvoker implements Invoker using the Google GenAI client.
type GoogleInvoker struct {
	client *genai.Client
	log    *slog.Logger
}

// NewGoogleInvoker wraps a genai client. A nil logger falls back to
// slog.Default().
func NewGoogleInvoker(client *genai.Client, log *slog.Logger) *GoogleInvoker {
	if log == nil {
		log = slog.Default()
	}
	return &GoogleInvoker{client: client, log: log}
}

// Generate sends one multimodal request and returns the reply text.
func (g *GoogleInvoker) Generate(ctx context.Context, model Model, messages []*Message, cfg *GenerateConfig) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("%w: client not initialized", ErrUpstreamUnavailable)
	}
	if model == "" {
		return "", fmt.Errorf("%w: model not specified", ErrInvalidInput)
	}

	var contents []*genai.Content
	for _, msg := range messages {
		var parts []*genai.Part
		for _, part := range msg.Parts {
			switch part.Type {
			case "text":
				parts = append(parts, genai.NewPartFromText(part.Text))
			case "image":
				parts = append(parts, genai.NewPartFromBytes(part.Data, part.MimeType))
			default:
				return "", fmt.Errorf("%w: unsupported part type %q", ErrInvalidInput, part.Type)
			}
		}
		if len(parts) == 0 {
			continue
		}
		role := genai.RoleUser
		if msg.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromParts(parts, genai.Role(role)))
	}
	if len(contents) == 0 {
		return "", fmt.Errorf("%w: no content provided", ErrInvalidInput)
	}

	config := &genai.GenerateContentConfig{}
	if cfg == nil {
		cfg = &GenerateConfig{}
	}
	config.Temperature = orDefaultFloat(cfg.Temperature, defaultTemperature)
	config.TopP = orDefaultFloat(cfg.TopP, defaultTopP)
	config.TopK = orDefaultFloat(cfg.TopK, defaultTopK)
	config.MaxOutputTokens = cfg.MaxTokens
	if config.MaxOutputTokens == 0 {
		config.MaxOutputTokens = defaultMaxTokens
	}

	g.log.Debug("Generating content", "model", string(model), "content_count", len(contents))

	resp, err := g.client.Models.GenerateContent(ctx, string(model), contents, config)
	if err != nil {
		return "", classifyUpstreamError(err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrInternal)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no parts in candidate content", ErrInternal)
	}
	text := candidate.Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("%w: no text in first part of response", ErrInternal)
	}

	g.log.Debug("Generated content", "model", string(model), "response_length", len(text))
	return text, nil
}

// Embed returns one embedding vector per input text, in input order.
func (g *GoogleInvoker) Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if g.client == nil {
		return nil, fmt.Errorf("%w: client not initialized", ErrUpstreamUnavailable)
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	config := &genai.EmbedContentConfig{}
	if taskType != "" {
		config.TaskType = strings.ToUpper(taskType)
	}

	resp, err := g.client.Models.EmbedContent(ctx, embeddingModel, contents, config)
	if err != nil {
		return nil, classifyUpstreamError(err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrInternal, len(resp.Embeddings), len(texts))
	}

	out := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		out[i] = e.Values
	}
	return out, nil
}

// classifyUpstreamError maps transport failures onto the error taxonomy so
// callers can tell recoverable conditions apart. The original error text is
// preserved in the wrap.
func classifyUpstreamError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 400, 404:
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case 401, 403:
			return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		case 408, 504:
			return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		case 429:
			return fmt.Errorf("%w: %v", ErrUpstreamRateLimited, err)
		case 500, 502, 503:
			return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		default:
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	// Network-level failures (no HTTP status at all).
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}

func orDefaultFloat(v *float32, def float32) *float32 {
	if v != nil {
		return v
	}
	return &def
}
