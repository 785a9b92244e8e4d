// Package profiler runs the language-model analyses of a digital twin: free
// text insights, pricing, social graph, lifestyle and metric comparisons.
package profiler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.5-flash-lite"

// Prompt is one system/user exchange. JSON asks the model for a JSON object.
type Prompt struct {
	System string
	User   string
	JSON   bool
}

// Generator produces model output for a prompt, either whole or as chunks
// passed to onChunk in order.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
	Stream(ctx context.Context, p Prompt, onChunk func(string) error) error
}

var ErrNoContent = errors.New("no content generated")

type GeminiClient struct {
	client    *genai.Client
	modelName string
	limiter   *rate.Limiter
}

type GeminiOption func(*GeminiClient)

func WithModel(name string) GeminiOption {
	return func(g *GeminiClient) {
		if name != "" {
			g.modelName = name
		}
	}
}

// WithRateLimit caps model calls per minute. Zero or less disables the limit.
func WithRateLimit(perMinute int) GeminiOption {
	return func(g *GeminiClient) {
		if perMinute <= 0 {
			g.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
}

func NewGeminiClient(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := &GeminiClient{
		client:    client,
		modelName: DefaultModel,
		limiter:   rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// model is built per call since the system instruction differs per prompt.
func (g *GeminiClient) model(p Prompt) *genai.GenerativeModel {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(4096)
	if p.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(p.System)}}
	}
	if p.JSON {
		model.ResponseMIMEType = "application/json"
	}
	return model
}

func (g *GeminiClient) Generate(ctx context.Context, p Prompt) (text string, err error) {
	ctx, span := g.startSpan(ctx, "profiler.generate", p)
	defer func() { endSpan(span, err) }()

	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := g.model(p).GenerateContent(ctx, genai.Text(p.User))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text = responseText(resp)
	if text == "" {
		return "", ErrNoContent
	}
	return text, nil
}

func (g *GeminiClient) Stream(ctx context.Context, p Prompt, onChunk func(string) error) (err error) {
	ctx, span := g.startSpan(ctx, "profiler.stream", p)
	defer func() { endSpan(span, err) }()

	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	iter := g.model(p).GenerateContentStream(ctx, genai.Text(p.User))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to stream content: %w", err)
		}
		if chunk := responseText(resp); chunk != "" {
			if err := onChunk(chunk); err != nil {
				return err
			}
		}
	}
}

func (g *GeminiClient) startSpan(ctx context.Context, name string, p Prompt) (context.Context, trace.Span) {
	ctx, span := otel.Tracer("profiler").Start(ctx, name)
	span.SetAttributes(
		attribute.String("llm.model", g.modelName),
		attribute.Bool("llm.json", p.JSON),
	)
	return ctx, span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
