package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pkordes/itinerary-planner/internal/domain"
)

// LLMConfig configures the chat-completions client.
type LLMConfig struct {
	BaseURL string // e.g. https://api.openai.com/v1
	APIKey  string
	Model   string
	Timeout time.Duration
}

// LLM is a Synthesizer backed by an OpenAI-compatible chat completions API.
type LLM struct {
	client *resty.Client
	model  string
	log    *slog.Logger
}

// NewLLM creates an LLM client. A zero Timeout means no client-side limit
// beyond the caller's context.
func NewLLM(cfg LLMConfig, log *slog.Logger) *LLM {
	if log == nil {
		log = slog.Default()
	}
	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(cfg.APIKey)
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	return &LLM{client: c, model: cfg.Model, log: log}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Synthesize asks the model for a complete itinerary.
func (l *LLM) Synthesize(ctx context.Context, trip domain.TripRequest, supply domain.SupplySnapshot) ([]domain.ItineraryDay, error) {
	prompt, err := generatePrompt(trip, supply)
	if err != nil {
		return nil, fmt.Errorf("synth.LLM.Synthesize: %w", err)
	}
	content, err := l.complete(ctx, generateSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("synth.LLM.Synthesize: %w", err)
	}
	days, err := parseDays(content, trip, coverAll).Unwrap()
	if err != nil {
		return nil, fmt.Errorf("synth.LLM.Synthesize: %w", err)
	}
	return days, nil
}

// Resynthesize asks the model to regenerate the scope in in.
func (l *LLM) Resynthesize(ctx context.Context, in ResynthesisInput) ([]domain.ItineraryDay, error) {
	prompt, err := regeneratePrompt(in)
	if err != nil {
		return nil, fmt.Errorf("synth.LLM.Resynthesize: %w", err)
	}
	content, err := l.complete(ctx, regenerateSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("synth.LLM.Resynthesize: %w", err)
	}

	cov := allowGaps
	if in.Scope.Section == domain.SectionEntire {
		cov = coverAllOrNone
	}
	days, err := parseDays(content, in.Trip, cov).Unwrap()
	if err != nil {
		return nil, fmt.Errorf("synth.LLM.Resynthesize: %w", err)
	}
	return days, nil
}

// complete sends one chat completion and returns the first choice's content.
// Transport and API failures are reported as domain.ErrSynthesis.
func (l *LLM) complete(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: l.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	start := time.Now()
	resp, err := l.client.R().
		SetContext(ctx).
		SetBody(&req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: chat request: %w", domain.ErrSynthesis, err)
	}
	l.log.DebugContext(ctx, "chat completion",
		"model", l.model,
		"status", resp.StatusCode(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if resp.IsError() {
		return "", fmt.Errorf("%w: chat status %d: %s", domain.ErrSynthesis, resp.StatusCode(), resp.String())
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("%w: decode chat response: %w", domain.ErrSynthesis, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: chat response has no choices", domain.ErrSynthesis)
	}
	return cr.Choices[0].Message.Content, nil
}
