package osint

import (
	"context"
	"errors"
	"net/http"

	"github.com/glitchsec/osintkit/internal/model"
)

// perplexityModel is the search-grounded model used for all queries.
const perplexityModel = "sonar"

// ErrEmptyAnswer is returned when Perplexity responds successfully but
// with no choices, which happens when a prompt is filtered.
var ErrEmptyAnswer = errors.New("osint: perplexity returned no answer")

// Perplexity wraps the Perplexity chat completions API, used for
// natural-language OSINT questions with cited sources.
type Perplexity struct {
	c       *Client
	key     string
	baseURL string
}

// NewPerplexity creates a Perplexity provider using the shared client.
func NewPerplexity(c *Client, key string) *Perplexity {
	return &Perplexity{
		c:       c,
		key:     key,
		baseURL: "https://api.perplexity.ai",
	}
}

// Name returns the provider identifier used for caching and reports.
func (p *Perplexity) Name() string { return "perplexity" }

type perplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type perplexityResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
	Usage     struct {
		Cost struct {
			TotalCost float64 `json:"total_cost"`
		} `json:"cost"`
	} `json:"usage"`
}

// Ask sends a single-turn prompt and returns the answer with its
// citations and the request cost.
func (p *Perplexity) Ask(ctx context.Context, prompt string) (*model.Answer, error) {
	return p.ask(ctx, []perplexityMessage{{Role: "user", Content: prompt}})
}

// AskWithSystem sends a prompt with a system message steering the
// answer's shape. Used by the briefing pipeline to keep answers terse.
func (p *Perplexity) AskWithSystem(ctx context.Context, system, prompt string) (*model.Answer, error) {
	return p.ask(ctx, []perplexityMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	})
}

func (p *Perplexity) ask(ctx context.Context, messages []perplexityMessage) (*model.Answer, error) {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+p.key)

	payload := map[string]any{
		"model":    perplexityModel,
		"messages": messages,
	}

	var raw perplexityResponse
	if err := p.c.postJSON(ctx, p.Name(), p.baseURL+"/chat/completions", h, payload, &raw); err != nil {
		return nil, err
	}

	if len(raw.Choices) == 0 {
		return nil, ErrEmptyAnswer
	}

	return &model.Answer{
		Content:   raw.Choices[0].Message.Content,
		Citations: raw.Citations,
		Cost:      raw.Usage.Cost.TotalCost,
	}, nil
}
