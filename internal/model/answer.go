package model

// Answer is the reshaped response from a Perplexity chat completion:
// the model's text plus the citations backing it.
type Answer struct {
	// Content is the model's answer text.
	Content string `json:"content"`

	// Citations are source URLs the answer drew on.
	Citations []string `json:"citations,omitempty"`

	// Cost is the total request cost in USD, when the API reports it.
	Cost float64 `json:"cost,omitempty"`
}
