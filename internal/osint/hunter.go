package osint

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/glitchsec/osintkit/internal/model"
)

// Hunter wraps the Hunter.io v2 API for email discovery.
type Hunter struct {
	c       *Client
	key     string
	baseURL string
}

// NewHunter creates a Hunter.io provider using the shared client.
func NewHunter(c *Client, key string) *Hunter {
	return &Hunter{
		c:       c,
		key:     key,
		baseURL: "https://api.hunter.io/v2",
	}
}

// Name returns the provider identifier used for caching and reports.
func (h *Hunter) Name() string { return "hunter" }

// hunterDomainSearch is the subset of Hunter's domain-search response
// we consume. The full address lives in the "value" field.
type hunterDomainSearch struct {
	Data struct {
		Domain       string `json:"domain"`
		Organization string `json:"organization"`
		Pattern      string `json:"pattern"`
		Emails       []struct {
			Value      string `json:"value"`
			FirstName  string `json:"first_name"`
			LastName   string `json:"last_name"`
			Position   string `json:"position"`
			Department string `json:"department"`
			Confidence int    `json:"confidence"`
		} `json:"emails"`
	} `json:"data"`
	Meta struct {
		Results int `json:"results"`
	} `json:"meta"`
}

// DomainSearch returns up to limit email addresses Hunter knows for a
// domain, along with the detected address pattern.
func (h *Hunter) DomainSearch(ctx context.Context, domain string, limit int) (*model.DomainSearch, error) {
	u := fmt.Sprintf("%s/domain-search?domain=%s&limit=%d&api_key=%s",
		h.baseURL, url.QueryEscape(domain), limit, url.QueryEscape(h.key))

	var raw hunterDomainSearch
	if err := h.c.getJSON(ctx, h.Name(), u, nil, &raw); err != nil {
		return nil, err
	}

	result := &model.DomainSearch{
		Domain:       raw.Data.Domain,
		Organization: raw.Data.Organization,
		Pattern:      raw.Data.Pattern,
		TotalEmails:  raw.Meta.Results,
	}
	for i, e := range raw.Data.Emails {
		if limit > 0 && i >= limit {
			break
		}
		result.Emails = append(result.Emails, model.EmailHit{
			Email:      e.Value,
			Name:       strings.TrimSpace(e.FirstName + " " + e.LastName),
			Position:   e.Position,
			Department: e.Department,
			Confidence: e.Confidence,
		})
	}
	return result, nil
}

// EmailFinder guesses a specific person's address at a domain. The
// score is Hunter's 0-100 confidence.
func (h *Hunter) EmailFinder(ctx context.Context, domain, firstName, lastName string) (*model.EmailMatch, error) {
	u := fmt.Sprintf("%s/email-finder?domain=%s&first_name=%s&last_name=%s&api_key=%s",
		h.baseURL, url.QueryEscape(domain), url.QueryEscape(firstName), url.QueryEscape(lastName), url.QueryEscape(h.key))

	var raw struct {
		Data struct {
			Email    string `json:"email"`
			Score    int    `json:"score"`
			Position string `json:"position"`
			Sources  []any  `json:"sources"`
		} `json:"data"`
	}
	if err := h.c.getJSON(ctx, h.Name(), u, nil, &raw); err != nil {
		return nil, err
	}

	return &model.EmailMatch{
		Email:    raw.Data.Email,
		Score:    raw.Data.Score,
		Position: raw.Data.Position,
		Sources:  len(raw.Data.Sources),
	}, nil
}
