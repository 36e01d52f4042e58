package osint

import (
	"context"
	"net/http"

	"github.com/glitchsec/osintkit/internal/model"
)

// Caps applied to Apollo's noisier list fields so terminal output and
// reports stay readable.
const (
	maxTechnologies = 15
	maxKeywords     = 10
)

// Apollo wraps the Apollo.io enrichment API. Both endpoints are POSTs
// with a JSON body and the key in the X-Api-Key header.
type Apollo struct {
	c       *Client
	key     string
	baseURL string
}

// NewApollo creates an Apollo.io provider using the shared client.
func NewApollo(c *Client, key string) *Apollo {
	return &Apollo{
		c:       c,
		key:     key,
		baseURL: "https://api.apollo.io/api/v1",
	}
}

// Name returns the provider identifier used for caching and reports.
func (a *Apollo) Name() string { return "apollo" }

func (a *Apollo) header() http.Header {
	h := http.Header{}
	h.Set("X-Api-Key", a.key)
	return h
}

// apolloOrg is the subset of Apollo's organization object we consume.
type apolloOrg struct {
	Name                  string   `json:"name"`
	WebsiteURL            string   `json:"website_url"`
	LinkedInURL           string   `json:"linkedin_url"`
	TwitterURL            string   `json:"twitter_url"`
	EstimatedNumEmployees int      `json:"estimated_num_employees"`
	Industry              string   `json:"industry"`
	FoundedYear           int      `json:"founded_year"`
	ShortDescription      string   `json:"short_description"`
	City                  string   `json:"city"`
	State                 string   `json:"state"`
	Country               string   `json:"country"`
	Phone                 string   `json:"phone"`
	AnnualRevenuePrinted  string   `json:"annual_revenue_printed"`
	Technologies          []string `json:"technologies"`
	Keywords              []string `json:"keywords"`
}

// EnrichCompany returns Apollo's firmographic profile for a domain.
// Technology and keyword lists are capped because Apollo can return
// hundreds of entries.
func (a *Apollo) EnrichCompany(ctx context.Context, domain string) (*model.CompanyProfile, error) {
	var raw struct {
		Organization apolloOrg `json:"organization"`
	}
	err := a.c.postJSON(ctx, a.Name(), a.baseURL+"/organizations/enrich", a.header(),
		map[string]string{"domain": domain}, &raw)
	if err != nil {
		return nil, err
	}

	org := raw.Organization
	return &model.CompanyProfile{
		Name:          org.Name,
		Website:       org.WebsiteURL,
		LinkedIn:      org.LinkedInURL,
		Twitter:       org.TwitterURL,
		Employees:     org.EstimatedNumEmployees,
		Industry:      org.Industry,
		Founded:       org.FoundedYear,
		Description:   org.ShortDescription,
		City:          org.City,
		State:         org.State,
		Country:       org.Country,
		Phone:         org.Phone,
		AnnualRevenue: org.AnnualRevenuePrinted,
		Technologies:  capStrings(org.Technologies, maxTechnologies),
		Keywords:      capStrings(org.Keywords, maxKeywords),
	}, nil
}

// MatchPerson looks up a person by name, optionally narrowed by their
// organization name or company domain.
func (a *Apollo) MatchPerson(ctx context.Context, firstName, lastName, organization, domain string) (*model.PersonProfile, error) {
	payload := map[string]string{
		"first_name": firstName,
		"last_name":  lastName,
	}
	if organization != "" {
		payload["organization_name"] = organization
	}
	if domain != "" {
		payload["domain"] = domain
	}

	var raw struct {
		Person struct {
			Name         string `json:"name"`
			Title        string `json:"title"`
			Email        string `json:"email"`
			LinkedInURL  string `json:"linkedin_url"`
			City         string `json:"city"`
			State        string `json:"state"`
			Country      string `json:"country"`
			Organization struct {
				Name                  string `json:"name"`
				EstimatedNumEmployees int    `json:"estimated_num_employees"`
				Industry              string `json:"industry"`
			} `json:"organization"`
		} `json:"person"`
	}
	if err := a.c.postJSON(ctx, a.Name(), a.baseURL+"/people/match", a.header(), payload, &raw); err != nil {
		return nil, err
	}

	p := raw.Person
	return &model.PersonProfile{
		Name:            p.Name,
		Title:           p.Title,
		Email:           p.Email,
		LinkedIn:        p.LinkedInURL,
		City:            p.City,
		State:           p.State,
		Country:         p.Country,
		Company:         p.Organization.Name,
		CompanySize:     p.Organization.EstimatedNumEmployees,
		CompanyIndustry: p.Organization.Industry,
	}, nil
}

// capStrings trims a list to at most n entries, preserving nil.
func capStrings(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
