package osint

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/glitchsec/osintkit/internal/model"
)

// Caps applied to LinkedIn profile lists, matching what fits in a
// terminal summary.
const (
	maxExperiences = 5
	maxEducations  = 3
	maxSkills      = 10
)

// LinkedIn wraps the Fresh LinkedIn Profile Data API on RapidAPI.
// RapidAPI routes on the x-rapidapi-host header, so it must match the
// request host exactly.
type LinkedIn struct {
	c       *Client
	key     string
	baseURL string
}

// NewLinkedIn creates a LinkedIn provider using the shared client.
func NewLinkedIn(c *Client, key string) *LinkedIn {
	return &LinkedIn{
		c:       c,
		key:     key,
		baseURL: "https://fresh-linkedin-profile-data.p.rapidapi.com",
	}
}

// Name returns the provider identifier used for caching and reports.
func (l *LinkedIn) Name() string { return "linkedin" }

func (l *LinkedIn) header() http.Header {
	h := http.Header{}
	h.Set("x-rapidapi-key", l.key)
	if u, err := url.Parse(l.baseURL); err == nil {
		h.Set("x-rapidapi-host", u.Host)
	}
	return h
}

// FindProfiles discovers candidate profile URLs for a person by name,
// optionally narrowed by company. Results are ranked by the provider's
// Google search, best first.
func (l *LinkedIn) FindProfiles(ctx context.Context, name, company string) (*model.ProfileURLs, error) {
	payload := map[string]string{"name": name}
	if company != "" {
		payload["company"] = company
	}

	var raw struct {
		Data []string `json:"data"`
	}
	if err := l.c.postJSON(ctx, l.Name(), l.baseURL+"/google-profiles", l.header(), payload, &raw); err != nil {
		return nil, err
	}

	return &model.ProfileURLs{
		Name:    name,
		Company: company,
		URLs:    raw.Data,
	}, nil
}

// linkedInLead is the subset of the enrich-lead response we consume.
type linkedInLead struct {
	Data struct {
		FullName             string `json:"full_name"`
		FirstName            string `json:"first_name"`
		LastName             string `json:"last_name"`
		Headline             string `json:"headline"`
		About                string `json:"about"`
		City                 string `json:"city"`
		Country              string `json:"country"`
		ConnectionCount      int    `json:"connection_count"`
		Company              string `json:"company"`
		CompanyEmployeeCount int    `json:"company_employee_count"`
		CompanyIndustry      string `json:"company_industry"`
		Experiences          []struct {
			Title     string `json:"title"`
			Company   string `json:"company"`
			Duration  string `json:"duration"`
			IsCurrent bool   `json:"is_current"`
		} `json:"experiences"`
		Educations []struct {
			School       string `json:"school"`
			Degree       string `json:"degree"`
			FieldOfStudy string `json:"field_of_study"`
		} `json:"educations"`
		Skills []string `json:"skills"`
	} `json:"data"`
}

// EnrichProfile returns the full profile behind a LinkedIn URL.
func (l *LinkedIn) EnrichProfile(ctx context.Context, profileURL string) (*model.LinkedInProfile, error) {
	u := fmt.Sprintf("%s/enrich-lead?linkedin_url=%s&include_skills=true",
		l.baseURL, url.QueryEscape(profileURL))

	var raw linkedInLead
	if err := l.c.getJSON(ctx, l.Name(), u, l.header(), &raw); err != nil {
		return nil, err
	}

	d := raw.Data
	name := d.FullName
	if name == "" {
		name = strings.TrimSpace(d.FirstName + " " + d.LastName)
	}

	p := &model.LinkedInProfile{
		Name:            name,
		Headline:        d.Headline,
		About:           d.About,
		Location:        joinLocation(d.City, d.Country),
		Connections:     d.ConnectionCount,
		CurrentCompany:  d.Company,
		CompanySize:     d.CompanyEmployeeCount,
		CompanyIndustry: d.CompanyIndustry,
		Skills:          capStrings(d.Skills, maxSkills),
		URL:             profileURL,
	}
	for i, exp := range d.Experiences {
		if i >= maxExperiences {
			break
		}
		p.Experience = append(p.Experience, model.Experience{
			Title:    exp.Title,
			Company:  exp.Company,
			Duration: exp.Duration,
			Current:  exp.IsCurrent,
		})
	}
	if len(d.Experiences) > 0 {
		p.CurrentTitle = d.Experiences[0].Title
	}
	for i, edu := range d.Educations {
		if i >= maxEducations {
			break
		}
		p.Education = append(p.Education, model.Education{
			School: edu.School,
			Degree: edu.Degree,
			Field:  edu.FieldOfStudy,
		})
	}
	return p, nil
}

// linkedInCompany is the subset of the company lookup response we
// consume.
type linkedInCompany struct {
	Data struct {
		CompanyName   string   `json:"company_name"`
		Description   string   `json:"description"`
		Website       string   `json:"website"`
		Domain        string   `json:"domain"`
		EmployeeCount int      `json:"employee_count"`
		EmployeeRange string   `json:"employee_range"`
		FollowerCount int      `json:"follower_count"`
		YearFounded   int      `json:"year_founded"`
		Industries    []string `json:"industries"`
		Specialties   []string `json:"specialties"`
		HQFullAddress string   `json:"hq_full_address"`
		LinkedInURL   string   `json:"linkedin_url"`
		LogoURL       string   `json:"logo_url"`
	} `json:"data"`
}

// CompanyByURL looks up a company by its LinkedIn page URL.
func (l *LinkedIn) CompanyByURL(ctx context.Context, companyURL string) (*model.LinkedInCompany, error) {
	u := fmt.Sprintf("%s/get-company-by-linkedinurl?linkedin_url=%s", l.baseURL, url.QueryEscape(companyURL))
	return l.company(ctx, u)
}

// CompanyByDomain looks up a company by its website domain.
func (l *LinkedIn) CompanyByDomain(ctx context.Context, domain string) (*model.LinkedInCompany, error) {
	u := fmt.Sprintf("%s/get-company-by-domain?domain=%s", l.baseURL, url.QueryEscape(domain))
	return l.company(ctx, u)
}

func (l *LinkedIn) company(ctx context.Context, u string) (*model.LinkedInCompany, error) {
	var raw linkedInCompany
	if err := l.c.getJSON(ctx, l.Name(), u, l.header(), &raw); err != nil {
		return nil, err
	}

	d := raw.Data
	c := &model.LinkedInCompany{
		Name:          d.CompanyName,
		Description:   d.Description,
		Website:       d.Website,
		Domain:        d.Domain,
		EmployeeCount: d.EmployeeCount,
		EmployeeRange: d.EmployeeRange,
		FollowerCount: d.FollowerCount,
		Founded:       d.YearFounded,
		Specialties:   d.Specialties,
		Headquarters:  d.HQFullAddress,
		URL:           d.LinkedInURL,
		LogoURL:       d.LogoURL,
	}
	if len(d.Industries) > 0 {
		c.Industry = d.Industries[0]
	}
	return c, nil
}

// joinLocation joins city and country, skipping empty parts.
func joinLocation(city, country string) string {
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	default:
		return country
	}
}
