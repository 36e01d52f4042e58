package model

import "time"

// BriefKind distinguishes person briefs from company briefs.
type BriefKind string

// Brief kinds.
const (
	BriefPerson  BriefKind = "person"
	BriefCompany BriefKind = "company"
)

// Brief is a composite intelligence summary for a person or company,
// assembled by running provider steps over a shared report.
//
// Design decision: We use a single struct with optional sections rather
// than separate PersonBrief/CompanyBrief types because the pipeline,
// database, and report writers all operate on briefs generically. The
// Kind field and nil checks tell readers which sections apply.
type Brief struct {
	// Kind is the brief type (person or company).
	Kind BriefKind `json:"kind"`

	// Name is the subject's name as given by the user.
	Name string `json:"name"`

	// Company is the subject's company (person briefs only).
	Company string `json:"company,omitempty"`

	// Domain is the subject's domain, when known. Enables DNS, WHOIS,
	// Hunter, and Apollo domain-keyed lookups.
	Domain string `json:"domain,omitempty"`

	// DateGenerated is when the brief was assembled.
	DateGenerated time.Time `json:"date_generated"`

	// Background is the Perplexity-sourced narrative summary.
	Background string `json:"background,omitempty"`

	// Sources are citation URLs collected from providers.
	Sources []string `json:"sources,omitempty"`

	// === Person sections ===

	Person          *PersonProfile   `json:"person,omitempty"`
	LinkedInProfile *LinkedInProfile `json:"linkedin_profile,omitempty"`
	ProfileURLs     *ProfileURLs     `json:"profile_urls,omitempty"`
	Reddit          *RedditUser      `json:"reddit,omitempty"`
	EmailMatch      *EmailMatch      `json:"email_match,omitempty"`

	// === Company sections ===

	CompanyProfile  *CompanyProfile  `json:"company_profile,omitempty"`
	LinkedInCompany *LinkedInCompany `json:"linkedin_company,omitempty"`
	DomainRecord    *DomainRecord    `json:"domain_record,omitempty"`

	// === Execution metadata ===

	// PerformedSteps names the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// StepErrors maps step names to error messages for steps that failed
	// without aborting the brief.
	StepErrors map[string]string `json:"step_errors,omitempty"`
}

// NewBrief creates an empty brief for the given subject.
func NewBrief(kind BriefKind, name string) *Brief {
	return &Brief{
		Kind:          kind,
		Name:          name,
		DateGenerated: time.Now(),
	}
}

// AddSources appends citation URLs, skipping duplicates.
func (b *Brief) AddSources(urls ...string) {
	seen := make(map[string]bool, len(b.Sources))
	for _, s := range b.Sources {
		seen[s] = true
	}
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		b.Sources = append(b.Sources, u)
		seen[u] = true
	}
}

// RecordStepError notes a non-fatal step failure on the brief.
func (b *Brief) RecordStepError(step string, err error) {
	if err == nil {
		return
	}
	if b.StepErrors == nil {
		b.StepErrors = make(map[string]string)
	}
	b.StepErrors[step] = err.Error()
}
