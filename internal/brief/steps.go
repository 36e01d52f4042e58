package brief

import (
	"context"
	"fmt"
	"strings"

	"github.com/glitchsec/osintkit/internal/model"
	"github.com/glitchsec/osintkit/internal/osint"
	"github.com/glitchsec/osintkit/internal/recon"
)

// briefSystemPrompt steers Perplexity toward terse, factual output
// suitable for a report section.
const briefSystemPrompt = "You are an OSINT analyst. Answer factually and concisely " +
	"using only public information. Do not speculate."

// BackgroundStep asks Perplexity for a narrative background on the
// subject and collects the citations as brief sources.
type BackgroundStep struct {
	provider *osint.Perplexity
}

// NewBackgroundStep creates the Perplexity background step.
func NewBackgroundStep(p *osint.Perplexity) *BackgroundStep {
	return &BackgroundStep{provider: p}
}

// Name returns the step name.
func (s *BackgroundStep) Name() string { return "background" }

// Do executes the step.
func (s *BackgroundStep) Do(ctx context.Context, b *model.Brief) error {
	var prompt string
	switch b.Kind {
	case model.BriefCompany:
		prompt = fmt.Sprintf("Company background for %s: what they do, size, headquarters, "+
			"key people, recent news. Be factual and concise.", b.Name)
	default:
		prompt = fmt.Sprintf("Professional background for %s", b.Name)
		if b.Company != "" {
			prompt += fmt.Sprintf(" at %s", b.Company)
		}
		prompt += ": current role, career history, education, public activity. Be factual and concise."
	}

	answer, err := s.provider.AskWithSystem(ctx, briefSystemPrompt, prompt)
	if err != nil {
		return err
	}

	b.Background = answer.Content
	b.AddSources(answer.Citations...)
	return nil
}

// PersonMatchStep resolves the subject against Apollo's people database
// and records their current role and employer.
type PersonMatchStep struct {
	provider *osint.Apollo
}

// NewPersonMatchStep creates the Apollo person step.
func NewPersonMatchStep(a *osint.Apollo) *PersonMatchStep {
	return &PersonMatchStep{provider: a}
}

// Name returns the step name.
func (s *PersonMatchStep) Name() string { return "apollo-person" }

// Do executes the step.
func (s *PersonMatchStep) Do(ctx context.Context, b *model.Brief) error {
	first, last := splitName(b.Name)
	person, err := s.provider.MatchPerson(ctx, first, last, b.Company, b.Domain)
	if err != nil {
		return err
	}

	b.Person = person
	b.AddSources(person.LinkedIn)
	if b.Company == "" {
		b.Company = person.Company
	}
	return nil
}

// CompanyEnrichStep pulls Apollo's firmographic profile for the
// subject's domain.
type CompanyEnrichStep struct {
	provider *osint.Apollo
}

// NewCompanyEnrichStep creates the Apollo company step.
func NewCompanyEnrichStep(a *osint.Apollo) *CompanyEnrichStep {
	return &CompanyEnrichStep{provider: a}
}

// Name returns the step name.
func (s *CompanyEnrichStep) Name() string { return "apollo-company" }

// Do executes the step.
func (s *CompanyEnrichStep) Do(ctx context.Context, b *model.Brief) error {
	if b.Domain == "" {
		return fmt.Errorf("brief: no domain known for %s", b.Name)
	}

	company, err := s.provider.EnrichCompany(ctx, b.Domain)
	if err != nil {
		return err
	}

	b.CompanyProfile = company
	b.AddSources(company.Website, company.LinkedIn)
	return nil
}

// EmailStep guesses the subject's work email through Hunter's email
// finder. Person briefs only; needs a domain.
type EmailStep struct {
	provider *osint.Hunter
}

// NewEmailStep creates the Hunter email step.
func NewEmailStep(h *osint.Hunter) *EmailStep {
	return &EmailStep{provider: h}
}

// Name returns the step name.
func (s *EmailStep) Name() string { return "hunter-email" }

// Do executes the step.
func (s *EmailStep) Do(ctx context.Context, b *model.Brief) error {
	if b.Domain == "" {
		return fmt.Errorf("brief: no domain known for %s", b.Name)
	}

	first, last := splitName(b.Name)
	match, err := s.provider.EmailFinder(ctx, b.Domain, first, last)
	if err != nil {
		return err
	}

	b.EmailMatch = match
	return nil
}

// DomainEmailsStep lists the addresses Hunter knows for the subject's
// domain. Company briefs only.
type DomainEmailsStep struct {
	provider *osint.Hunter
	limit    int
}

// NewDomainEmailsStep creates the Hunter domain search step.
func NewDomainEmailsStep(h *osint.Hunter, limit int) *DomainEmailsStep {
	return &DomainEmailsStep{provider: h, limit: limit}
}

// Name returns the step name.
func (s *DomainEmailsStep) Name() string { return "hunter-domain" }

// Do executes the step.
func (s *DomainEmailsStep) Do(ctx context.Context, b *model.Brief) error {
	if b.Domain == "" {
		return fmt.Errorf("brief: no domain known for %s", b.Name)
	}

	emails, err := s.provider.DomainSearch(ctx, b.Domain, s.limit)
	if err != nil {
		return err
	}

	if b.DomainRecord == nil {
		b.DomainRecord = &model.DomainRecord{Domain: b.Domain}
	}
	b.DomainRecord.Emails = emails
	return nil
}

// LinkedInPersonStep discovers the subject's LinkedIn profile URL and
// enriches the best match.
type LinkedInPersonStep struct {
	provider *osint.LinkedIn
}

// NewLinkedInPersonStep creates the LinkedIn person step.
func NewLinkedInPersonStep(l *osint.LinkedIn) *LinkedInPersonStep {
	return &LinkedInPersonStep{provider: l}
}

// Name returns the step name.
func (s *LinkedInPersonStep) Name() string { return "linkedin-person" }

// Do executes the step.
func (s *LinkedInPersonStep) Do(ctx context.Context, b *model.Brief) error {
	urls, err := s.provider.FindProfiles(ctx, b.Name, b.Company)
	if err != nil {
		return err
	}
	b.ProfileURLs = urls

	top := urls.Top()
	if top == "" {
		return fmt.Errorf("brief: no LinkedIn profile found for %s", b.Name)
	}
	b.AddSources(top)

	profile, err := s.provider.EnrichProfile(ctx, top)
	if err != nil {
		return err
	}
	b.LinkedInProfile = profile
	if b.Company == "" {
		b.Company = profile.CurrentCompany
	}
	return nil
}

// LinkedInCompanyStep looks up the subject's LinkedIn company page by
// domain. Company briefs only.
type LinkedInCompanyStep struct {
	provider *osint.LinkedIn
}

// NewLinkedInCompanyStep creates the LinkedIn company step.
func NewLinkedInCompanyStep(l *osint.LinkedIn) *LinkedInCompanyStep {
	return &LinkedInCompanyStep{provider: l}
}

// Name returns the step name.
func (s *LinkedInCompanyStep) Name() string { return "linkedin-company" }

// Do executes the step.
func (s *LinkedInCompanyStep) Do(ctx context.Context, b *model.Brief) error {
	if b.Domain == "" {
		return fmt.Errorf("brief: no domain known for %s", b.Name)
	}

	company, err := s.provider.CompanyByDomain(ctx, b.Domain)
	if err != nil {
		return err
	}

	b.LinkedInCompany = company
	b.AddSources(company.URL)
	return nil
}

// RedditStep pulls the subject's Reddit profile and recent activity.
// The username is explicit because it rarely matches the legal name.
type RedditStep struct {
	provider *osint.Reddit
	username string
}

// NewRedditStep creates the Reddit step for a known username.
func NewRedditStep(r *osint.Reddit, username string) *RedditStep {
	return &RedditStep{provider: r, username: username}
}

// Name returns the step name.
func (s *RedditStep) Name() string { return "reddit" }

// Do executes the step.
func (s *RedditStep) Do(ctx context.Context, b *model.Brief) error {
	user, err := s.provider.User(ctx, s.username)
	if err != nil {
		return err
	}
	b.Reddit = user
	return nil
}

// DNSStep resolves the subject domain's DNS records. Company briefs
// only; needs no API key.
type DNSStep struct {
	resolver *recon.Resolver
}

// NewDNSStep creates the DNS step.
func NewDNSStep(r *recon.Resolver) *DNSStep {
	return &DNSStep{resolver: r}
}

// Name returns the step name.
func (s *DNSStep) Name() string { return "dns" }

// Do executes the step.
func (s *DNSStep) Do(ctx context.Context, b *model.Brief) error {
	if b.Domain == "" {
		return fmt.Errorf("brief: no domain known for %s", b.Name)
	}

	records, err := s.resolver.Lookup(ctx, b.Domain)
	if err != nil {
		return err
	}

	if b.DomainRecord == nil {
		b.DomainRecord = &model.DomainRecord{Domain: b.Domain}
	}
	b.DomainRecord.DNS = records
	return nil
}

// WhoisStep retrieves WHOIS registration data for the subject domain.
type WhoisStep struct {
	client *recon.WhoisClient
}

// NewWhoisStep creates the WHOIS step.
func NewWhoisStep(w *recon.WhoisClient) *WhoisStep {
	return &WhoisStep{client: w}
}

// Name returns the step name.
func (s *WhoisStep) Name() string { return "whois" }

// Do executes the step.
func (s *WhoisStep) Do(ctx context.Context, b *model.Brief) error {
	if b.Domain == "" {
		return fmt.Errorf("brief: no domain known for %s", b.Name)
	}

	info, err := s.client.Lookup(ctx, b.Domain)
	if err != nil {
		return err
	}

	if b.DomainRecord == nil {
		b.DomainRecord = &model.DomainRecord{Domain: b.Domain}
	}
	b.DomainRecord.Whois = info
	return nil
}

// splitName splits a full name into first and last. Middle names join
// the last name, which matches how Apollo and Hunter index people.
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
