package model

// DomainRecord aggregates intelligence about a domain from Shodan DNS,
// Hunter.io, and local DNS/WHOIS lookups. Sections are nil when the
// corresponding source was not queried.
type DomainRecord struct {
	// Domain is the domain that was looked up.
	Domain string `json:"domain"`

	// Subdomains are subdomain labels known to Shodan (without the
	// domain suffix, as Shodan returns them).
	Subdomains []string `json:"subdomains,omitempty"`

	// DNS holds locally resolved records keyed by type (A, MX, NS, TXT).
	DNS map[string][]string `json:"dns,omitempty"`

	// Whois holds parsed WHOIS fields for the domain.
	Whois *WhoisInfo `json:"whois,omitempty"`

	// Emails holds the Hunter.io domain search result.
	Emails *DomainSearch `json:"emails,omitempty"`
}

// WhoisInfo contains the WHOIS fields worth extracting, plus a truncated
// copy of the raw response for anything the extraction missed.
type WhoisInfo struct {
	Registrar    string `json:"registrar,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	Raw          string `json:"raw,omitempty"`
}

// DomainSearch is the reshaped Hunter.io domain-search response.
type DomainSearch struct {
	// Domain is the searched domain as Hunter canonicalized it.
	Domain string `json:"domain"`

	// Organization is the organization Hunter associates with the domain.
	Organization string `json:"organization,omitempty"`

	// Pattern is the detected email pattern, e.g. "{first}.{last}".
	Pattern string `json:"pattern,omitempty"`

	// TotalEmails is the total number of emails Hunter knows for the
	// domain, which may exceed len(Emails) when a limit was applied.
	TotalEmails int `json:"total_emails"`

	// Emails are the individual addresses returned.
	Emails []EmailHit `json:"emails,omitempty"`
}

// EmailHit is a single email address found by Hunter.io.
type EmailHit struct {
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`

	// Confidence is Hunter's 0-100 deliverability score.
	Confidence int `json:"confidence,omitempty"`
}

// EmailMatch is the result of a Hunter.io email-finder lookup for a
// specific person at a domain.
type EmailMatch struct {
	Email    string `json:"email,omitempty"`
	Score    int    `json:"confidence,omitempty"`
	Position string `json:"position,omitempty"`

	// Sources is the number of public sources backing the match.
	Sources int `json:"sources"`
}
