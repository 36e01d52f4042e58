// Package osint wraps the third-party intelligence APIs the toolkit
// queries: Shodan, Censys, Hunter.io, Apollo.io, Perplexity, and the
// RapidAPI LinkedIn and Twitter endpoints, plus Reddit's public JSON.
//
// Every provider is a small struct around a shared Client. Responses
// are reshaped into the normalized types in internal/model rather than
// exposed raw, so callers and reports never depend on a provider's wire
// format.
package osint
