// Package recon performs local network reconnaissance that needs no
// API key: DNS resolution and WHOIS lookups. It complements the
// internal/osint providers with ground truth straight from the
// authoritative systems.
package recon
