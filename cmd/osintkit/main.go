// Package main provides the entry point for the osintkit CLI.
//
// osintkit is an OSINT reconnaissance toolkit for authorized security
// assessments. It fingerprints favicons for infrastructure pivoting,
// queries internet scan engines, and assembles intelligence briefs on
// people, companies, and domains from public data sources.
//
// Usage:
//
//	osintkit favicon <url>
//	osintkit host <ip>
//	osintkit company <name> --domain <domain>
//
// See --help for all available options.
package main

// main is the entry point for osintkit.
func main() {
	Execute()
}
