// Package model defines the core data structures used throughout osintkit.
//
// This package contains the following main types:
//   - Fingerprint: Favicon digests and the search filters derived from them
//   - HostRecord: A host as seen by Shodan or Censys
//   - DomainRecord: DNS, WHOIS, and email intelligence for a domain
//   - Brief: A composite person or company intelligence summary
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (osint, brief, report, database) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage. Fields mirror what the upstream provider APIs return,
// reduced to the subset worth keeping.
package model
