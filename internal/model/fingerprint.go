package model

import (
	"fmt"
	"net/url"
)

// Fingerprint holds the digests of a favicon in the formats the major
// search engines index.
//
// Shodan indexes the 32-bit MurmurHash3 of the base64-encoded icon bytes,
// rendered as a signed decimal integer. Censys indexes the SHA-256 of the
// raw bytes. MD5 is kept for older tooling that still pivots on it.
type Fingerprint struct {
	// MMH3 is the signed 32-bit MurmurHash3 digest of the base64-encoded
	// favicon bytes. This is the value Shodan and FOFA index.
	MMH3 int32 `json:"mmh3"`

	// MD5 is the lowercase hex MD5 digest of the raw favicon bytes.
	MD5 string `json:"md5"`

	// SHA256 is the lowercase hex SHA-256 digest of the raw favicon bytes.
	// This is the value Censys indexes.
	SHA256 string `json:"sha256"`

	// Size is the favicon size in bytes. Zero when the fingerprint was
	// built from a pre-computed hash rather than fetched bytes.
	Size int `json:"size,omitempty"`

	// SourceURL is the URL the favicon was fetched from, if any.
	SourceURL string `json:"source_url,omitempty"`
}

// ShodanQuery returns the Shodan search filter for this favicon.
func (f Fingerprint) ShodanQuery() string {
	return fmt.Sprintf("http.favicon.hash:%d", f.MMH3)
}

// CensysQuery returns the Censys Platform search filter for this favicon.
// Censys matches on the SHA-256 of the raw icon bytes, so this returns an
// empty string when only the MMH3 value is known.
func (f Fingerprint) CensysQuery() string {
	if f.SHA256 == "" {
		return ""
	}
	return "host.services.endpoints.http.favicons.hash_sha256:" + f.SHA256
}

// FOFAQuery returns the FOFA search filter for this favicon.
// FOFA has no free API, so this is only useful for manual searches.
func (f Fingerprint) FOFAQuery() string {
	return fmt.Sprintf(`icon_hash="%d"`, f.MMH3)
}

// ShodanURL returns a browser link for searching this favicon on Shodan.
func (f Fingerprint) ShodanURL() string {
	return "https://www.shodan.io/search?query=" + url.QueryEscape(f.ShodanQuery())
}

