// Package favicon fetches website icons and computes the digests that
// infrastructure search engines index.
//
// A favicon is served to every visitor unchanged, so hosts sharing one
// (an origin behind a CDN, a staging box, a phishing clone) can be
// correlated by searching for its hash. Shodan and FOFA index the 32-bit
// MurmurHash3 of the base64-encoded icon bytes; Censys indexes the
// SHA-256 of the raw bytes.
//
// The MMH3 convention has a sharp edge: the base64 input is wrapped in
// 76-column lines with a trailing newline (MIME style), not the compact
// encoding most base64 helpers produce. Hash preserves that convention
// exactly; a compact encoding yields a different hash that matches
// nothing in the indexes.
package favicon
