// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard
// slog package.
//
// osintkit forwards API keys for half a dozen paid providers on every
// request, so the biggest logging risk here is a credential ending up in
// a pasted terminal session or a shared debug log. The SecureHandler
// masks:
//   - Authentication headers (Authorization, X-Api-Key, X-RapidAPI-Key)
//   - Attributes whose key names suggest credentials (api_key, token, ...)
//   - Values that look like provider keys (Bearer tokens, pplx-/censys_
//     prefixes, long opaque alphanumerics)
//
// Even in verbose mode, sensitive values are masked.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//	logger.Info("request sent",
//	    "api_key", "pplx-abc123",  // masked
//	    "url", "https://api.shodan.io/shodan/host/8.8.8.8",
//	)
//	slog.SetDefault(logger)
package log
