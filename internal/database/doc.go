// Package database provides SQLite-based storage for provider lookups.
//
// This package implements the LookupDB, which stores:
//   - Raw provider responses keyed by (provider, query) for caching
//   - Lookup timestamps for TTL-based cache expiry
//   - A queryable history of everything the toolkit has asked
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
//
// Caching matters more here than it looks: most of the upstream APIs
// are metered (Shodan query credits, Apollo enrichment quotas), so a
// cache hit is money saved, not just latency.
package database
