package recon

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
)

// Resolver looks up the DNS record types useful for domain
// reconnaissance: A, MX, NS, and TXT.
type Resolver struct {
	// resolver is the underlying resolver. The zero value uses the
	// system resolver, which is what we want in production.
	resolver *net.Resolver
}

// NewResolver creates a Resolver backed by the system resolver.
func NewResolver() *Resolver {
	return &Resolver{resolver: net.DefaultResolver}
}

// Lookup resolves the standard record types for a domain and returns
// them keyed by type. A type that resolves to nothing is omitted from
// the map; only a total failure across all types is an error.
func (r *Resolver) Lookup(ctx context.Context, domain string) (map[string][]string, error) {
	records := make(map[string][]string)
	var lastErr error

	if addrs, err := r.resolver.LookupHost(ctx, domain); err == nil && len(addrs) > 0 {
		sort.Strings(addrs)
		records["A"] = addrs
	} else if err != nil {
		lastErr = err
	}

	if mxs, err := r.resolver.LookupMX(ctx, domain); err == nil && len(mxs) > 0 {
		hosts := make([]string, 0, len(mxs))
		for _, mx := range mxs {
			hosts = append(hosts, fmt.Sprintf("%d %s", mx.Pref, strings.TrimSuffix(mx.Host, ".")))
		}
		records["MX"] = hosts
	} else if err != nil {
		lastErr = err
	}

	if nss, err := r.resolver.LookupNS(ctx, domain); err == nil && len(nss) > 0 {
		hosts := make([]string, 0, len(nss))
		for _, ns := range nss {
			hosts = append(hosts, strings.TrimSuffix(ns.Host, "."))
		}
		sort.Strings(hosts)
		records["NS"] = hosts
	} else if err != nil {
		lastErr = err
	}

	if txts, err := r.resolver.LookupTXT(ctx, domain); err == nil && len(txts) > 0 {
		records["TXT"] = txts
	} else if err != nil {
		lastErr = err
	}

	if len(records) == 0 && lastErr != nil {
		return nil, fmt.Errorf("recon: DNS lookup for %s failed: %w", domain, lastErr)
	}
	return records, nil
}
