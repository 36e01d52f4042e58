package recon

import (
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/glitchsec/osintkit/internal/model"
)

// maxWhoisResponse caps how much of a WHOIS response is read. Registry
// responses are a few KB; the cap keeps a misbehaving server harmless.
const maxWhoisResponse = 64 * 1024

// maxRawWhois is how much raw text we keep on the parsed result.
const maxRawWhois = 2000

// WhoisClient performs WHOIS lookups over the plain port 43 protocol.
type WhoisClient struct {
	// server is the initial WHOIS server, host:port. Defaults to IANA,
	// which refers queries to the TLD registry.
	server string

	// dialer establishes connections with context support.
	dialer *net.Dialer

	// maxReferrals limits how many "refer:" redirects are followed.
	maxReferrals int
}

// WhoisOption configures a WhoisClient.
type WhoisOption func(*WhoisClient)

// WithWhoisServer sets the initial WHOIS server (host:port).
func WithWhoisServer(server string) WhoisOption {
	return func(w *WhoisClient) {
		w.server = server
	}
}

// WithWhoisTimeout sets the per-connection timeout.
func WithWhoisTimeout(d time.Duration) WhoisOption {
	return func(w *WhoisClient) {
		w.dialer.Timeout = d
	}
}

// NewWhoisClient creates a WHOIS client starting at the IANA server.
func NewWhoisClient(opts ...WhoisOption) *WhoisClient {
	w := &WhoisClient{
		server:       "whois.iana.org:43",
		dialer:       &net.Dialer{Timeout: 15 * time.Second},
		maxReferrals: 2,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Lookup queries WHOIS for a domain, following registry referrals, and
// extracts the registrar and lifecycle dates.
func (w *WhoisClient) Lookup(ctx context.Context, domain string) (*model.WhoisInfo, error) {
	server := w.server
	var raw string

	for i := 0; i <= w.maxReferrals; i++ {
		resp, err := w.query(ctx, server, domain)
		if err != nil {
			if raw != "" {
				break
			}
			return nil, fmt.Errorf("recon: WHOIS lookup for %s failed: %w", domain, err)
		}
		raw = resp

		refer := referralServer(resp)
		if refer != "" && !strings.Contains(refer, ":") {
			refer += ":43"
		}
		if refer == "" || refer == server {
			break
		}
		server = refer
	}

	info := parseWhois(raw)
	return info, nil
}

// query sends one WHOIS request and reads the full response.
func (w *WhoisClient) query(ctx context.Context, server, domain string) (string, error) {
	conn, err := w.dialer.DialContext(ctx, "tcp", server)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(w.dialer.Timeout))
	}

	if _, err := fmt.Fprintf(conn, "%s\r\n", domain); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(conn, maxWhoisResponse))
	if err != nil && len(data) == 0 {
		return "", err
	}
	return string(data), nil
}

// referralServer extracts a registry referral from a WHOIS response.
// IANA uses "refer:", some registries use "Registrar WHOIS Server:".
func referralServer(resp string) string {
	for _, line := range strings.Split(resp, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, prefix := range []string{"refer:", "whois:", "registrar whois server:"} {
			if strings.HasPrefix(lower, prefix) {
				value := strings.TrimSpace(line[strings.Index(line, ":")+1:])
				value = strings.TrimPrefix(value, "whois://")
				if value != "" && !strings.Contains(value, " ") {
					return value
				}
			}
		}
	}
	return ""
}

// parseWhois extracts the fields worth surfacing and keeps a truncated
// raw copy for everything else.
func parseWhois(raw string) *model.WhoisInfo {
	info := &model.WhoisInfo{}
	if len(raw) > maxRawWhois {
		info.Raw = raw[:maxRawWhois]
	} else {
		info.Raw = raw
	}

	for _, line := range strings.Split(raw, "\n") {
		lower := strings.ToLower(line)
		value := func() string {
			_, after, ok := strings.Cut(line, ":")
			if !ok {
				return ""
			}
			return strings.TrimSpace(after)
		}

		switch {
		case info.Registrar == "" && strings.Contains(lower, "registrar:"):
			info.Registrar = value()
		case info.CreationDate == "" && strings.Contains(lower, "creation date:"):
			info.CreationDate = value()
		case info.ExpiryDate == "" && (strings.Contains(lower, "expiry date:") || strings.Contains(lower, "expiration date:")):
			info.ExpiryDate = value()
		}
	}
	return info
}
