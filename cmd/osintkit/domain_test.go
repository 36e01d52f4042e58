package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizeDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "bare domain", target: "example.com", want: "example.com"},
		{name: "uppercase folded", target: "EXAMPLE.COM", want: "example.com"},
		{name: "https url", target: "https://example.com/about", want: "example.com"},
		{name: "http url with port", target: "http://example.com:8080", want: "example.com"},
		{name: "whitespace trimmed", target: "  example.com  ", want: "example.com"},
		{name: "no dot rejected", target: "localhost", want: ""},
		{name: "empty rejected", target: "", want: ""},
		{name: "scheme only rejected", target: "https://", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeDomain(tt.target); got != tt.want {
				t.Errorf("normalizeDomain(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}

// TestDomainCmdInvalidTarget checks argument validation without any
// network access.
func TestDomainCmdInvalidTarget(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"domain", "--keys", emptyKeysFile(t), "--no-dns", "--no-whois", "not_a_domain"})

	err := root.Execute()
	if err == nil {
		t.Fatal("expected error for invalid domain")
	}
	if !strings.Contains(err.Error(), "invalid domain") {
		t.Errorf("error = %v, want invalid domain message", err)
	}
}

// TestDomainCmdKeyless runs the domain command with DNS and WHOIS
// disabled and no provider keys, which should produce an empty profile
// rather than an error.
func TestDomainCmdKeyless(t *testing.T) {
	t.Setenv("SHODAN_API_KEY", "")
	t.Setenv("HUNTER_API_KEY", "")

	outPath := filepath.Join(t.TempDir(), "domain.txt")

	root := NewRootCmd()
	root.SetArgs([]string{
		"domain",
		"--keys", emptyKeysFile(t),
		"--no-dns", "--no-whois", "--no-cache",
		"-o", outPath,
		"example.com",
	})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(content), "example.com") {
		t.Errorf("output missing domain name:\n%s", content)
	}
}

// TestDomainCmdMultipleTargets profiles two domains in one keyless
// invocation and checks both appear in argument order.
func TestDomainCmdMultipleTargets(t *testing.T) {
	t.Setenv("SHODAN_API_KEY", "")
	t.Setenv("HUNTER_API_KEY", "")

	outPath := filepath.Join(t.TempDir(), "domains.txt")

	root := NewRootCmd()
	root.SetArgs([]string{
		"domain",
		"--keys", emptyKeysFile(t),
		"--no-dns", "--no-whois", "--no-cache",
		"-o", outPath,
		"example.com", "example.org",
	})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	out := string(content)
	first := strings.Index(out, "example.com")
	second := strings.Index(out, "example.org")
	if first < 0 || second < 0 {
		t.Fatalf("output missing a domain:\n%s", out)
	}
	if first > second {
		t.Error("results are not in argument order")
	}
}

// TestMergePassiveDNS verifies that apex records fill gaps without
// overriding locally resolved types.
func TestMergePassiveDNS(t *testing.T) {
	t.Parallel()

	t.Run("fills missing types only", func(t *testing.T) {
		t.Parallel()

		local := map[string][]string{"A": {"192.0.2.1"}}
		passive := map[string][]string{
			"A":  {"203.0.113.9"},
			"MX": {"10 mail.example.com"},
		}

		got := mergePassiveDNS(local, passive)
		if len(got["A"]) != 1 || got["A"][0] != "192.0.2.1" {
			t.Errorf("local A records overridden: %v", got["A"])
		}
		if len(got["MX"]) != 1 || got["MX"][0] != "10 mail.example.com" {
			t.Errorf("passive MX records missing: %v", got["MX"])
		}
	})

	t.Run("stands in for skipped resolution", func(t *testing.T) {
		t.Parallel()

		passive := map[string][]string{"NS": {"ns2.example.com", "ns1.example.com"}}
		got := mergePassiveDNS(nil, passive)
		if len(got["NS"]) != 2 || got["NS"][0] != "ns1.example.com" {
			t.Errorf("passive records not merged sorted: %v", got["NS"])
		}
	})

	t.Run("no passive data leaves local untouched", func(t *testing.T) {
		t.Parallel()

		if got := mergePassiveDNS(nil, nil); got != nil {
			t.Errorf("mergePassiveDNS(nil, nil) = %v, want nil", got)
		}
	})
}
