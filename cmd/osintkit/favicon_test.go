package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glitchsec/osintkit/internal/config"
)

// pngIcon is a minimal PNG header, enough to pass image sniffing.
var pngIcon = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

func TestResolveFingerprint(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	t.Run("bare integer is an mmh3 hash", func(t *testing.T) {
		t.Parallel()

		fp, err := resolveFingerprint(context.Background(), cfg, "-1848946384")
		if err != nil {
			t.Fatalf("resolveFingerprint() error = %v", err)
		}
		if fp.MMH3 != -1848946384 {
			t.Errorf("MMH3 = %d, want -1848946384", fp.MMH3)
		}
		// No icon bytes, so no content digests
		if fp.MD5 != "" || fp.SHA256 != "" {
			t.Errorf("expected empty digests, got MD5=%q SHA256=%q", fp.MD5, fp.SHA256)
		}
	})

	t.Run("local file is hashed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "favicon.ico")
		if err := os.WriteFile(path, pngIcon, 0600); err != nil {
			t.Fatalf("failed to write icon: %v", err)
		}

		fp, err := resolveFingerprint(context.Background(), cfg, path)
		if err != nil {
			t.Fatalf("resolveFingerprint() error = %v", err)
		}
		if fp.Size != len(pngIcon) {
			t.Errorf("Size = %d, want %d", fp.Size, len(pngIcon))
		}
		if fp.MD5 == "" || fp.SHA256 == "" {
			t.Error("expected content digests for file input")
		}
		if fp.SourceURL != path {
			t.Errorf("SourceURL = %q, want %q", fp.SourceURL, path)
		}
	})

	t.Run("url is fetched", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/favicon.ico" {
				w.Header().Set("Content-Type", "image/x-icon")
				_, _ = w.Write(pngIcon)
				return
			}
			http.NotFound(w, r)
		}))
		defer srv.Close()

		fp, err := resolveFingerprint(context.Background(), cfg, srv.URL)
		if err != nil {
			t.Fatalf("resolveFingerprint() error = %v", err)
		}
		if fp.Size != len(pngIcon) {
			t.Errorf("Size = %d, want %d", fp.Size, len(pngIcon))
		}
	})

	t.Run("no favicon is a clear error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		_, err := resolveFingerprint(context.Background(), cfg, srv.URL)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "no favicon") {
			t.Errorf("error = %v, want mention of missing favicon", err)
		}
	})
}

// TestFaviconCmdOutput runs the favicon command end to end on a bare
// MMH3 hash, which needs no network or keys.
func TestFaviconCmdOutput(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "favicon.txt")

	root := NewRootCmd()
	root.SetArgs([]string{"favicon", "--keys", emptyKeysFile(t), "-o", outPath, "--", "-1848946384"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	out := string(content)
	for _, want := range []string{
		"http.favicon.hash:-1848946384",
		`icon_hash="-1848946384"`,
		"shodan.io/search",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// TestFaviconCmdMultipleTargets fingerprints two bare hashes in one
// invocation and checks both appear in argument order.
func TestFaviconCmdMultipleTargets(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "favicon.txt")

	root := NewRootCmd()
	root.SetArgs([]string{"favicon", "--keys", emptyKeysFile(t), "-o", outPath, "--", "-1848946384", "81586312"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	out := string(content)
	first := strings.Index(out, "http.favicon.hash:-1848946384")
	second := strings.Index(out, "http.favicon.hash:81586312")
	if first < 0 || second < 0 {
		t.Fatalf("output missing a target's filter:\n%s", out)
	}
	if first > second {
		t.Error("results are not in argument order")
	}
}

// TestFaviconCmdMarkdownOutput checks that the markdown flag produces a
// Markdown document rather than bare JSON.
func TestFaviconCmdMarkdownOutput(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "favicon.md")

	root := NewRootCmd()
	root.SetArgs([]string{"favicon", "--markdown", "--keys", emptyKeysFile(t), "-o", outPath, "--", "-1848946384"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	out := string(content)
	for _, want := range []string{
		"# Lookup Result",
		"```json",
		"http.favicon.hash:-1848946384",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJoinNonEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{name: "all present", parts: []string{"Berlin", "Germany"}, want: "Berlin, Germany"},
		{name: "first empty", parts: []string{"", "Germany"}, want: "Germany"},
		{name: "all empty", parts: []string{"", ""}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := joinNonEmpty(tt.parts...); got != tt.want {
				t.Errorf("joinNonEmpty(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}
