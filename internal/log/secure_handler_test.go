package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestSecureHandlerSanitizesSensitiveKeys tests that credential-bearing
// attribute keys are masked while ordinary attributes pass through.
func TestSecureHandlerSanitizesSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{
			name:     "authorization key is sanitized",
			key:      "authorization",
			value:    "Bearer token123",
			wantMask: true,
		},
		{
			name:     "x-rapidapi-key header is sanitized",
			key:      "x-rapidapi-key",
			value:    "rapid123",
			wantMask: true,
		},
		{
			name:     "X-Api-Key header (mixed case) is sanitized",
			key:      "X-Api-Key",
			value:    "apollo123",
			wantMask: true,
		},
		{
			name:     "api_key key is sanitized",
			key:      "api_key",
			value:    "sk_live_123456789",
			wantMask: true,
		},
		{
			name:     "shodan_key key is sanitized",
			key:      "shodan_key",
			value:    "shod123",
			wantMask: true,
		},
		{
			name:     "token key is sanitized",
			key:      "token",
			value:    "tok_value",
			wantMask: true,
		},
		{
			name:     "url key is NOT sanitized",
			key:      "url",
			value:    "https://api.hunter.io/v2/domain-search",
			wantMask: false,
		},
		{
			name:     "provider key is NOT sanitized",
			key:      "provider",
			value:    "shodan",
			wantMask: false,
		},
		{
			name:     "query key is NOT sanitized",
			key:      "query",
			value:    "http.favicon.hash:1848946384",
			wantMask: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, true)

			logger.Info("test message", tt.key, tt.value)

			output := buf.String()
			if tt.wantMask {
				if strings.Contains(output, tt.value) {
					t.Errorf("expected value %q to be masked, but found in output: %s", tt.value, output)
				}
				if !strings.Contains(output, MaskValue) {
					t.Errorf("expected mask value %q in output: %s", MaskValue, output)
				}
			} else {
				if !strings.Contains(output, tt.value) {
					t.Errorf("expected value %q in output: %s", tt.value, output)
				}
			}
		})
	}
}

// TestSecureHandlerSanitizesSensitiveValues tests value-pattern matching
// for keys that look harmless.
func TestSecureHandlerSanitizesSensitiveValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{
			name:  "bearer token value",
			value: "Bearer pplx-abcdef",
		},
		{
			name:  "perplexity key prefix",
			value: "pplx-4f5a6b7c8d9e",
		},
		{
			name:  "censys key prefix",
			value: "censys_N23VLEdH_4nhCLpn683R91J9TJDLFBHMy",
		},
		{
			name:  "long opaque api key",
			value: "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, true)

			// "detail" is not a sensitive key; only the value pattern triggers
			logger.Info("test message", "detail", tt.value)

			output := buf.String()
			if strings.Contains(output, tt.value) {
				t.Errorf("expected value %q to be masked: %s", tt.value, output)
			}
			if !strings.Contains(output, MaskValue) {
				t.Errorf("expected mask value in output: %s", output)
			}
		})
	}
}

// TestSecureHandlerWithGroup verifies grouped attributes are sanitized too.
func TestSecureHandlerWithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, true)

	logger.WithGroup("request").Info("sent",
		"api_key", "supersecret",
		"host", "api.shodan.io",
	)

	output := buf.String()
	if strings.Contains(output, "supersecret") {
		t.Errorf("expected grouped api_key to be masked: %s", output)
	}
	if !strings.Contains(output, "api.shodan.io") {
		t.Errorf("expected host to pass through: %s", output)
	}
}

// TestSecureLoggerLevels verifies verbose switches Debug logging on.
func TestSecureLoggerLevels(t *testing.T) {
	t.Parallel()

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true)
		logger.Debug("debug message")
		if !strings.Contains(buf.String(), "debug message") {
			t.Error("expected debug message in verbose output")
		}
	})

	t.Run("non-verbose drops info", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, false)
		logger.Info("info message")
		if buf.Len() != 0 {
			t.Errorf("expected no output at info level, got %s", buf.String())
		}
	})
}

// TestSecureJSONLogger verifies the JSON variant masks credentials as well.
func TestSecureJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureJSONLogger(&buf, true)

	logger.Info("request", "authorization", "Bearer abc")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if record["authorization"] != MaskValue {
		t.Errorf("authorization = %v, want %q", record["authorization"], MaskValue)
	}
}
