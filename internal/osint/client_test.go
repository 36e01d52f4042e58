package osint

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestStatusToError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "200 is success", status: http.StatusOK, wantErr: nil},
		{name: "201 is success", status: http.StatusCreated, wantErr: nil},
		{name: "404 maps to ErrNotFound", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "401 maps to ErrUnauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "403 maps to ErrUnauthorized", status: http.StatusForbidden, wantErr: ErrUnauthorized},
		{name: "429 maps to ErrRateLimited", status: http.StatusTooManyRequests, wantErr: ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := statusToError("shodan", tt.status, nil)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("statusToError(%d) = %v, want nil", tt.status, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("statusToError(%d) = %v, want %v", tt.status, err, tt.wantErr)
			}
		})
	}

	t.Run("unexpected status yields StatusError with body", func(t *testing.T) {
		t.Parallel()

		err := statusToError("hunter", http.StatusBadGateway, []byte("upstream\nfailed"))
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("statusToError(502) = %T, want *StatusError", err)
		}
		if statusErr.Provider != "hunter" || statusErr.StatusCode != http.StatusBadGateway {
			t.Errorf("unexpected StatusError fields: %+v", statusErr)
		}
		if strings.Contains(statusErr.Body, "\n") {
			t.Errorf("Body should be a single line, got %q", statusErr.Body)
		}
	})
}

func TestClientGetJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes response and sends default headers", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "osintkit/") {
				t.Errorf("User-Agent = %q, want osintkit prefix", got)
			}
			if got := r.Header.Get("Accept"); got != "application/json" {
				t.Errorf("Accept = %q, want application/json", got)
			}
			_, _ = w.Write([]byte(`{"value":"ok"}`))
		}))
		defer srv.Close()

		c := NewClient(WithHTTPClient(srv.Client()))
		var out struct {
			Value string `json:"value"`
		}
		if err := c.getJSON(context.Background(), "test", srv.URL, nil, &out); err != nil {
			t.Fatalf("getJSON() error = %v", err)
		}
		if out.Value != "ok" {
			t.Errorf("Value = %q, want ok", out.Value)
		}
	})

	t.Run("extra headers override defaults", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("Authorization = %q, want Bearer tok", got)
			}
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		h := http.Header{}
		h.Set("Authorization", "Bearer tok")

		c := NewClient(WithHTTPClient(srv.Client()))
		if err := c.getJSON(context.Background(), "test", srv.URL, h, nil); err != nil {
			t.Fatalf("getJSON() error = %v", err)
		}
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"truncated":`))
		}))
		defer srv.Close()

		c := NewClient(WithHTTPClient(srv.Client()))
		var out map[string]any
		if err := c.getJSON(context.Background(), "test", srv.URL, nil, &out); err == nil {
			t.Error("getJSON() expected decode error")
		}
	})

	t.Run("404 surfaces ErrNotFound", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		c := NewClient(WithHTTPClient(srv.Client()))
		err := c.getJSON(context.Background(), "test", srv.URL, nil, nil)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("getJSON() error = %v, want ErrNotFound", err)
		}
	})
}

func TestClientPostJSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes payload with content type", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			if got := r.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", got)
			}
			_, _ = w.Write([]byte(`{"echo":true}`))
		}))
		defer srv.Close()

		c := NewClient(WithHTTPClient(srv.Client()))
		var out struct {
			Echo bool `json:"echo"`
		}
		err := c.postJSON(context.Background(), "test", srv.URL, nil, map[string]string{"q": "x"}, &out)
		if err != nil {
			t.Fatalf("postJSON() error = %v", err)
		}
		if !out.Echo {
			t.Error("response not decoded")
		}
	})
}

func TestRedactURLError(t *testing.T) {
	t.Parallel()

	t.Run("transport error hides query values", func(t *testing.T) {
		t.Parallel()

		// A server that is already closed gives a fast connection
		// failure on a port nothing listens on.
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		base := srv.URL
		srv.Close()

		c := NewClient()
		err := c.getJSON(context.Background(), "shodan", base+"/shodan/host/8.8.8.8?key=SECRET-API-KEY-123", nil, nil)
		if err == nil {
			t.Fatal("expected transport error")
		}
		if strings.Contains(err.Error(), "SECRET-API-KEY-123") {
			t.Errorf("error leaks the API key: %v", err)
		}
		if !strings.Contains(err.Error(), "key=redacted") {
			t.Errorf("error should carry the redacted query, got %v", err)
		}
	})

	t.Run("error without query is unchanged", func(t *testing.T) {
		t.Parallel()

		orig := &url.Error{Op: "Get", URL: "http://127.0.0.1:1/path", Err: errors.New("refused")}
		if got := redactURLError(orig); got != orig {
			t.Errorf("redactURLError() = %v, want the original error", got)
		}
	})

	t.Run("non-url errors pass through", func(t *testing.T) {
		t.Parallel()

		orig := errors.New("plain failure")
		if got := redactURLError(orig); got != orig {
			t.Errorf("redactURLError() = %v, want the original error", got)
		}
	})
}
