package favicon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/glitchsec/osintkit/internal/model"
)

// ErrNoFavicon is returned when a site serves pages but no favicon
// could be located through HTML discovery or well-known paths.
var ErrNoFavicon = errors.New("favicon: no favicon found")

// fallbackPaths are the well-known icon locations probed when the HTML
// does not declare one. Ordered by how commonly each is served.
var fallbackPaths = []string{
	"/favicon.ico",
	"/favicon.png",
	"/apple-touch-icon.png",
	"/apple-touch-icon-precomposed.png",
}

// Fetcher downloads favicons from websites and fingerprints them.
//
// Design decision: We use a struct with the http.Client rather than
// passing the client on each call because:
//  1. Client configuration (timeouts, transport) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with httptest servers
type Fetcher struct {
	// client is the HTTP client used to fetch pages and icons.
	client *http.Client

	// userAgent is the User-Agent header to use for requests.
	userAgent string

	// maxBodySize limits how many icon bytes are read. Favicons are
	// small; anything past this limit is not a favicon.
	maxBodySize int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum icon size to read.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// NewFetcher creates a favicon fetcher. If client is nil a default
// client with a 30 second timeout is used.
func NewFetcher(client *http.Client, opts ...FetcherOption) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	f := &Fetcher{
		client:      client,
		userAgent:   "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
		maxBodySize: 5 * 1024 * 1024, // 5MB
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch locates and downloads the favicon for target and returns its
// fingerprint. Discovery order:
//  1. <link rel="icon"> / <link rel="shortcut icon"> in the page HTML
//  2. Well-known fallback paths (/favicon.ico and friends)
//
// Returns ErrNoFavicon when no candidate yields valid image bytes.
func (f *Fetcher) Fetch(ctx context.Context, target string) (model.Fingerprint, error) {
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	base, err := url.Parse(target)
	if err != nil {
		return model.Fingerprint{}, fmt.Errorf("favicon: invalid target URL: %w", err)
	}

	// HTML discovery first. A declared icon overrides the well-known
	// paths because that is what browsers load.
	if href, err := f.discoverInHTML(ctx, base); err == nil && href != "" {
		iconURL := resolveRef(base, href)
		if fp, err := f.fetchIcon(ctx, iconURL); err == nil {
			return fp, nil
		}
	}

	for _, path := range fallbackPaths {
		iconURL := base.Scheme + "://" + base.Host + path
		fp, err := f.fetchIcon(ctx, iconURL)
		if err == nil {
			return fp, nil
		}
		if ctx.Err() != nil {
			return model.Fingerprint{}, ctx.Err()
		}
	}

	return model.Fingerprint{}, fmt.Errorf("%w for %s", ErrNoFavicon, base.Host)
}

// FetchURL downloads the icon at an exact URL, with no discovery.
func (f *Fetcher) FetchURL(ctx context.Context, iconURL string) (model.Fingerprint, error) {
	if !strings.HasPrefix(iconURL, "http://") && !strings.HasPrefix(iconURL, "https://") {
		iconURL = "https://" + iconURL
	}
	return f.fetchIcon(ctx, iconURL)
}

// discoverInHTML fetches the target page and extracts the first icon
// link declared in its head. Returns the raw href, which may be
// relative.
func (f *Fetcher) discoverInHTML(ctx context.Context, base *url.URL) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return "", fmt.Errorf("favicon: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("favicon: page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("favicon: page returned status %d", resp.StatusCode)
	}

	// Pages in the wild declare all sorts of charsets. Normalize to
	// UTF-8 before parsing so goquery sees valid text.
	body := io.LimitReader(resp.Body, f.maxBodySize)
	reader, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("favicon: charset detection failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return "", fmt.Errorf("favicon: HTML parse failed: %w", err)
	}

	var href string
	doc.Find(`link[rel="shortcut icon"], link[rel="icon"], link[rel="apple-touch-icon"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if v, ok := sel.Attr("href"); ok && strings.TrimSpace(v) != "" {
			href = strings.TrimSpace(v)
			return false
		}
		return true
	})

	return href, nil
}

// fetchIcon downloads iconURL and fingerprints the bytes if they look
// like an image.
func (f *Fetcher) fetchIcon(ctx context.Context, iconURL string) (model.Fingerprint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, iconURL, nil)
	if err != nil {
		return model.Fingerprint{}, fmt.Errorf("favicon: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "image/*,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return model.Fingerprint{}, fmt.Errorf("favicon: icon fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Fingerprint{}, fmt.Errorf("favicon: icon returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return model.Fingerprint{}, fmt.Errorf("favicon: failed to read icon body: %w", err)
	}

	if len(data) == 0 {
		return model.Fingerprint{}, fmt.Errorf("%w: empty response from %s", ErrNoFavicon, iconURL)
	}

	// Servers often return a 200 HTML error page for missing icons.
	// Require either image magic bytes or an image content type.
	if !looksLikeImage(data) && !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return model.Fingerprint{}, fmt.Errorf("%w: %s is not an image", ErrNoFavicon, iconURL)
	}

	fp := Hash(data)
	fp.SourceURL = iconURL
	return fp, nil
}

// looksLikeImage reports whether data starts with the magic bytes of a
// format commonly used for favicons.
func looksLikeImage(data []byte) bool {
	switch {
	case len(data) >= 4 && data[0] == 0x00 && data[1] == 0x00 && data[2] == 0x01 && data[3] == 0x00:
		return true // ICO
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return true // PNG
	case len(data) >= 2 && data[0] == 0xff && data[1] == 0xd8:
		return true // JPEG
	case len(data) >= 6 && (string(data[:6]) == "GIF87a" || string(data[:6]) == "GIF89a"):
		return true // GIF
	case len(data) >= 5 && strings.Contains(strings.ToLower(string(data[:min(len(data), 256)])), "<svg"):
		return true // SVG
	default:
		return false
	}
}

// resolveRef resolves an icon href against the page URL. Invalid hrefs
// resolve to themselves so the fetch fails with a useful error.
func resolveRef(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
