package osint

import (
	"context"
	"fmt"
	"net/url"

	"github.com/glitchsec/osintkit/internal/model"
)

// Shodan wraps the Shodan REST API. The key rides as a query parameter
// on every call, which is why request URLs must never be logged raw.
type Shodan struct {
	c       *Client
	key     string
	baseURL string
}

// NewShodan creates a Shodan provider using the shared client.
func NewShodan(c *Client, key string) *Shodan {
	return &Shodan{
		c:       c,
		key:     key,
		baseURL: "https://api.shodan.io",
	}
}

// Name returns the provider identifier used for caching and reports.
func (s *Shodan) Name() string { return "shodan" }

// shodanHost is the subset of Shodan's host response we consume.
type shodanHost struct {
	IPStr      string   `json:"ip_str"`
	Org        string   `json:"org"`
	ASN        string   `json:"asn"`
	ISP        string   `json:"isp"`
	Hostnames  []string `json:"hostnames"`
	Ports      []int    `json:"ports"`
	Country    string   `json:"country_name"`
	City       string   `json:"city"`
	Vulns      []string `json:"vulns"`
	LastUpdate string   `json:"last_update"`
}

func (h *shodanHost) toModel() *model.HostRecord {
	return &model.HostRecord{
		IP:           h.IPStr,
		Organization: h.Org,
		ASN:          h.ASN,
		ISP:          h.ISP,
		Hostnames:    h.Hostnames,
		Ports:        h.Ports,
		Country:      h.Country,
		City:         h.City,
		Vulns:        h.Vulns,
		LastUpdate:   h.LastUpdate,
		Source:       "shodan",
	}
}

// Host looks up everything Shodan knows about an IP address.
func (s *Shodan) Host(ctx context.Context, ip string) (*model.HostRecord, error) {
	u := fmt.Sprintf("%s/shodan/host/%s?key=%s", s.baseURL, url.PathEscape(ip), url.QueryEscape(s.key))

	var raw shodanHost
	if err := s.c.getJSON(ctx, s.Name(), u, nil, &raw); err != nil {
		return nil, err
	}
	return raw.toModel(), nil
}

// shodanSearch is the subset of a search response we consume. Matches
// are service banners, so location fields live in a nested object.
type shodanSearch struct {
	Total   int `json:"total"`
	Matches []struct {
		IPStr     string   `json:"ip_str"`
		Port      int      `json:"port"`
		Org       string   `json:"org"`
		ASN       string   `json:"asn"`
		ISP       string   `json:"isp"`
		Hostnames []string `json:"hostnames"`
		Timestamp string   `json:"timestamp"`
		Location  struct {
			Country string `json:"country_name"`
			City    string `json:"city"`
		} `json:"location"`
	} `json:"matches"`
}

// Search runs a Shodan search query and returns up to limit matches.
// The query uses Shodan filter syntax, e.g. "http.favicon.hash:-1234".
func (s *Shodan) Search(ctx context.Context, query string, limit int) ([]model.HostRecord, int, error) {
	u := fmt.Sprintf("%s/shodan/host/search?key=%s&query=%s&limit=%d",
		s.baseURL, url.QueryEscape(s.key), url.QueryEscape(query), limit)

	var raw shodanSearch
	if err := s.c.getJSON(ctx, s.Name(), u, nil, &raw); err != nil {
		return nil, 0, err
	}

	hosts := make([]model.HostRecord, 0, len(raw.Matches))
	for _, m := range raw.Matches {
		hosts = append(hosts, model.HostRecord{
			IP:           m.IPStr,
			Port:         m.Port,
			Organization: m.Org,
			ASN:          m.ASN,
			ISP:          m.ISP,
			Hostnames:    m.Hostnames,
			Country:      m.Location.Country,
			City:         m.Location.City,
			LastUpdate:   m.Timestamp,
			Source:       "shodan",
		})
	}
	return hosts, raw.Total, nil
}

// shodanDomain is the subset of the DNS domain response we consume.
type shodanDomain struct {
	Domain     string   `json:"domain"`
	Subdomains []string `json:"subdomains"`
	Data       []struct {
		Subdomain string `json:"subdomain"`
		Type      string `json:"type"`
		Value     string `json:"value"`
	} `json:"data"`
}

// Domain returns the subdomains and DNS records Shodan has observed for
// a domain. Records are keyed by type (A, MX, NS, ...), with values for
// the apex only so the map stays readable.
func (s *Shodan) Domain(ctx context.Context, domain string) ([]string, map[string][]string, error) {
	u := fmt.Sprintf("%s/dns/domain/%s?key=%s", s.baseURL, url.PathEscape(domain), url.QueryEscape(s.key))

	var raw shodanDomain
	if err := s.c.getJSON(ctx, s.Name(), u, nil, &raw); err != nil {
		return nil, nil, err
	}

	records := make(map[string][]string)
	for _, d := range raw.Data {
		if d.Subdomain != "" {
			continue
		}
		records[d.Type] = append(records[d.Type], d.Value)
	}
	return raw.Subdomains, records, nil
}

// APIInfo is the Shodan account status: plan name and remaining credits.
type APIInfo struct {
	Plan         string `json:"plan"`
	QueryCredits int    `json:"query_credits"`
	ScanCredits  int    `json:"scan_credits"`
}

// Info returns plan and credit information for the configured key.
// Useful as a cheap key-validity check.
func (s *Shodan) Info(ctx context.Context) (*APIInfo, error) {
	u := fmt.Sprintf("%s/api-info?key=%s", s.baseURL, url.QueryEscape(s.key))

	var info APIInfo
	if err := s.c.getJSON(ctx, s.Name(), u, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
