package osint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/glitchsec/osintkit/internal/model"
)

// Censys wraps the Censys Platform API v3. Authentication is a personal
// access token sent as a Bearer header, scoped to an organization via
// the organization_id query parameter.
type Censys struct {
	c       *Client
	token   string
	orgID   string
	baseURL string
}

// NewCensys creates a Censys provider. orgID may be empty for tokens
// that are not organization-scoped.
func NewCensys(c *Client, token, orgID string) *Censys {
	return &Censys{
		c:       c,
		token:   token,
		orgID:   orgID,
		baseURL: "https://api.platform.censys.io/v3",
	}
}

// Name returns the provider identifier used for caching and reports.
func (c *Censys) Name() string { return "censys" }

func (c *Censys) header() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+c.token)
	return h
}

// withOrg appends the organization_id parameter when one is configured.
func (c *Censys) withOrg(u string) string {
	if c.orgID == "" {
		return u
	}
	sep := "?"
	if len(u) > 0 && containsQuery(u) {
		sep = "&"
	}
	return u + sep + "organization_id=" + url.QueryEscape(c.orgID)
}

func containsQuery(u string) bool {
	for i := 0; i < len(u); i++ {
		if u[i] == '?' {
			return true
		}
	}
	return false
}

// censysResource is the subset of a Censys host resource we consume.
// Censys reports the ASN as a number and the owning org as the AS name.
type censysResource struct {
	IP       string `json:"ip"`
	Location struct {
		Country string `json:"country"`
		City    string `json:"city"`
	} `json:"location"`
	AutonomousSystem struct {
		ASN  int    `json:"asn"`
		Name string `json:"name"`
	} `json:"autonomous_system"`
	DNS struct {
		Names []string `json:"names"`
	} `json:"dns"`
	Services []struct {
		Port int `json:"port"`
	} `json:"services"`
}

func (r *censysResource) toModel() *model.HostRecord {
	rec := &model.HostRecord{
		IP:           r.IP,
		Organization: r.AutonomousSystem.Name,
		Hostnames:    r.DNS.Names,
		Country:      r.Location.Country,
		City:         r.Location.City,
		Source:       "censys",
	}
	if r.AutonomousSystem.ASN != 0 {
		rec.ASN = "AS" + strconv.Itoa(r.AutonomousSystem.ASN)
	}
	for _, svc := range r.Services {
		rec.Ports = append(rec.Ports, svc.Port)
	}
	return rec
}

// Host looks up a host asset by IP address.
func (c *Censys) Host(ctx context.Context, ip string) (*model.HostRecord, error) {
	u := c.withOrg(fmt.Sprintf("%s/global/asset/host/%s", c.baseURL, url.PathEscape(ip)))

	var raw struct {
		Result struct {
			Resource censysResource `json:"resource"`
		} `json:"result"`
	}
	if err := c.c.getJSON(ctx, c.Name(), u, c.header(), &raw); err != nil {
		return nil, err
	}
	return raw.Result.Resource.toModel(), nil
}

// Search runs a Censys search query and returns up to pageSize hits.
// The query uses Censys field syntax, e.g.
// "host.services.endpoints.http.favicons.hash_sha256:<digest>".
func (c *Censys) Search(ctx context.Context, query string, pageSize int) ([]model.HostRecord, error) {
	u := c.withOrg(c.baseURL + "/global/search/query")

	payload := map[string]any{
		"query":     query,
		"page_size": pageSize,
	}

	var raw struct {
		Result struct {
			Hits []json.RawMessage `json:"hits"`
		} `json:"result"`
	}
	if err := c.c.postJSON(ctx, c.Name(), u, c.header(), payload, &raw); err != nil {
		return nil, err
	}

	// Hits arrive either wrapped in a "host" envelope or as bare
	// resources, depending on the query's asset type.
	hosts := make([]model.HostRecord, 0, len(raw.Result.Hits))
	for _, hit := range raw.Result.Hits {
		var wrapped struct {
			Host censysResource `json:"host"`
		}
		if err := json.Unmarshal(hit, &wrapped); err == nil && wrapped.Host.IP != "" {
			hosts = append(hosts, *wrapped.Host.toModel())
			continue
		}

		var bare censysResource
		if err := json.Unmarshal(hit, &bare); err == nil && bare.IP != "" {
			hosts = append(hosts, *bare.toModel())
		}
	}
	return hosts, nil
}
