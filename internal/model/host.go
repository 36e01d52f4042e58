package model

// HostRecord is a normalized view of a host as reported by Shodan or
// Censys. Both providers return much more than this; we keep the subset
// that is useful on a terminal and consistent across engines.
type HostRecord struct {
	// IP is the host's IP address.
	IP string `json:"ip"`

	// Port is the service port, when the record came from a service-level
	// search (e.g. a Shodan favicon match). Zero for host-level lookups.
	Port int `json:"port,omitempty"`

	// Organization is the owning organization, per the provider.
	Organization string `json:"organization,omitempty"`

	// ASN is the autonomous system number, e.g. "AS15169".
	ASN string `json:"asn,omitempty"`

	// ISP is the service provider, when reported (Shodan only).
	ISP string `json:"isp,omitempty"`

	// Hostnames are reverse-DNS or certificate names tied to the host.
	Hostnames []string `json:"hostnames,omitempty"`

	// Ports are the open ports known for the host.
	Ports []int `json:"ports,omitempty"`

	// Country and City locate the host.
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`

	// Vulns lists CVE identifiers the provider associates with the host.
	Vulns []string `json:"vulns,omitempty"`

	// LastUpdate is the provider's freshness timestamp, verbatim.
	LastUpdate string `json:"last_update,omitempty"`

	// Source names the provider the record came from ("shodan", "censys").
	Source string `json:"source,omitempty"`
}
