package model

// LinkedInProfile is the reshaped Fresh LinkedIn Profile Data enrichment
// result for a person.
type LinkedInProfile struct {
	Name     string `json:"name,omitempty"`
	Headline string `json:"headline,omitempty"`
	About    string `json:"about,omitempty"`
	Location string `json:"location,omitempty"`

	// Connections is the profile's connection count.
	Connections int `json:"connections,omitempty"`

	CurrentCompany  string `json:"current_company,omitempty"`
	CurrentTitle    string `json:"current_title,omitempty"`
	CompanySize     int    `json:"company_size,omitempty"`
	CompanyIndustry string `json:"company_industry,omitempty"`

	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Skills     []string     `json:"skills,omitempty"`

	// URL is the profile URL the lookup was performed with.
	URL string `json:"linkedin_url,omitempty"`
}

// Experience is a single position from a LinkedIn profile.
type Experience struct {
	Title    string `json:"title,omitempty"`
	Company  string `json:"company,omitempty"`
	Duration string `json:"duration,omitempty"`
	Current  bool   `json:"current,omitempty"`
}

// Education is a single school entry from a LinkedIn profile.
type Education struct {
	School string `json:"school,omitempty"`
	Degree string `json:"degree,omitempty"`
	Field  string `json:"field,omitempty"`
}

// LinkedInCompany is the reshaped Fresh LinkedIn Profile Data company
// lookup result.
type LinkedInCompany struct {
	Name        string `json:"company_name,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Domain      string `json:"domain,omitempty"`

	EmployeeCount int    `json:"employee_count,omitempty"`
	EmployeeRange string `json:"employee_range,omitempty"`
	FollowerCount int    `json:"follower_count,omitempty"`
	Founded       int    `json:"founded,omitempty"`

	Industry    string   `json:"industry,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Headquarters string  `json:"hq_location,omitempty"`

	URL     string `json:"linkedin_url,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

// ProfileURLs is the result of a LinkedIn profile URL discovery search.
type ProfileURLs struct {
	Name    string   `json:"name"`
	Company string   `json:"company,omitempty"`
	URLs    []string `json:"linkedin_urls,omitempty"`
}

// Top returns the best-ranked profile URL, or empty if none were found.
func (p *ProfileURLs) Top() string {
	if len(p.URLs) == 0 {
		return ""
	}
	return p.URLs[0]
}
