package model

// CompanyProfile is the reshaped Apollo.io organization enrichment result.
type CompanyProfile struct {
	Name        string `json:"name,omitempty"`
	Website     string `json:"website,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Description string `json:"description,omitempty"`
	Phone       string `json:"phone,omitempty"`

	// Employees is Apollo's estimated headcount.
	Employees int `json:"employees,omitempty"`

	// Founded is the founding year.
	Founded int `json:"founded,omitempty"`

	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`

	// AnnualRevenue is Apollo's printed revenue estimate, e.g. "$10M".
	AnnualRevenue string `json:"annual_revenue,omitempty"`

	// Technologies and Keywords are capped by the caller to keep output
	// readable; Apollo can return hundreds.
	Technologies []string `json:"technologies,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

// PersonProfile is the reshaped Apollo.io people-match result.
type PersonProfile struct {
	Name     string `json:"name,omitempty"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`

	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`

	// Company fields describe the person's current organization.
	Company         string `json:"company,omitempty"`
	CompanySize     int    `json:"company_size,omitempty"`
	CompanyIndustry string `json:"company_industry,omitempty"`
}
