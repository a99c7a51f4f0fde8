package types

// WorkExperience is one structured work-history entry owned by a profile.
// EndMonth and EndYear are nil iff CurrentlyWorking is set.
type WorkExperience struct {
	CompanyName      string `json:"company_name"`
	Location         string `json:"location,omitempty"`
	Website          string `json:"website,omitempty"`
	Industry         string `json:"industry,omitempty"`
	Position         string `json:"position"`
	StartMonth       int    `json:"start_month"`
	StartYear        int    `json:"start_year"`
	EndMonth         *int   `json:"end_month"`
	EndYear          *int   `json:"end_year"`
	CurrentlyWorking bool   `json:"currently_working"`
	Responsibilities string `json:"responsibilities,omitempty"`
}
