package types

// UserType is the account role.
type UserType string

const (
	UserTypeJobseeker UserType = "jobseeker"
	UserTypeEmployer  UserType = "employer"
)

// User is an account record from the users collection.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	UserType UserType `json:"user_type"`
	Profile  Profile  `json:"profile"`
}

// RecordID implements store.Identifiable.
func (u User) RecordID() string { return u.ID }

// IsJobseeker reports whether the user may apply for vacancies.
func (u User) IsJobseeker() bool { return u.UserType == UserTypeJobseeker }

// Profile holds both jobseeker and employer fields; only the ones matching
// the user type are populated.
type Profile struct {
	// Jobseeker
	Position        string           `json:"position,omitempty"`
	Skills          []string         `json:"skills,omitempty"`
	Experience      string           `json:"experience,omitempty"` // "no-experience", "1-3", "3-5", "5+"
	Education       string           `json:"education,omitempty"`
	About           string           `json:"about,omitempty"`
	WorkExperiences []WorkExperience `json:"work_experiences,omitempty"`
	AppliedJobs     []string         `json:"applied_jobs,omitempty"`

	// Employer
	CompanyName string   `json:"company_name,omitempty"`
	Industry    string   `json:"industry,omitempty"`
	CompanySize string   `json:"company_size,omitempty"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	PostedJobs  []string `json:"posted_jobs,omitempty"`

	Contacts Contacts `json:"contacts"`
}

// Contacts are free-form contact details.
type Contacts struct {
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Address  string `json:"address,omitempty"`
}
