package types

import "time"

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusViewed   ApplicationStatus = "viewed"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// Application is a jobseeker's response to a vacancy. The applicant fields are
// a snapshot taken at submission time.
type Application struct {
	ID           string            `json:"id"`
	VacancyID    string            `json:"vacancy_id"`
	VacancyTitle string            `json:"vacancy_title"`
	CompanyName  string            `json:"company_name"`
	UserID       string            `json:"user_id"`
	UserName     string            `json:"user_name"`
	UserEmail    string            `json:"user_email"`
	ContactPhone string            `json:"contact_phone,omitempty"`
	CoverLetter  string            `json:"cover_letter"`
	Status       ApplicationStatus `json:"status"`
	Date         time.Time         `json:"date"`
}

// RecordID implements store.Identifiable.
func (a Application) RecordID() string { return a.ID }
