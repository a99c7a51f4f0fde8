// Package types provides the record shapes persisted by the job board store.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ListingKind distinguishes vacancies from published resumes.
type ListingKind string

const (
	KindVacancy ListingKind = "vacancy"
	KindResume  ListingKind = "resume"
)

// Listing is a vacancy or a published resume. Both kinds share the filtering
// shape: Title is the vacancy title or the desired position, Company is set on
// vacancies and Name on resumes, Requirements holds required or offered skills,
// Experience is in years and Salary is free-form text parsed on demand.
type Listing struct {
	ID              string           `json:"id"`
	Kind            ListingKind      `json:"kind"`
	Title           string           `json:"title"`
	Company         string           `json:"company,omitempty"`
	Name            string           `json:"name,omitempty"`
	Description     string           `json:"description"`
	Requirements    []string         `json:"requirements"`
	Category        string           `json:"category,omitempty"`
	Verified        bool             `json:"verified"`
	Experience      *float64         `json:"experience,omitempty"`
	Location        string           `json:"location,omitempty"`
	Remote          bool             `json:"remote"`
	Salary          string           `json:"salary,omitempty"`
	Date            time.Time        `json:"date"`
	AuthorID        string           `json:"author_id"`
	Applications    []string         `json:"applications"`
	WorkExperiences []WorkExperience `json:"work_experiences,omitempty"`
}

// RecordID implements store.Identifiable.
func (l Listing) RecordID() string { return l.ID }

// IsResume reports whether the listing is a published resume.
func (l Listing) IsResume() bool { return l.Kind == KindResume }
