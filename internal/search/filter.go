// Package search filters and orders vacancies and published resumes.
package search

import (
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/jobboard/internal/validation"
)

// DateBucket limits results by publish date relative to the engine clock.
type DateBucket string

const (
	DateAny   DateBucket = ""
	DateToday DateBucket = "today"
	DateWeek  DateBucket = "week"
	DateMonth DateBucket = "month"
)

// SortOrder selects how results are ordered.
type SortOrder string

const (
	SortNone       SortOrder = ""
	SortNewest     SortOrder = "newest"
	SortOldest     SortOrder = "oldest"
	SortSalaryHigh SortOrder = "salary-high"
	SortSalaryLow  SortOrder = "salary-low"
	SortRelevance  SortOrder = "relevance"
)

// FilterState is the transient set of active filters. Zero-valued fields are
// inactive. It is never persisted.
type FilterState struct {
	Query          string     `json:"query,omitempty"`
	Category       string     `json:"category,omitempty"`
	VerifiedOnly   bool       `json:"verified_only,omitempty"`
	SelectedSkills []string   `json:"selected_skills,omitempty"`
	MinExperience  *float64   `json:"min_experience,omitempty" validate:"omitempty,gte=0"`
	MaxExperience  *float64   `json:"max_experience,omitempty" validate:"omitempty,gte=0"`
	NoExperience   bool       `json:"no_experience,omitempty"`
	Location       string     `json:"location,omitempty"`
	Remote         bool       `json:"remote,omitempty"`
	MinSalary      *int64     `json:"min_salary,omitempty" validate:"omitempty,gte=0"`
	MaxSalary      *int64     `json:"max_salary,omitempty" validate:"omitempty,gte=0"`
	EmploymentType string     `json:"employment_type,omitempty"`
	ExperienceText string     `json:"experience,omitempty"`
	DatePosted     DateBucket `json:"date_posted,omitempty" validate:"omitempty,oneof=today week month"`
	Keywords       []string   `json:"keywords,omitempty"`
	SortBy         SortOrder  `json:"sort_by,omitempty" validate:"omitempty,oneof=newest oldest salary-high salary-low relevance"`
	Limit          int        `json:"limit,omitempty" validate:"gte=0"`
}

// DefaultFilterState has no active filters and sorts newest first.
func DefaultFilterState() FilterState {
	return FilterState{SortBy: SortNewest}
}

// Reset restores the defaults.
func (f *FilterState) Reset() {
	*f = DefaultFilterState()
}

// MsgNoExperienceWithBounds is reported when no_experience is combined with
// an experience bound.
const MsgNoExperienceWithBounds = "cannot be combined with min_experience or max_experience"

func filterRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(FilterState)
	if f.NoExperience && (f.MinExperience != nil || f.MaxExperience != nil) {
		sl.ReportError(f.NoExperience, "no_experience", "NoExperience", "exclusive", "")
	}
}

func init() {
	validation.Validator().RegisterStructValidation(filterRules, FilterState{})
}

// Validate checks enum fields and numeric bounds, and that no_experience is
// not combined with experience bounds. Apply does not validate; given both,
// NoExperience wins there.
func (f FilterState) Validate() error {
	return validation.FromError("search.FilterState", validation.Validator().Struct(f), map[string]string{
		"no_experience": MsgNoExperienceWithBounds,
	})
}

// HasTerms reports whether a text query or keyword is set, which is what
// relevance ordering scores against.
func (f FilterState) HasTerms() bool {
	return len(f.terms()) > 0
}

// Active reports whether any predicate is set.
func (f FilterState) Active() bool {
	return f.Query != "" || f.Category != "" || f.VerifiedOnly ||
		len(f.SelectedSkills) > 0 || f.MinExperience != nil || f.MaxExperience != nil ||
		f.NoExperience || f.Location != "" || f.Remote || f.MinSalary != nil ||
		f.MaxSalary != nil || f.EmploymentType != "" || f.ExperienceText != "" ||
		f.DatePosted != DateAny || len(nonBlank(f.Keywords)) > 0
}
