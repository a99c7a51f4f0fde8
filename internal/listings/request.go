package listings

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/jobboard/internal/types"
)

// MsgRequired is shown for every missing mandatory field.
const MsgRequired = "Пожалуйста, заполните все обязательные поля"

// Requirements decodes from either a JSON list or a comma-separated string.
type Requirements []string

func (r *Requirements) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*r = list
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = SplitRequirements(s)
	return nil
}

// SplitRequirements splits a comma-separated list, trimming items and
// dropping empty ones.
func SplitRequirements(s string) []string {
	return normalizeRequirements(strings.Split(s, ","))
}

func normalizeRequirements(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// CreateRequest is the input for publishing a vacancy or a resume. Kind is
// set by the caller from the target collection.
type CreateRequest struct {
	Kind            types.ListingKind      `json:"kind" validate:"oneof=vacancy resume"`
	Title           string                 `json:"title" validate:"required"`
	Company         string                 `json:"company,omitempty" validate:"required_if=Kind vacancy"`
	Name            string                 `json:"name,omitempty"`
	Description     string                 `json:"description" validate:"required"`
	Requirements    Requirements           `json:"requirements"`
	Category        string                 `json:"category,omitempty"`
	Experience      *float64               `json:"experience,omitempty" validate:"omitempty,gte=0"`
	Location        string                 `json:"location,omitempty"`
	Remote          bool                   `json:"remote"`
	Salary          string                 `json:"salary,omitempty" validate:"max=100"`
	AuthorID        string                 `json:"author_id,omitempty"`
	WorkExperiences []types.WorkExperience `json:"work_experiences,omitempty"`
}

// normalize trims text fields and converts an HTML description to text.
func (r CreateRequest) normalize() (CreateRequest, error) {
	r.Title = strings.TrimSpace(r.Title)
	r.Company = strings.TrimSpace(r.Company)
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Location = strings.TrimSpace(r.Location)
	r.Salary = strings.TrimSpace(r.Salary)
	r.AuthorID = strings.TrimSpace(r.AuthorID)
	r.Requirements = normalizeRequirements(r.Requirements)

	desc, err := PlainText(r.Description)
	if err != nil {
		return r, err
	}
	r.Description = desc
	return r, nil
}
