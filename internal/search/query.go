package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jonathan/jobboard/internal/apperrors"
)

// FromValues builds a FilterState from URL query parameters. List parameters
// (skills, keywords) accept repeated keys and comma-separated values.
// Parse failures are reported per parameter.
func FromValues(v url.Values) (FilterState, error) {
	f := DefaultFilterState()
	bad := map[string]string{}

	f.Query = v.Get("q")
	f.Category = v.Get("category")
	f.Location = v.Get("location")
	f.EmploymentType = v.Get("employment_type")
	f.ExperienceText = v.Get("experience")
	f.DatePosted = DateBucket(v.Get("date_posted"))
	if s := v.Get("sort"); s != "" {
		f.SortBy = SortOrder(s)
	}
	f.SelectedSkills = splitList(v["skills"])
	f.Keywords = splitList(v["keywords"])

	f.VerifiedOnly = parseBool(v, "verified", bad)
	f.NoExperience = parseBool(v, "no_experience", bad)
	f.Remote = parseBool(v, "remote", bad)

	f.MinExperience = parseFloat(v, "min_experience", bad)
	f.MaxExperience = parseFloat(v, "max_experience", bad)
	f.MinSalary = parseInt64(v, "min_salary", bad)
	f.MaxSalary = parseInt64(v, "max_salary", bad)

	if s := v.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			bad["limit"] = "must be an integer"
		}
		f.Limit = n
	}

	if len(bad) > 0 {
		return f, apperrors.Validation("search.FromValues", bad)
	}
	if err := f.Validate(); err != nil {
		return f, err
	}
	return f, nil
}

func splitList(values []string) []string {
	var out []string
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseBool(v url.Values, key string, bad map[string]string) bool {
	s := v.Get(key)
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		bad[key] = "must be a boolean"
	}
	return b
}

func parseFloat(v url.Values, key string, bad map[string]string) *float64 {
	s := v.Get(key)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		bad[key] = "must be a number"
		return nil
	}
	return &n
}

func parseInt64(v url.Values, key string, bad map[string]string) *int64 {
	s := v.Get(key)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		bad[key] = "must be an integer"
		return nil
	}
	return &n
}
