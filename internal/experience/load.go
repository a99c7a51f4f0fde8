package experience

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/jobboard/internal/types"
)

// LoadFile reads a JSON array of work-experience records. Every record must
// pass the editor's validation; the returned records are normalized the way
// Save normalizes them. Order is kept as in the file.
func LoadFile(path string) ([]types.WorkExperience, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var list []types.WorkExperience
	if err := json.Unmarshal(content, &list); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	for i, rec := range list {
		normalized, err := checked("experience.LoadFile", draftOf(rec))
		if err != nil {
			return nil, &LoadError{
				Message: fmt.Sprintf("invalid record at index %d", i),
				Cause:   err,
			}
		}
		list[i] = normalized
	}

	return list, nil
}

// draftOf copies rec into a draft without defaults, so a closed record with
// missing end fields fails validation.
func draftOf(rec types.WorkExperience) Draft {
	d := Draft{
		CompanyName:      rec.CompanyName,
		Location:         rec.Location,
		Website:          rec.Website,
		Industry:         rec.Industry,
		Position:         rec.Position,
		StartMonth:       rec.StartMonth,
		StartYear:        rec.StartYear,
		CurrentlyWorking: rec.CurrentlyWorking,
		Responsibilities: rec.Responsibilities,
	}
	if rec.EndMonth != nil {
		d.EndMonth = *rec.EndMonth
	}
	if rec.EndYear != nil {
		d.EndYear = *rec.EndYear
	}
	return d
}
