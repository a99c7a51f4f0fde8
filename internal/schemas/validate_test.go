package schemas

import (
	"errors"
	"testing"
	"time"

	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"application", "listing", "user", "work_experience"}, Names())
}

func TestAllSchemasCompile(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			_, err := load(name)
			require.NoError(t, err)
		})
	}
}

func TestValidateJSON_UnknownSchema(t *testing.T) {
	err := ValidateJSON("nope", []byte(`{}`))
	require.Error(t, err)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateJSON_Application(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "valid",
			doc:  `{"id":"a1","vacancy_id":"v1","user_id":"u1","status":"pending","date":"2025-04-20T10:00:00Z"}`,
		},
		{
			name:    "unknown status",
			doc:     `{"id":"a1","vacancy_id":"v1","user_id":"u1","status":"hired","date":"2025-04-20T10:00:00Z"}`,
			wantErr: true,
		},
		{
			name:    "missing user",
			doc:     `{"id":"a1","vacancy_id":"v1","status":"pending","date":"2025-04-20T10:00:00Z"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(Application, []byte(tt.doc))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.NotEmpty(t, verr.Errors)
		})
	}
}

func TestCheck_ListingVacancyNeedsCompany(t *testing.T) {
	l := types.Listing{
		ID:          "v1",
		Kind:        types.KindVacancy,
		Title:       "Go developer",
		Description: "Backend work",
		Date:        time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
	}

	err := Check("listings.Create", Listing, l)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.NotEmpty(t, apperrors.FieldsOf(err))

	l.Company = "Acme"
	assert.NoError(t, Check("listings.Create", Listing, l))
}

func TestCheck_ResumeAllowsEmptyCompany(t *testing.T) {
	l := types.Listing{
		ID:          "r1",
		Kind:        types.KindResume,
		Title:       "Frontend developer",
		Name:        "Анна",
		Description: "",
		Date:        time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, Check("listings.Create", Listing, l))
}

func TestCheck_WorkExperienceMonthRange(t *testing.T) {
	bad := types.WorkExperience{CompanyName: "Acme", Position: "Dev", StartMonth: 13, StartYear: 2020, CurrentlyWorking: true}
	err := Check("experience.Save", WorkExperience, bad)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestValidationError_FieldsJoinsDuplicates(t *testing.T) {
	ve := &ValidationError{Errors: []FieldError{
		{Field: "status", Message: "a"},
		{Field: "status", Message: "b"},
		{Field: "id", Message: "c"},
	}}
	assert.Equal(t, map[string]string{"status": "a; b", "id": "c"}, ve.Fields())
}
