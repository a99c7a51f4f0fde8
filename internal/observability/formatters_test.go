package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jonathan/jobboard/internal/experience"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintListings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	listings := []types.Listing{
		{
			ID: "1", Kind: types.KindVacancy, Title: "Go developer", Company: "Acme", Verified: true,
			Location: "Москва", Remote: true, Salary: "150 000 ₽", Requirements: []string{"Go", "SQL"},
			Date: time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "2", Kind: types.KindResume, Title: "Designer", Name: "Анна",
			Date: time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC),
		},
	}
	p.PrintListings("VACANCIES", listings)

	out := buf.String()
	assert.Contains(t, out, "VACANCIES")
	assert.Contains(t, out, "Found: 2")
	assert.Contains(t, out, "#1  Go developer")
	assert.Contains(t, out, "Acme ✓")
	assert.Contains(t, out, "Location: Москва, remote")
	assert.Contains(t, out, "Skills:   Go, SQL")
	assert.Contains(t, out, "#2  Designer")
	assert.Contains(t, out, "Анна")
	assert.Contains(t, out, "Posted:   2025-04-21")
}

func TestPrintListings_TruncatesList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf).WithMaxItems(2)

	listings := make([]types.Listing, 5)
	for i := range listings {
		listings[i] = types.Listing{Kind: types.KindVacancy, Title: "Role"}
	}
	p.PrintListings("VACANCIES", listings)

	assert.Contains(t, buf.String(), "#2  Role")
	assert.NotContains(t, buf.String(), "#3  Role")
	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintExperience(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	end := 3
	endYear := 2021
	list := []types.WorkExperience{{
		CompanyName: "Acme", Position: "Developer",
		StartMonth: 1, StartYear: 2020, EndMonth: &end, EndYear: &endYear,
	}}
	p.PrintExperience(experience.Summarize(list, time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC)))

	out := buf.String()
	assert.Contains(t, out, "WORK EXPERIENCE")
	assert.Contains(t, out, "Total: 1 год 2 месяца")
	assert.Contains(t, out, "Developer, Acme")
	assert.Contains(t, out, "Январь 2020 — Март 2021")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("очень длинная строка ", 10))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Go", 5, "Go"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii", "abcdefgh", 5, "ab..."},
		{"cyrillic", "привет мир", 6, "при..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.width))
		})
	}
}
