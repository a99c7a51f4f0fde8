package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(listings []types.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestSearchCommand_Sample(t *testing.T) {
	out, err := execute(t, "search", "--sample", "--remote", "--location", "Москва")
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "1", "4", "2"}, ids(decodeOutput[[]types.Listing](t, out)))
}

func TestSearchCommand_File(t *testing.T) {
	now := time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC)
	listings := []types.Listing{
		{ID: "a", Kind: types.KindVacancy, Title: "Go developer", Requirements: []string{"Go", "SQL"}, Salary: "100000-150000", Date: now.AddDate(0, 0, -2)},
		{ID: "b", Kind: types.KindVacancy, Title: "Frontend", Requirements: []string{"React"}, Salary: "200000", Date: now.AddDate(0, 0, -1)},
		{ID: "c", Kind: types.KindVacancy, Title: "Backend", Requirements: []string{"Go"}, Salary: "120000", Date: now.AddDate(0, 0, -20)},
	}
	data, err := json.Marshal(listings)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no filters sorts newest first", nil, []string{"b", "a", "c"}},
		{"skills", []string{"--skills", "Go"}, []string{"a", "c"}},
		{"salary high", []string{"--sort", "salary-high"}, []string{"b", "a", "c"}},
		{"date bucket via param", []string{"--param", "date_posted=week"}, []string{"b", "a"}},
		{"limit", []string{"--limit", "1"}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"search", "--file", path}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(decodeOutput[[]types.Listing](t, out)))
		})
	}
}

func TestSearchCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad kind", []string{"search", "--sample", "--kind", "users"}, "invalid --kind"},
		{"bad param", []string{"search", "--sample", "--param", "nokey"}, "invalid --param"},
		{"bad sort", []string{"search", "--sample", "--sort", "random"}, "invalid filters"},
		{"missing file", []string{"search", "--file", "/nonexistent/listings.json"}, "failed to read listings file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSearchCommand_EmptyStore(t *testing.T) {
	out, err := execute(t, "search", "--kind", "resumes")
	require.NoError(t, err)
	assert.Empty(t, decodeOutput[[]types.Listing](t, out))
}

func TestSearchCommand_TextFormat(t *testing.T) {
	out, err := execute(t, "search", "--sample", "--remote", "--location", "Москва", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "VACANCIES")
	assert.Contains(t, out, "Found: 4")

	_, err = execute(t, "search", "--sample", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --format")
}
