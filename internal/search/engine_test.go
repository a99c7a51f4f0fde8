package search

import (
	"net/url"
	"testing"
	"time"

	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/jonathan/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC)

func engine() *Engine {
	return NewEngine(func() time.Time { return refNow })
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ids(ls []types.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func vacancy(id, title string) types.Listing {
	return types.Listing{ID: id, Kind: types.KindVacancy, Title: title, Company: "Acme", Date: refNow}
}

func fixtures() []types.Listing {
	return []types.Listing{
		{
			ID: "fe", Kind: types.KindVacancy, Title: "Frontend Developer", Company: "Pixel",
			Description:  "Полная занятость, опыт работы от 2 лет с React",
			Requirements: []string{"React", "TypeScript", "CSS"},
			Location:     "Москва", Remote: true, Salary: "100000-150000",
			Experience: f64(2), Category: "IT", Verified: true, Date: day(2025, 4, 21),
		},
		{
			ID: "be", Kind: types.KindVacancy, Title: "Backend Developer", Company: "Stack",
			Description:  "Частичная занятость. Node.js и PostgreSQL",
			Requirements: []string{"Node.js", "PostgreSQL", "React"},
			Location:     "Санкт-Петербург", Salary: "200000",
			Experience: f64(4), Category: "IT", Date: day(2025, 4, 10),
		},
		{
			ID: "ds", Kind: types.KindVacancy, Title: "Designer", Company: "Studio",
			Description:  "Проектная работа",
			Requirements: []string{"Figma"},
			Location:     "Москва, удалённо", Remote: true, Salary: "по договорённости",
			Category: "Design", Date: day(2025, 3, 1),
		},
	}
}

func TestApply_DocumentedExamples(t *testing.T) {
	listings := []types.Listing{
		{ID: "1", Kind: types.KindVacancy, Title: "Frontend", Salary: "100000-150000", Remote: true, Date: day(2025, 4, 1)},
		{ID: "2", Kind: types.KindVacancy, Title: "Backend", Salary: "200000", Remote: false, Date: day(2025, 4, 2)},
	}

	got := engine().Apply(listings, FilterState{Remote: true})
	assert.Equal(t, []string{"1"}, ids(got))

	got = engine().Apply(listings, FilterState{SortBy: SortSalaryLow})
	assert.Equal(t, []string{"1", "2"}, ids(got))
}

func TestApply_SelectedSkillsRequireAll(t *testing.T) {
	listings := []types.Listing{
		{ID: "only-react", Requirements: []string{"React"}},
		{ID: "full", Requirements: []string{"React", "Node.js", "CSS"}},
	}
	got := engine().Apply(listings, FilterState{SelectedSkills: []string{"React", "Node.js"}})
	assert.Equal(t, []string{"full"}, ids(got))
}

func TestApply_Predicates(t *testing.T) {
	tests := []struct {
		name   string
		filter FilterState
		want   []string
	}{
		{"no filters keeps input order", FilterState{}, []string{"fe", "be", "ds"}},
		{"query matches company", FilterState{Query: "stack"}, []string{"be"}},
		{"query matches description", FilterState{Query: "ФИГМ"}, nil},
		{"query case-insensitive title", FilterState{Query: "DEVELOPER"}, []string{"fe", "be"}},
		{"category", FilterState{Category: "Design"}, []string{"ds"}},
		{"verified only", FilterState{VerifiedOnly: true}, []string{"fe"}},
		{"no experience", FilterState{NoExperience: true}, []string{"ds"}},
		{"min experience treats missing as zero", FilterState{MinExperience: f64(3)}, []string{"be"}},
		{"experience range inclusive", FilterState{MinExperience: f64(0), MaxExperience: f64(2)}, []string{"fe", "ds"}},
		{"location substring", FilterState{Location: "москва"}, []string{"fe", "ds"}},
		{"location inner substring for vacancies", FilterState{Location: "удал"}, []string{"ds"}},
		{"min salary uses smallest number", FilterState{MinSalary: i64(120000)}, []string{"be"}},
		{"max salary uses largest number", FilterState{MaxSalary: i64(150000)}, []string{"fe"}},
		{"unparseable salary fails any salary filter", FilterState{MinSalary: i64(0)}, []string{"fe", "be"}},
		{"employment type pattern", FilterState{EmploymentType: "полная"}, []string{"fe"}},
		{"employment type invalid regex is literal", FilterState{EmploymentType: "("}, nil},
		{"experience phrase", FilterState{ExperienceText: "2 лет"}, []string{"fe"}},
		{"date today", FilterState{DatePosted: DateToday}, []string{"fe"}},
		{"date week", FilterState{DatePosted: DateWeek}, []string{"fe"}},
		{"date month", FilterState{DatePosted: DateMonth}, []string{"fe", "be"}},
		{"keywords are any-of", FilterState{Keywords: []string{"figma", "postgres"}}, []string{"be", "ds"}},
		{"keywords regex", FilterState{Keywords: []string{"^front"}}, []string{"fe"}},
		{"blank keywords ignored", FilterState{Keywords: []string{"  "}}, []string{"fe", "be", "ds"}},
		{"combined AND", FilterState{Remote: true, Category: "IT"}, []string{"fe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine().Apply(fixtures(), tt.filter)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_ResumeLocationIsPrefix(t *testing.T) {
	resumes := []types.Listing{
		{ID: "msk", Kind: types.KindResume, Name: "Иван", Location: "Москва"},
		{ID: "obl", Kind: types.KindResume, Name: "Пётр", Location: "Московская область"},
		{ID: "spb", Kind: types.KindResume, Name: "Анна", Location: "Санкт-Петербург, рядом с Москвой"},
	}
	got := engine().Apply(resumes, FilterState{Location: "моск"})
	assert.Equal(t, []string{"msk", "obl"}, ids(got))

	// resumes search by name rather than company
	got = engine().Apply(resumes, FilterState{Query: "анна"})
	assert.Equal(t, []string{"spb"}, ids(got))
}

func TestApply_SingletonMatchesPredicate(t *testing.T) {
	filters := []FilterState{
		{Remote: true},
		{MinSalary: i64(100000), MaxSalary: i64(200000)},
		{Keywords: []string{"react"}, Category: "IT"},
		{Location: "петербург", NoExperience: true},
		{DatePosted: DateWeek, SelectedSkills: []string{"React"}},
	}
	e := engine()
	for _, f := range filters {
		for _, l := range fixtures() {
			got := e.Apply([]types.Listing{l}, f)
			if e.Matches(l, f) {
				assert.Equal(t, []string{l.ID}, ids(got))
			} else {
				assert.Empty(t, got)
			}
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	filters := []FilterState{
		DefaultFilterState(),
		{Remote: true, SortBy: SortSalaryHigh},
		{Query: "developer", SortBy: SortRelevance, Limit: 1},
		{Keywords: []string{"react", "figma"}, SortBy: SortSalaryLow},
		{DatePosted: DateMonth, SortBy: SortOldest, Limit: 2},
	}
	e := engine()
	for _, f := range filters {
		once := e.Apply(fixtures(), f)
		twice := e.Apply(once, f)
		assert.Equal(t, ids(once), ids(twice))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := fixtures()
	_ = engine().Apply(in, FilterState{SortBy: SortOldest})
	assert.Equal(t, []string{"fe", "be", "ds"}, ids(in))
}

func TestSortOrders(t *testing.T) {
	listings := []types.Listing{
		{ID: "a", Salary: "от 50000", Date: day(2025, 4, 1)},
		{ID: "b", Salary: "120000-180000", Date: day(2025, 4, 3)},
		{ID: "c", Salary: "договорная", Date: day(2025, 4, 2)},
		{ID: "d", Salary: "", Date: day(2025, 4, 5)},
		{ID: "e", Salary: "90000 - 200000", Date: day(2025, 3, 1)},
	}

	tests := []struct {
		sort SortOrder
		want []string
	}{
		{SortNone, []string{"a", "b", "c", "d", "e"}},
		{SortNewest, []string{"d", "b", "c", "a", "e"}},
		{SortOldest, []string{"e", "a", "c", "b", "d"}},
		{SortSalaryHigh, []string{"e", "b", "a", "c", "d"}},
		{SortSalaryLow, []string{"a", "e", "b", "d", "c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			got := engine().Apply(listings, FilterState{SortBy: tt.sort})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRelevance(t *testing.T) {
	l := types.Listing{
		Title:        "React Developer",
		Description:  "We use react and redux",
		Requirements: []string{"React", "React Native"},
	}
	// title 3 + description 1 + requirements 2 (once)
	assert.Equal(t, 6, Relevance(l, []string{"react"}))
	assert.Equal(t, 7, Relevance(l, []string{"react", "redux"}))
	assert.Equal(t, 0, Relevance(l, []string{"golang"}))
}

func TestSortRelevance(t *testing.T) {
	listings := []types.Listing{
		vacancy("desc", "Engineer"),
		vacancy("title", "Go Engineer"),
		vacancy("req", "Engineer"),
		vacancy("tie", "Engineer"),
	}
	listings[0].Description = "Мы пишем на go"
	listings[2].Requirements = []string{"Go"}
	listings[3].Description = "golang shop"

	got := engine().Apply(listings, FilterState{Keywords: []string{"go"}, SortBy: SortRelevance})
	assert.Equal(t, []string{"title", "req", "desc", "tie"}, ids(got))

	// without terms relevance keeps input order
	got = engine().Apply(listings, FilterState{SortBy: SortRelevance})
	assert.Equal(t, []string{"desc", "title", "req", "tie"}, ids(got))
}

func TestApply_LimitAfterSort(t *testing.T) {
	got := engine().Apply(fixtures(), FilterState{SortBy: SortOldest, Limit: 2})
	assert.Equal(t, []string{"ds", "be"}, ids(got))
}

func TestParseSalary(t *testing.T) {
	assert.Equal(t, []int64{100000, 150000}, ParseSalary("100000-150000 руб."))
	assert.Equal(t, []int64{100, 0}, ParseSalary("от 100 до 0"))
	assert.Nil(t, ParseSalary("по договорённости"))
	assert.Equal(t, []int64{9223372036854775807}, ParseSalary("99999999999999999999999"))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"IT", "Design"}, Categories(fixtures()))
	assert.Nil(t, Categories(nil))
}

func TestFilterState_DefaultsAndReset(t *testing.T) {
	f := FilterState{Query: "x", Remote: true, Limit: 3}
	assert.True(t, f.Active())
	f.Reset()
	assert.Equal(t, DefaultFilterState(), f)
	assert.False(t, f.Active())
	assert.Equal(t, SortNewest, f.SortBy)
}

func TestFilterState_Validate(t *testing.T) {
	assert.NoError(t, DefaultFilterState().Validate())

	err := FilterState{SortBy: "random", DatePosted: "year", Limit: -1, MinSalary: i64(-5)}.Validate()
	require.Error(t, err)
	fields := apperrors.FieldsOf(err)
	assert.Contains(t, fields, "sort_by")
	assert.Contains(t, fields, "date_posted")
	assert.Contains(t, fields, "limit")
	assert.Contains(t, fields, "min_salary")
}

func TestFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("q", "react")
	v.Set("remote", "true")
	v.Set("min_salary", "100000")
	v.Set("min_experience", "1.5")
	v.Add("skills", "React, Node.js")
	v.Add("skills", "CSS")
	v.Set("keywords", "redux,,mobx")
	v.Set("sort", "salary-high")
	v.Set("limit", "5")

	f, err := FromValues(v)
	require.NoError(t, err)
	assert.Equal(t, "react", f.Query)
	assert.True(t, f.Remote)
	assert.Equal(t, int64(100000), *f.MinSalary)
	assert.Equal(t, 1.5, *f.MinExperience)
	assert.Equal(t, []string{"React", "Node.js", "CSS"}, f.SelectedSkills)
	assert.Equal(t, []string{"redux", "mobx"}, f.Keywords)
	assert.Equal(t, SortSalaryHigh, f.SortBy)
	assert.Equal(t, 5, f.Limit)

	f, err = FromValues(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, DefaultFilterState(), f)
}

func TestFromValues_Errors(t *testing.T) {
	_, err := FromValues(url.Values{"remote": {"maybe"}, "max_salary": {"lots"}})
	require.Error(t, err)
	assert.Equal(t, map[string]string{
		"remote":     "must be a boolean",
		"max_salary": "must be an integer",
	}, apperrors.FieldsOf(err))

	_, err = FromValues(url.Values{"sort": {"cheapest"}})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestFromValues_NoExperienceExcludesBounds(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		wantErr bool
	}{
		{"no experience alone", url.Values{"no_experience": {"true"}}, false},
		{"bounds alone", url.Values{"min_experience": {"1"}, "max_experience": {"3"}}, false},
		{"no experience false with bound", url.Values{"no_experience": {"false"}, "min_experience": {"3"}}, false},
		{"with min", url.Values{"no_experience": {"true"}, "min_experience": {"3"}}, true},
		{"with max", url.Values{"no_experience": {"true"}, "max_experience": {"1"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromValues(tt.values)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, map[string]string{"no_experience": MsgNoExperienceWithBounds}, apperrors.FieldsOf(err))
		})
	}
}
