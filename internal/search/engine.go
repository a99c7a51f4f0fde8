package search

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/jobboard/internal/types"
)

// Engine applies a FilterState to listings. Now anchors date buckets.
type Engine struct {
	Now func() time.Time
}

// NewEngine returns an engine using now, or time.Now when nil.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{Now: now}
}

// compiled holds the per-call derived state of a FilterState.
type compiled struct {
	f              FilterState
	query          string
	location       string
	employment     *regexp.Regexp
	experienceText *regexp.Regexp
	keywords       []*regexp.Regexp
	dateLimit      time.Time
	hasDateLimit   bool
}

// Apply returns the listings satisfying every active filter, ordered by
// f.SortBy and truncated to f.Limit. The input slice is not modified.
func (e *Engine) Apply(listings []types.Listing, f FilterState) []types.Listing {
	c := e.compile(f)

	out := make([]types.Listing, 0, len(listings))
	for _, l := range listings {
		if c.match(l) {
			out = append(out, l)
		}
	}

	sortListings(out, f)

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// Matches reports whether l satisfies every active filter of f.
func (e *Engine) Matches(l types.Listing, f FilterState) bool {
	return e.compile(f).match(l)
}

func (e *Engine) compile(f FilterState) *compiled {
	c := &compiled{
		f:        f,
		query:    strings.ToLower(strings.TrimSpace(f.Query)),
		location: strings.ToLower(strings.TrimSpace(f.Location)),
	}
	if f.EmploymentType != "" {
		c.employment = pattern(f.EmploymentType)
	}
	if f.ExperienceText != "" {
		c.experienceText = regexp.MustCompile(`(?i)опыт.{0,30}` + regexp.QuoteMeta(f.ExperienceText))
	}
	for _, k := range nonBlank(f.Keywords) {
		c.keywords = append(c.keywords, pattern(k))
	}

	now := e.Now()
	switch f.DatePosted {
	case DateToday:
		c.dateLimit, c.hasDateLimit = now.AddDate(0, 0, -1), true
	case DateWeek:
		c.dateLimit, c.hasDateLimit = now.AddDate(0, 0, -7), true
	case DateMonth:
		c.dateLimit, c.hasDateLimit = now.AddDate(0, -1, 0), true
	}
	return c
}

// pattern compiles a user-supplied case-insensitive pattern, falling back to
// a literal match when it is not a valid expression.
func pattern(p string) *regexp.Regexp {
	re, err := regexp.Compile("(?i)" + p)
	if err != nil {
		return regexp.MustCompile("(?i)" + regexp.QuoteMeta(p))
	}
	return re
}

func (c *compiled) match(l types.Listing) bool {
	f := c.f

	if c.query != "" && !matchesQuery(l, c.query) {
		return false
	}
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	if f.VerifiedOnly && !l.Verified {
		return false
	}
	if !hasAllSkills(l.Requirements, f.SelectedSkills) {
		return false
	}
	if !matchesExperience(l.Experience, f) {
		return false
	}
	if c.location != "" && !matchesLocation(l, c.location) {
		return false
	}
	if f.Remote && !l.Remote {
		return false
	}
	if f.MinSalary != nil || f.MaxSalary != nil {
		lo, hi, ok := salaryRange(l.Salary)
		if !ok {
			return false
		}
		if f.MinSalary != nil && lo < *f.MinSalary {
			return false
		}
		if f.MaxSalary != nil && hi > *f.MaxSalary {
			return false
		}
	}
	if c.employment != nil && !c.employment.MatchString(l.Description) {
		return false
	}
	if c.experienceText != nil && !c.experienceText.MatchString(l.Description) && !anyMatch(c.experienceText, l.Requirements) {
		return false
	}
	if c.hasDateLimit && l.Date.Before(c.dateLimit) {
		return false
	}
	if len(c.keywords) > 0 && !c.anyKeyword(l) {
		return false
	}
	return true
}

func matchesQuery(l types.Listing, q string) bool {
	fields := []string{l.Title, l.Company, l.Description}
	if l.IsResume() {
		fields = []string{l.Name, l.Title, l.Description}
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func hasAllSkills(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

func matchesExperience(exp *float64, f FilterState) bool {
	if f.NoExperience {
		return exp == nil || *exp == 0
	}
	if f.MinExperience == nil && f.MaxExperience == nil {
		return true
	}
	var years float64
	if exp != nil {
		years = *exp
	}
	if f.MinExperience != nil && years < *f.MinExperience {
		return false
	}
	if f.MaxExperience != nil && years > *f.MaxExperience {
		return false
	}
	return true
}

// Resumes match the city by prefix, vacancies by substring.
func matchesLocation(l types.Listing, loc string) bool {
	have := strings.ToLower(l.Location)
	if l.IsResume() {
		return strings.HasPrefix(have, loc)
	}
	return strings.Contains(have, loc)
}

func anyMatch(re *regexp.Regexp, values []string) bool {
	for _, v := range values {
		if re.MatchString(v) {
			return true
		}
	}
	return false
}

func (c *compiled) anyKeyword(l types.Listing) bool {
	for _, re := range c.keywords {
		if re.MatchString(l.Title) || re.MatchString(l.Description) || anyMatch(re, l.Requirements) {
			return true
		}
	}
	return false
}

func sortListings(out []types.Listing, f FilterState) {
	switch f.SortBy {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	case SortSalaryHigh:
		sort.SliceStable(out, func(i, j int) bool { return maxSalary(out[i]) > maxSalary(out[j]) })
	case SortSalaryLow:
		sort.SliceStable(out, func(i, j int) bool {
			li, _, iok := salaryRange(out[i].Salary)
			lj, _, jok := salaryRange(out[j].Salary)
			switch {
			case iok && jok:
				return li < lj
			case iok != jok:
				return iok
			default:
				return out[i].Date.After(out[j].Date)
			}
		})
	case SortRelevance:
		terms := f.terms()
		if len(terms) == 0 {
			return
		}
		scored := make([]scoredListing, len(out))
		for i, l := range out {
			scored[i] = scoredListing{listing: l, score: Relevance(l, terms)}
		}
		sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
		for i := range scored {
			out[i] = scored[i].listing
		}
	}
}

type scoredListing struct {
	listing types.Listing
	score   int
}

func maxSalary(l types.Listing) int64 {
	_, hi, ok := salaryRange(l.Salary)
	if !ok {
		return 0
	}
	return hi
}

// Relevance scores l against lower-cased terms: 3 per term found in the
// title, 1 in the description, 2 when any requirement contains it.
func Relevance(l types.Listing, terms []string) int {
	title := strings.ToLower(l.Title)
	desc := strings.ToLower(l.Description)
	score := 0
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += 3
		}
		if strings.Contains(desc, term) {
			score++
		}
		for _, req := range l.Requirements {
			if strings.Contains(strings.ToLower(req), term) {
				score += 2
				break
			}
		}
	}
	return score
}

func (f FilterState) terms() []string {
	var terms []string
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		terms = append(terms, q)
	}
	for _, k := range nonBlank(f.Keywords) {
		terms = append(terms, strings.ToLower(k))
	}
	return terms
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(listings []types.Listing) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range listings {
		if l.Category == "" {
			continue
		}
		if _, ok := seen[l.Category]; ok {
			continue
		}
		seen[l.Category] = struct{}{}
		out = append(out, l.Category)
	}
	return out
}
