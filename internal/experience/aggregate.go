package experience

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/jobboard/internal/types"
)

// Span is a duration in whole years and remaining months.
type Span struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// SpanOf splits a month count. Negative counts become zero.
func SpanOf(months int) Span {
	if months < 0 {
		months = 0
	}
	return Span{Years: months / 12, Months: months % 12}
}

// TotalMonths returns the span as a month count.
func (s Span) TotalMonths() int { return s.Years*12 + s.Months }

func monthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// EffectiveEndDate is now for a current job, otherwise the first day of the
// end month. A closed record without end fields ends where it starts.
func EffectiveEndDate(rec types.WorkExperience, now time.Time) time.Time {
	if rec.CurrentlyWorking {
		return now
	}
	if rec.EndYear == nil || rec.EndMonth == nil {
		return time.Date(rec.StartYear, time.Month(rec.StartMonth), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(*rec.EndYear, time.Month(*rec.EndMonth), 1, 0, 0, 0, 0, time.UTC)
}

// SortByEffectiveEnd orders list by effective end date, latest first. The
// sort is stable and happens in place.
func SortByEffectiveEnd(list []types.WorkExperience, now time.Time) {
	sort.SliceStable(list, func(i, j int) bool {
		return EffectiveEndDate(list[i], now).After(EffectiveEndDate(list[j], now))
	})
}

// Months counts whole calendar months from the start month to the effective
// end month. It is never negative.
func Months(rec types.WorkExperience, now time.Time) int {
	end := EffectiveEndDate(rec, now)
	n := monthIndex(end.Year(), end.Month()) - monthIndex(rec.StartYear, time.Month(rec.StartMonth))
	if n < 0 {
		return 0
	}
	return n
}

// Duration is Months as a Span.
func Duration(rec types.WorkExperience, now time.Time) Span {
	return SpanOf(Months(rec, now))
}

// TotalDuration sums the month counts of every entry. Overlapping jobs add up.
func TotalDuration(list []types.WorkExperience, now time.Time) Span {
	total := 0
	for _, rec := range list {
		total += Months(rec, now)
	}
	return SpanOf(total)
}

// Plural is a count bucket selecting a label form.
type Plural int

const (
	PluralOne  Plural = iota // 1
	PluralFew                // 2-4
	PluralMany               // 0 and 5+
)

// PluralBucket picks the label form for n.
func PluralBucket(n int) Plural {
	switch {
	case n == 1:
		return PluralOne
	case n >= 2 && n <= 4:
		return PluralFew
	default:
		return PluralMany
	}
}

var (
	yearLabels  = [...]string{PluralOne: "год", PluralFew: "года", PluralMany: "лет"}
	monthLabels = [...]string{PluralOne: "месяц", PluralFew: "месяца", PluralMany: "месяцев"}
	monthNames  = [...]string{
		"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
	}
)

// YearLabel returns the year noun for n.
func YearLabel(n int) string { return yearLabels[PluralBucket(n)] }

// MonthLabel returns the month noun for n.
func MonthLabel(n int) string { return monthLabels[PluralBucket(n)] }

// FormatTotal renders a total: months only when under a year (including
// "0 месяцев"), years only on a whole number of years, otherwise both.
func FormatTotal(s Span) string {
	switch {
	case s.Years == 0:
		return fmt.Sprintf("%d %s", s.Months, MonthLabel(s.Months))
	case s.Months == 0:
		return fmt.Sprintf("%d %s", s.Years, YearLabel(s.Years))
	default:
		return fmt.Sprintf("%d %s %d %s", s.Years, YearLabel(s.Years), s.Months, MonthLabel(s.Months))
	}
}

// FormatSpan renders a single entry's duration, omitting zero parts. A zero
// span renders as the empty string.
func FormatSpan(s Span) string {
	var parts []string
	if s.Years > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", s.Years, YearLabel(s.Years)))
	}
	if s.Months > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", s.Months, MonthLabel(s.Months)))
	}
	return strings.Join(parts, " ")
}

// MonthName returns the nominative month name, or "" when m is out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}

// FormatPeriod renders "Январь 2020 — Март 2021" or "Январь 2020 — сейчас".
func FormatPeriod(rec types.WorkExperience) string {
	start := fmt.Sprintf("%s %d", MonthName(rec.StartMonth), rec.StartYear)
	if rec.CurrentlyWorking || rec.EndMonth == nil || rec.EndYear == nil {
		return start + " — сейчас"
	}
	return fmt.Sprintf("%s — %s %d", start, MonthName(*rec.EndMonth), *rec.EndYear)
}

// Summary is a presentation view of a work-experience list.
type Summary struct {
	Entries []EntrySummary `json:"entries"`
	Total   Span           `json:"total"`
	Label   string         `json:"label"`
}

// EntrySummary pairs a record with its rendered duration and period.
type EntrySummary struct {
	types.WorkExperience
	Duration      Span   `json:"duration"`
	DurationLabel string `json:"duration_label"`
	Period        string `json:"period"`
}

// Summarize computes per-entry durations and the total at now.
func Summarize(list []types.WorkExperience, now time.Time) Summary {
	out := Summary{Entries: make([]EntrySummary, 0, len(list))}
	for _, rec := range list {
		d := Duration(rec, now)
		out.Entries = append(out.Entries, EntrySummary{
			WorkExperience: rec,
			Duration:       d,
			DurationLabel:  FormatSpan(d),
			Period:         FormatPeriod(rec),
		})
	}
	out.Total = TotalDuration(list, now)
	out.Label = FormatTotal(out.Total)
	return out
}
