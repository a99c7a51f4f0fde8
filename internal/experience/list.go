package experience

import (
	"fmt"
	"time"

	"github.com/jonathan/jobboard/internal/apperrors"
	"github.com/jonathan/jobboard/internal/types"
)

// List is a profile's work history, kept sorted by effective end date after
// every change.
type List struct {
	now   func() time.Time
	items []types.WorkExperience
}

// NewList wraps a copy of items in their stored order. A nil clock means
// time.Now.
func NewList(items []types.WorkExperience, now func() time.Time) *List {
	if now == nil {
		now = time.Now
	}
	return &List{now: now, items: append([]types.WorkExperience(nil), items...)}
}

// Items returns a copy of the entries.
func (l *List) Items() []types.WorkExperience {
	return append([]types.WorkExperience(nil), l.items...)
}

func (l *List) Len() int { return len(l.items) }

// Add appends rec and re-sorts.
func (l *List) Add(rec types.WorkExperience) {
	l.items = append(l.items, rec)
	l.sort()
}

// Replace overwrites the entry at index and re-sorts.
func (l *List) Replace(index int, rec types.WorkExperience) error {
	if err := l.check("experience.Replace", index); err != nil {
		return err
	}
	l.items[index] = rec
	l.sort()
	return nil
}

// Remove deletes the entry at index. Order is otherwise unchanged.
func (l *List) Remove(index int) error {
	if err := l.check("experience.Remove", index); err != nil {
		return err
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	return nil
}

// Apply merges an editor result: edits replace in place, adds append.
func (l *List) Apply(res Result) error {
	if res.IsEdit() {
		return l.Replace(res.Index, res.Record)
	}
	l.Add(res.Record)
	return nil
}

// Summary renders durations at the list's clock.
func (l *List) Summary() Summary {
	return Summarize(l.items, l.now())
}

func (l *List) sort() {
	SortByEffectiveEnd(l.items, l.now())
}

func (l *List) check(op string, index int) error {
	if index < 0 || index >= len(l.items) {
		return apperrors.NotFound(op, fmt.Sprintf("no work experience at index %d", index), nil)
	}
	return nil
}
