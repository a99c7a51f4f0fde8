// Package skills holds the shared skill vocabulary and the TagInput component
// that commits skills into a profile or vacancy form.
package skills

import (
	"context"
	"strings"
	"sync"

	"github.com/jonathan/jobboard/internal/logging"
	"github.com/jonathan/jobboard/internal/store"
	"go.uber.org/zap"
)

// DefaultSkills seeds an empty vocabulary.
var DefaultSkills = []string{
	"React", "JavaScript", "TypeScript", "Node.js", "Express", "HTML", "CSS",
	"SCSS", "Sass", "Redux", "Redux Toolkit", "Vue.js", "Angular", "MongoDB",
	"SQL", "PostgreSQL", "MySQL", "Firebase", "AWS", "Docker", "Git", "GitHub",
}

type skillRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r skillRecord) RecordID() string { return r.ID }

func recordFor(name string) skillRecord {
	return skillRecord{ID: strings.ToLower(name), Name: name}
}

// Vocabulary is the shared, persisted list of known skills. Entries are unique
// case-insensitively and keep insertion order. It is safe for concurrent use.
type Vocabulary struct {
	mu     sync.RWMutex
	items  []string
	coll   *store.Collection[skillRecord]
	logger *zap.Logger
}

// NewVocabulary returns an empty vocabulary backed by the skills collection
// of s. Call Load before use.
func NewVocabulary(s store.Store, logger *zap.Logger) *Vocabulary {
	return &Vocabulary{
		coll:   store.NewCollection[skillRecord](s, store.CollectionSkills),
		logger: logging.OrNop(logger),
	}
}

// NewStaticVocabulary returns an unpersisted vocabulary holding items.
func NewStaticVocabulary(items ...string) *Vocabulary {
	v := &Vocabulary{logger: zap.NewNop()}
	for _, it := range items {
		v.appendLocked(it)
	}
	return v
}

// Load replaces the in-memory list with the persisted one. An empty collection
// is seeded with DefaultSkills; seeding stops at the first persistence error
// but the in-memory list still holds every default.
func (v *Vocabulary) Load(ctx context.Context) error {
	if v.coll == nil {
		return nil
	}

	recs, err := v.coll.All(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.items = nil
	for _, r := range recs {
		v.appendLocked(r.Name)
	}
	seed := len(v.items) == 0
	if seed {
		for _, s := range DefaultSkills {
			v.appendLocked(s)
		}
	}
	v.mu.Unlock()

	if !seed {
		return nil
	}

	v.logger.Info("seeding skill vocabulary", zap.Int("count", len(DefaultSkills)))
	for _, s := range DefaultSkills {
		if _, err := v.coll.Create(ctx, recordFor(s)); err != nil {
			return err
		}
	}
	return nil
}

// All returns a copy of the vocabulary in order.
func (v *Vocabulary) All() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]string, len(v.items))
	copy(out, v.items)
	return out
}

// Len returns the number of entries.
func (v *Vocabulary) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.items)
}

// Contains reports whether skill matches an entry case-insensitively.
func (v *Vocabulary) Contains(skill string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.indexLocked(skill) >= 0
}

// Search returns entries containing query case-insensitively, in vocabulary
// order, skipping any entry present verbatim in exclude. An empty query
// matches nothing.
func (v *Vocabulary) Search(query string, exclude []string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	skip := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		skip[e] = struct{}{}
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	var out []string
	for _, it := range v.items {
		if _, ok := skip[it]; ok {
			continue
		}
		if strings.Contains(strings.ToLower(it), q) {
			out = append(out, it)
		}
	}
	return out
}

// Append adds skill if no case-insensitive equal entry exists, then persists
// it. added reports whether the in-memory list changed; a persistence error
// does not undo the in-memory append.
func (v *Vocabulary) Append(ctx context.Context, skill string) (added bool, err error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false, nil
	}

	v.mu.Lock()
	added = v.appendLocked(skill)
	v.mu.Unlock()

	if !added || v.coll == nil {
		return added, nil
	}
	if _, err := v.coll.Create(ctx, recordFor(skill)); err != nil {
		return true, err
	}
	return true, nil
}

func (v *Vocabulary) indexLocked(skill string) int {
	for i, it := range v.items {
		if strings.EqualFold(it, skill) {
			return i
		}
	}
	return -1
}

func (v *Vocabulary) appendLocked(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || v.indexLocked(skill) >= 0 {
		return false
	}
	v.items = append(v.items, skill)
	return true
}
