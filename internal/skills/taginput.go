package skills

import (
	"context"
	"strings"

	"github.com/jonathan/jobboard/internal/logging"
	"go.uber.org/zap"
)

// Key is a keyboard key delivered to TagInput.KeyEvent.
type Key string

const (
	KeyEnter     Key = "Enter"
	KeyBackspace Key = "Backspace"
	KeyEscape    Key = "Escape"
)

// Options configure a TagInput.
type Options struct {
	// AutoAddNewSkills appends committed tags unknown to the vocabulary.
	AutoAddNewSkills bool
	// OnChange receives the full tag sequence after every change.
	OnChange func(tags []string)
	Logger   *zap.Logger
}

// DefaultOptions enables AutoAddNewSkills.
func DefaultOptions() Options {
	return Options{AutoAddNewSkills: true}
}

// TagInput is a text buffer plus an ordered, duplicate-free sequence of
// committed tags, with suggestions drawn from a Vocabulary. It is not safe
// for concurrent use.
type TagInput struct {
	vocab *Vocabulary
	opts  Options
	log   *zap.Logger

	buffer      string
	tags        []string
	suggestions []string
	visible     bool
	exact       bool
	focused     bool
}

// NewTagInput returns an empty input over vocab.
func NewTagInput(vocab *Vocabulary, opts Options) *TagInput {
	return &TagInput{
		vocab: vocab,
		opts:  opts,
		log:   logging.OrNop(opts.Logger),
	}
}

func (t *TagInput) Buffer() string           { return t.buffer }
func (t *TagInput) Suggestions() []string    { return append([]string(nil), t.suggestions...) }
func (t *TagInput) SuggestionsVisible() bool { return t.visible }
func (t *TagInput) HasExactMatch() bool      { return t.exact }
func (t *TagInput) Focused() bool            { return t.focused }

// Tags returns a copy of the committed sequence.
func (t *TagInput) Tags() []string {
	return append([]string(nil), t.tags...)
}

// SetValue replaces the committed sequence from the owning form without
// notifying it. Exact duplicates are dropped.
func (t *TagInput) SetValue(tags []string) {
	t.tags = nil
	for _, tag := range tags {
		if !t.selected(tag) {
			t.tags = append(t.tags, tag)
		}
	}
}

// ShowAddCustom reports whether the "add custom" affordance is offered.
func (t *TagInput) ShowAddCustom() bool {
	trimmed := strings.TrimSpace(t.buffer)
	return trimmed != "" && !t.exact && !t.selected(trimmed)
}

// InputChange handles a new buffer value. A comma commits the text before the
// first comma and discards the rest.
func (t *TagInput) InputChange(ctx context.Context, text string) {
	if i := strings.IndexByte(text, ','); i >= 0 {
		t.Commit(ctx, text[:i])
		t.clearBuffer()
		return
	}

	t.buffer = text
	t.refreshSuggestions()
}

// Commit adds token as a tag after trimming. Empty or already selected tokens
// leave the sequence unchanged. The buffer is cleared either way. It reports
// whether the sequence changed.
func (t *TagInput) Commit(ctx context.Context, token string) bool {
	defer t.clearBuffer()

	tag := strings.TrimSpace(token)
	if tag == "" || t.selected(tag) {
		return false
	}

	t.tags = append(t.tags, tag)
	t.notify()

	if t.opts.AutoAddNewSkills && t.vocab != nil && !t.vocab.Contains(tag) {
		if _, err := t.vocab.Append(ctx, tag); err != nil {
			t.log.Warn("failed to persist skill vocabulary", zap.String("skill", tag), zap.Error(err))
		}
	}
	return true
}

// Remove drops tag from the sequence.
func (t *TagInput) Remove(tag string) {
	out := t.tags[:0]
	removed := false
	for _, existing := range t.tags {
		if existing == tag {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	t.tags = out
	if removed {
		t.notify()
	}
}

// KeyEvent handles Enter (commit buffer), Backspace on an empty buffer (pop
// the last tag) and Escape (hide suggestions).
func (t *TagInput) KeyEvent(ctx context.Context, key Key) {
	switch key {
	case KeyEnter:
		if strings.TrimSpace(t.buffer) != "" {
			t.Commit(ctx, t.buffer)
		}
	case KeyBackspace:
		if t.buffer == "" && len(t.tags) > 0 {
			t.tags = t.tags[:len(t.tags)-1]
			t.notify()
		}
	case KeyEscape:
		t.visible = false
	}
}

// ClickSuggestion commits suggestion verbatim and refocuses the input.
func (t *TagInput) ClickSuggestion(ctx context.Context, suggestion string) {
	t.Commit(ctx, suggestion)
	t.focused = true
}

// AddCustom commits the buffer when the add-custom affordance is shown.
func (t *TagInput) AddCustom(ctx context.Context) bool {
	if !t.ShowAddCustom() {
		return false
	}
	changed := t.Commit(ctx, t.buffer)
	t.focused = true
	return changed
}

// Focus marks the input focused and re-shows suggestions for a non-empty buffer.
func (t *TagInput) Focus() {
	t.focused = true
	if strings.TrimSpace(t.buffer) != "" {
		t.refreshSuggestions()
	}
}

// ClickOutside hides suggestions and blurs the input.
func (t *TagInput) ClickOutside() {
	t.visible = false
	t.focused = false
}

// refreshSuggestions recomputes the dropdown. It stays visible for any
// non-blank buffer, even without matches, since it also hosts add-custom.
func (t *TagInput) refreshSuggestions() {
	trimmed := strings.TrimSpace(t.buffer)
	t.suggestions = nil
	t.exact = false
	t.visible = trimmed != ""
	if trimmed == "" || t.vocab == nil {
		return
	}
	t.suggestions = t.vocab.Search(trimmed, t.tags)
	t.exact = t.vocab.Contains(trimmed)
}

func (t *TagInput) clearBuffer() {
	t.buffer = ""
	t.suggestions = nil
	t.visible = false
	t.exact = false
}

func (t *TagInput) selected(tag string) bool {
	for _, existing := range t.tags {
		if existing == tag {
			return true
		}
	}
	return false
}

func (t *TagInput) notify() {
	if t.opts.OnChange != nil {
		t.opts.OnChange(t.Tags())
	}
}
