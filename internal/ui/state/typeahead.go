package state

import (
	"strings"
	"time"
	"unicode"

	"github.com/atomicstack/flyout/internal/menu"
)

// DefaultTypeaheadTimeout is the rolling window after which a search restarts.
const DefaultTypeaheadTimeout = time.Second

// Typeahead accumulates characters typed within a rolling window.
type Typeahead struct {
	Timeout     time.Duration
	buffer      string
	lastInputAt time.Time
}

func (t *Typeahead) timeout() time.Duration {
	if t.Timeout <= 0 {
		return DefaultTypeaheadTimeout
	}
	return t.Timeout
}

// Buffer returns the accumulated search.
func (t *Typeahead) Buffer() string {
	return t.buffer
}

// Active reports whether a search is still in progress at now.
func (t *Typeahead) Active(now time.Time) bool {
	return t.buffer != "" && now.Sub(t.lastInputAt) < t.timeout()
}

// Reset abandons the current search.
func (t *Typeahead) Reset() {
	t.buffer = ""
	t.lastInputAt = time.Time{}
}

// Printable reports whether r can take part in a typeahead search.
func Printable(r rune) bool {
	return r != 0 && unicode.IsPrint(r)
}

// OnCharacter appends r to the search and resolves the best matching item
// among the enabled items, scanning from the current stop. When the whole
// buffer matches nothing, the newly typed character is tried alone.
func (t *Typeahead) OnCharacter(r rune, items []menu.Item, current string, now time.Time) (menu.Item, bool) {
	if !Printable(r) {
		return menu.Item{}, false
	}
	if !t.Active(now) {
		t.buffer = ""
	}
	t.buffer += string(r)
	t.lastInputAt = now

	candidates := make([]menu.Item, 0, len(items))
	for _, item := range items {
		if item.Focusable() {
			candidates = append(candidates, item)
		}
	}
	if match, ok := NextMatch(candidates, t.buffer, current); ok {
		return match, true
	}
	if len([]rune(t.buffer)) > 1 {
		return NextMatch(candidates, string(r), current)
	}
	return menu.Item{}, false
}

// NextMatch returns the first item, in wrapped order starting at current,
// whose text starts with search (case-insensitive). A search made of one
// repeated character cycles: it matches like a single character and skips
// the current item.
func NextMatch(items []menu.Item, search, current string) (menu.Item, bool) {
	runes := []rune(search)
	if len(runes) == 0 {
		return menu.Item{}, false
	}
	normalized := search
	if repeated(runes) {
		normalized = string(runes[0])
	}
	excludeCurrent := len([]rune(normalized)) == 1
	needle := strings.ToLower(normalized)

	start := IndexOf(items, current)
	if start < 0 {
		start = 0
	}
	for i := 0; i < len(items); i++ {
		item := items[(start+i)%len(items)]
		if excludeCurrent && item.ID == current {
			continue
		}
		if strings.HasPrefix(strings.ToLower(item.Text()), needle) {
			return item, true
		}
	}
	return menu.Item{}, false
}

func repeated(runes []rune) bool {
	if len(runes) < 2 {
		return false
	}
	for _, r := range runes[1:] {
		if r != runes[0] {
			return false
		}
	}
	return true
}
