package state

import (
	"testing"
	"time"

	"github.com/atomicstack/flyout/internal/menu"
)

func fruit() []menu.Item {
	return []menu.Item{
		{ID: "apple", Label: "Apple", Position: 0},
		{ID: "apricot", Label: "Apricot", Position: 1},
		{ID: "banana", Label: "Banana", Position: 2},
	}
}

func TestTypeaheadPrefixWithinWindow(t *testing.T) {
	var ta Typeahead
	now := time.Unix(100, 0)
	current := ""
	for _, r := range "ap" {
		if item, ok := ta.OnCharacter(r, fruit(), current, now); ok {
			current = item.ID
		}
		now = now.Add(100 * time.Millisecond)
	}
	if current != "apple" {
		t.Fatalf("expected apple, got %q", current)
	}
}

func TestTypeaheadRepeatedCharacterCycles(t *testing.T) {
	var ta Typeahead
	now := time.Unix(100, 0)
	item, _ := ta.OnCharacter('a', fruit(), "", now)
	if item.ID != "apple" {
		t.Fatalf("expected apple first, got %q", item.ID)
	}
	item, _ = ta.OnCharacter('a', fruit(), item.ID, now.Add(200*time.Millisecond))
	if item.ID != "apricot" {
		t.Fatalf("expected repeated a to cycle to apricot, got %q", item.ID)
	}
	item, _ = ta.OnCharacter('a', fruit(), item.ID, now.Add(400*time.Millisecond))
	if item.ID != "apple" {
		t.Fatalf("expected cycle to wrap back to apple, got %q", item.ID)
	}
}

func TestTypeaheadResetsAfterTimeout(t *testing.T) {
	var ta Typeahead
	now := time.Unix(100, 0)
	item, _ := ta.OnCharacter('a', fruit(), "", now)
	item, ok := ta.OnCharacter('b', fruit(), item.ID, now.Add(1500*time.Millisecond))
	if !ok || item.ID != "banana" {
		t.Fatalf("expected banana after timeout, got %q", item.ID)
	}
	if ta.Buffer() != "b" {
		t.Fatalf("expected buffer restarted, got %q", ta.Buffer())
	}
}

func TestTypeaheadFallsBackToNewCharacter(t *testing.T) {
	var ta Typeahead
	now := time.Unix(100, 0)
	item, _ := ta.OnCharacter('a', fruit(), "", now)
	item, ok := ta.OnCharacter('b', fruit(), item.ID, now.Add(100*time.Millisecond))
	if !ok || item.ID != "banana" {
		t.Fatalf("expected retry with b alone to find banana, got %q", item.ID)
	}
}

func TestTypeaheadSkipsDisabled(t *testing.T) {
	items := fruit()
	items[0].Disabled = true
	var ta Typeahead
	item, ok := ta.OnCharacter('a', items, "", time.Unix(100, 0))
	if !ok || item.ID != "apricot" {
		t.Fatalf("expected disabled apple skipped, got %q", item.ID)
	}
}

func TestTypeaheadIgnoresNonPrintable(t *testing.T) {
	var ta Typeahead
	if _, ok := ta.OnCharacter('\x1b', fruit(), "", time.Unix(100, 0)); ok {
		t.Fatalf("expected control character ignored")
	}
	if ta.Buffer() != "" {
		t.Fatalf("expected buffer untouched, got %q", ta.Buffer())
	}
}

func TestTypeaheadNoMatch(t *testing.T) {
	var ta Typeahead
	if _, ok := ta.OnCharacter('z', fruit(), "", time.Unix(100, 0)); ok {
		t.Fatalf("expected no match for z")
	}
}

func TestTypeaheadActiveWindow(t *testing.T) {
	ta := Typeahead{Timeout: 500 * time.Millisecond}
	now := time.Unix(100, 0)
	ta.OnCharacter('a', fruit(), "", now)
	if !ta.Active(now.Add(499 * time.Millisecond)) {
		t.Fatalf("expected search active inside window")
	}
	if ta.Active(now.Add(500 * time.Millisecond)) {
		t.Fatalf("expected search expired at window edge")
	}
}
