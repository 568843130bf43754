package menu

import (
	"errors"
	"testing"
)

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRegisterRejectsDuplicateWhileRegistered(t *testing.T) {
	r := NewRegistry()
	h, err := r.Register(Item{ID: "cut", Label: "Cut"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Register(Item{ID: "cut", Label: "Cut again"}); !errors.Is(err, ErrDuplicateRegistration) {
		t.Fatalf("expected ErrDuplicateRegistration, got %v", err)
	}
	if !r.Unregister(h) {
		t.Fatalf("expected unregister to succeed")
	}
	if _, err := r.Register(Item{ID: "cut", Label: "Cut"}); err != nil {
		t.Fatalf("expected re-registration after unregister, got %v", err)
	}
}

func TestUnregisterIgnoresStaleHandle(t *testing.T) {
	r := NewRegistry()
	old, _ := r.Register(Item{ID: "copy"})
	r.Unregister(old)
	if _, err := r.Register(Item{ID: "copy"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Unregister(old) {
		t.Fatalf("expected stale handle to be ignored")
	}
	if _, ok := r.Get("copy"); !ok {
		t.Fatalf("expected remounted item to survive stale unregister")
	}
}

func TestListOrdersByPositionThenRegistration(t *testing.T) {
	r := NewRegistry()
	r.Register(Item{ID: "c", Position: 2})
	r.Register(Item{ID: "a", Position: 0})
	r.Register(Item{ID: "b1", Position: 1})
	r.Register(Item{ID: "b2", Position: 1})
	got := ids(r.List())
	want := []string{"a", "b1", "b2", "c"}
	if !equalIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestEnabledSkipsDisabledAndDecorations(t *testing.T) {
	r := NewRegistry()
	r.Register(Item{ID: "title", Kind: KindLabel, Position: 0})
	r.Register(Item{ID: "one", Position: 1})
	r.Register(Item{ID: "sep", Kind: KindSeparator, Position: 2})
	r.Register(Item{ID: "two", Disabled: true, Position: 3})
	r.Register(Item{ID: "three", Position: 4})
	got := ids(r.Enabled())
	want := []string{"one", "three"}
	if !equalIDs(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if r.Len() != 5 {
		t.Fatalf("expected 5 registrations, got %d", r.Len())
	}
}

func TestUpdateKeepsRegistration(t *testing.T) {
	r := NewRegistry()
	h, _ := r.Register(Item{ID: "wrap", Kind: KindCheckbox})
	if err := r.Update(Item{ID: "wrap", Kind: KindCheckbox, Checked: Checked}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, _ := r.Get("wrap")
	if item.Checked != Checked {
		t.Fatalf("expected checked state persisted")
	}
	if !r.Unregister(h) {
		t.Fatalf("expected original handle to stay valid after update")
	}
	if err := r.Update(Item{ID: "missing"}); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestItemText(t *testing.T) {
	if got := (Item{Label: "  Paste "}).Text(); got != "Paste" {
		t.Fatalf("expected label-derived text, got %q", got)
	}
	if got := (Item{Label: "Paste", TextValue: "clipboard"}).Text(); got != "clipboard" {
		t.Fatalf("expected explicit text value, got %q", got)
	}
}
