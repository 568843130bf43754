package focus

import (
	"testing"

	"github.com/atomicstack/flyout/internal/menu"
)

type recordingTrap struct {
	calls []bool
}

func (r *recordingTrap) SetTrapped(_ string, trapped bool) {
	r.calls = append(r.calls, trapped)
}

func TestActivateFocusesContentByDefault(t *testing.T) {
	trap := &recordingTrap{}
	g := NewGuard("file", menu.TriggerOf("file"), menu.ContentOf("file"), Options{Trap: true, Restore: true}, trap)
	target, ok := g.Activate(menu.ItemOf("file", "new"), false)
	if !ok || target != menu.ContentOf("file") {
		t.Fatalf("expected content focus, got %v %v", target, ok)
	}
	if !g.Trapped() || len(trap.calls) != 1 || !trap.calls[0] {
		t.Fatalf("expected trap engaged, calls=%v", trap.calls)
	}
}

func TestActivateFocusFirstItem(t *testing.T) {
	g := NewGuard("file", menu.TriggerOf("file"), menu.ContentOf("file"), Options{}, nil)
	target, ok := g.Activate(menu.ItemOf("file", "new"), true)
	if !ok || target != menu.ItemOf("file", "new") {
		t.Fatalf("expected first item focus, got %v", target)
	}
	if g.Trapped() {
		t.Fatalf("expected no trap when disabled")
	}
	target, _ = g.Activate(menu.Target{}, true)
	if target != menu.ContentOf("file") {
		t.Fatalf("expected content when no item exists, got %v", target)
	}
}

func TestDeactivateRestoresTrigger(t *testing.T) {
	g := NewGuard("file", menu.TriggerOf("file"), menu.ContentOf("file"), Options{Trap: true, Restore: true}, nil)
	g.Activate(menu.Target{}, false)
	target, ok := g.Deactivate()
	if !ok || target != menu.TriggerOf("file") {
		t.Fatalf("expected trigger restore, got %v %v", target, ok)
	}
	if g.Trapped() || g.Active() {
		t.Fatalf("expected guard released")
	}
	if _, ok := g.Deactivate(); ok {
		t.Fatalf("expected second deactivate to be a no-op")
	}
}

func TestPermittedPointerDownSkipsRestoreOnce(t *testing.T) {
	trap := &recordingTrap{}
	g := NewGuard("file", menu.TriggerOf("file"), menu.ContentOf("file"), Options{Trap: true, Restore: true}, trap)
	g.Activate(menu.Target{}, false)
	g.PermitPointerDownOutside()
	if g.Trapped() {
		t.Fatalf("expected permission to release the trap")
	}
	if _, ok := g.Deactivate(); ok {
		t.Fatalf("expected no restore after pass-through click")
	}
	if g.Permitted() {
		t.Fatalf("expected permission consumed")
	}
	g.Activate(menu.Target{}, false)
	if _, ok := g.Deactivate(); !ok {
		t.Fatalf("expected restore on the next close")
	}
}

func TestAutoFocusPrevented(t *testing.T) {
	opts := Options{
		Restore:            true,
		OnMountAutoFocus:   func(e *AutoFocusEvent) { e.PreventDefault() },
		OnUnmountAutoFocus: func(e *AutoFocusEvent) { e.PreventDefault() },
	}
	g := NewGuard("file", menu.TriggerOf("file"), menu.ContentOf("file"), opts, nil)
	if _, ok := g.Activate(menu.Target{}, false); ok {
		t.Fatalf("expected mount auto-focus prevented")
	}
	if _, ok := g.Deactivate(); ok {
		t.Fatalf("expected unmount auto-focus prevented")
	}
}

func TestSubmenuGuardNeverRestores(t *testing.T) {
	g := NewGuard("recent", menu.ItemOf("file", "recent"), menu.ContentOf("recent"), Options{}, nil)
	g.Activate(menu.Target{}, false)
	if _, ok := g.Deactivate(); ok {
		t.Fatalf("expected no restore without Restore")
	}
}
