// Package dismiss decides whether interaction outside an open menu layer
// closes it.
package dismiss

import (
	"github.com/atomicstack/flyout/internal/logging/events"
	"github.com/atomicstack/flyout/internal/menu"
)

// Decision is the verdict for one layer.
type Decision int

const (
	// Ignore: the event happened inside the layer.
	Ignore Decision = iota
	// SuppressTrigger: the event landed on the element that opened the layer.
	SuppressTrigger
	// SuppressTrapped: a focus move out of a trap never dismisses.
	SuppressTrapped
	// Blocked: a layer above disables outside pointer events.
	Blocked
	// Dismiss: the layer should close.
	Dismiss
)

func (d Decision) String() string {
	switch d {
	case SuppressTrigger:
		return "suppress-trigger"
	case SuppressTrapped:
		return "suppress-trapped"
	case Blocked:
		return "blocked"
	case Dismiss:
		return "dismiss"
	default:
		return "ignore"
	}
}

// Outcome is the decision for one layer. Permitted marks a pass-through
// pointer-down: the outside target keeps the focus it receives, so the
// layer must not restore focus to its trigger.
type Outcome struct {
	Layer     string
	Decision  Decision
	Permitted bool
}

// Arbiter evaluates outside interaction against a layer stack, innermost
// layer first.
type Arbiter struct {
	Stack *Stack
}

// NewArbiter returns an arbiter over s.
func NewArbiter(s *Stack) *Arbiter {
	return &Arbiter{Stack: s}
}

// PassThrough reports whether a pointer-down qualifies as a permitted
// pass-through click: the primary button of the primary contact with no
// modifier held, while nothing blocks outside pointer events.
func PassThrough(p menu.Pointer, blocked bool) bool {
	if blocked || p.Secondary {
		return false
	}
	return p.Button == menu.ButtonPrimary && p.Mods == 0
}

// PointerDown classifies a pointer-down on t for every installed layer.
func (a *Arbiter) PointerDown(t menu.Target, p menu.Pointer) []Outcome {
	layers := a.Stack.layers
	blocking := a.Stack.blockingIndex()
	permitted := PassThrough(p, blocking >= 0)
	out := make([]Outcome, 0, len(layers))
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		o := Outcome{Layer: l.ID()}
		switch {
		case l.Contains(t):
			o.Decision = Ignore
		case isTrigger(l, t):
			o.Decision = SuppressTrigger
		case i < blocking:
			o.Decision = Blocked
		default:
			o.Decision = Dismiss
			o.Permitted = permitted
		}
		events.Dismiss.Decision(o.Layer, "pointerdown", o.Decision.String(), o.Permitted)
		out = append(out, o)
	}
	return out
}

// FocusOutside classifies a focus move to t for every installed layer.
func (a *Arbiter) FocusOutside(t menu.Target) []Outcome {
	layers := a.Stack.layers
	out := make([]Outcome, 0, len(layers))
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		o := Outcome{Layer: l.ID()}
		switch {
		case l.Contains(t):
			o.Decision = Ignore
		case isTrigger(l, t):
			o.Decision = SuppressTrigger
		case l.Traps(t):
			o.Decision = SuppressTrapped
		default:
			o.Decision = Dismiss
		}
		events.Dismiss.Decision(o.Layer, "focusout", o.Decision.String(), false)
		out = append(out, o)
	}
	return out
}

func isTrigger(l Layer, t menu.Target) bool {
	trigger, ok := l.Trigger()
	return ok && trigger == t
}
