// Package intent decides when a submenu trigger should open its submenu.
//
// A pointer passing over a trigger only engages it. The open signal is the
// trigger subsequently receiving focus while still engaged, so a hover that
// never produced focus (focus stolen by another agent, pointer leaving first)
// cannot leave a submenu stuck open. Keyboard activation opens immediately
// and asks for the first submenu item to be focused.
package intent

import "github.com/atomicstack/flyout/internal/logging/events"

// State is the detector state of one submenu trigger.
type State int

const (
	Idle State = iota
	PointerEngaged
	Opening
)

func (s State) String() string {
	switch s {
	case PointerEngaged:
		return "pointer-engaged"
	case Opening:
		return "opening"
	default:
		return "idle"
	}
}

// Source records which modality produced an open request.
type Source int

const (
	SourcePointer Source = iota
	SourceKeyboard
)

// Request asks the owning menu to open the trigger's submenu.
type Request struct {
	Source     Source
	FocusFirst bool
}

// Detector tracks open intent for a single submenu trigger.
type Detector struct {
	TriggerID string
	state     State
}

// New returns an idle detector for the trigger.
func New(triggerID string) *Detector {
	return &Detector{TriggerID: triggerID}
}

// State returns the current state.
func (d *Detector) State() State {
	return d.state
}

// Engaged reports whether a pointer is engaged on the trigger.
func (d *Detector) Engaged() bool {
	return d.state == PointerEngaged
}

func (d *Detector) transition(to State) {
	if d.state == to {
		return
	}
	events.Intent.Transition(d.TriggerID, d.state.String(), to.String())
	d.state = to
}

// PointerMove engages the trigger on the first qualifying move. Moves over
// a disabled trigger, over a trigger whose submenu is already open, or while
// already engaged are ignored. It reports whether the move engaged.
func (d *Detector) PointerMove(enabled, open bool) bool {
	if !enabled || open || d.state != Idle {
		return false
	}
	d.transition(PointerEngaged)
	return true
}

// PointerLeave drops an engagement without opening.
func (d *Detector) PointerLeave() {
	if d.state == PointerEngaged {
		d.transition(Idle)
	}
}

// Focus converts an engagement into an open request.
func (d *Detector) Focus() (Request, bool) {
	if d.state != PointerEngaged {
		return Request{}, false
	}
	d.transition(Opening)
	return Request{Source: SourcePointer}, true
}

// Activate handles Enter, Space or the direction-appropriate arrow key.
func (d *Detector) Activate() Request {
	d.transition(Opening)
	return Request{Source: SourceKeyboard, FocusFirst: true}
}

// Click handles a pointer selection of the trigger. It opens without
// focusing into the submenu.
func (d *Detector) Click() Request {
	d.transition(Opening)
	return Request{Source: SourcePointer}
}

// Settle returns the detector to Idle once the owner has acted on a request.
func (d *Detector) Settle() {
	d.transition(Idle)
}

// Reset cancels any pending intent; used when the owning menu closes.
func (d *Detector) Reset() {
	d.transition(Idle)
}
