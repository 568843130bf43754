package menu

import "strings"

// Kind classifies how an item behaves when selected and which role it renders with.
type Kind int

const (
	KindItem Kind = iota
	KindCheckbox
	KindRadio
	KindSubTrigger
	KindSeparator
	KindLabel
)

func (k Kind) String() string {
	switch k {
	case KindCheckbox:
		return "checkbox"
	case KindRadio:
		return "radio"
	case KindSubTrigger:
		return "sub-trigger"
	case KindSeparator:
		return "separator"
	case KindLabel:
		return "label"
	default:
		return "item"
	}
}

// ParseKind maps the textual kind used in menu definition files.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "item":
		return KindItem, true
	case "checkbox":
		return KindCheckbox, true
	case "radio":
		return KindRadio, true
	case "submenu", "sub-trigger":
		return KindSubTrigger, true
	case "separator":
		return KindSeparator, true
	case "label":
		return KindLabel, true
	}
	return KindItem, false
}

// CheckedState is the derived boolean (or tri-state) of checkbox and radio items.
type CheckedState int

const (
	Unchecked CheckedState = iota
	Checked
	Indeterminate
)

// Item represents one registered menu row.
type Item struct {
	ID        string
	Label     string
	TextValue string
	Disabled  bool
	Kind      Kind
	Checked   CheckedState
	Group     string
	Value     string
	Submenu   string
	// Position is the visual row of the item; the registry lists items by it.
	Position int

	OnSelect func(*SelectEvent)
	OnLeave  func(Item)
}

// Text returns the value typeahead matches against.
func (i Item) Text() string {
	if i.TextValue != "" {
		return i.TextValue
	}
	return strings.TrimSpace(i.Label)
}

// Focusable reports whether the item can hold the roving focus stop.
func (i Item) Focusable() bool {
	if i.Disabled {
		return false
	}
	return i.Kind != KindSeparator && i.Kind != KindLabel
}

// SelectEvent is delivered synchronously to the item and to every select
// observer between the item's menu and the root.
type SelectEvent struct {
	Item      Item
	Menu      string
	Keyboard  bool
	prevented bool
}

// PreventDefault keeps the menu open after the selection. From the item's
// own handler or a root-level observer it keeps the whole stack open; from a
// submenu observer it only marks that level's event.
func (e *SelectEvent) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a handler of this event suppressed the
// default close.
func (e *SelectEvent) DefaultPrevented() bool {
	return e.prevented
}
