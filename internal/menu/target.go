package menu

import "fmt"

// Part identifies which piece of a menu a Target addresses.
type Part int

const (
	PartNone Part = iota
	PartTrigger
	PartContent
	PartItem
)

func (p Part) String() string {
	switch p {
	case PartTrigger:
		return "trigger"
	case PartContent:
		return "content"
	case PartItem:
		return "item"
	default:
		return "none"
	}
}

// Target is an element handle. The zero Target lies outside every menu.
type Target struct {
	Menu string
	Part Part
	Item string
}

// Outside is the handle for anything that is not part of a menu.
var Outside = Target{}

func TriggerOf(menuID string) Target {
	return Target{Menu: menuID, Part: PartTrigger}
}

func ContentOf(menuID string) Target {
	return Target{Menu: menuID, Part: PartContent}
}

func ItemOf(menuID, itemID string) Target {
	return Target{Menu: menuID, Part: PartItem, Item: itemID}
}

// IsZero reports whether t is the outside target.
func (t Target) IsZero() bool {
	return t == Target{}
}

func (t Target) String() string {
	switch t.Part {
	case PartItem:
		return fmt.Sprintf("%s/item/%s", t.Menu, t.Item)
	case PartNone:
		if t.Menu == "" {
			return "outside"
		}
		return t.Menu
	default:
		return fmt.Sprintf("%s/%s", t.Menu, t.Part)
	}
}
