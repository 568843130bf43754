// Package aria derives role and state attributes from engine snapshots.
// Every function is a pure transform; attributes are never cached.
package aria

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/flyout/internal/engine"
	"github.com/atomicstack/flyout/internal/menu"
)

// Attrs maps attribute names to values. An empty value renders as a bare
// boolean attribute.
type Attrs map[string]string

// String renders the attributes sorted by name.
func (a Attrs) String() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		if a[k] == "" {
			parts[i] = k
			continue
		}
		parts[i] = fmt.Sprintf("%s=%q", k, a[k])
	}
	return strings.Join(parts, " ")
}

type transform func(Attrs)

func compose(ts ...transform) Attrs {
	a := Attrs{}
	for _, t := range ts {
		t(a)
	}
	return a
}

func set(name, value string) transform {
	return func(a Attrs) {
		if value != "" {
			a[name] = value
		}
	}
}

func flag(name string) transform {
	return func(a Attrs) {
		a[name] = ""
	}
}

func when(cond bool, t transform) transform {
	return func(a Attrs) {
		if cond {
			t(a)
		}
	}
}

// OpenState returns the data-state value of a menu or trigger.
func OpenState(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

// CheckedState returns the data-state value of a checkbox or radio item.
func CheckedState(c menu.CheckedState) string {
	switch c {
	case menu.Checked:
		return "checked"
	case menu.Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

func ariaChecked(kind menu.Kind, c menu.CheckedState) string {
	switch {
	case c == menu.Checked:
		return "true"
	case c == menu.Indeterminate && kind == menu.KindCheckbox:
		return "mixed"
	default:
		return "false"
	}
}

func popup(open bool, controls string) transform {
	return func(a Attrs) {
		a["aria-haspopup"] = "menu"
		a["aria-expanded"] = fmt.Sprint(open)
		a["data-state"] = OpenState(open)
		if open && controls != "" {
			a["aria-controls"] = controls
		}
	}
}

func disabled(d bool) transform {
	return when(d, func(a Attrs) {
		a["aria-disabled"] = "true"
		a["data-disabled"] = ""
	})
}

// Trigger returns the attributes of a root menu trigger.
func Trigger(n engine.NodeSnapshot) Attrs {
	return compose(
		set("id", n.TriggerID),
		popup(n.Open, n.ContentID),
		disabled(n.Disabled),
	)
}

// Content returns the attributes of a menu surface.
func Content(n engine.NodeSnapshot) Attrs {
	return compose(
		set("role", "menu"),
		set("aria-orientation", "vertical"),
		set("data-state", OpenState(n.Open)),
		set("id", n.ContentID),
		set("aria-labelledby", n.TriggerID),
	)
}

// Item returns the attributes of one row.
func Item(it engine.ItemSnapshot) Attrs {
	switch it.Kind {
	case menu.KindSeparator:
		return compose(set("role", "separator"), set("aria-orientation", "horizontal"))
	case menu.KindLabel:
		return Attrs{}
	}
	role := "menuitem"
	checked := it.Kind == menu.KindCheckbox || it.Kind == menu.KindRadio
	switch it.Kind {
	case menu.KindCheckbox:
		role = "menuitemcheckbox"
	case menu.KindRadio:
		role = "menuitemradio"
	}
	return compose(
		set("role", role),
		disabled(it.Disabled),
		when(it.Highlighted, flag("data-highlighted")),
		when(checked, func(a Attrs) {
			a["aria-checked"] = ariaChecked(it.Kind, it.Checked)
			a["data-state"] = CheckedState(it.Checked)
		}),
		when(it.Kind == menu.KindSubTrigger, func(a Attrs) {
			set("id", it.SubTriggerID)(a)
			popup(it.SubOpen, it.SubContentID)(a)
		}),
	)
}

// Render writes the attributes of every element in snapshot order: the root
// trigger, then each mounted surface with its rows.
func Render(snaps []engine.NodeSnapshot) string {
	var b strings.Builder
	for _, n := range snaps {
		if n.Parent == "" {
			fmt.Fprintf(&b, "trigger %s: %s\n", n.ID, Trigger(n))
		}
		if !n.Mounted {
			continue
		}
		fmt.Fprintf(&b, "content %s: %s\n", n.ID, Content(n))
		for _, it := range n.Items {
			fmt.Fprintf(&b, "  item %s: %s\n", it.ID, Item(it))
		}
	}
	return b.String()
}
