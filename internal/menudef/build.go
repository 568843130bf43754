package menudef

import (
	"fmt"
	"strings"

	"github.com/atomicstack/flyout/internal/backend"
	"github.com/atomicstack/flyout/internal/engine"
	"github.com/atomicstack/flyout/internal/menu"
)

// Action is the work bound to an item. An empty Action selects the item
// without side effects.
type Action struct {
	Tmux []string
	Copy string
}

func (a Action) Empty() bool {
	return len(a.Tmux) == 0 && a.Copy == ""
}

// Expand substitutes the item placeholders {id}, {label}, {value} and
// {state}. {state} is on or off after a checkbox or radio has been applied.
func (a Action) Expand(item menu.Item) Action {
	state := "off"
	if item.Checked == menu.Checked {
		state = "on"
	}
	r := strings.NewReplacer(
		"{id}", item.ID,
		"{label}", item.Label,
		"{value}", item.Value,
		"{state}", state,
	)
	out := Action{Copy: r.Replace(a.Copy)}
	if len(a.Tmux) > 0 {
		out.Tmux = make([]string, len(a.Tmux))
		for i, arg := range a.Tmux {
			out.Tmux[i] = r.Replace(arg)
		}
	}
	return out
}

// Set is a built menubar plus the per-item presentation and actions that
// the engine does not track.
type Set struct {
	Bar       *engine.Bar
	labels    map[string]string
	actions   map[menu.Target]Action
	shortcuts map[menu.Target]string
	probes    []backend.Probe
}

// Action returns the action bound to an item.
func (s *Set) Action(t menu.Target) (Action, bool) {
	a, ok := s.actions[t]
	return a, ok
}

// Label returns the display label of a menu, falling back to its id.
func (s *Set) Label(menuID string) string {
	if l := s.labels[menuID]; l != "" {
		return l
	}
	return menuID
}

// Shortcut returns the hint shown next to an item.
func (s *Set) Shortcut(t menu.Target) string {
	return s.shortcuts[t]
}

// Probes returns the live state queries of every built item.
func (s *Set) Probes() []backend.Probe {
	return s.probes
}

// Build creates one tree per entry menu. rootID overrides the entry menus of
// the file with a single popup menu.
func Build(f *File, rootID string, opts engine.Options) (*Set, error) {
	roots := f.roots()
	if rootID != "" {
		roots = []string{rootID}
	}
	s := &Set{
		labels:    make(map[string]string, len(f.Menus)),
		actions:   make(map[menu.Target]Action),
		shortcuts: make(map[menu.Target]string),
	}
	for _, m := range f.Menus {
		s.labels[m.ID] = m.Label
	}
	trees := make([]*engine.Tree, 0, len(roots))
	for _, id := range roots {
		def, ok := f.Menu(id)
		if !ok {
			return nil, f.unknownRoot(id)
		}
		tree := engine.NewTree(id, opts)
		tree.Root().SetDisabled(def.Disabled)
		if err := s.populate(f, tree.Root(), def); err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	s.Bar = engine.NewBar(trees...)
	return s, nil
}

func (s *Set) populate(f *File, n *engine.Node, def MenuDef) error {
	for i, it := range def.Items {
		kind, ok := menu.ParseKind(it.Kind)
		if !ok {
			return fmt.Errorf("menu %q item %q: %w %q", def.ID, it.ID, ErrUnknownKind, it.Kind)
		}
		item := menu.Item{
			ID:        it.ID,
			Label:     it.Label,
			TextValue: it.Text,
			Disabled:  it.Disabled,
			Kind:      kind,
			Checked:   menu.CheckedState(it.Checked),
			Group:     it.Group,
			Value:     it.Value,
			Position:  i,
		}
		if err := n.Register(item); err != nil {
			return err
		}
		target := menu.ItemOf(def.ID, it.ID)
		if a := (Action{Tmux: it.Tmux, Copy: it.Copy}); !a.Empty() {
			s.actions[target] = a
		}
		if it.Shortcut != "" {
			s.shortcuts[target] = it.Shortcut
		}
		if len(it.Probe) > 0 {
			p := backend.Probe{Target: target, Args: it.Probe}
			if kind == menu.KindRadio {
				p.Value = it.Value
			}
			s.probes = append(s.probes, p)
		}
		if kind != menu.KindSubTrigger {
			continue
		}
		sub, ok := f.Menu(it.Submenu)
		if !ok {
			return fmt.Errorf("menu %q item %q: %w %q", def.ID, it.ID, ErrUnknownSubmenu, it.Submenu)
		}
		child, err := n.AddSubmenu(it.ID, sub.ID)
		if err != nil {
			return err
		}
		if err := s.populate(f, child, sub); err != nil {
			return err
		}
	}
	return nil
}
