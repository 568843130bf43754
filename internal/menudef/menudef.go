// Package menudef loads menu definition files and builds engine trees from
// them.
package menudef

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/flyout/internal/menu"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sample []byte

var (
	ErrNoMenus        = errors.New("no menus defined")
	ErrMissingID      = errors.New("missing id")
	ErrDuplicateMenu  = errors.New("duplicate menu id")
	ErrDuplicateItem  = errors.New("duplicate item id")
	ErrUnknownKind    = errors.New("unknown item kind")
	ErrUnknownSubmenu = errors.New("unknown submenu")
	ErrSharedSubmenu  = errors.New("submenu referenced more than once")
	ErrRootSubmenu    = errors.New("root menu used as a submenu")
	ErrSubmenuCycle   = errors.New("submenu cycle")
	ErrUnknownRoot    = errors.New("unknown root menu")
	ErrProbeKind      = errors.New("probe on an item that is not a checkbox or radio")
	ErrSubmenuKind    = errors.New("submenu on an item that is not a sub trigger")
)

// File is a parsed menu definition file.
type File struct {
	// Root names the menu shown as a popup when no bar is defined.
	Root string `yaml:"root"`
	// Bar lists the menus shown side by side as a menubar.
	Bar   []string  `yaml:"bar"`
	Menus []MenuDef `yaml:"menus"`
}

type MenuDef struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	// Disabled greys out the trigger of a bar or root menu.
	Disabled bool      `yaml:"disabled"`
	Items    []ItemDef `yaml:"items"`
}

type ItemDef struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Text     string   `yaml:"text"`
	Kind     string   `yaml:"kind"`
	Disabled bool     `yaml:"disabled"`
	Checked  Checked  `yaml:"checked"`
	Group    string   `yaml:"group"`
	Value    string   `yaml:"value"`
	Submenu  string   `yaml:"submenu"`
	Shortcut string   `yaml:"shortcut"`
	Tmux     []string `yaml:"tmux"`
	Copy     string   `yaml:"copy"`
	// Probe is a tmux command whose output reports the live checked state.
	Probe []string `yaml:"probe"`
}

// Checked accepts true, false or indeterminate (alias mixed).
type Checked menu.CheckedState

func (c *Checked) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "", "false", "no", "off":
		*c = Checked(menu.Unchecked)
	case "true", "yes", "on":
		*c = Checked(menu.Checked)
	case "indeterminate", "mixed":
		*c = Checked(menu.Indeterminate)
	default:
		return fmt.Errorf("line %d: invalid checked value %q", value.Line, value.Value)
	}
	return nil
}

// Sample returns the built-in definition.
func Sample() (*File, error) {
	return Parse(sample)
}

// Load reads and validates a definition file. An empty path loads the
// built-in sample.
func Load(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return Sample()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a definition.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	f.normalize()
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// normalize assigns ids to separators and labels and infers the sub-trigger
// kind from a submenu reference.
func (f *File) normalize() {
	for mi := range f.Menus {
		m := &f.Menus[mi]
		for ii := range m.Items {
			it := &m.Items[ii]
			if it.Kind == "" && it.Submenu != "" {
				it.Kind = "submenu"
			}
			if it.ID == "" {
				if kind, ok := menu.ParseKind(it.Kind); ok && (kind == menu.KindSeparator || kind == menu.KindLabel) {
					it.ID = fmt.Sprintf("%s-%d", kind, ii)
				}
			}
		}
	}
}

func (f *File) validate() error {
	if len(f.Menus) == 0 {
		return ErrNoMenus
	}
	menus := make(map[string]*MenuDef, len(f.Menus))
	for i := range f.Menus {
		m := &f.Menus[i]
		if m.ID == "" {
			return fmt.Errorf("menu %d: %w", i, ErrMissingID)
		}
		if _, dup := menus[m.ID]; dup {
			return fmt.Errorf("menu %q: %w", m.ID, ErrDuplicateMenu)
		}
		menus[m.ID] = m
	}
	referenced := make(map[string]string)
	for _, m := range f.Menus {
		items := make(map[string]struct{}, len(m.Items))
		for i, it := range m.Items {
			if it.ID == "" {
				return fmt.Errorf("menu %q item %d: %w", m.ID, i, ErrMissingID)
			}
			if _, dup := items[it.ID]; dup {
				return fmt.Errorf("menu %q item %q: %w", m.ID, it.ID, ErrDuplicateItem)
			}
			items[it.ID] = struct{}{}
			kind, ok := menu.ParseKind(it.Kind)
			if !ok {
				return fmt.Errorf("menu %q item %q: %w %q", m.ID, it.ID, ErrUnknownKind, it.Kind)
			}
			if len(it.Probe) > 0 && kind != menu.KindCheckbox && kind != menu.KindRadio {
				return fmt.Errorf("menu %q item %q: %w", m.ID, it.ID, ErrProbeKind)
			}
			if kind != menu.KindSubTrigger {
				if it.Submenu != "" {
					return fmt.Errorf("menu %q item %q: %w", m.ID, it.ID, ErrSubmenuKind)
				}
				continue
			}
			if _, ok := menus[it.Submenu]; !ok {
				return fmt.Errorf("menu %q item %q: %w %q", m.ID, it.ID, ErrUnknownSubmenu, it.Submenu)
			}
			if prev, dup := referenced[it.Submenu]; dup {
				return fmt.Errorf("menu %q (from %s and %s/%s): %w", it.Submenu, prev, m.ID, it.ID, ErrSharedSubmenu)
			}
			referenced[it.Submenu] = m.ID + "/" + it.ID
		}
	}
	for _, id := range f.roots() {
		if _, ok := menus[id]; !ok {
			return f.unknownRoot(id)
		}
		if _, ok := referenced[id]; ok {
			return fmt.Errorf("menu %q: %w", id, ErrRootSubmenu)
		}
	}
	return f.checkCycles(menus)
}

func (f *File) checkCycles(menus map[string]*MenuDef) error {
	const (
		unvisited = iota
		visiting
		done
	)
	marks := make(map[string]int, len(menus))
	var visit func(id string) error
	visit = func(id string) error {
		switch marks[id] {
		case visiting:
			return fmt.Errorf("menu %q: %w", id, ErrSubmenuCycle)
		case done:
			return nil
		}
		m, ok := menus[id]
		if !ok {
			return fmt.Errorf("menu %q: %w", id, ErrUnknownSubmenu)
		}
		marks[id] = visiting
		for _, it := range m.Items {
			if kind, _ := menu.ParseKind(it.Kind); kind != menu.KindSubTrigger {
				continue
			}
			if err := visit(it.Submenu); err != nil {
				return err
			}
		}
		marks[id] = done
		return nil
	}
	for _, m := range f.Menus {
		if err := visit(m.ID); err != nil {
			return err
		}
	}
	return nil
}

// roots returns the configured entry menus: the bar when present, otherwise
// the root, otherwise the first menu.
func (f *File) roots() []string {
	if len(f.Bar) > 0 {
		return f.Bar
	}
	if f.Root != "" {
		return []string{f.Root}
	}
	if len(f.Menus) > 0 {
		return []string{f.Menus[0].ID}
	}
	return nil
}

// Menu returns the definition with the given id.
func (f *File) Menu(id string) (MenuDef, bool) {
	for _, m := range f.Menus {
		if m.ID == id {
			return m, true
		}
	}
	return MenuDef{}, false
}

func (f *File) unknownRoot(id string) error {
	if hint, ok := Suggest(f, id); ok {
		return fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownRoot, id, hint)
	}
	return fmt.Errorf("%w %q", ErrUnknownRoot, id)
}
