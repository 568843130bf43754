package ui

import (
	"github.com/atomicstack/flyout/internal/menu"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Space    key.Binding
	Close    key.Binding
	Tab      key.Binding
	BackTab  key.Binding
	Quit     key.Binding
}

var _ help.KeyMap = keyMap{}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "close submenu")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "open submenu")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "first")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "last")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Space:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Tab:      key.NewBinding(key.WithKeys("tab")),
		BackTab:  key.NewBinding(key.WithKeys("shift+tab")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Right, k.Left, k.Select, k.Close}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End},
		{k.Right, k.Left, k.Select, k.Space},
		{k.Close, k.Quit},
	}
}

// translate maps a terminal key to the menu keys it stands for. Printable
// runes map one key per rune so pasted text feeds typeahead in order.
func (k keyMap) translate(msg tea.KeyMsg) []menu.Key {
	if msg.Type == tea.KeyRunes {
		var mods menu.Modifiers
		if msg.Alt {
			mods |= menu.ModAlt
		}
		keys := make([]menu.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			mk := menu.Char(r)
			mk.Mods = mods
			keys = append(keys, mk)
		}
		return keys
	}
	if msg.Type == tea.KeySpace {
		return []menu.Key{menu.Char(' ')}
	}
	named := []struct {
		binding key.Binding
		code    menu.KeyCode
		mods    menu.Modifiers
	}{
		{k.Up, menu.KeyUp, 0},
		{k.Down, menu.KeyDown, 0},
		{k.Left, menu.KeyLeft, 0},
		{k.Right, menu.KeyRight, 0},
		{k.Home, menu.KeyHome, 0},
		{k.End, menu.KeyEnd, 0},
		{k.PageUp, menu.KeyPageUp, 0},
		{k.PageDown, menu.KeyPageDown, 0},
		{k.Select, menu.KeyEnter, 0},
		{k.Space, menu.KeySpace, 0},
		{k.Close, menu.KeyEscape, 0},
		{k.Tab, menu.KeyTab, 0},
		{k.BackTab, menu.KeyTab, menu.ModShift},
	}
	for _, n := range named {
		if key.Matches(msg, n.binding) {
			mk := menu.Press(n.code)
			if n.code == menu.KeySpace {
				mk = menu.Char(' ')
			}
			mk.Mods = n.mods
			return []menu.Key{mk}
		}
	}
	return nil
}
