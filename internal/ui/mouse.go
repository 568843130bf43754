package ui

import (
	"github.com/atomicstack/flyout/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

type hitZone struct {
	id     string
	target menu.Target
}

func zoneID(t menu.Target) string {
	return "flyout:" + t.String()
}

// zoneHit resolves the pointer against the zones marked by the last render.
func (m *Model) zoneHit(msg tea.MouseMsg) menu.Target {
	for _, z := range m.rendered {
		if info := m.zones.Get(z.id); info != nil && info.InBounds(msg) {
			return z.target
		}
	}
	return menu.Outside
}

func pointerOf(msg tea.MouseMsg) menu.Pointer {
	p := menu.Pointer{Kind: menu.PointerMouse}
	switch msg.Button {
	case tea.MouseButtonLeft:
		p.Button = menu.ButtonPrimary
	case tea.MouseButtonMiddle:
		p.Button = menu.ButtonMiddle
	case tea.MouseButtonRight:
		p.Button = menu.ButtonSecondary
	default:
		p.Button = menu.ButtonOther
	}
	if msg.Shift {
		p.Mods |= menu.ModShift
	}
	if msg.Alt {
		p.Mods |= menu.ModAlt
	}
	if msg.Ctrl {
		p.Mods |= menu.ModCtrl
	}
	return p
}

func isWheel(b tea.MouseButton) bool {
	switch b {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return true
	}
	return false
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	target := m.hit(mouse)
	switch {
	case mouse.Action == tea.MouseActionMotion:
		m.hover(target)
	case isWheel(mouse.Button):
		m.wheel(target, mouse.Button)
	case mouse.Action == tea.MouseActionPress:
		m.hover(target)
		if target.IsZero() && mouse.Button == tea.MouseButtonRight && m.bar.Open() < 0 {
			if trees := m.bar.Trees(); len(trees) > 0 {
				trees[m.bar.Stop()].OpenAt(mouse.X, mouse.Y)
			}
			break
		}
		m.bar.PointerDown(target, pointerOf(mouse))
	case mouse.Action == tea.MouseActionRelease:
		if target.Part == menu.PartItem {
			m.bar.PointerUp(target)
		}
	}
	return m.afterInput()
}

// hover turns pointer motion into leave and move events on element changes.
func (m *Model) hover(target menu.Target) {
	if target == m.hovered {
		return
	}
	prev := m.hovered
	m.hovered = target
	if prev.Part == menu.PartItem {
		m.bar.PointerLeave(prev)
	}
	if !target.IsZero() {
		m.bar.PointerMove(target)
	}
}

// wheel moves the highlight of the menu under the pointer. Outside the
// menus the wheel is swallowed while a modal menu holds the scroll lock.
func (m *Model) wheel(target menu.Target, b tea.MouseButton) {
	if target.IsZero() {
		if m.lock.Held() {
			m.swallowed++
		}
		return
	}
	if target.Part == menu.PartTrigger {
		return
	}
	if b != tea.MouseButtonWheelUp && b != tea.MouseButtonWheelDown {
		return
	}
	if tree, _, ok := m.bar.Tree(target.Menu); ok {
		tree.Scroll(target.Menu, b == tea.MouseButtonWheelDown)
	}
}
