package ui

import (
	"github.com/atomicstack/flyout/internal/engine"
	"github.com/atomicstack/flyout/internal/menu"
	"github.com/charmbracelet/x/ansi"
)

// headerRows is the height of the trigger row above the menu columns.
const headerRows = 1

type placement struct {
	row int
	col int
}

// anchor places menu columns against their triggers: a root below its
// trigger (or at the context point), a submenu level with its trigger row.
// Columns are shifted up when they would run past the body.
type anchor struct {
	m      *Model
	placed map[string]placement
}

func newAnchor(m *Model) *anchor {
	return &anchor{m: m, placed: make(map[string]placement)}
}

// Place refuses until the viewport size is known.
func (a *anchor) Place(trigger, content menu.Target) bool {
	m := a.m
	if m.width <= 0 || m.height <= 0 {
		return false
	}
	tree, _, ok := m.bar.Tree(content.Menu)
	if !ok {
		return false
	}
	n, err := tree.Menu(content.Menu)
	if err != nil {
		return false
	}
	var p placement
	switch trigger.Part {
	case menu.PartTrigger:
		if pt, ok := tree.Point(); ok {
			p = placement{row: pt.Y, col: pt.X}
		} else {
			p = placement{row: headerRows, col: m.triggerCol(trigger.Menu)}
		}
	case menu.PartItem:
		parent := a.placed[trigger.Menu]
		p = placement{row: parent.row + 1 + itemIndex(n.Parent(), trigger.Item)}
	}
	rows := len(n.Items()) + 2
	if limit := m.bodyHeight(); p.row+rows > limit {
		p.row = limit - rows
	}
	if p.row < headerRows {
		p.row = headerRows
	}
	if p.col < 0 {
		p.col = 0
	}
	a.placed[content.Menu] = p
	return true
}

func (a *anchor) at(menuID string) placement {
	return a.placed[menuID]
}

func itemIndex(n *engine.Node, itemID string) int {
	if n == nil {
		return 0
	}
	for i, item := range n.Items() {
		if item.ID == itemID {
			return i
		}
	}
	return 0
}

// triggerCol returns the column where the trigger of a root menu starts.
func (m *Model) triggerCol(menuID string) int {
	col := 0
	for _, tree := range m.bar.Trees() {
		id := tree.Root().ID()
		if id == menuID {
			return col
		}
		col += ansi.StringWidth(triggerText(m.set.Label(id)))
	}
	return col
}

// scrollLock counts the menus holding outside scrolling.
type scrollLock struct {
	holders int
}

func (l *scrollLock) Acquire(string) func() {
	l.holders++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		l.holders--
	}
}

func (l *scrollLock) Held() bool {
	return l.holders > 0
}
