package ui

import (
	"strings"

	"github.com/atomicstack/flyout/internal/engine"
	"github.com/atomicstack/flyout/internal/menu"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	maxLabelWidth = 40
	minInnerWidth = 12
	submenuArrow  = "›"
)

func triggerText(label string) string {
	return " " + label + " "
}

// View implements tea.Model.
func (m *Model) View() string {
	m.rendered = m.rendered[:0]
	lines := []string{m.viewHeader()}
	lines = append(lines, m.viewBody()...)
	lines = append(lines, m.viewFooter()...)
	return m.zones.Scan(strings.Join(lines, "\n"))
}

func (m *Model) footerRows() int {
	if m.showFooter {
		return 2
	}
	return 1
}

// bodyHeight is the last row a menu column may occupy, exclusive.
func (m *Model) bodyHeight() int {
	return m.height - m.footerRows()
}

// mark records a zone resolving to t for hit testing and wraps s in it.
// part separates several zones of one element.
func (m *Model) mark(t menu.Target, part, s string) string {
	id := zoneID(t) + part
	m.rendered = append(m.rendered, hitZone{id: id, target: t})
	return m.zones.Mark(id, s)
}

func (m *Model) viewHeader() string {
	var b strings.Builder
	open := m.bar.Open()
	focused := m.bar.Focused()
	for i, tree := range m.bar.Trees() {
		id := tree.Root().ID()
		style := styles.Trigger
		switch {
		case tree.Root().Disabled():
			style = styles.DisabledItem
		case i == open:
			style = styles.OpenTrigger
		case focused == menu.TriggerOf(id):
			style = styles.FocusTrigger
		}
		b.WriteString(m.mark(menu.TriggerOf(id), "", style.Render(triggerText(m.set.Label(id)))))
	}
	if m.trapped() {
		b.WriteString(styles.Modal.Render(" modal"))
	}
	return b.String()
}

// viewBody renders the open levels of the open menu as adjacent columns,
// each dropped to its anchored row.
func (m *Model) viewBody() []string {
	rows := m.bodyHeight() - headerRows
	if rows < 0 {
		rows = 0
	}
	var columns []string
	if i := m.bar.Open(); i >= 0 {
		for _, n := range m.bar.Trees()[i].Snapshot() {
			if !n.Open || !n.Mounted {
				continue
			}
			p := m.anchor.at(n.ID)
			box := m.renderBox(n)
			if top := p.row - headerRows; top > 0 {
				box = strings.Repeat("\n", top) + box
			}
			if len(columns) == 0 && p.col > 0 {
				box = indent(box, p.col)
			}
			columns = append(columns, box)
		}
	}
	body := []string{}
	if len(columns) > 0 {
		body = strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, columns...), "\n")
	}
	for len(body) < rows {
		body = append(body, "")
	}
	if len(body) > rows {
		body = body[:rows]
	}
	if m.width > 0 {
		for i, line := range body {
			if ansi.StringWidth(line) > m.width {
				body[i] = ansi.Truncate(line, m.width, "")
			}
		}
	}
	return body
}

func indent(block string, cols int) string {
	pad := strings.Repeat(" ", cols)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewFooter() []string {
	status := ""
	switch {
	case m.errMsg != "":
		status = styles.Error.Render(m.errMsg)
	case m.infoMsg != "":
		status = styles.Info.Render(m.infoMsg)
	default:
		if search := m.search(); search != "" {
			status = styles.Search.Render("search: " + search)
		} else if issue, ok := m.backendIssue(); ok {
			status = styles.Error.Render(issue)
		}
	}
	lines := []string{status}
	if m.showFooter {
		lines = append(lines, styles.Footer.Render(m.help.View(m.keys)))
	}
	return lines
}

// search returns the typeahead buffer of the focused level.
func (m *Model) search() string {
	i := m.bar.Open()
	if i < 0 {
		return ""
	}
	tree := m.bar.Trees()[i]
	n, err := tree.Menu(tree.Focused().Menu)
	if err != nil {
		return ""
	}
	return n.Search()
}

func label(s string) string {
	return truncate.StringWithTail(s, maxLabelWidth, "…")
}

func indicator(it engine.ItemSnapshot) string {
	switch it.Kind {
	case menu.KindCheckbox:
		switch it.Checked {
		case menu.Checked:
			return "✓ "
		case menu.Indeterminate:
			return "− "
		}
	case menu.KindRadio:
		if it.Checked == menu.Checked {
			return "● "
		}
		return "○ "
	}
	return "  "
}

func (m *Model) suffix(n engine.NodeSnapshot, it engine.ItemSnapshot) string {
	if it.Kind == menu.KindSubTrigger {
		return submenuArrow
	}
	return m.set.Shortcut(menu.ItemOf(n.ID, it.ID))
}

func (m *Model) innerWidth(n engine.NodeSnapshot) int {
	width := minInnerWidth
	for _, it := range n.Items {
		w := 1 + ansi.StringWidth(label(it.Label)) + 1
		if it.Kind != menu.KindLabel && it.Kind != menu.KindSeparator {
			w += ansi.StringWidth(indicator(it))
			if s := m.suffix(n, it); s != "" {
				w += 2 + ansi.StringWidth(s)
			}
		}
		if w > width {
			width = w
		}
	}
	return width
}

func (m *Model) renderBox(n engine.NodeSnapshot) string {
	inner := m.innerWidth(n)
	edge := styles.Border.Render("│")
	rows := make([]string, 0, len(n.Items)+2)
	rows = append(rows, m.mark(menu.ContentOf(n.ID), "#top", styles.Border.Render("┌"+strings.Repeat("─", inner)+"┐")))
	for _, it := range n.Items {
		rows = append(rows, m.mark(menu.ItemOf(n.ID, it.ID), "", edge+m.renderRow(n, it, inner)+edge))
	}
	rows = append(rows, m.mark(menu.ContentOf(n.ID), "#bottom", styles.Border.Render("└"+strings.Repeat("─", inner)+"┘")))
	return strings.Join(rows, "\n")
}

func (m *Model) renderRow(n engine.NodeSnapshot, it engine.ItemSnapshot, inner int) string {
	switch it.Kind {
	case menu.KindSeparator:
		return styles.Border.Render(strings.Repeat("─", inner))
	case menu.KindLabel:
		return styles.GroupLabel.Render(pad(" "+label(it.Label), inner))
	}
	left := " " + indicator(it) + label(it.Label)
	right := m.suffix(n, it) + " "
	gap := inner - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	switch {
	case it.Highlighted:
		return styles.SelectedItem.Render(left + strings.Repeat(" ", gap) + right)
	case it.Disabled:
		return styles.DisabledItem.Render(left + strings.Repeat(" ", gap) + right)
	}
	return styles.Item.Render(" ") +
		styles.Indicator.Render(indicator(it)) +
		styles.Item.Render(label(it.Label)+strings.Repeat(" ", gap)) +
		styles.Shortcut.Render(m.suffix(n, it)) +
		styles.Item.Render(" ")
}

func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
