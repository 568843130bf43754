package ui

import (
	"sort"

	"github.com/atomicstack/flyout/internal/backend"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// WithWatcher streams live item state from w into the menus.
func (m *Model) WithWatcher(w *backend.Watcher) *Model {
	m.backend = w
	return m
}

// Probes returns the live state queries declared by the menu file.
func (m *Model) Probes() []backend.Probe {
	return m.set.Probes()
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	key := evt.Target.String()
	if evt.Err != nil {
		m.backendErr[key] = evt.Err
		return
	}
	delete(m.backendErr, key)
	m.dispatcher.Handle(evt)
}

// backendIssue returns the first outstanding probe error by target.
func (m *Model) backendIssue() (string, bool) {
	if len(m.backendErr) == 0 {
		return "", false
	}
	keys := make([]string, 0, len(m.backendErr))
	for key := range m.backendErr {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys[0] + ": " + m.backendErr[keys[0]].Error(), true
}
