package ui

import tea "github.com/charmbracelet/bubbletea"

// maxChain bounds the commands followed for one input so a retrying flush
// cannot spin forever in tests.
const maxChain = 64

// Harness feeds messages to a Model and runs the commands it returns
// synchronously, the way the Bubble Tea runtime would.
type Harness struct {
	model *Model
	seen  []tea.Msg
	quit  bool
}

func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Start runs the model's Init command.
func (h *Harness) Start() {
	h.run(h.model.Init(), 0)
}

// Send delivers msg and every message its commands produce.
func (h *Harness) Send(msgs ...tea.Msg) {
	for _, msg := range msgs {
		h.deliver(msg, 0)
	}
}

func (h *Harness) deliver(msg tea.Msg, depth int) {
	h.seen = append(h.seen, msg)
	_, cmd := h.model.Update(msg)
	h.run(cmd, depth+1)
}

func (h *Harness) run(cmd tea.Cmd, depth int) {
	if cmd == nil || h.quit || depth > maxChain {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.QuitMsg:
		h.quit = true
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c, depth)
		}
	default:
		h.deliver(msg, depth)
	}
}

// Seen lists every message delivered so far, in order.
func (h *Harness) Seen() []tea.Msg { return h.seen }

func (h *Harness) View() string { return h.model.View() }

func (h *Harness) Model() *Model { return h.model }

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool { return h.quit }
