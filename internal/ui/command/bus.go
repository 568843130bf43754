package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/flyout/internal/logging/events"
	"github.com/atomicstack/flyout/internal/menu"
	"github.com/atomicstack/flyout/internal/menudef"
	"github.com/atomicstack/flyout/internal/tmux"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an item action invocation.
type Request struct {
	ID     string
	Label  string
	Action menudef.Action
	Item   menu.Item
}

// Result reports the outcome of a Request.
type Result struct {
	ID   string
	Info string
	Err  error
}

// Bus coordinates the execution of item actions.
type Bus struct {
	socketPath string
	runTmux    func(socketPath string, args ...string) (string, error)
	copy       func(text string) error
}

// New initialises a command bus that talks to the tmux server at socketPath.
func New(socketPath string) *Bus {
	return &Bus{
		socketPath: socketPath,
		runTmux:    tmux.Run,
		copy:       clipboard.WriteAll,
	}
}

// WithRunners swaps the tmux and clipboard backends.
func (b *Bus) WithRunners(runTmux func(string, ...string) (string, error), copyText func(string) error) *Bus {
	if runTmux != nil {
		b.runTmux = runTmux
	}
	if copyText != nil {
		b.copy = copyText
	}
	return b
}

// Execute wraps an item action into a Bubble Tea command while emitting
// trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Action.Empty() {
			events.Command.Skip(req.ID, req.Label)
			return Result{ID: req.ID, Info: fmt.Sprintf("Selected %s", req.ID)}
		}
		res := b.run(req)
		events.Command.Result(req.ID, req.Label, res.Err)
		return res
	}
}

func (b *Bus) run(req Request) Result {
	action := req.Action.Expand(req.Item)
	var errs []error
	var info []string
	if len(action.Tmux) > 0 {
		out, err := b.runTmux(b.socketPath, action.Tmux...)
		if err != nil {
			errs = append(errs, err)
		} else {
			info = append(info, fmt.Sprintf("Ran tmux %s", strings.Join(action.Tmux, " ")))
			if out != "" {
				info = append(info, out)
			}
		}
	}
	if action.Copy != "" {
		if err := b.copy(action.Copy); err != nil {
			errs = append(errs, fmt.Errorf("copy to clipboard: %w", err))
		} else {
			info = append(info, fmt.Sprintf("Copied %q", action.Copy))
		}
	}
	return Result{ID: req.ID, Info: strings.Join(info, "; "), Err: errors.Join(errs...)}
}
