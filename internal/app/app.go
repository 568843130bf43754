package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/flyout/internal/backend"
	"github.com/atomicstack/flyout/internal/engine"
	"github.com/atomicstack/flyout/internal/logging/events"
	"github.com/atomicstack/flyout/internal/menudef"
	"github.com/atomicstack/flyout/internal/tmux"
	"github.com/atomicstack/flyout/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// probeInterval paces the live item state queries.
const probeInterval = 1500 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	MenuFile         string
	Root             string
	Loop             bool
	Modal            bool
	BlockOutside     bool
	Dir              string
	TypeaheadTimeout time.Duration
	SocketPath       string
	Width            int
	Height           int
	ShowFooter       bool
	Verbose          bool
}

// EngineOptions maps the behaviour flags onto the menu engine.
func (c Config) EngineOptions() engine.Options {
	dir, _ := engine.ParseDir(c.Dir)
	return engine.Options{
		Loop:                        c.Loop,
		Modal:                       c.Modal,
		DisableOutsidePointerEvents: c.BlockOutside,
		Dir:                         dir,
		TypeaheadTimeout:            c.TypeaheadTimeout,
	}
}

// NewModel loads the menu file and builds the UI model for socketPath.
func NewModel(cfg Config, socketPath string) (*ui.Model, error) {
	file, err := menudef.Load(cfg.MenuFile)
	if err != nil {
		return nil, err
	}
	return ui.NewModel(ui.Config{
		File:       file,
		Root:       cfg.Root,
		Engine:     cfg.EngineOptions(),
		SocketPath: socketPath,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
	})
}

// Run bootstraps and executes the Bubble Tea program. The menu draws on
// stderr so the selected item can be written to stdout on exit.
func Run(cfg Config) error {
	return run(cfg, os.Stdout)
}

func run(cfg Config, out io.Writer) error {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	model, err := NewModel(cfg, socketPath)
	if err != nil {
		return err
	}
	if probes := model.Probes(); len(probes) > 0 {
		watcher := backend.NewWatcher(socketPath, probeInterval, probes)
		defer watcher.Stop()
		model.WithWatcher(watcher)
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithOutput(os.Stderr))
	_, err = program.Run()
	events.App.Exit(model.Selection(), err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}
	if sel := model.Selection(); sel != "" {
		fmt.Fprintln(out, sel)
	}
	return nil
}
