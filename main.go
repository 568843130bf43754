package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/flyout/internal/app"
	"github.com/atomicstack/flyout/internal/config"
	"github.com/atomicstack/flyout/internal/logging"
	"github.com/atomicstack/flyout/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	runtimeCfg, err := config.Load()
	var help *config.HelpError
	if errors.As(err, &help) {
		fmt.Fprint(os.Stdout, help.Usage)
		return 0
	}
	if err == nil {
		err = config.Validate(runtimeCfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// startupInfo is the payload of the app start trace.
type startupInfo struct {
	Argv       []string          `json:"argv"`
	Flags      map[string]string `json:"flags"`
	Config     config.Config     `json:"config"`
	Menus      string            `json:"menus"`
	Executable string            `json:"executable,omitempty"`
	Cwd        string            `json:"cwd,omitempty"`
	Terminal   []descriptor      `json:"terminal"`
}

func startupTracePayload(cfg config.Config) startupInfo {
	info := startupInfo{
		Argv:     cfg.Args,
		Flags:    make(map[string]string, len(cfg.Flags)),
		Config:   cfg,
		Menus:    cfg.App.MenuFile,
		Terminal: describeDescriptors(),
	}
	for k, v := range cfg.Flags {
		info.Flags[k] = v
	}
	if info.Menus == "" {
		info.Menus = "builtin"
	}
	info.Executable, _ = os.Executable()
	info.Cwd, _ = os.Getwd()
	return info
}

// descriptor records what one standard stream is attached to. The menu
// draws on stderr and reads stdin; stdout carries the selection and is
// usually a pipe.
type descriptor struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Size     string `json:"size,omitempty"`
	Error    string `json:"error,omitempty"`
}

func describeDescriptors() []descriptor {
	streams := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	out := make([]descriptor, 0, len(streams))
	for _, f := range streams {
		d := descriptor{Name: f.Name()}
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			d.Terminal = true
			w, h, err := term.GetSize(fd)
			if err != nil {
				d.Error = err.Error()
			} else {
				d.Size = fmt.Sprintf("%dx%d", w, h)
			}
		}
		out = append(out, d)
	}
	return out
}
