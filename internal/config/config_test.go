package config

import (
	"errors"
	"flag"
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if !cfg.App.Modal {
		t.Fatalf("expected modal to default on")
	}
	if cfg.App.Loop || cfg.App.BlockOutside {
		t.Fatalf("expected loop and block-outside off by default")
	}
	if cfg.App.Dir != "ltr" {
		t.Fatalf("expected ltr, got %q", cfg.App.Dir)
	}
	if cfg.App.TypeaheadTimeout != time.Second {
		t.Fatalf("expected 1s typeahead timeout, got %s", cfg.App.TypeaheadTimeout)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"FLYOUT_MENU_FILE=/env/menus.yaml",
		"FLYOUT_ROOT=env-root",
		"FLYOUT_MODAL=false",
		"FLYOUT_DIR=rtl",
		"FLYOUT_TYPEAHEAD_TIMEOUT=250ms",
		"FLYOUT_WIDTH=100",
		"FLYOUT_TRACE=1",
		"malformed",
	}
	args := []string{"-root", "tmux", "-loop", "-width", "60", "-log-file", "/tmp/flyout.log"}
	cfg, err := LoadArgs(args, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.MenuFile != "/env/menus.yaml" {
		t.Fatalf("expected menu file from env, got %q", cfg.App.MenuFile)
	}
	if cfg.App.Root != "tmux" {
		t.Fatalf("expected flag to win over env, got %q", cfg.App.Root)
	}
	if cfg.App.Modal {
		t.Fatalf("expected modal disabled by env")
	}
	if !cfg.App.Loop {
		t.Fatalf("expected loop from flag")
	}
	if cfg.App.Dir != "rtl" {
		t.Fatalf("expected rtl, got %q", cfg.App.Dir)
	}
	if cfg.App.TypeaheadTimeout != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", cfg.App.TypeaheadTimeout)
	}
	if cfg.App.Width != 60 {
		t.Fatalf("expected width 60, got %d", cfg.App.Width)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/flyout.log" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Flags["width"] != "60" || cfg.Flags["typeaheadTimeout"] != "250ms" {
		t.Fatalf("unexpected flags %v", cfg.Flags)
	}
	if len(cfg.Args) != len(args) {
		t.Fatalf("expected args preserved, got %v", cfg.Args)
	}
}

func TestLoadArgsIgnoresUnparsableEnvironment(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"FLYOUT_HEIGHT=tall", "FLYOUT_LOOP=sometimes", "FLYOUT_TYPEAHEAD_TIMEOUT=soon"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Height != 0 || cfg.App.Loop || cfg.App.TypeaheadTimeout != time.Second {
		t.Fatalf("expected fallbacks, got %+v", cfg.App)
	}
}

func TestLoadArgsRejectsNegativeSize(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative width")
	}
	if _, err := LoadArgs([]string{"-height", "-3"}, nil); err == nil {
		t.Fatalf("expected error for negative height")
	}
	if _, err := LoadArgs([]string{"-nope"}, nil); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := LoadArgs([]string{"-dir", "up"}, nil)
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "dir") {
		t.Fatalf("expected dir error, got %v", err)
	}
	cfg, _ = LoadArgs([]string{"-typeahead-timeout", "0s"}, nil)
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "typeahead") {
		t.Fatalf("expected timeout error, got %v", err)
	}
	cfg, _ = LoadArgs([]string{"-dir", " RTL "}, nil)
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected case-insensitive dir, got %v", err)
	}
}

func TestLoadArgsHelp(t *testing.T) {
	_, err := LoadArgs([]string{"-h"}, nil)
	var help *HelpError
	if !errors.As(err, &help) {
		t.Fatalf("expected help error, got %v", err)
	}
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected help error to wrap flag.ErrHelp")
	}
	if !strings.Contains(help.Usage, "-menu-file") {
		t.Fatalf("expected usage to list flags, got %q", help.Usage)
	}
}
