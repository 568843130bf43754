package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/flyout/internal/app"
	"github.com/atomicstack/flyout/internal/engine"
	"github.com/atomicstack/flyout/internal/ui/state"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// HelpError is returned when -h or -help was given. Usage holds the flag
// summary.
type HelpError struct {
	Usage string
}

func (e *HelpError) Error() string { return flag.ErrHelp.Error() }

func (e *HelpError) Unwrap() error { return flag.ErrHelp }

const (
	envMenuFile     = "FLYOUT_MENU_FILE"
	envRoot         = "FLYOUT_ROOT"
	envLoop         = "FLYOUT_LOOP"
	envModal        = "FLYOUT_MODAL"
	envBlockOutside = "FLYOUT_BLOCK_OUTSIDE"
	envDir          = "FLYOUT_DIR"
	envTypeahead    = "FLYOUT_TYPEAHEAD_TIMEOUT"
	envSocketPath   = "FLYOUT_SOCKET"
	envWidth        = "FLYOUT_WIDTH"
	envHeight       = "FLYOUT_HEIGHT"
	envShowFooter   = "FLYOUT_FOOTER"
	envVerbose      = "FLYOUT_VERBOSE"
	envTrace        = "FLYOUT_TRACE"
	envLogFile      = "FLYOUT_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("flyout", flag.ContinueOnError)
	usage := new(strings.Builder)
	fs.SetOutput(usage)

	menuFile := fs.String("menu-file", envOrDefault(env, envMenuFile, ""), "path to a YAML menu definition (empty uses the built-in tmux menu)")
	root := fs.String("root", envOrDefault(env, envRoot, ""), "show a single menu of the file as a popup")
	loop := fs.Bool("loop", envOrBool(env, envLoop, false), "wrap keyboard navigation at either end of a menu")
	modal := fs.Bool("modal", envOrBool(env, envModal, true), "trap focus and lock outside scrolling while a menu is open")
	blockOutside := fs.Bool("block-outside", envOrBool(env, envBlockOutside, false), "never let outside clicks pass through an open menu")
	dir := fs.String("dir", envOrDefault(env, envDir, "ltr"), "reading direction: ltr or rtl")
	typeahead := fs.Duration("typeahead-timeout", envOrDuration(env, envTypeahead, state.DefaultTypeaheadTimeout), "idle time after which typeahead search restarts")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, &HelpError{Usage: usage.String()}
		}
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			MenuFile:         *menuFile,
			Root:             *root,
			Loop:             *loop,
			Modal:            *modal,
			BlockOutside:     *blockOutside,
			Dir:              strings.ToLower(strings.TrimSpace(*dir)),
			TypeaheadTimeout: *typeahead,
			SocketPath:       *socket,
			Width:            *width,
			Height:           *height,
			ShowFooter:       *footer,
			Verbose:          *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"menuFile":         *menuFile,
			"root":             *root,
			"loop":             strconv.FormatBool(*loop),
			"modal":            strconv.FormatBool(*modal),
			"blockOutside":     strconv.FormatBool(*blockOutside),
			"dir":              *dir,
			"typeaheadTimeout": typeahead.String(),
			"socket":           *socket,
			"width":            strconv.Itoa(*width),
			"height":           strconv.Itoa(*height),
			"footer":           strconv.FormatBool(*footer),
			"trace":            strconv.FormatBool(*trace),
			"verbose":          strconv.FormatBool(*verbose),
			"logFile":          *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate rejects option values the engine cannot honour.
func Validate(cfg Config) error {
	if _, ok := engine.ParseDir(cfg.App.Dir); !ok {
		return fmt.Errorf("dir must be ltr or rtl (got %q)", cfg.App.Dir)
	}
	if cfg.App.TypeaheadTimeout <= 0 {
		return fmt.Errorf("typeahead-timeout must be positive (got %s)", cfg.App.TypeaheadTimeout)
	}
	return nil
}
