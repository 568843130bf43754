// Package tmux runs the tmux commands bound to menu items over a control-mode
// connection.
package tmux

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// ErrEmptyCommand is returned when an item carries no tmux arguments.
var ErrEmptyCommand = errors.New("tmux: empty command")

type tmuxClient interface {
	Command(args ...string) (string, error)
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}

// Run executes one tmux command against the server at socketPath and returns
// its trimmed output.
func Run(socketPath string, args ...string) (string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return "", ErrEmptyCommand
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return "", fmt.Errorf("tmux connect: %w", err)
	}
	defer client.Close()
	out, err := client.Command(args...)
	if err != nil {
		return "", fmt.Errorf("tmux %s: %w", args[0], err)
	}
	return strings.TrimSpace(out), nil
}

// ResolveSocketPath picks the socket from the flag, FLYOUT_SOCKET, the
// enclosing $TMUX session or the per-user default, in that order.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("FLYOUT_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}
