package testutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// ErrPaneUnavailable reports a capture against a pane that does not exist
// yet, or no longer exists.
var ErrPaneUnavailable = errors.New("tmux pane unavailable")

// SessionName is the session every Server starts with.
const SessionName = "flyout-test"

// Server is a private tmux server for one test. It is stopped and its logs
// are checked for crashes when the test finishes.
type Server struct {
	Socket string
	Dir    string
	t      *testing.T
}

// RequireTmux skips the calling test when tmux is not on PATH.
func RequireTmux(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tmux"); err != nil {
		t.Skip("skipping: tmux binary not available")
	}
}

// NewServer starts a verbose tmux server on a socket under a fresh
// directory. The server log lands in that directory.
func NewServer(t *testing.T) *Server {
	t.Helper()
	RequireTmux(t)
	// Sockets under t.TempDir() can exceed the sun_path limit.
	dir, err := os.MkdirTemp("/tmp", "flyout-*")
	if err != nil {
		t.Fatalf("tmux temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	s := &Server{Socket: filepath.Join(dir, "tmux.sock"), Dir: dir, t: t}
	start := s.Command("-f", "/dev/null", "-vv", "new-session", "-d", "-s", SessionName, "sleep", "600")
	start.Dir = dir
	if err := start.Run(); err != nil {
		t.Skipf("skipping: tmux server did not start: %v", err)
	}
	t.Cleanup(s.stop)
	t.Cleanup(s.checkLogs)
	return s
}

// Command builds a tmux invocation against the server. Inherited TMUX
// variables are cleared so the command never reaches the caller's server.
func (s *Server) Command(args ...string) *exec.Cmd {
	cmd := exec.Command("tmux", append([]string{"-S", s.Socket}, args...)...)
	env := make([]string, 0, len(os.Environ())+2)
	for _, entry := range os.Environ() {
		if !strings.HasPrefix(entry, "TMUX=") {
			env = append(env, entry)
		}
	}
	cmd.Env = append(env, "TMUX=", "TMUX_TMPDIR="+s.Dir)
	return cmd
}

// Output runs a tmux command and returns its trimmed stdout.
func (s *Server) Output(args ...string) (string, error) {
	out, err := s.Command(args...).Output()
	return strings.TrimSpace(string(out)), err
}

// Capture returns the visible text of a pane.
func (s *Server) Capture(target string) (string, error) {
	out, err := s.Command("capture-pane", "-p", "-t", target).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", ErrPaneUnavailable
		}
		return "", fmt.Errorf("capture-pane %s: %w", target, err)
	}
	return string(out), nil
}

// stop kills the server over a control-mode client, falling back to the
// tmux binary.
func (s *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := gotmux.NewTmuxWithOptions(s.Socket, gotmux.WithContext(ctx))
	if err == nil {
		defer client.Close()
		err = client.KillServer()
	}
	if err != nil {
		s.t.Logf("control-mode kill on %s: %v", s.Socket, err)
		_ = s.Command("kill-server").Run()
	}
}

// checkLogs fails the test when a server log records a crash.
func (s *Server) checkLogs() {
	logs, _ := filepath.Glob(filepath.Join(s.Dir, "tmux-server-*.log"))
	for _, path := range logs {
		content, err := os.ReadFile(path)
		if err != nil {
			s.t.Errorf("read %s: %v", path, err)
			continue
		}
		if bytes.Contains(content, []byte("server exited unexpectedly")) {
			s.t.Errorf("tmux server crashed; see %s", path)
		}
	}
}
