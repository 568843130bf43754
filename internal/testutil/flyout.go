package testutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const pollInterval = 50 * time.Millisecond

// BuildBinary compiles the flyout command into a temporary directory.
func BuildBinary(t *testing.T) string {
	t.Helper()
	RequireTmux(t)
	tdir := t.TempDir()
	bin := filepath.Join(tdir, "flyout")
	cmd := exec.Command("go", "build", "-o", bin, "./")
	cmd.Dir = RepoRoot(t)
	cmd.Env = append(os.Environ(), "GOCACHE="+filepath.Join(tdir, ".gocache"))
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// Run is a flyout process started inside a tmux pane.
type Run struct {
	srv      *Server
	Pane     string
	ExitPath string
	OutPath  string
	LogPath  string
}

// LaunchFlyout starts bin in a new 80x24 session so its stdout and exit
// code land in files next to the log. The pane stays alive after exit.
func LaunchFlyout(t *testing.T, srv *Server, bin, session string, args ...string) *Run {
	t.Helper()
	dir := t.TempDir()
	run := &Run{
		srv:      srv,
		Pane:     session + ":0.0",
		ExitPath: filepath.Join(dir, "exit-code"),
		OutPath:  filepath.Join(dir, "stdout"),
		LogPath:  filepath.Join(dir, "flyout.log"),
	}
	script := "#!/bin/sh\n" +
		"\"$FLYOUT_BIN\" -socket \"$FLYOUT_TEST_SOCKET\" -width 80 -height 24 -log-file \"$FLYOUT_TEST_LOG\" \"$@\" > \"$FLYOUT_TEST_OUT\"\n" +
		"printf '%s' $? > \"$FLYOUT_TEST_EXIT\"\n" +
		"sleep 300\n"
	scriptPath := filepath.Join(dir, "run.sh")
	if err := os.WriteFile(scriptPath, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write launcher script: %v", err)
	}
	tmuxArgs := append([]string{"new-session", "-d", "-x", "80", "-y", "24", "-s", session, scriptPath}, args...)
	cmd := srv.Command(tmuxArgs...)
	cmd.Env = append(cmd.Env,
		"FLYOUT_BIN="+bin,
		"FLYOUT_TEST_SOCKET="+srv.Socket,
		"FLYOUT_TEST_EXIT="+run.ExitPath,
		"FLYOUT_TEST_OUT="+run.OutPath,
		"FLYOUT_TEST_LOG="+run.LogPath,
	)
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to launch binary: %v", err)
	}
	if err := srv.Command("has-session", "-t", session).Run(); err != nil {
		t.Skipf("skipping: unable to create tmux session: %v", err)
	}
	t.Cleanup(func() { _ = srv.Command("kill-session", "-t", session).Run() })
	return run
}

// SendKeys types keys into the pane, one tmux key name per argument.
func (r *Run) SendKeys(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if err := r.srv.Command("send-keys", "-t", r.Pane, key).Run(); err != nil {
			t.Fatalf("send-keys %s: %v", key, err)
		}
	}
}

// poll calls check until it reports done, returns an error, or ctx ends.
func poll(ctx context.Context, check func() (bool, error)) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		done, err := check()
		if err != nil || done {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func exitCode(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// WaitForRender polls the pane until it shows want. It fails when the
// process exits non-zero first.
func (r *Run) WaitForRender(t *testing.T, ctx context.Context, want string) string {
	t.Helper()
	var out string
	err := poll(ctx, func() (bool, error) {
		if code := exitCode(r.ExitPath); code != "" && code != "0" {
			return false, fmt.Errorf("flyout exited early with code %s", code)
		}
		pane, err := r.srv.Capture(r.Pane)
		if errors.Is(err, ErrPaneUnavailable) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		out = pane
		return strings.Contains(pane, want), nil
	})
	if err != nil {
		t.Fatalf("waiting for %q: %v\nlast capture:\n%s", want, err, out)
	}
	return out
}

// WaitForExit waits for the process to exit and returns its stdout.
func (r *Run) WaitForExit(t *testing.T, ctx context.Context) string {
	t.Helper()
	var code string
	err := poll(ctx, func() (bool, error) {
		code = exitCode(r.ExitPath)
		return code != "", nil
	})
	if err != nil {
		t.Fatalf("waiting for exit: %v", err)
	}
	if code != "0" {
		log, _ := os.ReadFile(r.LogPath)
		t.Fatalf("flyout exited with code %s\n%s", code, log)
	}
	out, err := os.ReadFile(r.OutPath)
	if err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	return string(out)
}
