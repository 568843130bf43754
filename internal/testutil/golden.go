package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// UpdateEnv names the variable that makes AssertGolden rewrite its file.
const UpdateEnv = "FLYOUT_UPDATE_GOLDEN"

// AssertGolden checks a rendered attribute dump or screen against
// testdata/<name> at the module root. With UpdateEnv set the file is
// written from got instead.
func AssertGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join(RepoRoot(t), "testdata", name)
	if os.Getenv(UpdateEnv) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("golden dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("write golden %s: %v", name, err)
		}
		return
	}
	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s (set %s=1 to create it): %v", name, UpdateEnv, err)
	}
	if diff := firstDiff(string(want), got); diff != "" {
		t.Fatalf("%s differs at %s\nwant:\n%s\ngot:\n%s", name, diff, want, got)
	}
}

// firstDiff describes the first line where want and got disagree, or
// returns "" when they are equal.
func firstDiff(want, got string) string {
	if want == got {
		return ""
	}
	wl := strings.Split(want, "\n")
	gl := strings.Split(got, "\n")
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g || i >= len(wl) || i >= len(gl) {
			return fmt.Sprintf("line %d: want %q, got %q", i+1, w, g)
		}
	}
	return "end of file"
}

// RepoRoot returns the flyout module root, found by walking up from the
// package directory a test runs in.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for start := dir; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		up := filepath.Dir(dir)
		if up == dir {
			t.Fatalf("no go.mod above %s", start)
		}
		dir = up
	}
}
