package tmux

import (
	"testing"

	"github.com/atomicstack/flyout/internal/testutil"
)

func TestRunAgainstServer(t *testing.T) {
	srv := testutil.NewServer(t)
	t.Setenv("TMUX_TMPDIR", srv.Dir)

	if _, err := Run(srv.Socket, "set-option", "-g", "mouse", "on"); err != nil {
		t.Skipf("skipping: control-mode command failed (%v)", err)
	}
	out, err := Run(srv.Socket, "show-options", "-gv", "mouse")
	if err != nil {
		t.Fatalf("show-options: %v", err)
	}
	if out != "on" {
		t.Fatalf("expected mouse on, got %q", out)
	}
}
