package command

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/flyout/internal/menu"
	"github.com/atomicstack/flyout/internal/menudef"
)

type recorder struct {
	tmux    [][]string
	socket  string
	copied  []string
	tmuxErr error
	copyErr error
}

func (r *recorder) bus() *Bus {
	return New("/tmp/sock").WithRunners(
		func(socket string, args ...string) (string, error) {
			r.socket = socket
			r.tmux = append(r.tmux, args)
			return "", r.tmuxErr
		},
		func(text string) error {
			r.copied = append(r.copied, text)
			return r.copyErr
		},
	)
}

func TestExecuteRunsExpandedTmuxCommand(t *testing.T) {
	rec := &recorder{}
	req := Request{
		ID:     "tmux/item/status",
		Action: menudef.Action{Tmux: []string{"set-option", "-g", "status", "{state}"}},
		Item:   menu.Item{ID: "status", Kind: menu.KindCheckbox, Checked: menu.Checked},
	}
	msg := rec.bus().Execute(req)()
	res, ok := msg.(Result)
	if !ok {
		t.Fatalf("expected Result, got %T", msg)
	}
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	want := [][]string{{"set-option", "-g", "status", "on"}}
	if !reflect.DeepEqual(rec.tmux, want) || rec.socket != "/tmp/sock" {
		t.Fatalf("expected %v on /tmp/sock, got %v on %q", want, rec.tmux, rec.socket)
	}
	if !strings.Contains(res.Info, "set-option -g status on") {
		t.Fatalf("unexpected info %q", res.Info)
	}
}

func TestExecuteCopies(t *testing.T) {
	rec := &recorder{}
	req := Request{ID: "x", Action: menudef.Action{Copy: "tmux attach"}}
	res := rec.bus().Execute(req)().(Result)
	if res.Err != nil || len(rec.copied) != 1 || rec.copied[0] != "tmux attach" {
		t.Fatalf("expected clipboard write, got %v (err %v)", rec.copied, res.Err)
	}
	if len(rec.tmux) != 0 {
		t.Fatalf("expected no tmux command")
	}
}

func TestExecuteJoinsErrors(t *testing.T) {
	tmuxErr := errors.New("no server")
	copyErr := errors.New("no clipboard")
	rec := &recorder{tmuxErr: tmuxErr, copyErr: copyErr}
	req := Request{ID: "x", Action: menudef.Action{Tmux: []string{"detach-client"}, Copy: "y"}}
	res := rec.bus().Execute(req)().(Result)
	if !errors.Is(res.Err, tmuxErr) || !errors.Is(res.Err, copyErr) {
		t.Fatalf("expected both errors, got %v", res.Err)
	}
}

func TestExecuteWithoutActionSelects(t *testing.T) {
	rec := &recorder{}
	res := rec.bus().Execute(Request{ID: "edit/item/undo"})().(Result)
	if res.Err != nil || res.Info != "Selected edit/item/undo" {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(rec.tmux) != 0 || len(rec.copied) != 0 {
		t.Fatalf("expected no side effects")
	}
}
