package intent

import "testing"

func TestPointerEngageThenFocusOpens(t *testing.T) {
	d := New("share")
	if !d.PointerMove(true, false) {
		t.Fatalf("expected first move to engage")
	}
	if d.PointerMove(true, false) {
		t.Fatalf("expected subsequent moves ignored while engaged")
	}
	req, ok := d.Focus()
	if !ok {
		t.Fatalf("expected focus while engaged to request open")
	}
	if req.Source != SourcePointer || req.FocusFirst {
		t.Fatalf("expected pointer request without first-item focus, got %#v", req)
	}
	if d.State() != Opening {
		t.Fatalf("expected opening state, got %s", d.State())
	}
	d.Settle()
	if d.State() != Idle {
		t.Fatalf("expected idle after settle, got %s", d.State())
	}
}

func TestPointerLeaveBeforeFocusNeverOpens(t *testing.T) {
	d := New("share")
	d.PointerMove(true, false)
	d.PointerLeave()
	if d.State() != Idle {
		t.Fatalf("expected idle after leave, got %s", d.State())
	}
	if _, ok := d.Focus(); ok {
		t.Fatalf("expected late focus not to open")
	}
}

func TestPointerMoveIgnoredWhenDisabledOrOpen(t *testing.T) {
	d := New("share")
	if d.PointerMove(false, false) {
		t.Fatalf("expected disabled trigger not to engage")
	}
	if d.PointerMove(true, true) {
		t.Fatalf("expected open trigger not to engage")
	}
	if _, ok := d.Focus(); ok {
		t.Fatalf("expected focus without engagement not to open")
	}
}

func TestKeyboardActivationOpensImmediately(t *testing.T) {
	d := New("share")
	req := d.Activate()
	if req.Source != SourceKeyboard || !req.FocusFirst {
		t.Fatalf("expected keyboard request focusing first item, got %#v", req)
	}
	if d.State() != Opening {
		t.Fatalf("expected opening state, got %s", d.State())
	}
}

func TestResetCancelsEngagement(t *testing.T) {
	d := New("share")
	d.PointerMove(true, false)
	d.Reset()
	if d.Engaged() {
		t.Fatalf("expected reset to drop engagement")
	}
}

func TestClickOpensWithoutFirstItemFocus(t *testing.T) {
	d := New("share")
	d.PointerMove(true, false)
	req := d.Click()
	if req.Source != SourcePointer || req.FocusFirst {
		t.Fatalf("expected pointer request, got %#v", req)
	}
	if d.State() != Opening {
		t.Fatalf("expected opening, got %s", d.State())
	}
}
