// Package ui contains the Bubble Tea program that hosts a menubar or popup
// menu in the terminal. The engine owns every menu decision; this package
// only translates terminal input into engine events and renders the engine's
// snapshots.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Key presses are mapped through bubbles/key bindings (keymap.go) and
//     delivered to the engine.Bar. Printable runes feed typeahead.
//   - Mouse events are resolved to engine targets with bubblezone (mouse.go).
//     Motion becomes pointer move/leave, presses become pointer-downs that
//     the dismissal arbiter settles first, releases select items.
//   - After every input the model returns a flushMsg command. Handling it runs
//     the engine's deferred work, which is where submenu layers are installed.
//
// Host collaborators:
//   - anchor (anchor.go) places each level against its trigger row and
//     refuses until the viewport size is known, deferring the mount.
//   - scrollLock swallows wheel events outside the menus while a modal root
//     is open. The Model itself is the focus trap and marks the header.
//
// Items that declare a probe follow live tmux state. A backend.Watcher polls
// the probes and its events arrive as backendEventMsg, which the dispatcher
// in internal/data/dispatcher applies to the engine (backend.go).
//
// Actions run through internal/ui/command. A successful action that left the
// stack closed quits the program, as a popup should.
package ui
