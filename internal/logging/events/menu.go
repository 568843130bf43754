package events

import "github.com/atomicstack/flyout/internal/logging"

type MenuTracer struct{}

type FocusTracer struct{}

type IntentTracer struct{}

type DismissTracer struct{}

type TypeaheadTracer struct{}

var (
	Menu      = MenuTracer{}
	Focus     = FocusTracer{}
	Intent    = IntentTracer{}
	Dismiss   = DismissTracer{}
	Typeahead = TypeaheadTracer{}
)

func (MenuTracer) Open(menuID string, depth int, keyboard bool) {
	logging.Trace("menu.open", map[string]interface{}{"menu": menuID, "depth": depth, "keyboard": keyboard})
}

func (MenuTracer) Close(menuID, cause string) {
	logging.Trace("menu.close", map[string]interface{}{"menu": menuID, "cause": cause})
}

func (MenuTracer) Mount(menuID, contentID string) {
	logging.Trace("menu.mount", map[string]interface{}{"menu": menuID, "content": contentID})
}

func (MenuTracer) Unmount(menuID string) {
	logging.Trace("menu.unmount", map[string]interface{}{"menu": menuID})
}

func (MenuTracer) Select(menuID, itemID string, prevented bool) {
	logging.Trace("menu.select", map[string]interface{}{"menu": menuID, "item": itemID, "prevented": prevented})
}

func (FocusTracer) Move(target string) {
	logging.Trace("focus.move", map[string]interface{}{"target": target})
}

func (FocusTracer) Leave(menuID, itemID string) {
	logging.Trace("focus.leave", map[string]interface{}{"menu": menuID, "item": itemID})
}

func (FocusTracer) Restore(menuID, target string) {
	logging.Trace("focus.restore", map[string]interface{}{"menu": menuID, "target": target})
}

func (FocusTracer) Refuse(target, holder string) {
	logging.Trace("focus.refuse", map[string]interface{}{"target": target, "holder": holder})
}

func (FocusTracer) Trap(scope string, trapped bool) {
	logging.Trace("focus.trap", map[string]interface{}{"scope": scope, "trapped": trapped})
}

func (IntentTracer) Transition(triggerID, from, to string) {
	logging.Trace("intent.transition", map[string]interface{}{"trigger": triggerID, "from": from, "to": to})
}

func (DismissTracer) Decision(layerID, event, decision string, permitted bool) {
	logging.Trace("dismiss.decision", map[string]interface{}{
		"layer":     layerID,
		"event":     event,
		"decision":  decision,
		"permitted": permitted,
	})
}

func (TypeaheadTracer) Match(menuID, search, itemID string) {
	logging.Trace("typeahead.match", map[string]interface{}{"menu": menuID, "search": search, "item": itemID})
}
