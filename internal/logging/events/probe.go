package events

import "github.com/atomicstack/flyout/internal/logging"

type ProbeTracer struct{}

var Probe = ProbeTracer{}

func (ProbeTracer) Error(target string, err error) {
	if err == nil {
		return
	}
	logging.Trace("probe.error", map[string]interface{}{"target": target, "error": err.Error()})
}

func (ProbeTracer) Apply(target string, checked int) {
	logging.Trace("probe.apply", map[string]interface{}{"target": target, "checked": checked})
}
