// Package intercept holds the detour bodies each patched ws2_32 entry
// point is redirected to. Every detour is a thin wrapper: it either
// consults the rule set (connect, gethostbyname) or tallies transferred
// bytes (the receive family) and then calls through to the resume address
// recorded for that hook.
package intercept

import (
	"github.com/kenchoi777/steam-limiter/bandwidth"
	"github.com/kenchoi777/steam-limiter/hook"
	"github.com/kenchoi777/steam-limiter/logging"
	"github.com/kenchoi777/steam-limiter/rules"
)

var (
	registry *hook.Registry
	ruleSet  *rules.RuleSet
	counter  *bandwidth.Counter
)

// Bind wires the shared registry, rule set, and bandwidth counter that the
// detour bodies consult. It must be called once, before any hook is
// armed, and is not itself safe for concurrent use (limiter calls it once
// from its package init, before any Install can run).
func Bind(r *hook.Registry, rs *rules.RuleSet, c *bandwidth.Counter) {
	registry = r
	ruleSet = rs
	counter = c
}

func resumeOrPanic(name string) uintptr {
	addr, ok := registry.Resume(name)
	if !ok {
		// A detour only ever runs after its own hook is armed, so a
		// missing resume address means Bind/InstallAll was not called in
		// the order the lifecycle guarantees. This is a programming
		// error, not a runtime condition callers need to recover from.
		logging.Error("intercept: resume address unavailable", "hook", name)
		panic("intercept: hook " + name + " is not armed")
	}
	return addr
}
