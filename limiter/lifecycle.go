// Package limiter implements the two externally callable lifecycle
// operations — install and unload — that bring up and tear down the full
// set of hooks, plus the process-detach cleanup path. Everything below
// this package is pure Go and independently testable; main.go is the only
// place that crosses the cgo/ABI boundary.
package limiter

import (
	"errors"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/windows"

	"github.com/kenchoi777/steam-limiter/bandwidth"
	"github.com/kenchoi777/steam-limiter/hook"
	"github.com/kenchoi777/steam-limiter/intercept"
	"github.com/kenchoi777/steam-limiter/limerrors"
	"github.com/kenchoi777/steam-limiter/logging"
	"github.com/kenchoi777/steam-limiter/rules"
)

// Result codes returned across the ABI boundary, per spec.md §6.
const (
	ResultHookFailure int32 = -1 // all-ones sentinel
	ResultParseError  int32 = 0
	ResultSuccess     int32 = 1
)

const socketsLibrary = "ws2_32.dll"

// pollInterval is the coarse cadence install polls at while waiting for
// the target sockets library to appear in the process.
var pollInterval = time.Second

var (
	mu       sync.Mutex
	armed    bool
	pinned   windows.Handle
	registry = hook.NewRegistry()
	ruleSet  = rules.NewRuleSet()
	counter  = bandwidth.New()
)

func init() {
	intercept.Bind(registry, ruleSet, counter)
	configureLoggingFromEnv()
}

// configureLoggingFromEnv builds the package default logger from
// STEAM_LIMITER_LOG_LEVEL ("debug"/"info"/"warn"/"error") and
// STEAM_LIMITER_LOG_FORMAT ("text"/"json"), both optional; the injected
// DLL has no config file of its own, so environment variables set by the
// host process are the only configuration surface available at load time.
func configureLoggingFromEnv() {
	logging.SetDefault(logging.NewLogger(logging.Config{
		Level:  logging.ParseLevel(os.Getenv("STEAM_LIMITER_LOG_LEVEL")),
		Format: os.Getenv("STEAM_LIMITER_LOG_FORMAT"),
	}))
}

// Counter exposes the process-wide bandwidth counter for the (external)
// meter to read.
func Counter() *bandwidth.Counter { return counter }

// Install is the primary lifecycle entry point. If hooks are already
// armed, it rebinds the rule set in place and returns success immediately.
// Otherwise it blocks until ws2_32.dll is observable in the process,
// installs the rules, then installs all six hooks atomically.
func Install(ruleString string) int32 {
	mu.Lock()
	defer mu.Unlock()

	if armed {
		if err := ruleSet.Install(ruleString); err != nil {
			logging.Error("install: rule parse failed on rebind", "error", err)
			return ResultParseError
		}
		return ResultSuccess
	}

	waitForLibrary(socketsLibrary)

	if err := ruleSet.Install(ruleString); err != nil {
		logging.Error("install: rule parse failed", "error", err)
		return ResultParseError
	}

	if err := registry.InstallAll(targets()); err != nil {
		logging.WithHook(logging.Default(), failedHookName(err)).Error(
			"install: hook install failed", "error", err)
		return ResultHookFailure
	}

	installOptionalSendHook()

	pin()
	armed = true
	logging.Info("install: armed")
	return ResultSuccess
}

// Unload drops the self-pin acquired by Install. It is a no-op if the
// module was never pinned.
func Unload() int32 {
	mu.Lock()
	defer mu.Unlock()

	if !armed {
		return 0
	}
	registry.UninstallAll()
	unpin()
	armed = false
	return 1
}

// OnProcessDetach is called from the DLL_PROCESS_DETACH path. It unhooks
// everything unconditionally, tolerating a target library that has
// already been torn down (Record.Unhook absorbs that fault itself).
func OnProcessDetach() {
	mu.Lock()
	defer mu.Unlock()
	if armed {
		registry.UninstallAll()
		armed = false
	}
}

func waitForLibrary(name string) {
	for {
		h, err := windows.GetModuleHandle(name)
		if err == nil && h != 0 {
			return
		}
		time.Sleep(pollInterval)
	}
}

func targets() []hook.Target {
	return []hook.Target{
		{Name: "connect", Library: socketsLibrary, Symbol: "connect", Detour: callback(intercept.ConnectDetour)},
		{Name: "gethostbyname", Library: socketsLibrary, Symbol: "gethostbyname", Detour: callback(intercept.GetHostByNameDetour)},
		{Name: "recv", Library: socketsLibrary, Symbol: "recv", Detour: callback(intercept.RecvDetour)},
		{Name: "recvfrom", Library: socketsLibrary, Symbol: "recvfrom", Detour: callback(intercept.RecvFromDetour)},
		{Name: "wsarecv", Library: socketsLibrary, Symbol: "WSARecv", Detour: callback(intercept.WSARecvDetour)},
		{Name: "wsagetoverlappedresult", Library: socketsLibrary, Symbol: "WSAGetOverlappedResult", Detour: callback(intercept.WSAGetOverlappedResultDetour)},
	}
}

// installOptionalSendHook attempts to hook ws2_32!send, the supplemented
// send-side bandwidth tally. Unlike the six mandatory targets, failure
// here is logged and swallowed: it is not part of the spec's required
// entry-point set and must never fail the overall install.
func installOptionalSendHook() {
	target := hook.Target{Name: "send", Library: socketsLibrary, Symbol: "send", Detour: callback(intercept.SendDetour)}
	if err := registry.InstallAll([]hook.Target{target}); err != nil {
		logging.WithHook(logging.Default(), target.Name).Warn(
			"install: optional send hook unavailable", "error", err)
	}
}

func callback(fn interface{}) uintptr {
	return syscall.NewCallback(fn)
}

// failedHookName recovers the hook name InstallAll attached to its error
// (via limerrors.WrapTarget) so the failure log can be tagged with it.
func failedHookName(err error) string {
	var le *limerrors.Error
	if errors.As(err, &le) {
		return le.Target
	}
	return "unknown"
}
