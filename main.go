// Command steam-limiter is built with `go build -buildmode=c-shared` into
// the DLL that gets injected into a host process. This file is the only
// place that crosses the cgo/ABI boundary; everything else in the module
// is plain, independently testable Go.
package main

/*
#include <windows.h>

extern void goOnProcessDetach(void);

BOOL WINAPI DllMain(HINSTANCE hinst, DWORD reason, LPVOID reserved) {
	switch (reason) {
	case DLL_PROCESS_DETACH:
		goOnProcessDetach();
		break;
	}
	return TRUE;
}
*/
import "C"

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/kenchoi777/steam-limiter/limiter"
)

// Install is the exported entry point the injector (or the host process,
// once splicing is already underway) calls with a semicolon-separated
// rule string. Returns 1 on success or re-bind, 0 on a rule-parse
// failure, and the all-ones sentinel on a hook-install failure.
//
//export Install
func Install(ruleString *uint16, outBuf *uint16, outSize int32) int32 {
	rules := windows.UTF16PtrToString(ruleString)
	result := limiter.Install(rules)
	if outBuf != nil && outSize > 0 {
		// No diagnostic text is defined by the current contract; leave
		// the caller's buffer as an empty string rather than garbage.
		*(*uint16)(unsafe.Pointer(outBuf)) = 0
	}
	return result
}

// Unload drops the self-pin acquired by Install.
//
//export Unload
func Unload() int32 {
	return limiter.Unload()
}

//export goOnProcessDetach
func goOnProcessDetach() {
	limiter.OnProcessDetach()
}

func main() {}
