package limiter

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/kenchoi777/steam-limiter/winapi"
)

// anchor is an address inside this module's own image (a package-level
// variable), used to ask
// GetModuleHandleEx which module that address belongs to.
func anchor() uintptr {
	return uintptr(unsafe.Pointer(&anchorMarker))
}

var anchorMarker byte

// pin acquires an extra load reference to this module against itself, so
// that the injecting process can release its own reference without the
// module actually unloading out from under its own armed hooks.
func pin() {
	var h windows.Handle
	addr := (*uint16)(unsafe.Pointer(anchor()))
	if err := windows.GetModuleHandleEx(winapi.GetModuleHandleExFlagFromAddress, addr, &h); err != nil {
		return
	}
	pinned = h
}

// unpin releases the reference pin acquired, completing once the caller
// also drops its own handle.
func unpin() {
	if pinned == 0 {
		return
	}
	_ = windows.FreeLibrary(pinned)
	pinned = 0
}
