package hook

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// readBytes copies n bytes starting at addr into a fresh slice. It is only
// safe to call against memory known to be mapped and readable; callers
// guard the unload-time case separately (guardedRestore in fault.go).
func readBytes(addr uintptr, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = *(*byte)(unsafe.Pointer(addr + uintptr(i)))
	}
	return out
}

// writeBytes copies src into memory starting at addr.
func writeBytes(addr uintptr, src []byte) {
	for i, b := range src {
		*(*byte)(unsafe.Pointer(addr + uintptr(i))) = b
	}
}

// withWritableExec changes the protection on [addr, addr+size) to
// PAGE_EXECUTE_READWRITE, runs fn, and restores the previous protection
// regardless of fn's outcome.
func withWritableExec(addr uintptr, size int, fn func() error) error {
	var oldProtect uint32
	if err := windows.VirtualProtect(addr, uintptr(size), windows.PAGE_EXECUTE_READWRITE, &oldProtect); err != nil {
		return err
	}
	ferr := fn()
	var restored uint32
	_ = windows.VirtualProtect(addr, uintptr(size), oldProtect, &restored)
	return ferr
}

// flushInstructionCache invalidates the instruction cache for the current
// process over [addr, addr+size) so that self-modified code is observed by
// subsequent fetches.
func flushInstructionCache(addr uintptr, size int) error {
	return windows.FlushInstructionCache(windows.CurrentProcess(), unsafe.Pointer(addr), uintptr(size))
}

// allocExecutable reserves and commits an RWX buffer of size bytes, used as
// a trampoline's backing store.
func allocExecutable(size int) (uintptr, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_EXECUTE_READWRITE)
	if err != nil {
		return 0, err
	}
	return addr, nil
}

// freeExecutable releases a buffer obtained from allocExecutable.
func freeExecutable(addr uintptr) error {
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
