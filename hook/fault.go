package hook

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// regionReadable reports whether the page(s) covering [addr, addr+size) are
// currently committed and not PAGE_NOACCESS. It is the Go-idiomatic stand-in
// for the structured-exception boundary the design notes call for around
// unhook's restore write: Go has no hardware SEH hook, so a VirtualQuery
// probe before the write plus a defer/recover around the write itself is
// the closest safe equivalent, and is treated as best-effort exactly like
// the guarded write it protects.
func regionReadable(addr uintptr, size int) bool {
	// Query both the first and the last byte, so a window that straddles a
	// page boundary has both of its pages checked.
	for _, a := range []uintptr{addr, addr + uintptr(size) - 1} {
		var mbi windows.MemoryBasicInformation
		if err := windows.VirtualQuery(a, &mbi, unsafe.Sizeof(mbi)); err != nil {
			return false
		}
		if mbi.State != windows.MEM_COMMIT || mbi.Protect == windows.PAGE_NOACCESS {
			return false
		}
	}
	return true
}

// guardedRestore writes saved back to addr, absorbing any fault raised
// because the backing library was unloaded between attach and unhook. It
// reports whether the restore was actually applied.
func guardedRestore(addr uintptr, saved []byte) (applied bool) {
	if !regionReadable(addr, len(saved)) {
		return false
	}
	defer func() {
		if recover() != nil {
			applied = false
		}
	}()
	err := withWritableExec(addr, len(saved), func() error {
		writeBytes(addr, saved)
		return nil
	})
	if err != nil {
		return false
	}
	_ = flushInstructionCache(addr, len(saved))
	return true
}
