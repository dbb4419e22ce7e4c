// Package hook implements the runtime code-patching engine: it installs
// and withdraws inline hooks on functions already mapped into this
// process, using the narrow set of prologue shapes that Windows system
// DLLs expose for exactly this purpose.
package hook

import (
	"syscall"

	"github.com/kenchoi777/steam-limiter/limerrors"
	"github.com/kenchoi777/steam-limiter/logging"
)

// decodeMode is the x86asm decode mode for the architecture this module
// targets. 32 covers the x86 build; a 64-bit build would use 64, but cross-
// architecture relocation is explicitly out of scope (spec.md Non-goals).
const decodeMode = 32

// Record is one armed or disarmed hook. It owns the bytes it overwrote at
// install time, the trampoline it may have allocated, and the resume
// address detour bodies must call through to reach the original function.
//
// A Record is armed iff resume is non-zero; arming and disarming are its
// only state transitions, and callers are responsible for serializing
// attach/unhook against each other (see Registry).
type Record struct {
	Name string

	target uintptr
	resume uintptr
	detour uintptr

	saved [patchWindow]byte
	tramp *trampoline

	armed bool
}

// NewRecord creates a disarmed record for the given logical name.
func NewRecord(name string) *Record {
	return &Record{Name: name}
}

// Armed reports whether the record currently has a live patch installed.
func (r *Record) Armed() bool { return r.armed }

// Resume returns the address a detour must jump to in order to run the
// original function's behavior. It is only valid while Armed.
func (r *Record) Resume() uintptr { return r.resume }

// Attach installs a hook redirecting target to detour. On any failure the
// record is left disarmed and no bytes remain modified.
func (r *Record) Attach(target, detour uintptr) error {
	if target == 0 {
		return limerrors.ErrNilTarget
	}
	head := readBytes(target, 8)
	shape, patchSize, err := classify(head, decodeMode)
	if err != nil {
		return limerrors.WrapTarget(err, limerrors.KindPrologueShape, "attach", r.Name)
	}
	if shape == shapeUnknown {
		return limerrors.ErrUnsupportedPrologue
	}

	saved := readBytes(target-longJumpOff, patchWindow)

	var resume uintptr
	var tramp *trampoline
	switch shape {
	case shapeHotPatch:
		resume = target + uintptr(patchSize)
	case shapePushImm8:
		tramp, err = newTrampoline()
		if err != nil {
			return limerrors.WrapTarget(err, limerrors.KindProtection, "attach", r.Name)
		}
		tramp.write(head[:patchSize])
		jmp := longJump(tramp.addr+uintptr(patchSize), target+uintptr(patchSize))
		tramp.writeAt(patchSize, jmp)
		if err := flushInstructionCache(tramp.addr, tramp.size); err != nil {
			tramp.free()
			return limerrors.WrapTarget(err, limerrors.KindProtection, "attach", r.Name)
		}
		resume = tramp.addr
	}

	writeErr := withWritableExec(target-longJumpOff, patchWindow, func() error {
		// The long jump must land before the short jump becomes visible:
		// an in-flight call that reads the short jump first must find a
		// complete, valid long jump already sitting at target-5.
		writeBytes(target-longJumpOff, longJump(target-longJumpOff, detour))
		writeBytes(target, shortJumpBack5())
		return nil
	})
	if writeErr != nil {
		if tramp != nil {
			tramp.free()
		}
		return limerrors.WrapTarget(writeErr, limerrors.KindProtection, "attach", r.Name)
	}
	if err := flushInstructionCache(target-longJumpOff, patchWindow); err != nil {
		guardedRestore(target-longJumpOff, saved)
		if tramp != nil {
			tramp.free()
		}
		return limerrors.WrapTarget(err, limerrors.KindProtection, "attach", r.Name)
	}

	copy(r.saved[:], saved)
	r.target = target
	r.detour = detour
	r.resume = resume
	r.tramp = tramp
	r.armed = true

	logging.WithTarget(logging.WithHook(logging.Default(), r.Name), target).Debug(
		"hook: armed", "resume", resume)
	return nil
}

// AttachByName resolves symbol in library and attaches detour to it.
func (r *Record) AttachByName(detour uintptr, library, symbol string) error {
	dll := syscall.NewLazyDLL(library)
	proc := dll.NewProc(symbol)
	if err := proc.Find(); err != nil {
		return limerrors.WrapTarget(err, limerrors.KindResolution, "attach-by-name", library+"!"+symbol)
	}
	return r.Attach(proc.Addr(), detour)
}

// Unhook reverts the patch, restoring the exact bytes saved at Attach time.
// It is a no-op if the record is disarmed. The restore is best-effort: if
// the backing library has already been unloaded, the write is guarded and
// simply marked disarmed rather than propagating a fault.
func (r *Record) Unhook() {
	if !r.armed {
		return
	}
	logging.WithTarget(logging.WithHook(logging.Default(), r.Name), r.target).Debug("hook: unhooked")

	guardedRestore(r.target-longJumpOff, r.saved[:])
	if r.tramp != nil {
		_ = r.tramp.free()
		r.tramp = nil
	}
	r.resume = 0
	r.armed = false
}

// Close is equivalent to Unhook, for callers that want a uniform
// io.Closer-shaped cleanup path.
func (r *Record) Close() error {
	r.Unhook()
	return nil
}
