package limerrors

// Sentinel errors for the install/attach/detach lifecycle.
var (
	// ErrNilTarget indicates attach was called with a null target address.
	ErrNilTarget = &Error{Kind: KindPrologueShape, Op: "attach", Target: "target is nil"}

	// ErrUnsupportedPrologue indicates the target's first bytes are neither
	// the hot-patch two-byte no-op nor a one-byte push-imm8.
	ErrUnsupportedPrologue = &Error{Kind: KindPrologueShape, Op: "attach", Target: "unrecognized prologue"}

	// ErrSymbolNotFound indicates GetProcAddress-equivalent resolution failed.
	ErrSymbolNotFound = &Error{Kind: KindResolution, Op: "attach-by-name", Target: "symbol not found"}

	// ErrLibraryNotLoaded indicates the target library is not yet loaded
	// into the process.
	ErrLibraryNotLoaded = &Error{Kind: KindResolution, Op: "attach-by-name", Target: "library not loaded"}

	// ErrProtectionChange indicates VirtualProtect refused to make the
	// target bytes writable/executable.
	ErrProtectionChange = &Error{Kind: KindProtection, Op: "attach", Target: "VirtualProtect failed"}

	// ErrNotArmed indicates unhook was called (or call-through attempted) on
	// a record that was never successfully attached.
	ErrNotArmed = &Error{Kind: KindFault, Op: "unhook", Target: "record not armed"}
)
