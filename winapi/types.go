// Package winapi holds the small slice of the Winsock/kernel32 ABI that the
// interception core needs: the wire structures the detour bodies read and
// fabricate, and the memory-protection/module-handle primitives the hook
// engine uses. golang.org/x/sys/windows already models the kernel32 half of
// this surface (VirtualProtect, module handles); the Winsock structures
// below (SOCKADDR_IN, HOSTENT, WSABUF, WSAOVERLAPPED) have no equivalent in
// that package because x/sys/windows intentionally stays out of ws2_32.
package winapi

// AddressFamilyINet is AF_INET.
const AddressFamilyINet = 2

// SockAddrIn mirrors Winsock's SOCKADDR_IN exactly, byte for byte, so it can
// be read from and written into a caller's buffer with unsafe.Pointer casts.
type SockAddrIn struct {
	Family uint16
	Port   uint16 // network byte order
	Addr   [4]byte
	Zero   [8]byte
}

// HostEnt mirrors Winsock's HOSTENT. All pointer fields are raw addresses
// (uintptr) rather than typed Go pointers because the structure is handed
// back across the cgo/ABI boundary to code that expects the native layout.
type HostEnt struct {
	Name     uintptr // char*
	Aliases  uintptr // char**
	AddrType int16
	Length   int16
	AddrList uintptr // char**
}

// WSABuf mirrors Winsock's WSABUF.
type WSABuf struct {
	Len uint32
	Buf uintptr
}

// WSAOverlapped mirrors Winsock's WSAOVERLAPPED (identical layout to the
// Win32 OVERLAPPED structure).
type WSAOverlapped struct {
	Internal     uintptr
	InternalHigh uintptr
	Offset       uint32
	OffsetHigh   uint32
	HEvent       uintptr
}

// Memory protection and allocation flags (kernel32), duplicated here by
// name for readability at call sites; values match golang.org/x/sys/windows.
const (
	MemCommit            = 0x00001000
	MemRelease           = 0x8000
	PageExecuteReadWrite = 0x40
	PageReadWrite        = 0x04

	// GetModuleHandleExFlagFromAddress tells GetModuleHandleEx to treat its
	// "module name" argument as an address inside the module instead of a
	// name, and — left unpaired with the UNCHANGED_REFCOUNT flag — to
	// increment that module's reference count. That increment is exactly
	// the "extra load reference" the install lifecycle pins itself with.
	GetModuleHandleExFlagFromAddress = 0x00000004
)

// Winsock error codes set via WSASetLastError, per spec.md's error-injection
// requirements for the connect and gethostbyname detours.
const (
	WSAECONNREFUSED   = 10061
	WSAHOST_NOT_FOUND = 11001
)

// SocketError is the sentinel returned by recv/recvfrom/WSARecv on failure.
const SocketError = ^uint32(0) // 0xFFFFFFFF, i.e. -1 as int32

// MSG_PEEK is the flags bit indicating the caller only wants to peek at
// pending data without consuming it (and therefore should not be attributed
// to the bandwidth counter).
const MsgPeek = 0x2
