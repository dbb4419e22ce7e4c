package intercept

import "syscall"

var (
	ws2_32          = syscall.NewLazyDLL("ws2_32.dll")
	wsaSetLastError = ws2_32.NewProc("WSASetLastError")
)

// setLastError sets the per-thread Winsock last-error value the caller
// will observe via WSAGetLastError, exactly as the real entry point would
// have set it had it failed for that reason.
func setLastError(code int32) {
	wsaSetLastError.Call(uintptr(code))
}

// callThrough invokes the resume address for name with the given
// arguments and returns its raw return value, the same calling
// convention-preserving call-through the design notes require.
func callThrough(name string, args ...uintptr) uintptr {
	r1, _, _ := syscall.SyscallN(resumeOrPanic(name), args...)
	return r1
}
