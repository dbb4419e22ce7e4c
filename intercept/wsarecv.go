package intercept

import (
	"unsafe"

	"github.com/kenchoi777/steam-limiter/winapi"
)

// WSARecvDetour is the replacement entry point for ws2_32!WSARecv
// (SOCKET s, LPWSABUF lpBuffers, DWORD dwBufferCount,
//  LPDWORD lpNumberOfBytesRecvd, LPDWORD lpFlags,
//  LPWSAOVERLAPPED lpOverlapped,
//  LPWSAOVERLAPPED_COMPLETION_ROUTINE lpCompletionRoutine) -> int.
func WSARecvDetour(s, buffers, bufferCount, numberOfBytesRecvd, flags, overlapped, completionRoutine uintptr) uintptr {
	r := callThrough("wsarecv", s, buffers, bufferCount, numberOfBytesRecvd, flags, overlapped, completionRoutine)

	if overlapped != 0 || completionRoutine != 0 {
		// Overlapped call: only a call that completed synchronously
		// (return 0) with an overlapped structure supplied has a
		// completed-length to attribute; anything still pending is left
		// for WSAGetOverlappedResult, which today does not attribute.
		if r == 0 && overlapped != 0 {
			ov := (*winapi.WSAOverlapped)(unsafe.Pointer(overlapped))
			counter.Add(int64(ov.InternalHigh))
		}
		return r
	}

	// Non-overlapped call: attribute the transferred byte count unless
	// the call signaled an error or the caller only asked to peek.
	if int32(r) != int32(socketError) && numberOfBytesRecvd != 0 {
		n := *(*uint32)(unsafe.Pointer(numberOfBytesRecvd))
		var flagsOut uint32
		if flags != 0 {
			flagsOut = *(*uint32)(unsafe.Pointer(flags))
		}
		if flagsOut&winapi.MsgPeek == 0 {
			counter.Add(int64(n))
		}
	}
	return r
}

// WSAGetOverlappedResultDetour is the replacement entry point for
// ws2_32!WSAGetOverlappedResult. It forwards unchanged and performs no
// attribution: partial attribution here would double-count against the
// non-overlapped path in WSARecvDetour above, so this stays a pure
// pass-through until a future design pass reconciles the two.
func WSAGetOverlappedResultDetour(s, overlapped, transfer, wait, flagsOut uintptr) uintptr {
	return callThrough("wsagetoverlappedresult", s, overlapped, transfer, wait, flagsOut)
}
