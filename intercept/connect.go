package intercept

import (
	"unsafe"

	"github.com/kenchoi777/steam-limiter/rules"
	"github.com/kenchoi777/steam-limiter/winapi"
)

const socketError = ^uintptr(0) // SOCKET_ERROR as a uintptr return value

// ConnectDetour is the replacement entry point for ws2_32!connect. It is
// registered with syscall.NewCallback and must therefore take only
// uintptr-sized arguments, matching connect's native (SOCKET, const
// sockaddr*, int) signature.
func ConnectDetour(s uintptr, name uintptr, namelen uintptr) uintptr {
	addr := (*winapi.SockAddrIn)(unsafe.Pointer(name))

	if addr.Family != winapi.AddressFamilyINet {
		return callThrough("connect", s, name, namelen)
	}

	hostPort := ntohs(addr.Port)
	decision := ruleSet.MatchConnect(addr.Addr, hostPort)
	if !decision.Matched || decision.Action == rules.ActionPassthrough {
		return callThrough("connect", s, name, namelen)
	}
	if decision.Action == rules.ActionDeny {
		setLastError(winapi.WSAECONNREFUSED)
		return socketError
	}

	// ActionRewrite: build a local copy so the caller's sockaddr buffer is
	// never mutated, per the "resume sees a copy" invariant.
	local := *addr
	local.Addr = decision.ReplAddr
	if decision.HasReplPort && decision.ReplPort != 0 {
		local.Port = htons(decision.ReplPort)
	}
	return callThrough("connect", s, uintptr(unsafe.Pointer(&local)), namelen)
}

func ntohs(v uint16) uint16 {
	return (v >> 8) | (v << 8)
}

func htons(v uint16) uint16 {
	return ntohs(v)
}
