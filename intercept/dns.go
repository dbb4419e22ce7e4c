package intercept

import (
	"unsafe"

	"github.com/kenchoi777/steam-limiter/winapi"
)

// dnsResponse is the process-wide, mutable fabricated HOSTENT this module
// hands back for a rewritten gethostbyname lookup. It is reused on
// every call rather than allocated fresh, the same "last writer wins per
// process" trade-off the legacy gethostbyname API already has — upgrading
// to thread-local storage would not make any caller safer, since callers
// of the real API don't serialize against each other either.
type dnsResponse struct {
	hostent    winapi.HostEnt
	addr       [4]byte
	addrList   [2]uintptr // {&addr, nil}
	canonical  [16]byte   // stable placeholder canonical name, NUL-terminated
	aliasList  [1]uintptr // {nil}, empty alias list
}

var fabricated dnsResponse

func init() {
	copy(fabricated.canonical[:], "steam-limiter")
}

// buildFabricatedHostent fills in the process-wide HOSTENT for
// replacement and returns a pointer to it, ready to hand back across the
// ABI boundary as gethostbyname's return value.
func buildFabricatedHostent(addr [4]byte) uintptr {
	fabricated.addr = addr
	fabricated.addrList[0] = uintptr(unsafe.Pointer(&fabricated.addr))
	fabricated.addrList[1] = 0
	fabricated.aliasList[0] = 0

	fabricated.hostent = winapi.HostEnt{
		Name:     uintptr(unsafe.Pointer(&fabricated.canonical[0])),
		Aliases:  uintptr(unsafe.Pointer(&fabricated.aliasList[0])),
		AddrType: winapi.AddressFamilyINet,
		Length:   4,
		AddrList: uintptr(unsafe.Pointer(&fabricated.addrList[0])),
	}
	return uintptr(unsafe.Pointer(&fabricated.hostent))
}
