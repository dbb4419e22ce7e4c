package intercept

import (
	"unsafe"

	"github.com/kenchoi777/steam-limiter/rules"
	"github.com/kenchoi777/steam-limiter/winapi"
)

// GetHostByNameDetour is the replacement entry point for
// ws2_32!gethostbyname (const char *name) -> struct hostent *.
func GetHostByNameDetour(name uintptr) uintptr {
	host := readCString(name)

	decision := ruleSet.MatchName(host)
	if !decision.Matched || decision.Action == rules.ActionPassthrough {
		return callThrough("gethostbyname", name)
	}
	if decision.Action == rules.ActionDeny {
		setLastError(winapi.WSAHOST_NOT_FOUND)
		return 0
	}
	return buildFabricatedHostent(decision.ReplAddr)
}

// readCString copies a NUL-terminated ANSI string out of process memory
// starting at addr.
func readCString(addr uintptr) string {
	if addr == 0 {
		return ""
	}
	var b []byte
	for i := 0; ; i++ {
		c := *(*byte)(unsafe.Pointer(addr + uintptr(i)))
		if c == 0 {
			break
		}
		b = append(b, c)
		if i > 1<<16 {
			break // defensive bound; real hostnames are far shorter
		}
	}
	return string(b)
}
