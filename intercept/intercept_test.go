package intercept

import (
	"testing"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/kenchoi777/steam-limiter/bandwidth"
	"github.com/kenchoi777/steam-limiter/hook"
	"github.com/kenchoi777/steam-limiter/rules"
	"github.com/kenchoi777/steam-limiter/winapi"
)

func TestNtohsHtons_RoundTrip(t *testing.T) {
	v := uint16(0x1234)
	if got := ntohs(htons(v)); got != v {
		t.Errorf("ntohs(htons(%#x)) = %#x, want %#x", v, got, v)
	}
}

func TestNtohs_ByteOrder(t *testing.T) {
	// Port 80 in network byte order is 0x0050; ntohs should yield 80.
	if got := ntohs(0x5000); got != 80 {
		t.Errorf("ntohs(0x5000) = %d, want 80", got)
	}
}

func TestReadCString(t *testing.T) {
	data := append([]byte("hello\x00world"), 0)
	addr := uintptr(unsafe.Pointer(&data[0]))
	if got := readCString(addr); got != "hello" {
		t.Errorf("readCString() = %q, want %q", got, "hello")
	}
}

func TestReadCString_NilAddr(t *testing.T) {
	if got := readCString(0); got != "" {
		t.Errorf("readCString(0) = %q, want empty", got)
	}
}

func TestBuildFabricatedHostent(t *testing.T) {
	addr := [4]byte{10, 20, 30, 40}
	ptr := buildFabricatedHostent(addr)

	he := (*winapi.HostEnt)(unsafe.Pointer(ptr))
	if he.AddrType != winapi.AddressFamilyINet {
		t.Errorf("AddrType = %d, want %d", he.AddrType, winapi.AddressFamilyINet)
	}
	if he.Length != 4 {
		t.Errorf("Length = %d, want 4", he.Length)
	}

	addrList := (*[2]uintptr)(unsafe.Pointer(he.AddrList))
	gotAddr := (*[4]byte)(unsafe.Pointer(addrList[0]))
	if *gotAddr != addr {
		t.Errorf("fabricated address = %v, want %v", *gotAddr, addr)
	}
	if addrList[1] != 0 {
		t.Error("address list should be NULL-terminated")
	}
}

func TestBuildFabricatedHostent_ReusedAcrossCalls(t *testing.T) {
	first := buildFabricatedHostent([4]byte{1, 1, 1, 1})
	second := buildFabricatedHostent([4]byte{2, 2, 2, 2})
	if first != second {
		t.Error("buildFabricatedHostent should reuse the same process-wide HOSTENT")
	}
}

func TestConnectDetour_Deny(t *testing.T) {
	rs := rules.NewRuleSet()
	if err := rs.Install("10.0.0.5="); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	Bind(hook.NewRegistry(), rs, bandwidth.New())

	addr := winapi.SockAddrIn{
		Family: winapi.AddressFamilyINet,
		Port:   htons(443),
		Addr:   [4]byte{10, 0, 0, 5},
	}

	got := ConnectDetour(0, uintptr(unsafe.Pointer(&addr)), unsafe.Sizeof(addr))

	if got != socketError {
		t.Errorf("ConnectDetour() = %#x, want SOCKET_ERROR", got)
	}
	if errno := windows.GetLastError(); errno != windows.Errno(winapi.WSAECONNREFUSED) {
		t.Errorf("last error = %v, want WSAECONNREFUSED (%d)", errno, winapi.WSAECONNREFUSED)
	}
}

func TestConnectDetour_CatchAllVsPassthrough(t *testing.T) {
	// ConnectDetour calls through, rather than denying, when the rule set
	// reports no match. This checks that decision directly (the call-through
	// itself needs an armed hook): the catch-all only fires for the built-in
	// hostname pattern, never for an unrelated numeric address.
	rs := rules.NewRuleSet()
	if err := rs.Install(""); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	decision := rs.MatchConnect([4]byte{8, 8, 8, 8}, 443)
	if decision.Matched {
		t.Error("unrelated address should not match the hostname-only catch-all")
	}
}

func TestGetHostByNameDetour_Deny(t *testing.T) {
	rs := rules.NewRuleSet()
	if err := rs.Install("blocked.example="); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	Bind(hook.NewRegistry(), rs, bandwidth.New())

	name := append([]byte("blocked.example"), 0)

	got := GetHostByNameDetour(uintptr(unsafe.Pointer(&name[0])))

	if got != 0 {
		t.Errorf("GetHostByNameDetour() = %#x, want 0", got)
	}
	if errno := windows.GetLastError(); errno != windows.Errno(winapi.WSAHOST_NOT_FOUND) {
		t.Errorf("last error = %v, want WSAHOST_NOT_FOUND (%d)", errno, winapi.WSAHOST_NOT_FOUND)
	}
}

func TestTallyIfNonNegative(t *testing.T) {
	Bind(hook.NewRegistry(), rules.NewRuleSet(), bandwidth.New())

	tallyIfNonNegative(uintptr(100))
	total, _, _ := counter.Snapshot()
	if total != 100 {
		t.Errorf("counter total = %d, want 100", total)
	}

	tallyIfNonNegative(socketError) // -1, all bits set
	total2, _, _ := counter.Snapshot()
	if total2 != 100 {
		t.Errorf("counter total after SOCKET_ERROR = %d, want unchanged 100", total2)
	}
}
