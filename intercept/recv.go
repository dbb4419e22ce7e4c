package intercept

// RecvDetour is the replacement entry point for ws2_32!recv
// (SOCKET s, char *buf, int len, int flags) -> int.
func RecvDetour(s, buf, length, flags uintptr) uintptr {
	r := callThrough("recv", s, buf, length, flags)
	tallyIfNonNegative(r)
	return r
}

// RecvFromDetour is the replacement entry point for ws2_32!recvfrom
// (SOCKET s, char *buf, int len, int flags, sockaddr *from, int *fromlen) -> int.
func RecvFromDetour(s, buf, length, flags, from, fromlen uintptr) uintptr {
	r := callThrough("recvfrom", s, buf, length, flags, from, fromlen)
	tallyIfNonNegative(r)
	return r
}

// tallyIfNonNegative adds r to the bandwidth counter when r is a
// non-negative transferred-byte count; the SOCKET_ERROR sentinel
// (-1, all bits set as a 32-bit value) contributes nothing.
func tallyIfNonNegative(r uintptr) {
	n := int32(r)
	if n >= 0 {
		counter.Add(int64(n))
	}
}
