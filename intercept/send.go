package intercept

// SendDetour is the optional, best-effort send-side counterpart to
// RecvDetour (SOCKET s, const char *buf, int len, int flags) -> int. It is
// not one of the six mandatory entry points: limiter.Install treats its
// install failure as non-fatal, since it only enriches the bandwidth
// model symmetrically and is never consulted by the rule set.
func SendDetour(s, buf, length, flags uintptr) uintptr {
	r := callThrough("send", s, buf, length, flags)
	n := int32(r)
	if n >= 0 {
		counter.AddSent(int64(n))
	}
	return r
}
