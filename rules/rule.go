package rules

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/kenchoi777/steam-limiter/limerrors"
)

// Action is what a matched rule tells the detour to do.
type Action int

const (
	// ActionPassthrough forwards the call unchanged. It is distinct from
	// "no rule matched": a passthrough rule still stops further search.
	ActionPassthrough Action = iota
	// ActionDeny fails the call with the sockets-layer error appropriate
	// to the call kind (connection refused / host not found).
	ActionDeny
	// ActionRewrite redirects the call to ReplAddr/ReplPort.
	ActionRewrite
)

// Rule is one parsed match -> action pair.
type Rule struct {
	HostGlob string
	HasHost  bool

	NetAddr [4]byte
	NetMask [4]byte
	HasNet  bool

	Port    uint16
	HasPort bool

	Action Action

	ReplAddr    [4]byte
	ReplPort    uint16
	HasReplPort bool
}

// String formats the rule's parsed fields for diagnostics.
func (r Rule) String() string {
	return fmt.Sprintf("Rule{host=%q net=%v/%v port=%v action=%v repl=%v:%v}",
		r.HostGlob, r.NetAddr, r.NetMask, r.Port, r.Action, r.ReplAddr, r.ReplPort)
}

// ParseRule parses one semicolon-delimited token of the rule grammar:
//
//	pattern[:port][=replacement[:port]]
func ParseRule(token string) (Rule, error) {
	var rule Rule

	matchPart, replPart, hasRepl := strings.Cut(token, "=")

	host, net4, mask, port, hasPort, err := parseMatchSide(matchPart)
	if err != nil {
		return Rule{}, limerrors.WrapTarget(err, limerrors.KindParse, "parse-rule", token)
	}
	rule.HostGlob = host
	rule.HasHost = host != ""
	if net4 != nil {
		rule.HasNet = true
		copy(rule.NetAddr[:], net4)
		copy(rule.NetMask[:], mask)
	}
	rule.Port = port
	rule.HasPort = hasPort

	if !hasRepl {
		rule.Action = ActionPassthrough
		return rule, nil
	}

	replAddrStr, replPortStr, hasReplPort := strings.Cut(replPart, ":")
	switch replAddrStr {
	case "":
		rule.Action = ActionDeny
	case "0.0.0.0":
		rule.Action = ActionPassthrough
	default:
		ip := net.ParseIP(replAddrStr)
		if ip == nil || ip.To4() == nil {
			return Rule{}, limerrors.New(limerrors.KindParse, "parse-rule", "invalid replacement address: "+replAddrStr)
		}
		rule.Action = ActionRewrite
		copy(rule.ReplAddr[:], ip.To4())
	}
	if hasReplPort && replPortStr != "" {
		p, err := strconv.ParseUint(replPortStr, 10, 16)
		if err != nil {
			return Rule{}, limerrors.WrapTarget(err, limerrors.KindParse, "parse-rule", "invalid replacement port")
		}
		rule.ReplPort = uint16(p)
		rule.HasReplPort = true
	}
	return rule, nil
}

// parseMatchSide splits "pattern[:port]" and classifies pattern as either a
// numeric IPv4 address (optionally with a /prefix mask) or a hostname glob.
func parseMatchSide(s string) (host string, addr, mask net.IP, port uint16, hasPort bool, err error) {
	pattern := s
	if idx := strings.LastIndex(s, ":"); idx >= 0 {
		// Only treat the suffix as a port if it's all digits; IPv6 is out
		// of scope (spec.md is IPv4-only), so any ':' left in an address
		// is always a port separator.
		maybePort := s[idx+1:]
		if maybePort != "" && isAllDigits(maybePort) {
			p, perr := strconv.ParseUint(maybePort, 10, 16)
			if perr != nil {
				return "", nil, nil, 0, false, perr
			}
			port = uint16(p)
			hasPort = true
			pattern = s[:idx]
		}
	}

	if pattern == "" {
		return "", nil, nil, 0, false, fmt.Errorf("empty match pattern")
	}

	netPart := pattern
	prefix := 32
	if idx := strings.IndexByte(pattern, '/'); idx >= 0 {
		netPart = pattern[:idx]
		p, perr := strconv.Atoi(pattern[idx+1:])
		if perr != nil || p < 0 || p > 32 {
			return "", nil, nil, 0, false, fmt.Errorf("invalid prefix length: %s", pattern[idx+1:])
		}
		prefix = p
	}

	if ip := net.ParseIP(netPart); ip != nil && ip.To4() != nil {
		m := net.CIDRMask(prefix, 32)
		masked := ip.To4().Mask(m)
		return "", masked, net.IP(m), port, hasPort, nil
	}

	return pattern, nil, nil, port, hasPort, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
