// Package rules implements the filter/rewrite decision engine: an ordered
// list of match -> action rules parsed from a user-supplied string and
// consulted on every intercepted connect/gethostbyname call.
package rules

import (
	"strings"
	"sync/atomic"

	"github.com/kenchoi777/steam-limiter/limerrors"
)

// DefaultSteamCDNPort is the usual Steam download port. MatchConnect does
// not consult it: steam-limiter's built-in catch-all targets Steam's content
// distribution hostnames regardless of port, but callers that want a
// numeric-address rule scoped to "the usual Steam download port" can rely
// on this constant instead of hard-coding it.
const DefaultSteamCDNPort uint16 = 27030

// builtinCatchAll is appended by Install so uncustomized DNS for Steam's
// CDN family is dropped by default; a user rule earlier in the list can
// still override it since the first match wins.
const builtinCatchAll = "content?.steampowered.com="

type ruleTable struct {
	rules []Rule
}

// RuleSet holds the live, ordered rule list. Readers (the detour bodies)
// see either the whole of the previous set or the whole of the next one:
// rebuilds publish a new immutable table with a single atomic pointer
// swap rather than mutating in place.
type RuleSet struct {
	table atomic.Pointer[ruleTable]
}

// NewRuleSet returns an empty rule set that denies nothing and rewrites
// nothing (an empty string is a valid, all-permissive rule set).
func NewRuleSet() *RuleSet {
	rs := &RuleSet{}
	rs.table.Store(&ruleTable{})
	return rs
}

// Install replaces the current rules with those parsed from s, then
// appends the built-in Steam-CDN catch-all. It never merges with the
// rules already in place — see Append for that.
func (rs *RuleSet) Install(s string) error {
	parsed, err := parseAll(s)
	if err != nil {
		return err
	}
	catchAll, err := ParseRule(builtinCatchAll)
	if err != nil {
		// The built-in literal is a compile-time constant; a parse
		// failure here is a programming error, not a user input error.
		panic(err)
	}
	parsed = append(parsed, catchAll)
	rs.table.Store(&ruleTable{rules: parsed})
	return nil
}

// Append parses s and adds the resulting rules after the current set,
// without replacing anything already installed.
func (rs *RuleSet) Append(s string) error {
	parsed, err := parseAll(s)
	if err != nil {
		return err
	}
	old := rs.table.Load()
	next := make([]Rule, 0, len(old.rules)+len(parsed))
	next = append(next, old.rules...)
	next = append(next, parsed...)
	rs.table.Store(&ruleTable{rules: next})
	return nil
}

func parseAll(s string) ([]Rule, error) {
	var out []Rule
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, tok := range strings.Split(s, ";") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		rule, err := ParseRule(tok)
		if err != nil {
			return nil, limerrors.WrapTarget(err, limerrors.KindParse, "install", tok)
		}
		out = append(out, rule)
	}
	return out, nil
}

// Decision is the outcome of consulting the rule set.
type Decision struct {
	Matched     bool
	Action      Action
	ReplAddr    [4]byte
	ReplPort    uint16
	HasReplPort bool
}

// MatchConnect consults the rules in order against a connect-time
// destination address and port. The first rule whose predicate holds
// wins; passthrough is a match and stops further search.
func (rs *RuleSet) MatchConnect(addr [4]byte, port uint16) Decision {
	table := rs.table.Load()
	for _, r := range table.rules {
		if !r.HasNet {
			continue
		}
		if !netMatches(r, addr) {
			continue
		}
		if r.HasPort && r.Port != port {
			continue
		}
		return toDecision(r)
	}
	return Decision{}
}

// MatchName consults the rules in order against a DNS-style host name
// lookup.
func (rs *RuleSet) MatchName(name string) Decision {
	table := rs.table.Load()
	for _, r := range table.rules {
		if !r.HasHost {
			continue
		}
		if !MatchGlob(r.HostGlob, name) {
			continue
		}
		return toDecision(r)
	}
	return Decision{}
}

func netMatches(r Rule, addr [4]byte) bool {
	for i := 0; i < 4; i++ {
		if addr[i]&r.NetMask[i] != r.NetAddr[i]&r.NetMask[i] {
			return false
		}
	}
	return true
}

func toDecision(r Rule) Decision {
	return Decision{
		Matched:     true,
		Action:      r.Action,
		ReplAddr:    r.ReplAddr,
		ReplPort:    r.ReplPort,
		HasReplPort: r.HasReplPort,
	}
}
