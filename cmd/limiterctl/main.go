// Command limiterctl is a host-side debugging harness: it is never
// injected into a process itself, it just exercises the rule engine
// against a candidate rule string so a rule change can be sanity-checked
// without attaching a debugger to the real target.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kenchoi777/steam-limiter/rules"
)

func main() {
	args := parseArgs(os.Args[1:])

	ruleString := args.get("rules")
	if ruleString == "" {
		fmt.Fprintln(os.Stderr, "usage: limiterctl -rules <rule;rule;...> [-addr host:port | -name host]")
		os.Exit(1)
	}

	rs := rules.NewRuleSet()
	if err := rs.Install(ruleString); err != nil {
		fmt.Fprintf(os.Stderr, "rule parse failed: %v\n", err)
		os.Exit(1)
	}

	if addr := args.get("addr"); addr != "" {
		a, port, err := splitHostPort(addr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad -addr: %v\n", err)
			os.Exit(1)
		}
		printDecision(rs.MatchConnect(a, port))
		return
	}

	if name := args.get("name"); name != "" {
		printDecision(rs.MatchName(name))
		return
	}

	fmt.Fprintln(os.Stderr, "nothing to evaluate: pass -addr or -name")
	os.Exit(1)
}

func printDecision(d rules.Decision) {
	if !d.Matched {
		fmt.Println("no rule matched (passthrough)")
		return
	}
	switch d.Action {
	case rules.ActionPassthrough:
		fmt.Println("matched: passthrough")
	case rules.ActionDeny:
		fmt.Println("matched: deny")
	case rules.ActionRewrite:
		fmt.Printf("matched: rewrite -> %d.%d.%d.%d", d.ReplAddr[0], d.ReplAddr[1], d.ReplAddr[2], d.ReplAddr[3])
		if d.HasReplPort {
			fmt.Printf(":%d", d.ReplPort)
		}
		fmt.Println()
	default:
		fmt.Println("matched: unknown action")
	}
}

func splitHostPort(s string) ([4]byte, uint16, error) {
	var addr [4]byte
	host, portStr, ok := strings.Cut(s, ":")
	if !ok {
		return addr, 0, fmt.Errorf("expected host:port, got %q", s)
	}
	parts := strings.Split(host, ".")
	if len(parts) != 4 {
		return addr, 0, fmt.Errorf("expected dotted-quad address, got %q", host)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > 255 {
			return addr, 0, fmt.Errorf("bad octet %q", p)
		}
		addr[i] = byte(v)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return addr, 0, fmt.Errorf("bad port %q", portStr)
	}
	return addr, uint16(port), nil
}

// cliArgs is a deliberately minimal flag parser: this tool never ships,
// so it is not worth pulling in a flag-parsing dependency for it.
type cliArgs struct {
	flags map[string]string
}

func parseArgs(args []string) *cliArgs {
	a := &cliArgs{flags: make(map[string]string)}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) == 0 || arg[0] != '-' {
			continue
		}
		key := strings.TrimLeft(arg, "-")
		if eq := strings.IndexByte(key, '='); eq >= 0 {
			a.flags[key[:eq]] = key[eq+1:]
			continue
		}
		if i+1 < len(args) && (len(args[i+1]) == 0 || args[i+1][0] != '-') {
			a.flags[key] = args[i+1]
			i++
			continue
		}
		a.flags[key] = "true"
	}
	return a
}

func (a *cliArgs) get(key string) string {
	return a.flags[key]
}
