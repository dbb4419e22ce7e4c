package rules

import "unicode"

// MatchGlob matches subject against a shell-style pattern: '?' matches
// exactly one character, '*' matches a possibly-empty run of characters,
// anything else matches itself case-insensitively. Matching is full-string
// (no anchors beyond that) and uses recursive backtracking: each '*' retries
// the rest of the pattern at every remaining offset of the subject, so the
// worst case is not bounded by O(n*m) and grows with the number of '*'s in
// the pattern. It is one of the two pieces of hard engineering this module
// is built to exercise by hand, so it is not delegated to a third-party
// glob package.
func MatchGlob(pattern, subject string) bool {
	p := []rune(pattern)
	s := []rune(subject)
	return matchHere(p, s)
}

func matchHere(p, s []rune) bool {
	// Fast path: walk literal/?/leading runs without recursion; recurse
	// only at '*', where backtracking is unavoidable.
	for len(p) > 0 {
		switch p[0] {
		case '*':
			// A '*' matches zero or more characters: try consuming 0, 1, 2, ...
			// characters of s until the remainder of the pattern matches.
			for i := 0; i <= len(s); i++ {
				if matchHere(p[1:], s[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(s) == 0 {
				return false
			}
			p = p[1:]
			s = s[1:]
		default:
			if len(s) == 0 || !equalFold(p[0], s[0]) {
				return false
			}
			p = p[1:]
			s = s[1:]
		}
	}
	return len(s) == 0
}

func equalFold(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}
