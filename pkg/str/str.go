// Package str contains string utilities.
package str

import "strings"

// In returns true if string v is one of s strings.
func In(v string, s ...string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// CutAnyPrefix checks s against each prefix in order and, for the first
// one that matches, returns that prefix and the remainder of s.
// If no prefix matches, ok is false.
//
// Only the matched prefix is removed, so the remainder may itself
// contain the prefix's separator (e.g. "avg_response_time" cut by
// "avg_" yields "response_time").
func CutAnyPrefix(s string, prefixes ...string) (prefix, rest string, ok bool) {
	for _, p := range prefixes {
		if r, found := strings.CutPrefix(s, p); found {
			return p, r, true
		}
	}
	return "", s, false
}
