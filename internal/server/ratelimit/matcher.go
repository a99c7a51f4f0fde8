package ratelimit

import (
	"strings"
)

// MatchEndpoint returns the first rule matching path and method, or nil.
// Exact and wildcard patterns are tried before prefix patterns.
func MatchEndpoint(path, method string, rules []Rule) *Rule {
	for i := range rules {
		r := &rules[i]
		if r.Method == method && !strings.HasSuffix(r.Pattern, "/") && matchSegments(r.Pattern, path) {
			return r
		}
	}

	for i := range rules {
		r := &rules[i]
		if r.Method == method && strings.HasSuffix(r.Pattern, "/") && strings.HasPrefix(path, r.Pattern) {
			return r
		}
	}

	return nil
}

func matchSegments(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if ps[i] != "*" && ps[i] != xs[i] {
			return false
		}
	}
	return true
}
