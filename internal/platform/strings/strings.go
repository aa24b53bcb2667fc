// Package strings holds small string and slice helpers shared by the transport code
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// Split breaks a comma separated list into trimmed, non blank entries
func Split(s string) []string {
	var out []string
	for _, p := range std.Split(s, ",") {
		if p = std.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Deref returns *ps, or "" for nil
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}

// MustString panics with "<name> is required" when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount prefix to "/a/b" and panics on an empty or root-only prefix
func MustPrefix(s string) string {
	s = std.Trim(std.TrimSpace(s), "/ ")
	if s == "" {
		panic("mount prefix is required")
	}
	return "/" + s
}
