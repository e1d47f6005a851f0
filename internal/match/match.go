// Package match implements the two text-matching phases used by the search
// pipeline: a case-insensitive prefix match and a case-insensitive substring
// match. Both are exact and deterministic; there is no fuzzy or typo-tolerant
// mode. The substring phase is the orchestrator's fallback when the prefix
// phase finds nothing — this package only provides the predicates and the
// matching SQL LIKE patterns, it never decides which phase runs.
package match

import "strings"

// Prefix reports whether name starts with query, ignoring case.
// An empty query matches every name.
func Prefix(name, query string) bool {
	return strings.HasPrefix(strings.ToLower(name), strings.ToLower(query))
}

// Substring reports whether name contains query anywhere, ignoring case.
// An empty query matches every name.
func Substring(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// likeEscaper makes user text literal inside a LIKE pattern. The backslash
// must be replaced first and matches the ESCAPE clause used by storage.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PrefixPattern returns the LIKE pattern equivalent of Prefix for pushing the
// prefix phase into the structural query.
func PrefixPattern(query string) string {
	return likeEscaper.Replace(strings.ToLower(query)) + "%"
}

// SubstringPattern returns the LIKE pattern equivalent of Substring.
func SubstringPattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}
