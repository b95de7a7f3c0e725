package model

import "strings"

// ResolveKey derives a stable per-person identity key from candidate
// identifiers evaluated in priority order: the first candidate with a
// non-empty trimmed value wins, lowercased. Returns "" when every candidate
// is empty.
//
// Callers pass candidates ordered by stability: primary email, secondary
// email, instagram handle, display name. Emails outrank social handles,
// which outrank free-text names, because emails stay constant across repeat
// signups.
func ResolveKey(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c != "" {
			return strings.ToLower(c)
		}
	}
	return ""
}

// DisplayNameFor picks the human-readable name for a participant: the
// signup name when present, otherwise the first resolved email.
func DisplayNameFor(name, email, emailAlt string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if e := strings.TrimSpace(email); e != "" {
		return e
	}
	return strings.TrimSpace(emailAlt)
}
