// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"strings"
	"unicode"
)

// ParseKeywords splits a comma-separated answer into research keywords:
// whitespace trimmed, capitalized, empties dropped, duplicates removed
// while keeping first-seen order.
func ParseKeywords(answer string) []string {
	var keys []string
	seen := make(map[string]struct{})

	for _, part := range strings.Split(answer, ",") {
		key := capitalize(strings.TrimSpace(part))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// capitalize upper-cases the first rune and lower-cases the rest, so
// "shakespeare" and "SHAKESPEARE" name the same ledger entry.
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
