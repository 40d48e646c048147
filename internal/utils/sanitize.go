package utils

import (
	"regexp"
	"strings"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]+`)

// SafeKey turns a record key into an object name usable on every storage
// provider. Runs of other characters (":" from visitor keys, "/", spaces)
// collapse to "_". An empty result falls back to def.
func SafeKey(key, def string) string {
	clean := unsafeKeyChars.ReplaceAllString(strings.TrimSpace(key), "_")
	clean = strings.Trim(clean, "._")
	if clean == "" {
		return def
	}
	return clean
}
