package schema

import (
	"strings"
	"unicode"
)

// toSnake derives the internal snake_case name of a Go struct field.
// Uppercase runs count as one word, so "SHA1" becomes "sha1" and
// "AssetIndex" becomes "asset_index".
func toSnake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(runes) + 4)
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if i > 0 && (prevLower || nextLower) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// toCamel converts a snake_case internal name to its camelCase wire form:
// "release_time" becomes "releaseTime", single-word names are unchanged.
func toCamel(name string) string {
	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}
