// Package strcase converts identifier casing.
package strcase

import (
	"strings"
	"unicode"
)

// ToSnake converts a CamelCase or mixedCase string to snake_case.
// Acronym runs are kept together: "VoterID" becomes "voter_id".
func ToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
