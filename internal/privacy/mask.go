// AngelaMos | 2026
// mask.go

package privacy

import (
	"strings"
)

// MaskName obfuscates a person or company name while keeping it visibly a
// name: word count and per-word length are preserved, and at most the first
// two and last two characters of each word stay readable.
//
// Per word: 1 char -> "*"; 2-3 chars -> leading char + asterisks; 5+ chars ->
// first two + asterisks + last two. Four-char words keep first two + "*" +
// last one, since length preservation takes priority at that boundary.
func MaskName(name string) string {
	if name == "" {
		return ""
	}

	words := strings.Split(name, " ")
	masked := make([]string, 0, len(words))

	for _, word := range words {
		masked = append(masked, maskWord(word))
	}

	return strings.Join(masked, " ")
}

func maskWord(word string) string {
	runes := []rune(word)

	switch n := len(runes); {
	case n == 0:
		return ""
	case n == 1:
		return "*"
	case n <= 3:
		return string(runes[0]) + strings.Repeat("*", n-1)
	case n == 4:
		return string(runes[:2]) + "*" + string(runes[3])
	default:
		return string(runes[:2]) +
			strings.Repeat("*", n-4) +
			string(runes[n-2:])
	}
}
