package schema

import (
	"strings"
	"unicode"
)

// ToPascalCase joins underscore, dash or space separated words.
// Input without separators is returned with only its first letter raised,
// so existing CamelCase names survive unchanged.
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	if len(words) == 1 {
		return upperFirst(words[0])
	}

	var result strings.Builder
	for _, word := range words {
		if len(word) > 0 {
			result.WriteString(strings.ToUpper(string(word[0])))
			if len(word) > 1 {
				result.WriteString(strings.ToLower(word[1:]))
			}
		}
	}

	return result.String()
}

func ToSnakeCase(s string) string {
	return strings.ToLower(joinWords(s, '_'))
}

// ToDisplayName splits a CamelCase name into words: "AmbientLight" -> "Ambient Light".
func ToDisplayName(s string) string {
	return joinWords(s, ' ')
}

func joinWords(s string, sep byte) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if i > 0 && isUpper(r) {
			// "someWord" -> "some_word"
			prevIsLower := isLower(runes[i-1])
			// "XMLParser" -> "xml_parser", not "x_m_l_parser"
			nextIsLower := i+1 < len(runes) && isLower(runes[i+1])

			if prevIsLower || nextIsLower {
				b.WriteByte(sep)
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func upperFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
