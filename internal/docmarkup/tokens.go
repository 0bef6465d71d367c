// Package docmarkup expands the inline markup used in schema documentation
// text: references to other packets, localized words, feature conditionals
// and firmware version notes.
package docmarkup

import "strings"

// TokenKind classifies a piece of documentation text.
type TokenKind int

const (
	Literal TokenKind = iota
	FuncRef
	WordRef
)

// Token is one literal run or one reference marker.
type Token struct {
	Kind TokenKind
	// Target is the referenced packet or word. Empty for literals.
	Target string
	// Raw is the exact source text of the token.
	Raw string
}

var roles = map[string]TokenKind{
	":func:`": FuncRef,
	":word:`": WordRef,
}

// Tokenize splits text into literal runs and reference markers. A marker
// without a closing backtick is kept as literal text.
func Tokenize(text string) []Token {
	var tokens []Token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Token{Kind: Literal, Raw: lit.String()})
			lit.Reset()
		}
	}

	for len(text) > 0 {
		start, prefix := nextMarker(text)
		if start < 0 {
			lit.WriteString(text)
			break
		}
		body := text[start+len(prefix):]
		end := strings.IndexByte(body, '`')
		if end < 0 {
			lit.WriteString(text)
			break
		}
		if strings.ContainsAny(body[:end], " \t\n:") {
			// not a marker, e.g. the prefix of an unterminated one
			lit.WriteString(text[:start+len(prefix)])
			text = body
			continue
		}

		lit.WriteString(text[:start])
		flush()
		raw := text[start : start+len(prefix)+end+1]
		tokens = append(tokens, Token{Kind: roles[prefix], Target: body[:end], Raw: raw})
		text = text[start+len(raw):]
	}
	flush()
	return tokens
}

// nextMarker finds the earliest role prefix in text.
func nextMarker(text string) (int, string) {
	best, bestPrefix := -1, ""
	for prefix := range roles {
		if i := strings.Index(text, prefix); i >= 0 && (best < 0 || i < best) {
			best, bestPrefix = i, prefix
		}
	}
	return best, bestPrefix
}

// Resolver rewrites reference tokens through lookup tables.
type Resolver struct {
	// Funcs maps CamelCase packet names to binding-specific link markup.
	Funcs map[string]string
	// Words maps generic words to their localized form.
	Words map[string]string
}

// Resolve returns text with every known reference replaced. Unknown
// references stay verbatim. Each token is looked up exactly once, so a
// replacement is never itself rewritten.
func (r Resolver) Resolve(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, tok := range Tokenize(text) {
		var (
			repl string
			ok   bool
		)
		switch tok.Kind {
		case FuncRef:
			repl, ok = r.Funcs[tok.Target]
		case WordRef:
			repl, ok = r.Words[tok.Target]
		}
		if ok {
			b.WriteString(repl)
		} else {
			b.WriteString(tok.Raw)
		}
	}
	return b.String()
}
