// Package i18n selects natural-language text variants.
//
// Every piece of localized text, whether it comes from a device schema or
// from a fixed document template, is a Text: a mapping from language code to
// raw text. The active language is never global state; callers pass it to
// Select explicitly.
package i18n

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/language"
)

// Lang is a canonical base-language code such as "en" or "de".
type Lang string

const (
	English Lang = "en"
	German  Lang = "de"
)

// Default is the set of languages generated when none are configured.
var Default = []Lang{English, German}

// ErrMissingLanguage marks lookups for a language a Text does not carry.
var ErrMissingLanguage = errors.New("missing language")

// ParseLang canonicalizes a language code. Region and script subtags are
// dropped: "de-AT" and "DE" both become "de".
func ParseLang(s string) (Lang, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("empty language code")
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", errors.Wrapf(err, "invalid language code %q", s)
	}
	base, _ := tag.Base()
	return Lang(base.String()), nil
}

// ParseLangs parses a list of codes, dropping duplicates while keeping order.
func ParseLangs(codes []string) ([]Lang, error) {
	if len(codes) == 0 {
		return append([]Lang(nil), Default...), nil
	}
	seen := make(map[Lang]bool, len(codes))
	out := make([]Lang, 0, len(codes))
	for _, c := range codes {
		l, err := ParseLang(c)
		if err != nil {
			return nil, err
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out, nil
}

// Text maps language codes to text.
type Text map[string]string

// Select returns the text for lang. A missing entry is an error; there is no
// fallback language.
func (t Text) Select(lang Lang) (string, error) {
	if s, ok := t[string(lang)]; ok {
		return s, nil
	}
	err := errors.Newf("no %q text available (have: %s)", lang, strings.Join(t.Langs(), ", "))
	err = errors.WithHintf(err, "add a %q entry to the text mapping", lang)
	return "", errors.Mark(err, ErrMissingLanguage)
}

// Langs returns the language codes present in t, sorted.
func (t Text) Langs() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsEmpty reports whether t carries no text at all.
func (t Text) IsEmpty() bool {
	return len(t) == 0
}

// Canonical returns a copy of t with every key run through ParseLang.
// Two keys collapsing onto the same language is an error.
func (t Text) Canonical() (Text, error) {
	if t == nil {
		return nil, nil
	}
	out := make(Text, len(t))
	for _, k := range t.Langs() {
		l, err := ParseLang(k)
		if err != nil {
			return nil, err
		}
		if _, dup := out[string(l)]; dup {
			return nil, errors.Newf("language %q given more than once", l)
		}
		out[string(l)] = t[k]
	}
	return out, nil
}
