package docmarkup

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// ErrMarkup marks malformed markup directives.
var ErrMarkup = errors.New("markup error")

const (
	directiveIf    = ".. if::"
	directiveElse  = ".. else::"
	directiveEndif = ".. endif::"
)

// ApplyConditionals evaluates line directives of the form
//
//	.. if:: <flag>          (or .. if:: not <flag>)
//	text kept when the condition holds
//	.. else::
//	text kept otherwise
//	.. endif::
//
// against flags. Flag names are compared in lower case. Blocks do not nest.
func ApplyConditionals(text string, flags map[string]bool) (string, error) {
	if !strings.Contains(text, ".. ") {
		return text, nil
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	inBlock, keep, sawElse, openedAt := false, true, false, 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, directiveIf):
			if inBlock {
				return "", markupErrorf(i+1, "nested '.. if::' (block opened on line %d)", openedAt)
			}
			cond := strings.Fields(strings.TrimPrefix(trimmed, directiveIf))
			negate := len(cond) == 2 && cond[0] == "not"
			if negate {
				cond = cond[1:]
			}
			if len(cond) != 1 {
				return "", markupErrorf(i+1, "'.. if::' takes one flag, optionally preceded by 'not'")
			}
			inBlock, sawElse, openedAt = true, false, i+1
			keep = flags[strings.ToLower(cond[0])] != negate
		case trimmed == directiveElse:
			if !inBlock || sawElse {
				return "", markupErrorf(i+1, "'.. else::' without a matching '.. if::'")
			}
			sawElse, keep = true, !keep
		case trimmed == directiveEndif:
			if !inBlock {
				return "", markupErrorf(i+1, "'.. endif::' without a matching '.. if::'")
			}
			inBlock, keep = false, true
		default:
			if keep {
				out = append(out, line)
			}
		}
	}
	if inBlock {
		return "", markupErrorf(openedAt, "'.. if::' is never closed")
	}
	return strings.Join(out, "\n"), nil
}

// SinceFirmware appends a versionadded note when since is newer than the
// baseline. label names what the version refers to, e.g. "Firmware".
func SinceFirmware(text string, since, baseline *semver.Version, label string) string {
	if since == nil || baseline == nil || !since.GreaterThan(baseline) {
		return text
	}
	return strings.TrimRight(text, " \t\n") +
		"\n\n.. versionadded:: " + since.String() + " (" + label + ")\n"
}

func markupErrorf(line int, format string, args ...any) error {
	err := errors.Newf("line %d: "+format, append([]any{line}, args...)...)
	err = errors.WithHint(err, "conditional blocks are '.. if:: <flag>' ... ['.. else::' ...] '.. endif::'")
	return errors.Mark(err, ErrMarkup)
}
