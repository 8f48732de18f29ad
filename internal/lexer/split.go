package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Part is a trimmed piece of a line together with its byte offset in the line.
type Part struct {
	Text string
	Off  int
}

// End returns the offset just past the part.
func (p Part) End() int { return p.Off + len(p.Text) }

// Empty reports whether the part holds no text.
func (p Part) Empty() bool { return p.Text == "" }

func trimPart(s string, off int) Part {
	lead := len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
	return Part{Text: strings.TrimSpace(s), Off: off + lead}
}

// charLitLen returns the byte length of a char literal starting at s[i],
// or 0. The quote itself is a valid character, so ''' is one literal.
func charLitLen(s string, i int) int {
	if s[i] != '\'' || i+1 >= len(s) {
		return 0
	}
	_, size := utf8.DecodeRuneInString(s[i+1:])
	if end := i + 1 + size; end < len(s) && s[end] == '\'' {
		return size + 2
	}
	return 0
}

// scanTopLevel walks s and calls at(i) for every byte outside string and
// char literals. at returns how many bytes it consumed as a separator, or 0.
func scanTopLevel(s string, at func(i int) int) {
	var quote byte
	for i := 0; i < len(s); {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			i++
			continue
		}
		if n := charLitLen(s, i); n > 0 {
			i += n
			continue
		}
		if c == '"' || c == '\'' {
			quote = c
			i++
			continue
		}
		if n := at(i); n > 0 {
			i += n
			continue
		}
		i++
	}
}

// SplitTopLevel splits s on any of seps occurring outside quoted literals.
// Parts are trimmed; off is the offset of s inside its line.
// An empty or all-space s yields no parts.
func SplitTopLevel(s string, off int, seps ...string) []Part {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []Part
	start := 0
	scanTopLevel(s, func(i int) int {
		for _, sep := range seps {
			if strings.HasPrefix(s[i:], sep) {
				parts = append(parts, trimPart(s[start:i], off+start))
				start = i + len(sep)
				return len(sep)
			}
		}
		return 0
	})
	return append(parts, trimPart(s[start:], off+start))
}

// SplitFirst splits s at the first top-level occurrence of sep.
// ok is false when sep does not occur outside quotes.
func SplitFirst(s string, off int, sep byte) (left, right Part, ok bool) {
	cut := -1
	scanTopLevel(s, func(i int) int {
		if cut < 0 && s[i] == sep {
			cut = i
		}
		return 0
	})
	if cut < 0 {
		return trimPart(s, off), Part{Off: off + len(s)}, false
	}
	return trimPart(s[:cut], off), trimPart(s[cut+1:], off+cut+1), true
}
