// Package charref resolves HTML character references: numeric references
// such as &#x41; and named references such as &amp;.
package charref

import (
	"strings"
	"unicode/utf8"

	"github.com/heathj/htmlcheck/parser/spec"
)

// Result describes one decoded reference.
type Result struct {
	// Text replaces the ampersand and the Consumed bytes that follow it.
	Text string
	// Consumed counts the bytes after the ampersand that belong to the
	// reference. Zero means the ampersand is literal and nothing after it
	// was consumed.
	Consumed int
	Errors   []spec.ErrorKind
}

var maxNameLen int

func init() {
	for name := range entities {
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}
}

// Lookup returns the replacement text for a named reference. The name is
// given without the ampersand and includes the semicolon when it has one.
func Lookup(name string) (string, bool) {
	v, ok := entities[name]
	return v, ok
}

// Decode resolves the reference at the start of in, which holds the input
// immediately after an ampersand. inAttribute selects the attribute-value
// rules, under which a legacy name without its semicolon followed by an
// alphanumeric or '=' is left undecoded.
func Decode(in []byte, inAttribute bool) Result {
	if len(in) == 0 {
		return Result{Text: "&"}
	}
	if in[0] == '#' {
		return decodeNumeric(in)
	}
	if isASCIIAlphanumeric(in[0]) {
		return decodeNamed(in, inAttribute)
	}
	return Result{Text: "&"}
}

// DecodeString replaces every character reference in s, using the rules for
// text content.
func DecodeString(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var sb strings.Builder
	for {
		i := strings.IndexByte(s, '&')
		if i < 0 {
			sb.WriteString(s)
			return sb.String()
		}
		sb.WriteString(s[:i])
		s = s[i+1:]
		res := Decode([]byte(s), false)
		sb.WriteString(res.Text)
		s = s[res.Consumed:]
	}
}

func decodeNamed(in []byte, inAttribute bool) Result {
	end := 0
	for end < len(in) && isASCIIAlphanumeric(in[end]) {
		end++
	}
	// no name is longer than maxNameLen, so only the start of a longer run
	// can match.
	n := end
	if n > maxNameLen {
		n = maxNameLen
	}

	match := ""
	if n < len(in) && in[n] == ';' {
		if _, ok := entities[string(in[:n+1])]; ok {
			match = string(in[:n+1])
		}
	}
	for k := n; match == "" && k > 0; k-- {
		if _, ok := entities[string(in[:k])]; ok {
			match = string(in[:k])
		}
	}

	if match == "" {
		if end < len(in) && in[end] == ';' {
			return Result{Text: "&", Errors: []spec.ErrorKind{spec.UnknownNamedCharacterReference}}
		}
		return Result{Text: "&"}
	}

	if !strings.HasSuffix(match, ";") {
		if inAttribute && len(match) < len(in) {
			if next := in[len(match)]; next == '=' || isASCIIAlphanumeric(next) {
				return Result{Text: "&" + match, Consumed: len(match)}
			}
		}
		return Result{
			Text:     entities[match],
			Consumed: len(match),
			Errors:   []spec.ErrorKind{spec.MissingSemicolonAfterCharacterReference},
		}
	}
	return Result{Text: entities[match], Consumed: len(match)}
}

func decodeNumeric(in []byte) Result {
	i := 1
	hex := false
	if i < len(in) && (in[i] == 'x' || in[i] == 'X') {
		hex = true
		i++
	}

	start := i
	code := 0
	for ; i < len(in); i++ {
		d, ok := digitValue(in[i], hex)
		if !ok {
			break
		}
		if code <= utf8.MaxRune {
			if hex {
				code = code*16 + d
			} else {
				code = code*10 + d
			}
		}
	}
	if i == start {
		return Result{
			Text:     "&" + string(in[:start]),
			Consumed: start,
			Errors:   []spec.ErrorKind{spec.AbsenceOfDigitsInNumericCharacterReference},
		}
	}

	var errs []spec.ErrorKind
	if i < len(in) && in[i] == ';' {
		i++
	} else {
		errs = append(errs, spec.MissingSemicolonAfterCharacterReference)
	}

	r, kind := checkCodePoint(code)
	if kind != "" {
		errs = append(errs, kind)
	}
	return Result{Text: string(r), Consumed: i, Errors: errs}
}

// checkCodePoint applies the numeric character reference end rules.
func checkCodePoint(code int) (rune, spec.ErrorKind) {
	switch {
	case code == 0:
		return utf8.RuneError, spec.NullCharacterReference
	case code > utf8.MaxRune:
		return utf8.RuneError, spec.CharacterReferenceOutsideUnicodeRange
	case IsSurrogate(rune(code)):
		return utf8.RuneError, spec.SurrogateCharacterReference
	case IsNoncharacter(rune(code)):
		return rune(code), spec.NoncharacterCharacterReference
	case code == 0x0D || (IsControl(rune(code)) && !isASCIIWhitespace(rune(code))):
		if r, ok := windows1252[code]; ok {
			return r, spec.ControlCharacterReference
		}
		return rune(code), spec.ControlCharacterReference
	}
	return rune(code), ""
}

// windows1252 maps the C1 control range to what legacy content meant by it.
var windows1252 = map[int]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

func digitValue(c byte, hex bool) (int, bool) {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0'), true
	case hex && 'a' <= c && c <= 'f':
		return int(c-'a') + 10, true
	case hex && 'A' <= c && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

func isASCIIAlphanumeric(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func IsSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDFFF
}

func IsNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	return r <= utf8.MaxRune && r&0xFFFE == 0xFFFE
}

// IsControl reports C0 controls, DEL and the C1 controls.
func IsControl(r rune) bool {
	return (r >= 0 && r <= 0x1F) || (r >= 0x7F && r <= 0x9F)
}
