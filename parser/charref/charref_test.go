package charref

import (
	"strings"
	"testing"

	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		in          string
		inAttribute bool
		out         Result
	}{
		{"hex", "#x41;", false, Result{Text: "A", Consumed: 5}},
		{"upper hex", "#X6a;", false, Result{Text: "j", Consumed: 5}},
		{"decimal", "#65;", false, Result{Text: "A", Consumed: 4}},
		{"decimal no semicolon", "#65 ", false, Result{
			Text: "A", Consumed: 3,
			Errors: []spec.ErrorKind{spec.MissingSemicolonAfterCharacterReference},
		}},
		{"windows-1252 remap", "#128;", false, Result{
			Text: "\u20AC", Consumed: 5,
			Errors: []spec.ErrorKind{spec.ControlCharacterReference},
		}},
		{"c1 without remap", "#x81;", false, Result{
			Text: "\u0081", Consumed: 5,
			Errors: []spec.ErrorKind{spec.ControlCharacterReference},
		}},
		{"carriage return", "#13;", false, Result{
			Text: "\r", Consumed: 4,
			Errors: []spec.ErrorKind{spec.ControlCharacterReference},
		}},
		{"null", "#0;", false, Result{
			Text: "\uFFFD", Consumed: 3,
			Errors: []spec.ErrorKind{spec.NullCharacterReference},
		}},
		{"out of range", "#x110000;", false, Result{
			Text: "\uFFFD", Consumed: 9,
			Errors: []spec.ErrorKind{spec.CharacterReferenceOutsideUnicodeRange},
		}},
		{"huge", "#99999999999999999999;", false, Result{
			Text: "\uFFFD", Consumed: 22,
			Errors: []spec.ErrorKind{spec.CharacterReferenceOutsideUnicodeRange},
		}},
		{"surrogate", "#xD800;", false, Result{
			Text: "\uFFFD", Consumed: 7,
			Errors: []spec.ErrorKind{spec.SurrogateCharacterReference},
		}},
		{"noncharacter", "#xFFFF;", false, Result{
			Text: "\uFFFF", Consumed: 7,
			Errors: []spec.ErrorKind{spec.NoncharacterCharacterReference},
		}},
		{"no digits", "#;", false, Result{
			Text: "&#", Consumed: 1,
			Errors: []spec.ErrorKind{spec.AbsenceOfDigitsInNumericCharacterReference},
		}},
		{"no hex digits", "#xz", false, Result{
			Text: "&#x", Consumed: 2,
			Errors: []spec.ErrorKind{spec.AbsenceOfDigitsInNumericCharacterReference},
		}},
		{"named", "amp;", false, Result{Text: "&", Consumed: 4}},
		{"named two code points", "NotEqualTilde;", false, Result{Text: "\u2242\u0338", Consumed: 14}},
		{"legacy without semicolon", "amp rest", false, Result{
			Text:     "&",
			Consumed: 3,
			Errors:   []spec.ErrorKind{spec.MissingSemicolonAfterCharacterReference},
		}},
		{"longest match", "notin;", false, Result{Text: "\u2209", Consumed: 6}},
		{"legacy prefix", "notit;", false, Result{
			Text: "\u00AC", Consumed: 3,
			Errors: []spec.ErrorKind{spec.MissingSemicolonAfterCharacterReference},
		}},
		{"attribute alnum follows", "notit;", true, Result{Text: "&not", Consumed: 3}},
		{"attribute equals follows", "amp=1", true, Result{Text: "&amp", Consumed: 3}},
		{"attribute with semicolon", "amp;=1", true, Result{Text: "&", Consumed: 4}},
		{"unknown with semicolon", "bogus;", false, Result{
			Text:   "&",
			Errors: []spec.ErrorKind{spec.UnknownNamedCharacterReference},
		}},
		{"unknown", "bogus", false, Result{Text: "&"}},
		{"unknown name longer than any entity", strings.Repeat("a", 41) + ";", false, Result{
			Text:   "&",
			Errors: []spec.ErrorKind{spec.UnknownNamedCharacterReference},
		}},
		{"long run after a known prefix", "amp" + strings.Repeat("x", 40) + ";", false, Result{
			Text:     "&",
			Consumed: 3,
			Errors:   []spec.ErrorKind{spec.MissingSemicolonAfterCharacterReference},
		}},
		{"not a reference", " x", false, Result{Text: "&"}},
		{"empty", "", false, Result{Text: "&"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.out, Decode([]byte(tt.in), tt.inAttribute))
		})
	}
}

func TestDecodeString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a < b & c", DecodeString("a &lt; b &amp c"))
	assert.Equal(t, "no refs", DecodeString("no refs"))
	assert.Equal(t, "&bogus; \u00A9", DecodeString("&bogus; &copy;"))
	assert.Equal(t, "&", DecodeString("&"))
}

func TestLookup(t *testing.T) {
	t.Parallel()
	v, ok := Lookup("hellip;")
	assert.True(t, ok)
	assert.Equal(t, "\u2026", v)

	_, ok = Lookup("hellip")
	assert.False(t, ok, "hellip has no legacy form")
}

func TestCodePointClasses(t *testing.T) {
	t.Parallel()
	assert.True(t, IsSurrogate(0xDFFF))
	assert.False(t, IsSurrogate(0xE000))
	assert.True(t, IsNoncharacter(0xFDD0))
	assert.True(t, IsNoncharacter(0x10FFFE))
	assert.False(t, IsNoncharacter(0xFFFD))
	assert.True(t, IsControl(0x7F))
	assert.True(t, IsControl(0x9F))
	assert.False(t, IsControl(' '))
}
