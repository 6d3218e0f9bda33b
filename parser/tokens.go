package parser

import (
	"fmt"
	"strings"

	"github.com/heathj/htmlcheck/parser/spec"
)

type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	endOfFileToken
	commentToken
	docTypeToken
)

func (t tokenType) String() string {
	switch t {
	case characterToken:
		return "Character"
	case startTagToken:
		return "StartTag"
	case endTagToken:
		return "EndTag"
	case endOfFileToken:
		return "EOF"
	case commentToken:
		return "Comment"
	case docTypeToken:
		return "DOCTYPE"
	}
	return "Unknown"
}

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// Token is a concrete token that is ready to be emitted.
type Token struct {
	TokenType        tokenType
	Attributes       []spec.Attribute
	TagName          string
	PublicIdentifier string
	SystemIdentifier string
	// PublicIDMissing and SystemIDMissing tell an identifier that was never
	// given apart from an empty one.
	PublicIDMissing bool
	SystemIDMissing bool
	ForceQuirks     bool
	SelfClosing     bool
	Data            string
	Pos             spec.Position
}

// Attr returns the value of the named attribute.
func (t *Token) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (t *Token) String() string {
	switch t.TokenType {
	case characterToken:
		return fmt.Sprintf("Character %q", t.Data)
	case startTagToken:
		return fmt.Sprintf("StartTag <%s> %v self-closing=%t", t.TagName, t.Attributes, t.SelfClosing)
	case endTagToken:
		return fmt.Sprintf("EndTag </%s>", t.TagName)
	case commentToken:
		return fmt.Sprintf("Comment %q", t.Data)
	case docTypeToken:
		return fmt.Sprintf("DOCTYPE %q public=%q system=%q force-quirks=%t",
			t.TagName, t.PublicIdentifier, t.SystemIdentifier, t.ForceQuirks)
	}
	return t.TokenType.String()
}

// TokenBuilder builds various tokens up during the tokenization
// phase.
type TokenBuilder struct {
	attributes     []spec.Attribute
	attributeKey   strings.Builder
	attributeValue strings.Builder
	pendingAttr    bool
	removeNextAttr bool
	name           strings.Builder
	data           strings.Builder
	tempBuffer     strings.Builder
	publicID       strings.Builder
	systemID       strings.Builder
	publicMissing  bool
	systemMissing  bool
	selfClosing    bool
	forceQuirks    bool
	curTagType     tagType
	pos            spec.Position
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// Reset clears everything but the temporary buffer, which the
// end-tag-name states share across tokens.
func (t *TokenBuilder) Reset() {
	t.attributes = nil
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.pendingAttr = false
	t.removeNextAttr = false
	t.publicID.Reset()
	t.systemID.Reset()
	t.publicMissing = true
	t.systemMissing = true
	t.data.Reset()
	t.name.Reset()
	t.selfClosing = false
	t.forceQuirks = false
}

// SetPosition records where the token being built started.
func (t *TokenBuilder) SetPosition(pos spec.Position) {
	t.pos = pos
}

// EnableSelfClosing changes to the self-closing flag to "set".
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// EnableForceQuirks changes to the force-quirks flag to "set".
func (t *TokenBuilder) EnableForceQuirks() {
	t.forceQuirks = true
}

// SetPublicIdentifierEmpty marks the public identifier as present but empty.
func (t *TokenBuilder) SetPublicIdentifierEmpty() {
	t.publicID.Reset()
	t.publicMissing = false
}

// SetSystemIdentifierEmpty marks the system identifier as present but empty.
func (t *TokenBuilder) SetSystemIdentifierEmpty() {
	t.systemID.Reset()
	t.systemMissing = false
}

func (t *TokenBuilder) WritePublicIdentifier(r rune) {
	t.publicID.WriteRune(r)
}

func (t *TokenBuilder) WriteSystemIdentifier(r rune) {
	t.systemID.WriteRune(r)
}

// StartAttribute commits any attribute in progress and begins a new one.
func (t *TokenBuilder) StartAttribute() {
	t.CommitAttribute()
	t.pendingAttr = true
}

// WriteAttributeName appends a character to the current
// attribute's name.
func (t *TokenBuilder) WriteAttributeName(r rune) {
	t.attributeKey.WriteRune(r)
}

// WriteAttributeValue appends a character to the current
// attribute's value.
func (t *TokenBuilder) WriteAttributeValue(r rune) {
	t.attributeValue.WriteRune(r)
}

// WriteAttributeValueString appends a decoded character reference to the
// current attribute's value.
func (t *TokenBuilder) WriteAttributeValueString(s string) {
	t.attributeValue.WriteString(s)
}

// RemoveDuplicateAttributeName checks if the current name is already
// in the list of commited attributes. If so, the attribute is dropped when
// it is committed and the first occurrence wins.
func (t *TokenBuilder) RemoveDuplicateAttributeName() bool {
	name := t.attributeKey.String()
	for _, a := range t.attributes {
		if a.Name == name {
			t.removeNextAttr = true
			return true
		}
	}
	return false
}

// CommitAttribute ends the creation of a key/value pair by appending it to
// the attribute list and clearing the name and value fields.
func (t *TokenBuilder) CommitAttribute() {
	if t.pendingAttr && !t.removeNextAttr {
		t.attributes = append(t.attributes, spec.Attribute{
			Name:  t.attributeKey.String(),
			Value: t.attributeValue.String(),
		})
	}
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.pendingAttr = false
	t.removeNextAttr = false
}

//WriteData appends a character to the current data section.
func (t *TokenBuilder) WriteData(r rune) {
	t.data.WriteRune(r)
}

func (t *TokenBuilder) WriteDataString(s string) {
	t.data.WriteString(s)
}

// WriteName appends a character to the current name value.
func (t *TokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// WriteTempBuffer appends a character to the temporary buffer of the current
// state.
func (t *TokenBuilder) WriteTempBuffer(r rune) {
	t.tempBuffer.WriteRune(r)
}

// ResetTempBuffer clears the temporary buffer to be used by some other state.
func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer.Reset()
}

// TempBuffer just returns the string version of the current buffer conents.
func (t *TokenBuilder) TempBuffer() string {
	return t.tempBuffer.String()
}

// TagToken creates a start or end tag token from the builder contents.
func (t *TokenBuilder) TagToken() Token {
	t.CommitAttribute()
	tt := startTagToken
	if t.curTagType == endTag {
		tt = endTagToken
	}
	return Token{
		TokenType:   tt,
		TagName:     t.name.String(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
		Pos:         t.pos,
	}
}

// CharacterToken creates a character token at pos.
func (t *TokenBuilder) CharacterToken(r rune, pos spec.Position) Token {
	return Token{
		TokenType: characterToken,
		Data:      string(r),
		Pos:       pos,
	}
}

// EndOfFileToken create an end of file token.
func (t *TokenBuilder) EndOfFileToken(pos spec.Position) Token {
	return Token{
		TokenType: endOfFileToken,
		Pos:       pos,
	}
}

// CommentToken creates a comment token from the builder contents.
func (t *TokenBuilder) CommentToken() Token {
	return Token{
		TokenType: commentToken,
		Data:      t.data.String(),
		Pos:       t.pos,
	}
}

// DocTypeToken creates a doc type token from the builder contents.
func (t *TokenBuilder) DocTypeToken() Token {
	return Token{
		TokenType:        docTypeToken,
		TagName:          t.name.String(),
		ForceQuirks:      t.forceQuirks,
		PublicIdentifier: t.publicID.String(),
		SystemIdentifier: t.systemID.String(),
		PublicIDMissing:  t.publicMissing,
		SystemIDMissing:  t.systemMissing,
		Pos:              t.pos,
	}
}
