package parser

import (
	"io"
	"strings"

	"github.com/heathj/htmlcheck/parser/charref"
	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/sirupsen/logrus"
)

// charRefLookahead bounds how far past an ampersand a reference may reach.
const charRefLookahead = 1024

// HTMLTokenizer holds state for the various state of the tokenizer.
type HTMLTokenizer struct {
	done                      bool
	returnState, currentState tokenizerState
	input                     *inputStream
	adjustedCurrentNode       *spec.Node
	emittedTokens             []Token
	tokenBuilder              *TokenBuilder
	lastEmittedStartTagName   string
	tagStart                  spec.Position
	errors                    *ErrorReporter
	log                       *logrus.Entry
	trace                     bool
	err                       error
}

// NewHTMLTokenizer creates a tokenizer reading from r. Parse errors go to
// reporter.
func NewHTMLTokenizer(r io.Reader, cfg Config, reporter *ErrorReporter) *HTMLTokenizer {
	return &HTMLTokenizer{
		input:        newInputStream(r, cfg.MaxInputSize),
		tokenBuilder: newTokenBuilder(),
		errors:       reporter,
		log:          cfg.Logger.WithField("component", "tokenizer"),
		trace:        cfg.Logger.IsLevelEnabled(logrus.TraceLevel),
	}
}

func (p *HTMLTokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case rcDataState:
		return p.rcDataStateParser
	case rawTextState:
		return p.rawTextStateParser
	case scriptDataState:
		return p.scriptDataStateParser
	case plaintextState:
		return p.plaintextStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case endTagOpenState:
		return p.endTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case rcDataLessThanSignState:
		return p.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return p.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return p.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return p.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return p.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return p.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return p.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return p.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return p.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return p.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return p.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return p.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return p.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return p.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return p.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return p.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return p.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return p.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return p.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return p.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return p.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return p.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return p.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case bogusCommentState:
		return p.bogusCommentStateParser
	case markupDeclarationOpenState:
		return p.markupDeclarationOpenStateParser
	case commentStartState:
		return p.commentStartStateParser
	case commentStartDashState:
		return p.commentStartDashStateParser
	case commentState:
		return p.commentStateParser
	case commentLessThanSignState:
		return p.commentLessThanSignStateParser
	case commentLessThanSignBangState:
		return p.commentLessThanSignBangStateParser
	case commentLessThanSignBangDashState:
		return p.commentLessThanSignBangDashStateParser
	case commentLessThanSignBangDashDashState:
		return p.commentLessThanSignBangDashDashStateParser
	case commentEndDashState:
		return p.commentEndDashStateParser
	case commentEndState:
		return p.commentEndStateParser
	case commentEndBangState:
		return p.commentEndBangStateParser
	case doctypeState:
		return p.doctypeStateParser
	case beforeDoctypeNameState:
		return p.beforeDoctypeNameStateParser
	case doctypeNameState:
		return p.doctypeNameStateParser
	case afterDoctypeNameState:
		return p.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return p.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return p.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return p.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return p.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return p.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return p.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return p.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return p.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return p.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return p.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return p.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return p.bogusDoctypeStateParser
	case cdataSectionState:
		return p.cdataSectionStateParser
	case cdataSectionBracketState:
		return p.cdataSectionBracketStateParser
	case cdataSectionEndState:
		return p.cdataSectionEndStateParser
	case characterReferenceState:
		return p.characterReferenceStateParser
	}

	return nil
}

func isASCIIAlpha(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isASCIIUpper(r rune) bool {
	return 'A' <= r && r <= 'Z'
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || ('0' <= r && r <= '9')
}

func toASCIILower(r rune) rune {
	if isASCIIUpper(r) {
		return r + 0x20
	}
	return r
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func wasConsumedByAttribute(returnState tokenizerState) bool {
	switch returnState {
	case attributeValueDoubleQuotedState, attributeValueSingleQuotedState, attributeValueUnquotedState:
		return true
	}
	return false
}

func (p *HTMLTokenizer) parseError(kind spec.ErrorKind) {
	p.errors.Report(kind, p.input.pos)
}

// checkInputCharacter reports characters that are errors wherever they
// appear.
func (p *HTMLTokenizer) checkInputCharacter(r rune) {
	switch {
	case charref.IsSurrogate(r):
		p.parseError(spec.SurrogateInInputStream)
	case charref.IsNoncharacter(r):
		p.parseError(spec.NoncharacterInInputStream)
	case r != 0 && charref.IsControl(r) && !isASCIIWhitespace(r):
		p.parseError(spec.ControlCharacterInInputStream)
	}
}

// lookahead reports whether the upcoming input starts with s.
func (p *HTMLTokenizer) lookahead(s string, caseInsensitive bool) bool {
	b := p.input.peek(len(s))
	if len(b) < len(s) {
		return false
	}
	if caseInsensitive {
		return strings.EqualFold(string(b), s)
	}
	return string(b) == s
}

func (p *HTMLTokenizer) discard(n int) {
	if err := p.input.discard(n); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *HTMLTokenizer) flushCharacterReference(s string) {
	if wasConsumedByAttribute(p.returnState) {
		p.tokenBuilder.WriteAttributeValueString(s)
		return
	}
	p.emitString(s)
}

func (p *HTMLTokenizer) isApprEndTagToken() bool {
	return p.lastEmittedStartTagName != "" && p.lastEmittedStartTagName == p.tokenBuilder.name.String()
}

func (p *HTMLTokenizer) emit(tokens ...Token) {
	for _, token := range tokens {
		switch token.TokenType {
		case endTagToken:
			if len(token.Attributes) > 0 {
				p.parseError(spec.EndTagWithAttributes)
				token.Attributes = nil
			}
			if token.SelfClosing {
				p.parseError(spec.EndTagWithTrailingSolidus)
				token.SelfClosing = false
			}
		case startTagToken:
			p.lastEmittedStartTagName = token.TagName
		}

		p.emittedTokens = append(p.emittedTokens, token)
	}
}

func (p *HTMLTokenizer) emitChar(r rune) {
	p.emit(p.tokenBuilder.CharacterToken(r, p.input.pos))
}

func (p *HTMLTokenizer) emitString(s string) {
	for _, r := range s {
		p.emitChar(r)
	}
}

func (p *HTMLTokenizer) emitEOF() {
	p.emit(p.tokenBuilder.EndOfFileToken(p.input.pos))
}

func (p *HTMLTokenizer) emitCurrentTag() tokenizerState {
	p.emit(p.tokenBuilder.TagToken())
	return dataState
}

func (p *HTMLTokenizer) emitComment() {
	p.emit(p.tokenBuilder.CommentToken())
}

func (p *HTMLTokenizer) emitDoctype() {
	p.emit(p.tokenBuilder.DocTypeToken())
}

func (p *HTMLTokenizer) newTag(t tagType) {
	p.tokenBuilder.Reset()
	p.tokenBuilder.curTagType = t
	p.tokenBuilder.SetPosition(p.tagStart)
}

func (p *HTMLTokenizer) newComment() {
	p.tokenBuilder.Reset()
	p.tokenBuilder.SetPosition(p.tagStart)
}

func (p *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '&':
		p.returnState = dataState
		return false, characterReferenceState
	case '<':
		p.tagStart = p.input.pos
		return false, tagOpenState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.emitChar(r)
		return false, dataState
	default:
		p.emitChar(r)
		return false, dataState
	}
}

func (p *HTMLTokenizer) rcDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitEOF()
		return false, rcDataState
	}
	switch r {
	case '&':
		p.returnState = rcDataState
		return false, characterReferenceState
	case '<':
		p.tagStart = p.input.pos
		return false, rcDataLessThanSignState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.emitChar('\uFFFD')
		return false, rcDataState
	default:
		p.emitChar(r)
		return false, rcDataState
	}
}

func (p *HTMLTokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitEOF()
		return false, rawTextState
	}
	switch r {
	case '<':
		p.tagStart = p.input.pos
		return false, rawTextLessThanSignState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.emitChar('\uFFFD')
		return false, rawTextState
	default:
		p.emitChar(r)
		return false, rawTextState
	}
}

func (p *HTMLTokenizer) scriptDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitEOF()
		return false, scriptDataState
	}
	switch r {
	case '<':
		p.tagStart = p.input.pos
		return false, scriptDataLessThanSignState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.emitChar('\uFFFD')
		return false, scriptDataState
	default:
		p.emitChar(r)
		return false, scriptDataState
	}
}

func (p *HTMLTokenizer) plaintextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitEOF()
		return false, plaintextState
	}
	switch r {
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.emitChar('\uFFFD')
		return false, plaintextState
	default:
		p.emitChar(r)
		return false, plaintextState
	}
}

func (p *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFBeforeTagName)
		p.emitChar('<')
		p.emitEOF()
		return false, dataState
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIIAlpha(r):
		p.newTag(startTag)
		return true, tagNameState
	case r == '?':
		p.parseError(spec.UnexpectedQuestionMarkInsteadOfTagName)
		p.newComment()
		return true, bogusCommentState
	default:
		p.parseError(spec.InvalidFirstCharacterOfTagName)
		p.emitChar('<')
		return true, dataState
	}
}

func (p *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFBeforeTagName)
		p.emitString("</")
		p.emitEOF()
		return false, dataState
	}
	switch {
	case isASCIIAlpha(r):
		p.newTag(endTag)
		return true, tagNameState
	case r == '>':
		p.parseError(spec.MissingEndTagName)
		return false, dataState
	default:
		p.parseError(spec.InvalidFirstCharacterOfTagName)
		p.newComment()
		return true, bogusCommentState
	}
}

func (p *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, p.emitCurrentTag()
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.tokenBuilder.WriteName('\uFFFD')
	default:
		p.tokenBuilder.WriteName(toASCIILower(r))
	}
	return false, tagNameState
}

// lessThanSign, endTagOpen and endTagName are shared by the RCDATA, RAWTEXT
// and script data variants, which differ only in the state they fall back to.
func (p *HTMLTokenizer) lessThanSign(r rune, eof bool, endTagOpen, fallback tokenizerState) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		return false, endTagOpen
	}
	p.emitChar('<')
	return true, fallback
}

func (p *HTMLTokenizer) endTagOpen(r rune, eof bool, endTagName, fallback tokenizerState) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		p.newTag(endTag)
		return true, endTagName
	}
	p.emitString("</")
	return true, fallback
}

func (p *HTMLTokenizer) endTagName(r rune, eof bool, self, fallback tokenizerState) (bool, tokenizerState) {
	if !eof {
		switch {
		case r == '\t' || r == '\n' || r == '\f' || r == ' ':
			if p.isApprEndTagToken() {
				return false, beforeAttributeNameState
			}
		case r == '/':
			if p.isApprEndTagToken() {
				return false, selfClosingStartTagState
			}
		case r == '>':
			if p.isApprEndTagToken() {
				return false, p.emitCurrentTag()
			}
		case isASCIIAlpha(r):
			p.tokenBuilder.WriteName(toASCIILower(r))
			p.tokenBuilder.WriteTempBuffer(r)
			return false, self
		}
	}
	p.emitString("</")
	p.emitString(p.tokenBuilder.TempBuffer())
	return true, fallback
}

func (p *HTMLTokenizer) rcDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.lessThanSign(r, eof, rcDataEndTagOpenState, rcDataState)
}

func (p *HTMLTokenizer) rcDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagOpen(r, eof, rcDataEndTagNameState, rcDataState)
}

func (p *HTMLTokenizer) rcDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagName(r, eof, rcDataEndTagNameState, rcDataState)
}

func (p *HTMLTokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.lessThanSign(r, eof, rawTextEndTagOpenState, rawTextState)
}

func (p *HTMLTokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagOpen(r, eof, rawTextEndTagNameState, rawTextState)
}

func (p *HTMLTokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagName(r, eof, rawTextEndTagNameState, rawTextState)
}

func (p *HTMLTokenizer) scriptDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '!' {
		p.emitString("<!")
		return false, scriptDataEscapeStartState
	}
	return p.lessThanSign(r, eof, scriptDataEndTagOpenState, scriptDataState)
}

func (p *HTMLTokenizer) scriptDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagOpen(r, eof, scriptDataEndTagNameState, scriptDataState)
}

func (p *HTMLTokenizer) scriptDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagName(r, eof, scriptDataEndTagNameState, scriptDataState)
}

func (p *HTMLTokenizer) scriptDataEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emitChar('-')
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapeStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		p.emitChar('-')
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

func (p *HTMLTokenizer) scriptDataEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataEscapedState
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.emitChar('\uFFFD')
	default:
		p.emitChar(r)
	}
	return false, scriptDataEscapedState
}

func (p *HTMLTokenizer) scriptDataEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataEscapedDashState
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.emitChar('\uFFFD')
	default:
		p.emitChar(r)
	}
	return false, scriptDataEscapedState
}

func (p *HTMLTokenizer) scriptDataEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataEscapedDashDashState
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		p.emitChar('>')
		return false, scriptDataState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.emitChar('\uFFFD')
	default:
		p.emitChar(r)
	}
	return false, scriptDataEscapedState
}

func (p *HTMLTokenizer) scriptDataEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
	case r == '/':
		p.tokenBuilder.ResetTempBuffer()
		return false, scriptDataEscapedEndTagOpenState
	case isASCIIAlpha(r):
		p.tokenBuilder.ResetTempBuffer()
		p.emitChar('<')
		return true, scriptDataDoubleEscapeStartState
	}
	p.emitChar('<')
	return true, scriptDataEscapedState
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagOpen(r, eof, scriptDataEscapedEndTagNameState, scriptDataEscapedState)
}

func (p *HTMLTokenizer) scriptDataEscapedEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.endTagName(r, eof, scriptDataEscapedEndTagNameState, scriptDataEscapedState)
}

// doubleEscapeBoundary handles the shared logic of the double escape start
// and end states: collect the tag name, then pick a state once it ends.
func (p *HTMLTokenizer) doubleEscapeBoundary(r rune, eof bool, self, ifScript, otherwise tokenizerState) (bool, tokenizerState) {
	if eof {
		return true, otherwise
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ' || r == '/' || r == '>':
		p.emitChar(r)
		if p.tokenBuilder.TempBuffer() == "script" {
			return false, ifScript
		}
		return false, otherwise
	case isASCIIAlpha(r):
		p.tokenBuilder.WriteTempBuffer(toASCIILower(r))
		p.emitChar(r)
		return false, self
	}
	return true, otherwise
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doubleEscapeBoundary(r, eof, scriptDataDoubleEscapeStartState, scriptDataDoubleEscapedState, scriptDataEscapedState)
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataDoubleEscapedState
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataDoubleEscapedDashState
	case '<':
		p.emitChar('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.emitChar('\uFFFD')
	default:
		p.emitChar(r)
	}
	return false, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataDoubleEscapedDashState
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitChar('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.emitChar('\uFFFD')
	default:
		p.emitChar(r)
	}
	return false, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInScriptHTMLCommentLikeText)
		p.emitEOF()
		return false, scriptDataDoubleEscapedDashDashState
	}
	switch r {
	case '-':
		p.emitChar('-')
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		p.emitChar('<')
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		p.emitChar('>')
		return false, scriptDataState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.emitChar('\uFFFD')
	default:
		p.emitChar(r)
	}
	return false, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		p.emitChar('/')
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (p *HTMLTokenizer) scriptDataDoubleEscapeEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doubleEscapeBoundary(r, eof, scriptDataDoubleEscapeEndState, scriptDataEscapedState, scriptDataDoubleEscapedState)
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeNameState
	case '/', '>':
		return true, afterAttributeNameState
	case '=':
		p.parseError(spec.UnexpectedEqualsSignBeforeAttributeName)
		p.tokenBuilder.StartAttribute()
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		p.tokenBuilder.StartAttribute()
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) leaveAttributeName() {
	if p.tokenBuilder.RemoveDuplicateAttributeName() {
		p.parseError(spec.DuplicateAttribute)
	}
}

func (p *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.leaveAttributeName()
		return true, afterAttributeNameState
	}
	switch r {
	case '\t', '\n', '\f', ' ', '/', '>':
		p.leaveAttributeName()
		return true, afterAttributeNameState
	case '=':
		p.leaveAttributeName()
		return false, beforeAttributeValueState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeName('\uFFFD')
	case '"', '\'', '<':
		p.parseError(spec.UnexpectedCharacterInAttributeName)
		p.tokenBuilder.WriteAttributeName(r)
	default:
		p.tokenBuilder.WriteAttributeName(toASCIILower(r))
	}
	return false, attributeNameState
}

func (p *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, afterAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '=':
		return false, beforeAttributeValueState
	case '>':
		return false, p.emitCurrentTag()
	default:
		p.tokenBuilder.StartAttribute()
		return true, attributeNameState
	}
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, attributeValueUnquotedState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeValueState
	case '"':
		return false, attributeValueDoubleQuotedState
	case '\'':
		return false, attributeValueSingleQuotedState
	case '>':
		p.parseError(spec.MissingAttributeValue)
		return false, p.emitCurrentTag()
	default:
		return true, attributeValueUnquotedState
	}
}

func (p *HTMLTokenizer) attributeValueQuoted(r rune, eof bool, quote rune, self tokenizerState) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case quote:
		return false, afterAttributeValueQuotedState
	case '&':
		p.returnState = self
		return false, characterReferenceState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeValue('\uFFFD')
	default:
		p.tokenBuilder.WriteAttributeValue(r)
	}
	return false, self
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.attributeValueQuoted(r, eof, '"', attributeValueDoubleQuotedState)
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.attributeValueQuoted(r, eof, '\'', attributeValueSingleQuotedState)
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeNameState
	case '&':
		p.returnState = attributeValueUnquotedState
		return false, characterReferenceState
	case '>':
		return false, p.emitCurrentTag()
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.tokenBuilder.WriteAttributeValue('\uFFFD')
	case '"', '\'', '<', '=', '`':
		p.parseError(spec.UnexpectedCharacterInUnquotedAttributeValue)
		p.tokenBuilder.WriteAttributeValue(r)
	default:
		p.tokenBuilder.WriteAttributeValue(r)
	}
	return false, attributeValueUnquotedState
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeAttributeNameState
	case '/':
		return false, selfClosingStartTagState
	case '>':
		return false, p.emitCurrentTag()
	default:
		p.parseError(spec.MissingWhitespaceBetweenAttributes)
		return true, beforeAttributeNameState
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInTag)
		p.emitEOF()
		return false, dataState
	}
	if r == '>' {
		p.tokenBuilder.EnableSelfClosing()
		return false, p.emitCurrentTag()
	}
	p.parseError(spec.UnexpectedSolidusInTag)
	return true, beforeAttributeNameState
}

func (p *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitComment()
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '>':
		p.emitComment()
		return false, dataState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.tokenBuilder.WriteData('\uFFFD')
	default:
		p.tokenBuilder.WriteData(r)
	}
	return false, bogusCommentState
}

func (p *HTMLTokenizer) inForeignContent() bool {
	return p.adjustedCurrentNode != nil && p.adjustedCurrentNode.Namespace != spec.Htmlns
}

func (p *HTMLTokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	switch {
	case eof:
	case r == '-' && p.lookahead("-", false):
		p.discard(1)
		p.newComment()
		return false, commentStartState
	case (r == 'd' || r == 'D') && p.lookahead("octype", true):
		p.discard(6)
		p.newComment()
		return false, doctypeState
	case r == '[' && p.lookahead("CDATA[", false):
		p.discard(6)
		if p.inForeignContent() {
			return false, cdataSectionState
		}
		p.parseError(spec.CDATAInHTMLContent)
		p.newComment()
		p.tokenBuilder.WriteDataString("[CDATA[")
		return false, bogusCommentState
	}
	p.parseError(spec.IncorrectlyOpenedComment)
	p.newComment()
	return true, bogusCommentState
}

func (p *HTMLTokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '-':
			return false, commentStartDashState
		case '>':
			p.parseError(spec.AbruptClosingOfEmptyComment)
			p.emitComment()
			return false, dataState
		}
	}
	return true, commentState
}

func (p *HTMLTokenizer) eofInComment() (bool, tokenizerState) {
	p.parseError(spec.EOFInComment)
	p.emitComment()
	p.emitEOF()
	return false, dataState
}

func (p *HTMLTokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInComment()
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		p.parseError(spec.AbruptClosingOfEmptyComment)
		p.emitComment()
		return false, dataState
	default:
		p.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInComment()
	}
	switch r {
	case '<':
		p.tokenBuilder.WriteData(r)
		return false, commentLessThanSignState
	case '-':
		return false, commentEndDashState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.tokenBuilder.WriteData('\uFFFD')
	default:
		p.tokenBuilder.WriteData(r)
	}
	return false, commentState
}

func (p *HTMLTokenizer) commentLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '!':
			p.tokenBuilder.WriteData(r)
			return false, commentLessThanSignBangState
		case '<':
			p.tokenBuilder.WriteData(r)
			return false, commentLessThanSignState
		}
	}
	return true, commentState
}

func (p *HTMLTokenizer) commentLessThanSignBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashState
	}
	return true, commentState
}

func (p *HTMLTokenizer) commentLessThanSignBangDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashDashState
	}
	return true, commentEndDashState
}

func (p *HTMLTokenizer) commentLessThanSignBangDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r != '>' {
		p.parseError(spec.NestedComment)
	}
	return true, commentEndState
}

func (p *HTMLTokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInComment()
	}
	if r == '-' {
		return false, commentEndState
	}
	p.tokenBuilder.WriteData('-')
	return true, commentState
}

func (p *HTMLTokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInComment()
	}
	switch r {
	case '>':
		p.emitComment()
		return false, dataState
	case '!':
		return false, commentEndBangState
	case '-':
		p.tokenBuilder.WriteData('-')
		return false, commentEndState
	default:
		p.tokenBuilder.WriteDataString("--")
		return true, commentState
	}
}

func (p *HTMLTokenizer) commentEndBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInComment()
	}
	switch r {
	case '-':
		p.tokenBuilder.WriteDataString("--!")
		return false, commentEndDashState
	case '>':
		p.parseError(spec.IncorrectlyClosedComment)
		p.emitComment()
		return false, dataState
	default:
		p.tokenBuilder.WriteDataString("--!")
		return true, commentState
	}
}

func (p *HTMLTokenizer) eofInDoctype() (bool, tokenizerState) {
	p.parseError(spec.EOFInDoctype)
	p.tokenBuilder.EnableForceQuirks()
	p.emitDoctype()
	p.emitEOF()
	return false, dataState
}

func (p *HTMLTokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInDoctype()
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeDoctypeNameState
	case '>':
		return true, beforeDoctypeNameState
	default:
		p.parseError(spec.MissingWhitespaceBeforeDoctypeName)
		return true, beforeDoctypeNameState
	}
}

func (p *HTMLTokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInDoctype()
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, beforeDoctypeNameState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.tokenBuilder.WriteName('\uFFFD')
	case '>':
		p.parseError(spec.MissingDoctypeName)
		p.tokenBuilder.EnableForceQuirks()
		p.emitDoctype()
		return false, dataState
	default:
		p.tokenBuilder.WriteName(toASCIILower(r))
	}
	return false, doctypeNameState
}

func (p *HTMLTokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInDoctype()
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, afterDoctypeNameState
	case '>':
		p.emitDoctype()
		return false, dataState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		p.tokenBuilder.WriteName('\uFFFD')
	default:
		p.tokenBuilder.WriteName(toASCIILower(r))
	}
	return false, doctypeNameState
}

func (p *HTMLTokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInDoctype()
	}
	switch {
	case r == '\t' || r == '\n' || r == '\f' || r == ' ':
		return false, afterDoctypeNameState
	case r == '>':
		p.emitDoctype()
		return false, dataState
	case (r == 'p' || r == 'P') && p.lookahead("ublic", true):
		p.discard(5)
		return false, afterDoctypePublicKeywordState
	case (r == 's' || r == 'S') && p.lookahead("ystem", true):
		p.discard(5)
		return false, afterDoctypeSystemKeywordState
	}
	p.parseError(spec.InvalidCharacterSequenceAfterDoctypeName)
	p.tokenBuilder.EnableForceQuirks()
	return true, bogusDoctypeState
}

// afterDoctypeKeyword covers both the public and system keyword states.
func (p *HTMLTokenizer) afterDoctypeKeyword(r rune, eof bool, public bool) (bool, tokenizerState) {
	if eof {
		return p.eofInDoctype()
	}
	missingWhitespace, missingID, missingQuote := spec.MissingWhitespaceAfterDoctypeSystemKeyword,
		spec.MissingDoctypeSystemIdentifier, spec.MissingQuoteBeforeDoctypeSystemIdentifier
	before, dq, sq := beforeDoctypeSystemIdentifierState, doctypeSystemIdentifierDoubleQuotedState, doctypeSystemIdentifierSingleQuotedState
	if public {
		missingWhitespace, missingID, missingQuote = spec.MissingWhitespaceAfterDoctypePublicKeyword,
			spec.MissingDoctypePublicIdentifier, spec.MissingQuoteBeforeDoctypePublicIdentifier
		before, dq, sq = beforeDoctypePublicIdentifierState, doctypePublicIdentifierDoubleQuotedState, doctypePublicIdentifierSingleQuotedState
	}

	switch r {
	case '\t', '\n', '\f', ' ':
		return false, before
	case '"', '\'':
		p.parseError(missingWhitespace)
		p.setIdentifierEmpty(public)
		if r == '"' {
			return false, dq
		}
		return false, sq
	case '>':
		p.parseError(missingID)
		p.tokenBuilder.EnableForceQuirks()
		p.emitDoctype()
		return false, dataState
	default:
		p.parseError(missingQuote)
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) setIdentifierEmpty(public bool) {
	if public {
		p.tokenBuilder.SetPublicIdentifierEmpty()
	} else {
		p.tokenBuilder.SetSystemIdentifierEmpty()
	}
}

// beforeDoctypeIdentifier covers the before public and before system
// identifier states.
func (p *HTMLTokenizer) beforeDoctypeIdentifier(r rune, eof bool, public bool) (bool, tokenizerState) {
	if eof {
		return p.eofInDoctype()
	}
	missingID, missingQuote := spec.MissingDoctypeSystemIdentifier, spec.MissingQuoteBeforeDoctypeSystemIdentifier
	self, dq, sq := beforeDoctypeSystemIdentifierState, doctypeSystemIdentifierDoubleQuotedState, doctypeSystemIdentifierSingleQuotedState
	if public {
		missingID, missingQuote = spec.MissingDoctypePublicIdentifier, spec.MissingQuoteBeforeDoctypePublicIdentifier
		self, dq, sq = beforeDoctypePublicIdentifierState, doctypePublicIdentifierDoubleQuotedState, doctypePublicIdentifierSingleQuotedState
	}

	switch r {
	case '\t', '\n', '\f', ' ':
		return false, self
	case '"':
		p.setIdentifierEmpty(public)
		return false, dq
	case '\'':
		p.setIdentifierEmpty(public)
		return false, sq
	case '>':
		p.parseError(missingID)
		p.tokenBuilder.EnableForceQuirks()
		p.emitDoctype()
		return false, dataState
	default:
		p.parseError(missingQuote)
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

// doctypeIdentifier covers the four quoted identifier states.
func (p *HTMLTokenizer) doctypeIdentifier(r rune, eof bool, quote rune, public bool, self tokenizerState) (bool, tokenizerState) {
	if eof {
		return p.eofInDoctype()
	}
	write, after, abrupt := p.tokenBuilder.WriteSystemIdentifier, afterDoctypeSystemIdentifierState, spec.AbruptDoctypeSystemIdentifier
	if public {
		write, after, abrupt = p.tokenBuilder.WritePublicIdentifier, afterDoctypePublicIdentifierState, spec.AbruptDoctypePublicIdentifier
	}

	switch r {
	case quote:
		return false, after
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
		write('\uFFFD')
	case '>':
		p.parseError(abrupt)
		p.tokenBuilder.EnableForceQuirks()
		p.emitDoctype()
		return false, dataState
	default:
		write(r)
	}
	return false, self
}

func (p *HTMLTokenizer) afterDoctypePublicKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.afterDoctypeKeyword(r, eof, true)
}

func (p *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.beforeDoctypeIdentifier(r, eof, true)
}

func (p *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '"', true, doctypePublicIdentifierDoubleQuotedState)
}

func (p *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '\'', true, doctypePublicIdentifierSingleQuotedState)
}

func (p *HTMLTokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInDoctype()
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case '>':
		p.emitDoctype()
		return false, dataState
	case '"', '\'':
		p.parseError(spec.MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers)
		p.tokenBuilder.SetSystemIdentifierEmpty()
		if r == '"' {
			return false, doctypeSystemIdentifierDoubleQuotedState
		}
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		p.parseError(spec.MissingQuoteBeforeDoctypeSystemIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInDoctype()
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case '>':
		p.emitDoctype()
		return false, dataState
	case '"':
		p.tokenBuilder.SetSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case '\'':
		p.tokenBuilder.SetSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		p.parseError(spec.MissingQuoteBeforeDoctypeSystemIdentifier)
		p.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) afterDoctypeSystemKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.afterDoctypeKeyword(r, eof, false)
}

func (p *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.beforeDoctypeIdentifier(r, eof, false)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '"', false, doctypeSystemIdentifierDoubleQuotedState)
}

func (p *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return p.doctypeIdentifier(r, eof, '\'', false, doctypeSystemIdentifierSingleQuotedState)
}

func (p *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return p.eofInDoctype()
	}
	switch r {
	case '\t', '\n', '\f', ' ':
		return false, afterDoctypeSystemIdentifierState
	case '>':
		p.emitDoctype()
		return false, dataState
	default:
		p.parseError(spec.UnexpectedCharacterAfterDoctypeSystemIdentifier)
		return true, bogusDoctypeState
	}
}

func (p *HTMLTokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.emitDoctype()
		p.emitEOF()
		return false, dataState
	}
	switch r {
	case '>':
		p.emitDoctype()
		return false, dataState
	case '\u0000':
		p.parseError(spec.UnexpectedNullCharacter)
	}
	return false, bogusDoctypeState
}

func (p *HTMLTokenizer) cdataSectionStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		p.parseError(spec.EOFInCDATA)
		p.emitEOF()
		return false, dataState
	}
	if r == ']' {
		return false, cdataSectionBracketState
	}
	p.emitChar(r)
	return false, cdataSectionState
}

func (p *HTMLTokenizer) cdataSectionBracketStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == ']' {
		return false, cdataSectionEndState
	}
	p.emitChar(']')
	return true, cdataSectionState
}

func (p *HTMLTokenizer) cdataSectionEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case ']':
			p.emitChar(']')
			return false, cdataSectionEndState
		case '>':
			return false, dataState
		}
	}
	p.emitString("]]")
	return true, cdataSectionState
}

// characterReferenceStateParser hands the reference to the charref decoder,
// which does the work of the named and numeric reference states at once.
func (p *HTMLTokenizer) characterReferenceStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof || !(isASCIIAlphanumeric(r) || r == '#') {
		p.flushCharacterReference("&")
		return true, p.returnState
	}

	in := append([]byte{byte(r)}, p.input.peek(charRefLookahead)...)
	res := charref.Decode(in, wasConsumedByAttribute(p.returnState))
	for _, kind := range res.Errors {
		p.parseError(kind)
	}
	p.flushCharacterReference(res.Text)
	if res.Consumed == 0 {
		return true, p.returnState
	}
	p.discard(res.Consumed - 1)
	return false, p.returnState
}

// a stateHandler is a func that takes in a rune and a bool representing the endoffile
// and returns whether to reconsume the rune and the next state to transition to.
type parserStateHandler func(in rune, eof bool) (bool, tokenizerState)

type tokenizerState uint

const (
	dataState tokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
	characterReferenceState
)

var tokenizerStateNames = [...]string{
	"data", "RCDATA", "RAWTEXT", "script data", "PLAINTEXT", "tag open",
	"end tag open", "tag name", "RCDATA less-than sign", "RCDATA end tag open",
	"RCDATA end tag name", "RAWTEXT less-than sign", "RAWTEXT end tag open",
	"RAWTEXT end tag name", "script data less-than sign",
	"script data end tag open", "script data end tag name",
	"script data escape start", "script data escape start dash",
	"script data escaped", "script data escaped dash",
	"script data escaped dash dash", "script data escaped less-than sign",
	"script data escaped end tag open", "script data escaped end tag name",
	"script data double escape start", "script data double escaped",
	"script data double escaped dash", "script data double escaped dash dash",
	"script data double escaped less-than sign", "script data double escape end",
	"before attribute name", "attribute name", "after attribute name",
	"before attribute value", "attribute value (double-quoted)",
	"attribute value (single-quoted)", "attribute value (unquoted)",
	"after attribute value (quoted)", "self-closing start tag", "bogus comment",
	"markup declaration open", "comment start", "comment start dash", "comment",
	"comment less-than sign", "comment less-than sign bang",
	"comment less-than sign bang dash", "comment less-than sign bang dash dash",
	"comment end dash", "comment end", "comment end bang", "DOCTYPE",
	"before DOCTYPE name", "DOCTYPE name", "after DOCTYPE name",
	"after DOCTYPE public keyword", "before DOCTYPE public identifier",
	"DOCTYPE public identifier (double-quoted)",
	"DOCTYPE public identifier (single-quoted)",
	"after DOCTYPE public identifier",
	"between DOCTYPE public and system identifiers",
	"after DOCTYPE system keyword", "before DOCTYPE system identifier",
	"DOCTYPE system identifier (double-quoted)",
	"DOCTYPE system identifier (single-quoted)",
	"after DOCTYPE system identifier", "bogus DOCTYPE", "CDATA section",
	"CDATA section bracket", "CDATA section end", "character reference",
}

func (s tokenizerState) String() string {
	if int(s) < len(tokenizerStateNames) {
		return tokenizerStateNames[s]
	}
	return "unknown"
}

func (p *HTMLTokenizer) takeLastEmittedToken() *Token {
	if len(p.emittedTokens) > 0 {
		ret := p.emittedTokens[0]
		p.emittedTokens = p.emittedTokens[1:]
		if ret.TokenType == endOfFileToken {
			p.done = true
		}
		return &ret
	}
	return nil
}

func (p *HTMLTokenizer) Next() bool {
	return !p.done && p.err == nil
}

// Token returns the next token. progress carries what the tree constructor
// learned from the previous token: the adjusted current node and, when a
// start tag switches content models, the state to continue in.
func (p *HTMLTokenizer) Token(progress *Progress) (*Token, error) {
	if progress != nil {
		p.adjustedCurrentNode = progress.AdjustedCurrentNode
		if progress.TokenizerState != nil {
			p.switchState(*progress.TokenizerState)
		}
	}

	// some states emit more than 1 token at a time and sometimes no tokens.
	// loop until at least 1 token is emitted and then take them.
	for {
		if token := p.takeLastEmittedToken(); token != nil {
			return token, nil
		}
		if p.err != nil {
			return nil, p.err
		}

		r, eof, err := p.input.next()
		if err != nil {
			p.err = err
			return nil, err
		}
		if !eof {
			p.checkInputCharacter(r)
		}
		p.processRune(r, eof)
	}
}

func (p *HTMLTokenizer) switchState(s tokenizerState) {
	if p.trace && s != p.currentState {
		p.log.WithFields(logrus.Fields{"from": p.currentState, "to": s}).Trace("state switched by tree construction")
	}
	p.currentState = s
}

func (p *HTMLTokenizer) processRune(r rune, eof bool) {
	reconsume := true
	for reconsume {
		prev := p.currentState
		reconsume, p.currentState = p.stateToParser(p.currentState)(r, eof)
		if p.trace && prev != p.currentState {
			p.log.WithFields(logrus.Fields{
				"rune": string(r),
				"eof":  eof,
				"from": prev,
				"to":   p.currentState,
			}).Trace("state transition")
		}
	}
}
