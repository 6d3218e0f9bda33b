package spec

import "fmt"

// Position locates a point in the input. Line and Col are 1-based, Col counts
// characters, and Offset counts bytes from the start of the input.
type Position struct {
	Offset int
	Line   int
	Col    int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// ErrorKind names a recoverable parse error. Tokenizer errors use the codes
// from the HTML standard.
type ErrorKind string

const (
	AbruptClosingOfEmptyComment                               ErrorKind = "abrupt-closing-of-empty-comment"
	AbruptDoctypePublicIdentifier                             ErrorKind = "abrupt-doctype-public-identifier"
	AbruptDoctypeSystemIdentifier                             ErrorKind = "abrupt-doctype-system-identifier"
	AbsenceOfDigitsInNumericCharacterReference                ErrorKind = "absence-of-digits-in-numeric-character-reference"
	CDATAInHTMLContent                                        ErrorKind = "cdata-in-html-content"
	CharacterReferenceOutsideUnicodeRange                     ErrorKind = "character-reference-outside-unicode-range"
	ControlCharacterInInputStream                             ErrorKind = "control-character-in-input-stream"
	ControlCharacterReference                                 ErrorKind = "control-character-reference"
	DuplicateAttribute                                        ErrorKind = "duplicate-attribute"
	EndTagWithAttributes                                      ErrorKind = "end-tag-with-attributes"
	EndTagWithTrailingSolidus                                 ErrorKind = "end-tag-with-trailing-solidus"
	EOFBeforeTagName                                          ErrorKind = "eof-before-tag-name"
	EOFInCDATA                                                ErrorKind = "eof-in-cdata"
	EOFInComment                                              ErrorKind = "eof-in-comment"
	EOFInDoctype                                              ErrorKind = "eof-in-doctype"
	EOFInScriptHTMLCommentLikeText                            ErrorKind = "eof-in-script-html-comment-like-text"
	EOFInTag                                                  ErrorKind = "eof-in-tag"
	IncorrectlyClosedComment                                  ErrorKind = "incorrectly-closed-comment"
	IncorrectlyOpenedComment                                  ErrorKind = "incorrectly-opened-comment"
	InvalidCharacterSequenceAfterDoctypeName                  ErrorKind = "invalid-character-sequence-after-doctype-name"
	InvalidFirstCharacterOfTagName                            ErrorKind = "invalid-first-character-of-tag-name"
	MissingAttributeValue                                     ErrorKind = "missing-attribute-value"
	MissingDoctypeName                                        ErrorKind = "missing-doctype-name"
	MissingDoctypePublicIdentifier                            ErrorKind = "missing-doctype-public-identifier"
	MissingDoctypeSystemIdentifier                            ErrorKind = "missing-doctype-system-identifier"
	MissingEndTagName                                         ErrorKind = "missing-end-tag-name"
	MissingQuoteBeforeDoctypePublicIdentifier                 ErrorKind = "missing-quote-before-doctype-public-identifier"
	MissingQuoteBeforeDoctypeSystemIdentifier                 ErrorKind = "missing-quote-before-doctype-system-identifier"
	MissingSemicolonAfterCharacterReference                   ErrorKind = "missing-semicolon-after-character-reference"
	MissingWhitespaceAfterDoctypePublicKeyword                ErrorKind = "missing-whitespace-after-doctype-public-keyword"
	MissingWhitespaceAfterDoctypeSystemKeyword                ErrorKind = "missing-whitespace-after-doctype-system-keyword"
	MissingWhitespaceBeforeDoctypeName                        ErrorKind = "missing-whitespace-before-doctype-name"
	MissingWhitespaceBetweenAttributes                        ErrorKind = "missing-whitespace-between-attributes"
	MissingWhitespaceBetweenDoctypePublicAndSystemIdentifiers ErrorKind = "missing-whitespace-between-doctype-public-and-system-identifiers"
	NestedComment                                             ErrorKind = "nested-comment"
	NoncharacterCharacterReference                            ErrorKind = "noncharacter-character-reference"
	NoncharacterInInputStream                                 ErrorKind = "noncharacter-in-input-stream"
	NonVoidHTMLElementStartTagWithTrailingSolidus             ErrorKind = "non-void-html-element-start-tag-with-trailing-solidus"
	NullCharacterReference                                    ErrorKind = "null-character-reference"
	SurrogateCharacterReference                               ErrorKind = "surrogate-character-reference"
	SurrogateInInputStream                                    ErrorKind = "surrogate-in-input-stream"
	UnexpectedCharacterAfterDoctypeSystemIdentifier           ErrorKind = "unexpected-character-after-doctype-system-identifier"
	UnexpectedCharacterInAttributeName                        ErrorKind = "unexpected-character-in-attribute-name"
	UnexpectedCharacterInUnquotedAttributeValue               ErrorKind = "unexpected-character-in-unquoted-attribute-value"
	UnexpectedEqualsSignBeforeAttributeName                   ErrorKind = "unexpected-equals-sign-before-attribute-name"
	UnexpectedNullCharacter                                   ErrorKind = "unexpected-null-character"
	UnexpectedQuestionMarkInsteadOfTagName                    ErrorKind = "unexpected-question-mark-instead-of-tag-name"
	UnexpectedSolidusInTag                                    ErrorKind = "unexpected-solidus-in-tag"
	UnknownNamedCharacterReference                            ErrorKind = "unknown-named-character-reference"

	// Tree construction errors.
	MissingDoctype             ErrorKind = "missing-doctype"
	UnexpectedDoctype          ErrorKind = "unexpected-doctype"
	NonConformingDoctype       ErrorKind = "non-conforming-doctype"
	UnexpectedStartTag         ErrorKind = "unexpected-start-tag"
	UnexpectedEndTag           ErrorKind = "unexpected-end-tag"
	UnexpectedCharacter        ErrorKind = "unexpected-character"
	UnexpectedEOF              ErrorKind = "unexpected-eof"
	UnclosedElements           ErrorKind = "unclosed-elements"
	FosterParentedContent      ErrorKind = "foster-parented-content"
	MisnestedFormattingElement ErrorKind = "misnested-formatting-element"
)

// ParseError is a recoverable error recorded while parsing.
type ParseError struct {
	Kind ErrorKind
	Pos  Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Kind)
}
