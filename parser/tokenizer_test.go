package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenizer(in string) (*HTMLTokenizer, *ErrorReporter) {
	reporter := newErrorReporter(discardLogger)
	return NewHTMLTokenizer(strings.NewReader(in), DefaultConfig(), reporter), reporter
}

// tokenize runs the tokenizer on its own, starting in state and never
// switching states on behalf of a tree constructor. The EOF token is kept.
func tokenize(t *testing.T, in string, state tokenizerState) ([]*Token, *ErrorReporter) {
	t.Helper()
	p, reporter := newTestTokenizer(in)
	progress := MakeProgress(nil, &state)
	var tokens []*Token
	for p.Next() {
		token, err := p.Token(progress)
		require.NoError(t, err)
		tokens = append(tokens, token)
		progress = nil
	}
	return tokens, reporter
}

// mergeCharacters joins runs of character tokens and drops positions so
// expectations can be written compactly.
func mergeCharacters(tokens []*Token) []Token {
	var out []Token
	for _, tok := range tokens {
		tok := *tok
		tok.Pos = spec.Position{}
		if tok.TokenType == characterToken && len(out) > 0 && out[len(out)-1].TokenType == characterToken {
			out[len(out)-1].Data += tok.Data
			continue
		}
		out = append(out, tok)
	}
	return out
}

func errorKinds(errs []spec.ParseError) []spec.ErrorKind {
	kinds := make([]spec.ErrorKind, 0, len(errs))
	for _, e := range errs {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

type tokezinerAttributeAccuracyTestcase struct {
	inHTML string            // snippet of HTML to tokenize (should only be one element)
	attrs  map[string]string // expected attributes to collected from the first token that is produced
}

var tokenizerAttributeAccuracyTests = []tokezinerAttributeAccuracyTestcase{
	{"<head></head>", map[string]string{}},
	{"<script src='123' onload='test'></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", map[string]string{
		"href":    "https://google.com",
		"onclick": "alert(1)",
	}},
	{"<script src='123' src='456'></script>", map[string]string{
		"src": "123",
	}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script =src='123'onload='test' ></script>", map[string]string{
		"=src":   "123",
		"onload": "test",
	}},
	{"<script src></script>", map[string]string{
		"src": "",
	}},
	{"<script src test></script>", map[string]string{
		"src":  "",
		"test": "",
	}},
	{"<script 'asd></script>", map[string]string{
		"'asd": "",
	}},
	{"<script <asd></script>", map[string]string{
		"<asd": "",
	}},
	{"<script ABC=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<script abc='\u0000123'></script>", map[string]string{
		"abc": "\uFFFD123",
	}},
	{"<script abc=></script>", map[string]string{
		"abc": "",
	}},
	{"<script\tabc=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<a title='&lt;b&gt;' href='?x=1&amp=2'>", map[string]string{
		"title": "<b>",
		"href":  "?x=1&amp=2",
	}},
}

// TestTokenizerAttributeAccuracy just makes sure that we have the
// correct number attribute names and values
func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		runTestTokenizerAttributeAccuracy(tt, t)
	}
}

// helper function to parallelize the above test case.
func runTestTokenizerAttributeAccuracy(tt tokezinerAttributeAccuracyTestcase, t *testing.T) {
	t.Run(tt.inHTML, func(t *testing.T) {
		t.Parallel()
		tokens, _ := tokenize(t, tt.inHTML, dataState)
		require.NotEmpty(t, tokens)
		first := tokens[0]
		require.Equal(t, startTagToken, first.TokenType)
		assert.Len(t, first.Attributes, len(tt.attrs))
		for k, v := range tt.attrs {
			got, ok := first.Attr(k)
			if assert.True(t, ok, "missing attribute %s", k) {
				assert.Equal(t, v, got)
			}
		}
	})
}

type stateMachineTestCase struct {
	inRune            rune           // the rune to pass to the startingState
	startingState     tokenizerState // the state to start from
	shouldReconsume   bool           // the expectation if the next state should reconsume
	nextExpectedState tokenizerState // the next state
}

// TestStateParsers tests to make sure that each component of the state machine returns the next
// expected state. Some flows need lookahead or builder state, so only the basic ones are here.
func TestStateParsers(t *testing.T) {
	stateParserTests := []stateMachineTestCase{
		{'&', dataState, false, characterReferenceState},
		{'<', dataState, false, tagOpenState},
		{'\u0000', dataState, false, dataState},
		{'a', dataState, false, dataState},
		{'A', dataState, false, dataState},
		{'1', dataState, false, dataState},

		{'&', rcDataState, false, characterReferenceState},
		{'<', rcDataState, false, rcDataLessThanSignState},
		{'\u0000', rcDataState, false, rcDataState},
		{'#', rcDataState, false, rcDataState},

		{'<', rawTextState, false, rawTextLessThanSignState},
		{'&', rawTextState, false, rawTextState},
		{'<', scriptDataState, false, scriptDataLessThanSignState},
		{'<', plaintextState, false, plaintextState},

		{'!', tagOpenState, false, markupDeclarationOpenState},
		{'/', tagOpenState, false, endTagOpenState},
		{'a', tagOpenState, true, tagNameState},
		{'?', tagOpenState, true, bogusCommentState},
		{'1', tagOpenState, true, dataState},

		{'a', endTagOpenState, true, tagNameState},
		{'>', endTagOpenState, false, dataState},
		{'1', endTagOpenState, true, bogusCommentState},

		{' ', tagNameState, false, beforeAttributeNameState},
		{'/', tagNameState, false, selfClosingStartTagState},
		{'>', tagNameState, false, dataState},
		{'b', tagNameState, false, tagNameState},

		{'/', rcDataLessThanSignState, false, rcDataEndTagOpenState},
		{'a', rcDataLessThanSignState, true, rcDataState},
		{'!', scriptDataLessThanSignState, false, scriptDataEscapeStartState},

		{' ', beforeAttributeNameState, false, beforeAttributeNameState},
		{'/', beforeAttributeNameState, true, afterAttributeNameState},
		{'a', beforeAttributeNameState, true, attributeNameState},
		{'=', beforeAttributeNameState, false, attributeNameState},

		{'=', attributeNameState, false, beforeAttributeValueState},
		{'>', attributeNameState, true, afterAttributeNameState},

		{'"', beforeAttributeValueState, false, attributeValueDoubleQuotedState},
		{'\'', beforeAttributeValueState, false, attributeValueSingleQuotedState},
		{'x', beforeAttributeValueState, true, attributeValueUnquotedState},

		{'"', attributeValueDoubleQuotedState, false, afterAttributeValueQuotedState},
		{'&', attributeValueDoubleQuotedState, false, characterReferenceState},
		{'\'', attributeValueSingleQuotedState, false, afterAttributeValueQuotedState},
		{' ', attributeValueUnquotedState, false, beforeAttributeNameState},
		{'&', attributeValueUnquotedState, false, characterReferenceState},

		{'x', afterAttributeValueQuotedState, true, beforeAttributeNameState},
		{'x', selfClosingStartTagState, true, beforeAttributeNameState},
		{'>', bogusCommentState, false, dataState},
		{' ', characterReferenceState, true, dataState},
	}

	for _, tt := range stateParserTests {
		runStateParserTest(tt, t)
	}
}

// helper function to parallelize the above test case
func runStateParserTest(testcase stateMachineTestCase, t *testing.T) {
	testName := fmt.Sprintf("%s-%#U", testcase.startingState, testcase.inRune)
	t.Run(testName, func(t *testing.T) {
		t.Parallel()
		p, _ := newTestTokenizer("")
		reconsume, state := p.stateToParser(testcase.startingState)(testcase.inRune, false)
		assert.Equal(t, testcase.nextExpectedState, state, "next state")
		assert.Equal(t, testcase.shouldReconsume, reconsume, "reconsume")
	})
}

type parserStatefulnessTestCase struct {
	inHTML     string                                // the HTML to tokenize
	startState tokenizerState                        // the starting state of the tokenizer
	testFunc   func(*HTMLTokenizer) (string, string) // since we are testing internal state, we need a function that can look inside the tokenizer
}

// TestParseStatefulness feeds runes straight into the state machine without
// an EOF, which would flush the token builder, and then looks at what the
// builder collected.
func TestParseStatefulness(t *testing.T) {
	parserStatefulnessTestCases := []parserStatefulnessTestCase{
		{"&", dataState, func(p *HTMLTokenizer) (string, string) { return p.returnState.String(), dataState.String() }},
		{"&", rcDataState, func(p *HTMLTokenizer) (string, string) { return p.returnState.String(), rcDataState.String() }},
		{"b", tagOpenState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.name.String(), "b" }},
		{"ba", tagOpenState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.name.String(), "ba" }},
		{"bAc", tagOpenState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.name.String(), "bac" }},
		{"bA\u0000c", tagOpenState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.name.String(), "ba\uFFFDc" }},
		{"a", endTagOpenState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.name.String(), "a" }},
		{"P", endTagOpenState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.name.String(), "p" }},
		{"1", endTagOpenState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.data.String(), "1" }},
		{"U", tagNameState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.name.String(), "u" }},
		{"u", tagNameState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.name.String(), "u" }},
		{"aBc", attributeNameState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.attributeKey.String(), "abc" }},
		{"x\u0000y", attributeValueDoubleQuotedState, func(p *HTMLTokenizer) (string, string) {
			return p.tokenBuilder.attributeValue.String(), "x\uFFFDy"
		}},
		{"ab&", attributeValueSingleQuotedState, func(p *HTMLTokenizer) (string, string) {
			return p.returnState.String(), attributeValueSingleQuotedState.String()
		}},
		{"?php", tagOpenState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.data.String(), "?php" }},
		{"html", doctypeState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.name.String(), "html" }},
	}

	for _, testcase := range parserStatefulnessTestCases {
		runParserStatefulnessTest(testcase, t)
	}
}

// helper function to paralleize the above tests
func runParserStatefulnessTest(testcase parserStatefulnessTestCase, t *testing.T) {
	testName := fmt.Sprintf("%s-%s", testcase.startState, testcase.inHTML)
	t.Run(testName, func(t *testing.T) {
		t.Parallel()
		p, _ := newTestTokenizer("")
		p.currentState = testcase.startState
		for _, r := range testcase.inHTML {
			p.processRune(r, false)
		}
		answer, expected := testcase.testFunc(p)
		assert.Equal(t, expected, answer)
	})
}

func TestTokenStream(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		in     string
		state  tokenizerState
		tokens []Token
		errs   []spec.ErrorKind
	}{
		{
			name: "doctype",
			in:   "<!DOCTYPE html>",
			tokens: []Token{
				{TokenType: docTypeToken, TagName: "html", PublicIDMissing: true, SystemIDMissing: true},
			},
		},
		{
			name: "doctype with identifiers",
			in:   `<!doctype HTML PUBLIC "-//W3C//DTD HTML 4.01//EN" 'x'>`,
			tokens: []Token{
				{TokenType: docTypeToken, TagName: "html", PublicIdentifier: "-//W3C//DTD HTML 4.01//EN", SystemIdentifier: "x"},
			},
		},
		{
			name:   "comment",
			in:     "<!-- hi -->",
			tokens: []Token{{TokenType: commentToken, Data: " hi "}},
		},
		{
			name:   "empty comment",
			in:     "<!---->",
			tokens: []Token{{TokenType: commentToken}},
		},
		{
			name:   "abrupt comment",
			in:     "<!-->",
			tokens: []Token{{TokenType: commentToken}},
			errs:   []spec.ErrorKind{spec.AbruptClosingOfEmptyComment},
		},
		{
			name:   "processing instruction",
			in:     "<?php x ?>",
			tokens: []Token{{TokenType: commentToken, Data: "?php x ?"}},
			errs:   []spec.ErrorKind{spec.UnexpectedQuestionMarkInsteadOfTagName},
		},
		{
			name:   "cdata in html",
			in:     "<![CDATA[x]]>",
			tokens: []Token{{TokenType: commentToken, Data: "[CDATA[x]]"}},
			errs:   []spec.ErrorKind{spec.CDATAInHTMLContent},
		},
		{
			name:   "named reference",
			in:     "a&amp;b",
			tokens: []Token{{TokenType: characterToken, Data: "a&b"}},
		},
		{
			name:   "hex reference",
			in:     "&#x41;",
			tokens: []Token{{TokenType: characterToken, Data: "A"}},
		},
		{
			name:   "windows-1252 reference",
			in:     "&#128;",
			tokens: []Token{{TokenType: characterToken, Data: "\u20AC"}},
			errs:   []spec.ErrorKind{spec.ControlCharacterReference},
		},
		{
			name:   "bare ampersand",
			in:     "a & b",
			tokens: []Token{{TokenType: characterToken, Data: "a & b"}},
		},
		{
			name:   "self-closing",
			in:     "<br/>",
			tokens: []Token{{TokenType: startTagToken, TagName: "br", SelfClosing: true}},
		},
		{
			name:   "end tag with attributes",
			in:     "</p x=1>",
			tokens: []Token{{TokenType: endTagToken, TagName: "p"}},
			errs:   []spec.ErrorKind{spec.EndTagWithAttributes},
		},
		{
			name: "duplicate attribute",
			in:   `<div id="a" id="b">`,
			tokens: []Token{{TokenType: startTagToken, TagName: "div", Attributes: []spec.Attribute{
				{Name: "id", Value: "a"},
			}}},
			errs: []spec.ErrorKind{spec.DuplicateAttribute},
		},
		{
			name:   "eof in tag",
			in:     "<div",
			tokens: nil,
			errs:   []spec.ErrorKind{spec.EOFInTag},
		},
		{
			name:   "lone less-than",
			in:     "a < b",
			tokens: []Token{{TokenType: characterToken, Data: "a < b"}},
			errs:   []spec.ErrorKind{spec.InvalidFirstCharacterOfTagName},
		},
		{
			name:  "rcdata keeps tags as text",
			in:    "<b>&lt;</title>",
			state: rcDataState,
			// nothing opened a title, so the end tag is not appropriate
			tokens: []Token{{TokenType: characterToken, Data: "<b><</title>"}},
		},
		{
			name:   "lone surrogate in input",
			in:     "a\xed\xa0\x80b",
			tokens: []Token{{TokenType: characterToken, Data: "a\uFFFDb"}},
			errs:   []spec.ErrorKind{spec.SurrogateInInputStream},
		},
		{
			name:   "rawtext ignores references",
			in:     "a&amp;b",
			state:  rawTextState,
			tokens: []Token{{TokenType: characterToken, Data: "a&amp;b"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tokens, reporter := tokenize(t, tt.in, tt.state)
			require.NotEmpty(t, tokens)
			assert.Equal(t, endOfFileToken, tokens[len(tokens)-1].TokenType)

			assert.Equal(t, tt.tokens, mergeCharacters(tokens[:len(tokens)-1]))
			assert.Equal(t, tt.errs, nilIfEmpty(errorKinds(reporter.Errors())))
		})
	}
}

func nilIfEmpty(kinds []spec.ErrorKind) []spec.ErrorKind {
	if len(kinds) == 0 {
		return nil
	}
	return kinds
}

func TestAppropriateEndTag(t *testing.T) {
	t.Parallel()
	p, _ := newTestTokenizer("x</title>y")
	p.lastEmittedStartTagName = "title"
	state := rcDataState
	progress := MakeProgress(nil, &state)

	var tokens []*Token
	for p.Next() {
		token, err := p.Token(progress)
		require.NoError(t, err)
		tokens = append(tokens, token)
		progress = nil
	}
	assert.Equal(t, []Token{
		{TokenType: characterToken, Data: "x"},
		{TokenType: endTagToken, TagName: "title"},
		{TokenType: characterToken, Data: "y"},
		{TokenType: endOfFileToken},
	}, mergeCharacters(tokens))
}

func TestTokenPositions(t *testing.T) {
	t.Parallel()
	tokens, reporter := tokenize(t, "a\r\n<b x x>", dataState)

	tags := make([]*Token, 0, 1)
	for _, tok := range tokens {
		if tok.TokenType == startTagToken {
			tags = append(tags, tok)
		}
	}
	require.Len(t, tags, 1)
	assert.Equal(t, spec.Position{Offset: 3, Line: 2, Col: 1}, tags[0].Pos)

	require.Equal(t, 1, reporter.Len())
	assert.Equal(t, spec.DuplicateAttribute, reporter.Errors()[0].Kind)
	assert.Equal(t, 2, reporter.Errors()[0].Pos.Line)
}

func TestTokenizerInputLimit(t *testing.T) {
	t.Parallel()
	reporter := newErrorReporter(discardLogger)
	cfg := DefaultConfig()
	cfg.MaxInputSize = 4
	p := NewHTMLTokenizer(strings.NewReader("<div>hello</div>"), cfg, reporter)

	var err error
	for p.Next() && err == nil {
		_, err = p.Token(nil)
	}
	assert.ErrorIs(t, err, ErrResourceExhausted)
	assert.False(t, p.Next())
}
