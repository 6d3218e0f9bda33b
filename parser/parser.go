package parser

import (
	"io"
	"strings"

	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/sirupsen/logrus"
)

// Parser runs one parse. The tree constructor pulls tokens from the
// tokenizer one at a time and hands back a Progress before the next one.
type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor

	arena  *spec.Arena
	errors *ErrorReporter
	cfg    Config
	log    *logrus.Entry
}

func NewParser(htmlIn io.Reader, opts ...Option) *Parser {
	cfg := newConfig(opts)
	arena := spec.NewArena()
	reporter := newErrorReporter(cfg.Logger)
	return &Parser{
		Tokenizer:       NewHTMLTokenizer(htmlIn, cfg, reporter),
		TreeConstructor: NewHTMLTreeConstructor(arena, cfg, reporter),
		arena:           arena,
		errors:          reporter,
		cfg:             cfg,
		log:             cfg.Logger.WithField("component", "parser"),
	}
}

// Progress is what the tokenizer needs from the tree constructor before it
// produces the next token.
type Progress struct {
	AdjustedCurrentNode *spec.Node
	TokenizerState      *tokenizerState
}

func MakeProgress(adjCurNode *spec.Node, tokenizerState *tokenizerState) *Progress {
	return &Progress{
		AdjustedCurrentNode: adjCurNode,
		TokenizerState:      tokenizerState,
	}
}

// ParseDocument parses input as a complete HTML document. Malformed markup
// never fails; the only errors are resource limits.
func ParseDocument(input string, opts ...Option) (*spec.Document, error) {
	return ParseDocumentReader(strings.NewReader(input), opts...)
}

// ParseDocumentReader parses a UTF-8 document read from r. The input size
// limit is enforced while reading.
func ParseDocumentReader(r io.Reader, opts ...Option) (*spec.Document, error) {
	return NewParser(r, opts...).Start()
}

// Start parses the whole input as a document.
func (p *Parser) Start() (*spec.Document, error) {
	if err := p.run(dataState); err != nil {
		return nil, err
	}

	tc := p.TreeConstructor
	doc := spec.NewDocument(p.arena, tc.document.Handle())
	doc.QuirksMode = tc.quirksMode
	doc.Errors = p.errors.Errors()
	if p.cfg.Logger.IsLevelEnabled(logrus.DebugLevel) {
		p.log.WithFields(logrus.Fields{
			"errors": p.errors.Len(),
			"nodes":  p.arena.Len(),
			"quirks": doc.QuirksMode,
		}).Debug("document parsed")
	}
	return doc, nil
}

func (p *Parser) run(start tokenizerState) error {
	if err := p.Tokenizer.input.skipBOM(); err != nil {
		return err
	}

	tc := p.TreeConstructor
	progress := MakeProgress(tc.adjustedCurrentNode(), &start)
	for p.Tokenizer.Next() && !tc.Done() {
		t, err := p.Tokenizer.Token(progress)
		if err != nil {
			p.log.WithError(err).Warn("tokenization aborted")
			return err
		}
		progress = tc.ProcessToken(t)
	}
	tc.finish()
	return tc.Err()
}
