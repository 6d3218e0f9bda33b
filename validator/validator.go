// Package validator reports parse errors together with content checks over
// the parsed tree, such as missing required attributes and duplicate ids.
package validator

import (
	"fmt"

	"github.com/heathj/htmlcheck/parser"
	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/sirupsen/logrus"
)

type IssueKind string

const (
	MissingRequiredAttribute IssueKind = "missing-required-attribute"
	InvalidAttributeValue    IssueKind = "invalid-attribute-value"
	DeprecatedElement        IssueKind = "deprecated-element"
	DuplicateID              IssueKind = "duplicate-id"
	UnknownElement           IssueKind = "unknown-element"
)

// Issue is a problem found in a tree that parsed. Element is the tag name of
// the offending element.
type Issue struct {
	Kind    IssueKind
	Element string
	Message string
	Pos     spec.Position
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Pos, i.Kind, i.Message)
}

// Result holds everything wrong with one input.
type Result struct {
	Errors []spec.ParseError
	Issues []Issue
}

// Valid reports whether the input parsed without errors and passed every
// check.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0 && len(r.Issues) == 0
}

// Validate parses input as a document and checks the result. The error is
// non-nil only when the parse itself was aborted.
func Validate(input string, opts ...parser.Option) (*Result, error) {
	doc, err := parser.ParseDocument(input, opts...)
	if err != nil {
		return nil, err
	}

	c := newChecker(loggerFor(opts))
	c.check(doc.Node)
	return &Result{Errors: doc.Errors, Issues: c.issues}, nil
}

// ValidateFragment parses input in the given context element, see
// parser.ParseFragment, and checks the resulting nodes.
func ValidateFragment(input, context string, opts ...parser.Option) (*Result, error) {
	frag, err := parser.ParseFragment(input, context, opts...)
	if err != nil {
		return nil, err
	}

	c := newChecker(loggerFor(opts))
	for _, n := range frag.Nodes {
		c.check(n)
	}
	return &Result{Errors: frag.Errors, Issues: c.issues}, nil
}

// CheckDocument runs the tree checks over an already parsed document.
func CheckDocument(doc *spec.Document) []Issue {
	c := newChecker(nil)
	c.check(doc.Node)
	return c.issues
}

// CheckNodes runs the tree checks over each node and its descendants. Ids
// are compared across all of the nodes.
func CheckNodes(nodes []*spec.Node) []Issue {
	c := newChecker(nil)
	for _, n := range nodes {
		c.check(n)
	}
	return c.issues
}

func loggerFor(opts []parser.Option) *logrus.Logger {
	cfg := parser.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.Logger
}

type checker struct {
	issues []Issue
	ids    map[string]struct{}
	log    *logrus.Entry
	debug  bool
}

func newChecker(logger *logrus.Logger) *checker {
	if logger == nil {
		logger = parser.DefaultConfig().Logger
	}
	return &checker{
		ids:   make(map[string]struct{}),
		log:   logger.WithField("component", "validator"),
		debug: logger.IsLevelEnabled(logrus.DebugLevel),
	}
}

func (c *checker) check(root *spec.Node) {
	root.Walk(func(n *spec.Node) bool {
		// foreign elements have their own vocabularies; HTML inside
		// foreignObject or annotation-xml is still reached.
		if n.Type == spec.ElementNode && n.Namespace == spec.Htmlns {
			c.checkElement(n)
		}
		return true
	})
}

func (c *checker) report(n *spec.Node, kind IssueKind, format string, args ...interface{}) {
	issue := Issue{
		Kind:    kind,
		Element: n.Name,
		Message: fmt.Sprintf(format, args...),
		Pos:     n.Pos,
	}
	c.issues = append(c.issues, issue)
	if c.debug {
		c.log.WithFields(logrus.Fields{
			"kind":    kind,
			"element": n.Name,
			"line":    n.Pos.Line,
			"col":     n.Pos.Col,
		}).Debug(issue.Message)
	}
}

func (c *checker) checkElement(n *spec.Node) {
	switch {
	case isDeprecated(n.Name):
		c.report(n, DeprecatedElement, "the <%s> element is obsolete", n.Name)
	case !isKnownElement(n.Name):
		c.report(n, UnknownElement, "<%s> is not an HTML element", n.Name)
	}

	c.checkRequiredAttributes(n)
	c.checkID(n)
	c.checkAttributeValues(n)
}
