package parser

import (
	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrResourceExhausted is returned when the input or the tree grows past
	// a configured limit. No document is produced.
	ErrResourceExhausted = errors.New("resource limit exceeded")
	// ErrInvalidContext is returned by ParseFragment for a context element
	// name that could never be an element.
	ErrInvalidContext = errors.New("invalid fragment context")
)

// ErrorReporter collects recoverable parse errors in the order they are found.
type ErrorReporter struct {
	errors []spec.ParseError
	log    *logrus.Entry
	debug  bool
}

func newErrorReporter(logger *logrus.Logger) *ErrorReporter {
	return &ErrorReporter{
		log:   logger.WithField("component", "errors"),
		debug: logger.IsLevelEnabled(logrus.DebugLevel),
	}
}

func (r *ErrorReporter) Report(kind spec.ErrorKind, pos spec.Position) {
	r.errors = append(r.errors, spec.ParseError{Kind: kind, Pos: pos})
	if r.debug {
		r.log.WithFields(logrus.Fields{
			"kind": kind,
			"line": pos.Line,
			"col":  pos.Col,
		}).Debug("parse error")
	}
}

func (r *ErrorReporter) Errors() []spec.ParseError {
	return r.errors
}

func (r *ErrorReporter) Len() int {
	return len(r.errors)
}
