package parser

import (
	"io"

	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMaxInputSize int64 = 16 << 20
	DefaultMaxDepth           = 512
)

// Config controls a single parse. Build one with DefaultConfig and Options.
type Config struct {
	// MaxInputSize caps the input in bytes. Zero or less disables the cap.
	MaxInputSize int64
	// MaxDepth caps the stack of open elements.
	MaxDepth int
	// Scripting sets the scripting flag, which changes how noscript parses.
	Scripting bool
	// QuirksMode is the quirks mode of the document that owns the context
	// element when parsing fragments.
	QuirksMode spec.QuirksMode
	// Logger receives trace output and parse error diagnostics.
	Logger *logrus.Logger
}

type Option func(*Config)

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}()

func DefaultConfig() Config {
	return Config{
		MaxInputSize: DefaultMaxInputSize,
		MaxDepth:     DefaultMaxDepth,
		Logger:       discardLogger,
	}
}

func WithMaxInputSize(n int64) Option {
	return func(c *Config) { c.MaxInputSize = n }
}

func WithMaxDepth(n int) Option {
	return func(c *Config) { c.MaxDepth = n }
}

func WithScripting(enabled bool) Option {
	return func(c *Config) { c.Scripting = enabled }
}

func WithQuirksMode(q spec.QuirksMode) Option {
	return func(c *Config) { c.QuirksMode = q }
}

func WithLogger(l *logrus.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

func newConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	return cfg
}
