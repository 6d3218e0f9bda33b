package parser

import (
	"strings"
	"testing"

	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entriesFor(hook *test.Hook, component string) []*logrus.Entry {
	var out []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Data["component"] == component {
			out = append(out, e)
		}
	}
	return out
}

func TestErrorReporterLogsParseErrors(t *testing.T) {
	t.Parallel()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	doc, err := ParseDocument("<p>x", WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, doc.Errors, 1)

	entries := entriesFor(hook, "errors")
	require.Len(t, entries, 1)
	assert.Equal(t, spec.MissingDoctype, entries[0].Data["kind"])
	assert.Equal(t, 1, entries[0].Data["line"])
	assert.Equal(t, logrus.DebugLevel, entries[0].Level)

	assert.Len(t, entriesFor(hook, "parser"), 1)
	assert.Empty(t, entriesFor(hook, "tree"), "insertion modes are only traced at trace level")
}

func TestTraceLogging(t *testing.T) {
	t.Parallel()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)

	_, err := ParseDocument("<!DOCTYPE html><title>x</title>", WithLogger(logger))
	require.NoError(t, err)
	assert.NotEmpty(t, entriesFor(hook, "tree"))
	assert.NotEmpty(t, entriesFor(hook, "tokenizer"))
}

func TestAbortIsLogged(t *testing.T) {
	t.Parallel()
	logger, hook := test.NewNullLogger()

	_, err := ParseDocument(strings.Repeat("<div>", 16), WithLogger(logger), WithMaxDepth(4))
	require.Error(t, err)

	entries := entriesFor(hook, "tree")
	require.Len(t, entries, 1)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Contains(t, entries[0].Data, logrus.ErrorKey)
}

func TestParsesDoNotLogByDefault(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	assert.False(t, cfg.Logger.IsLevelEnabled(logrus.ErrorLevel))
	assert.Equal(t, int64(DefaultMaxInputSize), cfg.MaxInputSize)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	assert.False(t, cfg.Scripting)
}
