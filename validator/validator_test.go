package validator

import (
	"strings"
	"testing"

	"github.com/heathj/htmlcheck/parser"
	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueKinds(issues []Issue) []IssueKind {
	var kinds []IssueKind
	for _, i := range issues {
		kinds = append(kinds, i.Kind)
	}
	return kinds
}

func TestCheckNodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want []IssueKind
	}{
		{"img without src or alt", "<img>", []IssueKind{MissingRequiredAttribute, MissingRequiredAttribute}},
		{"img with empty alt", `<img src=a alt="">`, nil},
		{"stylesheet without href", "<link rel=stylesheet>", []IssueKind{MissingRequiredAttribute}},
		{"stylesheet rel list", "<link rel=\"alternate stylesheet\">", []IssueKind{MissingRequiredAttribute}},
		{"icon without href", "<link rel=icon>", nil},
		{"iframe without source", "<iframe></iframe>", []IssueKind{MissingRequiredAttribute}},
		{"iframe with srcdoc", "<iframe srcdoc=x></iframe>", nil},
		{"video with source child", "<video><source src=a></video>", nil},
		{"audio without source", "<audio></audio>", []IssueKind{MissingRequiredAttribute}},
		{"meta name without content", "<meta name=x>", []IssueKind{MissingRequiredAttribute}},
		{"meta name with content", "<meta name=x content=y>", nil},
		{"meta charset", "<meta charset=utf-8>", nil},
		{"area without alt", "<map name=m><area></map>", []IssueKind{MissingRequiredAttribute}},
		{"optgroup without label", "<select><optgroup></optgroup></select>", []IssueKind{MissingRequiredAttribute}},
		{"center", "<center>x</center>", []IssueKind{DeprecatedElement}},
		{"tt", "<tt>x</tt>", []IssueKind{DeprecatedElement}},
		{"unknown element", "<frobnicate></frobnicate>", []IssueKind{UnknownElement}},
		{"custom element", "<my-widget></my-widget>", nil},
		{"duplicate id", "<div id=a></div><p id=a></p>", []IssueKind{DuplicateID}},
		{"empty id", `<div id=""></div><p id=""></p>`, []IssueKind{InvalidAttributeValue, InvalidAttributeValue}},
		{"id with whitespace", `<div id="a b"></div>`, []IssueKind{InvalidAttributeValue}},
		{"input type", "<input type=text><input type=TEXT>", nil},
		{"bad input type", "<input type=bogus>", []IssueKind{InvalidAttributeValue}},
		{"target keyword", "<a target=_blank></a><a target=frame1></a>", nil},
		{"bad target keyword", "<a target=_new></a>", []IssueKind{InvalidAttributeValue}},
		{"bad form target", "<form target=_foo></form>", []IssueKind{InvalidAttributeValue}},
		{"foreign elements skipped", "<svg><a target=_bogus></a><frobnicate/></svg>", nil},
		{"html inside foreignObject", "<svg><foreignObject><img></foreignObject></svg>", []IssueKind{MissingRequiredAttribute, MissingRequiredAttribute}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			frag, err := parser.ParseFragment(tt.in, "div")
			require.NoError(t, err)
			assert.Equal(t, tt.want, issueKinds(CheckNodes(frag.Nodes)))
		})
	}
}

func TestValidateConformingDocument(t *testing.T) {
	t.Parallel()
	res, err := Validate(`<!DOCTYPE html><html><head><title>T</title></head><body><img src=a alt=b></body></html>`)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Issues)
	assert.True(t, res.Valid())
}

func TestValidateReportsParseErrors(t *testing.T) {
	t.Parallel()
	res, err := Validate("<p>x")
	require.NoError(t, err)
	assert.Empty(t, res.Issues)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, spec.MissingDoctype, res.Errors[0].Kind)
	assert.False(t, res.Valid())
}

func TestIssuePositions(t *testing.T) {
	t.Parallel()
	res, err := Validate("<!DOCTYPE html>\n<img src=a>")
	require.NoError(t, err)
	require.Len(t, res.Issues, 1)

	issue := res.Issues[0]
	assert.Equal(t, "img", issue.Element)
	assert.Equal(t, 2, issue.Pos.Line)
	assert.Equal(t, 1, issue.Pos.Col)
	assert.Equal(t, "2:1: missing-required-attribute: <img> requires an alt attribute", issue.String())
}

func TestValidateFragment(t *testing.T) {
	t.Parallel()
	res, err := ValidateFragment("<td id=a>1</td><td id=a>2</td>", "tr")
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []IssueKind{DuplicateID}, issueKinds(res.Issues))
	assert.False(t, res.Valid())
}

func TestValidateAborts(t *testing.T) {
	t.Parallel()

	t.Run("depth", func(t *testing.T) {
		t.Parallel()
		res, err := Validate(strings.Repeat("<div>", 32), parser.WithMaxDepth(8))
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, parser.ErrResourceExhausted), "got %v", err)
	})
	t.Run("context", func(t *testing.T) {
		t.Parallel()
		res, err := ValidateFragment("<p>", "not a tag")
		assert.Nil(t, res)
		assert.True(t, errors.Is(err, parser.ErrInvalidContext), "got %v", err)
	})
}

func TestCheckDocument(t *testing.T) {
	t.Parallel()
	doc, err := parser.ParseDocument("<!DOCTYPE html><template><img id=x></template><div id=x></div>")
	require.NoError(t, err)

	issues := CheckDocument(doc)
	assert.Equal(t, []IssueKind{MissingRequiredAttribute, MissingRequiredAttribute, DuplicateID}, issueKinds(issues))
	assert.Equal(t, "div", issues[2].Element)
}

func TestIssuesAreLogged(t *testing.T) {
	t.Parallel()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := Validate("<!DOCTYPE html><center>x</center>", parser.WithLogger(logger))
	require.NoError(t, err)

	var found bool
	for _, e := range hook.AllEntries() {
		if e.Data["component"] == "validator" {
			found = true
			assert.Equal(t, DeprecatedElement, e.Data["kind"])
			assert.Equal(t, "center", e.Data["element"])
		}
	}
	assert.True(t, found)
}

func TestCustomElementNames(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want bool
	}{
		{"my-widget", true},
		{"x-", true},
		{"widget", false},
		{"-widget", false},
		{"1-widget", false},
		{"My-widget", false},
		{"my-Widget", false},
		{"font-face", false},
		{"annotation-xml", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isCustomElementName(tt.name))
		})
	}
}
