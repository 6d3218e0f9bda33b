package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type scriptingMode uint

const (
	scriptBoth scriptingMode = iota
	scriptOff
	scriptOn
)

type treeTest struct {
	file       string
	in         string
	context    string // empty unless this is a fragment case
	scriptMode scriptingMode
	expected   string
}

// parseTreeTests reads html5lib tree-construction files. #errors is ignored
// since the tree construction error codes are not standardised.
func parseTreeTests(t *testing.T, path string) []treeTest {
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var (
		tests   []treeTest
		cur     *treeTest
		section string
		in      []string
		doc     []string
	)
	flush := func() {
		if cur == nil {
			return
		}
		for len(doc) > 0 && doc[len(doc)-1] == "" {
			doc = doc[:len(doc)-1]
		}
		cur.in = strings.Join(in, "\n")
		cur.expected = "#document\n" + strings.Join(doc, "\n")
		tests = append(tests, *cur)
	}

	for _, line := range strings.Split(string(data), "\n") {
		switch line {
		case "#data":
			flush()
			cur = &treeTest{file: filepath.Base(path)}
			section, in, doc = line, nil, nil
			continue
		case "#errors", "#document", "#document-fragment":
			section = line
			continue
		case "#script-on":
			cur.scriptMode = scriptOn
			continue
		case "#script-off":
			cur.scriptMode = scriptOff
			continue
		}

		switch section {
		case "#data":
			in = append(in, line)
		case "#document-fragment":
			if cur.context == "" {
				cur.context = line
			}
		case "#document":
			doc = append(doc, line)
		}
	}
	flush()
	return tests
}

func TestTreeConstructor(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "tree_construction", "*.dat"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		for i, test := range parseTreeTests(t, file) {
			switch test.scriptMode {
			case scriptOn:
				runTreeConstructorTest(t, i, test, true)
			case scriptOff:
				runTreeConstructorTest(t, i, test, false)
			default:
				runTreeConstructorTest(t, i, test, false)
				runTreeConstructorTest(t, i, test, true)
			}
		}
	}
}

func runTreeConstructorTest(t *testing.T, i int, test treeTest, scripting bool) {
	name := fmt.Sprintf("%s/%d/scripting=%t", test.file, i, scripting)
	t.Run(name, func(t *testing.T) {
		t.Parallel()
		var got string
		if test.context != "" {
			frag, err := ParseFragment(test.in, test.context, WithScripting(scripting))
			require.NoError(t, err)
			got = "#document\n" + frag.Dump()
		} else {
			doc, err := ParseDocument(test.in, WithScripting(scripting))
			require.NoError(t, err)
			got = doc.Dump()
		}
		assert.Equal(t, test.expected, got, "input:\n%s", test.in)
	})
}

func TestAdoptionAgencySplitsFormatting(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument("<b>1<i>2</b>3</i>")
	require.NoError(t, err)
	assert.Equal(t, "<b>1<i>2</i></b><i>3</i>", SerializeChildren(doc.Body()))

	kinds := errorKinds(doc.Errors)
	assert.Contains(t, kinds, spec.MisnestedFormattingElement)
}

func TestFosterParenting(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument("<table><div>oops</div><tr><td>x</td></tr></table>")
	require.NoError(t, err)

	body := doc.Body()
	children := body.Children()
	require.Len(t, children, 2)
	assert.True(t, children[0].Is("div"))
	assert.Equal(t, "oops", children[0].TextContent())
	assert.True(t, children[1].Is("table"))
	assert.Equal(t, children[1], children[0].NextSibling())

	td := doc.FindByName("td")
	require.Len(t, td, 1)
	assert.Equal(t, "x", td[0].TextContent())
	assert.True(t, td[0].Parent().Is("tr"))
	assert.Contains(t, errorKinds(doc.Errors), spec.FosterParentedContent)
}

func TestDuplicateAttributeKeepsFirst(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument(`<!DOCTYPE html><div id="a" id="b"></div>`)
	require.NoError(t, err)

	div := doc.FindByID("a")
	require.NotNil(t, div)
	assert.Len(t, div.Attributes, 1)
	assert.Nil(t, doc.FindByID("b"))
	assert.Equal(t, []spec.ErrorKind{spec.DuplicateAttribute}, errorKinds(doc.Errors))
}

func TestUnclosedInputTerminates(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument("<div><p>text")
	require.NoError(t, err)

	p := doc.FindByName("p")
	require.Len(t, p, 1)
	assert.True(t, p[0].Parent().Is("div"))
	assert.Equal(t, "text", p[0].TextContent())
	assert.NotEmpty(t, doc.Errors)
	assert.Contains(t, errorKinds(doc.Errors), spec.MissingDoctype)
}

func TestConformingDocumentHasNoErrors(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument("<!DOCTYPE html><html><head><title>T</title></head><body><p>x</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, doc.Errors)
	assert.Equal(t, spec.NoQuirks, doc.QuirksMode)
	assert.Equal(t, "T", doc.Title())
}

func TestFragmentContextIsAssumed(t *testing.T) {
	t.Parallel()
	frag, err := ParseFragment("<td>1</td><td>2</td>", "tr")
	require.NoError(t, err)
	require.Len(t, frag.Nodes, 2)
	for i, n := range frag.Nodes {
		assert.True(t, n.Is("td"))
		assert.Nil(t, n.Parent())
		assert.Equal(t, fmt.Sprint(i+1), n.TextContent())
	}
	assert.Empty(t, frag.Errors)
}

func TestFragmentContexts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		context string
		in      string
		want    string
	}{
		{"div", "<p>a<p>b", "<p>a</p><p>b</p>"},
		{"DIV", "x", "x"},
		{"textarea", "<b>&amp;</b>", "&lt;b&gt;&amp;&lt;/b&gt;"},
		{"script", "a<b>c&amp;", "a&lt;b&gt;c&amp;amp;"},
		{"select", "<option>a<option>b", "<option>a</option><option>b</option>"},
		{"table", "<tr><td>x", "<tbody><tr><td>x</td></tr></tbody>"},
		{"ul", "<li>a<li>b", "<li>a</li><li>b</li>"},
		{"template", "<td>x</td>", "<td>x</td>"},
		{"math mi", "<b>x</b>", "<b>x</b>"},
		{"svg svg", "<div></div>", "<div></div>"},
		{"svg path", "<nobr>X", "<nobr>X</nobr>"},
		{"math annotation-xml", "<div></div>", "<div></div>"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.context, func(t *testing.T) {
			t.Parallel()
			frag, err := ParseFragment(tt.in, tt.context)
			require.NoError(t, err)
			var sb strings.Builder
			for _, n := range frag.Nodes {
				sb.WriteString(Serialize(n))
			}
			assert.Equal(t, tt.want, sb.String())
		})
	}
}

func TestForeignFragmentKeepsBreakoutTags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		context string
		in      string
		want    spec.Namespace
	}{
		{"svg path", "<nobr>X", spec.Svgns},
		{"svg svg", "<div></div>", spec.Svgns},
		{"math math", "<div></div>", spec.Mathmlns},
		{"math annotation-xml", "<div></div>", spec.Mathmlns},
		{"svg foreignObject", "<div></div>", spec.Htmlns},
		{"svg g", "<svg><p>x", spec.Svgns},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.context+" "+tt.in, func(t *testing.T) {
			t.Parallel()
			frag, err := ParseFragment(tt.in, tt.context)
			require.NoError(t, err)
			require.NotEmpty(t, frag.Nodes)
			assert.Equal(t, tt.want, frag.Nodes[0].Namespace)
		})
	}

	// below the fragment root an HTML element is still reachable.
	frag, err := ParseFragment("<svg><p>x", "svg g")
	require.NoError(t, err)
	require.Len(t, frag.Nodes, 2)
	assert.True(t, frag.Nodes[1].Is("p"))
	assert.Contains(t, errorKinds(frag.Errors), spec.UnexpectedStartTag)
}

func TestInvalidFragmentContext(t *testing.T) {
	t.Parallel()
	for _, context := range []string{"", "1div", "div>", "svg ", "foo bar", "a\x00", "-x"} {
		context := context
		t.Run(fmt.Sprintf("%q", context), func(t *testing.T) {
			t.Parallel()
			frag, err := ParseFragment("<p>x", context)
			assert.Nil(t, frag)
			assert.True(t, errors.Is(err, ErrInvalidContext), "got %v", err)
		})
	}
}

func TestResourceLimits(t *testing.T) {
	t.Parallel()
	deep := strings.Repeat("<div>", 64)

	t.Run("depth", func(t *testing.T) {
		t.Parallel()
		doc, err := ParseDocument(deep, WithMaxDepth(16))
		assert.Nil(t, doc)
		assert.True(t, errors.Is(err, ErrResourceExhausted), "got %v", err)
	})
	t.Run("depth within limit", func(t *testing.T) {
		t.Parallel()
		doc, err := ParseDocument(deep, WithMaxDepth(128))
		require.NoError(t, err)
		assert.Len(t, doc.FindByName("div"), 64)
	})
	t.Run("input size", func(t *testing.T) {
		t.Parallel()
		doc, err := ParseDocument(deep, WithMaxInputSize(32))
		assert.Nil(t, doc)
		assert.True(t, errors.Is(err, ErrResourceExhausted), "got %v", err)
	})
	t.Run("fragment depth", func(t *testing.T) {
		t.Parallel()
		frag, err := ParseFragment(deep, "div", WithMaxDepth(16))
		assert.Nil(t, frag)
		assert.True(t, errors.Is(err, ErrResourceExhausted), "got %v", err)
	})
	t.Run("reader", func(t *testing.T) {
		t.Parallel()
		doc, err := ParseDocumentReader(strings.NewReader(deep), WithMaxInputSize(32))
		assert.Nil(t, doc)
		assert.True(t, errors.Is(err, ErrResourceExhausted), "got %v", err)
	})
}

func TestQuirksModeFromDoctype(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want spec.QuirksMode
	}{
		{"<!DOCTYPE html>", spec.NoQuirks},
		{"<!doctype HTML SYSTEM 'about:legacy-compat'>", spec.NoQuirks},
		{"", spec.Quirks},
		{"<!DOCTYPE html PUBLIC \"-//W3C//DTD HTML 4.01 Transitional//EN\">", spec.Quirks},
		{"<!DOCTYPE html PUBLIC \"-//W3C//DTD HTML 4.01 Transitional//EN\" \"http://www.w3.org/TR/html4/loose.dtd\">", spec.LimitedQuirks},
		{"<!DOCTYPE html PUBLIC \"-//W3C//DTD XHTML 1.0 Transitional//EN\" \"x\">", spec.LimitedQuirks},
		{"<!DOCTYPE svg>", spec.Quirks},
		{"<!DOCTYPE>", spec.Quirks},
		{"<!DOCTYPE html PUBLIC \"-//W3C//DTD HTML 4.01 Transitional//EN\" \"MISSING\">", spec.LimitedQuirks},
		{"<!DOCTYPE html PUBLIC \"-//W3C//DTD HTML 4.01 Transitional//EN\" \"\">", spec.LimitedQuirks},
		{"<!DOCTYPE html PUBLIC \"MISSING\">", spec.NoQuirks},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			doc, err := ParseDocument(tt.in + "<p>x")
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.QuirksMode)
		})
	}
}

func TestDoctypeIdentifiers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in              string
		publicID        string
		systemID        string
		publicIDMissing bool
		systemIDMissing bool
		conforming      bool
	}{
		{"<!DOCTYPE html>", "", "", true, true, true},
		{"<!DOCTYPE html SYSTEM \"about:legacy-compat\">", "", "about:legacy-compat", true, false, true},
		{"<!DOCTYPE html PUBLIC \"\">", "", "", false, true, false},
		{"<!DOCTYPE html PUBLIC \"MISSING\">", "MISSING", "", false, true, false},
		{"<!DOCTYPE html SYSTEM \"MISSING\">", "", "MISSING", true, false, false},
		{"<!DOCTYPE html PUBLIC \"a\" \"\">", "a", "", false, false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			doc, err := ParseDocument(tt.in + "<title>t</title>")
			require.NoError(t, err)
			doctype := doc.Doctype()
			require.NotNil(t, doctype)
			assert.Equal(t, tt.publicID, doctype.PublicID)
			assert.Equal(t, tt.systemID, doctype.SystemID)
			assert.Equal(t, tt.publicIDMissing, doctype.PublicIDMissing)
			assert.Equal(t, tt.systemIDMissing, doctype.SystemIDMissing)
			if tt.conforming {
				assert.NotContains(t, errorKinds(doc.Errors), spec.NonConformingDoctype)
			} else {
				assert.Contains(t, errorKinds(doc.Errors), spec.NonConformingDoctype)
			}
		})
	}
}

func TestTemplateContents(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument("<!DOCTYPE html><template><tr><td>x</td></tr></template><p>y")
	require.NoError(t, err)

	head := doc.Head()
	require.NotNil(t, head)
	tmpl := head.FirstChild()
	require.NotNil(t, tmpl)
	require.True(t, tmpl.Is("template"))
	assert.Equal(t, "<tr><td>x</td></tr>", SerializeChildren(tmpl))
	assert.Equal(t, "<p>y</p>", SerializeChildren(doc.Body()))
}

func TestFramesetDocument(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument("<!DOCTYPE html><frameset><frame src=a><frame src=b></frameset><noframes>x</noframes>")
	require.NoError(t, err)

	body := doc.Body()
	require.NotNil(t, body)
	assert.True(t, body.Is("frameset"))
	assert.Len(t, body.FindByName("frame"), 2)
	assert.Len(t, doc.FindByName("noframes"), 1)
}

func TestForeignContent(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument(`<!DOCTYPE html><svg><clippath><lineargradient gradientunits="x"/></clippath></svg><math definitionurl="u"><annotation-xml encoding="text/html"><div>h</div></annotation-xml></math>`)
	require.NoError(t, err)

	svg := doc.Find(func(n *spec.Node) bool { return n.Namespace == spec.Svgns && n.Name == "svg" })
	require.NotNil(t, svg)
	clip := svg.FirstChild()
	require.NotNil(t, clip)
	assert.Equal(t, "clipPath", clip.Name)
	grad := clip.FirstChild()
	require.NotNil(t, grad)
	assert.Equal(t, "linearGradient", grad.Name)
	assert.Equal(t, "gradientUnits", grad.Attributes[0].Name)

	math := doc.Find(func(n *spec.Node) bool { return n.Namespace == spec.Mathmlns && n.Name == "math" })
	require.NotNil(t, math)
	assert.Equal(t, "definitionURL", math.Attributes[0].Name)
	div := doc.FindByName("div")
	require.Len(t, div, 1)
	assert.Equal(t, spec.Mathmlns, div[0].Parent().Namespace)
	assert.Equal(t, "annotation-xml", div[0].Parent().Name)
}

func TestCDATAInForeignContent(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument("<!DOCTYPE html><svg><![CDATA[a<b]]></svg>")
	require.NoError(t, err)

	svg := doc.Find(func(n *spec.Node) bool { return n.Namespace == spec.Svgns })
	require.NotNil(t, svg)
	assert.Equal(t, "a<b", svg.TextContent())
	assert.Empty(t, doc.Errors)
}

func TestErrorPositions(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument("<!DOCTYPE html>\n<p>\n</div>")
	require.NoError(t, err)
	require.NotEmpty(t, doc.Errors)

	e := doc.Errors[0]
	assert.Equal(t, spec.UnexpectedEndTag, e.Kind)
	assert.Equal(t, 3, e.Pos.Line)
	assert.Equal(t, 1, e.Pos.Col)
	assert.Equal(t, "3:1: unexpected-end-tag", e.Error())
}

func TestByteOrderMarkSkipped(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument("\uFEFF<!DOCTYPE html><p>x")
	require.NoError(t, err)
	assert.Empty(t, doc.Errors)
	assert.NotNil(t, doc.Doctype())
}

func TestConcurrentParses(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"<b>1<i>2</b>3</i>",
		"<table><div>oops</div><tr><td>x</td></tr></table>",
		"<svg><foreignObject><p>x</svg>",
		"<ul><li>a<li>b</ul>",
		"<select><option>a<option>b</select>",
	}
	want := make([]string, len(inputs))
	for i, in := range inputs {
		doc, err := ParseDocument(in)
		require.NoError(t, err)
		want[i] = doc.Dump()
	}

	const rounds = 8
	got := make([]string, len(inputs)*rounds)
	var wg sync.WaitGroup
	for r := 0; r < rounds; r++ {
		for i, in := range inputs {
			wg.Add(1)
			go func(slot int, in string) {
				defer wg.Done()
				doc, err := ParseDocument(in)
				if err == nil {
					got[slot] = doc.Dump()
				}
			}(r*len(inputs)+i, in)
		}
	}
	wg.Wait()

	for slot, dump := range got {
		assert.Equal(t, want[slot%len(inputs)], dump)
	}
}

// treeNode is a plain copy of a parsed tree for cmp.
type treeNode struct {
	Type            spec.NodeType
	Name            string
	Namespace       spec.Namespace
	Attrs           []spec.Attribute
	Data            string
	PublicID        string
	SystemID        string
	PublicIDMissing bool
	SystemIDMissing bool
	Children        []treeNode
}

func toTree(n *spec.Node) treeNode {
	tn := treeNode{
		Type:            n.Type,
		Name:            n.Name,
		Namespace:       n.Namespace,
		Attrs:           n.Attributes,
		Data:            n.Data,
		PublicID:        n.PublicID,
		SystemID:        n.SystemID,
		PublicIDMissing: n.PublicIDMissing,
		SystemIDMissing: n.SystemIDMissing,
	}
	for _, c := range n.Children() {
		tn.Children = append(tn.Children, toTree(c))
	}
	return tn
}

var roundTripInputs = []string{
	"<!DOCTYPE html><p>One<p>Two",
	"<!DOCTYPE html><b>1<i>2</b>3</i>",
	`<!DOCTYPE html><div class="a b" id=x title='"q"'>a &amp; b &lt; c</div>`,
	"<!DOCTYPE html><table><tr><td>a<td>b</table>",
	"<!DOCTYPE html><pre>\n\nx</pre><textarea>\n<b></textarea>",
	`<!DOCTYPE html><svg viewbox="0 0 1 1"><a xlink:href="#x"><path d="M0"/></a></svg>`,
	"<!DOCTYPE html><script>if (a < b && c) {}</script><style>p > a {}</style>",
	"<!DOCTYPE html><!--c--><p>x&nbsp;y<br>z",
	"<!DOCTYPE html><select><option selected>a</select><img src=a alt=b>",
	"<!DOCTYPE html><ul><li>a<li>b</ul><dl><dt>t<dd>d</dl>",
	`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN"><p><table><tr><td>x</table>`,
	`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd"><p><table></table>`,
	`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" ""><p>x`,
	`<!DOCTYPE html SYSTEM "about:legacy-compat"><p>x`,
	`<!DOCTYPE html PUBLIC 'a"b'><p>x`,
}

func TestSerializeRoundTrip(t *testing.T) {
	t.Parallel()
	sortAttrs := cmpopts.SortSlices(func(a, b spec.Attribute) bool {
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		return a.Name < b.Name
	})

	for _, in := range roundTripInputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			first, err := ParseDocument(in)
			require.NoError(t, err)
			out := SerializeDocument(first)

			second, err := ParseDocument(out)
			require.NoError(t, err)
			assert.Equal(t, first.QuirksMode, second.QuirksMode)
			if diff := cmp.Diff(toTree(first.Node), toTree(second.Node), sortAttrs); diff != "" {
				t.Errorf("reparsed tree differs (-first +second):\n%s\nserialized: %s", diff, out)
			}
			assert.Equal(t, out, SerializeDocument(second))
		})
	}
}

func TestSerialize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"<p>a<br>b", "<p>a<br>b</p>"},
		{`<a href="x&amp;y" title='"'>&lt;&gt;&amp;</a>`, `<a href="x&amp;y" title="&quot;">&lt;&gt;&amp;</a>`},
		{"<pre>\n\nx</pre>", "<pre>\n\nx</pre>"},
		{"<script>a<b</script>", "<script>a<b</script>"},
		{"<svg><a xlink:href=u></a></svg>", `<svg><a xlink:href="u"></a></svg>`},
		{"<!--x-->", "<!--x-->"},
		{"x&nbsp;y", "x&nbsp;y"},
		{`<a title="<b>">x</a>`, `<a title="&lt;b&gt;">x</a>`},
		{"<img alt='a>b<c'>", `<img alt="a&gt;b&lt;c">`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			frag, err := ParseFragment(tt.in, "div")
			require.NoError(t, err)
			var sb strings.Builder
			for _, n := range frag.Nodes {
				sb.WriteString(Serialize(n))
			}
			assert.Equal(t, tt.want, sb.String())
		})
	}
}

func TestSerializeDocument(t *testing.T) {
	t.Parallel()
	doc, err := ParseDocument("<!DOCTYPE html><title>t</title><p>x")
	require.NoError(t, err)
	assert.Equal(t,
		"<!DOCTYPE html><html><head><title>t</title></head><body><p>x</p></body></html>",
		SerializeDocument(doc))
	assert.Equal(t, SerializeDocument(doc), Serialize(doc.Node))
}

func TestSerializeDoctype(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"<!DOCTYPE html>", "<!DOCTYPE html>"},
		{"<!doctype HTML>", "<!DOCTYPE html>"},
		{
			`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "x">`,
			`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "x">`,
		},
		{
			`<!DOCTYPE html PUBLIC '-//W3C//DTD HTML 4.01 Transitional//EN'>`,
			`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN">`,
		},
		{`<!DOCTYPE html PUBLIC "">`, `<!DOCTYPE html PUBLIC "">`},
		{`<!DOCTYPE html SYSTEM 'about:legacy-compat'>`, `<!DOCTYPE html SYSTEM "about:legacy-compat">`},
		{`<!DOCTYPE html PUBLIC 'a"b' "c">`, `<!DOCTYPE html PUBLIC 'a"b' "c">`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			doc, err := ParseDocument(tt.in)
			require.NoError(t, err)
			require.NotNil(t, doc.Doctype())
			assert.Equal(t, tt.want, Serialize(doc.Doctype()))
		})
	}
}

// dumpNet renders an x/net/html tree in the same format as spec.Node.Dump.
func dumpNet(n *html.Node) string {
	var sb strings.Builder
	sb.WriteString("#document\n")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		dumpNetNode(&sb, c, 0)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func dumpNetNode(sb *strings.Builder, n *html.Node, depth int) {
	indent := "| " + strings.Repeat("  ", depth)
	sb.WriteString(indent)
	switch n.Type {
	case html.ElementNode:
		if n.Namespace != "" {
			sb.WriteString("<" + n.Namespace + " " + n.Data + ">")
		} else {
			sb.WriteString("<" + n.Data + ">")
		}
	case html.TextNode:
		sb.WriteString("\"" + n.Data + "\"")
	case html.CommentNode:
		sb.WriteString("<!-- " + n.Data + " -->")
	case html.DoctypeNode:
		sb.WriteString("<!DOCTYPE " + n.Data + ">")
	}
	sb.WriteByte('\n')

	if n.Type == html.ElementNode && len(n.Attr) > 0 {
		attrs := make([]string, 0, len(n.Attr))
		for _, a := range n.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + " " + name
			}
			attrs = append(attrs, name+"=\""+a.Val+"\"")
		}
		sort.Strings(attrs)
		for _, a := range attrs {
			sb.WriteString(indent + "  " + a + "\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		dumpNetNode(sb, c, depth+1)
	}
}

// TestMatchesNetHTML compares tree shapes with golang.org/x/net/html, which
// implements the same tree construction algorithm.
func TestMatchesNetHTML(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"Test",
		"<!DOCTYPE html><p>One<p>Two",
		"<!DOCTYPE html><b>1<i>2</b>3</i>",
		"<!DOCTYPE html><b><p>x</b>y",
		"<!DOCTYPE html><table>foo</table>",
		"<!DOCTYPE html><table><div>oops</div><tr><td>x</td></tr></table>",
		"<!DOCTYPE html><table><tr><td>a<td>b</table>",
		`<!DOCTYPE html><svg viewbox="0 0 1 1"><foreignobject><p>x</p></foreignobject></svg>`,
		"<!DOCTYPE html><math><mi>x</mi><p>y",
		"<frameset><frame></frameset>",
		"<!--a--><!DOCTYPE html><html><!--b--></html><!--c-->",
		"<!DOCTYPE html><ul><li>a<li>b</ul>",
		"<!DOCTYPE html><pre>\nfoo</pre>",
		"<!DOCTYPE html><title>a&amp;b</title>",
		"<!DOCTYPE html><h1><h2>x",
		"<p><table>",
		"<div><p>text",
	}

	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			want, err := html.ParseWithOptions(strings.NewReader(in), html.ParseOptionEnableScripting(false))
			require.NoError(t, err)
			got, err := ParseDocument(in)
			require.NoError(t, err)
			assert.Equal(t, dumpNet(want), got.Dump())
		})
	}
}
