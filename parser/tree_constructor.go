package parser

import (
	"strings"

	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type frameset uint

const (
	framesetOK frameset = iota
	framesetNotOK
)

// HTMLTreeConstructor holds the state for various state of the tree construction phase.
type HTMLTreeConstructor struct {
	arena    *spec.Arena
	document *spec.Node
	errors   *ErrorReporter
	log      *logrus.Entry
	trace    bool
	maxDepth int
	err      error
	stopped  bool

	quirksMode               spec.QuirksMode
	scriptingEnabled         bool
	fosterParenting          bool
	frameset                 frameset
	insertionMode            insertionMode
	originalInsertionMode    insertionMode
	templateInsertionModes   []insertionMode
	stackOfOpenElements      []*spec.Node
	activeFormattingElements []*spec.Node // nil entries are markers
	headElementPointer       *spec.Node
	formElementPointer       *spec.Node
	context                  *spec.Node

	pendingTableCharacters  []*Token
	ignoreNextLF            bool
	selfClosingAcknowledged bool
	nextTokenizerState      *tokenizerState
	token                   *Token

	openText *spec.Node
	textBuf  strings.Builder

	mappings map[insertionMode]treeConstructionModeHandler
}

// NewHTMLTreeConstructor creates an HTMLTreeConstructor that builds a new
// document in arena.
func NewHTMLTreeConstructor(arena *spec.Arena, cfg Config, reporter *ErrorReporter) *HTMLTreeConstructor {
	tr := HTMLTreeConstructor{
		arena:            arena,
		document:         arena.Node(arena.NewDocument()),
		errors:           reporter,
		log:              cfg.Logger.WithField("component", "tree"),
		trace:            cfg.Logger.IsLevelEnabled(logrus.TraceLevel),
		maxDepth:         cfg.MaxDepth,
		scriptingEnabled: cfg.Scripting,
	}

	tr.createMappings()
	return &tr
}

func (c *HTMLTreeConstructor) createMappings() {
	c.mappings = map[insertionMode]treeConstructionModeHandler{
		initial:            c.initialModeHandler,
		beforeHTML:         c.beforeHTMLModeHandler,
		beforeHead:         c.beforeHeadModeHandler,
		inHead:             c.inHeadModeHandler,
		inHeadNoScript:     c.inHeadNoScriptModeHandler,
		afterHead:          c.afterHeadModeHandler,
		inBody:             c.inBodyModeHandler,
		text:               c.textModeHandler,
		inTable:            c.inTableModeHandler,
		inTableText:        c.inTableTextModeHandler,
		inCaption:          c.inCaptionModeHandler,
		inColumnGroup:      c.inColumnGroupModeHandler,
		inTableBody:        c.inTableBodyModeHandler,
		inRow:              c.inRowModeHandler,
		inCell:             c.inCellModeHandler,
		inSelect:           c.inSelectModeHandler,
		inSelectInTable:    c.inSelectInTableModeHandler,
		inTemplate:         c.inTemplateModeHandler,
		afterBody:          c.afterBodyModeHandler,
		inFrameset:         c.inFramesetModeHandler,
		afterFrameset:      c.afterFramesetModeHandler,
		afterAfterBody:     c.afterAfterBodyModeHandler,
		afterAfterFrameset: c.afterAfterFramesetModeHandler,
	}
}

// Err returns the fatal error that stopped tree construction, if any.
func (c *HTMLTreeConstructor) Err() error {
	return c.err
}

// Done reports whether tree construction has stopped.
func (c *HTMLTreeConstructor) Done() bool {
	return c.stopped || c.err != nil
}

func (c *HTMLTreeConstructor) fail(err error) {
	if c.err != nil {
		return
	}
	c.err = err
	c.log.WithError(err).Warn("tree construction aborted")
}

func (c *HTMLTreeConstructor) parseError(kind spec.ErrorKind) {
	var pos spec.Position
	if c.token != nil {
		pos = c.token.Pos
	}
	c.errors.Report(kind, pos)
}

// ProcessToken runs t through the tree construction dispatcher and reports
// back what the tokenizer needs to know before producing the next token.
func (c *HTMLTreeConstructor) ProcessToken(t *Token) *Progress {
	c.token = t
	c.nextTokenizerState = nil
	c.selfClosingAcknowledged = false

	if c.ignoreNextLF {
		c.ignoreNextLF = false
		if t.TokenType == characterToken && t.Data == "\n" {
			return c.progress()
		}
	}

	for reprocess := true; reprocess && !c.Done(); {
		prev := c.insertionMode
		if c.useForeignContentRules(t) {
			reprocess = c.inForeignContentHandler(t)
		} else {
			reprocess, c.insertionMode = c.mappings[c.insertionMode](t)
		}
		if c.trace && prev != c.insertionMode {
			c.log.WithFields(logrus.Fields{
				"token": t.TokenType,
				"from":  prev,
				"mode":  c.insertionMode,
			}).Trace("insertion mode switched")
		}
	}

	if t.TokenType == startTagToken && t.SelfClosing && !c.selfClosingAcknowledged {
		c.parseError(spec.NonVoidHTMLElementStartTagWithTrailingSolidus)
	}
	return c.progress()
}

func (c *HTMLTreeConstructor) progress() *Progress {
	return MakeProgress(c.adjustedCurrentNode(), c.nextTokenizerState)
}

func (c *HTMLTreeConstructor) switchTokenizer(s tokenizerState) {
	c.nextTokenizerState = &s
}

func (c *HTMLTreeConstructor) acknowledgeSelfClosing(t *Token) {
	if t.SelfClosing {
		c.selfClosingAcknowledged = true
	}
}

// finish flushes buffered text once no more tokens will arrive.
func (c *HTMLTreeConstructor) finish() {
	c.flushText()
}

func (c *HTMLTreeConstructor) stopParsing() {
	c.stackOfOpenElements = c.stackOfOpenElements[:0]
	c.stopped = true
}

func (c *HTMLTreeConstructor) getCurrentNode() *spec.Node {
	if len(c.stackOfOpenElements) == 0 {
		return nil
	}
	return c.stackOfOpenElements[len(c.stackOfOpenElements)-1]
}

func (c *HTMLTreeConstructor) adjustedCurrentNode() *spec.Node {
	if c.context != nil && len(c.stackOfOpenElements) == 1 {
		return c.context
	}
	return c.getCurrentNode()
}

func (c *HTMLTreeConstructor) push(n *spec.Node) {
	if len(c.stackOfOpenElements) >= c.maxDepth {
		c.fail(errors.Wrapf(ErrResourceExhausted, "open elements exceed depth %d", c.maxDepth))
	}
	c.stackOfOpenElements = append(c.stackOfOpenElements, n)
}

func (c *HTMLTreeConstructor) pop() *spec.Node {
	n := c.getCurrentNode()
	if n != nil {
		c.stackOfOpenElements = c.stackOfOpenElements[:len(c.stackOfOpenElements)-1]
	}
	return n
}

// popUntil pops elements until an HTML element with one of names has been
// popped.
func (c *HTMLTreeConstructor) popUntil(names ...string) {
	for len(c.stackOfOpenElements) > 0 {
		if c.pop().Is(names...) {
			return
		}
	}
}

func (c *HTMLTreeConstructor) popUntilNode(n *spec.Node) {
	for len(c.stackOfOpenElements) > 0 {
		if c.pop() == n {
			return
		}
	}
}

func (c *HTMLTreeConstructor) stackIndex(n *spec.Node) int {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		if c.stackOfOpenElements[i] == n {
			return i
		}
	}
	return -1
}

func (c *HTMLTreeConstructor) stackContains(names ...string) bool {
	for _, n := range c.stackOfOpenElements {
		if n.Is(names...) {
			return true
		}
	}
	return false
}

func (c *HTMLTreeConstructor) removeFromStack(n *spec.Node) {
	if i := c.stackIndex(n); i >= 0 {
		c.removeStackAt(i)
	}
}

func (c *HTMLTreeConstructor) removeStackAt(i int) {
	c.stackOfOpenElements = append(c.stackOfOpenElements[:i], c.stackOfOpenElements[i+1:]...)
}

func (c *HTMLTreeConstructor) insertStackAt(i int, n *spec.Node) {
	c.stackOfOpenElements = append(c.stackOfOpenElements, nil)
	copy(c.stackOfOpenElements[i+1:], c.stackOfOpenElements[i:])
	c.stackOfOpenElements[i] = n
}

type scope uint

const (
	defaultScope scope = iota
	listItemScope
	buttonScope
	tableScope
	selectScope
)

func isScopeBoundary(s scope, n *spec.Node) bool {
	switch s {
	case tableScope:
		return n.Is("html", "table", "template")
	case selectScope:
		return !n.Is("optgroup", "option")
	}

	switch n.Namespace {
	case spec.Htmlns:
		switch n.Name {
		case "applet", "caption", "html", "table", "td", "th", "marquee", "object", "template":
			return true
		case "ol", "ul":
			return s == listItemScope
		case "button":
			return s == buttonScope
		}
	case spec.Mathmlns:
		switch n.Name {
		case "mi", "mo", "mn", "ms", "mtext", "annotation-xml":
			return true
		}
	case spec.Svgns:
		switch n.Name {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

func (c *HTMLTreeConstructor) inScopeMatching(s scope, match func(*spec.Node) bool) bool {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		n := c.stackOfOpenElements[i]
		if match(n) {
			return true
		}
		if isScopeBoundary(s, n) {
			return false
		}
	}
	return false
}

// elementInScope reports whether an HTML element with one of names is in
// the given scope.
func (c *HTMLTreeConstructor) elementInScope(s scope, names ...string) bool {
	return c.inScopeMatching(s, func(n *spec.Node) bool { return n.Is(names...) })
}

func (c *HTMLTreeConstructor) nodeInScope(s scope, target *spec.Node) bool {
	return c.inScopeMatching(s, func(n *spec.Node) bool { return n == target })
}

func isSpecial(n *spec.Node) bool {
	switch n.Namespace {
	case spec.Htmlns:
		switch n.Name {
		case "address", "applet", "area", "article", "aside", "base", "basefont", "bgsound", "blockquote",
			"body", "br", "button", "caption", "center", "col", "colgroup", "dd", "details", "dir", "div",
			"dl", "dt", "embed", "fieldset", "figcaption", "figure", "footer", "form", "frame", "frameset",
			"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hgroup", "hr", "html", "iframe", "img",
			"input", "keygen", "li", "link", "listing", "main", "marquee", "menu", "meta", "nav", "noembed",
			"noframes", "noscript", "object", "ol", "p", "param", "plaintext", "pre", "script", "search",
			"section", "select", "source", "style", "summary", "table", "tbody", "td", "template",
			"textarea", "tfoot", "th", "thead", "title", "tr", "track", "ul", "wbr", "xmp":
			return true
		}
	case spec.Mathmlns:
		switch n.Name {
		case "mi", "mo", "mn", "ms", "mtext", "annotation-xml":
			return true
		}
	case spec.Svgns:
		switch n.Name {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

var impliedEndTags = []string{"dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc"}

var impliedEndTagsThoroughly = append(impliedEndTags[:len(impliedEndTags):len(impliedEndTags)],
	"caption", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr")

// generateImpliedEndTags pops elements that may be closed implicitly,
// stopping at an element named in except.
func (c *HTMLTreeConstructor) generateImpliedEndTags(except ...string) {
	for {
		n := c.getCurrentNode()
		if n == nil || !n.Is(impliedEndTags...) || n.Is(except...) {
			return
		}
		c.pop()
	}
}

func (c *HTMLTreeConstructor) generateAllImpliedEndTagsThoroughly() {
	for {
		n := c.getCurrentNode()
		if n == nil || !n.Is(impliedEndTagsThoroughly...) {
			return
		}
		c.pop()
	}
}

// insertionLocation is a point in the tree: inside parent, immediately
// before the child before, or at the end when before is the zero handle.
type insertionLocation struct {
	parent *spec.Node
	before spec.Handle
}

// https://html.spec.whatwg.org/multipage/parsing.html#appropriate-place-for-inserting-a-node
func (c *HTMLTreeConstructor) appropriatePlace(override *spec.Node) insertionLocation {
	target := override
	if target == nil {
		target = c.getCurrentNode()
	}

	if c.fosterParenting && target.Is("table", "tbody", "tfoot", "thead", "tr") {
		lastTemplate, lastTable := -1, -1
		for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
			n := c.stackOfOpenElements[i]
			if lastTemplate < 0 && n.Is("template") {
				lastTemplate = i
			}
			if lastTable < 0 && n.Is("table") {
				lastTable = i
			}
		}

		switch {
		case lastTemplate >= 0 && (lastTable < 0 || lastTemplate > lastTable):
			return insertionLocation{parent: c.stackOfOpenElements[lastTemplate]}
		case lastTable < 0:
			return insertionLocation{parent: c.stackOfOpenElements[0]}
		}
		table := c.stackOfOpenElements[lastTable]
		if parent := table.Parent(); parent != nil {
			return insertionLocation{parent: parent, before: table.Handle()}
		}
		return insertionLocation{parent: c.stackOfOpenElements[lastTable-1]}
	}

	return insertionLocation{parent: target}
}

func (c *HTMLTreeConstructor) insertAt(loc insertionLocation, n *spec.Node) {
	c.arena.InsertBefore(loc.parent.Handle(), n.Handle(), loc.before)
}

// https://html.spec.whatwg.org/multipage/parsing.html#create-an-element-for-the-token
func (c *HTMLTreeConstructor) createElementForToken(t *Token, ns spec.Namespace) *spec.Node {
	n := c.arena.Node(c.arena.NewElement(t.TagName, ns, t.Attributes))
	n.Pos = t.Pos
	return n
}

func (c *HTMLTreeConstructor) insertForeignElementForToken(t *Token, ns spec.Namespace) *spec.Node {
	loc := c.appropriatePlace(nil)
	elem := c.createElementForToken(t, ns)
	c.insertAt(loc, elem)
	c.push(elem)
	return elem
}

func (c *HTMLTreeConstructor) insertHTMLElementForToken(t *Token) *spec.Node {
	return c.insertForeignElementForToken(t, spec.Htmlns)
}

// insertHTMLElementNamed inserts an element for a start tag that never
// appeared in the input.
func (c *HTMLTreeConstructor) insertHTMLElementNamed(name string) *spec.Node {
	return c.insertHTMLElementForToken(c.syntheticStartTag(name))
}

func (c *HTMLTreeConstructor) syntheticStartTag(name string) *Token {
	t := &Token{TokenType: startTagToken, TagName: name}
	if c.token != nil {
		t.Pos = c.token.Pos
	}
	return t
}

func (c *HTMLTreeConstructor) syntheticEndTag(name string) *Token {
	t := &Token{TokenType: endTagToken, TagName: name}
	if c.token != nil {
		t.Pos = c.token.Pos
	}
	return t
}

func (c *HTMLTreeConstructor) insertCharacter(t *Token) {
	loc := c.appropriatePlace(nil)
	if loc.parent.Type == spec.DocumentNode {
		return
	}

	prev := c.arena.Node(c.arena.PreviousSibling(loc.parent.Handle(), loc.before))
	if prev != nil && prev.Type == spec.TextNode {
		c.appendText(prev, t.Data)
		return
	}

	n := c.arena.Node(c.arena.NewText(""))
	n.Pos = t.Pos
	c.insertAt(loc, n)
	c.appendText(n, t.Data)
}

// appendText buffers character data for n. Text arrives one character at a
// time, so the node's Data is only rebuilt when another node takes over.
func (c *HTMLTreeConstructor) appendText(n *spec.Node, s string) {
	if c.openText != n {
		c.flushText()
		c.openText = n
		c.textBuf.Reset()
		c.textBuf.WriteString(n.Data)
	}
	c.textBuf.WriteString(s)
}

func (c *HTMLTreeConstructor) flushText() {
	if c.openText != nil {
		c.openText.Data = c.textBuf.String()
		c.openText = nil
	}
}

// Inserts a comment at the adjusted insertion location.
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-comment
func (c *HTMLTreeConstructor) insertComment(t *Token) {
	c.insertCommentAt(t, c.appropriatePlace(nil))
}

func (c *HTMLTreeConstructor) insertCommentAt(t *Token, loc insertionLocation) {
	n := c.arena.Node(c.arena.NewComment(t.Data))
	n.Pos = t.Pos
	c.insertAt(loc, n)
}

// parseGenericText inserts t and switches the tokenizer to state, covering
// the generic raw text and RCDATA element parsing algorithms.
func (c *HTMLTreeConstructor) parseGenericText(t *Token, state tokenizerState) insertionMode {
	c.insertHTMLElementForToken(t)
	c.switchTokenizer(state)
	c.originalInsertionMode = c.insertionMode
	return text
}

func isFormattingElement(name string) bool {
	switch name {
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small", "strike", "strong", "tt", "u":
		return true
	}
	return false
}

func (c *HTMLTreeConstructor) afeIndex(n *spec.Node) int {
	for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
		if c.activeFormattingElements[i] == n {
			return i
		}
	}
	return -1
}

func (c *HTMLTreeConstructor) removeAFEAt(i int) {
	c.activeFormattingElements = append(c.activeFormattingElements[:i], c.activeFormattingElements[i+1:]...)
}

func (c *HTMLTreeConstructor) insertAFEAt(i int, n *spec.Node) {
	c.activeFormattingElements = append(c.activeFormattingElements, nil)
	copy(c.activeFormattingElements[i+1:], c.activeFormattingElements[i:])
	c.activeFormattingElements[i] = n
}

func (c *HTMLTreeConstructor) insertMarker() {
	c.activeFormattingElements = append(c.activeFormattingElements, nil)
}

// pushActiveFormattingElements appends elem, first dropping the earliest of
// three identical entries after the last marker.
func (c *HTMLTreeConstructor) pushActiveFormattingElements(elem *spec.Node) {
	count, earliest := 0, -1
	for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
		e := c.activeFormattingElements[i]
		if e == nil {
			break
		}
		if e.Name == elem.Name && e.Namespace == elem.Namespace && spec.AttributesEqual(e.Attributes, elem.Attributes) {
			count++
			earliest = i
		}
	}
	if count >= 3 {
		c.removeAFEAt(earliest)
	}

	c.activeFormattingElements = append(c.activeFormattingElements, elem)
}

func (c *HTMLTreeConstructor) clearActiveFormattingElementsToLastMarker() {
	for len(c.activeFormattingElements) > 0 {
		last := len(c.activeFormattingElements) - 1
		e := c.activeFormattingElements[last]
		c.activeFormattingElements = c.activeFormattingElements[:last]
		if e == nil {
			return
		}
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements
func (c *HTMLTreeConstructor) reconstructActiveFormattingElements() {
	if len(c.activeFormattingElements) == 0 {
		return
	}

	i := len(c.activeFormattingElements) - 1
	if e := c.activeFormattingElements[i]; e == nil || c.stackIndex(e) >= 0 {
		return
	}

	// rewind to the entry after the last marker or open element.
	for i > 0 {
		e := c.activeFormattingElements[i-1]
		if e == nil || c.stackIndex(e) >= 0 {
			break
		}
		i--
	}

	for ; i < len(c.activeFormattingElements); i++ {
		clone := c.arena.Node(c.arena.CloneElement(c.activeFormattingElements[i].Handle()))
		c.insertAt(c.appropriatePlace(nil), clone)
		c.push(clone)
		c.activeFormattingElements[i] = clone
	}
}

// adoptionAgencyAlgorithm reports whether the token should instead be
// handled like any other end tag.
// https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
func (c *HTMLTreeConstructor) adoptionAgencyAlgorithm(t *Token) bool {
	subject := t.TagName
	if cur := c.getCurrentNode(); cur.Is(subject) && c.afeIndex(cur) < 0 {
		c.pop()
		return false
	}

	for outer := 0; outer < 8; outer++ {
		fi := -1
		for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
			e := c.activeFormattingElements[i]
			if e == nil {
				break
			}
			if e.Is(subject) {
				fi = i
				break
			}
		}
		if fi < 0 {
			return true
		}
		formattingElement := c.activeFormattingElements[fi]

		si := c.stackIndex(formattingElement)
		if si < 0 {
			c.parseError(spec.MisnestedFormattingElement)
			c.removeAFEAt(fi)
			return false
		}
		if !c.nodeInScope(defaultScope, formattingElement) {
			c.parseError(spec.UnexpectedEndTag)
			return false
		}
		if formattingElement != c.getCurrentNode() {
			c.parseError(spec.MisnestedFormattingElement)
		}

		var furthestBlock *spec.Node
		fbi := -1
		for i := si + 1; i < len(c.stackOfOpenElements); i++ {
			if isSpecial(c.stackOfOpenElements[i]) {
				furthestBlock, fbi = c.stackOfOpenElements[i], i
				break
			}
		}
		if furthestBlock == nil {
			c.popUntilNode(formattingElement)
			c.removeAFEAt(fi)
			return false
		}

		commonAncestor := c.stackOfOpenElements[si-1]
		bookmark := fi
		node, lastNode := furthestBlock, furthestBlock
		ni := fbi
		for inner := 1; ; inner++ {
			ni--
			node = c.stackOfOpenElements[ni]
			if node == formattingElement {
				break
			}

			nodeAFE := c.afeIndex(node)
			if inner > 3 && nodeAFE >= 0 {
				c.removeAFEAt(nodeAFE)
				if nodeAFE < bookmark {
					bookmark--
				}
				nodeAFE = -1
			}
			if nodeAFE < 0 {
				c.removeStackAt(ni)
				continue
			}

			clone := c.arena.Node(c.arena.CloneElement(node.Handle()))
			c.activeFormattingElements[nodeAFE] = clone
			c.stackOfOpenElements[ni] = clone
			node = clone
			if lastNode == furthestBlock {
				bookmark = nodeAFE + 1
			}
			c.arena.AppendChild(node.Handle(), lastNode.Handle())
			lastNode = node
		}

		c.insertAt(c.appropriatePlace(commonAncestor), lastNode)

		clone := c.arena.Node(c.arena.CloneElement(formattingElement.Handle()))
		c.arena.MoveChildren(furthestBlock.Handle(), clone.Handle())
		c.arena.AppendChild(furthestBlock.Handle(), clone.Handle())

		if fi = c.afeIndex(formattingElement); fi >= 0 {
			if fi < bookmark {
				bookmark--
			}
			c.removeAFEAt(fi)
		}
		c.insertAFEAt(bookmark, clone)

		c.removeFromStack(formattingElement)
		c.insertStackAt(c.stackIndex(furthestBlock)+1, clone)
	}
	return false
}

func (c *HTMLTreeConstructor) currentTemplateInsertionMode() insertionMode {
	return c.templateInsertionModes[len(c.templateInsertionModes)-1]
}

func (c *HTMLTreeConstructor) pushTemplateInsertionMode(m insertionMode) {
	c.templateInsertionModes = append(c.templateInsertionModes, m)
}

func (c *HTMLTreeConstructor) popTemplateInsertionMode() {
	if l := len(c.templateInsertionModes); l > 0 {
		c.templateInsertionModes = c.templateInsertionModes[:l-1]
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#reset-the-insertion-mode-appropriately
func (c *HTMLTreeConstructor) resetInsertionMode() insertionMode {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		last := i == 0
		if last && c.context != nil {
			node = c.context
		}

		if node.Namespace == spec.Htmlns {
			switch node.Name {
			case "select":
				if !last {
					for j := i - 1; j >= 0; j-- {
						ancestor := c.stackOfOpenElements[j]
						if ancestor.Is("template") {
							break
						}
						if ancestor.Is("table") {
							return inSelectInTable
						}
					}
				}
				return inSelect
			case "td", "th":
				if !last {
					return inCell
				}
			case "tr":
				return inRow
			case "tbody", "thead", "tfoot":
				return inTableBody
			case "caption":
				return inCaption
			case "colgroup":
				return inColumnGroup
			case "table":
				return inTable
			case "template":
				return c.currentTemplateInsertionMode()
			case "head":
				if !last {
					return inHead
				}
			case "body":
				return inBody
			case "frameset":
				return inFrameset
			case "html":
				if c.headElementPointer == nil {
					return beforeHead
				}
				return afterHead
			}
		}
		if last {
			return inBody
		}
	}
	return inBody
}

// closePElement implements "close a p element".
func (c *HTMLTreeConstructor) closePElement() {
	c.generateImpliedEndTags("p")
	if !c.getCurrentNode().Is("p") {
		c.parseError(spec.UnclosedElements)
	}
	c.popUntil("p")
}

func (c *HTMLTreeConstructor) closePElementInButtonScope() {
	if c.elementInScope(buttonScope, "p") {
		c.closePElement()
	}
}

func isWhitespaceToken(t *Token) bool {
	if t.TokenType != characterToken {
		return false
	}
	switch t.Data {
	case "\t", "\n", "\f", "\r", " ":
		return true
	}
	return false
}

func (c *HTMLTreeConstructor) checkUnclosedAtEOF() {
	for _, n := range c.stackOfOpenElements {
		if !n.Is("dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc",
			"tbody", "td", "tfoot", "th", "thead", "tr", "body", "html") {
			c.parseError(spec.UnclosedElements)
			return
		}
	}
}

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoScript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inSelectInTable
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

var insertionModeNames = [...]string{
	"initial", "before html", "before head", "in head", "in head noscript",
	"after head", "in body", "text", "in table", "in table text", "in caption",
	"in column group", "in table body", "in row", "in cell", "in select",
	"in select in table", "in template", "after body", "in frameset",
	"after frameset", "after after body", "after after frameset",
}

func (m insertionMode) String() string {
	if int(m) < len(insertionModeNames) {
		return insertionModeNames[m]
	}
	return "unknown"
}

// A treeConstructionModeHandler handles one token for an insertion mode and
// returns whether to reprocess it and the mode to continue in. Handlers that
// leave the mode alone return c.insertionMode, so a handler can borrow the
// rules of another mode by calling that mode's handler directly.
type treeConstructionModeHandler func(t *Token) (bool, insertionMode)
