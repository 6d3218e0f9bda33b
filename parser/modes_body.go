package parser

import (
	"strings"

	"github.com/heathj/htmlcheck/parser/spec"
)

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (c *HTMLTreeConstructor) inBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		switch {
		case t.Data == "\u0000":
			c.parseError(spec.UnexpectedNullCharacter)
		case isWhitespaceToken(t):
			c.reconstructActiveFormattingElements()
			c.insertCharacter(t)
		default:
			c.reconstructActiveFormattingElements()
			c.insertCharacter(t)
			c.frameset = framesetNotOK
		}
		return false, c.insertionMode
	case commentToken:
		c.insertComment(t)
		return false, c.insertionMode
	case docTypeToken:
		c.parseError(spec.UnexpectedDoctype)
		return false, c.insertionMode
	case startTagToken:
		return c.inBodyStartTag(t)
	case endTagToken:
		return c.inBodyEndTag(t)
	case endOfFileToken:
		if len(c.templateInsertionModes) > 0 {
			return c.inTemplateModeHandler(t)
		}
		c.checkUnclosedAtEOF()
		c.stopParsing()
	}
	return false, c.insertionMode
}

// mergeAttributes copies attributes of t missing from n onto n.
func mergeAttributes(n *spec.Node, t *Token) {
	for _, a := range t.Attributes {
		if !n.HasAttr(a.Name) {
			n.Attributes = append(n.Attributes, a)
		}
	}
}

func (c *HTMLTreeConstructor) inBodyStartTag(t *Token) (bool, insertionMode) {
	switch t.TagName {
	case "html":
		c.parseError(spec.UnexpectedStartTag)
		if !c.stackContains("template") {
			mergeAttributes(c.stackOfOpenElements[0], t)
		}
	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
		return c.inHeadModeHandler(t)
	case "body":
		c.parseError(spec.UnexpectedStartTag)
		if len(c.stackOfOpenElements) < 2 || !c.stackOfOpenElements[1].Is("body") || c.stackContains("template") {
			break
		}
		c.frameset = framesetNotOK
		mergeAttributes(c.stackOfOpenElements[1], t)
	case "frameset":
		c.parseError(spec.UnexpectedStartTag)
		if len(c.stackOfOpenElements) < 2 || !c.stackOfOpenElements[1].Is("body") || c.frameset == framesetNotOK {
			break
		}
		c.arena.Detach(c.stackOfOpenElements[1].Handle())
		c.stackOfOpenElements = c.stackOfOpenElements[:1]
		c.insertHTMLElementForToken(t)
		return false, inFrameset
	case "address", "article", "aside", "blockquote", "center", "details", "dialog", "dir", "div", "dl",
		"fieldset", "figcaption", "figure", "footer", "header", "hgroup", "main", "menu", "nav", "ol", "p",
		"search", "section", "summary", "ul":
		c.closePElementInButtonScope()
		c.insertHTMLElementForToken(t)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		c.closePElementInButtonScope()
		if c.getCurrentNode().Is("h1", "h2", "h3", "h4", "h5", "h6") {
			c.parseError(spec.UnexpectedStartTag)
			c.pop()
		}
		c.insertHTMLElementForToken(t)
	case "pre", "listing":
		c.closePElementInButtonScope()
		c.insertHTMLElementForToken(t)
		c.ignoreNextLF = true
		c.frameset = framesetNotOK
	case "form":
		hasTemplate := c.stackContains("template")
		if c.formElementPointer != nil && !hasTemplate {
			c.parseError(spec.UnexpectedStartTag)
			break
		}
		c.closePElementInButtonScope()
		form := c.insertHTMLElementForToken(t)
		if !hasTemplate {
			c.formElementPointer = form
		}
	case "li":
		c.closeListItem("li")
		c.closePElementInButtonScope()
		c.insertHTMLElementForToken(t)
	case "dd", "dt":
		c.closeListItem("dd", "dt")
		c.closePElementInButtonScope()
		c.insertHTMLElementForToken(t)
	case "plaintext":
		c.closePElementInButtonScope()
		c.insertHTMLElementForToken(t)
		c.switchTokenizer(plaintextState)
	case "button":
		if c.elementInScope(defaultScope, "button") {
			c.parseError(spec.UnexpectedStartTag)
			c.generateImpliedEndTags()
			c.popUntil("button")
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
	case "a":
		for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
			e := c.activeFormattingElements[i]
			if e == nil {
				break
			}
			if e.Is("a") {
				c.parseError(spec.MisnestedFormattingElement)
				c.adoptionAgencyAlgorithm(c.syntheticEndTag("a"))
				if j := c.afeIndex(e); j >= 0 {
					c.removeAFEAt(j)
				}
				c.removeFromStack(e)
				break
			}
		}
		c.reconstructActiveFormattingElements()
		c.pushActiveFormattingElements(c.insertHTMLElementForToken(t))
	case "b", "big", "code", "em", "font", "i", "s", "small", "strike", "strong", "tt", "u":
		c.reconstructActiveFormattingElements()
		c.pushActiveFormattingElements(c.insertHTMLElementForToken(t))
	case "nobr":
		c.reconstructActiveFormattingElements()
		if c.elementInScope(defaultScope, "nobr") {
			c.parseError(spec.MisnestedFormattingElement)
			c.adoptionAgencyAlgorithm(c.syntheticEndTag("nobr"))
			c.reconstructActiveFormattingElements()
		}
		c.pushActiveFormattingElements(c.insertHTMLElementForToken(t))
	case "applet", "marquee", "object":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.insertMarker()
		c.frameset = framesetNotOK
	case "table":
		if c.quirksMode != spec.Quirks {
			c.closePElementInButtonScope()
		}
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		return false, inTable
	case "area", "br", "embed", "img", "keygen", "wbr":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.pop()
		c.acknowledgeSelfClosing(t)
		c.frameset = framesetNotOK
	case "input":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.pop()
		c.acknowledgeSelfClosing(t)
		if typ, ok := t.Attr("type"); !ok || !strings.EqualFold(typ, "hidden") {
			c.frameset = framesetNotOK
		}
	case "param", "source", "track":
		c.insertHTMLElementForToken(t)
		c.pop()
		c.acknowledgeSelfClosing(t)
	case "hr":
		c.closePElementInButtonScope()
		c.insertHTMLElementForToken(t)
		c.pop()
		c.acknowledgeSelfClosing(t)
		c.frameset = framesetNotOK
	case "image":
		c.parseError(spec.UnexpectedStartTag)
		img := *t
		img.TagName = "img"
		return c.inBodyStartTag(&img)
	case "textarea":
		c.insertHTMLElementForToken(t)
		c.ignoreNextLF = true
		c.switchTokenizer(rcDataState)
		c.originalInsertionMode = c.insertionMode
		c.frameset = framesetNotOK
		return false, text
	case "xmp":
		c.closePElementInButtonScope()
		c.reconstructActiveFormattingElements()
		c.frameset = framesetNotOK
		return false, c.parseGenericText(t, rawTextState)
	case "iframe":
		c.frameset = framesetNotOK
		return false, c.parseGenericText(t, rawTextState)
	case "noembed":
		return false, c.parseGenericText(t, rawTextState)
	case "noscript":
		if c.scriptingEnabled {
			return false, c.parseGenericText(t, rawTextState)
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	case "select":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.frameset = framesetNotOK
		switch c.insertionMode {
		case inTable, inCaption, inTableBody, inRow, inCell:
			return false, inSelectInTable
		}
		return false, inSelect
	case "optgroup", "option":
		if c.getCurrentNode().Is("option") {
			c.pop()
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	case "rb", "rtc":
		if c.elementInScope(defaultScope, "ruby") {
			c.generateImpliedEndTags()
			if !c.getCurrentNode().Is("ruby") {
				c.parseError(spec.UnexpectedStartTag)
			}
		}
		c.insertHTMLElementForToken(t)
	case "rp", "rt":
		if c.elementInScope(defaultScope, "ruby") {
			c.generateImpliedEndTags("rtc")
			if !c.getCurrentNode().Is("rtc", "ruby") {
				c.parseError(spec.UnexpectedStartTag)
			}
		}
		c.insertHTMLElementForToken(t)
	case "math":
		c.reconstructActiveFormattingElements()
		c.insertForeignStartTag(t, spec.Mathmlns)
	case "svg":
		c.reconstructActiveFormattingElements()
		c.insertForeignStartTag(t, spec.Svgns)
	case "caption", "col", "colgroup", "frame", "head", "tbody", "td", "tfoot", "th", "thead", "tr":
		c.parseError(spec.UnexpectedStartTag)
	default:
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	}
	return false, c.insertionMode
}

// closeListItem runs the loop shared by li, dd and dt start tags: close the
// nearest open item unless a special element other than address, div or p
// is in the way.
func (c *HTMLTreeConstructor) closeListItem(names ...string) {
	c.frameset = framesetNotOK
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		if node.Is(names...) {
			c.generateImpliedEndTags(node.Name)
			if !c.getCurrentNode().Is(node.Name) {
				c.parseError(spec.UnclosedElements)
			}
			c.popUntil(node.Name)
			return
		}
		if isSpecial(node) && !node.Is("address", "div", "p") {
			return
		}
	}
}

func (c *HTMLTreeConstructor) inBodyEndTag(t *Token) (bool, insertionMode) {
	switch t.TagName {
	case "template":
		return c.inHeadModeHandler(t)
	case "body", "html":
		if !c.elementInScope(defaultScope, "body") {
			c.parseError(spec.UnexpectedEndTag)
			break
		}
		c.checkUnclosedAtEOF()
		return t.TagName == "html", afterBody
	case "address", "article", "aside", "blockquote", "button", "center", "details", "dialog", "dir", "div",
		"dl", "fieldset", "figcaption", "figure", "footer", "header", "hgroup", "listing", "main", "menu",
		"nav", "ol", "pre", "search", "section", "summary", "ul":
		c.closeElementInScope(defaultScope, t.TagName)
	case "form":
		if c.stackContains("template") {
			c.closeElementInScope(defaultScope, "form")
			break
		}
		node := c.formElementPointer
		c.formElementPointer = nil
		if node == nil || !c.nodeInScope(defaultScope, node) {
			c.parseError(spec.UnexpectedEndTag)
			break
		}
		c.generateImpliedEndTags()
		if c.getCurrentNode() != node {
			c.parseError(spec.UnclosedElements)
		}
		c.removeFromStack(node)
	case "p":
		if !c.elementInScope(buttonScope, "p") {
			c.parseError(spec.UnexpectedEndTag)
			c.insertHTMLElementNamed("p")
		}
		c.closePElement()
	case "li":
		if !c.elementInScope(listItemScope, "li") {
			c.parseError(spec.UnexpectedEndTag)
			break
		}
		c.generateImpliedEndTags("li")
		if !c.getCurrentNode().Is("li") {
			c.parseError(spec.UnclosedElements)
		}
		c.popUntil("li")
	case "dd", "dt":
		if !c.elementInScope(defaultScope, t.TagName) {
			c.parseError(spec.UnexpectedEndTag)
			break
		}
		c.generateImpliedEndTags(t.TagName)
		if !c.getCurrentNode().Is(t.TagName) {
			c.parseError(spec.UnclosedElements)
		}
		c.popUntil(t.TagName)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !c.elementInScope(defaultScope, "h1", "h2", "h3", "h4", "h5", "h6") {
			c.parseError(spec.UnexpectedEndTag)
			break
		}
		c.generateImpliedEndTags()
		if !c.getCurrentNode().Is(t.TagName) {
			c.parseError(spec.UnclosedElements)
		}
		c.popUntil("h1", "h2", "h3", "h4", "h5", "h6")
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small", "strike", "strong", "tt", "u":
		if c.adoptionAgencyAlgorithm(t) {
			c.anyOtherEndTag(t)
		}
	case "applet", "marquee", "object":
		if c.closeElementInScope(defaultScope, t.TagName) {
			c.clearActiveFormattingElementsToLastMarker()
		}
	case "br":
		c.parseError(spec.UnexpectedEndTag)
		br := c.syntheticStartTag("br")
		return c.inBodyStartTag(br)
	default:
		c.anyOtherEndTag(t)
	}
	return false, c.insertionMode
}

// closeElementInScope handles the common end tag pattern: generate implied
// end tags, then pop up to and including the named element. It reports
// whether the element was in scope.
func (c *HTMLTreeConstructor) closeElementInScope(s scope, name string) bool {
	if !c.elementInScope(s, name) {
		c.parseError(spec.UnexpectedEndTag)
		return false
	}
	c.generateImpliedEndTags()
	if !c.getCurrentNode().Is(name) {
		c.parseError(spec.UnclosedElements)
	}
	c.popUntil(name)
	return true
}

func (c *HTMLTreeConstructor) anyOtherEndTag(t *Token) {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		if node.Is(t.TagName) {
			c.generateImpliedEndTags(t.TagName)
			if node != c.getCurrentNode() {
				c.parseError(spec.UnclosedElements)
			}
			c.popUntilNode(node)
			return
		}
		if isSpecial(node) {
			c.parseError(spec.UnexpectedEndTag)
			return
		}
	}
}
