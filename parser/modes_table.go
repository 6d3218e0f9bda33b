package parser

import (
	"strings"

	"github.com/heathj/htmlcheck/parser/spec"
)

// clearStackBackTo pops elements until the current node is one of names or
// the html element.
func (c *HTMLTreeConstructor) clearStackBackTo(names ...string) {
	for {
		n := c.getCurrentNode()
		if n == nil || n.Is(names...) || n.Is("template", "html") {
			return
		}
		c.pop()
	}
}

func (c *HTMLTreeConstructor) clearStackBackToTable() {
	c.clearStackBackTo("table")
}

func (c *HTMLTreeConstructor) clearStackBackToTableBody() {
	c.clearStackBackTo("tbody", "tfoot", "thead")
}

func (c *HTMLTreeConstructor) clearStackBackToTableRow() {
	c.clearStackBackTo("tr")
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intable
func (c *HTMLTreeConstructor) inTableModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if c.getCurrentNode().Is("table", "tbody", "template", "tfoot", "thead", "tr") {
			c.pendingTableCharacters = c.pendingTableCharacters[:0]
			c.originalInsertionMode = c.insertionMode
			return true, inTableText
		}
	case commentToken:
		c.insertComment(t)
		return false, c.insertionMode
	case docTypeToken:
		c.parseError(spec.UnexpectedDoctype)
		return false, c.insertionMode
	case startTagToken:
		switch t.TagName {
		case "caption":
			c.clearStackBackToTable()
			c.insertMarker()
			c.insertHTMLElementForToken(t)
			return false, inCaption
		case "colgroup":
			c.clearStackBackToTable()
			c.insertHTMLElementForToken(t)
			return false, inColumnGroup
		case "col":
			c.clearStackBackToTable()
			c.insertHTMLElementNamed("colgroup")
			return true, inColumnGroup
		case "tbody", "tfoot", "thead":
			c.clearStackBackToTable()
			c.insertHTMLElementForToken(t)
			return false, inTableBody
		case "td", "th", "tr":
			c.clearStackBackToTable()
			c.insertHTMLElementNamed("tbody")
			return true, inTableBody
		case "table":
			c.parseError(spec.UnexpectedStartTag)
			if !c.elementInScope(tableScope, "table") {
				return false, c.insertionMode
			}
			c.popUntil("table")
			return true, c.resetInsertionMode()
		case "style", "script", "template":
			return c.inHeadModeHandler(t)
		case "input":
			if typ, ok := t.Attr("type"); ok && strings.EqualFold(typ, "hidden") {
				c.parseError(spec.UnexpectedStartTag)
				c.insertHTMLElementForToken(t)
				c.pop()
				c.acknowledgeSelfClosing(t)
				return false, c.insertionMode
			}
		case "form":
			c.parseError(spec.UnexpectedStartTag)
			if c.stackContains("template") || c.formElementPointer != nil {
				return false, c.insertionMode
			}
			c.formElementPointer = c.insertHTMLElementForToken(t)
			c.pop()
			return false, c.insertionMode
		}
	case endTagToken:
		switch t.TagName {
		case "table":
			if !c.elementInScope(tableScope, "table") {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			c.popUntil("table")
			return false, c.resetInsertionMode()
		case "body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.parseError(spec.UnexpectedEndTag)
			return false, c.insertionMode
		case "template":
			return c.inHeadModeHandler(t)
		}
	case endOfFileToken:
		return c.inBodyModeHandler(t)
	}

	c.parseError(spec.FosterParentedContent)
	c.fosterParenting = true
	reprocess, next := c.inBodyModeHandler(t)
	c.fosterParenting = false
	return reprocess, next
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intabletext
func (c *HTMLTreeConstructor) inTableTextModeHandler(t *Token) (bool, insertionMode) {
	if t.TokenType == characterToken {
		if t.Data == "\u0000" {
			c.parseError(spec.UnexpectedNullCharacter)
			return false, c.insertionMode
		}
		c.pendingTableCharacters = append(c.pendingTableCharacters, t)
		return false, c.insertionMode
	}

	nonWhitespace := false
	for _, p := range c.pendingTableCharacters {
		if !isWhitespaceToken(p) {
			nonWhitespace = true
			break
		}
	}

	if nonWhitespace {
		c.parseError(spec.FosterParentedContent)
		c.fosterParenting = true
		for _, p := range c.pendingTableCharacters {
			c.inBodyModeHandler(p)
		}
		c.fosterParenting = false
	} else {
		for _, p := range c.pendingTableCharacters {
			c.insertCharacter(p)
		}
	}
	c.pendingTableCharacters = c.pendingTableCharacters[:0]
	return true, c.originalInsertionMode
}

func (c *HTMLTreeConstructor) closeCaption() bool {
	if !c.elementInScope(tableScope, "caption") {
		c.parseError(spec.UnexpectedEndTag)
		return false
	}
	c.generateImpliedEndTags()
	if !c.getCurrentNode().Is("caption") {
		c.parseError(spec.UnclosedElements)
	}
	c.popUntil("caption")
	c.clearActiveFormattingElementsToLastMarker()
	return true
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incaption
func (c *HTMLTreeConstructor) inCaptionModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !c.closeCaption() {
				return false, c.insertionMode
			}
			return true, inTable
		}
	case endTagToken:
		switch t.TagName {
		case "caption":
			if !c.closeCaption() {
				return false, c.insertionMode
			}
			return false, inTable
		case "table":
			if !c.closeCaption() {
				return false, c.insertionMode
			}
			return true, inTable
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.parseError(spec.UnexpectedEndTag)
			return false, c.insertionMode
		}
	}
	return c.inBodyModeHandler(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incolgroup
func (c *HTMLTreeConstructor) inColumnGroupModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceToken(t) {
			c.insertCharacter(t)
			return false, c.insertionMode
		}
	case commentToken:
		c.insertComment(t)
		return false, c.insertionMode
	case docTypeToken:
		c.parseError(spec.UnexpectedDoctype)
		return false, c.insertionMode
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.inBodyModeHandler(t)
		case "col":
			c.insertHTMLElementForToken(t)
			c.pop()
			c.acknowledgeSelfClosing(t)
			return false, c.insertionMode
		case "template":
			return c.inHeadModeHandler(t)
		}
	case endTagToken:
		switch t.TagName {
		case "colgroup":
			if !c.getCurrentNode().Is("colgroup") {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			c.pop()
			return false, inTable
		case "col":
			c.parseError(spec.UnexpectedEndTag)
			return false, c.insertionMode
		case "template":
			return c.inHeadModeHandler(t)
		}
	case endOfFileToken:
		return c.inBodyModeHandler(t)
	}

	if !c.getCurrentNode().Is("colgroup") {
		c.unexpectedToken(t)
		return false, c.insertionMode
	}
	c.pop()
	return true, inTable
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intbody
func (c *HTMLTreeConstructor) inTableBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "tr":
			c.clearStackBackToTableBody()
			c.insertHTMLElementForToken(t)
			return false, inRow
		case "th", "td":
			c.parseError(spec.UnexpectedStartTag)
			c.clearStackBackToTableBody()
			c.insertHTMLElementNamed("tr")
			return true, inRow
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			return c.closeTableBody(t)
		}
	case endTagToken:
		switch t.TagName {
		case "tbody", "tfoot", "thead":
			if !c.elementInScope(tableScope, t.TagName) {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			c.clearStackBackToTableBody()
			c.pop()
			return false, inTable
		case "table":
			return c.closeTableBody(t)
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			c.parseError(spec.UnexpectedEndTag)
			return false, c.insertionMode
		}
	}
	return c.inTableModeHandler(t)
}

func (c *HTMLTreeConstructor) closeTableBody(t *Token) (bool, insertionMode) {
	if !c.elementInScope(tableScope, "tbody", "thead", "tfoot") {
		if t.TokenType == startTagToken {
			c.parseError(spec.UnexpectedStartTag)
		} else {
			c.parseError(spec.UnexpectedEndTag)
		}
		return false, c.insertionMode
	}
	c.clearStackBackToTableBody()
	c.pop()
	return true, inTable
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intr
func (c *HTMLTreeConstructor) inRowModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "th", "td":
			c.clearStackBackToTableRow()
			c.insertHTMLElementForToken(t)
			c.insertMarker()
			return false, inCell
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !c.closeRow() {
				c.parseError(spec.UnexpectedStartTag)
				return false, c.insertionMode
			}
			return true, inTableBody
		}
	case endTagToken:
		switch t.TagName {
		case "tr":
			if !c.closeRow() {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			return false, inTableBody
		case "table":
			if !c.closeRow() {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			return true, inTableBody
		case "tbody", "tfoot", "thead":
			if !c.elementInScope(tableScope, t.TagName) {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			if !c.closeRow() {
				return false, c.insertionMode
			}
			return true, inTableBody
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			c.parseError(spec.UnexpectedEndTag)
			return false, c.insertionMode
		}
	}
	return c.inTableModeHandler(t)
}

// closeRow pops the current row. It reports false, leaving the stack alone,
// when no tr is in table scope.
func (c *HTMLTreeConstructor) closeRow() bool {
	if !c.elementInScope(tableScope, "tr") {
		return false
	}
	c.clearStackBackToTableRow()
	c.pop()
	return true
}

// https://html.spec.whatwg.org/multipage/parsing.html#close-the-cell
func (c *HTMLTreeConstructor) closeTheCell() insertionMode {
	c.generateImpliedEndTags()
	if !c.getCurrentNode().Is("td", "th") {
		c.parseError(spec.UnclosedElements)
	}
	c.popUntil("td", "th")
	c.clearActiveFormattingElementsToLastMarker()
	return inRow
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intd
func (c *HTMLTreeConstructor) inCellModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !c.elementInScope(tableScope, "td", "th") {
				c.parseError(spec.UnexpectedStartTag)
				return false, c.insertionMode
			}
			return true, c.closeTheCell()
		}
	case endTagToken:
		switch t.TagName {
		case "td", "th":
			if !c.elementInScope(tableScope, t.TagName) {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			c.generateImpliedEndTags()
			if !c.getCurrentNode().Is(t.TagName) {
				c.parseError(spec.UnclosedElements)
			}
			c.popUntil(t.TagName)
			c.clearActiveFormattingElementsToLastMarker()
			return false, inRow
		case "body", "caption", "col", "colgroup", "html":
			c.parseError(spec.UnexpectedEndTag)
			return false, c.insertionMode
		case "table", "tbody", "tfoot", "thead", "tr":
			if !c.elementInScope(tableScope, t.TagName) {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			return true, c.closeTheCell()
		}
	}
	return c.inBodyModeHandler(t)
}
