package parser

import "github.com/heathj/htmlcheck/parser/spec"

func (c *HTMLTreeConstructor) popSelect() insertionMode {
	c.popUntil("select")
	return c.resetInsertionMode()
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselect
func (c *HTMLTreeConstructor) inSelectModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\u0000" {
			c.parseError(spec.UnexpectedNullCharacter)
		} else {
			c.insertCharacter(t)
		}
		return false, c.insertionMode
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
		case "option":
			if c.getCurrentNode().Is("option") {
				c.pop()
			}
			c.insertHTMLElementForToken(t)
			return false, c.insertionMode
		case "optgroup", "hr":
			if c.getCurrentNode().Is("option") {
				c.pop()
			}
			if c.getCurrentNode().Is("optgroup") {
				c.pop()
			}
			c.insertHTMLElementForToken(t)
			if t.TagName == "hr" {
				c.pop()
				c.acknowledgeSelfClosing(t)
			}
			return false, c.insertionMode
		case "select":
			c.parseError(spec.UnexpectedStartTag)
			if !c.elementInScope(selectScope, "select") {
				return false, c.insertionMode
			}
			return false, c.popSelect()
		case "input", "keygen", "textarea":
			c.parseError(spec.UnexpectedStartTag)
			if !c.elementInScope(selectScope, "select") {
				return false, c.insertionMode
			}
			return true, c.popSelect()
		case "script", "template":
			return c.inHeadModeHandler(t)
		}
	case endTagToken:
		switch t.TagName {
		case "optgroup":
			n := len(c.stackOfOpenElements)
			if c.getCurrentNode().Is("option") && n > 1 && c.stackOfOpenElements[n-2].Is("optgroup") {
				c.pop()
			}
			if c.getCurrentNode().Is("optgroup") {
				c.pop()
			} else {
				c.parseError(spec.UnexpectedEndTag)
			}
			return false, c.insertionMode
		case "option":
			if c.getCurrentNode().Is("option") {
				c.pop()
			} else {
				c.parseError(spec.UnexpectedEndTag)
			}
			return false, c.insertionMode
		case "select":
			if !c.elementInScope(selectScope, "select") {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			return false, c.popSelect()
		case "template":
			return c.inHeadModeHandler(t)
		}
	case endOfFileToken:
		return c.inBodyModeHandler(t)
	}

	c.unexpectedToken(t)
	return false, c.insertionMode
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselectintable
func (c *HTMLTreeConstructor) inSelectInTableModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			c.parseError(spec.UnexpectedStartTag)
			return true, c.popSelect()
		}
	case endTagToken:
		switch t.TagName {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			c.parseError(spec.UnexpectedEndTag)
			if !c.elementInScope(tableScope, t.TagName) {
				return false, c.insertionMode
			}
			return true, c.popSelect()
		}
	}
	return c.inSelectModeHandler(t)
}

// switchTemplateMode replaces the current template insertion mode and
// reprocesses the token in it.
func (c *HTMLTreeConstructor) switchTemplateMode(m insertionMode) (bool, insertionMode) {
	c.popTemplateInsertionMode()
	c.pushTemplateInsertionMode(m)
	return true, m
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intemplate
func (c *HTMLTreeConstructor) inTemplateModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken, commentToken, docTypeToken:
		return c.inBodyModeHandler(t)
	case startTagToken:
		switch t.TagName {
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			return c.inHeadModeHandler(t)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			return c.switchTemplateMode(inTable)
		case "col":
			return c.switchTemplateMode(inColumnGroup)
		case "tr":
			return c.switchTemplateMode(inTableBody)
		case "td", "th":
			return c.switchTemplateMode(inRow)
		}
		return c.switchTemplateMode(inBody)
	case endTagToken:
		if t.TagName == "template" {
			return c.inHeadModeHandler(t)
		}
		c.parseError(spec.UnexpectedEndTag)
		return false, c.insertionMode
	case endOfFileToken:
		if !c.stackContains("template") {
			c.stopParsing()
			return false, c.insertionMode
		}
		c.parseError(spec.UnexpectedEOF)
		c.popUntil("template")
		c.clearActiveFormattingElementsToLastMarker()
		c.popTemplateInsertionMode()
		return true, c.resetInsertionMode()
	}
	return false, c.insertionMode
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterbody
func (c *HTMLTreeConstructor) afterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceToken(t) {
			return c.inBodyModeHandler(t)
		}
	case commentToken:
		c.insertCommentAt(t, insertionLocation{parent: c.stackOfOpenElements[0]})
		return false, c.insertionMode
	case docTypeToken:
		c.parseError(spec.UnexpectedDoctype)
		return false, c.insertionMode
	case startTagToken:
		if t.TagName == "html" {
			return c.inBodyModeHandler(t)
		}
	case endTagToken:
		if t.TagName == "html" {
			if c.context != nil {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			return false, afterAfterBody
		}
	case endOfFileToken:
		c.stopParsing()
		return false, c.insertionMode
	}

	c.unexpectedToken(t)
	return true, inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inframeset
func (c *HTMLTreeConstructor) inFramesetModeHandler(t *Token) (bool, insertionMode) {
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
		case "frameset":
			c.insertHTMLElementForToken(t)
			return false, c.insertionMode
		case "frame":
			c.insertHTMLElementForToken(t)
			c.pop()
			c.acknowledgeSelfClosing(t)
			return false, c.insertionMode
		case "noframes":
			return c.inHeadModeHandler(t)
		}
	case endTagToken:
		if t.TagName == "frameset" {
			if len(c.stackOfOpenElements) == 1 {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			c.pop()
			if c.context == nil && !c.getCurrentNode().Is("frameset") {
				return false, afterFrameset
			}
			return false, c.insertionMode
		}
	case endOfFileToken:
		if len(c.stackOfOpenElements) > 1 {
			c.parseError(spec.UnclosedElements)
		}
		c.stopParsing()
		return false, c.insertionMode
	}

	c.unexpectedToken(t)
	return false, c.insertionMode
}

func (c *HTMLTreeConstructor) unexpectedToken(t *Token) {
	switch t.TokenType {
	case startTagToken:
		c.parseError(spec.UnexpectedStartTag)
	case endTagToken:
		c.parseError(spec.UnexpectedEndTag)
	default:
		c.parseError(spec.UnexpectedCharacter)
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterframeset
func (c *HTMLTreeConstructor) afterFramesetModeHandler(t *Token) (bool, insertionMode) {
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
		case "noframes":
			return c.inHeadModeHandler(t)
		}
	case endTagToken:
		if t.TagName == "html" {
			return false, afterAfterFrameset
		}
	case endOfFileToken:
		c.stopParsing()
		return false, c.insertionMode
	}

	c.unexpectedToken(t)
	return false, c.insertionMode
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-body-insertion-mode
func (c *HTMLTreeConstructor) afterAfterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentAt(t, insertionLocation{parent: c.document})
		return false, c.insertionMode
	case docTypeToken:
		return c.inBodyModeHandler(t)
	case characterToken:
		if isWhitespaceToken(t) {
			return c.inBodyModeHandler(t)
		}
	case startTagToken:
		if t.TagName == "html" {
			return c.inBodyModeHandler(t)
		}
	case endOfFileToken:
		c.stopParsing()
		return false, c.insertionMode
	}

	c.unexpectedToken(t)
	return true, inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-frameset-insertion-mode
func (c *HTMLTreeConstructor) afterAfterFramesetModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentAt(t, insertionLocation{parent: c.document})
		return false, c.insertionMode
	case docTypeToken:
		return c.inBodyModeHandler(t)
	case characterToken:
		if isWhitespaceToken(t) {
			return c.inBodyModeHandler(t)
		}
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.inBodyModeHandler(t)
		case "noframes":
			return c.inHeadModeHandler(t)
		}
	case endOfFileToken:
		c.stopParsing()
		return false, c.insertionMode
	}

	c.unexpectedToken(t)
	return false, c.insertionMode
}
