package parser

import "github.com/heathj/htmlcheck/parser/spec"

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func (c *HTMLTreeConstructor) initialModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceToken(t) {
			return false, c.insertionMode
		}
	case commentToken:
		c.insertCommentAt(t, insertionLocation{parent: c.document})
		return false, c.insertionMode
	case docTypeToken:
		if !isConformingDoctype(t) {
			c.parseError(spec.NonConformingDoctype)
		}

		doctype := c.arena.Node(c.arena.NewDoctype(t.TagName, t.PublicIdentifier, t.SystemIdentifier))
		doctype.PublicIDMissing = t.PublicIDMissing
		doctype.SystemIDMissing = t.SystemIDMissing
		doctype.Pos = t.Pos
		c.arena.AppendChild(c.document.Handle(), doctype.Handle())
		c.quirksMode = doctypeQuirksMode(t)
		return false, beforeHTML
	}

	c.parseError(spec.MissingDoctype)
	c.quirksMode = spec.Quirks
	return true, beforeHTML
}

func (c *HTMLTreeConstructor) insertHTMLRoot(t *Token) {
	elem := c.createElementForToken(t, spec.Htmlns)
	c.arena.AppendChild(c.document.Handle(), elem.Handle())
	c.push(elem)
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-html-insertion-mode
func (c *HTMLTreeConstructor) beforeHTMLModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case docTypeToken:
		c.parseError(spec.UnexpectedDoctype)
		return false, c.insertionMode
	case commentToken:
		c.insertCommentAt(t, insertionLocation{parent: c.document})
		return false, c.insertionMode
	case characterToken:
		if isWhitespaceToken(t) {
			return false, c.insertionMode
		}
	case startTagToken:
		if t.TagName == "html" {
			c.insertHTMLRoot(t)
			return false, beforeHead
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			c.parseError(spec.UnexpectedEndTag)
			return false, c.insertionMode
		}
	}

	c.insertHTMLRoot(c.syntheticStartTag("html"))
	return true, beforeHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-head-insertion-mode
func (c *HTMLTreeConstructor) beforeHeadModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceToken(t) {
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
		case "head":
			c.headElementPointer = c.insertHTMLElementForToken(t)
			return false, inHead
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
		default:
			c.parseError(spec.UnexpectedEndTag)
			return false, c.insertionMode
		}
	}

	c.headElementPointer = c.insertHTMLElementNamed("head")
	return true, inHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inhead
func (c *HTMLTreeConstructor) inHeadModeHandler(t *Token) (bool, insertionMode) {
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
		case "base", "basefont", "bgsound", "link", "meta":
			c.insertHTMLElementForToken(t)
			c.pop()
			c.acknowledgeSelfClosing(t)
			return false, c.insertionMode
		case "title":
			return false, c.parseGenericText(t, rcDataState)
		case "noscript":
			if c.scriptingEnabled {
				return false, c.parseGenericText(t, rawTextState)
			}
			c.insertHTMLElementForToken(t)
			return false, inHeadNoScript
		case "noframes", "style":
			return false, c.parseGenericText(t, rawTextState)
		case "script":
			return false, c.parseGenericText(t, scriptDataState)
		case "template":
			c.insertHTMLElementForToken(t)
			c.insertMarker()
			c.frameset = framesetNotOK
			c.pushTemplateInsertionMode(inTemplate)
			return false, inTemplate
		case "head":
			c.parseError(spec.UnexpectedStartTag)
			return false, c.insertionMode
		}
	case endTagToken:
		switch t.TagName {
		case "head":
			c.pop()
			return false, afterHead
		case "body", "html", "br":
		case "template":
			if !c.stackContains("template") {
				c.parseError(spec.UnexpectedEndTag)
				return false, c.insertionMode
			}
			c.generateAllImpliedEndTagsThoroughly()
			if !c.getCurrentNode().Is("template") {
				c.parseError(spec.UnclosedElements)
			}
			c.popUntil("template")
			c.clearActiveFormattingElementsToLastMarker()
			c.popTemplateInsertionMode()
			return false, c.resetInsertionMode()
		default:
			c.parseError(spec.UnexpectedEndTag)
			return false, c.insertionMode
		}
	}

	c.pop()
	return true, afterHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inheadnoscript
func (c *HTMLTreeConstructor) inHeadNoScriptModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case docTypeToken:
		c.parseError(spec.UnexpectedDoctype)
		return false, c.insertionMode
	case characterToken:
		if isWhitespaceToken(t) {
			return c.inHeadModeHandler(t)
		}
	case commentToken:
		return c.inHeadModeHandler(t)
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.inBodyModeHandler(t)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return c.inHeadModeHandler(t)
		case "head", "noscript":
			c.parseError(spec.UnexpectedStartTag)
			return false, c.insertionMode
		}
	case endTagToken:
		switch t.TagName {
		case "noscript":
			c.pop()
			return false, inHead
		case "br":
		default:
			c.parseError(spec.UnexpectedEndTag)
			return false, c.insertionMode
		}
	}

	c.unexpectedToken(t)
	c.pop()
	return true, inHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-head-insertion-mode
func (c *HTMLTreeConstructor) afterHeadModeHandler(t *Token) (bool, insertionMode) {
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
		case "body":
			c.insertHTMLElementForToken(t)
			c.frameset = framesetNotOK
			return false, inBody
		case "frameset":
			c.insertHTMLElementForToken(t)
			return false, inFrameset
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			c.parseError(spec.UnexpectedStartTag)
			head := c.headElementPointer
			c.push(head)
			reprocess, next := c.inHeadModeHandler(t)
			c.removeFromStack(head)
			return reprocess, next
		case "head":
			c.parseError(spec.UnexpectedStartTag)
			return false, c.insertionMode
		}
	case endTagToken:
		switch t.TagName {
		case "template":
			return c.inHeadModeHandler(t)
		case "body", "html", "br":
		default:
			c.parseError(spec.UnexpectedEndTag)
			return false, c.insertionMode
		}
	}

	c.insertHTMLElementNamed("body")
	return true, inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
func (c *HTMLTreeConstructor) textModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		c.insertCharacter(t)
		return false, c.insertionMode
	case endOfFileToken:
		c.parseError(spec.UnexpectedEOF)
		c.pop()
		return true, c.originalInsertionMode
	case endTagToken:
		c.pop()
		return false, c.originalInsertionMode
	}
	return false, c.insertionMode
}
