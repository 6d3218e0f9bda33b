package parser

import (
	"strings"

	"github.com/heathj/htmlcheck/parser/spec"
)

var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

var svgAttributeAdjustments = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

// foreignAttributes maps qualified attribute names onto their namespace and
// local name.
var foreignAttributes = map[string]spec.Attribute{
	"xlink:actuate": {Namespace: spec.Xlinkns, Name: "actuate"},
	"xlink:arcrole": {Namespace: spec.Xlinkns, Name: "arcrole"},
	"xlink:href":    {Namespace: spec.Xlinkns, Name: "href"},
	"xlink:role":    {Namespace: spec.Xlinkns, Name: "role"},
	"xlink:show":    {Namespace: spec.Xlinkns, Name: "show"},
	"xlink:title":   {Namespace: spec.Xlinkns, Name: "title"},
	"xlink:type":    {Namespace: spec.Xlinkns, Name: "type"},
	"xml:lang":      {Namespace: spec.Xmlns, Name: "lang"},
	"xml:space":     {Namespace: spec.Xmlns, Name: "space"},
	"xmlns":         {Namespace: spec.Xmlnsns, Name: "xmlns"},
	"xmlns:xlink":   {Namespace: spec.Xmlnsns, Name: "xlink"},
}

func adjustMathMLAttributes(attrs []spec.Attribute) {
	for i := range attrs {
		if attrs[i].Name == "definitionurl" {
			attrs[i].Name = "definitionURL"
		}
	}
}

func adjustSVGAttributes(attrs []spec.Attribute) {
	for i := range attrs {
		if name, ok := svgAttributeAdjustments[attrs[i].Name]; ok {
			attrs[i].Name = name
		}
	}
}

func adjustForeignAttributes(attrs []spec.Attribute) {
	for i := range attrs {
		if attrs[i].Namespace != spec.Htmlns {
			continue
		}
		if adj, ok := foreignAttributes[attrs[i].Name]; ok {
			attrs[i].Namespace = adj.Namespace
			attrs[i].Name = adj.Name
		}
	}
}

func isMathMLTextIntegrationPoint(n *spec.Node) bool {
	if n == nil || n.Type != spec.ElementNode || n.Namespace != spec.Mathmlns {
		return false
	}
	switch n.Name {
	case "mi", "mo", "mn", "ms", "mtext":
		return true
	}
	return false
}

func isHTMLIntegrationPoint(n *spec.Node) bool {
	if n == nil || n.Type != spec.ElementNode {
		return false
	}
	switch n.Namespace {
	case spec.Mathmlns:
		if n.Name != "annotation-xml" {
			return false
		}
		enc, _ := n.Attr("encoding")
		return strings.EqualFold(enc, "text/html") || strings.EqualFold(enc, "application/xhtml+xml")
	case spec.Svgns:
		switch n.Name {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

// useForeignContentRules decides whether t goes to the rules for parsing
// tokens in foreign content rather than the current insertion mode.
// https://html.spec.whatwg.org/multipage/parsing.html#tree-construction-dispatcher
func (c *HTMLTreeConstructor) useForeignContentRules(t *Token) bool {
	n := c.adjustedCurrentNode()
	if n == nil || n.Namespace == spec.Htmlns || t.TokenType == endOfFileToken {
		return false
	}

	if isMathMLTextIntegrationPoint(n) {
		if t.TokenType == characterToken {
			return false
		}
		if t.TokenType == startTagToken && t.TagName != "mglyph" && t.TagName != "malignmark" {
			return false
		}
	}
	if n.Namespace == spec.Mathmlns && n.Name == "annotation-xml" &&
		t.TokenType == startTagToken && t.TagName == "svg" {
		return false
	}
	if isHTMLIntegrationPoint(n) && (t.TokenType == startTagToken || t.TokenType == characterToken) {
		return false
	}
	return true
}

func isBreakoutStartTag(t *Token) bool {
	switch t.TagName {
	case "b", "big", "blockquote", "body", "br", "center", "code", "dd", "div", "dl", "dt", "em",
		"embed", "h1", "h2", "h3", "h4", "h5", "h6", "head", "hr", "i", "img", "li", "listing",
		"menu", "meta", "nobr", "ol", "p", "pre", "ruby", "s", "small", "span", "strong",
		"strike", "sub", "sup", "table", "tt", "u", "ul", "var":
		return true
	case "font":
		for _, a := range t.Attributes {
			switch a.Name {
			case "color", "face", "size":
				return true
			}
		}
	}
	return false
}

// processInCurrentMode hands t to the current insertion mode directly,
// skipping the foreign content check in the dispatcher.
func (c *HTMLTreeConstructor) processInCurrentMode(t *Token) bool {
	var reprocess bool
	reprocess, c.insertionMode = c.mappings[c.insertionMode](t)
	return reprocess
}

// inForeignContentHandler reports whether t needs to be processed again.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign
func (c *HTMLTreeConstructor) inForeignContentHandler(t *Token) bool {
	switch t.TokenType {
	case characterToken:
		switch {
		case t.Data == "\u0000":
			c.parseError(spec.UnexpectedNullCharacter)
			c.insertCharacter(&Token{TokenType: characterToken, Data: "\uFFFD", Pos: t.Pos})
		case isWhitespaceToken(t):
			c.insertCharacter(t)
		default:
			c.insertCharacter(t)
			c.frameset = framesetNotOK
		}
		return false
	case commentToken:
		c.insertComment(t)
		return false
	case docTypeToken:
		c.parseError(spec.UnexpectedDoctype)
		return false
	case startTagToken:
		// with only a foreign fragment context left there is no HTML
		// element to break out to, so the tag stays foreign.
		if isBreakoutStartTag(t) && !c.atForeignFragmentRoot() {
			c.parseError(spec.UnexpectedStartTag)
			c.popUntilHTMLContent()
			return c.processInCurrentMode(t)
		}
		c.insertForeignStartTag(t, c.adjustedCurrentNode().Namespace)
		return false
	case endTagToken:
		if t.TagName == "br" || t.TagName == "p" {
			c.parseError(spec.UnexpectedEndTag)
			c.popUntilHTMLContent()
			return c.processInCurrentMode(t)
		}
		return c.foreignEndTag(t)
	}
	return false
}

func (c *HTMLTreeConstructor) atForeignFragmentRoot() bool {
	return c.context != nil && c.context.Namespace != spec.Htmlns && len(c.stackOfOpenElements) == 1
}

func (c *HTMLTreeConstructor) popUntilHTMLContent() {
	for {
		n := c.getCurrentNode()
		if n == nil || n.Namespace == spec.Htmlns || isMathMLTextIntegrationPoint(n) || isHTMLIntegrationPoint(n) {
			return
		}
		c.pop()
	}
}

func (c *HTMLTreeConstructor) foreignEndTag(t *Token) bool {
	cur := c.getCurrentNode()
	if cur.Namespace == spec.Svgns && cur.Name == "script" && t.TagName == "script" {
		c.pop()
		return false
	}

	if strings.ToLower(cur.Name) != t.TagName {
		c.parseError(spec.UnexpectedEndTag)
	}
	for i := len(c.stackOfOpenElements) - 1; i > 0; i-- {
		n := c.stackOfOpenElements[i]
		if strings.ToLower(n.Name) == t.TagName {
			c.popUntilNode(n)
			return false
		}
		if c.stackOfOpenElements[i-1].Namespace == spec.Htmlns {
			return c.processInCurrentMode(t)
		}
	}
	return false
}

// insertForeignStartTag inserts a MathML or SVG element for t, fixing up
// the case of names the tokenizer lowercased.
func (c *HTMLTreeConstructor) insertForeignStartTag(t *Token, ns spec.Namespace) {
	attrs := make([]spec.Attribute, len(t.Attributes))
	copy(attrs, t.Attributes)

	adjusted := *t
	switch ns {
	case spec.Mathmlns:
		adjustMathMLAttributes(attrs)
	case spec.Svgns:
		if name, ok := svgTagNameAdjustments[t.TagName]; ok {
			adjusted.TagName = name
		}
		adjustSVGAttributes(attrs)
	}
	adjustForeignAttributes(attrs)
	adjusted.Attributes = attrs

	c.insertForeignElementForToken(&adjusted, ns)
	if t.SelfClosing {
		c.pop()
		c.acknowledgeSelfClosing(t)
	}
}
