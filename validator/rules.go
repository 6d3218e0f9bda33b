package validator

import (
	"strings"

	"github.com/heathj/htmlcheck/parser/spec"
	"golang.org/x/net/html/atom"
)

var deprecatedElements = map[string]struct{}{
	"acronym": {}, "applet": {}, "basefont": {}, "bgsound": {}, "big": {},
	"blink": {}, "center": {}, "font": {}, "frame": {}, "frameset": {},
	"isindex": {}, "keygen": {}, "listing": {}, "marquee": {}, "menuitem": {},
	"multicol": {}, "nextid": {}, "nobr": {}, "noembed": {}, "noframes": {},
	"plaintext": {}, "rb": {}, "rtc": {}, "spacer": {}, "strike": {},
	"tt": {}, "xmp": {},
}

func isDeprecated(name string) bool {
	_, ok := deprecatedElements[name]
	return ok
}

// reservedCustomNames are hyphenated names that custom elements cannot use.
var reservedCustomNames = map[string]struct{}{
	"annotation-xml": {}, "color-profile": {}, "font-face": {},
	"font-face-src": {}, "font-face-uri": {}, "font-face-format": {},
	"font-face-name": {}, "missing-glyph": {},
}

// isKnownElement accepts names in the atom table and valid custom element
// names. The atom table also holds attribute names, so a stray <alt> passes.
func isKnownElement(name string) bool {
	if atom.Lookup([]byte(name)) != 0 {
		return true
	}
	return isCustomElementName(name)
}

// https://html.spec.whatwg.org/multipage/custom-elements.html#valid-custom-element-name
func isCustomElementName(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' || !strings.Contains(name, "-") {
		return false
	}
	if _, ok := reservedCustomNames[name]; ok {
		return false
	}
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			return false
		}
	}
	return true
}

func (c *checker) checkRequiredAttributes(n *spec.Node) {
	switch n.Name {
	case "img":
		if !n.HasAttr("src") {
			c.report(n, MissingRequiredAttribute, "<img> requires a src attribute")
		}
		if !n.HasAttr("alt") {
			c.report(n, MissingRequiredAttribute, "<img> requires an alt attribute")
		}
	case "link":
		if rel, _ := n.Attr("rel"); hasToken(rel, "stylesheet") && !n.HasAttr("href") {
			c.report(n, MissingRequiredAttribute, "<link rel=stylesheet> requires an href attribute")
		}
	case "iframe":
		if !n.HasAttr("src") && !n.HasAttr("srcdoc") {
			c.report(n, MissingRequiredAttribute, "<iframe> requires a src or srcdoc attribute")
		}
	case "video", "audio":
		if !n.HasAttr("src") && !hasChild(n, "source") {
			c.report(n, MissingRequiredAttribute, "<%s> requires a src attribute or <source> children", n.Name)
		}
	case "meta":
		named := n.HasAttr("name") || n.HasAttr("http-equiv")
		if named && !n.HasAttr("content") && !n.HasAttr("charset") && !n.HasAttr("itemprop") {
			c.report(n, MissingRequiredAttribute, "<meta> with name or http-equiv requires a content attribute")
		}
	case "area":
		if !n.HasAttr("alt") {
			c.report(n, MissingRequiredAttribute, "<area> requires an alt attribute")
		}
	case "optgroup":
		if !n.HasAttr("label") {
			c.report(n, MissingRequiredAttribute, "<optgroup> requires a label attribute")
		}
	}
}

// checkID flags empty ids and ids containing whitespace, then records the id
// for the duplicate check. Empty ids are not compared.
func (c *checker) checkID(n *spec.Node) {
	id, ok := n.Attr("id")
	if !ok {
		return
	}
	switch {
	case id == "":
		c.report(n, InvalidAttributeValue, "id must not be empty")
		return
	case strings.ContainsAny(id, "\t\n\f\r "):
		c.report(n, InvalidAttributeValue, "id %q must not contain whitespace", id)
	}

	if _, seen := c.ids[id]; seen {
		c.report(n, DuplicateID, "duplicate id %q", id)
		return
	}
	c.ids[id] = struct{}{}
}

var inputTypes = map[string]struct{}{
	"button": {}, "checkbox": {}, "color": {}, "date": {}, "datetime-local": {},
	"email": {}, "file": {}, "hidden": {}, "image": {}, "month": {},
	"number": {}, "password": {}, "radio": {}, "range": {}, "reset": {},
	"search": {}, "submit": {}, "tel": {}, "text": {}, "time": {},
	"url": {}, "week": {},
}

// browsing context keywords; any other name starting with an underscore is
// invalid.
var targetKeywords = map[string]struct{}{
	"_self": {}, "_blank": {}, "_parent": {}, "_top": {},
}

func (c *checker) checkAttributeValues(n *spec.Node) {
	switch n.Name {
	case "input":
		if typ, ok := n.Attr("type"); ok {
			if _, valid := inputTypes[strings.ToLower(typ)]; !valid {
				c.report(n, InvalidAttributeValue, "invalid input type %q", typ)
			}
		}
	case "a", "form":
		if target, ok := n.Attr("target"); ok && strings.HasPrefix(target, "_") {
			if _, valid := targetKeywords[strings.ToLower(target)]; !valid {
				c.report(n, InvalidAttributeValue, "invalid target %q", target)
			}
		}
	}
}

func hasChild(n *spec.Node, name string) bool {
	for _, c := range n.Children() {
		if c.Is(name) {
			return true
		}
	}
	return false
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}
