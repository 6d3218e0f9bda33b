package parser

import (
	"strings"

	"github.com/heathj/htmlcheck/parser/spec"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "\u00a0", "&nbsp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "\u00a0", "&nbsp;", "\"", "&quot;", "<", "&lt;", ">", "&gt;")
)

// SerializeDocument renders doc as HTML.
func SerializeDocument(doc *spec.Document) string {
	return SerializeChildren(doc.Node)
}

// Serialize renders n and its subtree as HTML. A document node renders as
// its children.
func Serialize(n *spec.Node) string {
	if n.Type == spec.DocumentNode {
		return SerializeChildren(n)
	}
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

// SerializeChildren renders the children of n, the equivalent of innerHTML.
// https://html.spec.whatwg.org/multipage/parsing.html#serialising-html-fragments
func SerializeChildren(n *spec.Node) string {
	var sb strings.Builder
	serializeChildren(&sb, n)
	return sb.String()
}

func serializeChildren(sb *strings.Builder, n *spec.Node) {
	if n.IsVoid() || n.Is("basefont", "bgsound", "frame", "keygen") {
		return
	}
	for _, child := range n.Children() {
		serializeNode(sb, child)
	}
}

func serializeNode(sb *strings.Builder, n *spec.Node) {
	switch n.Type {
	case spec.ElementNode:
		sb.WriteByte('<')
		sb.WriteString(n.Name)
		for _, a := range n.Attributes {
			sb.WriteByte(' ')
			sb.WriteString(a.QualifiedName())
			sb.WriteString("=\"")
			sb.WriteString(attrEscaper.Replace(a.Value))
			sb.WriteByte('"')
		}
		sb.WriteByte('>')
		if n.IsVoid() {
			return
		}

		// the parser drops a newline straight after these start tags, so
		// one that belongs to the content needs doubling.
		if n.Is("pre", "textarea", "listing") {
			if first := n.FirstChild(); first != nil && first.Type == spec.TextNode && strings.HasPrefix(first.Data, "\n") {
				sb.WriteByte('\n')
			}
		}
		serializeChildren(sb, n)
		sb.WriteString("</")
		sb.WriteString(n.Name)
		sb.WriteByte('>')
	case spec.TextNode:
		if p := n.Parent(); p != nil && p.Is("style", "script", "xmp", "iframe", "noembed", "noframes", "plaintext") {
			sb.WriteString(n.Data)
			return
		}
		sb.WriteString(textEscaper.Replace(n.Data))
	case spec.CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	case spec.DocumentTypeNode:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.Name)
		// identifiers are kept since they decide the quirks mode of a
		// reparse.
		switch {
		case !n.PublicIDMissing:
			sb.WriteString(" PUBLIC ")
			writeQuoted(sb, n.PublicID)
			if !n.SystemIDMissing {
				sb.WriteByte(' ')
				writeQuoted(sb, n.SystemID)
			}
		case !n.SystemIDMissing:
			sb.WriteString(" SYSTEM ")
			writeQuoted(sb, n.SystemID)
		}
		sb.WriteByte('>')
	case spec.DocumentNode:
		serializeChildren(sb, n)
	}
}

// writeQuoted quotes a doctype identifier. The tokenizer ends an identifier
// at its closing quote, so one holding a double quote is single quoted.
func writeQuoted(sb *strings.Builder, id string) {
	q := byte('"')
	if strings.IndexByte(id, '"') >= 0 {
		q = '\''
	}
	sb.WriteByte(q)
	sb.WriteString(id)
	sb.WriteByte(q)
}
