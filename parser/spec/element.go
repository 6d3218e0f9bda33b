package spec

// Namespace identifies the namespace of an element or attribute. Attributes
// that are in no namespace use Htmlns.
type Namespace uint

const (
	Htmlns Namespace = iota
	Mathmlns
	Svgns
	Xlinkns
	Xmlns
	Xmlnsns
)

var namespaceURIs = [...]string{
	Htmlns:   "http://www.w3.org/1999/xhtml",
	Mathmlns: "http://www.w3.org/1998/Math/MathML",
	Svgns:    "http://www.w3.org/2000/svg",
	Xlinkns:  "http://www.w3.org/1999/xlink",
	Xmlns:    "http://www.w3.org/XML/1998/namespace",
	Xmlnsns:  "http://www.w3.org/2000/xmlns/",
}

// URI returns the namespace URI.
func (n Namespace) URI() string {
	if int(n) < len(namespaceURIs) {
		return namespaceURIs[n]
	}
	return ""
}

// Prefix is the short name html5lib-style dumps and the serializer use for
// the namespace.
func (n Namespace) Prefix() string {
	switch n {
	case Mathmlns:
		return "math"
	case Svgns:
		return "svg"
	case Xlinkns:
		return "xlink"
	case Xmlns:
		return "xml"
	case Xmlnsns:
		return "xmlns"
	}
	return ""
}

// voidElements never have children or end tags.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "basefont": {}, "bgsound": {}, "br": {}, "col": {},
	"embed": {}, "frame": {}, "hr": {}, "img": {}, "input": {}, "keygen": {},
	"link": {}, "meta": {}, "param": {}, "source": {}, "track": {}, "wbr": {},
}

// IsVoidElement reports whether an HTML element with the given name is void.
func IsVoidElement(name string) bool {
	_, ok := voidElements[name]
	return ok
}
