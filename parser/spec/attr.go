package spec

// Attribute is a single name/value pair on an element. Name is the local name;
// foreign attributes such as xlink:href keep their namespace separately.
type Attribute struct {
	Namespace Namespace
	Name      string
	Value     string
}

// QualifiedName returns the attribute name as it appears in markup.
func (a Attribute) QualifiedName() string {
	if a.Namespace == Htmlns {
		return a.Name
	}
	if a.Namespace == Xmlnsns && a.Name == "xmlns" {
		return a.Name
	}
	return a.Namespace.Prefix() + ":" + a.Name
}

func cloneAttributes(attrs []Attribute) []Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	return out
}

// AttributesEqual reports whether a and b hold the same attributes in any
// order.
func AttributesEqual(a, b []Attribute) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x == y {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
