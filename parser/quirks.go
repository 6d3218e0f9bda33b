package parser

import (
	"strings"

	"github.com/heathj/htmlcheck/parser/spec"
)

// Public identifier prefixes that put a document in quirks mode.
var quirkyPublicIdentifierPrefixes = []string{
	"+//silmaril//dtd html pro v0r11 19970101//",
	"-//as//dtd html 3.0 aswedit + extensions//",
	"-//advasoft ltd//dtd html 3.0 aswedit + extensions//",
	"-//ietf//dtd html 2.0 level 1//",
	"-//ietf//dtd html 2.0 level 2//",
	"-//ietf//dtd html 2.0 strict level 1//",
	"-//ietf//dtd html 2.0 strict level 2//",
	"-//ietf//dtd html 2.0 strict//",
	"-//ietf//dtd html 2.0//",
	"-//ietf//dtd html 2.1e//",
	"-//ietf//dtd html 3.0//",
	"-//ietf//dtd html 3.2 final//",
	"-//ietf//dtd html 3.2//",
	"-//ietf//dtd html 3//",
	"-//ietf//dtd html level 0//",
	"-//ietf//dtd html level 1//",
	"-//ietf//dtd html level 2//",
	"-//ietf//dtd html level 3//",
	"-//ietf//dtd html strict level 0//",
	"-//ietf//dtd html strict level 1//",
	"-//ietf//dtd html strict level 2//",
	"-//ietf//dtd html strict level 3//",
	"-//ietf//dtd html strict//",
	"-//ietf//dtd html//",
	"-//metrius//dtd metrius presentational//",
	"-//microsoft//dtd internet explorer 2.0 html strict//",
	"-//microsoft//dtd internet explorer 2.0 html//",
	"-//microsoft//dtd internet explorer 2.0 tables//",
	"-//microsoft//dtd internet explorer 3.0 html strict//",
	"-//microsoft//dtd internet explorer 3.0 html//",
	"-//microsoft//dtd internet explorer 3.0 tables//",
	"-//netscape comm. corp.//dtd html//",
	"-//netscape comm. corp.//dtd strict html//",
	"-//o'reilly and associates//dtd html 2.0//",
	"-//o'reilly and associates//dtd html extended 1.0//",
	"-//o'reilly and associates//dtd html extended relaxed 1.0//",
	"-//sq//dtd html 2.0 hotmetal + extensions//",
	"-//softquad software//dtd hotmetal pro 6.0::19990601::extensions to html 4.0//",
	"-//softquad//dtd hotmetal pro 4.0::19971010::extensions to html 4.0//",
	"-//spyglass//dtd html 2.0 extended//",
	"-//sun microsystems corp.//dtd hotjava html//",
	"-//sun microsystems corp.//dtd hotjava strict html//",
	"-//w3c//dtd html 3 1995-03-24//",
	"-//w3c//dtd html 3.2 draft//",
	"-//w3c//dtd html 3.2 final//",
	"-//w3c//dtd html 3.2//",
	"-//w3c//dtd html 3.2s draft//",
	"-//w3c//dtd html 4.0 frameset//",
	"-//w3c//dtd html 4.0 transitional//",
	"-//w3c//dtd html experimental 19960712//",
	"-//w3c//dtd html experimental 970421//",
	"-//w3c//dtd w3 html//",
	"-//w3o//dtd w3 html 3.0//",
	"-//webtechs//dtd mozilla html 2.0//",
	"-//webtechs//dtd mozilla html//",
}

const (
	html401Frameset     = "-//w3c//dtd html 4.01 frameset//"
	html401Transitional = "-//w3c//dtd html 4.01 transitional//"
	xhtml1Frameset      = "-//w3c//dtd xhtml 1.0 frameset//"
	xhtml1Transitional  = "-//w3c//dtd xhtml 1.0 transitional//"
)

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// doctypeQuirksMode works out the document mode a DOCTYPE token selects.
// Identifiers compare ASCII case-insensitively.
func doctypeQuirksMode(t *Token) spec.QuirksMode {
	publicID := strings.ToLower(t.PublicIdentifier)
	systemID := strings.ToLower(t.SystemIdentifier)
	publicMissing := t.PublicIDMissing
	systemMissing := t.SystemIDMissing

	switch {
	case t.ForceQuirks, t.TagName != "html":
		return spec.Quirks
	case !publicMissing && (publicID == "-//w3o//dtd w3 html strict 3.0//en//" ||
		publicID == "-/w3c/dtd html 4.0 transitional/en" ||
		publicID == "html"):
		return spec.Quirks
	case !systemMissing && systemID == "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd":
		return spec.Quirks
	case !publicMissing && hasAnyPrefix(publicID, quirkyPublicIdentifierPrefixes...):
		return spec.Quirks
	case !publicMissing && systemMissing && hasAnyPrefix(publicID, html401Frameset, html401Transitional):
		return spec.Quirks
	case !publicMissing && hasAnyPrefix(publicID, xhtml1Frameset, xhtml1Transitional):
		return spec.LimitedQuirks
	case !publicMissing && !systemMissing && hasAnyPrefix(publicID, html401Frameset, html401Transitional):
		return spec.LimitedQuirks
	}
	return spec.NoQuirks
}

// isConformingDoctype reports whether t is one of the doctypes authors are
// allowed to write.
func isConformingDoctype(t *Token) bool {
	return t.TagName == "html" &&
		t.PublicIDMissing &&
		(t.SystemIDMissing || t.SystemIdentifier == "about:legacy-compat")
}
