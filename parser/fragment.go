package parser

import (
	"strings"

	"github.com/heathj/htmlcheck/parser/spec"
	"github.com/pkg/errors"
)

// ParseFragment parses input as the contents of a context element, the way
// innerHTML does. context is an HTML tag name, or "svg name" / "math name"
// for a foreign context element. The context element is not part of the
// result.
func ParseFragment(input, context string, opts ...Option) (*spec.Fragment, error) {
	name, ns, err := parseContext(context)
	if err != nil {
		return nil, err
	}

	p := NewParser(strings.NewReader(input), opts...)
	nodes, err := p.StartFragment(name, ns)
	if err != nil {
		return nil, err
	}
	return &spec.Fragment{
		Context:    context,
		Nodes:      nodes,
		QuirksMode: p.cfg.QuirksMode,
		Errors:     p.errors.Errors(),
	}, nil
}

func parseContext(context string) (string, spec.Namespace, error) {
	ns := spec.Htmlns
	name := context
	if prefix, local, ok := strings.Cut(context, " "); ok {
		switch prefix {
		case "svg":
			ns = spec.Svgns
		case "math":
			ns = spec.Mathmlns
		default:
			return "", ns, errors.Wrapf(ErrInvalidContext, "%q", context)
		}
		name = local
	}

	if name == "" || !isASCIIAlpha(rune(name[0])) || strings.ContainsAny(name, "\t\n\f\r /> \x00") {
		return "", ns, errors.Wrapf(ErrInvalidContext, "%q", context)
	}
	if ns == spec.Htmlns {
		name = strings.ToLower(name)
	}
	return name, ns, nil
}

// fragmentTokenizerState picks the state the tokenizer starts in for
// content of the context element.
func fragmentTokenizerState(context *spec.Node, scripting bool) tokenizerState {
	if context.Namespace != spec.Htmlns {
		return dataState
	}
	switch context.Name {
	case "title", "textarea":
		return rcDataState
	case "style", "xmp", "iframe", "noembed", "noframes":
		return rawTextState
	case "script":
		return scriptDataState
	case "noscript":
		if scripting {
			return rawTextState
		}
	case "plaintext":
		return plaintextState
	}
	return dataState
}

// StartFragment parses the whole input as the children of a detached
// context element and returns the resulting top-level nodes.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-html-fragments
func (p *Parser) StartFragment(name string, ns spec.Namespace) ([]*spec.Node, error) {
	tc := p.TreeConstructor
	context := p.arena.Node(p.arena.NewElement(name, ns, nil))
	root := p.arena.Node(p.arena.NewElement("html", spec.Htmlns, nil))
	p.arena.AppendChild(tc.document.Handle(), root.Handle())

	tc.context = context
	tc.quirksMode = p.cfg.QuirksMode
	tc.push(root)
	if context.Is("template") {
		tc.pushTemplateInsertionMode(inTemplate)
	}
	tc.insertionMode = tc.resetInsertionMode()
	if context.Is("form") {
		tc.formElementPointer = context
	}

	if err := p.run(fragmentTokenizerState(context, p.cfg.Scripting)); err != nil {
		return nil, err
	}

	nodes := root.Children()
	for _, n := range nodes {
		p.arena.Detach(n.Handle())
	}
	p.arena.Free(root.Handle())
	p.arena.Free(context.Handle())
	return nodes, nil
}
