package docview

import (
	"encoding/xml"
	"strings"
)

// mmlNode is a minimal element tree for flattening MathML markup into a
// single line of terminal text.
type mmlNode struct {
	name     string
	text     strings.Builder
	children []*mmlNode
}

// FlattenMathML reduces MathML markup to plain terminal text. The typesetter
// already substitutes math-alphabet code points for identifiers, so the
// flattened string keeps most of the typeset look; structural elements are
// approximated (superscripts with ^, subscripts with _, fractions with /).
// Returns the empty string when the markup cannot be parsed.
func FlattenMathML(markup string) string {
	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	root := &mmlNode{name: "root"}
	stack := []*mmlNode{root}

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &mmlNode{name: t.Name.Local}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if s := strings.TrimSpace(string(t)); s != "" {
				stack[len(stack)-1].text.WriteString(s)
			}
		}
	}

	return strings.TrimSpace(flatten(root))
}

func flatten(n *mmlNode) string {
	switch n.name {
	case "msup":
		return flattenPair(n, "^")
	case "msub":
		return flattenPair(n, "_")
	case "msubsup":
		if len(n.children) == 3 {
			return flatten(n.children[0]) + "_" + flatten(n.children[1]) + "^" + flatten(n.children[2])
		}
	case "mfrac":
		return flattenPair(n, "/")
	case "msqrt":
		return "√(" + flattenChildren(n) + ")"
	case "mspace":
		return " "
	case "mtext":
		return n.text.String() + " "
	case "annotation":
		// Source annotation carried alongside the presentation markup.
		return ""
	}

	out := n.text.String() + flattenChildren(n)
	return out
}

func flattenChildren(n *mmlNode) string {
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(flatten(c))
	}
	return b.String()
}

// flattenPair joins the first two children with an operator, e.g. base^exp.
func flattenPair(n *mmlNode, op string) string {
	if len(n.children) != 2 {
		return flattenChildren(n)
	}
	base := flatten(n.children[0])
	arg := flatten(n.children[1])
	return base + op + arg
}
