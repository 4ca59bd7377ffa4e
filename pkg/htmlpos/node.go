package htmlpos

import "golang.org/x/net/html"

// Kind identifies the type of a Node.
type Kind int

const (
	// KindDocument is the root of a parsed source.
	KindDocument Kind = iota
	// KindElement is a markup element.
	KindElement
	// KindText is a run of character data.
	KindText
	// KindComment is a comment, including bogus comments such as </#if>.
	KindComment
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Node is a positioned node of the source tree. All offsets are byte
// offsets into the parsed source.
type Node struct {
	Kind Kind

	// Tag is the lowercase element name. Empty for other kinds.
	Tag string

	// Attrs holds element attributes with lowercase keys and unescaped values.
	Attrs []html.Attribute

	// Data is the raw source text of text and comment nodes.
	Data string

	// Start and End delimit the node, half-open. For elements this covers
	// the opening tag through the closing tag.
	Start int
	End   int

	// OpenTagEnd is the offset of the '>' closing an element's opening tag.
	OpenTagEnd int

	// SelfClosing is set for void elements and <tag/> syntax.
	SelfClosing bool

	// Implied is set when the element had no matching end tag and was
	// closed by a later token or by the end of input.
	Implied bool

	Parent   *Node
	Children []*Node
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Walk visits n and its descendants in document pre-order. Returning false
// from fn skips the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// WalkElements visits element nodes under n in pre-order.
func WalkElements(n *Node, fn func(*Node)) {
	Walk(n, func(node *Node) bool {
		if node.Kind == KindElement {
			fn(node)
		}
		return true
	})
}

// Collect maps element nodes under n in pre-order, keeping the values for
// which fn reports true.
func Collect[T any](n *Node, fn func(*Node) (T, bool)) []T {
	var out []T
	WalkElements(n, func(node *Node) {
		if v, ok := fn(node); ok {
			out = append(out, v)
		}
	})
	return out
}
