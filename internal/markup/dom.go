package markup

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Parse parses markup text into a DOM.
func Parse(text string) (*xmlquery.Node, error) {
	root, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	return root, nil
}

// RootElement returns the first element child of a document node.
func RootElement(doc *xmlquery.Node) *xmlquery.Node {
	if doc == nil {
		return nil
	}
	if doc.Type == xmlquery.ElementNode {
		return doc
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

// ChildElements returns the element children of n, in order.
func ChildElements(n *xmlquery.Node) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first element child of n with the given local name.
func Child(n *xmlquery.Node, local string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			return c
		}
	}
	return nil
}

// Children returns all element children of n with the given local name.
func Children(n *xmlquery.Node, local string) []*xmlquery.Node {
	if n == nil {
		return nil
	}
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			out = append(out, c)
		}
	}
	return out
}

// ChildText returns the trimmed text of the first child named local, or "".
func ChildText(n *xmlquery.Node, local string) string {
	c := Child(n, local)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.InnerText())
}

// HasElementChildren reports whether n has at least one element child.
func HasElementChildren(n *xmlquery.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}

// IsBlank reports whether n has neither element children nor non-blank text.
func IsBlank(n *xmlquery.Node) bool {
	return !HasElementChildren(n) && strings.TrimSpace(n.InnerText()) == ""
}

// NewElement creates a detached element that shares the namespace prefix of like.
func NewElement(like *xmlquery.Node, local string) *xmlquery.Node {
	n := &xmlquery.Node{Type: xmlquery.ElementNode, Data: local}
	if like != nil {
		n.Prefix = like.Prefix
		n.NamespaceURI = like.NamespaceURI
	}
	return n
}

// AppendElement appends a new element named local to parent.
func AppendElement(parent *xmlquery.Node, local string) *xmlquery.Node {
	n := NewElement(parent, local)
	xmlquery.AddChild(parent, n)
	return n
}

// AppendText appends <local>text</local> to parent. Empty text yields <local/>.
func AppendText(parent *xmlquery.Node, local, text string) *xmlquery.Node {
	n := AppendElement(parent, local)
	SetText(n, text)
	return n
}

// SetText replaces all children of n with a single text node. Empty text
// leaves n without children.
func SetText(n *xmlquery.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		xmlquery.RemoveFromTree(c)
		c = next
	}
	if text != "" {
		xmlquery.AddChild(n, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
	}
}

// InsertBefore links the detached node n into ref's parent directly before ref.
func InsertBefore(ref, n *xmlquery.Node) {
	parent := ref.Parent
	n.Parent = parent
	n.NextSibling = ref
	n.PrevSibling = ref.PrevSibling
	if ref.PrevSibling != nil {
		ref.PrevSibling.NextSibling = n
	} else if parent != nil {
		parent.FirstChild = n
	}
	ref.PrevSibling = n
}

// InsertFirst makes the detached node n the first child of parent.
func InsertFirst(parent, n *xmlquery.Node) {
	if parent.FirstChild == nil {
		xmlquery.AddChild(parent, n)
		return
	}
	InsertBefore(parent.FirstChild, n)
}

// InsertAfterAny inserts the detached node n after the last child of parent
// whose local name is in preceding, or first when there is none. It keeps
// sequence-ordered schemas satisfied when a missing slot is synthesized.
func InsertAfterAny(parent, n *xmlquery.Node, preceding ...string) {
	var anchor *xmlquery.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		for _, p := range preceding {
			if c.Data == p {
				anchor = c
			}
		}
	}
	switch {
	case anchor == nil:
		InsertFirst(parent, n)
	case anchor.NextSibling == nil:
		xmlquery.AddChild(parent, n)
	default:
		InsertBefore(anchor.NextSibling, n)
	}
}

// Remove detaches n from its tree.
func Remove(n *xmlquery.Node) {
	xmlquery.RemoveFromTree(n)
}

// NearestIdShort returns the idShort of n or of its closest ancestor that has one.
func NearestIdShort(n *xmlquery.Node) string {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != xmlquery.ElementNode {
			continue
		}
		if id := ChildText(cur, TagIdShort); id != "" {
			return id
		}
	}
	return ""
}
