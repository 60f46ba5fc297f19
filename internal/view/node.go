// Package view models page fragments as a small tree of typed nodes that is
// serialized to HTML separately from the code that builds it.
package view

import "strings"

// Kind distinguishes node types.
type Kind int

const (
	KindElement Kind = iota
	KindText
	// KindRaw holds markup that has already been sanitized.
	KindRaw
)

// Attr is a single element attribute.
type Attr struct {
	Key, Val string
}

// Node is one entry in a view tree.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Classes  []string
	Text     string
	Children []*Node
}

// Element creates an element node with optional classes.
func Element(tag string, classes ...string) *Node {
	n := &Node{Kind: KindElement, Tag: tag}
	for _, c := range classes {
		n.AddClass(c)
	}
	return n
}

// Div is shorthand for Element("div", classes...).
func Div(classes ...string) *Node { return Element("div", classes...) }

// Span is shorthand for Element("span", classes...).
func Span(classes ...string) *Node { return Element("span", classes...) }

// List creates an unordered list.
func List(classes ...string) *Node { return Element("ul", classes...) }

// Item creates a list item.
func Item(classes ...string) *Node { return Element("li", classes...) }

// Text creates an escaped text node.
func Text(s string) *Node { return &Node{Kind: KindText, Text: s} }

// Raw wraps trusted, already-sanitized markup.
func Raw(markup string) *Node { return &Node{Kind: KindRaw, Text: markup} }

// Link creates an anchor with a text label.
func Link(href, label string) *Node {
	return Element("a").SetAttr("href", href).Append(Text(label))
}

// Heading creates an h1..h6 element around the given children. Levels outside
// the range are clamped.
func Heading(level int, children ...*Node) *Node {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Element("h" + string(rune('0'+level))).Append(children...)
}

// Append adds children, skipping nil nodes.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// AddClass adds a CSS class once.
func (n *Node) AddClass(class string) *Node {
	class = strings.TrimSpace(class)
	if class == "" || n.HasClass(class) {
		return n
	}
	n.Classes = append(n.Classes, class)
	return n
}

// HasClass reports whether the class is set.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// SetAttr sets or replaces an attribute. Use AddClass for "class".
func (n *Node) SetAttr(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// Attr returns an attribute value.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// TextContent concatenates the text of n and its descendants. Raw markup is not included.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Kind == KindText {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}
