package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render serializes the tree rooted at n as HTML.
func Render(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	nodes, err := toHTML(n, nil)
	if err != nil {
		return err
	}
	for _, hn := range nodes {
		if err := html.Render(w, hn); err != nil {
			return fmt.Errorf("view: render: %w", err)
		}
	}
	return nil
}

// HTML renders n for embedding into a template. Text nodes are escaped by the
// serializer and raw nodes are expected to be sanitized already.
func HTML(n *Node) (template.HTML, error) {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// toHTML converts n into x/net/html nodes. context is the enclosing element,
// used when parsing raw markup fragments.
func toHTML(n *Node, context *html.Node) ([]*html.Node, error) {
	switch n.Kind {
	case KindText:
		return []*html.Node{{Type: html.TextNode, Data: n.Text}}, nil
	case KindRaw:
		if context == nil {
			context = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
		}
		frag, err := html.ParseFragment(strings.NewReader(n.Text), context)
		if err != nil {
			return nil, fmt.Errorf("view: parse raw markup: %w", err)
		}
		return frag, nil
	case KindElement:
		tag := strings.ToLower(strings.TrimSpace(n.Tag))
		if tag == "" {
			return nil, fmt.Errorf("view: element without tag")
		}
		el := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
		if len(n.Classes) > 0 {
			el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: strings.Join(n.Classes, " ")})
		}
		for _, a := range n.Attrs {
			el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
		}
		for _, c := range n.Children {
			kids, err := toHTML(c, el)
			if err != nil {
				return nil, err
			}
			for _, k := range kids {
				el.AppendChild(k)
			}
		}
		return []*html.Node{el}, nil
	default:
		return nil, fmt.Errorf("view: unknown node kind %d", n.Kind)
	}
}
