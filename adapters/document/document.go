// Package document applies rendered slots to the host HTML document.
package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/rediet/portfolio/internal/domain/page"
	"github.com/rediet/portfolio/web"
)

// Template is a parsed host document. It is never mutated; Render works on a
// fresh parse so concurrent renders are safe.
type Template struct {
	source []byte
}

// New parses src once to reject malformed templates early.
func New(src []byte) (*Template, error) {
	if _, err := html.Parse(bytes.NewReader(src)); err != nil {
		return nil, fmt.Errorf("parse host document: %w", err)
	}
	return &Template{source: src}, nil
}

// Load reads the template at path, or the built-in one when path is empty.
func Load(path string) (*Template, error) {
	if path == "" {
		return New(web.IndexHTML)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read host document: %w", err)
	}
	return New(src)
}

// Render writes the document with the page applied.
func (t *Template) Render(w io.Writer, p page.Page) error {
	doc, err := html.Parse(bytes.NewReader(t.source))
	if err != nil {
		return fmt.Errorf("parse host document: %w", err)
	}

	byID := map[string]*html.Node{}
	var root *html.Node
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if n.DataAtom == atom.Html && root == nil {
			root = n
		}
		if id := attr(n, "id"); id != "" {
			if _, seen := byID[id]; !seen {
				byID[id] = n
			}
		}
	})

	if root != nil && p.Theme != "" {
		setAttr(root, "data-theme", p.Theme)
	}

	for id, slot := range p.Slots {
		n, ok := byID[id]
		if !ok {
			continue
		}
		if err := apply(n, slot); err != nil {
			return fmt.Errorf("slot %s: %w", id, err)
		}
	}

	return html.Render(w, doc)
}

// RenderString is Render into a string.
func (t *Template) RenderString(p page.Page) (string, error) {
	var b strings.Builder
	if err := t.Render(&b, p); err != nil {
		return "", err
	}
	return b.String(), nil
}

func apply(n *html.Node, slot page.Slot) error {
	switch slot.Kind {
	case page.Text:
		clearChildren(n)
		n.AppendChild(&html.Node{Type: html.TextNode, Data: slot.Value})
	case page.HTML:
		nodes, err := html.ParseFragment(strings.NewReader(slot.Value), n)
		if err != nil {
			return err
		}
		clearChildren(n)
		for _, c := range nodes {
			n.AppendChild(c)
		}
	case page.Href:
		setAttr(n, "href", slot.Value)
	default:
		return fmt.Errorf("unknown slot kind %d", slot.Kind)
	}
	return nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func clearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}
