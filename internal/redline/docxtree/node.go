// Package docxtree parses WordprocessingML parts into an explicit node
// tree, locates run boundaries structurally and inserts tracked-change
// revision nodes at precise positions. String splicing on raw markup is
// never used: a run split across formatting spans is handled by splitting
// the runs themselves.
package docxtree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

// NodeKind distinguishes tree node types.
type NodeKind int

// Node kinds.
const (
	KindElement NodeKind = iota
	KindText
	KindComment
)

// Attr is one XML attribute with its original prefixed name.
type Attr struct {
	Name  string
	Value string
}

// Node is one node of a parsed XML part. Element names and attributes keep
// their original namespace prefixes ("w:p", "w:id") so serialization
// reproduces the markup without namespace rewriting.
type Node struct {
	Kind     NodeKind
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Elem creates an element node.
func Elem(name string, attrs ...Attr) *Node {
	return &Node{Kind: KindElement, Name: name, Attrs: attrs}
}

// TextNode creates a character-data node.
func TextNode(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// Append adds children and returns the node for chaining.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr adds or replaces an attribute.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// FirstChild returns the first child element with the given name.
func (n *Node) FirstChild(name string) *Node {
	for _, c := range n.Children {
		if c.Kind == KindElement && c.Name == name {
			return c
		}
	}
	return nil
}

// ChildText concatenates the text of all character-data descendants.
func (n *Node) ChildText() string {
	var b strings.Builder
	n.walkText(&b)
	return b.String()
}

func (n *Node) walkText(b *strings.Builder) {
	if n.Kind == KindText {
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		c.walkText(b)
	}
}

// ParseXML builds a node tree from one XML part. The returned node is the
// root element; the XML declaration is not retained (serialization writes
// a standard declaration).
func ParseXML(data []byte) (*Node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var root *Node
	stack := make([]*Node, 0, 16)

	for {
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := Elem(rawName(t.Name))
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: rawName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parsing xml: multiple roots")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parsing xml: unbalanced end tag %s", rawName(t.Name))
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				text := string(t)
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, TextNode(text))
			}

		case xml.Comment:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, &Node{Kind: KindComment, Text: string(t)})
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parsing xml: %w", domain.ErrInvalidInput)
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("parsing xml: unbalanced element %s", stack[len(stack)-1].Name)
	}
	return root, nil
}

// rawName reconstructs the original prefixed name from a raw token name.
func rawName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// xmlHeader is the declaration written ahead of every serialized part.
const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Serialize renders the tree back to part bytes with a standard XML
// declaration.
func Serialize(root *Node) []byte {
	var b bytes.Buffer
	b.WriteString(xmlHeader)
	writeNode(&b, root)
	return b.Bytes()
}

func writeNode(b *bytes.Buffer, n *Node) {
	switch n.Kind {
	case KindText:
		escapeText(b, n.Text)
	case KindComment:
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")
	case KindElement:
		b.WriteByte('<')
		b.WriteString(n.Name)
		for _, a := range n.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			escapeAttr(b, a.Value)
			b.WriteByte('"')
		}
		if len(n.Children) == 0 {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for _, c := range n.Children {
			writeNode(b, c)
		}
		b.WriteString("</")
		b.WriteString(n.Name)
		b.WriteByte('>')
	}
}

func escapeText(b *bytes.Buffer, s string) {
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
}

func escapeAttr(b *bytes.Buffer, s string) {
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\n':
			b.WriteString("&#10;")
		default:
			b.WriteRune(r)
		}
	}
}
