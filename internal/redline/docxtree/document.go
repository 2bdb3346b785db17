package docxtree

import (
	"strconv"
	"strings"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

// Revision identifies the author and timestamp attributed to one tracked
// change.
type Revision struct {
	Author string
	Date   string
}

// Document wraps the parsed body tree with revision-aware operations.
// Operations mutate the tree in place; edits are applied sequentially and
// each sees the result of the previous one.
type Document struct {
	root   *Node
	body   *Node
	nextID int
}

// newDocument validates the tree shape and seeds the revision id counter
// above any id already present, keeping ids monotonically increasing.
func newDocument(root *Node) (*Document, error) {
	body := root.FirstChild("w:body")
	if body == nil {
		return nil, domain.ErrMissingBodyPart
	}
	return &Document{
		root:   root,
		body:   body,
		nextID: maxRevisionID(root) + 1,
	}, nil
}

// Paragraphs returns every w:p element under the body in document order,
// including paragraphs nested in tables.
func (d *Document) Paragraphs() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			if c.Kind != KindElement {
				continue
			}
			if c.Name == "w:p" {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	walk(d.body)
	return out
}

// ExtractText returns the document's visible text: run text per paragraph,
// paragraphs joined by newlines. Content inside w:del is already deleted
// and excluded; content inside w:ins counts as visible.
func (d *Document) ExtractText() string {
	paragraphs := d.Paragraphs()
	parts := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		parts = append(parts, paragraphText(p))
	}
	return strings.Join(parts, "\n")
}

// paragraphText concatenates visible run text, descending into w:ins but
// not w:del.
func paragraphText(p *Node) string {
	var b strings.Builder
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			if c.Kind != KindElement {
				continue
			}
			switch c.Name {
			case "w:del":
				// deleted content is not visible text
			case "w:r":
				b.WriteString(runText(c))
			case "w:ins", "w:hyperlink", "w:smartTag":
				walk(c)
			}
		}
	}
	walk(p)
	return b.String()
}

// runText concatenates a run's w:t children, mapping tabs and breaks.
func runText(run *Node) string {
	var b strings.Builder
	for _, c := range run.Children {
		if c.Kind != KindElement {
			continue
		}
		switch c.Name {
		case "w:t":
			b.WriteString(c.ChildText())
		case "w:tab":
			b.WriteByte('\t')
		case "w:br":
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// runRef locates one direct run child within a paragraph's text.
type runRef struct {
	node  *Node
	text  string
	start int // offset of this run's text within the paragraph text
}

// directRuns collects the paragraph's direct w:r children with cumulative
// offsets. Runs nested inside revision or hyperlink containers are left
// untouched by editing; they contribute no editable range.
func directRuns(p *Node) []runRef {
	var refs []runRef
	offset := 0
	for _, c := range p.Children {
		if c.Kind != KindElement || c.Name != "w:r" {
			continue
		}
		text := runText(c)
		refs = append(refs, runRef{node: c, text: text, start: offset})
		offset += len(text)
	}
	return refs
}

// ReplaceFirst locates the first literal occurrence of original in the
// document's editable text and rewrites it as a deletion revision followed
// by an insertion revision. Returns false when the text cannot be located
// verbatim, leaving the document unchanged.
func (d *Document) ReplaceFirst(original, replacement string, rev Revision) bool {
	if original == "" {
		return false
	}
	for _, p := range d.Paragraphs() {
		runs := directRuns(p)
		var full strings.Builder
		for _, r := range runs {
			full.WriteString(r.text)
		}
		idx := strings.Index(full.String(), original)
		if idx < 0 {
			continue
		}
		d.spliceRevision(p, runs, idx, idx+len(original), replacement, rev)
		return true
	}
	return false
}

// spliceRevision rewrites the paragraph children covering [start, end) of
// the paragraph text: an unchanged prefix run, a w:del wrapping the matched
// text run by run, a w:ins with the replacement, and an unchanged suffix
// run. Run formatting is preserved by cloning each affected run's
// properties.
func (d *Document) spliceRevision(p *Node, runs []runRef, start, end int, replacement string, rev Revision) {
	affected := make([]runRef, 0, len(runs))
	for _, r := range runs {
		if r.start+len(r.text) <= start || r.start >= end {
			continue
		}
		affected = append(affected, r)
	}
	if len(affected) == 0 {
		return
	}

	first := affected[0]
	last := affected[len(affected)-1]

	// Deleted portion, preserving per-run formatting.
	del := Elem("w:del",
		Attr{Name: "w:id", Value: strconv.Itoa(d.nextRevisionID())},
		Attr{Name: "w:author", Value: rev.Author},
		Attr{Name: "w:date", Value: rev.Date},
	)
	for _, r := range affected {
		from := max(start-r.start, 0)
		to := min(end-r.start, len(r.text))
		if from >= to {
			continue
		}
		del.Append(cloneRunWith(r.node, "w:delText", r.text[from:to]))
	}

	replaced := []*Node{}
	if prefix := first.text[:max(start-first.start, 0)]; prefix != "" {
		replaced = append(replaced, cloneRunWith(first.node, "w:t", prefix))
	}
	replaced = append(replaced, del)
	if replacement != "" {
		ins := Elem("w:ins",
			Attr{Name: "w:id", Value: strconv.Itoa(d.nextRevisionID())},
			Attr{Name: "w:author", Value: rev.Author},
			Attr{Name: "w:date", Value: rev.Date},
		).Append(cloneRunWith(first.node, "w:t", replacement))
		replaced = append(replaced, ins)
	}
	if suffixFrom := end - last.start; suffixFrom < len(last.text) {
		replaced = append(replaced, cloneRunWith(last.node, "w:t", last.text[suffixFrom:]))
	}

	// Rebuild the paragraph: affected runs collapse into the revision
	// sequence at the position of the first one.
	isAffected := func(n *Node) bool {
		for _, r := range affected {
			if r.node == n {
				return true
			}
		}
		return false
	}
	children := make([]*Node, 0, len(p.Children)+len(replaced))
	for _, c := range p.Children {
		if !isAffected(c) {
			children = append(children, c)
			continue
		}
		if c == first.node {
			children = append(children, replaced...)
		}
	}
	p.Children = children
}

// InsertParagraph adds a new paragraph whose entire content is one
// insertion revision. afterIndex anchors it after the given paragraph;
// an out-of-range index appends at the end of the body, ahead of any
// trailing section properties.
func (d *Document) InsertParagraph(text string, afterIndex int, rev Revision) {
	ins := Elem("w:ins",
		Attr{Name: "w:id", Value: strconv.Itoa(d.nextRevisionID())},
		Attr{Name: "w:author", Value: rev.Author},
		Attr{Name: "w:date", Value: rev.Date},
	).Append(newRun("w:t", text))
	paragraph := Elem("w:p").Append(ins)

	paragraphs := d.Paragraphs()
	if afterIndex >= 0 && afterIndex < len(paragraphs) {
		anchor := paragraphs[afterIndex]
		for i, c := range d.body.Children {
			if c == anchor {
				children := make([]*Node, 0, len(d.body.Children)+1)
				children = append(children, d.body.Children[:i+1]...)
				children = append(children, paragraph)
				children = append(children, d.body.Children[i+1:]...)
				d.body.Children = children
				return
			}
		}
		// The anchor sits inside a table; fall through to appending.
	}

	if n := len(d.body.Children); n > 0 && d.body.Children[n-1].Kind == KindElement && d.body.Children[n-1].Name == "w:sectPr" {
		children := make([]*Node, 0, n+1)
		children = append(children, d.body.Children[:n-1]...)
		children = append(children, paragraph, d.body.Children[n-1])
		d.body.Children = children
		return
	}
	d.body.Children = append(d.body.Children, paragraph)
}

// cloneRunWith copies a run's properties into a new run holding a single
// text element of the given name.
func cloneRunWith(run *Node, textElem, text string) *Node {
	clone := Elem("w:r")
	if props := run.FirstChild("w:rPr"); props != nil {
		clone.Append(CloneNode(props))
	}
	clone.Append(newTextElem(textElem, text))
	return clone
}

// newRun creates a bare run with a single text element.
func newRun(textElem, text string) *Node {
	return Elem("w:r").Append(newTextElem(textElem, text))
}

// newTextElem creates w:t / w:delText content with whitespace preserved.
func newTextElem(name, text string) *Node {
	return Elem(name, Attr{Name: "xml:space", Value: "preserve"}).Append(TextNode(text))
}

// CloneNode deep-copies a node.
func CloneNode(n *Node) *Node {
	clone := &Node{
		Kind: n.Kind,
		Name: n.Name,
		Text: n.Text,
	}
	clone.Attrs = append([]Attr(nil), n.Attrs...)
	for _, c := range n.Children {
		clone.Children = append(clone.Children, CloneNode(c))
	}
	return clone
}

// nextRevisionID hands out monotonically increasing revision ids.
func (d *Document) nextRevisionID() int {
	id := d.nextID
	d.nextID++
	return id
}

// maxRevisionID scans the tree for existing w:ins / w:del ids.
func maxRevisionID(n *Node) int {
	best := 0
	if n.Kind == KindElement && (n.Name == "w:ins" || n.Name == "w:del") {
		if v, ok := n.Attr("w:id"); ok {
			if id, err := strconv.Atoi(v); err == nil && id > best {
				best = id
			}
		}
	}
	for _, c := range n.Children {
		if sub := maxRevisionID(c); sub > best {
			best = sub
		}
	}
	return best
}
