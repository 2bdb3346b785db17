package docxtree

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

// Well-known part paths inside the package.
const (
	documentPart     = "word/document.xml"
	settingsPart     = "word/settings.xml"
	contentTypesPart = "[Content_Types].xml"
	documentRelsPart = "word/_rels/document.xml.rels"
	vbaProjectPart   = "word/vbaProject.bin"
)

// macroContentType marks macro-enabled documents, which are refused.
const macroContentType = "application/vnd.ms-word.document.macroEnabled"

// Package is an opened word-processing package: the parsed body tree plus
// every other part kept as raw bytes so repacking is byte-faithful.
type Package struct {
	parts []part
	doc   *Document
}

// part is one zip entry, in original archive order.
type part struct {
	name string
	data []byte
}

// Open reads a DOCX package from bytes. Macro-enabled packages are
// rejected outright, as is a package without its body part.
func Open(data []byte) (*Package, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotZipPackage, err)
	}

	pkg := &Package{}
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", file.Name, err)
		}
		pkg.parts = append(pkg.parts, part{name: file.Name, data: content})
	}

	if err := pkg.rejectMacros(); err != nil {
		return nil, err
	}

	body, ok := pkg.partData(documentPart)
	if !ok {
		return nil, domain.ErrMissingBodyPart
	}
	root, err := ParseXML(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", documentPart, err)
	}
	pkg.doc, err = newDocument(root)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// rejectMacros refuses packages carrying VBA projects or declaring the
// macro-enabled content type.
func (p *Package) rejectMacros() error {
	if _, ok := p.partData(vbaProjectPart); ok {
		return domain.ErrMacroContent
	}
	if types, ok := p.partData(contentTypesPart); ok {
		if strings.Contains(string(types), macroContentType) {
			return domain.ErrMacroContent
		}
	}
	return nil
}

// Document returns the parsed body tree.
func (p *Package) Document() *Document {
	return p.doc
}

func (p *Package) partData(name string) ([]byte, bool) {
	for _, pt := range p.parts {
		if pt.name == name {
			return pt.data, true
		}
	}
	return nil, false
}

func (p *Package) setPart(name string, data []byte) {
	for i, pt := range p.parts {
		if pt.name == name {
			p.parts[i].data = data
			return
		}
	}
	p.parts = append(p.parts, part{name: name, data: data})
}

// EnableTrackedChanges toggles the settings part so viewers display
// revision marks as tracked changes instead of applying them silently.
// A package without a settings part gets a minimal one, registered in the
// content types and document relationships.
func (p *Package) EnableTrackedChanges() error {
	data, ok := p.partData(settingsPart)
	if !ok {
		p.createSettingsPart()
		return nil
	}

	root, err := ParseXML(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", settingsPart, err)
	}
	if root.FirstChild("w:trackChanges") == nil {
		// Prepend so the element lands inside w:settings regardless of
		// schema-ordered siblings at the tail.
		root.Children = append([]*Node{Elem("w:trackChanges")}, root.Children...)
	}
	p.setPart(settingsPart, Serialize(root))
	return nil
}

// createSettingsPart writes a minimal settings part and registers it.
func (p *Package) createSettingsPart() {
	settings := Elem("w:settings",
		Attr{Name: "xmlns:w", Value: "http://schemas.openxmlformats.org/wordprocessingml/2006/main"},
	).Append(Elem("w:trackChanges"))
	p.setPart(settingsPart, Serialize(settings))

	if types, ok := p.partData(contentTypesPart); ok {
		if root, err := ParseXML(types); err == nil && root.FirstChildWithAttr("Override", "PartName", "/word/settings.xml") == nil {
			root.Append(Elem("Override",
				Attr{Name: "PartName", Value: "/word/settings.xml"},
				Attr{Name: "ContentType", Value: "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"},
			))
			p.setPart(contentTypesPart, Serialize(root))
		}
	}
	if rels, ok := p.partData(documentRelsPart); ok {
		if root, err := ParseXML(rels); err == nil && root.FirstChildWithAttr("Relationship", "Target", "settings.xml") == nil {
			root.Append(Elem("Relationship",
				Attr{Name: "Id", Value: "rIdSettingsNda"},
				Attr{Name: "Type", Value: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"},
				Attr{Name: "Target", Value: "settings.xml"},
			))
			p.setPart(documentRelsPart, Serialize(root))
		}
	}
}

// FirstChildWithAttr returns the first child element with the given name
// and attribute value.
func (n *Node) FirstChildWithAttr(name, attr, value string) *Node {
	for _, c := range n.Children {
		if c.Kind != KindElement || c.Name != name {
			continue
		}
		if v, ok := c.Attr(attr); ok && v == value {
			return c
		}
	}
	return nil
}

// Bytes serializes the body tree back into its part and repacks the zip,
// preserving every other part and the original archive order.
func (p *Package) Bytes() ([]byte, error) {
	p.setPart(documentPart, Serialize(p.doc.root))

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, pt := range p.parts {
		w, err := writer.Create(pt.name)
		if err != nil {
			return nil, fmt.Errorf("writing part %s: %w", pt.name, err)
		}
		if _, err := w.Write(pt.data); err != nil {
			return nil, fmt.Errorf("writing part %s: %w", pt.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing package: %w", err)
	}
	return buf.Bytes(), nil
}
