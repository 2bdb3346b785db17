package docxtree

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaBrisket/ndareview/internal/core/domain"
)

const minimalContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

// buildDocx assembles an in-memory zip package from part contents.
func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range parts {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// simpleDoc wraps paragraph markup in a document part.
func simpleDoc(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`
}

func para(runs string) string {
	return "<w:p>" + runs + "</w:p>"
}

func run(text string) string {
	return `<w:r><w:t>` + text + `</w:t></w:r>`
}

func openFixture(t *testing.T, body string) *Package {
	t.Helper()
	data := buildDocx(t, map[string]string{
		"[Content_Types].xml": minimalContentTypes,
		"word/document.xml":   simpleDoc(body),
	})
	pkg, err := Open(data)
	require.NoError(t, err)
	return pkg
}

// TestParseXML_PreservesPrefixes tests that element and attribute prefixes
// survive a parse and serialize round trip
func TestParseXML_PreservesPrefixes(t *testing.T) {
	src := `<w:document xmlns:w="http://example/w"><w:body><w:p><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve"> hi </w:t></w:r></w:p></w:body></w:document>`

	root, err := ParseXML([]byte(src))
	require.NoError(t, err)

	out := string(Serialize(root))
	assert.Contains(t, out, "<w:document")
	assert.Contains(t, out, "<w:rPr><w:b/></w:rPr>")
	assert.Contains(t, out, `<w:t xml:space="preserve"> hi </w:t>`)
}

// TestParseXML_Unbalanced tests malformed markup rejection
func TestParseXML_Unbalanced(t *testing.T) {
	_, err := ParseXML([]byte("<w:p><w:r></w:p>"))
	assert.Error(t, err)
}

// TestOpen_NotZip tests non-package input rejection
func TestOpen_NotZip(t *testing.T) {
	_, err := Open([]byte("plain text, not a package"))
	assert.ErrorIs(t, err, domain.ErrNotZipPackage)
}

// TestOpen_MacroRejected tests that macro-enabled packages are refused
func TestOpen_MacroRejected(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"[Content_Types].xml": minimalContentTypes,
		"word/document.xml":   simpleDoc(para(run("x"))),
		"word/vbaProject.bin": "macros",
	})
	_, err := Open(data)
	assert.ErrorIs(t, err, domain.ErrMacroContent)

	data = buildDocx(t, map[string]string{
		"[Content_Types].xml": strings.Replace(minimalContentTypes,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml",
			"application/vnd.ms-word.document.macroEnabled.main+xml", 1),
		"word/document.xml": simpleDoc(para(run("x"))),
	})
	_, err = Open(data)
	assert.ErrorIs(t, err, domain.ErrMacroContent)
}

// TestOpen_MissingBody tests that a package without its body part is refused
func TestOpen_MissingBody(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"[Content_Types].xml": minimalContentTypes,
	})
	_, err := Open(data)
	assert.ErrorIs(t, err, domain.ErrMissingBodyPart)
}

// TestExtractText_JoinsParagraphs tests visible text extraction
func TestExtractText_JoinsParagraphs(t *testing.T) {
	pkg := openFixture(t, para(run("First."))+para(run("Second ")+run("half.")))

	assert.Equal(t, "First.\nSecond half.", pkg.Document().ExtractText())
}

// TestReplaceFirst_SingleRun tests the del+ins structure within one run
func TestReplaceFirst_SingleRun(t *testing.T) {
	pkg := openFixture(t, para(run("The term is thirty-six months long.")))
	doc := pkg.Document()

	ok := doc.ReplaceFirst("thirty-six months", "twenty-four months", Revision{Author: "Reviewer", Date: "2026-08-27T00:00:00Z"})
	require.True(t, ok)

	out, err := pkg.Bytes()
	require.NoError(t, err)
	markup := documentMarkup(t, out)

	assert.Contains(t, markup, `<w:delText xml:space="preserve">thirty-six months</w:delText>`)
	assert.Contains(t, markup, `<w:t xml:space="preserve">twenty-four months</w:t>`)
	assert.Contains(t, markup, `w:author="Reviewer"`)
	// Surrounding text survives as plain runs.
	assert.Contains(t, markup, "The term is ")
	assert.Contains(t, markup, " long.")
	// Deletion precedes insertion.
	assert.Less(t, strings.Index(markup, "<w:del "), strings.Index(markup, "<w:ins "))
}

// TestReplaceFirst_AcrossRuns tests matching that spans formatting runs
func TestReplaceFirst_AcrossRuns(t *testing.T) {
	bold := `<w:r><w:rPr><w:b/></w:rPr><w:t>thirty-six </w:t></w:r>`
	pkg := openFixture(t, para(run("a term of ")+bold+run("months here")))
	doc := pkg.Document()

	ok := doc.ReplaceFirst("thirty-six months", "two years", Revision{Author: "R", Date: "2026-08-27T00:00:00Z"})
	require.True(t, ok)

	out, err := pkg.Bytes()
	require.NoError(t, err)
	markup := documentMarkup(t, out)

	// The bold run's slice keeps its formatting inside the deletion.
	assert.Contains(t, markup, `<w:rPr><w:b/></w:rPr><w:delText xml:space="preserve">thirty-six </w:delText>`)
	assert.Contains(t, markup, `<w:delText xml:space="preserve">months</w:delText>`)
	assert.Contains(t, markup, "a term of ")
	assert.Contains(t, markup, " here")
	assert.Equal(t, "a term of two years here", doc.ExtractText())
}

// TestReplaceFirst_NotFound tests that an absent literal leaves the tree alone
func TestReplaceFirst_NotFound(t *testing.T) {
	pkg := openFixture(t, para(run("nothing to see")))
	doc := pkg.Document()

	before := doc.ExtractText()
	ok := doc.ReplaceFirst("absent text", "x", Revision{})
	assert.False(t, ok)
	assert.Equal(t, before, doc.ExtractText())
}

// TestReplaceFirst_Delete tests replacement with empty text
func TestReplaceFirst_Delete(t *testing.T) {
	pkg := openFixture(t, para(run("keep drop keep")))
	doc := pkg.Document()

	require.True(t, doc.ReplaceFirst(" drop", "", Revision{Author: "R"}))
	assert.Equal(t, "keep keep", doc.ExtractText())
}

// TestInsertParagraph_BeforeSectPr tests appended paragraphs land ahead of
// trailing section properties
func TestInsertParagraph_BeforeSectPr(t *testing.T) {
	pkg := openFixture(t, para(run("body"))+"<w:sectPr><w:pgSz/></w:sectPr>")
	doc := pkg.Document()

	doc.InsertParagraph("Added clause.", -1, Revision{Author: "R", Date: "2026-08-27T00:00:00Z"})

	out, err := pkg.Bytes()
	require.NoError(t, err)
	markup := documentMarkup(t, out)

	assert.Less(t, strings.Index(markup, "Added clause."), strings.Index(markup, "<w:sectPr>"))
	// The new paragraph's text sits entirely inside an insertion revision.
	insStart := strings.Index(markup, "<w:ins ")
	insEnd := strings.Index(markup, "</w:ins>")
	textAt := strings.Index(markup, "Added clause.")
	assert.True(t, insStart < textAt && textAt < insEnd)
}

// TestInsertParagraph_Anchored tests the paragraph index hint
func TestInsertParagraph_Anchored(t *testing.T) {
	pkg := openFixture(t, para(run("one"))+para(run("two")))
	doc := pkg.Document()

	doc.InsertParagraph("between", 0, Revision{})

	assert.Equal(t, "one\nbetween\ntwo", doc.ExtractText())
}

// TestRevisionIDs_Monotonic tests ids climb past any existing revision
func TestRevisionIDs_Monotonic(t *testing.T) {
	existing := `<w:p><w:ins w:id="7" w:author="A" w:date="2026-01-01T00:00:00Z"><w:r><w:t>old</w:t></w:r></w:ins></w:p>`
	pkg := openFixture(t, existing+para(run("replace me")))
	doc := pkg.Document()

	require.True(t, doc.ReplaceFirst("replace me", "done", Revision{Author: "B"}))

	out, err := pkg.Bytes()
	require.NoError(t, err)
	markup := documentMarkup(t, out)

	assert.Contains(t, markup, `w:id="8"`)
	assert.Contains(t, markup, `w:id="9"`)
}

// TestEnableTrackedChanges_ExistingSettings tests toggling an existing part
func TestEnableTrackedChanges_ExistingSettings(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"[Content_Types].xml": minimalContentTypes,
		"word/document.xml":   simpleDoc(para(run("x"))),
		"word/settings.xml":   `<w:settings xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:zoom/></w:settings>`,
	})
	pkg, err := Open(data)
	require.NoError(t, err)

	require.NoError(t, pkg.EnableTrackedChanges())
	out, err := pkg.Bytes()
	require.NoError(t, err)

	assert.Contains(t, partMarkup(t, out, "word/settings.xml"), "<w:trackChanges/>")
}

// TestEnableTrackedChanges_CreatesSettings tests synthesizing a missing part
func TestEnableTrackedChanges_CreatesSettings(t *testing.T) {
	pkg := openFixture(t, para(run("x")))

	require.NoError(t, pkg.EnableTrackedChanges())
	out, err := pkg.Bytes()
	require.NoError(t, err)

	settings := partMarkup(t, out, "word/settings.xml")
	assert.Contains(t, settings, "<w:trackChanges/>")
	assert.Contains(t, partMarkup(t, out, "[Content_Types].xml"), "/word/settings.xml")
}

// TestBytes_PreservesOtherParts tests that untouched parts round-trip
func TestBytes_PreservesOtherParts(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"[Content_Types].xml":   minimalContentTypes,
		"word/document.xml":     simpleDoc(para(run("x"))),
		"word/styles.xml":       `<w:styles xmlns:w="http://example/w"><w:style/></w:styles>`,
		"word/media/image1.png": "\x89PNG fake bytes",
	})
	pkg, err := Open(data)
	require.NoError(t, err)

	out, err := pkg.Bytes()
	require.NoError(t, err)

	assert.Equal(t, `<w:styles xmlns:w="http://example/w"><w:style/></w:styles>`, partMarkup(t, out, "word/styles.xml"))
	assert.Equal(t, "\x89PNG fake bytes", partMarkup(t, out, "word/media/image1.png"))
}

// documentMarkup re-reads the document part from repacked bytes.
func documentMarkup(t *testing.T, data []byte) string {
	return partMarkup(t, data, "word/document.xml")
}

func partMarkup(t *testing.T, data []byte, name string) string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		require.NoError(t, err)
		return buf.String()
	}
	t.Fatalf("part %s not found", name)
	return ""
}
