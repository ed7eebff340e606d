package markup

import "github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"

// Document is an immutable markup text together with its version digest and
// the line index built from exactly that text.
type Document struct {
	text    string
	version string
	index   *LineIndex
}

// NewDocument wraps text and indexes it.
func NewDocument(text string) *Document {
	ix := BuildLineIndex(text)
	return &Document{text: text, version: ix.Version(), index: ix}
}

// Text returns the markup.
func (d *Document) Text() string { return d.text }

// Version returns the blake3 digest of the markup.
func (d *Document) Version() string { return d.version }

// Index returns the line index of this document.
func (d *Document) Index() *LineIndex { return d.index }

// ResolveLine maps a source line to an element path. When the index cannot
// place the line, the nearest idShort above it is returned as a one-segment
// hint with ok false.
func (d *Document) ResolveLine(line int) (path model.Path, near string, ok bool) {
	if d.index != nil && d.index.Version() == d.version {
		if p, found := d.index.Resolve(line); found {
			return p, "", true
		}
	}
	return model.Path{}, NearestIdShortAbove(d.text, line), false
}
