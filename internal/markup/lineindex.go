package markup

import (
	"encoding/hex"
	"encoding/xml"
	"regexp"
	"sort"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
)

// Digest returns the hex blake3 digest that versions a markup text.
func Digest(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

type lineEntry struct {
	start, end int
	path       model.Path
}

// LineIndex maps source lines of one markup text to the idShort path of the
// innermost submodel or element spanning them. An index is only meaningful for
// the text whose digest it carries.
type LineIndex struct {
	version string
	entries []lineEntry
}

// Version returns the digest of the text the index was built from.
func (ix *LineIndex) Version() string { return ix.version }

// Len returns the number of indexed elements.
func (ix *LineIndex) Len() int { return len(ix.entries) }

// Resolve returns the path of the innermost element whose start and end tags
// enclose line. Lines outside every submodel do not resolve.
func (ix *LineIndex) Resolve(line int) (model.Path, bool) {
	i := sort.Search(len(ix.entries), func(i int) bool { return ix.entries[i].start > line })
	for i--; i >= 0; i-- {
		e := ix.entries[i]
		if e.end == 0 || e.end >= line {
			return e.path, true
		}
	}
	return model.Path{}, false
}

// Line returns the start line of the element at path.
func (ix *LineIndex) Line(path model.Path) (int, bool) {
	for _, e := range ix.entries {
		if e.path.Equal(path) {
			return e.start, true
		}
	}
	return 0, false
}

type frame struct {
	local   string
	line    int
	idShort string
	entry   int
}

// BuildLineIndex scans text once and records the line span of every
// idShort-bearing element below a submodel. A malformed tail stops the scan;
// the entries seen so far are kept.
func BuildLineIndex(text string) *LineIndex {
	ix := &LineIndex{version: Digest(text)}
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = false

	var stack []*frame
	var idText strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		line, _ := dec.InputPos()
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, &frame{local: t.Name.Local, line: line, entry: -1})
			if t.Name.Local == TagIdShort {
				idText.Reset()
			}
		case xml.CharData:
			if len(stack) > 0 && stack[len(stack)-1].local == TagIdShort {
				idText.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.entry >= 0 {
				ix.entries[top.entry].end = line
			}
			if top.local == TagIdShort && len(stack) > 0 {
				owner := stack[len(stack)-1]
				if IsReferable(owner.local) && owner.idShort == "" {
					owner.idShort = strings.TrimSpace(idText.String())
					if p, ok := pathOf(stack); ok {
						owner.entry = len(ix.entries)
						ix.entries = append(ix.entries, lineEntry{start: owner.line, path: p})
					}
				}
			}
		}
	}
	sort.SliceStable(ix.entries, func(i, j int) bool { return ix.entries[i].start < ix.entries[j].start })
	return ix
}

// pathOf builds the path of the innermost referable frame. The outermost
// referable frame must be a submodel.
func pathOf(stack []*frame) (model.Path, bool) {
	var p model.Path
	seen := false
	for _, f := range stack {
		if !IsReferable(f.local) {
			continue
		}
		if !seen {
			if f.local != TagSubmodel {
				return p, false
			}
			p.Submodel = f.idShort
			seen = true
			continue
		}
		p.Elements = append(p.Elements, f.idShort)
	}
	return p, seen
}

var idShortLine = regexp.MustCompile(`<(?:[A-Za-z_][\w.-]*:)?idShort>([^<]*)</`)

// NearestIdShortAbove scans text backwards from line for the closest idShort
// tag. It is a fallback for error lines the index cannot resolve and is only
// approximate.
func NearestIdShortAbove(text string, line int) string {
	lines := strings.Split(text, "\n")
	if line > len(lines) {
		line = len(lines)
	}
	for i := line - 1; i >= 0; i-- {
		if m := idShortLine.FindStringSubmatch(lines[i]); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
