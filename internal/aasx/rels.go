package aasx

import (
	"encoding/xml"
	"path"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
)

// Relationship types used by AASX packages.
const (
	RelTypeOrigin    = "http://admin-shell.io/aasx/relationships/aasx-origin"
	RelTypeSpec      = "http://admin-shell.io/aasx/relationships/aas-spec"
	RelTypeSuppl     = "http://admin-shell.io/aasx/relationships/aas-suppl"
	RelTypeThumbnail = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/thumbnail"

	relsNamespace         = "http://schemas.openxmlformats.org/package/2006/relationships"
	contentTypesNamespace = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// Relationship is one entry of an OPC .rels part.
type Relationship struct {
	ID     string
	Type   string
	Target string
}

// parseRels reads the relationships of a .rels part.
func parseRels(text string) ([]Relationship, error) {
	doc, err := markup.Parse(text)
	if err != nil {
		return nil, err
	}
	var out []Relationship
	for _, n := range markup.ChildElements(markup.RootElement(doc)) {
		if n.Data != "Relationship" {
			continue
		}
		out = append(out, Relationship{
			ID:     n.SelectAttr("Id"),
			Type:   n.SelectAttr("Type"),
			Target: n.SelectAttr("Target"),
		})
	}
	return out, nil
}

// relsPartFor returns the name of the .rels part describing part.
func relsPartFor(part string) string {
	dir, file := path.Split(strings.TrimPrefix(part, "/"))
	return dir + "_rels/" + file + ".rels"
}

// resolveTarget resolves a relationship target against the part that owns it.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir("/"+strings.TrimPrefix(source, "/")), target), "/")
}

func renderRels(rels []Relationship) string {
	doc := &xmlquery.Node{Type: xmlquery.DocumentNode}
	root := &xmlquery.Node{
		Type: xmlquery.ElementNode,
		Data: "Relationships",
		Attr: []xmlquery.Attr{{Name: xml.Name{Local: "xmlns"}, Value: relsNamespace}},
	}
	xmlquery.AddChild(doc, root)
	for _, r := range rels {
		n := markup.AppendElement(root, "Relationship")
		n.Attr = []xmlquery.Attr{
			{Name: xml.Name{Local: "Type"}, Value: r.Type},
			{Name: xml.Name{Local: "Target"}, Value: r.Target},
			{Name: xml.Name{Local: "Id"}, Value: r.ID},
		}
	}
	return markup.Serialize(doc)
}

func renderContentTypes(defaults map[string]string, overrides map[string]string) string {
	doc := &xmlquery.Node{Type: xmlquery.DocumentNode}
	root := &xmlquery.Node{
		Type: xmlquery.ElementNode,
		Data: "Types",
		Attr: []xmlquery.Attr{{Name: xml.Name{Local: "xmlns"}, Value: contentTypesNamespace}},
	}
	xmlquery.AddChild(doc, root)
	for _, ext := range sortedKeys(defaults) {
		n := markup.AppendElement(root, "Default")
		n.Attr = []xmlquery.Attr{
			{Name: xml.Name{Local: "Extension"}, Value: ext},
			{Name: xml.Name{Local: "ContentType"}, Value: defaults[ext]},
		}
	}
	for _, part := range sortedKeys(overrides) {
		n := markup.AppendElement(root, "Override")
		n.Attr = []xmlquery.Attr{
			{Name: xml.Name{Local: "PartName"}, Value: part},
			{Name: xml.Name{Local: "ContentType"}, Value: overrides[part]},
		}
	}
	return markup.Serialize(doc)
}
