package record

import (
	"strings"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
)

// Document is an encoded record together with the element path behind each
// JSON field that holds a submodel or element.
type Document struct {
	text   string
	fields map[string]model.Path
}

// Text returns the JSON text.
func (d *Document) Text() string { return d.text }

// ResolveField maps a JSON field location, as reported by schema checkers,
// to the idShort path of the innermost submodel or element containing it.
// Dotted ("(root).submodels.0.value"), slash ("/submodels/0/value") and
// pointer ("#/submodels/0") notations are accepted.
func (d *Document) ResolveField(field string) (model.Path, bool) {
	segments := splitField(field)
	for n := len(segments); n > 0; n-- {
		if p, ok := d.fields[strings.Join(segments[:n], ".")]; ok {
			return p, true
		}
	}
	return model.Path{}, false
}

func splitField(field string) []string {
	field = strings.TrimPrefix(strings.TrimSpace(field), "#")
	field = strings.TrimPrefix(field, "(root)")
	var out []string
	for _, s := range strings.FieldsFunc(field, func(r rune) bool { return r == '.' || r == '/' }) {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
