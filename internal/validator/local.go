package validator

import (
	"fmt"
	"strings"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
)

// LocalResult is the outcome of the structural and type checks on the tree.
type LocalResult struct {
	Issues []Issue `json:"issues"`
	// Flagged lists every node with at least one issue, in document order.
	Flagged []model.Path `json:"flagged"`
	// Expand lists the submodels and containers that must be opened to
	// reveal the flagged nodes, outermost first.
	Expand []model.Path `json:"expand"`
}

// OK reports whether no local issue was found.
func (r *LocalResult) OK() bool { return len(r.Issues) == 0 }

// IsFlagged reports whether the node at p carries an issue.
func (r *LocalResult) IsFlagged(p model.Path) bool {
	for _, f := range r.Flagged {
		if f.Equal(p) {
			return true
		}
	}
	return false
}

// CheckLocal walks env and reports missing types, literals that do not match
// their type and required nodes without a value.
func CheckLocal(env *model.Environment) *LocalResult {
	res := &LocalResult{Issues: []Issue{}, Flagged: []model.Path{}, Expand: []model.Path{}}
	if env == nil {
		return res
	}
	seen := map[string]bool{}
	expanded := map[string]bool{}

	report := func(p model.Path, kind Kind, msg string) {
		res.Issues = append(res.Issues, Issue{
			Bucket:  BucketRequired,
			Kind:    kind,
			Message: msg,
			Path:    p,
			Where:   p.Human(),
		})
		if seen[p.String()] {
			return
		}
		seen[p.String()] = true
		res.Flagged = append(res.Flagged, p)
		for _, a := range append([]model.Path{{Submodel: p.Submodel}}, p.Ancestors()...) {
			if !expanded[a.String()] {
				expanded[a.String()] = true
				res.Expand = append(res.Expand, a)
			}
		}
	}

	env.Walk(func(p model.Path, el *model.Element) bool {
		if prop, ok := el.AsProperty(); ok {
			t, resolved := prop.ResolvedType(el.DataType)
			value := strings.TrimSpace(prop.Value)
			switch {
			case !resolved:
				report(p, KindMissingType, fmt.Sprintf("property %q has no value type and no data type to derive one from", el.IdShort))
			case value != "":
				if err := valuetype.ValidateLiteral(value, t); err != nil {
					report(p, KindTypeMismatch, err.Error())
				}
			}
		}
		if el.IsRequired() && !el.HasValue() {
			report(p, KindRequiredEmpty, fmt.Sprintf("%s %q is required (%s) but has no value", el.ModelType(), el.IdShort, el.Cardinality.OrDefault()))
		}
		return true
	})
	return res
}
