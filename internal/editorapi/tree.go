package editorapi

import (
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/validator"
)

// TreeNode is the editor view of one submodel or element.
type TreeNode struct {
	Path        string            `json:"path"`
	IdShort     string            `json:"idShort"`
	ModelType   string            `json:"modelType"`
	Cardinality model.Cardinality `json:"cardinality,omitempty"`
	SemanticID  string            `json:"semanticId,omitempty"`
	Required    bool              `json:"required"`
	Deletable   bool              `json:"deletable"`
	Flagged     bool              `json:"flagged,omitempty"`
	Expanded    bool              `json:"expanded,omitempty"`
	Value       any               `json:"value,omitempty"`
	Children    []TreeNode        `json:"children,omitempty"`
}

// Tree is the editor view of a record.
type Tree struct {
	IdShort   string     `json:"idShort"`
	ID        string     `json:"id"`
	Submodels []TreeNode `json:"submodels"`
}

// BuildTree projects env for display. Nodes named by the local result of
// report are flagged, and the containers leading to them are expanded.
func BuildTree(env *model.Environment, report *validator.Report) Tree {
	var local *validator.LocalResult
	if report != nil {
		local = report.Local
	}
	expanded := map[string]bool{}
	if local != nil {
		for _, p := range local.Expand {
			expanded[p.String()] = true
		}
	}

	tree := Tree{IdShort: env.IdShort, ID: env.ID, Submodels: make([]TreeNode, 0, len(env.Submodels))}
	for _, sm := range env.Submodels {
		root := model.NewPath(sm.IdShort)
		tree.Submodels = append(tree.Submodels, TreeNode{
			Path:      root.String(),
			IdShort:   sm.IdShort,
			ModelType: "Submodel",
			// Submodels can always be removed.
			Deletable:  true,
			SemanticID: sm.SemanticID,
			Expanded:   expanded[root.String()],
			Children:   buildNodes(root, sm.Elements, local, expanded),
		})
	}
	return tree
}

func buildNodes(parent model.Path, elements []*model.Element, local *validator.LocalResult, expanded map[string]bool) []TreeNode {
	out := make([]TreeNode, 0, len(elements))
	for _, el := range elements {
		p := parent.Child(el.IdShort)
		n := TreeNode{
			Path:        p.String(),
			IdShort:     el.IdShort,
			ModelType:   string(el.ModelType()),
			Cardinality: el.Cardinality.OrDefault(),
			SemanticID:  el.SemanticID,
			Required:    el.IsRequired(),
			Deletable:   el.IsDeletable(),
			Flagged:     local != nil && local.IsFlagged(p),
			Expanded:    expanded[p.String()],
		}
		if el.IsContainer() {
			n.Children = buildNodes(p, el.Children(), local, expanded)
		} else {
			n.Value = el.Payload
		}
		out = append(out, n)
	}
	return out
}
