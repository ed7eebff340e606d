package model

import "strings"

// CollectConceptDescriptions walks env in document order and derives one
// concept description per distinct semantic id. The first element carrying a
// semantic id defines its description; ReferenceElements do not contribute.
func CollectConceptDescriptions(env *Environment) []ConceptDescription {
	seen := make(map[string]bool)
	var out []ConceptDescription
	env.Walk(func(_ Path, el *Element) bool {
		id := strings.TrimSpace(el.SemanticID)
		if id == "" || el.ModelType() == ModelTypeReferenceElement || seen[id] {
			return true
		}
		seen[id] = true
		cd := ConceptDescriptionFrom(el)
		cd.ID = id
		out = append(out, cd)
		return true
	})
	return out
}
