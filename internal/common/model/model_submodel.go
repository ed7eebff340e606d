package model

import "strings"

// Submodel is a named section of a record holding an ordered element list.
type Submodel struct {
	IdShort    string     `json:"idShort"`
	ID         string     `json:"id,omitempty"`
	SemanticID string     `json:"semanticId,omitempty"`
	Elements   []*Element `json:"submodelElements"`
}

// NewSubmodel creates an empty submodel.
func NewSubmodel(idShort, semanticID string, elements ...*Element) *Submodel {
	return &Submodel{IdShort: idShort, SemanticID: semanticID, Elements: elements}
}

// ResolvedID returns the submodel id. When none is set it is derived from the
// record id and the submodel idShort.
func (s *Submodel) ResolvedID(recordID string) string {
	if strings.TrimSpace(s.ID) != "" {
		return s.ID
	}
	return DeriveSubmodelID(recordID, s.IdShort)
}

// DeriveSubmodelID builds the stable submodel id "<recordID>/submodels/<idShort>".
func DeriveSubmodelID(recordID, idShort string) string {
	return strings.TrimRight(recordID, "/") + "/submodels/" + idShort
}

// Clone returns a deep copy of s.
func (s *Submodel) Clone() *Submodel {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Elements = cloneChildren(s.Elements)
	return &cp
}

func (s *Submodel) withElements(elements []*Element) *Submodel {
	cp := *s
	cp.Elements = elements
	return &cp
}
