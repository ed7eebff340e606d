package model

// ConceptDescription is the semantic metadata shared by all elements that
// refer to the same semantic id. It is derived during encoding.
type ConceptDescription struct {
	ID                 string        `json:"id"`
	IdShort            string        `json:"idShort"`
	PreferredName      LangStringSet `json:"preferredName,omitempty"`
	ShortName          LangStringSet `json:"shortName,omitempty"`
	Unit               string        `json:"unit,omitempty"`
	DataType           string        `json:"dataType,omitempty"`
	Description        string        `json:"description,omitempty"`
	SourceOfDefinition string        `json:"sourceOfDefinition,omitempty"`
}

// ConceptDescriptionFrom derives a concept description from the element's
// semantic id and presentation metadata. The preferred name falls back to the idShort.
func ConceptDescriptionFrom(el *Element) ConceptDescription {
	cd := ConceptDescription{
		ID:                 el.SemanticID,
		IdShort:            el.IdShort,
		PreferredName:      el.PreferredName.Clone(),
		ShortName:          el.ShortName.Clone(),
		Unit:               el.Unit,
		DataType:           el.DataType,
		Description:        el.Description,
		SourceOfDefinition: el.SourceOfDefinition,
	}
	if cd.PreferredName.IsEmpty() {
		cd.PreferredName = NewLangStringSet(DefaultLanguage, el.IdShort)
	}
	return cd
}
