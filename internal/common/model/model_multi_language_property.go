package model

// MultiLanguageProperty carries one text per language.
type MultiLanguageProperty struct {
	Value LangStringSet `json:"value"`
}

// NewMultiLanguageProperty creates a MultiLanguageProperty element.
func NewMultiLanguageProperty(idShort string, value LangStringSet) *Element {
	if value == nil {
		value = LangStringSet{}
	}
	return &Element{
		IdShort:     idShort,
		Cardinality: CardinalityOne,
		Payload:     &MultiLanguageProperty{Value: value},
	}
}

// ModelType implements Payload.
func (p *MultiLanguageProperty) ModelType() ModelType { return ModelTypeMultiLanguageProperty }

// HasValue implements Payload.
func (p *MultiLanguageProperty) HasValue() bool { return !p.Value.IsEmpty() }

func (p *MultiLanguageProperty) clonePayload() Payload {
	return &MultiLanguageProperty{Value: p.Value.Clone()}
}
