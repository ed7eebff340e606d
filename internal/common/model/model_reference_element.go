package model

// ReferenceElement carries a reference instead of a scalar value.
type ReferenceElement struct {
	Value Reference `json:"value"`
}

// NewReferenceElement creates a ReferenceElement element.
func NewReferenceElement(idShort string, value Reference) *Element {
	return &Element{
		IdShort:     idShort,
		Cardinality: CardinalityOne,
		Payload:     &ReferenceElement{Value: value},
	}
}

// ModelType implements Payload.
func (p *ReferenceElement) ModelType() ModelType { return ModelTypeReferenceElement }

// HasValue implements Payload.
func (p *ReferenceElement) HasValue() bool { return !p.Value.IsEmpty() }

func (p *ReferenceElement) clonePayload() Payload {
	return &ReferenceElement{Value: p.Value.Clone()}
}
