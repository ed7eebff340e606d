package model

// Collection is an ordered group of heterogeneous child elements.
type Collection struct {
	Children []*Element `json:"value"`
}

// NewCollection creates a SubmodelElementCollection element.
func NewCollection(idShort string, children ...*Element) *Element {
	return &Element{
		IdShort:     idShort,
		Cardinality: CardinalityOne,
		Payload:     &Collection{Children: children},
	}
}

// ModelType implements Payload.
func (p *Collection) ModelType() ModelType { return ModelTypeCollection }

// HasValue implements Payload.
func (p *Collection) HasValue() bool { return len(p.Children) > 0 }

func (p *Collection) clonePayload() Payload {
	return &Collection{Children: cloneChildren(p.Children)}
}
