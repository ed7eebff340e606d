package model

import "github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"

// List is an ordered sequence of child elements that are meant to share one
// type. The shared type is not enforced.
type List struct {
	Children      []*Element `json:"value"`
	OrderRelevant bool       `json:"orderRelevant"`
}

// NewList creates a SubmodelElementList element.
func NewList(idShort string, children ...*Element) *Element {
	return &Element{
		IdShort:     idShort,
		Cardinality: CardinalityOne,
		Payload:     &List{Children: children, OrderRelevant: true},
	}
}

// ModelType implements Payload.
func (p *List) ModelType() ModelType { return ModelTypeList }

// HasValue implements Payload.
func (p *List) HasValue() bool { return len(p.Children) > 0 }

func (p *List) clonePayload() Payload {
	return &List{Children: cloneChildren(p.Children), OrderRelevant: p.OrderRelevant}
}

// ElementType returns the model type of the first child, or "SubmodelElement" for an empty list.
func (p *List) ElementType() string {
	if len(p.Children) == 0 || p.Children[0].Payload == nil {
		return string(KEYTYPES_SUBMODEL_ELEMENT)
	}
	return string(p.Children[0].ModelType())
}

// ValueTypeListElement returns the declared primitive type shared by a list
// of Properties, or "" when the list is not a homogeneous property list.
func (p *List) ValueTypeListElement() valuetype.DataTypeDefXsd {
	var shared valuetype.DataTypeDefXsd
	for i, c := range p.Children {
		prop, ok := c.AsProperty()
		if !ok || prop.ValueType == "" {
			return ""
		}
		if i == 0 {
			shared = prop.ValueType
		} else if prop.ValueType != shared {
			return ""
		}
	}
	return shared
}
