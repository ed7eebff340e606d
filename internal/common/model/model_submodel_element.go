/*******************************************************************************
* Copyright (C) 2026 the Eclipse BaSyx Authors and Fraunhofer IESE
*
* Permission is hereby granted, free of charge, to any person obtaining
* a copy of this software and associated documentation files (the
* "Software"), to deal in the Software without restriction, including
* without limitation the rights to use, copy, modify, merge, publish,
* distribute, sublicense, and/or sell copies of the Software, and to
* permit persons to whom the Software is furnished to do so, subject to
* the following conditions:
*
* The above copyright notice and this permission notice shall be
* included in all copies or substantial portions of the Software.
*
* THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
* EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
* MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
* NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE
* LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION
* OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION
* WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*
* SPDX-License-Identifier: MIT
******************************************************************************/

package model

import (
	"fmt"
	"strings"
)

// ModelType is the variant tag of an Element.
type ModelType string

// Supported element variants.
const (
	ModelTypeProperty              ModelType = "Property"
	ModelTypeMultiLanguageProperty ModelType = "MultiLanguageProperty"
	ModelTypeCollection            ModelType = "SubmodelElementCollection"
	ModelTypeList                  ModelType = "SubmodelElementList"
	ModelTypeFile                  ModelType = "File"
	ModelTypeReferenceElement      ModelType = "ReferenceElement"
)

// SupportedModelTypes lists the variants the codec understands.
var SupportedModelTypes = []ModelType{
	ModelTypeProperty,
	ModelTypeMultiLanguageProperty,
	ModelTypeCollection,
	ModelTypeList,
	ModelTypeFile,
	ModelTypeReferenceElement,
}

// KeyType returns the key type used when the element is addressed by a model reference.
func (m ModelType) KeyType() KeyTypes {
	switch m {
	case ModelTypeProperty:
		return KEYTYPES_PROPERTY
	case ModelTypeMultiLanguageProperty:
		return KEYTYPES_MULTI_LANGUAGE_PROPERTY
	case ModelTypeCollection:
		return KEYTYPES_SUBMODEL_ELEMENT_COLLECTION
	case ModelTypeList:
		return KEYTYPES_SUBMODEL_ELEMENT_LIST
	case ModelTypeFile:
		return KEYTYPES_FILE
	case ModelTypeReferenceElement:
		return KEYTYPES_REFERENCE_ELEMENT
	}
	return KEYTYPES_SUBMODEL_ELEMENT
}

// Payload is the variant-specific part of an Element. The concrete types are
// *Property, *MultiLanguageProperty, *Collection, *List, *File and
// *ReferenceElement; no other package can add one.
type Payload interface {
	ModelType() ModelType
	// HasValue reports whether the payload carries a non-empty value.
	HasValue() bool
	clonePayload() Payload
}

// Element is one typed node of the tree. Common fields live here; the value
// lives in Payload, whose concrete type is selected by the model type.
type Element struct {
	IdShort     string      `json:"idShort"`
	Category    string      `json:"category,omitempty"`
	Cardinality Cardinality `json:"cardinality,omitempty"`
	Description string      `json:"description,omitempty"`
	SemanticID  string      `json:"semanticId,omitempty"`

	PreferredName      LangStringSet `json:"preferredName,omitempty"`
	ShortName          LangStringSet `json:"shortName,omitempty"`
	DataType           string        `json:"dataType,omitempty"`
	Unit               string        `json:"unit,omitempty"`
	SourceOfDefinition string        `json:"sourceOfDefinition,omitempty"`

	Payload Payload `json:"-"`
}

// ModelType returns the variant tag, or "" for an element without payload.
func (e *Element) ModelType() ModelType {
	if e == nil || e.Payload == nil {
		return ""
	}
	return e.Payload.ModelType()
}

// HasValue reports whether the element carries a scalar value, at least one
// language entry, at least one child or a non-empty reference.
func (e *Element) HasValue() bool {
	return e != nil && e.Payload != nil && e.Payload.HasValue()
}

// IsRequired reports whether the element's cardinality demands a value.
func (e *Element) IsRequired() bool {
	return e.Cardinality.IsRequired()
}

// IsDeletable reports whether the element may be removed from its parent.
// Only ZeroToOne and ZeroToMany elements can be deleted.
func (e *Element) IsDeletable() bool {
	return e.Cardinality.AllowsDeletion()
}

// HasSemanticMetadata reports whether any of the fields emitted in the
// IEC 61360 block is non-blank.
func (e *Element) HasSemanticMetadata() bool {
	return !e.PreferredName.IsEmpty() || !e.ShortName.IsEmpty() ||
		strings.TrimSpace(e.Unit) != "" || strings.TrimSpace(e.DataType) != "" ||
		strings.TrimSpace(e.Description) != ""
}

// Children returns the child list of a container, nil otherwise.
func (e *Element) Children() []*Element {
	switch p := e.Payload.(type) {
	case *Collection:
		return p.Children
	case *List:
		return p.Children
	}
	return nil
}

// IsContainer reports whether the element holds child elements.
func (e *Element) IsContainer() bool {
	switch e.Payload.(type) {
	case *Collection, *List:
		return true
	}
	return false
}

// withChildren returns a shallow copy of e whose container holds children.
func (e *Element) withChildren(children []*Element) *Element {
	cp := *e
	switch p := e.Payload.(type) {
	case *Collection:
		cp.Payload = &Collection{Children: children}
	case *List:
		cp.Payload = &List{Children: children, OrderRelevant: p.OrderRelevant}
	}
	return &cp
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	cp := *e
	cp.PreferredName = e.PreferredName.Clone()
	cp.ShortName = e.ShortName.Clone()
	if e.Payload != nil {
		cp.Payload = e.Payload.clonePayload()
	}
	return &cp
}

// AsProperty returns the Property payload, if e is a Property.
func (e *Element) AsProperty() (*Property, bool) {
	p, ok := e.Payload.(*Property)
	return p, ok
}

// AsMultiLanguageProperty returns the MultiLanguageProperty payload, if any.
func (e *Element) AsMultiLanguageProperty() (*MultiLanguageProperty, bool) {
	p, ok := e.Payload.(*MultiLanguageProperty)
	return p, ok
}

// AsFile returns the File payload, if any.
func (e *Element) AsFile() (*File, bool) {
	p, ok := e.Payload.(*File)
	return p, ok
}

// AsReferenceElement returns the ReferenceElement payload, if any.
func (e *Element) AsReferenceElement() (*ReferenceElement, bool) {
	p, ok := e.Payload.(*ReferenceElement)
	return p, ok
}

// String implements fmt.Stringer for log output.
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", e.ModelType(), e.IdShort)
}

func cloneChildren(children []*Element) []*Element {
	if children == nil {
		return nil
	}
	out := make([]*Element, len(children))
	for i, c := range children {
		out[i] = c.Clone()
	}
	return out
}
