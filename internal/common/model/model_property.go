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
	"strings"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
)

// Property carries a scalar literal and its declared primitive type.
type Property struct {
	ValueType valuetype.DataTypeDefXsd `json:"valueType,omitempty"`
	Value     string                   `json:"value"`
}

// NewProperty creates a Property element.
func NewProperty(idShort string, valueType valuetype.DataTypeDefXsd, value string) *Element {
	return &Element{
		IdShort:     idShort,
		Cardinality: CardinalityOne,
		Payload:     &Property{ValueType: valueType, Value: value},
	}
}

// ModelType implements Payload.
func (p *Property) ModelType() ModelType { return ModelTypeProperty }

// HasValue implements Payload.
func (p *Property) HasValue() bool { return strings.TrimSpace(p.Value) != "" }

func (p *Property) clonePayload() Payload {
	cp := *p
	return &cp
}

// ResolvedType returns the declared type, or the one derived from the
// element's IEC 61360 classification.
func (p *Property) ResolvedType(classification string) (valuetype.DataTypeDefXsd, bool) {
	return valuetype.Resolve(string(p.ValueType), classification)
}
