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

// Cardinality is the declared optionality/multiplicity of an element,
// carried in markup as the SMT/Cardinality qualifier.
type Cardinality string

// List of Cardinality
const (
	CardinalityOne        Cardinality = "One"
	CardinalityZeroToOne  Cardinality = "ZeroToOne"
	CardinalityZeroToMany Cardinality = "ZeroToMany"
	CardinalityOneToMany  Cardinality = "OneToMany"
)

// CardinalityQualifierType is the qualifier type under which cardinality is serialized.
const CardinalityQualifierType = "SMT/Cardinality"

// AllowedCardinalityEnumValues is all the allowed values of Cardinality enum
var AllowedCardinalityEnumValues = []Cardinality{
	CardinalityOne,
	CardinalityZeroToOne,
	CardinalityZeroToMany,
	CardinalityOneToMany,
}

// IsValid return true if the value is valid for the enum, false otherwise
func (c Cardinality) IsValid() bool {
	switch c {
	case CardinalityOne, CardinalityZeroToOne, CardinalityZeroToMany, CardinalityOneToMany:
		return true
	}
	return false
}

// OrDefault returns c, or One when c is unset or unknown.
func (c Cardinality) OrDefault() Cardinality {
	if c.IsValid() {
		return c
	}
	return CardinalityOne
}

// IsRequired reports whether an element with this cardinality must carry a value.
func (c Cardinality) IsRequired() bool {
	switch c.OrDefault() {
	case CardinalityOne, CardinalityOneToMany:
		return true
	}
	return false
}

// AllowsDeletion reports whether an element with this cardinality may be removed.
func (c Cardinality) AllowsDeletion() bool {
	return !c.IsRequired()
}

// ParseCardinality matches s case-insensitively against the allowed values.
func ParseCardinality(s string) (Cardinality, error) {
	s = strings.TrimSpace(s)
	for _, c := range AllowedCardinalityEnumValues {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid value '%v' for Cardinality: valid values are %v", s, AllowedCardinalityEnumValues)
}
