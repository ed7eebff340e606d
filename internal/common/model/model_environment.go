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

// Package model holds the in-memory element tree of an AAS record: the
// environment header, its submodels and the typed elements below them.
// Tree mutations are copy-on-write so encoders always see a stable snapshot.
package model

import (
	"strings"

	"github.com/google/uuid"
)

// Environment is the complete record: shell header plus its submodels.
// Concept descriptions are not stored; encoders derive them on every pass.
type Environment struct {
	IdShort          string            `json:"idShort"`
	ID               string            `json:"id"`
	AssetKind        AssetKind         `json:"assetKind"`
	GlobalAssetID    string            `json:"globalAssetId,omitempty"`
	AssetType        string            `json:"assetType,omitempty"`
	SpecificAssetIDs []SpecificAssetID `json:"specificAssetIds,omitempty"`
	Submodels        []*Submodel       `json:"submodels"`
}

// NewEnvironment creates an empty record. A blank id is replaced by a fresh urn:uuid.
func NewEnvironment(idShort, id string) *Environment {
	if strings.TrimSpace(id) == "" {
		id = "urn:uuid:" + uuid.NewString()
	}
	return &Environment{
		IdShort:   idShort,
		ID:        id,
		AssetKind: ASSETKIND_INSTANCE,
	}
}

// Submodel returns the submodel with the given idShort.
func (e *Environment) Submodel(idShort string) (*Submodel, int, bool) {
	for i, sm := range e.Submodels {
		if sm.IdShort == idShort {
			return sm, i, true
		}
	}
	return nil, -1, false
}

// Clone returns a deep copy of e.
func (e *Environment) Clone() *Environment {
	if e == nil {
		return nil
	}
	cp := *e
	cp.SpecificAssetIDs = append([]SpecificAssetID(nil), e.SpecificAssetIDs...)
	cp.Submodels = make([]*Submodel, len(e.Submodels))
	for i, sm := range e.Submodels {
		cp.Submodels[i] = sm.Clone()
	}
	return &cp
}

// Walk visits every element in document order. fn receives the element and its
// path; returning false skips the element's children.
func (e *Environment) Walk(fn func(path Path, el *Element) bool) {
	for _, sm := range e.Submodels {
		walkElements(Path{Submodel: sm.IdShort}, sm.Elements, fn)
	}
}

func walkElements(parent Path, elements []*Element, fn func(Path, *Element) bool) {
	for _, el := range elements {
		p := parent.Child(el.IdShort)
		if fn(p, el) {
			walkElements(p, el.Children(), fn)
		}
	}
}

// FindProperty returns the first Property, in document order, whose idShort
// matches one of names case-insensitively and carries a value.
func (e *Environment) FindProperty(names ...string) (*Element, bool) {
	var found *Element
	e.Walk(func(_ Path, el *Element) bool {
		if found != nil {
			return false
		}
		if prop, ok := el.AsProperty(); ok && strings.TrimSpace(prop.Value) != "" {
			for _, n := range names {
				if strings.EqualFold(el.IdShort, n) {
					found = el
					return false
				}
			}
		}
		return true
	})
	return found, found != nil
}

// AssetIdentifierNames are the idShorts recognised as carrying the asset's
// specific identifier when none is configured.
var AssetIdentifierNames = []string{"SerialNumber", "AssetId", "AssetID", "AssetIdentifier", "ProductInstanceId"}

// ResolveSpecificAssetIDs returns the ids to publish in the shell header: the
// record's own ids, else the configured name/value, else the first Property
// named like an asset identifier. It returns nil when none applies.
func (e *Environment) ResolveSpecificAssetIDs(configuredName, configuredValue string) []SpecificAssetID {
	if len(e.SpecificAssetIDs) > 0 {
		return append([]SpecificAssetID(nil), e.SpecificAssetIDs...)
	}
	name := strings.TrimSpace(configuredName)
	if name == "" {
		name = "serialNumber"
	}
	if v := strings.TrimSpace(configuredValue); v != "" {
		return []SpecificAssetID{{Name: name, Value: v}}
	}
	if el, ok := e.FindProperty(AssetIdentifierNames...); ok {
		prop, _ := el.AsProperty()
		return []SpecificAssetID{{Name: name, Value: strings.TrimSpace(prop.Value)}}
	}
	return nil
}
