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

import "strings"

// Key is one {type, value} pair of a Reference.
type Key struct {
	Type  KeyTypes `json:"type"`
	Value string   `json:"value"`
}

// Reference is an ordered list of keys plus the kind of reference.
type Reference struct {
	Type ReferenceTypes `json:"type"`
	Keys []Key          `json:"keys"`
}

// NewExternalReference returns a single-key GlobalReference to value.
func NewExternalReference(value string) Reference {
	return Reference{
		Type: REFERENCETYPES_EXTERNAL_REFERENCE,
		Keys: []Key{{Type: KEYTYPES_GLOBAL_REFERENCE, Value: value}},
	}
}

// NewModelReference returns a single-key model reference.
func NewModelReference(keyType KeyTypes, value string) Reference {
	return Reference{
		Type: REFERENCETYPES_MODEL_REFERENCE,
		Keys: []Key{{Type: keyType, Value: value}},
	}
}

// IsEmpty reports whether the reference has no key with a value.
func (r Reference) IsEmpty() bool {
	for _, k := range r.Keys {
		if strings.TrimSpace(k.Value) != "" {
			return false
		}
	}
	return true
}

// FirstValue returns the value of the first key, or "".
func (r Reference) FirstValue() string {
	if len(r.Keys) == 0 {
		return ""
	}
	return r.Keys[0].Value
}

// Clone returns a copy that shares no slice with r.
func (r Reference) Clone() Reference {
	out := Reference{Type: r.Type}
	if r.Keys != nil {
		out.Keys = append([]Key(nil), r.Keys...)
	}
	return out
}

// OrDefaultType returns the reference type, inferring it from the first key
// when unset: global keys make an external reference, anything else a model reference.
func (r Reference) OrDefaultType() ReferenceTypes {
	if r.Type.IsValid() {
		return r.Type
	}
	if len(r.Keys) == 0 || r.Keys[0].Type.IsGlobal() || r.Keys[0].Type == "" {
		return REFERENCETYPES_EXTERNAL_REFERENCE
	}
	return REFERENCETYPES_MODEL_REFERENCE
}
