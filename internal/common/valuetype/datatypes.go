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

// Package valuetype maps free-form type names onto the canonical XML Schema
// primitive types of the AAS metamodel, derives a primitive type from an
// IEC 61360 data type classification and checks literals against the lexical
// rules of a primitive type.
package valuetype

import (
	"fmt"
	"sort"
	"strings"
)

// DataTypeDefXsd is a canonical primitive type, written with its "xs:" prefix.
type DataTypeDefXsd string

// Canonical primitive types of the AAS metamodel.
const (
	XsdAnyURI             DataTypeDefXsd = "xs:anyURI"
	XsdBase64Binary       DataTypeDefXsd = "xs:base64Binary"
	XsdBoolean            DataTypeDefXsd = "xs:boolean"
	XsdByte               DataTypeDefXsd = "xs:byte"
	XsdDate               DataTypeDefXsd = "xs:date"
	XsdDateTime           DataTypeDefXsd = "xs:dateTime"
	XsdDecimal            DataTypeDefXsd = "xs:decimal"
	XsdDouble             DataTypeDefXsd = "xs:double"
	XsdDuration           DataTypeDefXsd = "xs:duration"
	XsdFloat              DataTypeDefXsd = "xs:float"
	XsdGDay               DataTypeDefXsd = "xs:gDay"
	XsdGMonth             DataTypeDefXsd = "xs:gMonth"
	XsdGMonthDay          DataTypeDefXsd = "xs:gMonthDay"
	XsdGYear              DataTypeDefXsd = "xs:gYear"
	XsdGYearMonth         DataTypeDefXsd = "xs:gYearMonth"
	XsdHexBinary          DataTypeDefXsd = "xs:hexBinary"
	XsdInt                DataTypeDefXsd = "xs:int"
	XsdInteger            DataTypeDefXsd = "xs:integer"
	XsdLong               DataTypeDefXsd = "xs:long"
	XsdNegativeInteger    DataTypeDefXsd = "xs:negativeInteger"
	XsdNonNegativeInteger DataTypeDefXsd = "xs:nonNegativeInteger"
	XsdNonPositiveInteger DataTypeDefXsd = "xs:nonPositiveInteger"
	XsdPositiveInteger    DataTypeDefXsd = "xs:positiveInteger"
	XsdShort              DataTypeDefXsd = "xs:short"
	XsdString             DataTypeDefXsd = "xs:string"
	XsdTime               DataTypeDefXsd = "xs:time"
	XsdUnsignedByte       DataTypeDefXsd = "xs:unsignedByte"
	XsdUnsignedInt        DataTypeDefXsd = "xs:unsignedInt"
	XsdUnsignedLong       DataTypeDefXsd = "xs:unsignedLong"
	XsdUnsignedShort      DataTypeDefXsd = "xs:unsignedShort"
)

// AllowedDataTypeDefXsdEnumValues is all the allowed values of DataTypeDefXsd enum
var AllowedDataTypeDefXsdEnumValues = []DataTypeDefXsd{
	XsdAnyURI, XsdBase64Binary, XsdBoolean, XsdByte, XsdDate, XsdDateTime, XsdDecimal,
	XsdDouble, XsdDuration, XsdFloat, XsdGDay, XsdGMonth, XsdGMonthDay, XsdGYear,
	XsdGYearMonth, XsdHexBinary, XsdInt, XsdInteger, XsdLong, XsdNegativeInteger,
	XsdNonNegativeInteger, XsdNonPositiveInteger, XsdPositiveInteger, XsdShort, XsdString,
	XsdTime, XsdUnsignedByte, XsdUnsignedInt, XsdUnsignedLong, XsdUnsignedShort,
}

// byLocalName indexes the canonical types by their lower-cased local name.
var byLocalName = func() map[string]DataTypeDefXsd {
	m := make(map[string]DataTypeDefXsd, len(AllowedDataTypeDefXsdEnumValues))
	for _, v := range AllowedDataTypeDefXsdEnumValues {
		m[strings.ToLower(v.LocalName())] = v
	}
	return m
}()

// aliases are human-entered names that do not match a local name.
var aliases = map[string]DataTypeDefXsd{
	"bool":     XsdBoolean,
	"text":     XsdString,
	"str":      XsdString,
	"uri":      XsdAnyURI,
	"url":      XsdAnyURI,
	"iri":      XsdAnyURI,
	"number":   XsdDecimal,
	"real":     XsdDouble,
	"datetime": XsdDateTime,
	"uint":     XsdUnsignedInt,
	"ulong":    XsdUnsignedLong,
}

// IsValid return true if the value is valid for the enum, false otherwise
func (v DataTypeDefXsd) IsValid() bool {
	_, ok := byLocalName[strings.ToLower(v.LocalName())]
	return ok && strings.HasPrefix(string(v), "xs:")
}

// LocalName returns the type name without its namespace prefix.
func (v DataTypeDefXsd) LocalName() string {
	s := string(v)
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Normalize maps a free-form type token onto a canonical primitive type.
// Matching ignores case and any namespace prefix ("xs:", "xsd:", a full
// namespace URI followed by '#').
func Normalize(token string) (DataTypeDefXsd, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return "", false
	}
	if i := strings.LastIndexAny(t, ":#"); i >= 0 {
		t = t[i+1:]
	}
	if v, ok := byLocalName[t]; ok {
		return v, true
	}
	if v, ok := aliases[t]; ok {
		return v, true
	}
	return "", false
}

// NewDataTypeDefXsdFromValue returns the canonical type for v, or an error
// listing the allowed values.
func NewDataTypeDefXsdFromValue(v string) (DataTypeDefXsd, error) {
	if t, ok := Normalize(v); ok {
		return t, nil
	}
	allowed := make([]string, 0, len(AllowedDataTypeDefXsdEnumValues))
	for _, a := range AllowedDataTypeDefXsdEnumValues {
		allowed = append(allowed, string(a))
	}
	sort.Strings(allowed)
	return "", fmt.Errorf("invalid value '%v' for DataTypeDefXsd: valid values are %v", v, allowed)
}
