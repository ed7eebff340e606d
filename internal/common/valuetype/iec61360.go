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

package valuetype

import (
	"fmt"
	"strings"
	"unicode"
)

// DataTypeIec61360 is the semantic data type classification of an IEC 61360
// data specification, written in its wire form (e.g. "INTEGER_COUNT").
type DataTypeIec61360 string

// List of DataTypeIec61360
//
//nolint:all
const (
	DATATYPEIEC61360_BLOB                DataTypeIec61360 = "BLOB"
	DATATYPEIEC61360_BOOLEAN             DataTypeIec61360 = "BOOLEAN"
	DATATYPEIEC61360_DATE                DataTypeIec61360 = "DATE"
	DATATYPEIEC61360_FILE                DataTypeIec61360 = "FILE"
	DATATYPEIEC61360_HTML                DataTypeIec61360 = "HTML"
	DATATYPEIEC61360_INTEGER_COUNT       DataTypeIec61360 = "INTEGER_COUNT"
	DATATYPEIEC61360_INTEGER_CURRENCY    DataTypeIec61360 = "INTEGER_CURRENCY"
	DATATYPEIEC61360_INTEGER_MEASURE     DataTypeIec61360 = "INTEGER_MEASURE"
	DATATYPEIEC61360_IRDI                DataTypeIec61360 = "IRDI"
	DATATYPEIEC61360_IRI                 DataTypeIec61360 = "IRI"
	DATATYPEIEC61360_RATIONAL            DataTypeIec61360 = "RATIONAL"
	DATATYPEIEC61360_RATIONAL_MEASURE    DataTypeIec61360 = "RATIONAL_MEASURE"
	DATATYPEIEC61360_REAL_COUNT          DataTypeIec61360 = "REAL_COUNT"
	DATATYPEIEC61360_REAL_CURRENCY       DataTypeIec61360 = "REAL_CURRENCY"
	DATATYPEIEC61360_REAL_MEASURE        DataTypeIec61360 = "REAL_MEASURE"
	DATATYPEIEC61360_STRING              DataTypeIec61360 = "STRING"
	DATATYPEIEC61360_STRING_TRANSLATABLE DataTypeIec61360 = "STRING_TRANSLATABLE"
	DATATYPEIEC61360_TIME                DataTypeIec61360 = "TIME"
	DATATYPEIEC61360_TIMESTAMP           DataTypeIec61360 = "TIMESTAMP"
)

// AllowedDataTypeIec61360EnumValues is all the allowed values of DataTypeIec61360 enum
var AllowedDataTypeIec61360EnumValues = []DataTypeIec61360{
	DATATYPEIEC61360_BLOB,
	DATATYPEIEC61360_BOOLEAN,
	DATATYPEIEC61360_DATE,
	DATATYPEIEC61360_FILE,
	DATATYPEIEC61360_HTML,
	DATATYPEIEC61360_INTEGER_COUNT,
	DATATYPEIEC61360_INTEGER_CURRENCY,
	DATATYPEIEC61360_INTEGER_MEASURE,
	DATATYPEIEC61360_IRDI,
	DATATYPEIEC61360_IRI,
	DATATYPEIEC61360_RATIONAL,
	DATATYPEIEC61360_RATIONAL_MEASURE,
	DATATYPEIEC61360_REAL_COUNT,
	DATATYPEIEC61360_REAL_CURRENCY,
	DATATYPEIEC61360_REAL_MEASURE,
	DATATYPEIEC61360_STRING,
	DATATYPEIEC61360_STRING_TRANSLATABLE,
	DATATYPEIEC61360_TIME,
	DATATYPEIEC61360_TIMESTAMP,
}

// defaultPrimitive is the primitive type used for a Property whose only
// type information is its IEC 61360 classification.
var defaultPrimitive = map[DataTypeIec61360]DataTypeDefXsd{
	DATATYPEIEC61360_BLOB:                XsdBase64Binary,
	DATATYPEIEC61360_BOOLEAN:             XsdBoolean,
	DATATYPEIEC61360_DATE:                XsdDate,
	DATATYPEIEC61360_FILE:                XsdAnyURI,
	DATATYPEIEC61360_HTML:                XsdString,
	DATATYPEIEC61360_INTEGER_COUNT:       XsdInteger,
	DATATYPEIEC61360_INTEGER_CURRENCY:    XsdDecimal,
	DATATYPEIEC61360_INTEGER_MEASURE:     XsdInteger,
	DATATYPEIEC61360_IRDI:                XsdString,
	DATATYPEIEC61360_IRI:                 XsdAnyURI,
	DATATYPEIEC61360_RATIONAL:            XsdString,
	DATATYPEIEC61360_RATIONAL_MEASURE:    XsdString,
	DATATYPEIEC61360_REAL_COUNT:          XsdDouble,
	DATATYPEIEC61360_REAL_CURRENCY:       XsdDecimal,
	DATATYPEIEC61360_REAL_MEASURE:        XsdDouble,
	DATATYPEIEC61360_STRING:              XsdString,
	DATATYPEIEC61360_STRING_TRANSLATABLE: XsdString,
	DATATYPEIEC61360_TIME:                XsdTime,
	DATATYPEIEC61360_TIMESTAMP:           XsdDateTime,
}

// iecByKey indexes the classifications by their letters-only lower-case form,
// so "IntegerCount", "INTEGER_COUNT" and "integer count" all match.
var iecByKey = func() map[string]DataTypeIec61360 {
	m := make(map[string]DataTypeIec61360, len(AllowedDataTypeIec61360EnumValues))
	for _, v := range AllowedDataTypeIec61360EnumValues {
		m[iecKey(string(v))] = v
	}
	return m
}()

func iecKey(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// IsValid return true if the value is valid for the enum, false otherwise
func (v DataTypeIec61360) IsValid() bool {
	_, ok := defaultPrimitive[v]
	return ok
}

// NormalizeIec61360 maps a free-form classification token onto its wire form.
func NormalizeIec61360(token string) (DataTypeIec61360, bool) {
	k := iecKey(token)
	if k == "" {
		return "", false
	}
	v, ok := iecByKey[k]
	return v, ok
}

// NewDataTypeIec61360FromValue returns a valid DataTypeIec61360
// for the value passed as argument, or an error if the value passed is not allowed by the enum
func NewDataTypeIec61360FromValue(v string) (DataTypeIec61360, error) {
	if ev, ok := NormalizeIec61360(v); ok {
		return ev, nil
	}
	return "", fmt.Errorf("invalid value '%v' for DataTypeIec61360: valid values are %v", v, AllowedDataTypeIec61360EnumValues)
}

// DefaultFor returns the primitive type implied by an IEC 61360 classification token.
func DefaultFor(classification string) (DataTypeDefXsd, bool) {
	iec, ok := NormalizeIec61360(classification)
	if !ok {
		return "", false
	}
	return defaultPrimitive[iec], true
}

// Resolve returns the primitive type governing a Property: the explicit
// declaration when it normalizes, otherwise the default derived from the
// classification. ok is false when neither yields a type.
func Resolve(explicit string, classification string) (DataTypeDefXsd, bool) {
	if t, ok := Normalize(explicit); ok {
		return t, true
	}
	return DefaultFor(classification)
}
