package valuetype

import (
	"fmt"
	"regexp"
	"strings"
)

// Family groups primitive types that share one lexical rule.
type Family int

// Lexical families.
const (
	FamilyText Family = iota
	FamilyBoolean
	FamilyInteger
	FamilyUnsigned
	FamilyFloating
)

var (
	integerPattern  = regexp.MustCompile(`^-?[0-9]+$`)
	unsignedPattern = regexp.MustCompile(`^[0-9]+$`)
	floatingPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
)

// FamilyOf returns the lexical family of t. Unknown types are text.
func FamilyOf(t DataTypeDefXsd) Family {
	switch t {
	case XsdBoolean:
		return FamilyBoolean
	case XsdInteger, XsdInt, XsdLong, XsdShort, XsdByte, XsdNegativeInteger, XsdNonPositiveInteger:
		return FamilyInteger
	case XsdUnsignedByte, XsdUnsignedShort, XsdUnsignedInt, XsdUnsignedLong, XsdNonNegativeInteger, XsdPositiveInteger:
		return FamilyUnsigned
	case XsdDecimal, XsdDouble, XsdFloat:
		return FamilyFloating
	default:
		return FamilyText
	}
}

// LexicalError reports a literal that does not match the lexical rule of its type.
type LexicalError struct {
	Value string
	Type  DataTypeDefXsd
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("value %q is not a valid %s literal", e.Value, e.Type)
}

// ValidateLiteral checks value against the lexical rule of t.
// Empty values always pass; emptiness is governed by cardinality.
func ValidateLiteral(value string, t DataTypeDefXsd) error {
	if value == "" {
		return nil
	}
	var ok bool
	switch FamilyOf(t) {
	case FamilyBoolean:
		switch strings.ToLower(value) {
		case "true", "false", "1", "0":
			ok = true
		}
	case FamilyInteger:
		ok = integerPattern.MatchString(value)
	case FamilyUnsigned:
		ok = unsignedPattern.MatchString(value)
	case FamilyFloating:
		ok = floatingPattern.MatchString(value)
	default:
		ok = true
	}
	if !ok {
		return &LexicalError{Value: value, Type: t}
	}
	return nil
}

// IsValidLiteral is ValidateLiteral as a predicate.
func IsValidLiteral(value string, t DataTypeDefXsd) bool {
	return ValidateLiteral(value, t) == nil
}

// Placeholders are the values written into empty required slots.
type Placeholders struct {
	Text string
	URI  string
}

// Placeholder returns a literal that is lexically valid for t.
func Placeholder(t DataTypeDefXsd, p Placeholders) string {
	switch FamilyOf(t) {
	case FamilyBoolean:
		return "false"
	case FamilyInteger, FamilyUnsigned:
		if t == XsdPositiveInteger {
			return "1"
		}
		if t == XsdNegativeInteger {
			return "-1"
		}
		return "0"
	case FamilyFloating:
		return "0"
	}
	switch t {
	case XsdAnyURI:
		return p.URI
	case XsdDate:
		return "1970-01-01"
	case XsdDateTime:
		return "1970-01-01T00:00:00Z"
	case XsdTime:
		return "00:00:00"
	case XsdDuration:
		return "PT0S"
	case XsdGYear:
		return "1970"
	case XsdGYearMonth:
		return "1970-01"
	case XsdGMonth:
		return "--01"
	case XsdGDay:
		return "---01"
	case XsdGMonthDay:
		return "--01-01"
	case XsdHexBinary, XsdBase64Binary:
		return "00"
	}
	return p.Text
}
