/*
 * DotAAS Part 1 | Metamodel | Schemas
 *
 * The schemas implementing the [Specification of the Asset Administration Shell: Part 1](https://industrialdigitaltwin.org/en/content-hub/aasspecifications).   Copyright: Industrial Digital Twin Association (IDTA) 2025
 *
 * API version: V3.1.1
 * Contact: info@idtwin.org
 */

//nolint:all
package model

import (
	"fmt"
	"strings"
)

// AssetKind the model type
type AssetKind string

// List of AssetKind
//
//nolint:all
const (
	ASSETKIND_INSTANCE       AssetKind = "Instance"
	ASSETKIND_NOT_APPLICABLE AssetKind = "NotApplicable"
	ASSETKIND_TYPE           AssetKind = "Type"
)

// AllowedAssetKindEnumValues is all the allowed values of AssetKind enum
var AllowedAssetKindEnumValues = []AssetKind{
	"Instance",
	"NotApplicable",
	"Type",
}

// IsValid return true if the value is valid for the enum, false otherwise
func (v AssetKind) IsValid() bool {
	for _, allowed := range AllowedAssetKindEnumValues {
		if v == allowed {
			return true
		}
	}
	return false
}

// NewAssetKindFromValue returns a valid AssetKind for the value passed as
// argument, matched case-insensitively, or an error if the value is not allowed by the enum
func NewAssetKindFromValue(v string) (AssetKind, error) {
	for _, allowed := range AllowedAssetKindEnumValues {
		if strings.EqualFold(strings.TrimSpace(v), string(allowed)) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("invalid value '%v' for AssetKind: valid values are %v", v, AllowedAssetKindEnumValues)
}

// OrDefault returns v, or Instance when v is not a valid kind.
func (v AssetKind) OrDefault() AssetKind {
	if v.IsValid() {
		return v
	}
	return ASSETKIND_INSTANCE
}
