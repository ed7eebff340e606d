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

// KeyTypes type of KeyTypes
type KeyTypes string

// List of KeyTypes used by the editor
//
//nolint:all
const (
	KEYTYPES_ASSET_ADMINISTRATION_SHELL  KeyTypes = "AssetAdministrationShell"
	KEYTYPES_CONCEPT_DESCRIPTION         KeyTypes = "ConceptDescription"
	KEYTYPES_FILE                        KeyTypes = "File"
	KEYTYPES_FRAGMENT_REFERENCE          KeyTypes = "FragmentReference"
	KEYTYPES_GLOBAL_REFERENCE            KeyTypes = "GlobalReference"
	KEYTYPES_MULTI_LANGUAGE_PROPERTY     KeyTypes = "MultiLanguageProperty"
	KEYTYPES_PROPERTY                    KeyTypes = "Property"
	KEYTYPES_REFERENCE_ELEMENT           KeyTypes = "ReferenceElement"
	KEYTYPES_SUBMODEL                    KeyTypes = "Submodel"
	KEYTYPES_SUBMODEL_ELEMENT            KeyTypes = "SubmodelElement"
	KEYTYPES_SUBMODEL_ELEMENT_COLLECTION KeyTypes = "SubmodelElementCollection"
	KEYTYPES_SUBMODEL_ELEMENT_LIST       KeyTypes = "SubmodelElementList"
)

// IsGlobal reports whether the key addresses something outside the environment.
func (k KeyTypes) IsGlobal() bool {
	return k == KEYTYPES_GLOBAL_REFERENCE || k == KEYTYPES_FRAGMENT_REFERENCE
}
