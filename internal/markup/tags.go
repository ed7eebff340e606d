package markup

import "github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"

// Namespace is the AAS v3.0 XML namespace.
const Namespace = "https://admin-shell.io/aas/3/0"

// DataSpecificationIec61360 identifies the IEC 61360 data specification template.
const DataSpecificationIec61360 = "https://admin-shell.io/DataSpecificationTemplates/DataSpecificationIec61360/3/0"

// Local names of the markup elements the codec reads and writes.
const (
	TagEnvironment           = "environment"
	TagShells                = "assetAdministrationShells"
	TagShell                 = "assetAdministrationShell"
	TagAssetInformation      = "assetInformation"
	TagAssetKind             = "assetKind"
	TagGlobalAssetID         = "globalAssetId"
	TagSpecificAssetIDs      = "specificAssetIds"
	TagSpecificAssetID       = "specificAssetId"
	TagAssetType             = "assetType"
	TagDefaultThumbnail      = "defaultThumbnail"
	TagPath                  = "path"
	TagSubmodels             = "submodels"
	TagSubmodel              = "submodel"
	TagSubmodelElements      = "submodelElements"
	TagConceptDescriptions   = "conceptDescriptions"
	TagConceptDescription    = "conceptDescription"
	TagIdShort               = "idShort"
	TagID                    = "id"
	TagKind                  = "kind"
	TagCategory              = "category"
	TagDescription           = "description"
	TagDisplayName           = "displayName"
	TagSemanticID            = "semanticId"
	TagQualifiers            = "qualifiers"
	TagQualifier             = "qualifier"
	TagType                  = "type"
	TagValueType             = "valueType"
	TagValue                 = "value"
	TagName                  = "name"
	TagContentType           = "contentType"
	TagReference             = "reference"
	TagKeys                  = "keys"
	TagKey                   = "key"
	TagLangStringText        = "langStringTextType"
	TagLangStringName        = "langStringNameType"
	TagLanguage              = "language"
	TagText                  = "text"
	TagOrderRelevant         = "orderRelevant"
	TagTypeValueListElement  = "typeValueListElement"
	TagValueTypeListElement  = "valueTypeListElement"
	TagEmbeddedDataSpecs     = "embeddedDataSpecifications"
	TagEmbeddedDataSpec      = "embeddedDataSpecification"
	TagDataSpecification     = "dataSpecification"
	TagDataSpecContent       = "dataSpecificationContent"
	TagIec61360              = "dataSpecificationIec61360"
	TagPreferredName         = "preferredName"
	TagShortName             = "shortName"
	TagUnit                  = "unit"
	TagSourceOfDefinition    = "sourceOfDefinition"
	TagDataType              = "dataType"
	TagDefinition            = "definition"
	TagValueList             = "valueList"
	TagValueReferencePairs   = "valueReferencePairs"
	TagValueReferencePair    = "valueReferencePair"
	TagLangPreferredName     = "langStringPreferredNameTypeIec61360"
	TagLangShortName         = "langStringShortNameTypeIec61360"
	TagLangDefinition        = "langStringDefinitionTypeIec61360"
	TagInputVariables        = "inputVariables"
	TagOutputVariables       = "outputVariables"
	TagInoutputVariables     = "inoutputVariables"
	TagOperationVariable     = "operationVariable"
	TagProperty              = "property"
	TagMultiLanguageProperty = "multiLanguageProperty"
	TagCollection            = "submodelElementCollection"
	TagList                  = "submodelElementList"
	TagFile                  = "file"
	TagReferenceElement      = "referenceElement"
)

// elementTags maps a model type to its markup tag.
var elementTags = map[model.ModelType]string{
	model.ModelTypeProperty:              TagProperty,
	model.ModelTypeMultiLanguageProperty: TagMultiLanguageProperty,
	model.ModelTypeCollection:            TagCollection,
	model.ModelTypeList:                  TagList,
	model.ModelTypeFile:                  TagFile,
	model.ModelTypeReferenceElement:      TagReferenceElement,
}

// TagFor returns the markup tag of a model type.
func TagFor(t model.ModelType) (string, bool) {
	tag, ok := elementTags[t]
	return tag, ok
}

// SubmodelElementTags are the local names of every submodel element variant
// in the metamodel, including the ones the codec does not decode.
var SubmodelElementTags = map[string]bool{
	TagProperty:                    true,
	TagMultiLanguageProperty:       true,
	TagCollection:                  true,
	TagList:                        true,
	TagFile:                        true,
	TagReferenceElement:            true,
	"blob":                         true,
	"range":                        true,
	"entity":                       true,
	"relationshipElement":          true,
	"annotatedRelationshipElement": true,
	"basicEventElement":            true,
	"operation":                    true,
	"capability":                   true,
}

// IsReferable reports whether elements with this local name carry an idShort
// that takes part in element paths.
func IsReferable(local string) bool {
	return local == TagSubmodel || SubmodelElementTags[local]
}
