package record

// JSON shapes of the AAS v3.0 record form. Optional members are omitted
// when empty so an unset scalar never shows up as "".

type environmentJSON struct {
	AssetAdministrationShells []shellJSON              `json:"assetAdministrationShells,omitempty"`
	Submodels                 []submodelJSON           `json:"submodels,omitempty"`
	ConceptDescriptions       []conceptDescriptionJSON `json:"conceptDescriptions,omitempty"`
}

type shellJSON struct {
	ModelType        string               `json:"modelType"`
	IdShort          string               `json:"idShort,omitempty"`
	ID               string               `json:"id"`
	AssetInformation assetInformationJSON `json:"assetInformation"`
	Submodels        []referenceJSON      `json:"submodels,omitempty"`
}

type assetInformationJSON struct {
	AssetKind        string                `json:"assetKind"`
	GlobalAssetID    string                `json:"globalAssetId,omitempty"`
	SpecificAssetIDs []specificAssetIDJSON `json:"specificAssetIds,omitempty"`
	AssetType        string                `json:"assetType,omitempty"`
}

type specificAssetIDJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type submodelJSON struct {
	ModelType        string         `json:"modelType"`
	IdShort          string         `json:"idShort,omitempty"`
	ID               string         `json:"id"`
	Kind             string         `json:"kind,omitempty"`
	SemanticID       *referenceJSON `json:"semanticId,omitempty"`
	SubmodelElements []elementJSON  `json:"submodelElements,omitempty"`
}

type conceptDescriptionJSON struct {
	ModelType                  string    `json:"modelType"`
	IdShort                    string    `json:"idShort,omitempty"`
	ID                         string    `json:"id"`
	EmbeddedDataSpecifications []edsJSON `json:"embeddedDataSpecifications,omitempty"`
}

type referenceJSON struct {
	Type string    `json:"type"`
	Keys []keyJSON `json:"keys"`
}

type keyJSON struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type langStringJSON struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

type qualifierJSON struct {
	Type      string `json:"type"`
	ValueType string `json:"valueType"`
	Value     string `json:"value,omitempty"`
}

type edsJSON struct {
	DataSpecification        referenceJSON `json:"dataSpecification"`
	DataSpecificationContent iec61360JSON  `json:"dataSpecificationContent"`
}

type iec61360JSON struct {
	ModelType          string           `json:"modelType"`
	PreferredName      []langStringJSON `json:"preferredName"`
	ShortName          []langStringJSON `json:"shortName,omitempty"`
	Unit               string           `json:"unit,omitempty"`
	SourceOfDefinition string           `json:"sourceOfDefinition,omitempty"`
	DataType           string           `json:"dataType,omitempty"`
	Definition         []langStringJSON `json:"definition,omitempty"`
}

// elementJSON covers every supported variant. Value holds a string, a
// []langStringJSON, a []elementJSON or a *referenceJSON depending on ModelType
// and is left nil when there is nothing to emit.
type elementJSON struct {
	ModelType                  string           `json:"modelType"`
	Category                   string           `json:"category,omitempty"`
	IdShort                    string           `json:"idShort"`
	Description                []langStringJSON `json:"description,omitempty"`
	SemanticID                 *referenceJSON   `json:"semanticId,omitempty"`
	Qualifiers                 []qualifierJSON  `json:"qualifiers,omitempty"`
	EmbeddedDataSpecifications []edsJSON        `json:"embeddedDataSpecifications,omitempty"`
	OrderRelevant              *bool            `json:"orderRelevant,omitempty"`
	TypeValueListElement       string           `json:"typeValueListElement,omitempty"`
	ValueTypeListElement       string           `json:"valueTypeListElement,omitempty"`
	ValueType                  string           `json:"valueType,omitempty"`
	Value                      any              `json:"value,omitempty"`
	ContentType                string           `json:"contentType,omitempty"`
}
