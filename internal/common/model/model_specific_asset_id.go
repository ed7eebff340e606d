package model

// SpecificAssetID is a name/value pair identifying the asset within a domain,
// e.g. a serial number.
type SpecificAssetID struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
