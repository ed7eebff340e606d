package repair

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
)

var (
	qProperties      = xpath.MustCompile(`//*[local-name()='property']`)
	qFiles           = xpath.MustCompile(`//*[local-name()='file']`)
	qMultiLanguage   = xpath.MustCompile(`//*[local-name()='multiLanguageProperty']`)
	qReferenceElems  = xpath.MustCompile(`//*[local-name()='referenceElement']`)
	qTextBlocks      = xpath.MustCompile(`//*[local-name()='description' or local-name()='displayName']`)
	qEmbeddedSpec    = xpath.MustCompile(`//*[local-name()='embeddedDataSpecification']`)
	qEmbeddedSpecs   = xpath.MustCompile(`//*[local-name()='embeddedDataSpecifications']`)
	qSemanticIDs     = xpath.MustCompile(`//*[local-name()='semanticId' or local-name()='supplementalSemanticIds']`)
	qIecDefinitions  = xpath.MustCompile(`//*[local-name()='dataSpecificationIec61360']/*[local-name()='definition']`)
	qIecPreferred    = xpath.MustCompile(`//*[local-name()='dataSpecificationIec61360']/*[local-name()='preferredName']`)
	qValueLists      = xpath.MustCompile(`//*[local-name()='valueList']`)
	qReferences      = xpath.MustCompile(`//*[*[local-name()='keys'] or *[local-name()='type'][normalize-space(.)='ExternalReference' or normalize-space(.)='ModelReference']]`)
	qSpecificIDLists = xpath.MustCompile(`//*[local-name()='specificAssetIds']`)
	qAssetTypes      = xpath.MustCompile(`//*[local-name()='assetInformation']/*[local-name()='assetType']`)
	qConceptDescs    = xpath.MustCompile(`//*[local-name()='conceptDescriptions']`)
	qIdShorts        = xpath.MustCompile(`//*[local-name()='idShort']`)
	qOperationVars   = xpath.MustCompile(`//*[local-name()='inputVariables' or local-name()='outputVariables' or local-name()='inoutputVariables']`)
	qElementWrappers = xpath.MustCompile(`//*[local-name()='submodelElements'] | //*[local-name()='submodelElementCollection' or local-name()='submodelElementList']/*[local-name()='value']`)
	qLanguages       = xpath.MustCompile(`//*[starts-with(local-name(),'langString')]/*[local-name()='language']`)
	qLangStrings     = xpath.MustCompile(`//*[starts-with(local-name(),'langString')]`)
	qThumbnails      = xpath.MustCompile(`//*[local-name()='defaultThumbnail']`)
)

// Child sequences of the AAS v3.0 schema, used to place synthesized nodes.
var (
	elementHeader       = []string{"extensions", markup.TagCategory, markup.TagIdShort, markup.TagDisplayName, markup.TagDescription, markup.TagSemanticID, "supplementalSemanticIds", markup.TagQualifiers, markup.TagEmbeddedDataSpecs}
	propertyValueBefore = append(append([]string(nil), elementHeader...), markup.TagValueType)
	fileTypeBefore      = append(append([]string(nil), elementHeader...), markup.TagValue)
	referenceKeysBefore = []string{markup.TagType, "referredSemanticId"}
	specificIDNameAfter = []string{markup.TagSemanticID, "supplementalSemanticIds"}
	specificIDValAfter  = []string{markup.TagSemanticID, "supplementalSemanticIds", markup.TagName}
)

// langStringTags maps a language-tagged block to the local name of its entries.
var langStringTags = map[string]string{
	markup.TagDescription:   markup.TagLangStringText,
	markup.TagDisplayName:   markup.TagLangStringName,
	markup.TagValue:         markup.TagLangStringText,
	markup.TagPreferredName: markup.TagLangPreferredName,
	markup.TagShortName:     markup.TagLangShortName,
	markup.TagDefinition:    markup.TagLangDefinition,
}

func selectAll(root *xmlquery.Node, expr *xpath.Expr) []*xmlquery.Node {
	return xmlquery.QuerySelectorAll(root, expr)
}

// attached reports whether n is still part of the document rooted at root.
func attached(n *xmlquery.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == xmlquery.DocumentNode {
			return true
		}
	}
	return false
}

// isRequired reads the cardinality qualifier of a submodel element node.
// Elements without one are required.
func isRequired(n *xmlquery.Node) bool {
	for _, q := range markup.Children(markup.Child(n, markup.TagQualifiers), markup.TagQualifier) {
		if markup.ChildText(q, markup.TagType) != model.CardinalityQualifierType {
			continue
		}
		if c, err := model.ParseCardinality(markup.ChildText(q, markup.TagValue)); err == nil {
			return c.IsRequired()
		}
	}
	return true
}

// classification returns the IEC 61360 data type declared for an element node.
func classification(n *xmlquery.Node) string {
	for _, spec := range markup.Children(markup.Child(n, markup.TagEmbeddedDataSpecs), markup.TagEmbeddedDataSpec) {
		iec := markup.Child(markup.Child(spec, markup.TagDataSpecContent), markup.TagIec61360)
		if v := markup.ChildText(iec, markup.TagDataType); v != "" {
			return v
		}
	}
	return ""
}

// propertyType resolves the primitive type of a property node, defaulting to string.
func propertyType(n *xmlquery.Node) valuetype.DataTypeDefXsd {
	if t, ok := valuetype.Resolve(markup.ChildText(n, markup.TagValueType), classification(n)); ok {
		return t
	}
	return valuetype.XsdString
}

// nearestText is the idShort nearest to n, or fallback.
func nearestText(n *xmlquery.Node, fallback string) string {
	if id := markup.NearestIdShort(n); id != "" {
		return id
	}
	return fallback
}

// appendLangString adds a language-tagged entry to block.
func appendLangString(block *xmlquery.Node, lang, text string) {
	tag, ok := langStringTags[block.Data]
	if !ok {
		tag = markup.TagLangStringText
	}
	entry := markup.AppendElement(block, tag)
	markup.AppendText(entry, markup.TagLanguage, lang)
	markup.AppendText(entry, markup.TagText, text)
}

// newReference builds a detached reference node named local with one key.
func newReference(like *xmlquery.Node, local string, refType model.ReferenceTypes, keyType model.KeyTypes, value string) *xmlquery.Node {
	ref := markup.NewElement(like, local)
	markup.AppendText(ref, markup.TagType, string(refType))
	key := markup.AppendElement(markup.AppendElement(ref, markup.TagKeys), markup.TagKey)
	markup.AppendText(key, markup.TagType, string(keyType))
	markup.AppendText(key, markup.TagValue, value)
	return ref
}

// precedes reports whether a comes before b among their parent's children.
func precedes(a, b *xmlquery.Node) bool {
	for c := a.NextSibling; c != nil; c = c.NextSibling {
		if c == b {
			return true
		}
	}
	return false
}

func hasChildIn(n *xmlquery.Node, names map[string]bool) bool {
	for _, c := range markup.ChildElements(n) {
		if names[c.Data] {
			return true
		}
	}
	return false
}

func isBlankText(n *xmlquery.Node) bool {
	return n == nil || strings.TrimSpace(n.InnerText()) == ""
}
