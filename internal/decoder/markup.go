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

// Package decoder rebuilds the element tree from an uploaded AASX archive or
// from a bare AAS v3.0 XML document.
package decoder

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"go.uber.org/zap"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
)

// firstKeyValue selects the value of the first key of a reference. Reading the
// reference's text directly would also pick up its type marker.
var firstKeyValue = xpath.MustCompile(`*[local-name()='keys']/*[local-name()='key'][1]/*[local-name()='value']`)

var modelTypes = map[string]model.ModelType{
	strings.ToLower(markup.TagProperty):              model.ModelTypeProperty,
	strings.ToLower(markup.TagMultiLanguageProperty): model.ModelTypeMultiLanguageProperty,
	strings.ToLower(markup.TagCollection):            model.ModelTypeCollection,
	strings.ToLower(markup.TagList):                  model.ModelTypeList,
	strings.ToLower(markup.TagFile):                  model.ModelTypeFile,
	strings.ToLower(markup.TagReferenceElement):      model.ModelTypeReferenceElement,
}

// Decode parses markup text into a new Environment.
func Decode(text string) (*model.Environment, error) {
	doc, err := markup.Parse(text)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	root := markup.RootElement(doc)
	if root == nil || !strings.EqualFold(root.Data, markup.TagEnvironment) {
		name := ""
		if root != nil {
			name = root.Data
		}
		return nil, &ParseError{Err: errUnrecognized(name)}
	}

	env := &model.Environment{AssetKind: model.ASSETKIND_INSTANCE}
	if shell := markup.Child(markup.Child(root, markup.TagShells), markup.TagShell); shell != nil {
		decodeShell(env, shell)
	}
	for _, n := range markup.Children(markup.Child(root, markup.TagSubmodels), markup.TagSubmodel) {
		sm := &model.Submodel{
			IdShort:    markup.ChildText(n, markup.TagIdShort),
			ID:         markup.ChildText(n, markup.TagID),
			SemanticID: referenceValue(markup.Child(n, markup.TagSemanticID)),
		}
		sm.Elements = decodeElements(markup.Child(n, markup.TagSubmodelElements))
		env.Submodels = append(env.Submodels, sm)
	}
	logger.LogDebug("decoded markup", zap.String("shell", env.IdShort), zap.Int("submodels", len(env.Submodels)))
	return env, nil
}

type unrecognizedRootError struct{ name string }

func (e unrecognizedRootError) Error() string {
	return ErrUnrecognizedRoot.Error() + ": <" + e.name + ">"
}

func (e unrecognizedRootError) Unwrap() error { return ErrUnrecognizedRoot }

func errUnrecognized(name string) error { return unrecognizedRootError{name: name} }

func decodeShell(env *model.Environment, shell *xmlquery.Node) {
	env.IdShort = markup.ChildText(shell, markup.TagIdShort)
	env.ID = markup.ChildText(shell, markup.TagID)
	info := markup.Child(shell, markup.TagAssetInformation)
	if info == nil {
		return
	}
	if kind, err := model.NewAssetKindFromValue(markup.ChildText(info, markup.TagAssetKind)); err == nil {
		env.AssetKind = kind
	}
	env.GlobalAssetID = markup.ChildText(info, markup.TagGlobalAssetID)
	env.AssetType = markup.ChildText(info, markup.TagAssetType)
	for _, sa := range markup.Children(markup.Child(info, markup.TagSpecificAssetIDs), markup.TagSpecificAssetID) {
		env.SpecificAssetIDs = append(env.SpecificAssetIDs, model.SpecificAssetID{
			Name:  markup.ChildText(sa, markup.TagName),
			Value: markup.ChildText(sa, markup.TagValue),
		})
	}
}

// decodeElements reads the element children of a submodelElements or value
// wrapper. A missing wrapper yields no children.
func decodeElements(wrapper *xmlquery.Node) []*model.Element {
	if wrapper == nil {
		return nil
	}
	var out []*model.Element
	for _, n := range markup.ChildElements(wrapper) {
		if el := decodeElement(n); el != nil {
			out = append(out, el)
		}
	}
	return out
}

func decodeElement(n *xmlquery.Node) *model.Element {
	mt, ok := modelTypes[strings.ToLower(n.Data)]
	if !ok {
		logger.LogWarning("skipping unsupported element", zap.String("tag", n.Data), zap.String("idShort", markup.ChildText(n, markup.TagIdShort)))
		return nil
	}
	el := &model.Element{
		IdShort:     markup.ChildText(n, markup.TagIdShort),
		Category:    markup.ChildText(n, markup.TagCategory),
		Description: preferredText(markup.Child(n, markup.TagDescription)),
		SemanticID:  referenceValue(markup.Child(n, markup.TagSemanticID)),
		Cardinality: cardinality(n),
	}
	decodeIec61360(el, n)

	switch mt {
	case model.ModelTypeProperty:
		t, _ := valuetype.Normalize(markup.ChildText(n, markup.TagValueType))
		el.Payload = &model.Property{ValueType: t, Value: directText(n, markup.TagValue)}
	case model.ModelTypeMultiLanguageProperty:
		el.Payload = &model.MultiLanguageProperty{Value: langStrings(markup.Child(n, markup.TagValue))}
	case model.ModelTypeCollection:
		el.Payload = &model.Collection{Children: decodeElements(markup.Child(n, markup.TagValue))}
	case model.ModelTypeList:
		orderRelevant := true
		if v := markup.ChildText(n, markup.TagOrderRelevant); v != "" {
			orderRelevant, _ = strconv.ParseBool(v)
		}
		el.Payload = &model.List{
			Children:      decodeElements(markup.Child(n, markup.TagValue)),
			OrderRelevant: orderRelevant,
		}
	case model.ModelTypeFile:
		el.Payload = &model.File{
			Value:       directText(n, markup.TagValue),
			ContentType: markup.ChildText(n, markup.TagContentType),
		}
	case model.ModelTypeReferenceElement:
		el.Payload = &model.ReferenceElement{Value: reference(markup.Child(n, markup.TagValue))}
	}
	return el
}

// directText returns the text of n's own child named local. Nested elements
// with the same local name are not considered.
func directText(n *xmlquery.Node, local string) string {
	c := markup.Child(n, local)
	if c == nil {
		return ""
	}
	return c.InnerText()
}

func cardinality(n *xmlquery.Node) model.Cardinality {
	for _, q := range markup.Children(markup.Child(n, markup.TagQualifiers), markup.TagQualifier) {
		if markup.ChildText(q, markup.TagType) != model.CardinalityQualifierType {
			continue
		}
		if c, err := model.ParseCardinality(markup.ChildText(q, markup.TagValue)); err == nil {
			return c
		}
	}
	return model.CardinalityOne
}

func decodeIec61360(el *model.Element, n *xmlquery.Node) {
	for _, eds := range markup.Children(markup.Child(n, markup.TagEmbeddedDataSpecs), markup.TagEmbeddedDataSpec) {
		iec := markup.Child(markup.Child(eds, markup.TagDataSpecContent), markup.TagIec61360)
		if iec == nil {
			continue
		}
		el.PreferredName = langStrings(markup.Child(iec, markup.TagPreferredName))
		el.ShortName = langStrings(markup.Child(iec, markup.TagShortName))
		el.DataType = markup.ChildText(iec, markup.TagDataType)
		el.Unit = markup.ChildText(iec, markup.TagUnit)
		el.SourceOfDefinition = markup.ChildText(iec, markup.TagSourceOfDefinition)
		if el.Description == "" {
			el.Description = preferredText(markup.Child(iec, markup.TagDefinition))
		}
		if len(el.ShortName) == 0 {
			el.ShortName = nil
		}
		return
	}
}

// langStrings reads the language-tagged entries that are direct children of wrapper.
func langStrings(wrapper *xmlquery.Node) model.LangStringSet {
	out := model.LangStringSet{}
	if wrapper == nil {
		return out
	}
	for _, entry := range markup.ChildElements(wrapper) {
		lang := markup.ChildText(entry, markup.TagLanguage)
		text := markup.ChildText(entry, markup.TagText)
		if lang == "" || text == "" {
			continue
		}
		out[lang] = text
	}
	return out
}

// preferredText returns the English entry of a language-tagged block, falling
// back to the first entry.
func preferredText(wrapper *xmlquery.Node) string {
	return langStrings(wrapper).Preferred(model.DefaultLanguage)
}

func referenceValue(ref *xmlquery.Node) string {
	if ref == nil {
		return ""
	}
	if v := xmlquery.QuerySelector(ref, firstKeyValue); v != nil {
		return strings.TrimSpace(v.InnerText())
	}
	return ""
}

func reference(n *xmlquery.Node) model.Reference {
	if n == nil {
		return model.Reference{}
	}
	r := model.Reference{Type: model.ReferenceTypes(markup.ChildText(n, markup.TagType))}
	for _, k := range markup.Children(markup.Child(n, markup.TagKeys), markup.TagKey) {
		r.Keys = append(r.Keys, model.Key{
			Type:  model.KeyTypes(markup.ChildText(k, markup.TagType)),
			Value: markup.ChildText(k, markup.TagValue),
		})
	}
	return r
}
