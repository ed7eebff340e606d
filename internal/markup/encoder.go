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

package markup

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
)

// Encoder projects an element tree into the AAS v3.0 XML form. It holds no
// state between calls.
type Encoder struct {
	cfg common.EncoderConfig
}

// NewEncoder creates an Encoder using the shell header defaults from cfg.
func NewEncoder(cfg common.EncoderConfig) *Encoder {
	return &Encoder{cfg: cfg}
}

// Encode serializes env and indexes the result.
func (e *Encoder) Encode(env *model.Environment) (*Document, error) {
	if env == nil {
		return nil, fmt.Errorf("encode markup: %w", common.NewErrBadRequest("no environment"))
	}
	return NewDocument(Serialize(e.Build(env))), nil
}

// Build returns the DOM of env without serializing it.
func (e *Encoder) Build(env *model.Environment) *xmlquery.Node {
	doc := &xmlquery.Node{Type: xmlquery.DocumentNode}
	root := &xmlquery.Node{
		Type: xmlquery.ElementNode,
		Data: TagEnvironment,
		Attr: []xmlquery.Attr{{Name: xml.Name{Local: "xmlns"}, Value: Namespace}},
	}
	xmlquery.AddChild(doc, root)

	e.writeShell(AppendElement(AppendElement(root, TagShells), TagShell), env)

	if len(env.Submodels) > 0 {
		submodels := AppendElement(root, TagSubmodels)
		for _, sm := range env.Submodels {
			writeSubmodel(AppendElement(submodels, TagSubmodel), env, sm)
		}
	}

	if cds := model.CollectConceptDescriptions(env); len(cds) > 0 {
		container := AppendElement(root, TagConceptDescriptions)
		for _, cd := range cds {
			n := AppendElement(container, TagConceptDescription)
			AppendText(n, TagIdShort, cd.IdShort)
			AppendText(n, TagID, cd.ID)
			writeIec61360(n, iecFields{
				preferredName:      cd.PreferredName,
				shortName:          cd.ShortName,
				unit:               cd.Unit,
				dataType:           cd.DataType,
				definition:         cd.Description,
				sourceOfDefinition: cd.SourceOfDefinition,
			}, cd.IdShort)
		}
	}
	return doc
}

func (e *Encoder) writeShell(n *xmlquery.Node, env *model.Environment) {
	AppendText(n, TagIdShort, env.IdShort)
	AppendText(n, TagID, env.ID)

	info := AppendElement(n, TagAssetInformation)
	AppendText(info, TagAssetKind, string(env.AssetKind.OrDefault()))
	if v := strings.TrimSpace(env.GlobalAssetID); v != "" {
		AppendText(info, TagGlobalAssetID, v)
	}
	if ids := env.ResolveSpecificAssetIDs(e.cfg.SpecificAssetIDName, e.cfg.SpecificAssetIDValue); len(ids) > 0 {
		container := AppendElement(info, TagSpecificAssetIDs)
		for _, id := range ids {
			sa := AppendElement(container, TagSpecificAssetID)
			AppendText(sa, TagName, id.Name)
			AppendText(sa, TagValue, id.Value)
		}
	}
	if v := strings.TrimSpace(env.AssetType); v != "" {
		AppendText(info, TagAssetType, v)
	}

	if len(env.Submodels) > 0 {
		refs := AppendElement(n, TagSubmodels)
		for _, sm := range env.Submodels {
			writeReference(AppendElement(refs, TagReference),
				model.NewModelReference(model.KEYTYPES_SUBMODEL, sm.ResolvedID(env.ID)))
		}
	}
}

func writeSubmodel(n *xmlquery.Node, env *model.Environment, sm *model.Submodel) {
	AppendText(n, TagIdShort, sm.IdShort)
	AppendText(n, TagID, sm.ResolvedID(env.ID))
	AppendText(n, TagKind, "Instance")
	if v := strings.TrimSpace(sm.SemanticID); v != "" {
		writeReference(AppendElement(n, TagSemanticID), model.NewExternalReference(v))
	}
	if len(sm.Elements) > 0 {
		container := AppendElement(n, TagSubmodelElements)
		for _, el := range sm.Elements {
			writeElement(container, el)
		}
	}
}

func writeElement(parent *xmlquery.Node, el *model.Element) {
	tag, ok := TagFor(el.ModelType())
	if !ok {
		return
	}
	n := AppendElement(parent, tag)
	isRef := el.ModelType() == model.ModelTypeReferenceElement

	if v := strings.TrimSpace(el.Category); v != "" {
		AppendText(n, TagCategory, v)
	}
	AppendText(n, TagIdShort, el.IdShort)
	if v := strings.TrimSpace(el.Description); v != "" {
		writeLangStrings(AppendElement(n, TagDescription), TagLangStringText, model.NewLangStringSet(model.DefaultLanguage, v))
	}
	if v := strings.TrimSpace(el.SemanticID); v != "" && !isRef {
		writeReference(AppendElement(n, TagSemanticID), model.NewExternalReference(v))
	}
	writeCardinality(n, el.Cardinality.OrDefault())
	if !isRef && el.HasSemanticMetadata() {
		writeIec61360(n, iecFields{
			preferredName:      el.PreferredName,
			shortName:          el.ShortName,
			unit:               el.Unit,
			dataType:           el.DataType,
			definition:         el.Description,
			sourceOfDefinition: el.SourceOfDefinition,
		}, el.IdShort)
	}

	switch p := el.Payload.(type) {
	case *model.Property:
		t, ok := p.ResolvedType(el.DataType)
		if !ok {
			t = valuetype.XsdString
		}
		AppendText(n, TagValueType, string(t))
		AppendText(n, TagValue, p.Value)
	case *model.MultiLanguageProperty:
		writeLangStrings(AppendElement(n, TagValue), TagLangStringText, p.Value)
	case *model.File:
		AppendText(n, TagValue, p.Value)
		AppendText(n, TagContentType, p.ContentType)
	case *model.Collection:
		writeChildren(n, p.Children)
	case *model.List:
		AppendText(n, TagOrderRelevant, fmt.Sprintf("%t", p.OrderRelevant))
		AppendText(n, TagTypeValueListElement, p.ElementType())
		if t := p.ValueTypeListElement(); t != "" {
			AppendText(n, TagValueTypeListElement, string(t))
		}
		writeChildren(n, p.Children)
	case *model.ReferenceElement:
		if !p.Value.IsEmpty() || el.IsRequired() {
			writeReference(AppendElement(n, TagValue), p.Value)
		}
	}
}

func writeChildren(n *xmlquery.Node, children []*model.Element) {
	if len(children) == 0 {
		return
	}
	value := AppendElement(n, TagValue)
	for _, c := range children {
		writeElement(value, c)
	}
}

func writeCardinality(n *xmlquery.Node, c model.Cardinality) {
	q := AppendElement(AppendElement(n, TagQualifiers), TagQualifier)
	AppendText(q, TagType, model.CardinalityQualifierType)
	AppendText(q, TagValueType, string(valuetype.XsdString))
	AppendText(q, TagValue, string(c))
}

// writeReference writes type and keys of r into n. An empty key list is kept
// as an empty marker.
func writeReference(n *xmlquery.Node, r model.Reference) {
	AppendText(n, TagType, string(r.OrDefaultType()))
	keys := AppendElement(n, TagKeys)
	for _, k := range r.Keys {
		if strings.TrimSpace(k.Value) == "" {
			continue
		}
		key := AppendElement(keys, TagKey)
		keyType := k.Type
		if keyType == "" {
			keyType = model.KEYTYPES_GLOBAL_REFERENCE
		}
		AppendText(key, TagType, string(keyType))
		AppendText(key, TagValue, k.Value)
	}
}

// writeLangStrings writes one entry per non-blank language, sorted by tag.
func writeLangStrings(n *xmlquery.Node, entryTag string, s model.LangStringSet) {
	for _, lang := range s.Languages() {
		entry := AppendElement(n, entryTag)
		AppendText(entry, TagLanguage, lang)
		AppendText(entry, TagText, s[lang])
	}
}

type iecFields struct {
	preferredName      model.LangStringSet
	shortName          model.LangStringSet
	unit               string
	dataType           string
	definition         string
	sourceOfDefinition string
}

// writeIec61360 appends an embedded IEC 61360 data specification. The
// preferred name falls back to fallbackName.
func writeIec61360(n *xmlquery.Node, f iecFields, fallbackName string) {
	eds := AppendElement(AppendElement(n, TagEmbeddedDataSpecs), TagEmbeddedDataSpec)
	writeReference(AppendElement(eds, TagDataSpecification), model.NewExternalReference(DataSpecificationIec61360))
	iec := AppendElement(AppendElement(eds, TagDataSpecContent), TagIec61360)

	preferred := f.preferredName
	if preferred.IsEmpty() {
		preferred = model.NewLangStringSet(model.DefaultLanguage, fallbackName)
	}
	writeLangStrings(AppendElement(iec, TagPreferredName), TagLangPreferredName, preferred)
	if !f.shortName.IsEmpty() {
		writeLangStrings(AppendElement(iec, TagShortName), TagLangShortName, f.shortName)
	}
	if v := strings.TrimSpace(f.unit); v != "" {
		AppendText(iec, TagUnit, v)
	}
	if v := strings.TrimSpace(f.sourceOfDefinition); v != "" {
		AppendText(iec, TagSourceOfDefinition, v)
	}
	if dt, ok := valuetype.NormalizeIec61360(f.dataType); ok {
		AppendText(iec, TagDataType, string(dt))
	}
	if v := strings.TrimSpace(f.definition); v != "" {
		writeLangStrings(AppendElement(iec, TagDefinition), TagLangDefinition, model.NewLangStringSet(model.DefaultLanguage, v))
	}
}
