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

// Package record projects the element tree into the AAS v3.0 JSON record form.
// Every idShort written is sanitized to the identifier pattern, so the record
// form never fails on identifiers even where the markup form still needs repair.
package record

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const dataSpecificationIec61360 = "https://admin-shell.io/DataSpecificationTemplates/DataSpecificationIec61360/3/0"

// Encoder projects an element tree into the record form.
type Encoder struct {
	cfg common.EncoderConfig
}

// NewEncoder creates an Encoder using the shell header defaults from cfg.
func NewEncoder(cfg common.EncoderConfig) *Encoder {
	return &Encoder{cfg: cfg}
}

// Encode serializes env as indented JSON.
func (e *Encoder) Encode(env *model.Environment) (*Document, error) {
	if env == nil {
		return nil, fmt.Errorf("encode record: %w", common.NewErrBadRequest("no environment"))
	}
	fields := make(map[string]model.Path)
	out := environmentJSON{
		AssetAdministrationShells: []shellJSON{e.shell(env)},
	}
	for i, sm := range env.Submodels {
		field := "submodels." + strconv.Itoa(i)
		fields[field] = model.Path{Submodel: sm.IdShort}
		out.Submodels = append(out.Submodels, submodel(env, sm, field, fields))
	}
	for _, cd := range model.CollectConceptDescriptions(env) {
		out.ConceptDescriptions = append(out.ConceptDescriptions, conceptDescriptionJSON{
			ModelType: "ConceptDescription",
			IdShort:   model.SanitizeIdShort(cd.IdShort),
			ID:        cd.ID,
			EmbeddedDataSpecifications: []edsJSON{iec61360(cd.PreferredName, cd.ShortName,
				cd.Unit, cd.DataType, cd.Description, cd.SourceOfDefinition, cd.IdShort)},
		})
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return &Document{text: string(b), fields: fields}, nil
}

func (e *Encoder) shell(env *model.Environment) shellJSON {
	s := shellJSON{
		ModelType: "AssetAdministrationShell",
		IdShort:   model.SanitizeIdShort(env.IdShort),
		ID:        env.ID,
		AssetInformation: assetInformationJSON{
			AssetKind:     string(env.AssetKind.OrDefault()),
			GlobalAssetID: strings.TrimSpace(env.GlobalAssetID),
			AssetType:     strings.TrimSpace(env.AssetType),
		},
	}
	for _, id := range env.ResolveSpecificAssetIDs(e.cfg.SpecificAssetIDName, e.cfg.SpecificAssetIDValue) {
		s.AssetInformation.SpecificAssetIDs = append(s.AssetInformation.SpecificAssetIDs, specificAssetIDJSON(id))
	}
	for _, sm := range env.Submodels {
		s.Submodels = append(s.Submodels, reference(model.NewModelReference(model.KEYTYPES_SUBMODEL, sm.ResolvedID(env.ID))))
	}
	return s
}

func submodel(env *model.Environment, sm *model.Submodel, field string, fields map[string]model.Path) submodelJSON {
	out := submodelJSON{
		ModelType: "Submodel",
		IdShort:   model.SanitizeIdShort(sm.IdShort),
		ID:        sm.ResolvedID(env.ID),
		Kind:      "Instance",
	}
	if v := strings.TrimSpace(sm.SemanticID); v != "" {
		ref := reference(model.NewExternalReference(v))
		out.SemanticID = &ref
	}
	out.SubmodelElements = elements(sm.Elements, model.Path{Submodel: sm.IdShort}, field+".submodelElements", fields)
	return out
}

func elements(children []*model.Element, parent model.Path, field string, fields map[string]model.Path) []elementJSON {
	var out []elementJSON
	for _, el := range children {
		if _, ok := supported[el.ModelType()]; !ok {
			continue
		}
		f := field + "." + strconv.Itoa(len(out))
		p := parent.Child(el.IdShort)
		fields[f] = p
		out = append(out, element(el, p, f, fields))
	}
	return out
}

var supported = map[model.ModelType]struct{}{
	model.ModelTypeProperty:              {},
	model.ModelTypeMultiLanguageProperty: {},
	model.ModelTypeCollection:            {},
	model.ModelTypeList:                  {},
	model.ModelTypeFile:                  {},
	model.ModelTypeReferenceElement:      {},
}

func element(el *model.Element, path model.Path, field string, fields map[string]model.Path) elementJSON {
	isRef := el.ModelType() == model.ModelTypeReferenceElement
	out := elementJSON{
		ModelType: string(el.ModelType()),
		Category:  strings.TrimSpace(el.Category),
		IdShort:   model.SanitizeIdShort(el.IdShort),
		Qualifiers: []qualifierJSON{{
			Type:      model.CardinalityQualifierType,
			ValueType: string(valuetype.XsdString),
			Value:     string(el.Cardinality.OrDefault()),
		}},
	}
	if v := strings.TrimSpace(el.Description); v != "" {
		out.Description = langStrings(model.NewLangStringSet(model.DefaultLanguage, v))
	}
	if v := strings.TrimSpace(el.SemanticID); v != "" && !isRef {
		ref := reference(model.NewExternalReference(v))
		out.SemanticID = &ref
	}
	if !isRef && el.HasSemanticMetadata() {
		out.EmbeddedDataSpecifications = []edsJSON{iec61360(el.PreferredName, el.ShortName,
			el.Unit, el.DataType, el.Description, el.SourceOfDefinition, el.IdShort)}
	}

	switch p := el.Payload.(type) {
	case *model.Property:
		if t, ok := p.ResolvedType(el.DataType); ok {
			out.ValueType = string(t)
		}
		if p.Value != "" {
			out.Value = p.Value
		}
	case *model.MultiLanguageProperty:
		if ls := langStrings(p.Value); len(ls) > 0 {
			out.Value = ls
		}
	case *model.File:
		if v := strings.TrimSpace(p.Value); v != "" {
			out.Value = v
		}
		out.ContentType = strings.TrimSpace(p.ContentType)
	case *model.Collection:
		if children := elements(p.Children, path, field+".value", fields); len(children) > 0 {
			out.Value = children
		}
	case *model.List:
		orderRelevant := p.OrderRelevant
		out.OrderRelevant = &orderRelevant
		out.TypeValueListElement = p.ElementType()
		out.ValueTypeListElement = string(p.ValueTypeListElement())
		if children := elements(p.Children, path, field+".value", fields); len(children) > 0 {
			out.Value = children
		}
	case *model.ReferenceElement:
		if !p.Value.IsEmpty() {
			ref := reference(p.Value)
			out.Value = &ref
		}
	}
	return out
}

func reference(r model.Reference) referenceJSON {
	out := referenceJSON{Type: string(r.OrDefaultType()), Keys: []keyJSON{}}
	for _, k := range r.Keys {
		if strings.TrimSpace(k.Value) == "" {
			continue
		}
		keyType := k.Type
		if keyType == "" {
			keyType = model.KEYTYPES_GLOBAL_REFERENCE
		}
		out.Keys = append(out.Keys, keyJSON{Type: string(keyType), Value: k.Value})
	}
	return out
}

func langStrings(s model.LangStringSet) []langStringJSON {
	var out []langStringJSON
	for _, lang := range s.Languages() {
		out = append(out, langStringJSON{Language: lang, Text: s[lang]})
	}
	return out
}

func iec61360(preferred, short model.LangStringSet, unit, dataType, definition, source, fallbackName string) edsJSON {
	if preferred.IsEmpty() {
		preferred = model.NewLangStringSet(model.DefaultLanguage, fallbackName)
	}
	content := iec61360JSON{
		ModelType:          "DataSpecificationIec61360",
		PreferredName:      langStrings(preferred),
		ShortName:          langStrings(short),
		Unit:               strings.TrimSpace(unit),
		SourceOfDefinition: strings.TrimSpace(source),
	}
	if dt, ok := valuetype.NormalizeIec61360(dataType); ok {
		content.DataType = string(dt)
	}
	if v := strings.TrimSpace(definition); v != "" {
		content.Definition = langStrings(model.NewLangStringSet(model.DefaultLanguage, v))
	}
	return edsJSON{
		DataSpecification:        reference(model.NewExternalReference(dataSpecificationIec61360)),
		DataSpecificationContent: content,
	}
}
