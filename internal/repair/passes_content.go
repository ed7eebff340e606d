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

package repair

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
)

// fillRequiredValues writes a placeholder into every required value slot that
// is absent or blank.
func (e *Engine) fillRequiredValues(root *xmlquery.Node) int {
	changes := 0
	for _, n := range selectAll(root, qProperties) {
		if !isRequired(n) {
			continue
		}
		v := markup.Child(n, markup.TagValue)
		if !isBlankText(v) {
			continue
		}
		if v == nil {
			v = markup.NewElement(n, markup.TagValue)
			markup.InsertAfterAny(n, v, propertyValueBefore...)
		}
		markup.SetText(v, valuetype.Placeholder(propertyType(n), e.placeholders()))
		changes++
	}
	for _, n := range selectAll(root, qFiles) {
		if !isRequired(n) {
			continue
		}
		v := markup.Child(n, markup.TagValue)
		if !isBlankText(v) {
			continue
		}
		if v == nil {
			v = markup.NewElement(n, markup.TagValue)
			markup.InsertAfterAny(n, v, elementHeader...)
		}
		markup.SetText(v, e.cfg.PlaceholderFilePath)
		changes++
	}
	for _, n := range selectAll(root, qMultiLanguage) {
		if !isRequired(n) {
			continue
		}
		v := markup.Child(n, markup.TagValue)
		if v != nil && markup.HasElementChildren(v) {
			continue
		}
		if v == nil {
			v = markup.NewElement(n, markup.TagValue)
			markup.InsertAfterAny(n, v, elementHeader...)
		}
		markup.SetText(v, "")
		appendLangString(v, e.language, e.cfg.PlaceholderText)
		changes++
	}
	for _, n := range selectAll(root, qReferenceElems) {
		if !isRequired(n) {
			continue
		}
		v := markup.Child(n, markup.TagValue)
		if v != nil && markup.HasElementChildren(v) {
			continue
		}
		ref := newReference(n, markup.TagValue, model.REFERENCETYPES_EXTERNAL_REFERENCE, model.KEYTYPES_GLOBAL_REFERENCE, e.cfg.PlaceholderURI)
		if v != nil {
			markup.InsertBefore(v, ref)
			markup.Remove(v)
		} else {
			markup.InsertAfterAny(n, ref, elementHeader...)
		}
		changes++
	}
	return changes
}

// ensureTextBlocks gives every description and display name block at least
// one entry, using the owner's idShort as text.
func (e *Engine) ensureTextBlocks(root *xmlquery.Node) int {
	changes := 0
	for _, n := range selectAll(root, qTextBlocks) {
		if markup.HasElementChildren(n) {
			continue
		}
		markup.SetText(n, "")
		appendLangString(n, e.language, nearestText(n, e.cfg.PlaceholderText))
		changes++
	}
	return changes
}

func (e *Engine) ensureDefinitionText(root *xmlquery.Node) int {
	return e.fillLangBlocks(selectAll(root, qIecDefinitions))
}

func (e *Engine) ensurePreferredNameText(root *xmlquery.Node) int {
	return e.fillLangBlocks(selectAll(root, qIecPreferred))
}

func (e *Engine) fillLangBlocks(blocks []*xmlquery.Node) int {
	changes := 0
	for _, n := range blocks {
		if markup.HasElementChildren(n) {
			continue
		}
		markup.SetText(n, "")
		appendLangString(n, e.language, nearestText(n, e.cfg.PlaceholderText))
		changes++
	}
	return changes
}

// ensureSpecificAssetIDs keeps every specific asset id list non-empty and
// every entry named and valued.
func (e *Engine) ensureSpecificAssetIDs(root *xmlquery.Node) int {
	changes := 0
	for _, list := range selectAll(root, qSpecificIDLists) {
		info := list.Parent
		globalID := markup.ChildText(info, markup.TagGlobalAssetID)
		if globalID == "" {
			globalID = e.cfg.PlaceholderURI
		}
		name := nearestText(list, "assetId")

		entries := markup.Children(list, markup.TagSpecificAssetID)
		if len(entries) == 0 {
			entry := markup.AppendElement(list, markup.TagSpecificAssetID)
			markup.AppendText(entry, markup.TagName, name)
			markup.AppendText(entry, markup.TagValue, globalID)
			changes++
			continue
		}
		for _, entry := range entries {
			if n := markup.Child(entry, markup.TagName); isBlankText(n) {
				if n == nil {
					n = markup.NewElement(entry, markup.TagName)
					markup.InsertAfterAny(entry, n, specificIDNameAfter...)
				}
				markup.SetText(n, name)
				changes++
			}
			if v := markup.Child(entry, markup.TagValue); isBlankText(v) {
				if v == nil {
					v = markup.NewElement(entry, markup.TagValue)
					markup.InsertAfterAny(entry, v, specificIDValAfter...)
				}
				markup.SetText(v, globalID)
				changes++
			}
		}
	}
	return changes
}

func (e *Engine) ensureAssetType(root *xmlquery.Node) int {
	changes := 0
	for _, n := range selectAll(root, qAssetTypes) {
		if isBlankText(n) {
			markup.SetText(n, e.cfg.PlaceholderText)
			changes++
		}
	}
	return changes
}

// sanitizeIdShorts rewrites every idShort to the identifier pattern.
func (e *Engine) sanitizeIdShorts(root *xmlquery.Node) int {
	changes := 0
	for _, n := range selectAll(root, qIdShorts) {
		current := strings.TrimSpace(n.InnerText())
		if fixed := model.SanitizeIdShort(current); fixed != n.InnerText() {
			markup.SetText(n, fixed)
			changes++
		}
	}
	return changes
}

// normalize canonicalizes language tags and fills empty language-tagged text,
// drops incomplete thumbnails, and settles property types and file content
// types.
func (e *Engine) normalize(root *xmlquery.Node) int {
	changes := 0
	for _, n := range selectAll(root, qLanguages) {
		current := n.InnerText()
		if fixed := normalizeLanguage(current, e.language); fixed != current {
			markup.SetText(n, fixed)
			changes++
		}
	}
	for _, n := range selectAll(root, qLangStrings) {
		if markup.Child(n, markup.TagLanguage) == nil {
			markup.InsertFirst(n, languageNode(n, e.language))
			changes++
		}
		text := markup.Child(n, markup.TagText)
		if !isBlankText(text) {
			continue
		}
		if text == nil {
			text = markup.AppendElement(n, markup.TagText)
		}
		markup.SetText(text, nearestText(n, e.cfg.PlaceholderText))
		changes++
	}
	for _, n := range selectAll(root, qThumbnails) {
		if markup.ChildText(n, markup.TagPath) == "" || markup.ChildText(n, markup.TagContentType) == "" {
			markup.Remove(n)
			changes++
		}
	}
	for _, n := range selectAll(root, qProperties) {
		changes += ensurePropertyType(n)
	}
	for _, n := range selectAll(root, qFiles) {
		changes += ensureContentType(n)
	}
	return changes
}

func languageNode(like *xmlquery.Node, lang string) *xmlquery.Node {
	n := markup.NewElement(like, markup.TagLanguage)
	markup.SetText(n, lang)
	return n
}

// ensurePropertyType makes sure a canonical type declaration exists and sits
// before the value.
func ensurePropertyType(n *xmlquery.Node) int {
	changes := 0
	t := string(propertyType(n))
	value := markup.Child(n, markup.TagValue)
	vt := markup.Child(n, markup.TagValueType)
	switch {
	case vt == nil:
		vt = markup.NewElement(n, markup.TagValueType)
		markup.SetText(vt, t)
		if value != nil {
			markup.InsertBefore(value, vt)
		} else {
			markup.InsertAfterAny(n, vt, elementHeader...)
		}
		return 1
	case vt.InnerText() != t:
		markup.SetText(vt, t)
		changes++
	}
	if value != nil && precedes(value, vt) {
		markup.Remove(vt)
		markup.InsertBefore(value, vt)
		changes++
	}
	return changes
}

func ensureContentType(n *xmlquery.Node) int {
	ct := markup.Child(n, markup.TagContentType)
	if ct != nil && validContentType(ct.InnerText()) {
		return 0
	}
	if ct == nil {
		ct = markup.NewElement(n, markup.TagContentType)
		markup.InsertAfterAny(n, ct, fileTypeBefore...)
	}
	markup.SetText(ct, inferContentType(markup.ChildText(n, markup.TagValue)))
	return 1
}
