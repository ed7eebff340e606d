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
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
)

// dropEmptySemanticMetadata removes data specification entries and wrappers
// left without content, and blank semantic references.
func (e *Engine) dropEmptySemanticMetadata(root *xmlquery.Node) int {
	changes := 0
	for _, n := range selectAll(root, qEmbeddedSpec) {
		if !markup.HasElementChildren(n) {
			markup.Remove(n)
			changes++
		}
	}
	for _, n := range selectAll(root, qEmbeddedSpecs) {
		if len(markup.Children(n, markup.TagEmbeddedDataSpec)) == 0 {
			markup.Remove(n)
			changes++
		}
	}
	for _, n := range selectAll(root, qSemanticIDs) {
		if markup.IsBlank(n) {
			markup.Remove(n)
			changes++
		}
	}
	return changes
}

// dropEmptyValueLists removes value lists without any value/reference pair.
func (e *Engine) dropEmptyValueLists(root *xmlquery.Node) int {
	changes := 0
	for _, n := range selectAll(root, qValueLists) {
		pairs := markup.Child(n, markup.TagValueReferencePairs)
		if len(markup.Children(pairs, markup.TagValueReferencePair)) == 0 {
			markup.Remove(n)
			changes++
		}
	}
	return changes
}

// ensureReferenceKeys gives every reference a type and at least one complete
// key. References listed under a shell's submodels, or declared as model
// references, point at a submodel; all others are global.
func (e *Engine) ensureReferenceKeys(root *xmlquery.Node) int {
	changes := 0
	for _, ref := range selectAll(root, qReferences) {
		if !attached(ref) {
			continue
		}
		toSubmodel := ref.Parent != nil && ref.Parent.Data == markup.TagSubmodels
		refType := markup.ChildText(ref, markup.TagType)
		if refType == "" {
			refType = string(model.REFERENCETYPES_EXTERNAL_REFERENCE)
			if toSubmodel {
				refType = string(model.REFERENCETYPES_MODEL_REFERENCE)
			}
			t := markup.NewElement(ref, markup.TagType)
			markup.SetText(t, refType)
			markup.InsertFirst(ref, t)
			changes++
		}
		toSubmodel = toSubmodel || refType == string(model.REFERENCETYPES_MODEL_REFERENCE)

		keyType, value := model.KEYTYPES_GLOBAL_REFERENCE, e.cfg.PlaceholderURI
		if toSubmodel {
			keyType, value = model.KEYTYPES_SUBMODEL, e.enclosingSubmodelID(ref)
		}

		keys := markup.Child(ref, markup.TagKeys)
		if keys == nil {
			keys = markup.NewElement(ref, markup.TagKeys)
			markup.InsertAfterAny(ref, keys, referenceKeysBefore...)
		}
		entries := markup.Children(keys, markup.TagKey)
		if len(entries) == 0 {
			markup.SetText(keys, "")
			key := markup.AppendElement(keys, markup.TagKey)
			markup.AppendText(key, markup.TagType, string(keyType))
			markup.AppendText(key, markup.TagValue, value)
			changes++
			continue
		}
		for _, key := range entries {
			if t := markup.Child(key, markup.TagType); isBlankText(t) {
				if t == nil {
					t = markup.NewElement(key, markup.TagType)
					markup.InsertFirst(key, t)
				}
				markup.SetText(t, string(keyType))
				changes++
			}
			if v := markup.Child(key, markup.TagValue); isBlankText(v) {
				if v == nil {
					v = markup.AppendElement(key, markup.TagValue)
				}
				markup.SetText(v, value)
				changes++
			}
		}
	}
	return changes
}

// enclosingSubmodelID returns the id of the submodel containing n, or the
// placeholder URI.
func (e *Engine) enclosingSubmodelID(n *xmlquery.Node) string {
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur.Data == markup.TagSubmodel {
			if id := markup.ChildText(cur, markup.TagID); id != "" {
				return id
			}
		}
	}
	return e.cfg.PlaceholderURI
}

func (e *Engine) dropEmptyConceptDescriptions(root *xmlquery.Node) int {
	changes := 0
	for _, n := range selectAll(root, qConceptDescs) {
		if len(markup.Children(n, markup.TagConceptDescription)) == 0 {
			markup.Remove(n)
			changes++
		}
	}
	return changes
}

// ensureDataSpecificationSkeleton completes embedded data specifications that
// lack their reference, their content or the preferred name.
func (e *Engine) ensureDataSpecificationSkeleton(root *xmlquery.Node) int {
	changes := 0
	for _, spec := range selectAll(root, qEmbeddedSpec) {
		if markup.Child(spec, markup.TagDataSpecification) == nil {
			ref := newReference(spec, markup.TagDataSpecification, model.REFERENCETYPES_EXTERNAL_REFERENCE,
				model.KEYTYPES_GLOBAL_REFERENCE, markup.DataSpecificationIec61360)
			markup.InsertFirst(spec, ref)
			changes++
		}
		content := markup.Child(spec, markup.TagDataSpecContent)
		if content == nil {
			content = markup.AppendElement(spec, markup.TagDataSpecContent)
			changes++
		}
		if !markup.HasElementChildren(content) {
			markup.SetText(content, "")
			markup.AppendElement(content, markup.TagIec61360)
			changes++
		}
		iec := markup.Child(content, markup.TagIec61360)
		if iec == nil {
			continue
		}
		if markup.Child(iec, markup.TagPreferredName) == nil {
			pn := markup.NewElement(iec, markup.TagPreferredName)
			appendLangString(pn, e.language, nearestText(spec, e.cfg.PlaceholderText))
			markup.InsertFirst(iec, pn)
			changes++
		}
	}
	return changes
}

// dropEmptyContainers removes operation variable wrappers without variables,
// element wrappers without a recognized element, and value slots that are
// left empty.
func (e *Engine) dropEmptyContainers(root *xmlquery.Node) int {
	changes := 0
	for _, n := range selectAll(root, qOperationVars) {
		if len(markup.Children(n, markup.TagOperationVariable)) == 0 {
			markup.Remove(n)
			changes++
		}
	}
	for _, n := range selectAll(root, qElementWrappers) {
		if !hasChildIn(n, markup.SubmodelElementTags) {
			markup.Remove(n)
			changes++
		}
	}
	for _, n := range selectAll(root, qMultiLanguage) {
		if v := markup.Child(n, markup.TagValue); v != nil && !markup.HasElementChildren(v) {
			markup.Remove(v)
			changes++
		}
	}
	// Blank optional slots whose schema type has no empty form.
	for _, expr := range []*xpath.Expr{qReferenceElems, qFiles} {
		for _, n := range selectAll(root, expr) {
			if v := markup.Child(n, markup.TagValue); v != nil && markup.IsBlank(v) {
				markup.Remove(v)
				changes++
			}
		}
	}
	return changes
}

func validContentType(s string) bool {
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(s))
	return err == nil && strings.Count(mediaType, "/") == 1 &&
		!strings.HasPrefix(mediaType, "/") && !strings.HasSuffix(mediaType, "/")
}

// extraContentTypes covers extensions the platform tables commonly lack.
var extraContentTypes = map[string]string{
	".aasx": "application/asset-administration-shell-package",
	".step": "application/step",
	".stp":  "application/step",
	".zip":  "application/zip",
	".csv":  "text/csv",
	".md":   "text/markdown",
	".txt":  "text/plain",
}

// inferContentType derives a media type from the extension of a file
// reference, falling back to application/octet-stream.
func inferContentType(ref string) string {
	if u, err := url.Parse(strings.TrimSpace(ref)); err == nil && u.Path != "" {
		ref = u.Path
	}
	ext := strings.ToLower(path.Ext(ref))
	if ext == "" {
		return "application/octet-stream"
	}
	if t, ok := extraContentTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if mediaType, _, err := mime.ParseMediaType(t); err == nil {
			return mediaType
		}
	}
	return "application/octet-stream"
}
