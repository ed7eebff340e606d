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

// Package repair turns a markup document that fails schema validation into
// one that passes, through a fixed sequence of structural transforms.
//
// Every pass scans the whole document and is idempotent. The engine parses
// its input into a private DOM, so callers keep their text untouched and
// receive a new document.
package repair

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
)

type pass struct {
	name  string
	apply func(e *Engine, root *xmlquery.Node) int
}

// passes run in this order. Later passes rely on the structure earlier ones
// leave behind; for instance value slots exist before types are ordered.
var passes = []pass{
	{"fill-required-values", (*Engine).fillRequiredValues},
	{"text-blocks", (*Engine).ensureTextBlocks},
	{"empty-semantic-metadata", (*Engine).dropEmptySemanticMetadata},
	{"definition-text", (*Engine).ensureDefinitionText},
	{"empty-value-lists", (*Engine).dropEmptyValueLists},
	{"preferred-name-text", (*Engine).ensurePreferredNameText},
	{"reference-keys", (*Engine).ensureReferenceKeys},
	{"specific-asset-ids", (*Engine).ensureSpecificAssetIDs},
	{"asset-type", (*Engine).ensureAssetType},
	{"empty-concept-descriptions", (*Engine).dropEmptyConceptDescriptions},
	{"idshorts", (*Engine).sanitizeIdShorts},
	{"data-specification-skeleton", (*Engine).ensureDataSpecificationSkeleton},
	{"empty-containers", (*Engine).dropEmptyContainers},
	{"normalize", (*Engine).normalize},
}

// PassNames returns the pass names in execution order.
func PassNames() []string {
	out := make([]string, len(passes))
	for i, p := range passes {
		out[i] = p.name
	}
	return out
}

// PassReport is the number of edits a single pass made.
type PassReport struct {
	Name    string `json:"name"`
	Changes int    `json:"changes"`
}

// Result is a repaired document.
type Result struct {
	Text   string       `json:"-"`
	Passes []PassReport `json:"passes"`
}

// Changed reports whether any pass edited the document.
func (r *Result) Changed() bool {
	for _, p := range r.Passes {
		if p.Changes > 0 {
			return true
		}
	}
	return false
}

// Engine applies the repair passes with the placeholders from its configuration.
type Engine struct {
	cfg      common.RepairConfig
	language string
}

// New creates an Engine. Blank placeholders fall back to built-in defaults.
func New(cfg common.RepairConfig) *Engine {
	if strings.TrimSpace(cfg.PlaceholderText) == "" {
		cfg.PlaceholderText = "N/A"
	}
	if strings.TrimSpace(cfg.PlaceholderURI) == "" {
		cfg.PlaceholderURI = "https://example.com/placeholder"
	}
	if strings.TrimSpace(cfg.PlaceholderFilePath) == "" {
		cfg.PlaceholderFilePath = "/aasx/files/placeholder.txt"
	}
	return &Engine{cfg: cfg, language: normalizeLanguage(cfg.DefaultLanguage, "en")}
}

// Repair runs every pass over text and returns the serialized result.
func (e *Engine) Repair(text string) (*Result, error) {
	doc, err := markup.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("repair: %w", err)
	}
	res := &Result{Passes: make([]PassReport, 0, len(passes))}
	changed := 0
	for _, p := range passes {
		n := p.apply(e, doc)
		if n > 0 {
			changed++
			logger.LogDebug("repair pass changed document", zap.String("pass", p.name), zap.Int("changes", n))
		}
		res.Passes = append(res.Passes, PassReport{Name: p.name, Changes: n})
	}
	res.Text = markup.Serialize(doc)
	logger.LogInfo("repair finished", zap.Int("passesChanged", changed), zap.Int("passes", len(passes)))
	return res, nil
}

func (e *Engine) placeholders() valuetype.Placeholders {
	return valuetype.Placeholders{Text: e.cfg.PlaceholderText, URI: e.cfg.PlaceholderURI}
}

// normalizeLanguage returns the canonical form of a BCP 47 tag, or fallback
// when tag does not parse.
func normalizeLanguage(tag, fallback string) string {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil || t == language.Und {
		return fallback
	}
	return t.String()
}
