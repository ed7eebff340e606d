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

// Package aasx reads and writes AASX packages: zip containers holding one
// primary AAS markup document, optional attachments and the OPC relationship
// parts that tie them together.
package aasx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
)

// Well-known part names.
const (
	ContentTypesPart = "[Content_Types].xml"
	RootRelsPart     = "_rels/.rels"
	OriginPart       = "aasx/aasx-origin"
	SpecPart         = "aasx/aas/aas.aas.xml"
	RecordPart       = "aasx/aas/aas.aas.json"
)

// DefaultMaxBytes bounds the decompressed size of an archive read by Read.
const DefaultMaxBytes int64 = 256 << 20

var (
	// ErrNoMarkup is returned when an archive holds no markup document.
	ErrNoMarkup = errors.New("no markup document")
	// ErrTooLarge is returned when the decompressed parts exceed the limit.
	ErrTooLarge = errors.New("archive exceeds the decompressed size limit")
)

// Package is the content of an AASX archive.
type Package struct {
	// Entry is the name of the primary markup part.
	Entry string
	// Markup is the text of the primary markup part.
	Markup string
	// Record is the text of an optional record-form part.
	Record string
	// Thumbnail is the part name of the package thumbnail, if any.
	Thumbnail string
	// Attachments holds every other part by name.
	Attachments map[string][]byte
}

// Read opens an archive and selects its primary markup part: the target of the
// aas-spec relationship when the origin relationship exists, else a part whose
// name marks it as the environment, else the first XML part that is not an
// OPC descriptor. The parts may decompress to at most DefaultMaxBytes.
func Read(data []byte) (*Package, error) {
	return ReadLimited(data, DefaultMaxBytes)
}

// ReadLimited is Read with an explicit bound on the total decompressed size
// of all parts. maxBytes <= 0 selects DefaultMaxBytes.
func ReadLimited(data []byte, maxBytes int64) (*Package, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("invalid AASX archive: %w", err)
	}

	parts := make(map[string][]byte, len(r.File))
	var order []string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		content, err := readEntry(f, maxBytes)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		maxBytes -= int64(len(content))
		name := strings.TrimPrefix(f.Name, "/")
		parts[name] = content
		order = append(order, name)
	}

	pkg := &Package{Attachments: make(map[string][]byte)}
	pkg.Entry, pkg.Thumbnail = selectByRelationships(parts)
	if pkg.Entry == "" {
		pkg.Entry = selectByName(order)
	}
	if pkg.Entry == "" {
		return nil, fmt.Errorf("%w among %d parts", ErrNoMarkup, len(order))
	}
	pkg.Markup = string(parts[pkg.Entry])

	for _, name := range order {
		switch {
		case name == pkg.Entry, isDescriptor(name):
		case strings.EqualFold(path.Ext(name), ".json") && pkg.Record == "":
			pkg.Record = string(parts[name])
		default:
			pkg.Attachments[name] = parts[name]
		}
	}
	logger.LogInfo("read AASX package", zap.String("entry", pkg.Entry), zap.Int("parts", len(order)))
	return pkg, nil
}

// readEntry reads one part, refusing to decompress more than remaining bytes.
// The declared size in the zip header is not trusted.
func readEntry(f *zip.File, remaining int64) ([]byte, error) {
	if f.UncompressedSize64 > uint64(remaining) {
		return nil, fmt.Errorf("%w (%d bytes declared)", ErrTooLarge, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	content, err := io.ReadAll(io.LimitReader(rc, remaining+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > remaining {
		return nil, ErrTooLarge
	}
	return content, nil
}

func selectByRelationships(parts map[string][]byte) (entry, thumbnail string) {
	root, ok := parts[RootRelsPart]
	if !ok {
		return "", ""
	}
	rels, err := parseRels(string(root))
	if err != nil {
		logger.LogWarning("ignoring unreadable package relationships", zap.Error(err))
		return "", ""
	}
	var origin string
	for _, r := range rels {
		switch r.Type {
		case RelTypeOrigin:
			origin = resolveTarget("/", r.Target)
		case RelTypeThumbnail:
			thumbnail = resolveTarget("/", r.Target)
		}
	}
	if origin == "" {
		return "", thumbnail
	}
	originRels, ok := parts[relsPartFor(origin)]
	if !ok {
		return "", thumbnail
	}
	specs, err := parseRels(string(originRels))
	if err != nil {
		return "", thumbnail
	}
	for _, r := range specs {
		if r.Type != RelTypeSpec {
			continue
		}
		target := resolveTarget(origin, r.Target)
		if _, ok := parts[target]; ok && isMarkup(target) {
			return target, thumbnail
		}
	}
	return "", thumbnail
}

func selectByName(order []string) string {
	for _, name := range order {
		lower := strings.ToLower(path.Base(name))
		if isMarkup(name) && (strings.Contains(lower, "aasenv") || strings.HasSuffix(lower, ".aas.xml")) {
			return name
		}
	}
	for _, name := range order {
		if isMarkup(name) && !isDescriptor(name) {
			return name
		}
	}
	return ""
}

func isMarkup(name string) bool {
	return strings.EqualFold(path.Ext(name), ".xml")
}

// isDescriptor reports whether name is an OPC bookkeeping part.
func isDescriptor(name string) bool {
	return name == ContentTypesPart || strings.HasSuffix(name, ".rels") || name == OriginPart
}

// Write builds an AASX archive. The markup becomes the aas-spec part,
// attachments are linked as supplementary files.
func Write(pkg *Package) ([]byte, error) {
	if strings.TrimSpace(pkg.Markup) == "" {
		return nil, fmt.Errorf("package has no markup document")
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	names := sortedKeys(pkg.Attachments)
	defaults := map[string]string{
		"rels": "application/vnd.openxmlformats-package.relationships+xml",
		"xml":  "text/xml",
	}
	for _, name := range names {
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
		if ext == "" {
			continue
		}
		if _, ok := defaults[ext]; !ok {
			ct := mime.TypeByExtension("." + ext)
			if ct == "" {
				ct = "application/octet-stream"
			}
			defaults[ext] = ct
		}
	}
	overrides := map[string]string{"/" + OriginPart: "text/plain"}
	if pkg.Record != "" {
		defaults["json"] = "application/json"
	}

	rootRels := []Relationship{{ID: "rOrigin", Type: RelTypeOrigin, Target: "/" + OriginPart}}
	if pkg.Thumbnail != "" {
		if _, ok := pkg.Attachments[pkg.Thumbnail]; ok {
			rootRels = append(rootRels, Relationship{ID: "rThumb", Type: RelTypeThumbnail, Target: "/" + pkg.Thumbnail})
		}
	}
	var suppl []Relationship
	for i, name := range names {
		if name == pkg.Thumbnail {
			continue
		}
		suppl = append(suppl, Relationship{ID: fmt.Sprintf("rSuppl%d", i+1), Type: RelTypeSuppl, Target: "/" + name})
	}

	entries := []part{
		{ContentTypesPart, []byte(renderContentTypes(defaults, overrides))},
		{RootRelsPart, []byte(renderRels(rootRels))},
		{OriginPart, []byte("Intentionally empty.")},
		{relsPartFor(OriginPart), []byte(renderRels([]Relationship{{ID: "rSpec", Type: RelTypeSpec, Target: "/" + SpecPart}}))},
		{SpecPart, []byte(pkg.Markup)},
	}
	if len(suppl) > 0 {
		entries = append(entries, part{relsPartFor(SpecPart), []byte(renderRels(suppl))})
	}
	if pkg.Record != "" {
		entries = append(entries, part{RecordPart, []byte(pkg.Record)})
	}
	for _, name := range names {
		entries = append(entries, part{name, pkg.Attachments[name]})
	}

	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", e.name, err)
		}
		if _, err := w.Write(e.content); err != nil {
			return nil, fmt.Errorf("write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type part struct {
	name    string
	content []byte
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
