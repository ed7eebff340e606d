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

package template

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
)

// ErrTemplateNotFound is returned for an unknown template name.
var ErrTemplateNotFound = errors.New("template not found")

//go:embed builtin.yaml
var builtinYAML []byte

// Catalog lists and fetches templates.
type Catalog interface {
	List(ctx context.Context) ([]Summary, error)
	Get(ctx context.Context, name string) (*Template, error)
}

// StaticCatalog serves a fixed, ordered set of templates.
type StaticCatalog struct {
	templates []*Template
	byName    map[string]*Template
}

// ParseCatalog reads a YAML catalog document with a top-level "templates"
// list. Every template is instantiated once so broken definitions are
// rejected here rather than on first use.
func ParseCatalog(data []byte) (*StaticCatalog, error) {
	var doc struct {
		Templates []*Template `yaml:"templates"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	c := &StaticCatalog{byName: make(map[string]*Template, len(doc.Templates))}
	for _, t := range doc.Templates {
		if _, dup := c.byName[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate template %q", ErrInvalidTemplate, t.Name)
		}
		if _, err := t.Submodel(""); err != nil {
			return nil, err
		}
		c.templates = append(c.templates, t)
		c.byName[t.Name] = t
	}
	return c, nil
}

var (
	builtinOnce    sync.Once
	builtinCatalog *StaticCatalog
)

// Builtin returns the catalog of hand-authored skeletons shipped with the
// editor: Nameplate, TechnicalData, ContactInformation and Documentation.
func Builtin() *StaticCatalog {
	builtinOnce.Do(func() {
		c, err := ParseCatalog(builtinYAML)
		if err != nil {
			panic("built-in template catalog: " + err.Error())
		}
		builtinCatalog = c
	})
	return builtinCatalog
}

// List implements Catalog.
func (c *StaticCatalog) List(_ context.Context) ([]Summary, error) {
	out := make([]Summary, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, t.Summary())
	}
	return out, nil
}

// Get implements Catalog.
func (c *StaticCatalog) Get(_ context.Context, name string) (*Template, error) {
	t, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return t, nil
}

// FallbackCatalog asks Primary first and answers from Fallback when Primary
// is missing or fails. An unknown name in a reachable Primary is still
// looked up in Fallback.
type FallbackCatalog struct {
	Primary  Catalog
	Fallback Catalog
}

// NewFallbackCatalog wraps primary with the built-in catalog. primary may be nil.
func NewFallbackCatalog(primary Catalog) *FallbackCatalog {
	return &FallbackCatalog{Primary: primary, Fallback: Builtin()}
}

// List implements Catalog.
func (c *FallbackCatalog) List(ctx context.Context) ([]Summary, error) {
	if c.Primary != nil {
		list, err := c.Primary.List(ctx)
		if err == nil {
			return list, nil
		}
		logger.LogWarning("template catalog unavailable, using built-in templates", zap.Error(err))
	}
	return c.Fallback.List(ctx)
}

// Get implements Catalog.
func (c *FallbackCatalog) Get(ctx context.Context, name string) (*Template, error) {
	if c.Primary != nil {
		t, err := c.Primary.Get(ctx, name)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, ErrTemplateNotFound) {
			logger.LogWarning("template catalog unavailable, using built-in templates",
				zap.String("template", name), zap.Error(err))
		}
	}
	return c.Fallback.Get(ctx, name)
}
