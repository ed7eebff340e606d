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

package model

import (
	"fmt"
	"strings"
)

// PathSeparator separates the segments of a Path in its string form.
const PathSeparator = "/"

// Path addresses an element: the owning submodel idShort followed by the
// idShort of each ancestor and finally the element itself. A Path with no
// element segments addresses the submodel root.
type Path struct {
	Submodel string   `json:"submodel,omitempty"`
	Elements []string `json:"elements,omitempty"`
}

// NewPath creates a path below the submodel.
func NewPath(submodel string, elements ...string) Path {
	return Path{Submodel: submodel, Elements: elements}
}

// ParsePath parses "Submodel/a/b". Empty segments are rejected.
func ParsePath(s string) (Path, error) {
	s = strings.Trim(strings.TrimSpace(s), PathSeparator)
	if s == "" {
		return Path{}, fmt.Errorf("empty element path")
	}
	parts := strings.Split(s, PathSeparator)
	for _, p := range parts {
		if p == "" {
			return Path{}, fmt.Errorf("element path %q contains an empty segment", s)
		}
	}
	return Path{Submodel: parts[0], Elements: parts[1:]}, nil
}

// String renders the path with PathSeparator.
func (p Path) String() string {
	return strings.Join(p.segments(), PathSeparator)
}

// Human renders the path for display, e.g. "Nameplate > Address > Street".
func (p Path) Human() string {
	return strings.Join(p.segments(), " > ")
}

func (p Path) segments() []string {
	return append([]string{p.Submodel}, p.Elements...)
}

// IsRoot reports whether p addresses a submodel rather than an element.
func (p Path) IsRoot() bool { return len(p.Elements) == 0 }

// Last returns the final idShort, or the submodel idShort for a root path.
func (p Path) Last() string {
	if p.IsRoot() {
		return p.Submodel
	}
	return p.Elements[len(p.Elements)-1]
}

// Parent returns the path of the containing element or submodel.
func (p Path) Parent() Path {
	if p.IsRoot() {
		return p
	}
	return Path{Submodel: p.Submodel, Elements: append([]string(nil), p.Elements[:len(p.Elements)-1]...)}
}

// Child returns the path of a direct child named idShort.
func (p Path) Child(idShort string) Path {
	elements := make([]string, len(p.Elements), len(p.Elements)+1)
	copy(elements, p.Elements)
	return Path{Submodel: p.Submodel, Elements: append(elements, idShort)}
}

// Ancestors returns the paths of every container above p, outermost first,
// excluding the submodel root and p itself.
func (p Path) Ancestors() []Path {
	var out []Path
	for i := 1; i < len(p.Elements); i++ {
		out = append(out, Path{Submodel: p.Submodel, Elements: append([]string(nil), p.Elements[:i]...)})
	}
	return out
}

// Equal reports whether both paths address the same node.
func (p Path) Equal(o Path) bool {
	if p.Submodel != o.Submodel || len(p.Elements) != len(o.Elements) {
		return false
	}
	for i := range p.Elements {
		if p.Elements[i] != o.Elements[i] {
			return false
		}
	}
	return true
}
