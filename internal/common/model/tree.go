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
	"errors"
	"fmt"
)

// Errors returned by tree mutations.
var (
	ErrElementNotFound  = errors.New("element not found")
	ErrDuplicateIdShort = errors.New("idShort already used by a sibling")
	ErrNotDeletable     = errors.New("element is required and cannot be deleted")
	ErrCrossParentMove  = errors.New("elements can only be reordered within their parent")
	ErrInvalidIdShort   = errors.New("idShort does not match " + IdShortPattern)
	ErrNotContainer     = errors.New("element cannot hold children")
)

// Mutations never modify the receiver. Each returns a new Environment that
// shares every untouched subtree with the old one; only the nodes on the
// path to the change are copied.

// Lookup returns the element addressed by path.
func (e *Environment) Lookup(path Path) (*Element, error) {
	sm, _, ok := e.Submodel(path.Submodel)
	if !ok {
		return nil, fmt.Errorf("submodel %q: %w", path.Submodel, ErrElementNotFound)
	}
	if path.IsRoot() {
		return nil, fmt.Errorf("%s addresses a submodel: %w", path, ErrElementNotFound)
	}
	siblings := sm.Elements
	var el *Element
	for _, seg := range path.Elements {
		i := indexOf(siblings, seg)
		if i < 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrElementNotFound)
		}
		el = siblings[i]
		siblings = el.Children()
	}
	return el, nil
}

// Children returns the child list of the submodel or container at path.
func (e *Environment) Children(path Path) ([]*Element, error) {
	if path.IsRoot() {
		sm, _, ok := e.Submodel(path.Submodel)
		if !ok {
			return nil, fmt.Errorf("submodel %q: %w", path.Submodel, ErrElementNotFound)
		}
		return sm.Elements, nil
	}
	el, err := e.Lookup(path)
	if err != nil {
		return nil, err
	}
	if !el.IsContainer() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotContainer)
	}
	return el.Children(), nil
}

// AddSubmodel appends a submodel. Its idShort must be valid and unique.
func (e *Environment) AddSubmodel(sm *Submodel) (*Environment, error) {
	if !IsValidIdShort(sm.IdShort) {
		return nil, fmt.Errorf("submodel %q: %w", sm.IdShort, ErrInvalidIdShort)
	}
	if _, _, ok := e.Submodel(sm.IdShort); ok {
		return nil, fmt.Errorf("submodel %q: %w", sm.IdShort, ErrDuplicateIdShort)
	}
	out := e.shallow()
	out.Submodels = append(append([]*Submodel(nil), e.Submodels...), sm.Clone())
	return out, nil
}

// RemoveSubmodel drops the submodel with the given idShort.
func (e *Environment) RemoveSubmodel(idShort string) (*Environment, error) {
	_, i, ok := e.Submodel(idShort)
	if !ok {
		return nil, fmt.Errorf("submodel %q: %w", idShort, ErrElementNotFound)
	}
	out := e.shallow()
	out.Submodels = remove(e.Submodels, i)
	return out, nil
}

// AddElement inserts el into the submodel or container at parent. index < 0
// or beyond the end appends.
func (e *Environment) AddElement(parent Path, el *Element, index int) (*Environment, error) {
	if !IsValidIdShort(el.IdShort) {
		return nil, fmt.Errorf("%q: %w", el.IdShort, ErrInvalidIdShort)
	}
	el = el.Clone()
	el.Cardinality = el.Cardinality.OrDefault()
	return e.modifyChildren(parent, func(children []*Element) ([]*Element, error) {
		if indexOf(children, el.IdShort) >= 0 {
			return nil, fmt.Errorf("%s: %w", parent.Child(el.IdShort), ErrDuplicateIdShort)
		}
		if index < 0 || index > len(children) {
			index = len(children)
		}
		out := make([]*Element, 0, len(children)+1)
		out = append(out, children[:index]...)
		out = append(out, el)
		return append(out, children[index:]...), nil
	})
}

// UpdateElement replaces the element at path with fn applied to a deep copy of it.
// A renamed element must keep a valid idShort that is unique among its siblings.
func (e *Environment) UpdateElement(path Path, fn func(*Element)) (*Environment, error) {
	if path.IsRoot() {
		return nil, fmt.Errorf("%s addresses a submodel: %w", path, ErrElementNotFound)
	}
	return e.modifyChildren(path.Parent(), func(children []*Element) ([]*Element, error) {
		i := indexOf(children, path.Last())
		if i < 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrElementNotFound)
		}
		updated := children[i].Clone()
		fn(updated)
		if updated.IdShort != children[i].IdShort {
			if !IsValidIdShort(updated.IdShort) {
				return nil, fmt.Errorf("%q: %w", updated.IdShort, ErrInvalidIdShort)
			}
			if indexOf(children, updated.IdShort) >= 0 {
				return nil, fmt.Errorf("%s: %w", path.Parent().Child(updated.IdShort), ErrDuplicateIdShort)
			}
		}
		out := append([]*Element(nil), children...)
		out[i] = updated
		return out, nil
	})
}

// DeleteElement removes the element at path. Elements whose cardinality is
// One or OneToMany are refused with ErrNotDeletable.
func (e *Environment) DeleteElement(path Path) (*Environment, error) {
	if path.IsRoot() {
		return nil, fmt.Errorf("%s addresses a submodel: %w", path, ErrElementNotFound)
	}
	return e.modifyChildren(path.Parent(), func(children []*Element) ([]*Element, error) {
		i := indexOf(children, path.Last())
		if i < 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrElementNotFound)
		}
		if !children[i].IsDeletable() {
			return nil, fmt.Errorf("%s (%s): %w", path, children[i].Cardinality.OrDefault(), ErrNotDeletable)
		}
		return remove(children, i), nil
	})
}

// IsDeletable reports whether the element at path may be deleted.
func (e *Environment) IsDeletable(path Path) (bool, error) {
	el, err := e.Lookup(path)
	if err != nil {
		return false, err
	}
	return el.IsDeletable(), nil
}

// MoveElement moves the element at from so that it takes the position of the
// sibling at to. Both paths must share the same parent.
func (e *Environment) MoveElement(from, to Path) (*Environment, error) {
	if from.IsRoot() || to.IsRoot() || !from.Parent().Equal(to.Parent()) {
		return nil, fmt.Errorf("%s -> %s: %w", from, to, ErrCrossParentMove)
	}
	return e.modifyChildren(from.Parent(), func(children []*Element) ([]*Element, error) {
		src := indexOf(children, from.Last())
		dst := indexOf(children, to.Last())
		if src < 0 {
			return nil, fmt.Errorf("%s: %w", from, ErrElementNotFound)
		}
		if dst < 0 {
			return nil, fmt.Errorf("%s: %w", to, ErrElementNotFound)
		}
		return reorder(children, src, dst), nil
	})
}

// Reorder moves the child at index from to index to below parent.
func (e *Environment) Reorder(parent Path, from, to int) (*Environment, error) {
	return e.modifyChildren(parent, func(children []*Element) ([]*Element, error) {
		if from < 0 || from >= len(children) || to < 0 || to >= len(children) {
			return nil, fmt.Errorf("%s: index out of range: %w", parent, ErrElementNotFound)
		}
		return reorder(children, from, to), nil
	})
}

// modifyChildren copies the spine from the submodel down to parent and
// replaces the child list there with the result of fn.
func (e *Environment) modifyChildren(parent Path, fn func([]*Element) ([]*Element, error)) (*Environment, error) {
	sm, smIndex, ok := e.Submodel(parent.Submodel)
	if !ok {
		return nil, fmt.Errorf("submodel %q: %w", parent.Submodel, ErrElementNotFound)
	}
	elements, err := rewrite(sm.Elements, parent.Elements, parent, fn)
	if err != nil {
		return nil, err
	}
	out := e.shallow()
	out.Submodels = append([]*Submodel(nil), e.Submodels...)
	out.Submodels[smIndex] = sm.withElements(elements)
	return out, nil
}

func rewrite(children []*Element, rest []string, parent Path, fn func([]*Element) ([]*Element, error)) ([]*Element, error) {
	if len(rest) == 0 {
		return fn(children)
	}
	i := indexOf(children, rest[0])
	if i < 0 {
		return nil, fmt.Errorf("%s: %w", parent, ErrElementNotFound)
	}
	if !children[i].IsContainer() {
		return nil, fmt.Errorf("%s: %w", parent, ErrNotContainer)
	}
	inner, err := rewrite(children[i].Children(), rest[1:], parent, fn)
	if err != nil {
		return nil, err
	}
	out := append([]*Element(nil), children...)
	out[i] = children[i].withChildren(inner)
	return out, nil
}

func (e *Environment) shallow() *Environment {
	cp := *e
	return &cp
}

func indexOf(elements []*Element, idShort string) int {
	for i, el := range elements {
		if el.IdShort == idShort {
			return i
		}
	}
	return -1
}

func remove[T any](s []T, i int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func reorder(children []*Element, from, to int) []*Element {
	out := append([]*Element(nil), children...)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]*Element{moved}, out[to:]...)...)
	return out
}
