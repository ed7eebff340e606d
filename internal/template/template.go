// Package template provides the section skeletons used to seed new submodels.
// A Catalog lists and fetches templates by name; FallbackCatalog answers from
// the built-in skeletons whenever the primary catalog fails.
package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
)

// ErrInvalidTemplate marks a template definition that cannot produce a submodel.
var ErrInvalidTemplate = errors.New("invalid template")

// Template is a named skeleton for one submodel.
type Template struct {
	Name        string        `yaml:"name" json:"name"`
	SemanticID  string        `yaml:"semanticId" json:"semanticId,omitempty"`
	Description string        `yaml:"description" json:"description,omitempty"`
	Elements    []ElementSpec `yaml:"elements" json:"elements"`
}

// ElementSpec describes one element of a template. Values are usually left
// empty; the editor asks for them according to Cardinality.
type ElementSpec struct {
	IdShort       string            `yaml:"idShort" json:"idShort"`
	ModelType     model.ModelType   `yaml:"modelType" json:"modelType"`
	ValueType     string            `yaml:"valueType,omitempty" json:"valueType,omitempty"`
	Value         string            `yaml:"value,omitempty" json:"value,omitempty"`
	ContentType   string            `yaml:"contentType,omitempty" json:"contentType,omitempty"`
	Cardinality   model.Cardinality `yaml:"cardinality,omitempty" json:"cardinality,omitempty"`
	SemanticID    string            `yaml:"semanticId,omitempty" json:"semanticId,omitempty"`
	Description   string            `yaml:"description,omitempty" json:"description,omitempty"`
	PreferredName string            `yaml:"preferredName,omitempty" json:"preferredName,omitempty"`
	Unit          string            `yaml:"unit,omitempty" json:"unit,omitempty"`
	DataType      string            `yaml:"dataType,omitempty" json:"dataType,omitempty"`
	Children      []ElementSpec     `yaml:"children,omitempty" json:"children,omitempty"`
}

// Summary is the listing entry of a template.
type Summary struct {
	Name        string `json:"name"`
	SemanticID  string `json:"semanticId,omitempty"`
	Description string `json:"description,omitempty"`
}

// Summary returns the listing entry of t.
func (t *Template) Summary() Summary {
	return Summary{Name: t.Name, SemanticID: t.SemanticID, Description: t.Description}
}

// Submodel instantiates the template as a fresh submodel named idShort. An
// empty idShort uses the template name.
func (t *Template) Submodel(idShort string) (*model.Submodel, error) {
	if strings.TrimSpace(idShort) == "" {
		idShort = t.Name
	}
	if !model.IsValidIdShort(idShort) {
		return nil, fmt.Errorf("%w: submodel idShort %q: %w", ErrInvalidTemplate, idShort, model.ErrInvalidIdShort)
	}
	elements, err := buildElements(t.Elements)
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", t.Name, err)
	}
	return model.NewSubmodel(idShort, t.SemanticID, elements...), nil
}

func buildElements(specs []ElementSpec) ([]*model.Element, error) {
	out := make([]*model.Element, 0, len(specs))
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		el, err := s.Element()
		if err != nil {
			return nil, err
		}
		if seen[el.IdShort] {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTemplate, el.IdShort, model.ErrDuplicateIdShort)
		}
		seen[el.IdShort] = true
		out = append(out, el)
	}
	return out, nil
}

// Element builds the element described by s, children included.
func (s ElementSpec) Element() (*model.Element, error) {
	if !model.IsValidIdShort(s.IdShort) {
		return nil, fmt.Errorf("%w: idShort %q: %w", ErrInvalidTemplate, s.IdShort, model.ErrInvalidIdShort)
	}
	if len(s.Children) > 0 && s.ModelType != model.ModelTypeCollection && s.ModelType != model.ModelTypeList {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTemplate, s.IdShort, model.ErrNotContainer)
	}
	children, err := buildElements(s.Children)
	if err != nil {
		return nil, err
	}

	var el *model.Element
	switch s.ModelType {
	case model.ModelTypeProperty:
		vt := valuetype.XsdString
		if s.ValueType != "" {
			t, ok := valuetype.Normalize(s.ValueType)
			if !ok {
				return nil, fmt.Errorf("%w: %s: unknown value type %q", ErrInvalidTemplate, s.IdShort, s.ValueType)
			}
			vt = t
		}
		el = model.NewProperty(s.IdShort, vt, s.Value)
	case model.ModelTypeMultiLanguageProperty:
		el = model.NewMultiLanguageProperty(s.IdShort, model.NewLangStringSet(model.DefaultLanguage, s.Value))
	case model.ModelTypeFile:
		el = model.NewFile(s.IdShort, s.Value, s.ContentType)
	case model.ModelTypeReferenceElement:
		var ref model.Reference
		if s.Value != "" {
			ref = model.NewExternalReference(s.Value)
		}
		el = model.NewReferenceElement(s.IdShort, ref)
	case model.ModelTypeCollection:
		el = model.NewCollection(s.IdShort, children...)
	case model.ModelTypeList:
		el = model.NewList(s.IdShort, children...)
	default:
		return nil, fmt.Errorf("%w: %s: unsupported model type %q", ErrInvalidTemplate, s.IdShort, s.ModelType)
	}

	if s.Cardinality != "" {
		c, err := model.ParseCardinality(string(s.Cardinality))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTemplate, s.IdShort, err)
		}
		el.Cardinality = c
	}
	el.SemanticID = s.SemanticID
	el.Description = s.Description
	el.PreferredName = model.NewLangStringSet(model.DefaultLanguage, s.PreferredName)
	el.Unit = s.Unit
	el.DataType = s.DataType
	return el, nil
}
