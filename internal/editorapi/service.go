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

package editorapi

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/session"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/template"
)

// ArchiveContentType is the media type of exported packages.
const ArchiveContentType = "application/asset-administration-shell-package"

// SessionInfo summarizes an open session.
type SessionInfo struct {
	ID        string   `json:"id"`
	Revision  uint64   `json:"revision"`
	Validated bool     `json:"validated"`
	IdShort   string   `json:"idShort"`
	RecordID  string   `json:"recordId"`
	Submodels []string `json:"submodels"`
}

// NewSessionRequest starts a session on an empty record seeded from templates.
type NewSessionRequest struct {
	IdShort       string   `json:"idShort"`
	ID            string   `json:"id,omitempty"`
	GlobalAssetID string   `json:"globalAssetId,omitempty"`
	Templates     []string `json:"templates,omitempty"`
}

// AddSubmodelRequest adds a submodel instantiated from a template.
type AddSubmodelRequest struct {
	Template string `json:"template"`
	IdShort  string `json:"idShort,omitempty"`
}

// ElementPatch lists the fields of an element to change. Nil fields stay as
// they are. Value is interpreted by model type; for a MultiLanguageProperty it
// sets the text of Language, and a blank value removes that language.
type ElementPatch struct {
	IdShort     *string `json:"idShort,omitempty"`
	Value       *string `json:"value,omitempty"`
	Language    string  `json:"language,omitempty"`
	ValueType   *string `json:"valueType,omitempty"`
	ContentType *string `json:"contentType,omitempty"`
	Cardinality *string `json:"cardinality,omitempty"`
	SemanticID  *string `json:"semanticId,omitempty"`
	Description *string `json:"description,omitempty"`
}

// MoveRequest moves an element onto the position of the sibling Before.
type MoveRequest struct {
	Before string `json:"before"`
}

// EditorAPIService implements the editor operations on top of a Store.
type EditorAPIService struct {
	cfg      *common.Config
	store    *Store
	catalog  template.Catalog
	sessOpts []session.Option
}

// NewEditorAPIService creates the service. A nil catalog serves the built-in templates.
func NewEditorAPIService(cfg *common.Config, store *Store, catalog template.Catalog, opts ...session.Option) *EditorAPIService {
	if catalog == nil {
		catalog = template.NewFallbackCatalog(nil)
	}
	return &EditorAPIService{cfg: cfg, store: store, catalog: catalog, sessOpts: opts}
}

func info(s *session.Session) SessionInfo {
	env := s.Environment()
	names := make([]string, 0, len(env.Submodels))
	for _, sm := range env.Submodels {
		names = append(names, sm.IdShort)
	}
	return SessionInfo{
		ID:        s.ID(),
		Revision:  s.Revision(),
		Validated: s.Validated(),
		IdShort:   env.IdShort,
		RecordID:  env.ID,
		Submodels: names,
	}
}

// CreateSession opens a session from an upload. JSON bodies are read as a
// NewSessionRequest, XML bodies as bare markup and anything else as an archive.
func (svc *EditorAPIService) CreateSession(ctx context.Context, contentType string, body []byte) (ImplResponse, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = ""
	}

	var s *session.Session
	switch {
	case mediaType == "application/json":
		var req NewSessionRequest
		if err := common.DecodeJSONBody(bytes.NewReader(body), &req); err != nil {
			return Response(http.StatusBadRequest, nil), err
		}
		s, err = svc.newFromTemplates(ctx, req)
	case mediaType == "application/xml" || mediaType == "text/xml" || strings.HasSuffix(mediaType, "+xml"):
		s, err = session.OpenMarkup(svc.cfg, string(body), svc.sessOpts...)
	default:
		s, err = session.Open(svc.cfg, body, svc.sessOpts...)
	}
	if err != nil {
		return Response(http.StatusBadRequest, nil), err
	}

	svc.store.Put(s)
	logger.LogInfo("session created", zap.String("session", s.ID()), zap.String("contentType", mediaType))
	return Response(http.StatusCreated, info(s)), nil
}

func (svc *EditorAPIService) newFromTemplates(ctx context.Context, req NewSessionRequest) (*session.Session, error) {
	if !model.IsValidIdShort(req.IdShort) {
		return nil, common.WrapBadRequest("record idShort", fmt.Errorf("%q: %w", req.IdShort, model.ErrInvalidIdShort))
	}
	env := model.NewEnvironment(req.IdShort, req.ID)
	env.GlobalAssetID = req.GlobalAssetID
	for _, name := range req.Templates {
		sm, err := svc.instantiate(ctx, name, "")
		if err != nil {
			return nil, err
		}
		if env, err = env.AddSubmodel(sm); err != nil {
			return nil, err
		}
	}
	return session.New(svc.cfg, env, svc.sessOpts...)
}

func (svc *EditorAPIService) instantiate(ctx context.Context, name, idShort string) (*model.Submodel, error) {
	tpl, err := svc.catalog.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return tpl.Submodel(idShort)
}

// GetSession returns the summary of a session.
func (svc *EditorAPIService) GetSession(_ context.Context, id string) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	return Response(http.StatusOK, info(s)), nil
}

// DeleteSession closes a session.
func (svc *EditorAPIService) DeleteSession(_ context.Context, id string) (ImplResponse, error) {
	if err := svc.store.Delete(id); err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	return Response(http.StatusNoContent, nil), nil
}

// GetMarkup returns the current markup text.
func (svc *EditorAPIService) GetMarkup(_ context.Context, id string) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	return Response(http.StatusOK, Text{Content: s.Markup().Text(), ContentType: "application/xml; charset=utf-8"}), nil
}

// GetRecord returns the current record text.
func (svc *EditorAPIService) GetRecord(_ context.Context, id string) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	return Response(http.StatusOK, Text{Content: s.Record().Text(), ContentType: "application/json; charset=utf-8"}), nil
}

// GetTree returns the element tree annotated with the last validation result.
func (svc *EditorAPIService) GetTree(_ context.Context, id string) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	report, current := s.Report()
	if !current {
		report = nil
	}
	return Response(http.StatusOK, BuildTree(s.Environment(), report)), nil
}

// Validate runs the validator on the current revision.
func (svc *EditorAPIService) Validate(ctx context.Context, id string) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	report, err := s.Validate(ctx)
	if err != nil {
		return Response(http.StatusConflict, nil), err
	}
	return Response(http.StatusOK, report), nil
}

// Repair runs the auto-repair engine.
func (svc *EditorAPIService) Repair(ctx context.Context, id string) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	res, err := s.Repair(ctx)
	if err != nil {
		return Response(http.StatusInternalServerError, nil), err
	}
	return Response(http.StatusOK, res), nil
}

// Remediate repairs and validates once.
func (svc *EditorAPIService) Remediate(ctx context.Context, id string) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	res, err := s.Remediate(ctx)
	if err != nil {
		return Response(http.StatusConflict, nil), err
	}
	return Response(http.StatusOK, res), nil
}

// Export packages the session as an archive.
func (svc *EditorAPIService) Export(ctx context.Context, id string) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	data, err := s.Export(ctx, nil)
	if err != nil {
		return Response(http.StatusConflict, nil), err
	}
	return Response(http.StatusOK, Download{
		Content:     data,
		ContentType: ArchiveContentType,
		Filename:    s.Environment().IdShort + ".aasx",
	}), nil
}

// AddSubmodel adds a submodel instantiated from a template.
func (svc *EditorAPIService) AddSubmodel(ctx context.Context, id string, req AddSubmodelRequest) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	sm, err := svc.instantiate(ctx, req.Template, req.IdShort)
	if err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	if err := s.AddSubmodel(sm); err != nil {
		return Response(http.StatusConflict, nil), err
	}
	return Response(http.StatusCreated, info(s)), nil
}

// RemoveSubmodel removes a submodel.
func (svc *EditorAPIService) RemoveSubmodel(_ context.Context, id, idShort string) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	if err := s.RemoveSubmodel(idShort); err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	return Response(http.StatusNoContent, nil), nil
}

// AddElement inserts the element described by spec below parent.
func (svc *EditorAPIService) AddElement(_ context.Context, id string, parent model.Path, spec template.ElementSpec, index int) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	el, err := spec.Element()
	if err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	if err := s.AddElement(parent, el, index); err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	return Response(http.StatusCreated, info(s)), nil
}

// UpdateElement applies patch to the element at path.
func (svc *EditorAPIService) UpdateElement(_ context.Context, id string, path model.Path, patch ElementPatch) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	current, err := s.Environment().Lookup(path)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	apply, err := patch.compile(current.ModelType())
	if err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	if err := s.UpdateElement(path, apply); err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	return Response(http.StatusOK, info(s)), nil
}

// DeleteElement removes the element at path.
func (svc *EditorAPIService) DeleteElement(_ context.Context, id string, path model.Path) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	if err := s.DeleteElement(path); err != nil {
		return Response(http.StatusConflict, nil), err
	}
	return Response(http.StatusNoContent, nil), nil
}

// MoveElement moves the element at path onto the position of a sibling.
func (svc *EditorAPIService) MoveElement(_ context.Context, id string, path model.Path, req MoveRequest) (ImplResponse, error) {
	s, err := svc.store.Get(id)
	if err != nil {
		return Response(http.StatusNotFound, nil), err
	}
	if path.IsRoot() || strings.TrimSpace(req.Before) == "" {
		return Response(http.StatusBadRequest, nil), common.NewErrBadRequest("move needs an element path and a sibling idShort")
	}
	if err := s.MoveElement(path, path.Parent().Child(req.Before)); err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	return Response(http.StatusOK, info(s)), nil
}

// ListTemplates lists the available section templates.
func (svc *EditorAPIService) ListTemplates(ctx context.Context) (ImplResponse, error) {
	list, err := svc.catalog.List(ctx)
	if err != nil {
		return Response(http.StatusServiceUnavailable, nil), err
	}
	return Response(http.StatusOK, list), nil
}

// compile checks the patch against the element's model type and returns the
// function that applies it.
func (p ElementPatch) compile(mt model.ModelType) (func(*model.Element), error) {
	var vt valuetype.DataTypeDefXsd
	if p.ValueType != nil {
		if mt != model.ModelTypeProperty {
			return nil, common.NewErrBadRequest("valueType applies to properties only")
		}
		t, ok := valuetype.Normalize(*p.ValueType)
		if !ok {
			return nil, common.NewErrBadRequest(fmt.Sprintf("unknown value type %q", *p.ValueType))
		}
		vt = t
	}
	var card model.Cardinality
	if p.Cardinality != nil {
		c, err := model.ParseCardinality(*p.Cardinality)
		if err != nil {
			return nil, common.WrapBadRequest("cardinality", err)
		}
		card = c
	}
	if p.ContentType != nil && mt != model.ModelTypeFile {
		return nil, common.NewErrBadRequest("contentType applies to files only")
	}
	if p.Value != nil && (mt == model.ModelTypeCollection || mt == model.ModelTypeList) {
		return nil, common.NewErrBadRequest("containers have no scalar value")
	}
	lang := p.Language
	if strings.TrimSpace(lang) == "" {
		lang = model.DefaultLanguage
	}

	return func(el *model.Element) {
		if p.IdShort != nil {
			el.IdShort = *p.IdShort
		}
		if card != "" {
			el.Cardinality = card
		}
		if p.SemanticID != nil {
			el.SemanticID = *p.SemanticID
		}
		if p.Description != nil {
			el.Description = *p.Description
		}
		if prop, ok := el.AsProperty(); ok {
			if vt != "" {
				prop.ValueType = vt
			}
			if p.Value != nil {
				prop.Value = *p.Value
			}
		}
		if mlp, ok := el.AsMultiLanguageProperty(); ok && p.Value != nil {
			next := mlp.Value.Clone()
			if next == nil {
				next = model.LangStringSet{}
			}
			if strings.TrimSpace(*p.Value) == "" {
				delete(next, lang)
			} else {
				next[lang] = *p.Value
			}
			mlp.Value = next
		}
		if f, ok := el.AsFile(); ok {
			if p.Value != nil {
				f.Value = *p.Value
			}
			if p.ContentType != nil {
				f.ContentType = *p.ContentType
			}
		}
		if ref, ok := el.AsReferenceElement(); ok && p.Value != nil {
			if strings.TrimSpace(*p.Value) == "" {
				ref.Value = model.Reference{}
			} else {
				ref.Value = model.NewExternalReference(*p.Value)
			}
		}
	}, nil
}
