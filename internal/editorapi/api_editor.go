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
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/template"
)

// EditorAPIController binds http requests to an EditorAPIService and writes
// the service results to the http response.
type EditorAPIController struct {
	service      *EditorAPIService
	errorHandler ErrorHandler
	contextPath  string
	maxUpload    int64
}

// EditorAPIOption for how the controller is set up.
type EditorAPIOption func(*EditorAPIController)

// WithEditorAPIErrorHandler injects an ErrorHandler into the controller.
func WithEditorAPIErrorHandler(h ErrorHandler) EditorAPIOption {
	return func(c *EditorAPIController) {
		c.errorHandler = h
	}
}

// WithMaxUploadBytes bounds the size of request bodies.
func WithMaxUploadBytes(n int64) EditorAPIOption {
	return func(c *EditorAPIController) {
		c.maxUpload = n
	}
}

// NewEditorAPIController creates a default api controller.
func NewEditorAPIController(s *EditorAPIService, contextPath string, opts ...EditorAPIOption) *EditorAPIController {
	controller := &EditorAPIController{
		service:      s,
		errorHandler: DefaultErrorHandler,
		contextPath:  common.NormalizeBasePath(contextPath),
		maxUpload:    64 << 20,
	}
	for _, opt := range opts {
		opt(controller)
	}
	return controller
}

// Routes returns all the api routes for the EditorAPIController.
func (c *EditorAPIController) Routes() Routes {
	p := c.contextPath
	return Routes{
		"CreateSession":  Route{http.MethodPost, p + "/sessions", c.CreateSession},
		"GetSession":     Route{http.MethodGet, p + "/sessions/{sessionId}", c.GetSession},
		"DeleteSession":  Route{http.MethodDelete, p + "/sessions/{sessionId}", c.DeleteSession},
		"GetMarkup":      Route{http.MethodGet, p + "/sessions/{sessionId}/markup", c.GetMarkup},
		"GetRecord":      Route{http.MethodGet, p + "/sessions/{sessionId}/record", c.GetRecord},
		"GetTree":        Route{http.MethodGet, p + "/sessions/{sessionId}/tree", c.GetTree},
		"Validate":       Route{http.MethodPost, p + "/sessions/{sessionId}/validate", c.Validate},
		"Repair":         Route{http.MethodPost, p + "/sessions/{sessionId}/repair", c.Repair},
		"Remediate":      Route{http.MethodPost, p + "/sessions/{sessionId}/remediate", c.Remediate},
		"Export":         Route{http.MethodPost, p + "/sessions/{sessionId}/export", c.Export},
		"AddSubmodel":    Route{http.MethodPost, p + "/sessions/{sessionId}/submodels", c.AddSubmodel},
		"RemoveSubmodel": Route{http.MethodDelete, p + "/sessions/{sessionId}/submodels/{idShort}", c.RemoveSubmodel},
		"AddElement":     Route{http.MethodPost, p + "/sessions/{sessionId}/elements/{path}", c.AddElement},
		"UpdateElement":  Route{http.MethodPatch, p + "/sessions/{sessionId}/elements/{path}", c.UpdateElement},
		"DeleteElement":  Route{http.MethodDelete, p + "/sessions/{sessionId}/elements/{path}", c.DeleteElement},
		"MoveElement":    Route{http.MethodPost, p + "/sessions/{sessionId}/elements/{path}/move", c.MoveElement},
		"ListTemplates":  Route{http.MethodGet, p + "/templates", c.ListTemplates},
	}
}

func (c *EditorAPIController) respond(w http.ResponseWriter, r *http.Request, result ImplResponse, err error) {
	if err != nil {
		c.errorHandler(w, r, err)
		return
	}
	_ = EncodeResponse(result, w)
}

// pathParam decodes the base64url encoded element path parameter.
func pathParam(r *http.Request) (model.Path, error) {
	raw := chi.URLParam(r, "path")
	if raw == "" {
		return model.Path{}, common.NewErrBadRequest("required parameter 'path' is missing")
	}
	decoded, err := common.DecodeIdentifier(raw)
	if err != nil {
		return model.Path{}, err
	}
	p, err := model.ParsePath(decoded)
	if err != nil {
		return model.Path{}, common.WrapBadRequest("element path", err)
	}
	return p, nil
}

func (c *EditorAPIController) body(w http.ResponseWriter, r *http.Request) io.Reader {
	return http.MaxBytesReader(w, r.Body, c.maxUpload)
}

// CreateSession - Opens a session from an archive, markup or a template list
func (c *EditorAPIController) CreateSession(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(c.body(w, r))
	if err != nil {
		c.errorHandler(w, r, common.WrapBadRequest("reading upload", err))
		return
	}
	result, err := c.service.CreateSession(r.Context(), r.Header.Get("Content-Type"), data)
	c.respond(w, r, result, err)
}

// GetSession - Returns the session summary
func (c *EditorAPIController) GetSession(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetSession(r.Context(), chi.URLParam(r, "sessionId"))
	c.respond(w, r, result, err)
}

// DeleteSession - Closes a session
func (c *EditorAPIController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.DeleteSession(r.Context(), chi.URLParam(r, "sessionId"))
	c.respond(w, r, result, err)
}

// GetMarkup - Returns the markup document
func (c *EditorAPIController) GetMarkup(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetMarkup(r.Context(), chi.URLParam(r, "sessionId"))
	c.respond(w, r, result, err)
}

// GetRecord - Returns the record document
func (c *EditorAPIController) GetRecord(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetRecord(r.Context(), chi.URLParam(r, "sessionId"))
	c.respond(w, r, result, err)
}

// GetTree - Returns the annotated element tree
func (c *EditorAPIController) GetTree(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetTree(r.Context(), chi.URLParam(r, "sessionId"))
	c.respond(w, r, result, err)
}

// Validate - Validates the current revision
func (c *EditorAPIController) Validate(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.Validate(r.Context(), chi.URLParam(r, "sessionId"))
	c.respond(w, r, result, err)
}

// Repair - Runs the auto-repair passes
func (c *EditorAPIController) Repair(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.Repair(r.Context(), chi.URLParam(r, "sessionId"))
	c.respond(w, r, result, err)
}

// Remediate - Repairs and validates once
func (c *EditorAPIController) Remediate(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.Remediate(r.Context(), chi.URLParam(r, "sessionId"))
	c.respond(w, r, result, err)
}

// Export - Downloads the validated package
func (c *EditorAPIController) Export(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.Export(r.Context(), chi.URLParam(r, "sessionId"))
	c.respond(w, r, result, err)
}

// AddSubmodel - Adds a submodel from a template
func (c *EditorAPIController) AddSubmodel(w http.ResponseWriter, r *http.Request) {
	var req AddSubmodelRequest
	if err := common.DecodeJSONBody(c.body(w, r), &req); err != nil {
		c.errorHandler(w, r, err)
		return
	}
	if req.Template == "" {
		c.errorHandler(w, r, common.NewErrBadRequest("required field 'template' is missing"))
		return
	}
	result, err := c.service.AddSubmodel(r.Context(), chi.URLParam(r, "sessionId"), req)
	c.respond(w, r, result, err)
}

// RemoveSubmodel - Removes a submodel
func (c *EditorAPIController) RemoveSubmodel(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.RemoveSubmodel(r.Context(), chi.URLParam(r, "sessionId"), chi.URLParam(r, "idShort"))
	c.respond(w, r, result, err)
}

// AddElement - Inserts an element below the given parent path
func (c *EditorAPIController) AddElement(w http.ResponseWriter, r *http.Request) {
	parent, err := pathParam(r)
	if err != nil {
		c.errorHandler(w, r, err)
		return
	}
	index := -1
	if q := r.URL.Query().Get("index"); q != "" {
		if index, err = strconv.Atoi(q); err != nil {
			c.errorHandler(w, r, common.WrapBadRequest("index", err))
			return
		}
	}
	var spec template.ElementSpec
	if err := common.DecodeJSONBody(c.body(w, r), &spec); err != nil {
		c.errorHandler(w, r, err)
		return
	}
	result, err := c.service.AddElement(r.Context(), chi.URLParam(r, "sessionId"), parent, spec, index)
	c.respond(w, r, result, err)
}

// UpdateElement - Patches the element at the given path
func (c *EditorAPIController) UpdateElement(w http.ResponseWriter, r *http.Request) {
	path, err := pathParam(r)
	if err != nil {
		c.errorHandler(w, r, err)
		return
	}
	var patch ElementPatch
	if err := common.DecodeJSONBody(c.body(w, r), &patch); err != nil {
		c.errorHandler(w, r, err)
		return
	}
	result, err := c.service.UpdateElement(r.Context(), chi.URLParam(r, "sessionId"), path, patch)
	c.respond(w, r, result, err)
}

// DeleteElement - Deletes the element at the given path
func (c *EditorAPIController) DeleteElement(w http.ResponseWriter, r *http.Request) {
	path, err := pathParam(r)
	if err != nil {
		c.errorHandler(w, r, err)
		return
	}
	result, err := c.service.DeleteElement(r.Context(), chi.URLParam(r, "sessionId"), path)
	c.respond(w, r, result, err)
}

// MoveElement - Moves the element onto the position of a sibling
func (c *EditorAPIController) MoveElement(w http.ResponseWriter, r *http.Request) {
	path, err := pathParam(r)
	if err != nil {
		c.errorHandler(w, r, err)
		return
	}
	var req MoveRequest
	if err := common.DecodeJSONBody(c.body(w, r), &req); err != nil {
		c.errorHandler(w, r, err)
		return
	}
	result, err := c.service.MoveElement(r.Context(), chi.URLParam(r, "sessionId"), path, req)
	c.respond(w, r, result, err)
}

// ListTemplates - Lists the section templates
func (c *EditorAPIController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.ListTemplates(r.Context())
	c.respond(w, r, result, err)
}
