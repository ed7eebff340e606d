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
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
)

// Route defines the parameters for an API endpoint.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// Routes is a map of defined API endpoints, keyed by operation name.
type Routes map[string]Route

// Router defines the required methods for retrieving API routes.
type Router interface {
	Routes() Routes
}

// ImplResponse is the outcome of a service call: a status code and a body
// that is rendered as JSON unless it is a Download or Text.
type ImplResponse struct {
	Code int
	Body any
}

// Response returns an ImplResponse with the given code and body.
func Response(code int, body any) ImplResponse {
	return ImplResponse{Code: code, Body: body}
}

// Download is a binary response body.
type Download struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Text is a textual response body sent verbatim.
type Text struct {
	Content     string
	ContentType string
}

// NewRouter creates a chi router serving the routes of every given Router.
func NewRouter(routers ...Router) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(RequestLogger)
	for _, api := range routers {
		for name, route := range api.Routes() {
			router.With(operationName(name)).Method(route.Method, route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

type operationKey struct{}

func contextWithOperation(ctx context.Context, op *string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

func operationName(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rec, ok := r.Context().Value(operationKey{}).(*string); ok {
				*rec = name
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs method, path, operation, status and duration of each request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		var op string
		r = r.WithContext(contextWithOperation(r.Context(), &op))

		next.ServeHTTP(ww, r)

		logger.LogDebug("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("operation", op),
			zap.Int("status", ww.Status()),
			zap.String("requestId", middleware.GetReqID(r.Context())),
			zap.Duration("duration", time.Since(start)))
	})
}

// EncodeResponse writes result to w.
func EncodeResponse(result ImplResponse, w http.ResponseWriter) error {
	code := result.Code
	if code == 0 {
		code = http.StatusOK
	}
	switch body := result.Body.(type) {
	case Download:
		h := w.Header()
		h.Set("Content-Type", body.ContentType)
		h.Set("Content-Disposition", `attachment; filename="`+body.Filename+`"`)
		h.Set("Content-Length", strconv.Itoa(len(body.Content)))
		h.Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(code)
		_, err := w.Write(body.Content)
		return err
	case Text:
		w.Header().Set("Content-Type", body.ContentType)
		w.WriteHeader(code)
		_, err := w.Write([]byte(body.Content))
		return err
	}
	return common.WriteJSON(w, code, result.Body)
}
