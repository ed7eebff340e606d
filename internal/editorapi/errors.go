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
	"errors"
	"net/http"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/decoder"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/session"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/template"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/validator"
)

// ErrorHandler renders an error returned by the service.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler classifies err and writes it with common.WriteError.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	err = classify(err)
	if common.StatusCode(err) >= http.StatusInternalServerError {
		logger.LogError("editor api", err)
	}
	common.WriteError(w, err)
}

// classify maps domain sentinels onto the classified errors of package common.
// Errors that are already classified pass through.
func classify(err error) error {
	if common.StatusCode(err) != http.StatusInternalServerError {
		return err
	}
	msg := err.Error()
	switch {
	case errors.Is(err, model.ErrElementNotFound),
		errors.Is(err, template.ErrTemplateNotFound):
		return common.WrapNotFound("not found", err)
	case errors.Is(err, model.ErrDuplicateIdShort),
		errors.Is(err, model.ErrNotDeletable),
		errors.Is(err, session.ErrNotValidated),
		errors.Is(err, validator.ErrValidationInProgress):
		return common.WrapConflict("conflict", err)
	case errors.Is(err, model.ErrCrossParentMove),
		errors.Is(err, model.ErrInvalidIdShort),
		errors.Is(err, model.ErrNotContainer),
		errors.Is(err, template.ErrInvalidTemplate),
		errors.Is(err, decoder.ErrMalformedArchive):
		return common.WrapBadRequest("invalid request", err)
	case errors.Is(err, decoder.ErrUnrecognizedRoot),
		errors.Is(err, decoder.ErrNoMarkupEntry):
		return common.WrapUnprocessable("unsupported document", err)
	}
	var pe *decoder.ParseError
	if errors.As(err, &pe) {
		return common.WrapUnprocessable("document cannot be parsed", err)
	}
	return common.NewInternalServerError(msg)
}
