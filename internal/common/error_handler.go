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

package common

import (
	"errors"
	"net/http"
	"strings"
)

// ErrorHandler is the message body written for failed API calls.
type ErrorHandler struct {
	MessageType   string `json:"messageType"`
	Text          string `json:"text"`
	Code          string `json:"code,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
	Timestamp     string `json:"timestamp,omitempty"`
}

// NewErrorHandler builds the message body for err.
func NewErrorHandler(messageType string, text error, code string, correlationID string, timestamp string) *ErrorHandler {
	return &ErrorHandler{
		MessageType:   messageType,
		Text:          text.Error(),
		Code:          code,
		CorrelationID: correlationID,
		Timestamp:     timestamp,
	}
}

const (
	prefixNotFound      = "404 Not Found: "
	prefixBadRequest    = "400 Bad Request: "
	prefixConflict      = "409 Conflict: "
	prefixUnprocessable = "422 Unprocessable Entity: "
	prefixInternal      = "500 Internal Server Error: "
)

// classifiedError keeps the wrapped cause reachable for errors.Is/As while the
// message carries the status prefix.
type classifiedError struct {
	prefix string
	text   string
	cause  error
}

func (e *classifiedError) Error() string { return e.prefix + e.text }

func (e *classifiedError) Unwrap() error { return e.cause }

func newClassified(prefix, text string, cause error) error {
	return &classifiedError{prefix: prefix, text: text, cause: cause}
}

// NewErrNotFound creates a not-found error for the given element identifier.
func NewErrNotFound(elementID string) error {
	return newClassified(prefixNotFound, elementID, nil)
}

// NewErrBadRequest creates a bad-request error.
func NewErrBadRequest(message string) error {
	return newClassified(prefixBadRequest, message, nil)
}

// NewErrConflict creates a conflict error.
func NewErrConflict(message string) error {
	return newClassified(prefixConflict, message, nil)
}

// NewErrUnprocessable creates an error for well-formed input that cannot be used.
func NewErrUnprocessable(message string) error {
	return newClassified(prefixUnprocessable, message, nil)
}

// NewInternalServerError creates an internal server error.
func NewInternalServerError(message string) error {
	return newClassified(prefixInternal, message, nil)
}

// WrapBadRequest classifies cause as a bad request while keeping it unwrappable.
func WrapBadRequest(message string, cause error) error {
	return newClassified(prefixBadRequest, message+": "+cause.Error(), cause)
}

// WrapNotFound classifies cause as not found while keeping it unwrappable.
func WrapNotFound(message string, cause error) error {
	return newClassified(prefixNotFound, message+": "+cause.Error(), cause)
}

// WrapConflict classifies cause as a conflict while keeping it unwrappable.
func WrapConflict(message string, cause error) error {
	return newClassified(prefixConflict, message+": "+cause.Error(), cause)
}

// WrapUnprocessable classifies cause as unprocessable while keeping it unwrappable.
func WrapUnprocessable(message string, cause error) error {
	return newClassified(prefixUnprocessable, message+": "+cause.Error(), cause)
}

func hasPrefix(err error, prefix string) bool {
	var ce *classifiedError
	if errors.As(err, &ce) {
		return ce.prefix == prefix
	}
	return err != nil && strings.HasPrefix(err.Error(), prefix)
}

// IsErrNotFound reports whether err was classified as not found.
func IsErrNotFound(err error) bool { return hasPrefix(err, prefixNotFound) }

// IsErrBadRequest reports whether err was classified as a bad request.
func IsErrBadRequest(err error) bool { return hasPrefix(err, prefixBadRequest) }

// IsErrConflict reports whether err was classified as a conflict.
func IsErrConflict(err error) bool { return hasPrefix(err, prefixConflict) }

// IsErrUnprocessable reports whether err was classified as unprocessable.
func IsErrUnprocessable(err error) bool { return hasPrefix(err, prefixUnprocessable) }

// StatusCode maps a classified error to its HTTP status code.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsErrNotFound(err):
		return http.StatusNotFound
	case IsErrBadRequest(err):
		return http.StatusBadRequest
	case IsErrConflict(err):
		return http.StatusConflict
	case IsErrUnprocessable(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
