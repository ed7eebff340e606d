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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifiedErrors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name   string
		err    error
		status int
		is     func(error) bool
	}{
		{name: "NotFound", err: NewErrNotFound("session x"), status: http.StatusNotFound, is: IsErrNotFound},
		{name: "BadRequest", err: NewErrBadRequest("bad"), status: http.StatusBadRequest, is: IsErrBadRequest},
		{name: "Conflict", err: NewErrConflict("dup"), status: http.StatusConflict, is: IsErrConflict},
		{name: "Unprocessable", err: WrapUnprocessable("decode", cause), status: http.StatusUnprocessableEntity, is: IsErrUnprocessable},
		{name: "Internal", err: NewInternalServerError("oops"), status: http.StatusInternalServerError, is: func(error) bool { return true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, tt.is(tt.err))
			require.Equal(t, tt.status, StatusCode(tt.err))
		})
	}
}

func TestWrappedCauseIsReachable(t *testing.T) {
	cause := errors.New("boom")
	err := WrapBadRequest("parse upload", cause)

	require.ErrorIs(t, err, cause)
	require.Equal(t, "400 Bad Request: parse upload: boom", err.Error())
	require.False(t, IsErrNotFound(err))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 5080, cfg.Server.Port)
	require.Equal(t, "N/A", cfg.Repair.PlaceholderText)
	require.Equal(t, "en", cfg.Repair.DefaultLanguage)
	require.True(t, cfg.Validator.LocalRecordFallback)
	require.NotZero(t, cfg.Validator.Timeout)
}
