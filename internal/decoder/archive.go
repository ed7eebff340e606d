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

package decoder

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/aasx"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
)

// Result is a decoded archive.
type Result struct {
	Environment *model.Environment
	// Markup is the primary markup text exactly as it was read.
	Markup  string
	Package *aasx.Package
}

// DecodeArchive reads an AASX archive and decodes its primary markup part.
func DecodeArchive(data []byte) (*Result, error) {
	return DecodeArchiveLimited(data, aasx.DefaultMaxBytes)
}

// DecodeArchiveLimited is DecodeArchive with a bound on the decompressed size
// of the archive. An archive past the bound is an ErrMalformedArchive.
func DecodeArchiveLimited(data []byte, maxBytes int64) (*Result, error) {
	pkg, err := aasx.ReadLimited(data, maxBytes)
	if errors.Is(err, aasx.ErrNoMarkup) {
		return nil, fmt.Errorf("%w: %w", ErrNoMarkupEntry, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedArchive, err)
	}
	if pkg.Markup == "" {
		return nil, ErrNoMarkupEntry
	}
	env, err := Decode(pkg.Markup)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Entry = pkg.Entry
		}
		return nil, err
	}
	logger.LogInfo("decoded archive", zap.String("entry", pkg.Entry), zap.Int("submodels", len(env.Submodels)))
	return &Result{Environment: env, Markup: pkg.Markup, Package: pkg}, nil
}
