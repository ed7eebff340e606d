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

// Package session holds the editing state of one record: the element tree,
// the two encoded documents and the validation status of the current
// revision.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/aasx"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/decoder"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/record"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/repair"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/validator"
)

// ErrNotValidated is returned by Export when the current revision has no
// accepted validation.
var ErrNotValidated = errors.New("current revision has not been validated")

// Packager turns the exported documents into an archive.
type Packager interface {
	Package(ctx context.Context, pkg *aasx.Package) ([]byte, error)
}

// PackagerFunc adapts a function to Packager.
type PackagerFunc func(ctx context.Context, pkg *aasx.Package) ([]byte, error)

// Package implements Packager.
func (f PackagerFunc) Package(ctx context.Context, pkg *aasx.Package) ([]byte, error) {
	return f(ctx, pkg)
}

// ArchivePackager writes an AASX archive.
var ArchivePackager = PackagerFunc(func(_ context.Context, pkg *aasx.Package) ([]byte, error) {
	return aasx.Write(pkg)
})

// Option configures a Session.
type Option func(*Session)

// WithValidator replaces the validator built from the configuration.
func WithValidator(v *validator.Validator) Option {
	return func(s *Session) { s.validator = v }
}

// Session is the editing state of one record. All methods are safe for
// concurrent use; edits are serialized.
type Session struct {
	mu sync.Mutex

	id        string
	env       *model.Environment
	markupDoc *markup.Document
	recordDoc *record.Document
	source    *aasx.Package

	revision  uint64
	validated uint64
	report    *validator.Report

	markupEnc *markup.Encoder
	recordEnc *record.Encoder
	validator *validator.Validator
	repairer  *repair.Engine
}

// New starts a session on env.
func New(cfg *common.Config, env *model.Environment, opts ...Option) (*Session, error) {
	if env == nil {
		return nil, common.NewErrBadRequest("session needs an environment")
	}
	s := &Session{
		id:        uuid.NewString(),
		markupEnc: markup.NewEncoder(cfg.Encoder),
		recordEnc: record.NewEncoder(cfg.Encoder),
		validator: validator.New(cfg.Validator),
		repairer:  repair.New(cfg.Repair),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.apply(env); err != nil {
		return nil, err
	}
	return s, nil
}

// Open decodes an uploaded archive and starts a session on it. Attachments
// and the thumbnail of the archive are carried over to exports.
func Open(cfg *common.Config, data []byte, opts ...Option) (*Session, error) {
	res, err := decoder.DecodeArchiveLimited(data, cfg.Server.MaxArchiveBytes)
	if err != nil {
		return nil, err
	}
	s, err := New(cfg, res.Environment, opts...)
	if err != nil {
		return nil, err
	}
	s.source = res.Package
	logger.LogInfo("session opened from archive", zap.String("session", s.id), zap.String("entry", res.Package.Entry))
	return s, nil
}

// OpenMarkup decodes a bare markup document and starts a session on it.
func OpenMarkup(cfg *common.Config, text string, opts ...Option) (*Session, error) {
	env, err := decoder.Decode(text)
	if err != nil {
		return nil, err
	}
	return New(cfg, env, opts...)
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Revision returns the number of the current tree revision.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Environment returns the current tree. The tree is shared and must not be
// modified; use the edit methods instead.
func (s *Session) Environment() *model.Environment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env
}

// Markup returns the working markup document.
func (s *Session) Markup() *markup.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markupDoc
}

// Record returns the working record document.
func (s *Session) Record() *record.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordDoc
}

// Report returns the last validation report and whether it still applies
// to the current revision.
func (s *Session) Report() (*validator.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report, s.report != nil && s.validated == s.revision
}

// Validated reports whether the current revision passed validation.
func (s *Session) Validated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isValidated()
}

func (s *Session) isValidated() bool {
	return s.report != nil && s.report.Accepted && s.validated == s.revision
}

// apply installs env as a new revision and re-encodes both documents.
// The caller holds s.mu, except during construction.
func (s *Session) apply(env *model.Environment) error {
	md, err := s.markupEnc.Encode(env)
	if err != nil {
		return err
	}
	rd, err := s.recordEnc.Encode(env)
	if err != nil {
		return err
	}
	s.env, s.markupDoc, s.recordDoc = env, md, rd
	s.revision++
	return nil
}

func (s *Session) edit(op string, fn func(env *model.Environment) (*model.Environment, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.env)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.apply(next); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.LogDebug("session edited", zap.String("session", s.id), zap.String("op", op), zap.Uint64("revision", s.revision))
	return nil
}

// AddSubmodel appends a submodel.
func (s *Session) AddSubmodel(sm *model.Submodel) error {
	return s.edit("add submodel", func(env *model.Environment) (*model.Environment, error) {
		return env.AddSubmodel(sm)
	})
}

// RemoveSubmodel removes the submodel named idShort.
func (s *Session) RemoveSubmodel(idShort string) error {
	return s.edit("remove submodel", func(env *model.Environment) (*model.Environment, error) {
		return env.RemoveSubmodel(idShort)
	})
}

// AddElement inserts el below parent at index; a negative index appends.
func (s *Session) AddElement(parent model.Path, el *model.Element, index int) error {
	return s.edit("add element", func(env *model.Environment) (*model.Environment, error) {
		return env.AddElement(parent, el, index)
	})
}

// UpdateElement applies fn to a copy of the element at path.
func (s *Session) UpdateElement(path model.Path, fn func(*model.Element)) error {
	return s.edit("update element", func(env *model.Environment) (*model.Environment, error) {
		return env.UpdateElement(path, fn)
	})
}

// DeleteElement removes the element at path.
func (s *Session) DeleteElement(path model.Path) error {
	return s.edit("delete element", func(env *model.Environment) (*model.Environment, error) {
		return env.DeleteElement(path)
	})
}

// MoveElement moves an element to the position of a sibling.
func (s *Session) MoveElement(from, to model.Path) error {
	return s.edit("move element", func(env *model.Environment) (*model.Environment, error) {
		return env.MoveElement(from, to)
	})
}

// Reorder moves the child at index from to index to.
func (s *Session) Reorder(parent model.Path, from, to int) error {
	return s.edit("reorder", func(env *model.Environment) (*model.Environment, error) {
		return env.Reorder(parent, from, to)
	})
}

// UpdateHeader applies fn to a copy of the shell header and submodel list.
func (s *Session) UpdateHeader(fn func(*model.Environment)) error {
	return s.edit("update header", func(env *model.Environment) (*model.Environment, error) {
		next := env.Clone()
		fn(next)
		return next, nil
	})
}

// Validate runs the validator on the current revision. The session stays
// editable while the remote checks run; a report for a revision that has
// since changed is returned but not recorded as validating the new one.
func (s *Session) Validate(ctx context.Context) (*validator.Report, error) {
	s.mu.Lock()
	env, md, rd, rev := s.env, s.markupDoc, s.recordDoc, s.revision
	s.mu.Unlock()

	report, err := s.validator.Validate(ctx, env, md, rd)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revision == rev {
		s.report, s.validated = report, rev
	} else {
		logger.LogInfo("discarding validation of a superseded revision", zap.String("session", s.id),
			zap.Uint64("validated", rev), zap.Uint64("current", s.revision))
	}
	return report, nil
}

// Repair runs the repair engine on the working markup. The repaired markup
// replaces the working document, the tree is rebuilt from it and the record
// is re-encoded from that tree. Callers re-validate afterwards.
func (s *Session) Repair(_ context.Context) (*repair.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.repairer.Repair(s.markupDoc.Text())
	if err != nil {
		return nil, err
	}
	env, err := decoder.Decode(res.Text)
	if err != nil {
		return nil, fmt.Errorf("re-reading repaired markup: %w", err)
	}
	rd, err := s.recordEnc.Encode(env)
	if err != nil {
		return nil, err
	}
	s.env, s.markupDoc, s.recordDoc = env, markup.NewDocument(res.Text), rd
	s.revision++
	return res, nil
}

// Remediation is the outcome of Remediate.
type Remediation struct {
	Repair *repair.Result    `json:"repair"`
	Report *validator.Report `json:"report"`
}

// Remediate repairs the working markup and validates the result once.
func (s *Session) Remediate(ctx context.Context) (*Remediation, error) {
	res, err := s.Repair(ctx)
	if err != nil {
		return nil, err
	}
	report, err := s.Validate(ctx)
	if err != nil {
		return nil, err
	}
	return &Remediation{Repair: res, Report: report}, nil
}

// Export packages the current documents. It refuses unless the current
// revision passed validation.
func (s *Session) Export(ctx context.Context, p Packager) ([]byte, error) {
	s.mu.Lock()
	if !s.isValidated() {
		s.mu.Unlock()
		return nil, ErrNotValidated
	}
	pkg := &aasx.Package{
		Markup: s.markupDoc.Text(),
		Record: s.recordDoc.Text(),
	}
	if s.source != nil {
		pkg.Thumbnail = s.source.Thumbnail
		pkg.Attachments = s.source.Attachments
	}
	s.mu.Unlock()

	if p == nil {
		p = ArchivePackager
	}
	data, err := p.Package(ctx, pkg)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	logger.LogInfo("session exported", zap.String("session", s.id), zap.Int("bytes", len(data)))
	return data, nil
}
