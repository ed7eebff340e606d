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

// Package validator implements the two-phase check of an editing session:
// local structural and type checks on the tree, then schema compliance of
// both wire forms through an external collaborator.
//
// An unreachable collaborator never fails a validation. Its check is marked
// unavailable and the remaining checks decide acceptance.
package validator

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/record"
)

// ErrValidationInProgress is returned when a run is requested while another
// one is still executing. The request is dropped.
var ErrValidationInProgress = errors.New("validation already in progress")

// Report is the combined outcome of one validation run.
type Report struct {
	Local  *LocalResult `json:"local"`
	Issues []Issue      `json:"issues"`
	Counts Counts       `json:"counts"`

	RecordValid          bool `json:"recordValid"`
	RecordUnavailable    bool `json:"recordUnavailable"`
	RecordCheckedLocally bool `json:"recordCheckedLocally"`
	MarkupValid          bool `json:"markupValid"`
	MarkupUnavailable    bool `json:"markupUnavailable"`

	// MarkupVersion is the digest of the markup the report was computed for.
	MarkupVersion string `json:"markupVersion"`
	Accepted      bool   `json:"accepted"`
}

// Option configures a Validator.
type Option func(*Validator)

// WithRemote replaces the collaborator built from the configuration.
// Passing nil disables remote checks.
func WithRemote(c SchemaChecker) Option {
	return func(v *Validator) { v.remote = c }
}

// WithRecordFallback replaces the checker used for the record form when the
// collaborator is unavailable. Passing nil disables the fallback.
func WithRecordFallback(c SchemaChecker) Option {
	return func(v *Validator) { v.fallback = c }
}

// Validator runs validations. At most one run executes at a time.
type Validator struct {
	cfg      common.ValidatorConfig
	remote   SchemaChecker
	fallback SchemaChecker
	running  atomic.Bool
}

// New creates a Validator for cfg.
func New(cfg common.ValidatorConfig, opts ...Option) *Validator {
	v := &Validator{cfg: cfg}
	if rc := NewRemoteChecker(cfg); rc != nil {
		v.remote = rc
	}
	if cfg.LocalRecordFallback {
		v.fallback = NewRecordSchemaChecker()
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Running reports whether a validation run is in flight.
func (v *Validator) Running() bool { return v.running.Load() }

type outcome struct {
	result      *SchemaResult
	unavailable bool
	local       bool
	// err is set when the check ran but produced no verdict for a reason
	// other than unavailability.
	err error
}

// Validate checks env and the two documents encoded from it. The documents
// must belong to the same revision of the tree.
func (v *Validator) Validate(ctx context.Context, env *model.Environment, markupDoc *markup.Document, recordDoc *record.Document) (*Report, error) {
	if !v.running.CompareAndSwap(false, true) {
		return nil, ErrValidationInProgress
	}
	defer v.running.Store(false)

	report := &Report{Local: CheckLocal(env)}
	report.Issues = append(report.Issues, report.Local.Issues...)

	var recordOut, markupOut outcome
	var g errgroup.Group
	goAssign(&g, func() (outcome, error) { return v.checkRecord(ctx, recordDoc), ctx.Err() }, &recordOut)
	goAssign(&g, func() (outcome, error) { return v.checkMarkup(ctx, markupDoc), ctx.Err() }, &markupOut)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.RecordUnavailable = recordOut.unavailable
	report.RecordCheckedLocally = recordOut.local
	report.RecordValid = recordOut.result != nil && recordOut.result.Valid
	if recordOut.result != nil {
		report.Issues = append(report.Issues, recordIssues(recordOut.result, recordDoc)...)
	}
	if recordOut.err != nil {
		report.Issues = append(report.Issues, checkFailed(BucketRecordSchema, recordOut.err))
	}

	report.MarkupUnavailable = markupOut.unavailable
	report.MarkupValid = markupOut.result != nil && markupOut.result.Valid
	if markupOut.result != nil {
		report.Issues = append(report.Issues, markupIssues(markupOut.result, markupDoc)...)
	}
	if markupOut.err != nil {
		report.Issues = append(report.Issues, checkFailed(BucketMarkupSchema, markupOut.err))
	}
	if markupDoc != nil {
		report.MarkupVersion = markupDoc.Version()
	}

	report.Counts = countIssues(report.Issues)
	report.Accepted = report.Local.OK() &&
		(report.RecordValid || report.RecordUnavailable) &&
		(report.MarkupValid || report.MarkupUnavailable)

	fields := []zap.Field{
		zap.Bool("accepted", report.Accepted),
		zap.Int("required", report.Counts.Required),
		zap.Int("recordSchema", report.Counts.RecordSchema),
		zap.Int("markupSchema", report.Counts.MarkupSchema),
	}
	if report.MarkupUnavailable || report.RecordUnavailable {
		logger.LogWarning("validation finished without remote schema verdict", append(fields,
			zap.Bool("markupUnavailable", report.MarkupUnavailable),
			zap.Bool("recordUnavailable", report.RecordUnavailable))...)
	} else {
		logger.LogInfo("validation finished", fields...)
	}
	return report, nil
}

func (v *Validator) checkRecord(ctx context.Context, doc *record.Document) outcome {
	if doc == nil {
		return outcome{unavailable: true}
	}
	req := SchemaRequest{Form: FormRecord, Document: doc.Text(), Schemas: v.cfg.RecordSchemas}
	var remoteErr error
	if v.remote != nil {
		res, err := v.remote.Check(ctx, req)
		if err == nil {
			return outcome{result: res}
		}
		remoteErr = reportCheckError("record", err)
	}
	if v.fallback != nil {
		res, err := v.fallback.Check(ctx, req)
		if err == nil {
			return outcome{result: res, local: true}
		}
		logger.LogWarning("local record schema check failed", zap.Error(err))
	}
	if remoteErr != nil {
		return outcome{err: remoteErr}
	}
	return outcome{unavailable: true}
}

func (v *Validator) checkMarkup(ctx context.Context, doc *markup.Document) outcome {
	if v.remote == nil || doc == nil {
		return outcome{unavailable: true}
	}
	res, err := v.remote.Check(ctx, SchemaRequest{Form: FormMarkup, Document: doc.Text(), Schemas: v.cfg.MarkupSchemas})
	if err != nil {
		if err := reportCheckError("markup", err); err != nil {
			return outcome{err: err}
		}
		return outcome{unavailable: true}
	}
	return outcome{result: res}
}

// reportCheckError logs a failed remote check. Unavailability is a warning
// and yields nil; any other failure is logged as an error and returned.
func reportCheckError(form string, err error) error {
	if errors.Is(err, ErrUnavailable) {
		logger.LogWarning(form+" schema check unavailable", zap.Error(err))
		return nil
	}
	logger.LogError(form+" schema check failed", err)
	return err
}

func checkFailed(bucket Bucket, err error) Issue {
	return Issue{
		Bucket:  bucket,
		Kind:    KindCheckFailed,
		Message: err.Error(),
		Hint:    "Check the validator URL and API key in the configuration.",
	}
}

func recordIssues(res *SchemaResult, doc *record.Document) []Issue {
	var out []Issue
	for _, e := range res.Errors {
		issue := Issue{Bucket: BucketRecordSchema, Kind: KindSchema, Message: e.Message, Field: e.Field, Hint: Hint(e.Message)}
		if doc != nil && e.Field != "" {
			if p, ok := doc.ResolveField(e.Field); ok {
				issue.Path = p
				issue.Where = p.Human()
			}
		}
		out = append(out, issue)
	}
	if !res.Valid && len(out) == 0 {
		out = append(out, Issue{Bucket: BucketRecordSchema, Kind: KindSchema, Message: "record rejected without details"})
	}
	return out
}

func markupIssues(res *SchemaResult, doc *markup.Document) []Issue {
	var out []Issue
	for _, e := range res.Errors {
		issue := Issue{Bucket: BucketMarkupSchema, Kind: KindSchema, Message: e.Message, Line: e.Line, Hint: Hint(e.Message)}
		if doc != nil && e.Line > 0 {
			if p, near, ok := doc.ResolveLine(e.Line); ok {
				issue.Path = p
				issue.Where = p.Human()
			} else {
				issue.Near = near
			}
		}
		out = append(out, issue)
	}
	if !res.Valid && len(out) == 0 {
		out = append(out, Issue{Bucket: BucketMarkupSchema, Kind: KindSchema, Message: "markup rejected without details"})
	}
	return out
}

// goAssign runs fn within g and stores its result in dst on success.
func goAssign[T any](g *errgroup.Group, fn func() (T, error), dst *T) {
	g.Go(func() error {
		r, err := fn()
		if err != nil {
			return err
		}
		*dst = r
		return nil
	})
}
