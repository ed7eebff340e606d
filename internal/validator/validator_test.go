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

package validator

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/model"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/valuetype"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/markup"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/record"
)

func validEnvironment() *model.Environment {
	serial := model.NewProperty("SerialNumber", valuetype.XsdString, "SN-1")
	serial.SemanticID = "0173-1#02-AAM556#002"
	return environmentWith(
		serial,
		model.NewMultiLanguageProperty("Title", model.NewLangStringSet("en", "Pump")),
		model.NewCollection("Address", model.NewProperty("Street", valuetype.XsdString, "Main St")),
	)
}

func encodeBoth(t *testing.T, env *model.Environment) (*markup.Document, *record.Document) {
	t.Helper()
	cfg := common.DefaultConfig()
	md, err := markup.NewEncoder(cfg.Encoder).Encode(env)
	require.NoError(t, err)
	rd, err := record.NewEncoder(cfg.Encoder).Encode(env)
	require.NoError(t, err)
	return md, rd
}

// schemaService answers with the given verdict per form.
func schemaService(t *testing.T, verdicts map[Form]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/validate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var req SchemaRequest
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.NotEmpty(t, req.Schemas)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, verdicts[req.Form])
	}))
	t.Cleanup(srv.Close)
	return srv
}

func remoteConfig(url string) common.ValidatorConfig {
	cfg := common.DefaultConfig().Validator
	cfg.URL = url
	cfg.APIKey = "secret"
	cfg.Timeout = 2 * time.Second
	return cfg
}

func TestValidateAcceptsCompliantDocuments(t *testing.T) {
	srv := schemaService(t, map[Form]string{
		FormRecord: `{"valid":true,"errors":[]}`,
		FormMarkup: `{"valid":true,"errors":[]}`,
	})
	env := validEnvironment()
	md, rd := encodeBoth(t, env)

	report, err := New(remoteConfig(srv.URL)).Validate(context.Background(), env, md, rd)
	require.NoError(t, err)
	assert.True(t, report.Accepted)
	assert.True(t, report.RecordValid)
	assert.True(t, report.MarkupValid)
	assert.False(t, report.RecordCheckedLocally)
	assert.Equal(t, md.Version(), report.MarkupVersion)
	assert.Zero(t, report.Counts.Total())
}

func TestValidateResolvesSchemaErrors(t *testing.T) {
	env := validEnvironment()
	md, rd := encodeBoth(t, env)
	line, ok := md.Index().Line(model.NewPath("Nameplate", "Address", "Street"))
	require.True(t, ok)

	srv := schemaService(t, map[Form]string{
		FormRecord: `{"valid":false,"errors":[{"message":"idShort does not match pattern","path":"submodels.0.submodelElements.2.value.0.idShort"}]}`,
		FormMarkup: `{"valid":false,"errors":[{"message":"Element 'value': This element is not expected.","line":` + strconv.Itoa(line) + `}]}`,
	})

	report, err := New(remoteConfig(srv.URL)).Validate(context.Background(), env, md, rd)
	require.NoError(t, err)
	assert.False(t, report.Accepted)
	assert.Equal(t, Counts{RecordSchema: 1, MarkupSchema: 1}, report.Counts)

	var recordIssue, markupIssue Issue
	for _, i := range report.Issues {
		switch i.Bucket {
		case BucketRecordSchema:
			recordIssue = i
		case BucketMarkupSchema:
			markupIssue = i
		}
	}
	assert.Equal(t, "Nameplate > Address > Street", recordIssue.Where)
	assert.NotEmpty(t, recordIssue.Hint)
	assert.Equal(t, "Nameplate > Address > Street", markupIssue.Where)
	assert.Equal(t, line, markupIssue.Line)
}

func TestValidateTreatsUnavailabilityAsSkip(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"service unavailable", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}},
		{"too many requests", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `<html>gateway</html>`)
		}},
		{"timeout", func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			cfg := remoteConfig(srv.URL)
			cfg.Timeout = 100 * time.Millisecond

			env := validEnvironment()
			md, rd := encodeBoth(t, env)
			report, err := New(cfg).Validate(context.Background(), env, md, rd)
			require.NoError(t, err)
			assert.True(t, report.MarkupUnavailable)
			assert.True(t, report.RecordCheckedLocally, "record falls back to the embedded schema")
			assert.True(t, report.RecordValid)
			assert.True(t, report.Accepted)
		})
	}
}

func TestValidateNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := remoteConfig(url)
	cfg.LocalRecordFallback = false
	env := validEnvironment()
	md, rd := encodeBoth(t, env)

	report, err := New(cfg).Validate(context.Background(), env, md, rd)
	require.NoError(t, err)
	assert.True(t, report.MarkupUnavailable)
	assert.True(t, report.RecordUnavailable)
	assert.True(t, report.Accepted)
}

func TestValidateRejectedRequestFailsTheCheck(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		fallback bool
		want     Counts
	}{
		{"unauthorized with record fallback", http.StatusUnauthorized, true, Counts{MarkupSchema: 1}},
		{"forbidden without fallback", http.StatusForbidden, false, Counts{RecordSchema: 1, MarkupSchema: 1}},
		{"bad request", http.StatusBadRequest, false, Counts{RecordSchema: 1, MarkupSchema: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()
			cfg := remoteConfig(srv.URL)
			cfg.LocalRecordFallback = tt.fallback

			env := validEnvironment()
			md, rd := encodeBoth(t, env)
			report, err := New(cfg).Validate(context.Background(), env, md, rd)
			require.NoError(t, err)
			assert.False(t, report.Accepted)
			assert.False(t, report.MarkupUnavailable)
			assert.False(t, report.MarkupValid)
			assert.False(t, report.RecordUnavailable)
			assert.Equal(t, tt.fallback, report.RecordCheckedLocally)
			assert.Equal(t, tt.want, report.Counts)
			for _, i := range report.Issues {
				assert.Equal(t, KindCheckFailed, i.Kind)
				assert.Contains(t, i.Message, strconv.Itoa(tt.status))
			}
		})
	}
}

func TestRemoteCheckerClassifiesStatus(t *testing.T) {
	for status, want := range map[int]error{
		http.StatusServiceUnavailable: ErrUnavailable,
		http.StatusBadGateway:         ErrUnavailable,
		http.StatusRequestTimeout:     ErrUnavailable,
		http.StatusTooManyRequests:    ErrUnavailable,
		http.StatusUnauthorized:       ErrRejected,
		http.StatusNotFound:           ErrRejected,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		_, err := NewRemoteChecker(remoteConfig(srv.URL)).Check(context.Background(), SchemaRequest{Form: FormMarkup, Document: "<environment/>"})
		srv.Close()
		require.ErrorIs(t, err, want, "status %d", status)
	}
}

func TestValidateLocalIssuesBlockAcceptance(t *testing.T) {
	coll := model.NewCollection("Markings")
	coll.Cardinality = model.CardinalityOne
	env := environmentWith(coll)
	md, rd := encodeBoth(t, env)

	report, err := New(common.ValidatorConfig{}).Validate(context.Background(), env, md, rd)
	require.NoError(t, err)
	assert.False(t, report.Accepted)
	assert.Equal(t, 1, report.Counts.Required)
	assert.True(t, report.MarkupUnavailable)
	assert.True(t, report.RecordUnavailable)
}

func TestValidateDropsConcurrentRuns(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
		_, _ = io.WriteString(w, `{"valid":true,"errors":[]}`)
	}))
	defer srv.Close()

	v := New(remoteConfig(srv.URL))
	env := validEnvironment()
	md, rd := encodeBoth(t, env)

	done := make(chan error, 1)
	go func() {
		_, err := v.Validate(context.Background(), env, md, rd)
		done <- err
	}()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, v.Running())

	_, err := v.Validate(context.Background(), env, md, rd)
	require.ErrorIs(t, err, ErrValidationInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, v.Running())
	assert.Equal(t, int32(2), calls.Load())
}

func TestValidateCancelledContext(t *testing.T) {
	env := validEnvironment()
	md, rd := encodeBoth(t, env)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(common.ValidatorConfig{}).Validate(ctx, env, md, rd)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRecordSchemaChecker(t *testing.T) {
	checker := NewRecordSchemaChecker()

	_, rd := encodeBoth(t, validEnvironment())
	res, err := checker.Check(context.Background(), SchemaRequest{Form: FormRecord, Document: rd.Text()})
	require.NoError(t, err)
	assert.True(t, res.Valid, "%v", res.Errors)

	untyped := model.NewProperty("Untyped", "", "x")
	_, rd = encodeBoth(t, environmentWith(model.NewCollection("Group", untyped)))
	res, err = checker.Check(context.Background(), SchemaRequest{Form: FormRecord, Document: rd.Text()})
	require.NoError(t, err)
	require.False(t, res.Valid)
	require.NotEmpty(t, res.Errors)
	p, ok := rd.ResolveField(res.Errors[0].Field)
	require.True(t, ok)
	assert.Equal(t, "Nameplate/Group/Untyped", p.String())
	assert.True(t, strings.Contains(res.Errors[0].Message, "valueType"))

	_, err = checker.Check(context.Background(), SchemaRequest{Form: FormMarkup, Document: "<environment/>"})
	require.ErrorIs(t, err, ErrUnavailable)
}
