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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUnavailable marks a schema check that produced no verdict: the
// collaborator was unreachable, too slow, or said it is unavailable.
var ErrUnavailable = errors.New("schema validation service unavailable")

// ErrRejected marks a request the collaborator refused, typically because of
// a wrong URL or API key. It is not an unavailability.
var ErrRejected = errors.New("schema validation service rejected the request")

// Form names the wire form a schema check runs against.
type Form string

// Wire forms.
const (
	FormMarkup Form = "xml"
	FormRecord Form = "json"
)

// SchemaRequest is one document submitted for schema validation.
type SchemaRequest struct {
	Form     Form     `json:"format"`
	Document string   `json:"document"`
	Schemas  []string `json:"schemas"`
}

// SchemaError is a single schema violation. Line is set for markup checks
// when known; Field carries the JSON location for record checks.
type SchemaError struct {
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Field   string `json:"path,omitempty"`
}

// SchemaResult is the verdict of one schema check.
type SchemaResult struct {
	Valid  bool          `json:"valid"`
	Errors []SchemaError `json:"errors"`
}

// SchemaChecker checks a document against named schemas. An error wrapping
// ErrUnavailable means the check is skipped; any other error fails it.
type SchemaChecker interface {
	Check(ctx context.Context, req SchemaRequest) (*SchemaResult, error)
}

// RemoteChecker calls the remote schema-validation service over HTTP.
type RemoteChecker struct {
	httpClient *http.Client
	url        string
	apiKey     string
	timeout    time.Duration
}

// NewRemoteChecker creates a checker for the service configured in cfg.
// It returns nil when no URL is configured.
func NewRemoteChecker(cfg common.ValidatorConfig) *RemoteChecker {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RemoteChecker{
		httpClient: &http.Client{},
		url:        strings.TrimRight(cfg.URL, "/") + "/validate",
		apiKey:     cfg.APIKey,
		timeout:    timeout,
	}
}

// Check posts req and decodes the verdict. Transport failures, the deadline,
// 5xx, 408 and 429 responses and malformed bodies are reported as
// ErrUnavailable. Any other non-2xx status is ErrRejected.
func (c *RemoteChecker) Check(ctx context.Context, req SchemaRequest) (*SchemaResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding schema request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating schema request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		if unavailableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
		}
		return nil, fmt.Errorf("%w: %s", ErrRejected, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrUnavailable, err)
	}

	var out struct {
		Valid  *bool         `json:"valid"`
		Errors []SchemaError `json:"errors"`
	}
	if err := json.Unmarshal(data, &out); err != nil || out.Valid == nil {
		return nil, fmt.Errorf("%w: malformed response", ErrUnavailable)
	}
	return &SchemaResult{Valid: *out.Valid && len(out.Errors) == 0, Errors: out.Errors}, nil
}

func unavailableStatus(code int) bool {
	return code >= http.StatusInternalServerError ||
		code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests
}
