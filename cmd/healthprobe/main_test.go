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

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want probeOptions
	}{
		{
			name: "healthprobe defaults to quiet",
			args: []string{"/bin/healthprobe"},
			want: probeOptions{quiet: true, output: "-", timeout: defaultTimeout},
		},
		{
			name: "wget style",
			args: []string{"wget", "--quiet", "--tries=1", "--output-document=-", "--timeout", "7", "http://localhost:5080/health"},
			want: probeOptions{url: "http://localhost:5080/health", quiet: true, output: "-", timeout: 7 * time.Second},
		},
		{
			name: "short flags",
			args: []string{"wget", "-q", "-O", "/tmp/health.json", "-T=3", "--spider", "--no-check-certificate", "http://x/health"},
			want: probeOptions{url: "http://x/health", quiet: true, spider: true, output: "/tmp/health.json", timeout: 3 * time.Second},
		},
		{
			name: "verbose overrides quiet",
			args: []string{"healthprobe", "--debug"},
			want: probeOptions{verbose: true, output: "-", timeout: defaultTimeout},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOptions(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionsErrors(t *testing.T) {
	_, err := parseOptions([]string{"wget", "--timeout", "abc"})
	require.ErrorIs(t, err, errInvalidTimeout)

	_, err = parseOptions([]string{"wget", "--timeout=0"})
	require.ErrorIs(t, err, errInvalidTimeout)

	_, err = parseOptions([]string{"wget", "-O"})
	require.ErrorIs(t, err, errMissingValue)

	_, err = parseOptions([]string{"wget", "--tries"})
	require.ErrorIs(t, err, errMissingValue)
}

func TestDefaultHealthURL(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}
	assert.Equal(t, "http://127.0.0.1:5080/health", defaultHealthURL(env(nil)))
	assert.Equal(t, "http://127.0.0.1:8088/health", defaultHealthURL(env(map[string]string{"SERVER_PORT": "8088"})))
	assert.Equal(t, "http://127.0.0.1:5080/editor/health", defaultHealthURL(env(map[string]string{"SERVER_CONTEXTPATH": "editor/"})))
}

func healthServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"up", http.StatusOK, `{"status":"UP"}`, ""},
		{"server error", http.StatusServiceUnavailable, `{"status":"UP"}`, "unhealthy status code 503"},
		{"down", http.StatusOK, `{"status":"DOWN"}`, `service reports status "DOWN"`},
		{"not json", http.StatusOK, `ok`, "malformed health response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := healthServer(tt.status, tt.body)
			defer srv.Close()

			var out bytes.Buffer
			err := probe(probeOptions{url: srv.URL, output: "-", timeout: time.Second}, &out)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.body, out.String())
		})
	}
}

func TestProbeOutputs(t *testing.T) {
	srv := healthServer(http.StatusOK, `{"status":"UP"}`)
	defer srv.Close()

	var out bytes.Buffer
	require.NoError(t, probe(probeOptions{url: srv.URL, spider: true, output: "-", timeout: time.Second}, &out))
	assert.Empty(t, out.String())

	file := filepath.Join(t.TempDir(), "health.json")
	require.NoError(t, probe(probeOptions{url: srv.URL, output: file, timeout: time.Second}, &out))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"UP"}`, string(data))
}

func TestProbeUnreachable(t *testing.T) {
	srv := healthServer(http.StatusOK, "")
	url := srv.URL
	srv.Close()

	err := probe(probeOptions{url: url, output: "-", timeout: time.Second}, &bytes.Buffer{})
	require.ErrorContains(t, err, "request failed")
}
