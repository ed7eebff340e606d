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

// Command healthprobe checks the editor service health endpoint from inside a
// distroless image. It accepts the wget flags commonly used in container
// HEALTHCHECK lines, so existing definitions keep working.
package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	defaultPort    = "5080"
	defaultTimeout = 5 * time.Second
	healthyStatus  = "UP"
)

var (
	errMissingValue   = errors.New("flag needs a value")
	errInvalidTimeout = errors.New("timeout must be a positive number of seconds")
)

type probeOptions struct {
	url     string
	quiet   bool
	spider  bool
	output  string
	verbose bool
	timeout time.Duration
}

func main() {
	opts, err := parseOptions(os.Args)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "healthprobe:", err)
		os.Exit(2)
	}
	if opts.url == "" {
		opts.url = defaultHealthURL(os.Getenv)
	}
	if opts.verbose {
		_, _ = fmt.Fprintf(os.Stderr, "healthprobe: GET %s (timeout %s)\n", opts.url, opts.timeout)
	}
	if err := probe(opts, os.Stdout); err != nil {
		if !opts.quiet {
			_, _ = fmt.Fprintln(os.Stderr, "healthprobe:", err)
		}
		os.Exit(1)
	}
}

// parseOptions reads args in wget style. Invoked as "healthprobe" the probe
// is quiet unless --verbose is given.
func parseOptions(args []string) (probeOptions, error) {
	opts := probeOptions{output: "-", timeout: defaultTimeout}
	if filepath.Base(args[0]) == "healthprobe" {
		opts.quiet = true
	}

	rest := args[1:]
	next := func(name string) (string, error) {
		if len(rest) == 0 {
			return "", fmt.Errorf("%s: %w", name, errMissingValue)
		}
		v := rest[0]
		rest = rest[1:]
		return v, nil
	}

	for len(rest) > 0 {
		arg := rest[0]
		rest = rest[1:]
		name, value, hasValue := strings.Cut(arg, "=")

		switch name {
		case "-q", "--quiet":
			opts.quiet = true
		case "-v", "--verbose", "--debug":
			opts.verbose = true
			opts.quiet = false
		case "--spider":
			opts.spider = true
		case "--tries":
			if !hasValue {
				if _, err := next(name); err != nil {
					return opts, err
				}
			}
		case "-O", "--output-document":
			if !hasValue {
				v, err := next(name)
				if err != nil {
					return opts, err
				}
				value = v
			}
			opts.output = value
		case "-T", "--timeout":
			if !hasValue {
				v, err := next(name)
				if err != nil {
					return opts, err
				}
				value = v
			}
			secs, err := strconv.Atoi(value)
			if err != nil || secs <= 0 {
				return opts, fmt.Errorf("%s %q: %w", name, value, errInvalidTimeout)
			}
			opts.timeout = time.Duration(secs) * time.Second
		default:
			if strings.HasPrefix(arg, "-") {
				continue
			}
			opts.url = arg
		}
	}
	if opts.output == "" {
		opts.output = "-"
	}
	return opts, nil
}

// defaultHealthURL builds the local health URL from the same environment
// variables the service reads its server settings from.
func defaultHealthURL(getenv func(string) string) string {
	port := getenv("SERVER_PORT")
	if port == "" {
		port = defaultPort
	}
	contextPath := strings.TrimRight(getenv("SERVER_CONTEXTPATH"), "/")
	if contextPath != "" && !strings.HasPrefix(contextPath, "/") {
		contextPath = "/" + contextPath
	}
	return fmt.Sprintf("http://127.0.0.1:%s%s/health", port, contextPath)
}

// probe fetches the health endpoint and fails unless it answers below 400
// with a body whose status is UP. The body is copied to stdout or the output
// file unless spider mode is on.
func probe(opts probeOptions, stdout io.Writer) error {
	client := &http.Client{Timeout: opts.timeout}
	resp, err := client.Get(opts.url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unhealthy status code %d", resp.StatusCode)
	}
	var health struct {
		Status string `json:"status"`
	}
	if err := jsoniter.Unmarshal(body, &health); err != nil {
		return fmt.Errorf("malformed health response: %w", err)
	}
	if !strings.EqualFold(health.Status, healthyStatus) {
		return fmt.Errorf("service reports status %q", health.Status)
	}

	if opts.spider {
		return nil
	}
	if opts.output == "-" {
		_, err = stdout.Write(body)
		return err
	}
	return os.WriteFile(opts.output, body, 0o600)
}
