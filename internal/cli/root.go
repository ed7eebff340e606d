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

// Package cli implements the aasxtool command line: decode, encode, validate
// and repair AAS packages and bare AAS XML documents.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/common"
	"github.com/eclipse-basyx/basyx-go-aasx/internal/common/logger"
)

// Exit codes of aasxtool.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUsage       = 2
	ExitNotAccepted = 3
)

// ErrNotAccepted is returned when a document fails validation.
var ErrNotAccepted = errors.New("document was not accepted by validation")

var rootFlags struct {
	config   string
	logLevel string
}

// loaded by the persistent pre-run of every command
var cfg *common.Config

var rootCmd = &cobra.Command{
	Use:   "aasxtool",
	Short: "Inspect, validate and repair Asset Administration Shell packages",
	Long: `aasxtool reads AASX archives and AAS XML documents.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error
  3  - Document not accepted by validation`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.config, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	logger.Init(rootFlags.logLevel)
	if rootFlags.config == "" {
		cfg = common.DefaultConfig()
		return nil
	}
	c, err := common.LoadConfig(rootFlags.config)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ExitCodeForError maps an error returned by Execute to a process exit code.
func ExitCodeForError(err error) int {
	var usage *usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrNotAccepted):
		return ExitNotAccepted
	case errors.As(err, &usage):
		return ExitUsage
	}
	return ExitError
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }
