package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireInputFile validates that exactly one input file argument is provided.
func RequireInputFile(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return &usageError{msg: fmt.Sprintf(`missing required argument: <file>

Usage: %s

Example:
  %s pump.aasx`, cmd.UseLine(), cmd.CommandPath())}
	}
	if len(args) > 1 {
		return &usageError{msg: fmt.Sprintf("accepts 1 arg(s), received %d", len(args))}
	}
	return nil
}
