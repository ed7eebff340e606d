package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var encodeFlags struct {
	output string
}

var encodeCmd = &cobra.Command{
	Use:   "encode <file>",
	Short: "Re-encode a package or document",
	Long: `Encode decodes the input and writes it again in the form selected by
the extension of --output: .aasx for a package with both document forms,
.xml for the markup document or .json for the record document.

Writing a package requires the document to pass validation.`,
	Args: RequireInputFile,
	RunE: runEncode,
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeFlags.output, "output", "o", "", "Output file (.aasx, .xml or .json)")
	_ = encodeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	s, err := openFile(args[0])
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.Context(), s, encodeFlags.output); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", encodeFlags.output)
	return err
}
