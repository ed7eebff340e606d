package cli

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var decodeFlags struct {
	format string
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Print the element tree of a package or document",
	Long: `Decode reads an AASX archive or AAS XML document and prints it.

Formats:
  tree    - element tree as JSON (default)
  record  - AAS JSON document
  markup  - AAS XML document as re-encoded by the editor`,
	Args: RequireInputFile,
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeFlags.format, "format", "f", "tree", "Output format: tree, record or markup")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	s, err := openFile(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch decodeFlags.format {
	case "tree":
		b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(s.Environment(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	case "record":
		_, err = fmt.Fprintln(out, s.Record().Text())
		return err
	case "markup":
		_, err = fmt.Fprint(out, s.Markup().Text())
		return err
	}
	return &usageError{msg: fmt.Sprintf("unknown format %q: use tree, record or markup", decodeFlags.format)}
}
