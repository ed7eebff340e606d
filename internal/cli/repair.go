package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var repairFlags struct {
	output string
	quiet  bool
}

var repairCmd = &cobra.Command{
	Use:   "repair <file>",
	Short: "Fill and clean up a package or document, then validate it",
	Long: `Repair runs the auto-repair passes on the markup document, validates
the result once and writes it to --output (.aasx, .xml or .json).`,
	Args: RequireInputFile,
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().StringVarP(&repairFlags.output, "output", "o", "", "Output file (.aasx, .xml or .json)")
	repairCmd.Flags().BoolVarP(&repairFlags.quiet, "quiet", "q", false, "Only print the validation verdict")
	_ = repairCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, args []string) error {
	s, err := openFile(args[0])
	if err != nil {
		return err
	}
	res, err := s.Remediate(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !repairFlags.quiet {
		for _, p := range res.Repair.Passes {
			if p.Changes > 0 {
				fmt.Fprintf(out, "%-28s %d\n", p.Name, p.Changes)
			}
		}
	}
	if err := printReport(out, res.Report, false); err != nil {
		return err
	}
	if err := writeOutput(cmd.Context(), s, repairFlags.output); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "wrote %s\n", repairFlags.output)
	return err
}
