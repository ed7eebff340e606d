package cli

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/eclipse-basyx/basyx-go-aasx/internal/validator"
)

var validateFlags struct {
	json bool
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a package or document",
	Long: `Validate runs the local checks and the schema checks on the input.
Schema checks use the remote validator from the configuration and fall back
to the built-in record schema when it cannot be reached.`,
	Args: RequireInputFile,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false, "Print the full report as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := openFile(args[0])
	if err != nil {
		return err
	}
	report, err := s.Validate(cmd.Context())
	if err != nil {
		return err
	}
	if err := printReport(cmd.OutOrStdout(), report, validateFlags.json); err != nil {
		return err
	}
	if !report.Accepted {
		return ErrNotAccepted
	}
	return nil
}

func printReport(w io.Writer, report *validator.Report, asJSON bool) error {
	if asJSON {
		b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	for _, is := range report.Issues {
		loc := "-"
		switch {
		case is.Located():
			loc = is.Where
		case is.Near != "":
			loc = "near " + is.Near
		case is.Line > 0:
			loc = fmt.Sprintf("line %d", is.Line)
		}
		fmt.Fprintf(w, "[%s] %s: %s\n", is.Bucket, loc, is.Message)
		if is.Hint != "" {
			fmt.Fprintf(w, "    hint: %s\n", is.Hint)
		}
	}
	fmt.Fprintf(w, "required: %d, record schema: %d, markup schema: %d\n",
		report.Counts.Required, report.Counts.RecordSchema, report.Counts.MarkupSchema)
	fmt.Fprintf(w, "record: %s, markup: %s\n",
		verdict(report.RecordValid, report.RecordUnavailable, report.RecordCheckedLocally),
		verdict(report.MarkupValid, report.MarkupUnavailable, false))
	if report.Accepted {
		_, err := fmt.Fprintln(w, "accepted")
		return err
	}
	_, err := fmt.Fprintln(w, "not accepted")
	return err
}

func verdict(valid, unavailable, local bool) string {
	switch {
	case unavailable:
		return "not checked (validator unavailable)"
	case valid && local:
		return "valid (local schema)"
	case valid:
		return "valid"
	}
	return "invalid"
}
