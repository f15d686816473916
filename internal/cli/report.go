package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/blade-tech/schemalint/internal/completeness"
	"github.com/blade-tech/schemalint/internal/config"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Show definition and reference counts",
	Long: `Show the completeness report for a schema document: how many classes,
slot definitions, slot references, and enum references it contains, and how
many references are missing a definition.

Missing counts agree exactly with the errors 'schemalint validate' reports.`,
	Example: `  schemalint report schema.yaml
  schemalint report schema.yaml --output json`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return NewExitError(ExitInvalidArguments)
		}
		return runReport(args[0], cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(path string, cfg *config.Configuration, out, errOut io.Writer) error {
	text, err := readDocument(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return NewExitError(ExitInvalidArguments)
	}

	report, err := completeness.BuildReport(text)
	if err != nil {
		return reportParseFailure(path, err, cfg, out, errOut)
	}

	if cfg.Output == "json" {
		if err := json.NewEncoder(out).Encode(report); err != nil {
			return NewExitError(ExitInvalidArguments)
		}
		return nil
	}

	fmt.Fprintf(out, "Completeness report for %s\n", path)
	fmt.Fprintf(out, "  Classes:          %d\n", report.Classes)
	fmt.Fprintf(out, "  Slots defined:    %d\n", report.SlotsDefined)
	fmt.Fprintf(out, "  Slots referenced: %d\n", report.SlotsReferenced)
	fmt.Fprintf(out, "  Slots missing:    %d\n", report.SlotsMissing)
	fmt.Fprintf(out, "  Enums defined:    %d\n", report.EnumsDefined)
	fmt.Fprintf(out, "  Enums referenced: %d\n", report.EnumsReferenced)
	fmt.Fprintf(out, "  Enums missing:    %d\n", report.EnumsMissing)
	return nil
}
