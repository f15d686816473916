package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/blade-tech/schemalint/internal/completeness"
	"github.com/blade-tech/schemalint/internal/config"
	"github.com/blade-tech/schemalint/internal/pipeline"
	"github.com/blade-tech/schemalint/internal/progress"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	checkWriteFlag  bool
	checkStrictFlag bool
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate, auto-repair, and re-validate in one pass",
	Long: `Run the full pipeline on a schema document: validate, auto-repair if
invalid, then re-validate the repaired document.

The policy is fail-open: when repair cannot achieve full validity, the
partially repaired document is still the one carried forward (and written
with --write), since it gives the downstream code generator a better chance
than the original.

Exit Codes:
  0 - Document is valid, or was fully repaired
  1 - Completeness errors remain after repair (or the document needed
      repairs and --strict was given)
  2 - Document could not be parsed
  3 - Invalid arguments`,
	Example: `  schemalint check schema.yaml
  schemalint check schema.yaml --write
  schemalint check schema.yaml --strict   # CI gate: repaired counts as failure`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return NewExitError(ExitInvalidArguments)
		}
		return runCheck(args[0], cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVarP(&checkWriteFlag, "write", "w", false, "Write the best available document back to the file")
	checkCmd.Flags().BoolVar(&checkStrictFlag, "strict", false, "Fail when the document needed repairs")
}

func runCheck(path string, cfg *config.Configuration, out, errOut io.Writer) error {
	text, err := readDocument(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return NewExitError(ExitInvalidArguments)
	}

	var display *progress.Display
	if cfg.ShowProgress && cfg.Output == "text" {
		display = progress.NewDisplay(progress.DetectTerminalCapabilities())
		display.Start(fmt.Sprintf("Checking %s", path))
	}

	outcome := pipeline.Run(text)

	if display != nil {
		if outcome.State == pipeline.StateValid || outcome.State == pipeline.StateRepaired {
			display.Succeed(outcome.Summary())
		} else {
			display.Fail(outcome.Summary())
		}
	}

	if checkWriteFlag || cfg.WriteInPlace {
		if outcome.State == pipeline.StateRepaired || outcome.State == pipeline.StatePartial {
			if err := writeRepaired(path, outcome.Document, true, "", out, errOut); err != nil {
				return err
			}
		}
	}

	if cfg.Output == "json" {
		if err := printCheckJSON(outcome, out); err != nil {
			return NewExitError(ExitInvalidArguments)
		}
	} else {
		printCheckText(outcome, out)
	}

	return checkExitError(outcome, checkStrictFlag || cfg.Strict)
}

func printCheckText(outcome *pipeline.Outcome, out io.Writer) {
	switch outcome.State {
	case pipeline.StateValid:
		fmt.Fprintf(out, "%s %s\n", color.GreenString("✓"), outcome.Summary())
	case pipeline.StateRepaired:
		fmt.Fprintf(out, "%s %s\n", color.GreenString("✓"), outcome.Summary())
		for _, msg := range completeness.Messages(outcome.Repairs) {
			fmt.Fprintf(out, "  %s %s\n", color.GreenString("+"), msg)
		}
	case pipeline.StatePartial:
		fmt.Fprintf(out, "%s %s\n", color.YellowString("!"), outcome.Summary())
		for _, msg := range completeness.Messages(outcome.Repairs) {
			fmt.Fprintf(out, "  %s %s\n", color.GreenString("+"), msg)
		}
		for _, e := range outcome.Remaining {
			fmt.Fprintf(out, "  %s %s\n", color.RedString("-"), e.Message())
		}
	default:
		fmt.Fprintf(out, "%s %s\n", color.RedString("✗"), outcome.Summary())
	}
}

func printCheckJSON(outcome *pipeline.Outcome, out io.Writer) error {
	states := map[pipeline.State]string{
		pipeline.StateUnparseable: "unparseable",
		pipeline.StateValid:       "valid",
		pipeline.StateRepaired:    "repaired",
		pipeline.StatePartial:     "partial",
	}

	payload := struct {
		State     string   `json:"state"`
		Repairs   []string `json:"repairs"`
		Remaining []string `json:"remaining"`
	}{
		State:   states[outcome.State],
		Repairs: completeness.Messages(outcome.Repairs),
	}
	for _, e := range outcome.Remaining {
		payload.Remaining = append(payload.Remaining, e.Message())
	}
	return json.NewEncoder(out).Encode(payload)
}

func checkExitError(outcome *pipeline.Outcome, strict bool) error {
	switch outcome.State {
	case pipeline.StateValid:
		return nil
	case pipeline.StateRepaired:
		if strict {
			return NewExitError(ExitIncomplete)
		}
		return nil
	case pipeline.StatePartial:
		return NewExitError(ExitIncomplete)
	default:
		return NewExitError(ExitUnparseable)
	}
}
