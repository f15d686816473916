package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/blade-tech/schemalint/internal/completeness"
	"github.com/blade-tech/schemalint/internal/config"
	"github.com/blade-tech/schemalint/internal/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check that every slot and enum reference resolves",
	Long: `Check a schema document for structural completeness.

Every slot named in a class's slot list must be defined in the top-level
'slots' section, and every enum-style range must be defined in the top-level
'enums' section. Errors are reported in document order.

Exit Codes:
  0 - Document is valid
  1 - Document has completeness errors
  2 - Document could not be parsed
  3 - Invalid arguments (missing file, bad flags)`,
	Example: `  schemalint validate schema.yaml
  schemalint validate schema.yaml --output json`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return NewExitError(ExitInvalidArguments)
		}
		return runValidate(args[0], cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string, cfg *config.Configuration, out, errOut io.Writer) error {
	text, err := readDocument(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return NewExitError(ExitInvalidArguments)
	}

	result, err := completeness.Validate(text)
	if err != nil {
		return reportParseFailure(path, err, cfg, out, errOut)
	}

	if cfg.Output == "json" {
		payload := struct {
			Valid  bool     `json:"valid"`
			Errors []string `json:"errors"`
		}{Valid: result.Valid, Errors: result.Messages()}
		if err := json.NewEncoder(out).Encode(payload); err != nil {
			return NewExitError(ExitInvalidArguments)
		}
		if !result.Valid {
			return NewExitError(ExitIncomplete)
		}
		return nil
	}

	if result.Valid {
		fmt.Fprintf(out, "%s %s is complete\n", color.GreenString("✓"), path)
		return nil
	}

	fmt.Fprintf(out, "%s %s has %d completeness error(s):\n", color.RedString("✗"), path, len(result.Errors))
	for _, msg := range result.Messages() {
		fmt.Fprintf(out, "  - %s\n", msg)
	}
	return NewExitError(ExitIncomplete)
}

// reportParseFailure prints the distinguished parse-failure outcome. It is
// shared by every command so an unparseable document always exits 2.
func reportParseFailure(path string, err error, cfg *config.Configuration, out, errOut io.Writer) error {
	var parseErr *schema.ParseError
	if !errors.As(err, &parseErr) {
		fmt.Fprintln(errOut, err)
		return NewExitError(ExitInvalidArguments)
	}

	if cfg.Output == "json" {
		payload := struct {
			Valid      bool   `json:"valid"`
			ParseError string `json:"parse_error"`
		}{Valid: false, ParseError: parseErr.Error()}
		json.NewEncoder(out).Encode(payload)
	} else {
		fmt.Fprintf(out, "%s %s: %v\n", color.RedString("✗"), path, parseErr)
	}
	return NewExitError(ExitUnparseable)
}
