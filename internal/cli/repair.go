package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/blade-tech/schemalint/internal/completeness"
	"github.com/blade-tech/schemalint/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	repairWriteFlag bool
	repairOutFlag   string
)

var repairCmd = &cobra.Command{
	Use:   "repair <file>",
	Short: "Synthesize missing conventional slot definitions",
	Long: `Mechanically inject slot definitions for referenced-but-undefined slots
from the closed candidate set:

  id          - string, identifier, required (one referencing class suffices)
  name        - string (needs two referencing classes)
  description - string (needs two referencing classes)
  created_at  - datetime (needs two referencing classes)
  updated_at  - datetime (needs two referencing classes)

Slots outside this set are never synthesized; they remain as validation
errors and the schema should be regenerated upstream instead. Existing
definitions are never altered. Unparseable input passes through unchanged.

By default the repaired document is printed to stdout; use --write to modify
the file in place.`,
	Example: `  schemalint repair schema.yaml
  schemalint repair schema.yaml --write
  schemalint repair schema.yaml --out repaired.yaml`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return NewExitError(ExitInvalidArguments)
		}
		return runRepair(args[0], cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(repairCmd)
	repairCmd.Flags().BoolVarP(&repairWriteFlag, "write", "w", false, "Rewrite the input file with the repaired document")
	repairCmd.Flags().StringVar(&repairOutFlag, "out", "", "Write the repaired document to this path")
}

func runRepair(path string, cfg *config.Configuration, out, errOut io.Writer) error {
	text, err := readDocument(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return NewExitError(ExitInvalidArguments)
	}

	repaired, repairs := completeness.AutoRepair(text)

	if len(repairs) == 0 {
		fmt.Fprintln(errOut, "No repairs applied")
	} else {
		fmt.Fprintf(errOut, "Applied %d repair(s):\n", len(repairs))
		for _, msg := range completeness.Messages(repairs) {
			fmt.Fprintf(errOut, "  %s %s\n", color.GreenString("+"), msg)
		}
	}

	return writeRepaired(path, repaired, repairWriteFlag || cfg.WriteInPlace, repairOutFlag, out, errOut)
}

// writeRepaired routes the repaired document to the file, an alternate
// path, or stdout.
func writeRepaired(path, repaired string, inPlace bool, outPath string, out, errOut io.Writer) error {
	switch {
	case outPath != "":
		if err := os.WriteFile(outPath, []byte(repaired), 0644); err != nil {
			fmt.Fprintf(errOut, "writing repaired document: %v\n", err)
			return NewExitError(ExitInvalidArguments)
		}
	case inPlace:
		if err := os.WriteFile(path, []byte(repaired), 0644); err != nil {
			fmt.Fprintf(errOut, "writing repaired document: %v\n", err)
			return NewExitError(ExitInvalidArguments)
		}
	default:
		fmt.Fprint(out, repaired)
	}
	return nil
}
