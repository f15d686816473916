// Package cli provides the Cobra-based commands for the schemalint tool:
// validate, repair, report, and the combined check pipeline.
package cli

import (
	"fmt"
	"os"

	"github.com/blade-tech/schemalint/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schemalint",
	Short: "schema completeness validation and auto-repair",
	Long: `schemalint checks generated schema documents for structural completeness
before they are handed to a code generator: every slot a class references and
every enum a slot names must be defined in the same document.

Invalid documents can be mechanically repaired for a small set of
conventionally-named slots (id, name, description, created_at, updated_at);
anything else needs a regenerated schema and is reported instead.`,
	Example: `  # Validate a schema document
  schemalint validate schema.yaml

  # Show definition/reference counts
  schemalint report schema.yaml

  # Synthesize missing conventional slots and print the repaired document
  schemalint repair schema.yaml

  # Validate, repair, re-validate; write the best document back
  schemalint check schema.yaml --write`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", ".schemalint/config.json", "Path to config file")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: text or json (overrides config)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colorized output")
}

// loadConfig loads the layered configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if output != "text" && output != "json" {
			return nil, fmt.Errorf("invalid output format %q (want text or json)", output)
		}
		cfg.Output = output
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.Color = "never"
	}

	switch cfg.Color {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	}

	return cfg, nil
}

// readDocument reads the document text for a command argument.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading schema document: %w", err)
	}
	return string(data), nil
}
