package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintcore/internal/logging"
	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/check/checks"
	"github.com/yaklabco/lintcore/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force   bool
	full    bool
	include []string
	output  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new lintcore configuration file",
		Long: `Create a new .lintcore.yml configuration file in the current directory
with sensible defaults. The file can be customized to enable or disable
checks, change severities, and configure per-check options.

Examples:
  lintcore init                       Create minimal .lintcore.yml
  lintcore init --full                Create full config with all checks documented
  lintcore init --checks Layout/LineLength,Safety/ReversedLink
  lintcore init --output custom.yml   Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all checks documented")
	cmd.Flags().StringSliceVar(&flags.include, "checks", nil,
		"Limit the full template to these qualified check names")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .lintcore.yml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	// Template generation reads check metadata from the registry.
	registry := check.NewRegistry()
	checks.RegisterAll(registry)

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".lintcore.yml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	opts := config.TemplateOptions{
		Full:          flags.full || len(flags.include) > 0,
		IncludeChecks: flags.include,
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template includes all checks with documentation")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'lintcore checks' to see all available checks")

	return nil
}
