package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintcore/internal/logging"
	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/check/checks"
	"github.com/yaklabco/lintcore/pkg/config"
)

type checksFlags struct {
	nameFormat string
	format     string
	department string
}

const formatJSON = "json"

// checkInfo represents a check in JSON output.
type checkInfo struct {
	Name        string `json:"name"`
	Department  string `json:"department"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Fixable     bool   `json:"fixable"`
	Enabled     bool   `json:"enabled"`
}

func newChecksCommand() *cobra.Command {
	flags := &checksFlags{}

	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List registered checks",
		Long: `List all registered checks with their qualified names, descriptions,
default severity, and whether they support autocorrection.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := check.NewRegistry()
			checks.RegisterAll(registry)

			all := registry.All()
			if flags.department != "" {
				all = filterByDepartment(all, flags.department)
			}

			if flags.format == formatJSON {
				return outputChecksJSON(cmd, all)
			}

			logger := logging.NewInteractive()

			if len(all) == 0 {
				logger.Info("no checks registered")
				return nil
			}

			logger.Info("registered checks")

			nameFormat := config.NameFormat(flags.nameFormat)

			for _, c := range all {
				fixable := "-"
				if check.CanFix(c) {
					fixable = "yes"
				}

				logger.Info(config.FormatCheckName(nameFormat, c.Name()),
					logging.FieldSeverity, check.DefaultSeverity(c.Name()),
					logging.FieldFixable, fixable,
					logging.FieldDescription, c.Description(),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.nameFormat, "name-format", "qualified",
		"check name format in output: qualified or short")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().StringVar(&flags.department, "department", "",
		"only list checks in this department")

	return cmd
}

// filterByDepartment keeps checks belonging to the given department.
func filterByDepartment(all []check.Check, department string) []check.Check {
	filtered := make([]check.Check, 0, len(all))
	for _, c := range all {
		if config.Department(c.Name()) == department {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// outputChecksJSON outputs checks as a JSON array.
func outputChecksJSON(cmd *cobra.Command, all []check.Check) error {
	infos := make([]checkInfo, 0, len(all))
	for _, c := range all {
		infos = append(infos, checkInfo{
			Name:        c.Name(),
			Department:  config.Department(c.Name()),
			Description: c.Description(),
			Severity:    string(check.DefaultSeverity(c.Name())),
			Fixable:     check.CanFix(c),
			Enabled:     c.DefaultEnabled(),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding checks: %w", err)
	}
	return nil
}
