package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintcore/internal/configloader"
	"github.com/yaklabco/lintcore/internal/logging"
	"github.com/yaklabco/lintcore/pkg/cache"
	"github.com/yaklabco/lintcore/pkg/check"
	"github.com/yaklabco/lintcore/pkg/check/checks"
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/engine"
	"github.com/yaklabco/lintcore/pkg/parser"
	"github.com/yaklabco/lintcore/pkg/reporter"
	"github.com/yaklabco/lintcore/pkg/runner"
)

// ErrOffensesFound is returned when the run finds failing offenses.
var ErrOffensesFound = errors.New("offenses found")

// cacheAppName is the directory name under the XDG cache dir.
const cacheAppName = "lintcore"

type lintFlags struct {
	format     string
	flavor     string
	ignore     []string
	enable     []string
	disable    []string
	strict     bool
	noContext  bool
	compact    bool
	flat       bool
	nameFormat string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Inspect files for offenses",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Inspect files for offenses against the configured checks.

By default, inspects every non-vendored file under the current
directory. Specify paths to inspect specific files or directories.

Examples:
  lintcore lint                    # Inspect current directory
  lintcore lint src/               # Inspect a directory
  lintcore lint README.md          # Inspect a single file
  lintcore lint --fix              # Inspect and autocorrect offenses
  lintcore lint --fix --dry-run    # Show corrections without applying
  lintcore lint --format json      # Output as JSON for CI
  lintcore lint --strict           # Any offense fails the run`

// lintSession bundles everything one configured run needs. The watch
// command reuses a session across re-runs.
type lintSession struct {
	cfg      *config.Config
	registry *check.Registry
	runner   *runner.Runner
	runOpts  runner.Options
	reporter reporter.Reporter
	strict   bool
}

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session, err := newLintSession(cmd, args, cfg, flags, info)
	if err != nil {
		return err
	}

	return session.runOnce(ctx)
}

// runOnce executes a single run, reports it, and maps offenses to an error.
func (s *lintSession) runOnce(ctx context.Context) error {
	logger := logging.Default()

	result, err := s.runner.Run(ctx, s.runOpts)
	if err != nil {
		return errors.Join(errors.New("run failed"), err)
	}

	if _, err := s.reporter.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, s.strict); code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrOffensesFound}
	}

	return nil
}

// newLintSession resolves configuration and assembles the registry,
// engine, pipeline, runner, cache, and reporter for a run.
func newLintSession(
	cmd *cobra.Command,
	args []string,
	cfg *config.Config,
	flags *lintFlags,
	info BuildInfo,
) (*lintSession, error) {
	logger := logging.Default()

	// Map string flags to typed config values. Only values explicitly
	// provided on the command line may override lower layers.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	cfg.Ignore = flags.ignore
	cfg.EnableChecks = flags.enable
	cfg.DisableChecks = flags.disable

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	registry := check.NewRegistry()
	checks.RegisterAll(registry)

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     registry,
		CLIConfig:    cfg,
	})
	if err != nil {
		return nil, &ExitError{Code: ExitConfigError, Err: fmt.Errorf("load configuration: %w", err)}
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	eng := engine.New(parser.NewAuto(flags.flavor), registry)
	lintRunner := runner.New(engine.NewPipeline(eng))
	lintRunner.ToolVersion = info.Version

	if !finalCfg.NoCache {
		store, err := cache.Open(cacheAppName)
		if err != nil {
			logger.Warn("result cache unavailable", logging.FieldError, err)
		} else {
			lintRunner.Cache = store
		}
	}

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir

	rep, err := buildReporter(cmd, flags, finalCfg, info, workDir)
	if err != nil {
		return nil, err
	}

	return &lintSession{
		cfg:      finalCfg,
		registry: registry,
		runner:   lintRunner,
		runOpts:  runOpts,
		reporter: rep,
		strict:   flags.strict,
	}, nil
}

func buildReporter(
	cmd *cobra.Command,
	flags *lintFlags,
	cfg *config.Config,
	info BuildInfo,
	workDir string,
) (reporter.Reporter, error) {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}

	var errWriter io.Writer = os.Stderr
	if cmd != nil {
		errWriter = cmd.ErrOrStderr()
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: errWriter,
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: !flags.flat,
		Compact:     flags.compact,
		NameFormat:  config.NameFormat(flags.nameFormat),
		ToolVersion: info.Version,
		WorkingDir:  workDir,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically correct offenses")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show corrections without applying them")
	cmd.Flags().BoolVar(&cfg.SuppressUnfixable, "suppress-unfixable", false,
		"insert todo directives for offenses that cannot be corrected")
	cmd.Flags().BoolVar(&cfg.IgnoreDirectives, "ignore-directives", false,
		"report offenses on lines disabled by inline directives")
	cmd.Flags().BoolVar(&cfg.DisplayCheckNames, "display-check-names", false,
		"prefix offense messages with the check name")
	cmd.Flags().BoolVar(&cfg.ExtraDetails, "extra-details", false,
		"append configured details to offense messages")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif, diff")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "check names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "check names to disable")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&cfg.NoCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat any offense as a failure for the exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.flat, "flat", false, "do not group offenses by file")
	cmd.Flags().StringVar(&flags.nameFormat, "name-format", "qualified",
		"check name format in output: qualified or short")
}
