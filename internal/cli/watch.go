package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/lintcore/internal/logging"
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/langdetect"
)

// defaultDebounce coalesces editor save bursts into one re-run.
const defaultDebounce = 300 * time.Millisecond

func newWatchCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-run inspection when files change",
		Long: `Watch the given paths and re-run inspection whenever a file changes.

Runs once immediately, then keeps running until interrupted. Offenses
are reported after every run; the command itself only fails on setup
or watcher errors.

Examples:
  lintcore watch                  # Watch current directory
  lintcore watch src/ docs/       # Watch specific directories
  lintcore watch --fix            # Autocorrect on every change`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, &cfg, flags, info, debounce)
		},
	}

	addLintFlags(cmd, &cfg, flags)
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce,
		"delay before re-running after a change")

	return cmd
}

func runWatch(
	cmd *cobra.Command,
	args []string,
	cfg *config.Config,
	flags *lintFlags,
	info BuildInfo,
	debounce time.Duration,
) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.Default()

	session, err := newLintSession(cmd, args, cfg, flags, info)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Join(errors.New("create watcher"), err)
	}
	defer watcher.Close()

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for _, root := range roots {
		if err := watchTree(watcher, root); err != nil {
			return errors.Join(errors.New("watch "+root), err)
		}
	}

	// First run happens before any change.
	reportRun(ctx, session, logger)

	trigger := make(chan struct{}, 1)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return pumpEvents(ctx, watcher, trigger, logger)
	})

	group.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-trigger:
			}

			// Editors fire several events per save; wait for quiet.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(debounce):
			}
			drain(trigger)

			reportRun(ctx, session, logger)
		}
	})

	err = group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// reportRun executes one run and logs, rather than returns, its failure.
// Watch mode keeps going whatever a single run finds.
func reportRun(ctx context.Context, session *lintSession, logger *log.Logger) {
	if err := session.runOnce(ctx); err != nil && !errors.Is(err, ErrOffensesFound) {
		logger.Error("run failed", logging.FieldError, err)
	}
}

// pumpEvents forwards relevant filesystem events as triggers, adding
// newly created directories to the watch set as it goes.
func pumpEvents(ctx context.Context, watcher *fsnotify.Watcher, trigger chan<- struct{}, logger *log.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						logger.Warn("watch new directory", logging.FieldPath, event.Name, logging.FieldError, err)
					}
				}
			}
			select {
			case trigger <- struct{}{}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logging.FieldError, err)
		}
	}
}

// relevantEvent filters out noise: chmods, hidden files, vendored
// paths, and the sidecar artifacts lintcore itself writes.
func relevantEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) &&
		!event.Op.Has(fsnotify.Rename) {
		return false
	}

	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") && base != "." {
		return false
	}
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".bak") {
		return false
	}
	return !langdetect.IsVendored(event.Name)
}

// watchTree registers root and every non-hidden, non-vendored
// directory beneath it.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}

		name := d.Name()
		if path != root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if langdetect.IsVendored(path + "/") {
			return filepath.SkipDir
		}

		return watcher.Add(path)
	})
}

// drain removes a pending trigger without blocking.
func drain(trigger <-chan struct{}) {
	select {
	case <-trigger:
	default:
	}
}
