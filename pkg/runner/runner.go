package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/lintcore/internal/logging"
	"github.com/yaklabco/lintcore/pkg/cache"
	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/engine"
	"github.com/yaklabco/lintcore/pkg/fsutil"
)

// Runner orchestrates multi-file analysis over an engine.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *engine.Pipeline

	// Cache serves previously computed offenses. Nil disables caching.
	Cache *cache.Cache

	// ToolVersion participates in cache keys so entries from other
	// releases never hit.
	ToolVersion string

	// Logger receives progress and cache diagnostics. Nil uses the
	// process default.
	Logger *log.Logger
}

// New creates a new Runner with the given pipeline and no cache.
func New(pipeline *engine.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// cacheContext carries the per-run, file-independent cache key inputs.
type cacheContext struct {
	store        *cache.Cache
	toolVersion  string
	configDigest string
	flags        struct{ fix, suppress, ignoreDirectives bool }
	depSums      map[string]string
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns a deterministic collection of FileOutcome values and
// aggregate stats under a fresh run ID.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Serves unchanged files from the result cache when one is attached
//   - Processes the rest concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()
	logger := r.logger()
	runID := uuid.NewString()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("discovery complete",
		logging.FieldRunID, runID,
		logging.FieldFilesDiscovered, len(files))

	result := &Result{
		RunID: runID,
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		result.Duration = time.Since(started)
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if jobs > len(files) {
		jobs = len(files)
	}

	pipelineOpts := engine.PipelineOptionsFromConfig(opts.Config)
	cc := r.cacheContext(opts.Config)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts.Config, pipelineOpts, cc)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; collect by path first.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	// Build result in deterministic order.
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	result.Duration = time.Since(started)

	logger.Debug("run complete",
		logging.FieldRunID, runID,
		logging.FieldFilesInspected, result.Stats.FilesInspected,
		logging.FieldOffensesTotal, result.Stats.OffensesTotal,
		logging.FieldCacheHits, result.Stats.CacheHits,
		logging.FieldDuration, result.Duration)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker processes files from workCh and sends outcomes to outCh.
func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	cfg *config.Config,
	opts engine.PipelineOptions,
	cc *cacheContext,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.processOne(ctx, path, cfg, opts, cc)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processOne runs a single file through the cache or the pipeline.
func (r *Runner) processOne(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts engine.PipelineOptions,
	cc *cacheContext,
) FileOutcome {
	outcome := FileOutcome{Path: path}

	if cc != nil {
		if done := r.processCached(ctx, path, cfg, opts, cc, &outcome); done {
			return outcome
		}
	}

	pr, err := r.Pipeline.ProcessFile(ctx, path, cfg, opts)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = pr
	}
	return outcome
}

// processCached serves the file from the cache or fills the cache after
// an in-memory analysis. Returns false when the file must go through
// the regular pipeline instead (e.g. the read failed, so ProcessFile
// can produce the categorized error).
func (r *Runner) processCached(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts engine.PipelineOptions,
	cc *cacheContext,
	outcome *FileOutcome,
) bool {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return false
	}

	key := cache.KeyInput{
		ToolVersion:         cc.toolVersion,
		ConfigDigest:        cc.configDigest,
		Fix:                 cc.flags.fix,
		SuppressUnfixable:   cc.flags.suppress,
		IgnoreDirectives:    cc.flags.ignoreDirectives,
		Content:             content,
		DependencyChecksums: cc.depSums,
	}.Key()

	if offenses, hit, err := cc.store.Get(key); err == nil && hit {
		outcome.CacheHit = true
		outcome.Result = &engine.PipelineResult{
			Path:       path,
			FileResult: &engine.FileResult{Offenses: offenses},
		}
		return true
	} else if err != nil {
		r.logger().Debug("cache read failed",
			logging.FieldPath, path, logging.FieldError, err)
	}

	// Cache runs never write files, so the in-memory path suffices.
	pr, err := r.Pipeline.ProcessContent(ctx, path, content, cfg, opts)
	if err != nil {
		outcome.Error = err
		return true
	}
	outcome.Result = pr

	if pr.FileResult != nil {
		if err := cc.store.Put(key, pr.Offenses); err != nil {
			r.logger().Debug("cache write failed",
				logging.FieldPath, path, logging.FieldError, err)
		}
	}
	return true
}

// cacheContext precomputes the file-independent cache key inputs for a
// run. Returns nil when caching is off: no cache attached, disabled by
// config, or autocorrect is on (fix runs mutate files, so their results
// must never be replayed).
func (r *Runner) cacheContext(cfg *config.Config) *cacheContext {
	if r.Cache == nil {
		return nil
	}
	if cfg != nil && (cfg.NoCache || cfg.Fix) {
		return nil
	}

	cc := &cacheContext{
		store:        r.Cache,
		toolVersion:  r.ToolVersion,
		configDigest: cache.ConfigDigest(cfg),
	}
	if cfg != nil {
		cc.flags.fix = cfg.Fix
		cc.flags.suppress = cfg.SuppressUnfixable
		cc.flags.ignoreDirectives = cfg.IgnoreDirectives
	}
	if r.Pipeline != nil && r.Pipeline.Engine != nil {
		cc.depSums = engine.DependencyChecksums(engine.Resolve(r.Pipeline.Engine.Registry, cfg))
	}
	return cc
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.Default()
}
