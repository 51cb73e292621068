package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/lintcore/pkg/config"
	"github.com/yaklabco/lintcore/pkg/fix"
	"github.com/yaklabco/lintcore/pkg/fsutil"
)

// DefaultMaxFixPasses caps the fix loop. Edits skipped for conflicts in
// one pass are usually applicable in the next; a file that is still
// producing edits after this many passes has checks fighting each other.
const DefaultMaxFixPasses = 10

// Pipeline error sentinels for categorization via errors.Is.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates a parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult is the outcome of pushing one file through the full
// read-analyze-fix-write pipeline.
type PipelineResult struct {
	// FileResult holds offenses and edits from the final pass.
	*FileResult

	// Path is the processed file path.
	Path string

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Modified reports whether any pass changed the content.
	Modified bool

	// ModifiedContent is the content after all passes, nil when nothing
	// changed.
	ModifiedContent []byte

	// Diff is the unified diff for dry-run mode, nil otherwise.
	Diff *fix.Diff

	// Skipped reports the file was left untouched; SkipReason says why.
	Skipped    bool
	SkipReason string

	// BackupCreated reports whether a backup was written.
	BackupCreated bool

	// Written reports whether the file was written to disk.
	Written bool

	// FixPasses is the number of passes that applied edits.
	FixPasses int

	// TotalEditsApplied counts edits applied across all passes.
	TotalEditsApplied int
}

// Summary returns a one-word-ish description of what happened.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "corrected (backup created)"
	case pr.Written:
		return "corrected"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasOffenses():
		return "offenses found"
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior for a run.
type PipelineOptions struct {
	// Fix enables applying corrections.
	Fix bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// Backup configures backup creation before writes.
	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes content when checking for concurrent
	// external edits. When false only mod time and size are compared.
	StrictRaceDetection bool

	// ReParseAfterFix re-parses the corrected content and abandons the
	// fix when the result no longer parses.
	ReParseAfterFix bool

	// MaxFixPasses caps the fix loop. Zero uses DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions returns the defaults: analysis only, strict
// race detection.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Pipeline drives the engine through the safe fix cycle for one file at
// a time.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a pipeline over the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads, analyzes, and (in fix mode) corrects one file.
//
// The cycle: read and hash the original; loop analysis passes applying
// edits in memory until no edits remain or the pass cap is hit;
// optionally re-parse to validate; in dry-run mode emit a diff instead
// of writing; otherwise verify no concurrent external edit happened,
// create a backup if configured, and write atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	originalContent, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}
	result.OriginalInfo = info

	content, err := p.fixLoop(ctx, result, path, originalContent, cfg, opts)
	if err != nil {
		return nil, err
	}

	result.ModifiedContent = content
	if !result.Modified {
		result.ModifiedContent = nil
		return result, nil
	}

	if opts.ReParseAfterFix {
		if _, err := p.Engine.Parser.Parse(ctx, path, content); err != nil {
			result.Skipped = true
			result.SkipReason = fmt.Sprintf("re-parse failed: %v", err)
			result.Modified = false
			result.ModifiedContent = nil
			return result, nil
		}
	}

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, originalContent, content)
		return result, nil
	}

	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, content, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent runs the analysis and in-memory fix loop without any
// file I/O. Dry-run diffs still work; nothing is ever written.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	originalContent []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	content, err := p.fixLoop(ctx, result, path, originalContent, cfg, opts)
	if err != nil {
		return nil, err
	}

	result.ModifiedContent = content
	if !result.Modified {
		result.ModifiedContent = nil
		return result, nil
	}

	if opts.ReParseAfterFix {
		if _, err := p.Engine.Parser.Parse(ctx, path, content); err != nil {
			result.Skipped = true
			result.SkipReason = fmt.Sprintf("re-parse failed: %v", err)
			result.Modified = false
			result.ModifiedContent = nil
			return result, nil
		}
	}

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, originalContent, content)
	}

	return result, nil
}

// fixLoop runs analysis passes, applying edits in memory between
// passes, until the content is stable or the pass cap is reached. The
// final pass's FileResult lands on result; the returned slice is the
// content after all applied edits.
func (p *Pipeline) fixLoop(
	ctx context.Context,
	result *PipelineResult,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) ([]byte, error) {
	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	var fileResult *FileResult
	for range maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		var inspectErr error
		fileResult, inspectErr = p.Engine.InspectFile(ctx, path, content, cfg)
		if inspectErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, inspectErr)
		}

		if !opts.Fix || !fileResult.HasEdits() {
			break
		}

		content = fix.ApplyEdits(content, fileResult.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(fileResult.Edits)
		result.Modified = true
	}

	result.FileResult = fileResult
	return content, nil
}

func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	if strict {
		return fsutil.CheckModified(ctx, info)
	}
	return fsutil.CheckModifiedQuick(ctx, info)
}

// categorizeError wraps read errors in the matching pipeline sentinel.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// IsPipelineError reports whether err is one of the pipeline sentinels.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig maps config backup settings onto fsutil's.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig maps run-level config onto pipeline options.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
}
