package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"csfix/internal/fix"
	"csfix/internal/lexer"
	"csfix/internal/observ"
	"csfix/internal/source"
	"csfix/internal/stream"
	"csfix/internal/trace"
)

// ErrRoundTrip reports a stream that does not render back to its input.
var ErrRoundTrip = errors.New("round-trip mismatch")

// Options configure a batch run.
type Options struct {
	// Jobs bounds the number of files processed at once (<= 0 = GOMAXPROCS).
	Jobs int
	// BaseDir is used to report paths; empty means the working directory.
	BaseDir string
	// Tokenizer overrides the default lexer. Lexer warnings are only
	// collected with the default one.
	Tokenizer lexer.Tokenizer
	// Strict turns lexer warnings into file errors.
	Strict bool
	// Rules run after verification; none means check only.
	Rules []fix.Rule
	Fix   fix.RunOptions
	// Diff computes a unified diff for mismatches and fixed files.
	Diff bool
	// Write replaces changed files on disk.
	Write bool
	// DiskCache, when set, persists token records across runs. It is only
	// consulted with the default lexer.
	DiskCache *DiskCache
	Progress  ProgressSink
}

// FileResult is the outcome of one file.
type FileResult struct {
	Path     string
	Hash     source.Digest
	Tokens   int
	Cached   bool // restored from the disk cache
	Warnings []string
	Applied  []fix.AppliedRule
	Skipped  []fix.SkippedRule
	Changed  bool
	Written  bool
	Diff     string
	Err      error
	Timing   observ.Report
}

// Result aggregates a batch run. Files keep the input order.
type Result struct {
	Files  []FileResult
	Timing observ.Report
}

// Failed counts files that ended with an error.
func (r *Result) Failed() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Err != nil {
			n++
		}
	}
	return n
}

// Changed counts files whose rules changed the text.
func (r *Result) Changed() int {
	n := 0
	for i := range r.Files {
		if r.Files[i].Changed {
			n++
		}
	}
	return n
}

// Process tokenizes, verifies and optionally fixes every file. Per-file
// failures are recorded in the result; the returned error is only set when
// the run itself is cancelled.
func Process(ctx context.Context, files []string, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "process")
	span.WithExtra("files", fmt.Sprint(len(files)))

	result := &Result{Files: make([]FileResult, len(files))}
	if len(files) == 0 {
		span.End("empty")
		return result, nil
	}

	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(files))

	// one cache per worker slot; a task holds its cache for its whole run
	caches := make(chan *stream.Cache, jobs)
	for range jobs {
		caches <- stream.NewCache().WithTracer(tracer)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				result.Files[i] = FileResult{Path: path, Err: fmt.Errorf("load: %w", loadErr)}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			cache := <-caches
			defer func() { caches <- cache }()

			file := fileSet.Get(fileIDs[path])
			res := processFile(gctx, path, file, fileSet.DisplayPath(file), cache, &opts)
			result.Files[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("cancelled")
		return result, err
	}

	for i := range result.Files {
		result.Timing.Merge(result.Files[i].Timing)
	}
	span.End(fmt.Sprintf("%d failed, %d changed", result.Failed(), result.Changed()))
	return result, nil
}

func processFile(ctx context.Context, path string, file *source.File, display string, cache *stream.Cache, opts *Options) FileResult {
	tracer := trace.FromContext(ctx)
	ctx, span := trace.StartSpan(trace.WithFile(ctx, path), trace.ScopeFile, "file")

	started := time.Now()
	timer := observ.NewTimer()
	res := FileResult{Path: path, Hash: file.Hash}
	fail := func(stage Stage, err error) FileResult {
		res.Err = err
		res.Timing = timer.Report()
		emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		span.End("error: " + err.Error())
		return res
	}

	emit(opts.Progress, Event{File: path, Stage: StageTokenize, Status: StatusWorking})
	end := timer.Track("tokenize")
	s, cached, err := buildStream(file, cache, opts, &res.Warnings)
	if err != nil {
		end("failed")
		return fail(StageTokenize, err)
	}
	res.Cached = cached
	res.Tokens = s.Len()
	end(fmt.Sprintf("%d tokens", res.Tokens))
	if opts.Strict && len(res.Warnings) > 0 {
		return fail(StageTokenize, fmt.Errorf("%d lexer warnings, first: %s", len(res.Warnings), res.Warnings[0]))
	}

	emit(opts.Progress, Event{File: path, Stage: StageVerify, Status: StatusWorking})
	end = timer.Track("verify")
	rendered := s.Render()
	if rendered != file.Content && cached {
		// a corrupt cache entry must not fail the file
		_ = opts.DiskCache.Drop(file.Hash)
		res.Warnings = nil
		if s, err = tokenize(file, cache, opts, &res.Warnings); err != nil {
			end("failed")
			return fail(StageTokenize, err)
		}
		res.Cached = false
		res.Tokens = s.Len()
		rendered = s.Render()
	}
	if rendered != file.Content {
		end("mismatch")
		if opts.Diff {
			res.Diff, _ = UnifiedDiff(display, file.Content, rendered)
		}
		at := source.LineColAt(file.Content, firstDifference(file.Content, rendered))
		return fail(StageVerify, fmt.Errorf("%s:%d:%d: %w", display, at.Line, at.Col, ErrRoundTrip))
	}
	end("ok")
	if dc := opts.diskCache(); !res.Cached && dc != nil {
		if err := dc.Put(file.Hash, DiskEntry{Records: s.Records(), Warnings: res.Warnings}); err != nil {
			trace.Point(tracer, trace.ScopeCache, "disk:put", err.Error())
		}
	}

	if len(opts.Rules) > 0 {
		emit(opts.Progress, Event{File: path, Stage: StageFix, Status: StatusWorking})
		end = timer.Track("fix")
		fixed, err := fix.Run(ctx, s, opts.Rules, opts.Fix)
		if err != nil && !errors.Is(err, fix.ErrNoFixes) {
			end("failed")
			return fail(StageFix, err)
		}
		res.Applied = slices.Clone(fixed.Applied)
		res.Skipped = slices.Clone(fixed.Skipped)
		res.Changed = fixed.Changed
		end(fmt.Sprintf("%d applied", len(res.Applied)))

		if res.Changed {
			if opts.Diff {
				res.Diff, _ = UnifiedDiff(display, file.Content, fixed.Text)
			}
			if opts.Write {
				emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
				end = timer.Track("write")
				if err := source.WriteAtomic(path, fixed.Text, file.Mode); err != nil {
					end("failed")
					return fail(StageWrite, fmt.Errorf("write: %w", err))
				}
				res.Written = true
				end("")
			}
		}
	}

	res.Timing = timer.Report()
	emit(opts.Progress, Event{File: path, Status: StatusDone, Elapsed: time.Since(started)})
	span.WithExtra("tokens", fmt.Sprint(res.Tokens)).End("ok")
	return res
}

// buildStream restores the stream from the disk cache when possible and
// tokenizes otherwise.
func buildStream(file *source.File, cache *stream.Cache, opts *Options, warnings *[]string) (*stream.Stream, bool, error) {
	if dc := opts.diskCache(); dc != nil {
		e, ok, err := dc.Get(file.Hash)
		if err == nil && ok {
			s, err := stream.FromRecords(e.Records, stream.Options{Cache: cache})
			if err == nil {
				*warnings = append(*warnings, e.Warnings...)
				return s, true, nil
			}
		}
	}
	s, err := tokenize(file, cache, opts, warnings)
	return s, false, err
}

// diskCache returns the disk cache to use for this run. Entries only record
// the default lexer's output, so a custom tokenizer bypasses it.
func (o *Options) diskCache() *DiskCache {
	if o.Tokenizer != nil {
		return nil
	}
	return o.DiskCache
}

func tokenize(file *source.File, cache *stream.Cache, opts *Options, warnings *[]string) (*stream.Stream, error) {
	tz := opts.Tokenizer
	if tz == nil {
		tz = lexer.New(lexer.Options{
			Reporter: lexer.ReporterFunc(func(code lexer.Code, line uint32, msg string) {
				*warnings = append(*warnings, fmt.Sprintf("%d: %s: %s", line, code, msg))
			}),
		})
	}
	return stream.FromSource(file.Content, stream.Options{Cache: cache, Tokenizer: tz})
}

// firstDifference returns the first byte offset at which a and b differ.
func firstDifference(a, b string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
