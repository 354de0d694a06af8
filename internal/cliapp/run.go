package cliapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/oxhq/rubocheck/internal/checker"
	"github.com/oxhq/rubocheck/internal/config"
	"github.com/oxhq/rubocheck/internal/diag"
	"github.com/oxhq/rubocheck/internal/envconfig"
	"github.com/oxhq/rubocheck/internal/profile"
	"github.com/oxhq/rubocheck/internal/rewrite"
	_ "github.com/oxhq/rubocheck/internal/rules/layout"
	_ "github.com/oxhq/rubocheck/internal/rules/lint"
	"github.com/oxhq/rubocheck/internal/scanner"
	"github.com/oxhq/rubocheck/internal/util"
)

// Exit codes, per SPEC_FULL.md §6.
const (
	ExitClean      = 0
	ExitOffenses   = 1
	ExitUsageError = 2
)

// Run executes one CLI invocation end to end: parse flags, discover files,
// check (and optionally rewrite) each one, format, and return the process
// exit code. stdout/stderr let tests capture output without touching the
// real file descriptors.
func Run(args []string, stdout, stderr io.Writer) int {
	start := time.Now()

	opts, err := ParseArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitClean
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitUsageError
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitUsageError
	}

	var recorder *profile.Recorder
	envCfg := envconfig.Load()
	// --display-time forces a Recorder even without RUBOCHECK_PROFILE=1: its
	// per-rule durations are what the timing report below renders.
	if envCfg.ProfileEnabled || opts.DisplayTime {
		recorder = profile.NewRecorder()
	}

	paths, err := discoverPaths(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitUsageError
	}

	reports, ioErrs := checkFiles(opts, cfg, recorder, paths)
	for _, e := range ioErrs {
		fmt.Fprintf(stderr, "Error: %v\n", e)
	}

	if recorder != nil && envCfg.ProfileDBPath != "" {
		if err := profile.Flush(envCfg.ProfileDBPath, recorder.Snapshot(), time.Now()); err != nil {
			fmt.Fprintf(stderr, "Warning: flushing profile counters: %v\n", err)
		}
	}

	out := stdout
	if opts.Stderr {
		out = stderr
	}
	if opts.OutputPath != "" {
		f, err := os.Create(opts.OutputPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: opening %s: %v\n", opts.OutputPath, err)
			return ExitUsageError
		}
		defer f.Close()
		out = f
	}

	// -q/--quiet (opts.Quiet) mirrors RuboCop's own meaning: it suppresses
	// this tool's non-offense progress chatter, of which there is none here
	// beyond what -f quiet already renders — offenses themselves are never
	// hidden by -q alone, only by choosing a terser -f format.
	if opts.Format == "json" {
		if err := WriteJSON(out, reports, len(paths)); err != nil {
			fmt.Fprintf(stderr, "Error: encoding JSON: %v\n", err)
			return ExitUsageError
		}
	} else {
		WriteText(out, reports, opts.Format, opts.Color)
	}

	if opts.DisplayTime {
		// Diffs and timing are diagnostic output, not report content: they go
		// to stderr regardless of -f/-o so they never corrupt a JSON or
		// redirected-to-file report stream.
		writeDiffs(stderr, reports)
		writeTimingReport(stderr, recorder, time.Since(start))
	}

	return exitCode(reports, opts.FailLevel, len(ioErrs) > 0)
}

// writeTimingReport renders --display-time's output: the wall-clock time for
// the whole run, plus a per-rule invocation/duration breakdown drawn from
// recorder's accumulated counters (internal/profile).
func writeTimingReport(w io.Writer, recorder *profile.Recorder, elapsed time.Duration) {
	fmt.Fprintf(w, "Finished in %.6f seconds\n", elapsed.Seconds())
	if recorder == nil {
		return
	}
	snap := recorder.Snapshot()
	if len(snap) == 0 {
		return
	}
	ruleIDs := make([]string, 0, len(snap))
	for id := range snap {
		ruleIDs = append(ruleIDs, id)
	}
	sort.Strings(ruleIDs)
	for _, id := range ruleIDs {
		c := snap[id]
		fmt.Fprintf(w, "  %-40s %6d calls  %v\n", id, c.Invocations, time.Duration(c.TotalNanos))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(".rubocop.yml"); err == nil {
			path = ".rubocop.yml"
		} else {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func discoverPaths(opts *Options) ([]string, error) {
	if opts.StdinPath != "" {
		return []string{opts.StdinPath}, nil
	}
	// util.ExpandGlobs handles target patterns a shell left unexpanded
	// (quoted globs, globs passed from a wrapper script); ScanTargets itself
	// stats each target directly and doesn't understand "*"/"?"/"[".
	sc := scanner.New(scanner.Config{})
	return sc.ScanTargets(context.Background(), util.ExpandGlobs(opts.Targets))
}

// checkFiles runs the checking engine (and, if requested, the rewrite loop)
// over every discovered path, using a bounded worker pool sized by
// opts.Parallel (0 means "use every CPU", mirroring the -P flag).
func checkFiles(opts *Options, cfg *config.Config, recorder *profile.Recorder, paths []string) ([]FileReport, []error) {
	workers := opts.Parallel
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) && len(paths) > 0 {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	type result struct {
		report FileReport
		err    error
	}

	jobs := make(chan string)
	// Buffered to len(paths): --fail-fast may stop draining results early,
	// and an unbuffered channel would then leave in-flight workers blocked
	// on a send nobody services.
	results := make(chan result, len(paths))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				r, err := checkOneFile(opts, cfg, recorder, path)
				results <- result{report: r, err: err}
			}
		}()
	}

	go func() {
		for _, p := range paths {
			jobs <- p
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var reports []FileReport
	var errs []error
	for res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			continue
		}
		reports = append(reports, res.report)
		if opts.FailFast && len(res.report.Offenses) > 0 {
			break
		}
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })
	return reports, errs
}

func checkOneFile(opts *Options, cfg *config.Config, recorder *profile.Recorder, path string) (FileReport, error) {
	source, err := readSource(opts, path)
	if err != nil {
		return FileReport{}, fmt.Errorf("reading %s: %w", path, err)
	}

	filter := newOnlyExceptFilter(cfg, opts.Only, opts.Except)
	c := checker.New(nil).WithFilter(filter)
	if recorder != nil {
		c = c.WithProfiler(recorder)
	}

	wantsFix := (opts.Fix || opts.FixAll) && !opts.Check
	if !wantsFix {
		diags, err := c.Check(path, source)
		if err != nil {
			return FileReport{}, err
		}
		return FileReport{Path: path, Offenses: diags, Corrected: map[int]bool{}}, nil
	}

	initial, err := c.Check(path, source)
	if err != nil {
		return FileReport{}, err
	}

	checkFn := func(src []byte) ([]diag.Diagnostic, error) {
		diags, err := c.Check(path, src)
		if err != nil {
			return nil, err
		}
		if opts.LayoutOnly {
			diags = layoutOnlyFix(diags)
		}
		return diags, nil
	}

	var beforeWrite os.FileInfo
	if opts.StdinPath == "" {
		beforeWrite, _ = os.Stat(path)
	}

	result, err := rewrite.Apply(source, checkFn, opts.FixAll)
	if err != nil {
		return FileReport{}, err
	}

	var diffText string
	wrote := string(result.Source) != string(source)
	if wrote {
		if opts.StdinPath == "" {
			if afterRead, statErr := os.Stat(path); statErr == nil && util.RaceDetected(beforeWrite, afterRead) {
				return FileReport{}, fmt.Errorf("skipping write to %s: file changed on disk since it was read", path)
			}
		}
		if werr := util.WriteFileAtomic(path, result.Source, 0o644); werr != nil {
			return FileReport{}, fmt.Errorf("writing corrections to %s: %w", path, werr)
		}
		if opts.DisplayTime {
			diffText = util.UnifiedDiff(string(source), string(result.Source), path, 3, opts.Color)
		}
	}

	remainingKey := make(map[string]bool, len(result.Remaining))
	for _, d := range result.Remaining {
		remainingKey[d.RuleID.String()+"|"+d.Message] = true
	}
	corrected := make(map[int]bool, len(initial))
	for i, d := range initial {
		if d.Correctable() && !remainingKey[d.RuleID.String()+"|"+d.Message] {
			corrected[i] = true
		}
	}

	return FileReport{Path: path, Offenses: initial, Corrected: corrected, Diff: diffText}, nil
}

func readSource(opts *Options, path string) ([]byte, error) {
	if opts.StdinPath != "" && path == opts.StdinPath {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// exitCode implements SPEC_FULL.md §6's exit-code contract: 0 clean, 1
// findings at or above failLevel, 2 usage error (handled by callers before
// reaching here; ioErrOccurred additionally forces a non-zero exit since an
// unreadable target is itself a usage-adjacent failure). This counts every
// offense the run found, corrected or not — matching RuboCop's own `-a`
// behavior, where the exit status reports what was found, not what survived
// the fix.
func exitCode(reports []FileReport, failLevel string, ioErrOccurred bool) int {
	if ioErrOccurred {
		return ExitUsageError
	}
	threshold, ok := diag.ParseSeverity(failLevel)
	if !ok {
		threshold = diag.SeverityConvention
	}
	for _, r := range reports {
		for _, d := range r.Offenses {
			if d.Severity >= threshold {
				return ExitOffenses
			}
		}
	}
	return ExitClean
}
