// Package cliapp implements the CLI surface named in SPEC_FULL.md §6: flag
// parsing, directory scanning, running the checking engine (optionally
// through the rewrite loop), and formatting diagnostics as JSON or one of
// the plain-text variants. Parallelism across files — an external concern
// relative to the single-file checking engine in internal/checker — is
// implemented here as a bounded worker-goroutine pool.
//
// Grounded on the teacher's internal/config/cli.go flag-building idiom
// (pflag.FlagSet, fs.Changed-gated overrides, a Usage func printing
// fs.PrintDefaults), generalized to the flag set this specification names.
package cliapp

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// Options is the parsed, validated result of one CLI invocation.
type Options struct {
	Targets []string

	Check      bool
	Fix        bool
	FixAll     bool
	LayoutOnly bool

	Only   []string
	Except []string

	FailLevel string
	FailFast  bool

	ConfigPath string
	Format     string
	OutputPath string

	Stderr bool
	Color  bool
	Quiet  bool

	Parallel    int
	DisplayTime bool

	StdinPath string
}

// knownFormats lists the -f/--format values SPEC_FULL.md §6 recognizes.
var knownFormats = map[string]bool{
	"json": true, "simple": true, "quiet": true, "progress": true,
	"clang": true, "emacs": true, "github": true, "files": true,
}

// ParseArgs parses args (typically os.Args[1:]) into Options. Returns
// flag.ErrHelp when usage was requested, matching the teacher's own --help
// short-circuit; no targets at all is not an error.
func ParseArgs(args []string) (*Options, error) {
	fs := pflag.NewFlagSet("rubocheck", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { printUsage(fs) }

	help := fs.BoolP("help", "h", false, "Show this help message and exit.")
	check := fs.Bool("check", false, "Report-only: exit 1 if any offense is found, apply no fixes.")
	fix := fs.BoolP("fix", "a", false, "Apply Safe autocorrections.")
	fixAll := fs.BoolP("autocorrect-all", "A", false, "Apply Safe and Unsafe autocorrections.")
	layoutOnly := fs.BoolP("layout-only", "x", false, "Restrict autocorrection to Layout rules only.")
	only := fs.StringSlice("only", nil, "Run only the given comma-separated rule names.")
	except := fs.StringSlice("except", nil, "Skip the given comma-separated rule names.")
	failLevel := fs.String("fail-level", "convention", "Minimum severity that causes a non-zero exit.")
	failFast := fs.Bool("fail-fast", false, "Stop at the first file with an offense.")
	configPath := fs.StringP("config", "c", "", "Path to a RuboCop-compatible YAML config file.")
	format := fs.StringP("format", "f", "simple", "Output format: json, simple, quiet, progress, clang, emacs, github, files.")
	outputPath := fs.StringP("out", "o", "", "Write output to FILE instead of stdout.")
	stderrOut := fs.Bool("stderr", false, "Write output to stderr instead of stdout.")
	color := fs.Bool("color", true, "Force colored output.")
	noColor := fs.Bool("no-color", false, "Disable colored output.")
	quiet := fs.BoolP("quiet", "q", false, "Suppress per-file progress output.")
	parallel := fs.BoolP("parallel", "P", false, "Check files in parallel using all available CPUs.")
	displayTime := fs.Bool("display-time", false, "Display elapsed time.")
	stdinPath := fs.StringP("stdin", "s", "", "Read source from stdin, reporting offenses under this display path.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *help {
		fs.Usage()
		return nil, flag.ErrHelp
	}

	format_ := strings.ToLower(*format)
	if !knownFormats[format_] {
		return nil, fmt.Errorf("unknown format %q", *format)
	}

	opts := &Options{
		Targets:     fs.Args(),
		Check:       *check,
		Fix:         *fix,
		FixAll:      *fixAll,
		LayoutOnly:  *layoutOnly,
		Only:        splitCommas(*only),
		Except:      splitCommas(*except),
		FailLevel:   strings.ToLower(*failLevel),
		FailFast:    *failFast,
		ConfigPath:  *configPath,
		Format:      format_,
		OutputPath:  *outputPath,
		Stderr:      *stderrOut,
		Color:       *color && !*noColor,
		Quiet:       *quiet,
		DisplayTime: *displayTime,
		StdinPath:   *stdinPath,
	}
	if *parallel {
		opts.Parallel = 0 // resolved to runtime.NumCPU() at Run time
	} else {
		opts.Parallel = 1
	}
	return opts, nil
}

// splitCommas flattens a pflag StringSlice (which already splits on commas
// per element) and also splits any element that itself still contains a
// comma, so "--only A,B --only C" and "--only A,B,C" behave identically.
func splitCommas(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func printUsage(fs *pflag.FlagSet) {
	fmt.Fprintln(os.Stderr, "Usage: rubocheck [options] [file1, file2, ...]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	fs.PrintDefaults()
}
