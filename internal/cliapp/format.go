// Output formatting: the JSON shape is byte-compatible with RuboCop's own
// formatter (SPEC_FULL.md §6); the text variants (simple/clang/emacs/github)
// share one line-per-offense renderer differing only in field order/
// separators, following RuboCop's own SimpleTextFormatter family.
package cliapp

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oxhq/rubocheck/internal/diag"
)

// FileReport holds every offense found in one file plus whether a rewrite
// pass modified it.
type FileReport struct {
	Path      string
	Offenses  []diag.Diagnostic
	Corrected map[int]bool // index into Offenses -> was this one corrected

	// Diff holds a unified diff of the rewrite pass's effect on this file,
	// populated only when the caller asked to see it (--display-time); empty
	// otherwise, including when no correction was applied.
	Diff string
}

// jsonMetadata mirrors RuboCop's own JSON metadata block. Values describe
// this tool, not a Ruby interpreter; the field names are what RuboCop's
// consumers parse, so they are kept verbatim even though the values name a
// different implementation.
type jsonMetadata struct {
	RubocopVersion string `json:"rubocop_version"`
	RubyEngine     string `json:"ruby_engine"`
	RubyVersion    string `json:"ruby_version"`
	RubyPatchlevel string `json:"ruby_patchlevel"`
	RubyPlatform   string `json:"ruby_platform"`
}

type jsonLocation struct {
	StartLine   int `json:"start_line"`
	StartColumn int `json:"start_column"`
	LastLine    int `json:"last_line"`
	LastColumn  int `json:"last_column"`
	Length      int `json:"length"`
	Line        int `json:"line"`
	Column      int `json:"column"`
}

type jsonOffense struct {
	Severity    string       `json:"severity"`
	Message     string       `json:"message"`
	CopName     string       `json:"cop_name"`
	Corrected   bool         `json:"corrected"`
	Correctable bool         `json:"correctable"`
	Location    jsonLocation `json:"location"`
}

type jsonFile struct {
	Path     string        `json:"path"`
	Offenses []jsonOffense `json:"offenses"`
}

type jsonSummary struct {
	OffenseCount       int `json:"offense_count"`
	TargetFileCount    int `json:"target_file_count"`
	InspectedFileCount int `json:"inspected_file_count"`
}

type jsonReport struct {
	Metadata jsonMetadata `json:"metadata"`
	Files    []jsonFile   `json:"files"`
	Summary  jsonSummary  `json:"summary"`
}

// WriteJSON renders reports as RuboCop-compatible JSON, sorted by path for
// determinism (SPEC_FULL.md §6).
func WriteJSON(w io.Writer, reports []FileReport, targetFileCount int) error {
	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })

	out := jsonReport{
		Metadata: jsonMetadata{
			RubocopVersion: "rubocheck-compat",
			RubyEngine:     "ruby",
			RubyVersion:    "3.3.0",
			RubyPatchlevel: "0",
			RubyPlatform:   "go",
		},
		Summary: jsonSummary{
			TargetFileCount:    targetFileCount,
			InspectedFileCount: len(reports),
		},
	}

	for _, r := range reports {
		jf := jsonFile{Path: r.Path}
		for i, d := range r.Offenses {
			jf.Offenses = append(jf.Offenses, jsonOffense{
				Severity:    severityJSONName(d.Severity),
				Message:     d.Message,
				CopName:     d.RuleID.String(),
				Corrected:   r.Corrected[i],
				Correctable: d.Correctable(),
				Location: jsonLocation{
					StartLine:   d.LineStart,
					StartColumn: d.ColumnStart,
					LastLine:    d.LineEnd,
					LastColumn:  d.ColumnEnd,
					Length:      d.Length(),
					Line:        d.LineStart,
					Column:      d.ColumnStart,
				},
			})
			out.Summary.OffenseCount++
		}
		out.Files = append(out.Files, jf)
	}

	enc := json.NewEncoder(w)
	return enc.Encode(out)
}

// severityJSONName renders a Severity the way RuboCop's JSON formatter
// spells it (lowercase full name), distinct from Severity.Letter used by
// the text formatters.
func severityJSONName(s diag.Severity) string {
	return s.String()
}

// WriteText renders reports in one of the plain-text variants named in
// SPEC_FULL.md §6. format has already been validated by ParseArgs.
func WriteText(w io.Writer, reports []FileReport, format string, color bool) {
	switch format {
	case "quiet":
		writeQuietText(w, reports)
	case "files":
		writeFilesText(w, reports)
	default:
		writeLineText(w, reports, format, color)
	}
}

// writeLineText covers simple/clang/emacs/github/progress: one line per
// offense, "<path>:<line>:<column>: <Severity letter>: Category/Name message"
// (SPEC_FULL.md §6's text-output contract), with clang/emacs/github swapping
// field order/separators to match their respective tool conventions.
func writeLineText(w io.Writer, reports []FileReport, format string, color bool) {
	for _, r := range reports {
		if len(r.Offenses) > 0 && format != "progress" {
			fmt.Fprintf(w, "== %s ==\n", r.Path)
		}
		for _, d := range r.Offenses {
			line := formatOffenseLine(r.Path, d, format)
			if color {
				line = colorizeSeverity(line, d.Severity)
			}
			fmt.Fprintln(w, line)
		}
	}
}

func formatOffenseLine(path string, d diag.Diagnostic, format string) string {
	switch format {
	case "emacs":
		return fmt.Sprintf("%s:%d:%d: %s: %s: %s", path, d.LineStart, d.ColumnStart, d.Severity.Letter(), d.RuleID, d.Message)
	case "github":
		return fmt.Sprintf("::%s file=%s,line=%d,col=%d::%s: %s", githubAnnotation(d.Severity), path, d.LineStart, d.ColumnStart, d.RuleID, d.Message)
	case "clang":
		return fmt.Sprintf("%s:%d:%d: %s: %s [%s]", path, d.LineStart, d.ColumnStart, strings.ToLower(d.Severity.String()), d.Message, d.RuleID)
	default: // simple, progress
		return fmt.Sprintf("%s:%d:%d: %s: %s %s", path, d.LineStart, d.ColumnStart, d.Severity.Letter(), d.RuleID, d.Message)
	}
}

func githubAnnotation(s diag.Severity) string {
	switch {
	case s >= diag.SeverityError:
		return "error"
	case s == diag.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}

func writeQuietText(w io.Writer, reports []FileReport) {
	total := 0
	for _, r := range reports {
		total += len(r.Offenses)
	}
	if total > 0 {
		fmt.Fprintf(w, "%d offense(s) detected\n", total)
	}
}

func writeFilesText(w io.Writer, reports []FileReport) {
	for _, r := range reports {
		if len(r.Offenses) > 0 {
			fmt.Fprintln(w, r.Path)
		}
	}
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

func colorizeSeverity(line string, s diag.Severity) string {
	switch {
	case s >= diag.SeverityError:
		return ansiRed + line + ansiReset
	case s == diag.SeverityWarning:
		return ansiYellow + line + ansiReset
	default:
		return ansiCyan + line + ansiReset
	}
}

// writeDiffs renders each report's corrected-file unified diff (--display-
// time, alongside the timing summary written by writeTimingReport).
func writeDiffs(w io.Writer, reports []FileReport) {
	for _, r := range reports {
		if r.Diff == "" {
			continue
		}
		fmt.Fprintf(w, "== %s ==\n", r.Path)
		fmt.Fprint(w, r.Diff)
	}
}
