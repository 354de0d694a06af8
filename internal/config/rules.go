package config

import "github.com/oxhq/rubocheck/internal/diag"

// Per-rule config leaves. Each embeds Header inline (the common
// enabled/severity/include/exclude fields) plus whatever fields that rule
// declares, mirroring the per-cop structs under original_source's
// config/layout/*.rs and config/lint/debugger.rs. Default severities match
// the original's Default impls: Convention for every rule here except
// Debugger, which defaults to Warning.

// TrailingWhitespaceConfig configures Layout/TrailingWhitespace.
type TrailingWhitespaceConfig struct {
	Header `yaml:",inline"`
}

func defaultTrailingWhitespaceConfig() TrailingWhitespaceConfig {
	return TrailingWhitespaceConfig{Header: defaultHeader(diag.SeverityConvention)}
}

// EnforcedStyle selects Layout/TrailingEmptyLines' accepted tail shape.
type EnforcedStyle string

const (
	// StyleFinalNewline requires exactly one final newline, no trailing blanks.
	StyleFinalNewline EnforcedStyle = "final_newline"
	// StyleFinalBlankLine requires one blank line before the final newline.
	StyleFinalBlankLine EnforcedStyle = "final_blank_line"
)

// TrailingEmptyLinesConfig configures Layout/TrailingEmptyLines.
type TrailingEmptyLinesConfig struct {
	Header        `yaml:",inline"`
	EnforcedStyle EnforcedStyle `yaml:"EnforcedStyle"`
}

func defaultTrailingEmptyLinesConfig() TrailingEmptyLinesConfig {
	return TrailingEmptyLinesConfig{Header: defaultHeader(diag.SeverityConvention), EnforcedStyle: StyleFinalNewline}
}

// LeadingEmptyLinesConfig configures Layout/LeadingEmptyLines.
type LeadingEmptyLinesConfig struct {
	Header `yaml:",inline"`
}

func defaultLeadingEmptyLinesConfig() LeadingEmptyLinesConfig {
	return LeadingEmptyLinesConfig{Header: defaultHeader(diag.SeverityConvention)}
}

// EmptyLinesConfig configures Layout/EmptyLines.
type EmptyLinesConfig struct {
	Header `yaml:",inline"`
}

func defaultEmptyLinesConfig() EmptyLinesConfig {
	return EmptyLinesConfig{Header: defaultHeader(diag.SeverityConvention)}
}

// IndentationWidthConfig configures Layout/IndentationWidth.
type IndentationWidthConfig struct {
	Header `yaml:",inline"`
	Width  int `yaml:"Width"`
}

func defaultIndentationWidthConfig() IndentationWidthConfig {
	return IndentationWidthConfig{Header: defaultHeader(diag.SeverityConvention), Width: 2}
}

// DebuggerConfig configures Lint/Debugger.
type DebuggerConfig struct {
	Header `yaml:",inline"`
}

func defaultDebuggerConfig() DebuggerConfig {
	return DebuggerConfig{Header: defaultHeader(diag.SeverityWarning)}
}
