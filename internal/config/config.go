// Package config loads RuboCop-compatible YAML configuration and exposes it
// to the checking engine as a checker.RuleFilter, without the checker
// package ever importing this one (see internal/checker.RuleFilter).
//
// Grounded on original_source's reukocyte_checker config crate (config/mod.rs,
// config/base.rs, config/yaml.rs, config/loader.rs) for shape and merge
// semantics, and the teacher's internal/config/cli.go glob-compiling idiom
// for the Go side of include/exclude handling.
package config

import (
	"github.com/oxhq/rubocheck/internal/diag"
)

// Rule identities this config package knows how to configure — the closed
// set named in SPEC_FULL.md §4.9/§4.10.
var (
	RuleTrailingWhitespace = diag.NewRuleID(diag.CategoryLayout, "TrailingWhitespace")
	RuleTrailingEmptyLines = diag.NewRuleID(diag.CategoryLayout, "TrailingEmptyLines")
	RuleLeadingEmptyLines  = diag.NewRuleID(diag.CategoryLayout, "LeadingEmptyLines")
	RuleEmptyLines         = diag.NewRuleID(diag.CategoryLayout, "EmptyLines")
	RuleIndentationWidth   = diag.NewRuleID(diag.CategoryLayout, "IndentationWidth")
	RuleDebugger           = diag.NewRuleID(diag.CategoryLint, "Debugger")
)

// ruleKeys maps each known RuleID to its .rubocop.yml top-level key.
var ruleKeys = map[diag.RuleID]string{
	RuleTrailingWhitespace: "Layout/TrailingWhitespace",
	RuleTrailingEmptyLines: "Layout/TrailingEmptyLines",
	RuleLeadingEmptyLines:  "Layout/LeadingEmptyLines",
	RuleEmptyLines:         "Layout/EmptyLines",
	RuleIndentationWidth:   "Layout/IndentationWidth",
	RuleDebugger:           "Lint/Debugger",
}

// Config is the normalized configuration tree the checking engine consumes:
// one header-plus-settings leaf per known rule, plus AllCops. Lifetime: one
// per run, shared read-only by every file's Checker (SPEC_FULL.md §4.5).
type Config struct {
	AllCops AllCopsConfig

	TrailingWhitespace TrailingWhitespaceConfig
	TrailingEmptyLines TrailingEmptyLinesConfig
	LeadingEmptyLines  LeadingEmptyLinesConfig
	EmptyLines         EmptyLinesConfig
	IndentationWidth   IndentationWidthConfig
	Debugger           DebuggerConfig
}

// Default returns the configuration every rule runs under when no
// .rubocop.yml is found, i.e. every rule enabled at its own built-in
// default severity.
func Default() *Config {
	cfg := &Config{
		TrailingWhitespace: defaultTrailingWhitespaceConfig(),
		TrailingEmptyLines: defaultTrailingEmptyLinesConfig(),
		LeadingEmptyLines:  defaultLeadingEmptyLinesConfig(),
		EmptyLines:         defaultEmptyLinesConfig(),
		IndentationWidth:   defaultIndentationWidthConfig(),
		Debugger:           defaultDebuggerConfig(),
	}
	cfg.compile()
	return cfg
}

// FromDoc builds a Config from a merged raw YAML document, starting every
// rule from its own default and overlaying whatever fields that rule's block
// in doc supplies. Unrecognized top-level keys (a cop name this tool has no
// rule for) are read but never consulted — the same "silently ignored"
// treatment spec.md §7 gives unknown cop names.
func FromDoc(doc rawDoc) *Config {
	cfg := Default()

	if allCops, ok := asMap(doc["AllCops"]); ok {
		cfg.AllCops = AllCopsConfig{
			TargetRubyVersion:   getString(allCops, "TargetRubyVersion", ""),
			Exclude:             getStringSlice(allCops, "Exclude"),
			Include:             getStringSlice(allCops, "Include"),
			NewCops:             getString(allCops, "NewCops", ""),
			UseCache:            getBool(allCops, "UseCache", false),
			CacheRootDirectory:  getString(allCops, "CacheRootDirectory", ""),
			SuggestedExtensions: getBool(allCops, "SuggestedExtensions", false),
		}
	}

	applyHeader(asSubDoc(doc, ruleKeys[RuleTrailingWhitespace]), &cfg.TrailingWhitespace.Header)

	tel := asSubDoc(doc, ruleKeys[RuleTrailingEmptyLines])
	applyHeader(tel, &cfg.TrailingEmptyLines.Header)
	if style := getString(tel, "EnforcedStyle", ""); style != "" {
		cfg.TrailingEmptyLines.EnforcedStyle = EnforcedStyle(style)
	}

	applyHeader(asSubDoc(doc, ruleKeys[RuleLeadingEmptyLines]), &cfg.LeadingEmptyLines.Header)
	applyHeader(asSubDoc(doc, ruleKeys[RuleEmptyLines]), &cfg.EmptyLines.Header)

	iw := asSubDoc(doc, ruleKeys[RuleIndentationWidth])
	applyHeader(iw, &cfg.IndentationWidth.Header)
	cfg.IndentationWidth.Width = getInt(iw, "Width", cfg.IndentationWidth.Width)

	applyHeader(asSubDoc(doc, ruleKeys[RuleDebugger]), &cfg.Debugger.Header)

	cfg.compile()
	return cfg
}

// applyHeader overlays whatever fields block supplies onto an already
// defaulted Header in place.
func applyHeader(block rawDoc, h *Header) {
	h.Enabled = getEnabled(block, h.Enabled)
	if sev := getSeverity(block); sev != "" {
		h.Severity = sev
	}
	if inc := getStringSlice(block, "Include"); inc != nil {
		h.Include = inc
	}
	if exc := getStringSlice(block, "Exclude"); exc != nil {
		h.Exclude = exc
	}
}

// compile builds every header's (and AllCops') globsets. Called once, after
// the whole tree is assembled, never per file.
func (c *Config) compile() {
	c.AllCops.compile()
	c.TrailingWhitespace.Header.compile()
	c.TrailingEmptyLines.Header.compile()
	c.LeadingEmptyLines.Header.compile()
	c.EmptyLines.Header.compile()
	c.IndentationWidth.Header.compile()
	c.Debugger.Header.compile()
}

// header returns the Header leaf for a known rule, or nil for one this
// config package does not recognize.
func (c *Config) header(ruleID diag.RuleID) *Header {
	switch ruleID {
	case RuleTrailingWhitespace:
		return &c.TrailingWhitespace.Header
	case RuleTrailingEmptyLines:
		return &c.TrailingEmptyLines.Header
	case RuleLeadingEmptyLines:
		return &c.LeadingEmptyLines.Header
	case RuleEmptyLines:
		return &c.EmptyLines.Header
	case RuleIndentationWidth:
		return &c.IndentationWidth.Header
	case RuleDebugger:
		return &c.Debugger.Header
	default:
		return nil
	}
}

// Enabled implements checker.RuleFilter. An unrecognized rule ID (one this
// config has no block for) defaults to enabled, matching "unknown cop names
// silently ignored" read the other way: a rule config doesn't know about is
// never silently disabled either.
func (c *Config) Enabled(ruleID diag.RuleID, path string) bool {
	if c.AllCops.Excluded(path) {
		return false
	}
	h := c.header(ruleID)
	if h == nil {
		return true
	}
	return h.shouldRun(path)
}

// Severity implements checker.RuleFilter.
func (c *Config) Severity(ruleID diag.RuleID, def diag.Severity) diag.Severity {
	h := c.header(ruleID)
	if h == nil {
		return def
	}
	if h.Severity == "" {
		return def
	}
	if sev, ok := diag.ParseSeverity(h.Severity); ok {
		return sev
	}
	// An explicit but unrecognized severity string falls back to Warning,
	// matching original_source's parse_severity default arm.
	return diag.SeverityWarning
}

// Setting implements checker.RuleFilter for the rule-specific fields beyond
// the common header (IndentationWidth's Width, TrailingEmptyLines'
// EnforcedStyle).
func (c *Config) Setting(ruleID diag.RuleID, key string) (any, bool) {
	switch ruleID {
	case RuleIndentationWidth:
		if key == "Width" {
			return c.IndentationWidth.Width, true
		}
	case RuleTrailingEmptyLines:
		if key == "EnforcedStyle" {
			return string(c.TrailingEmptyLines.EnforcedStyle), true
		}
	}
	return nil, false
}
