package config

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/rubocheck/internal/diag"
)

// globSet is a compiled set of doublestar include/exclude patterns. Grounded
// on original_source's BaseCopConfig.compile_globs (config/base.rs), which
// builds a globset::GlobSet from validated patterns once at load time rather
// than re-parsing a glob string on every file checked.
type globSet struct {
	patterns []string
}

// newGlobSet validates and retains every syntactically valid pattern,
// silently dropping the rest — mirroring the original's `if let Ok(glob)`
// skip-invalid-pattern behavior rather than failing the whole config load
// over one bad glob.
func newGlobSet(patterns []string) *globSet {
	if len(patterns) == 0 {
		return nil
	}
	gs := &globSet{}
	for _, p := range patterns {
		if doublestar.ValidatePattern(p) {
			gs.patterns = append(gs.patterns, p)
		}
	}
	if len(gs.patterns) == 0 {
		return nil
	}
	return gs
}

// match reports whether path matches any pattern in the set.
func (gs *globSet) match(path string) bool {
	if gs == nil {
		return false
	}
	for _, p := range gs.patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

// Header is the common leaf every per-rule config embeds, matching the
// spec's `{enabled, severity, include[], exclude[], compiled_include_globset?,
// compiled_exclude_globset?}`. Grounded on original_source's BaseCopConfig
// (config/base.rs), flattened via yaml.v3's inline tag the way BaseCopConfig
// is flattened via serde's #[serde(flatten)]. Exported (rather than the
// original's lowercase `header`) so yaml.v3's reflection-based inline
// decoding can set its fields through the embedding struct.
type Header struct {
	Enabled  bool     `yaml:"Enabled"`
	Severity string   `yaml:"Severity"`
	Include  []string `yaml:"Include"`
	Exclude  []string `yaml:"Exclude"`

	includeSet *globSet
	excludeSet *globSet
}

// defaultHeader returns the common header with a rule's default severity,
// matching original_source's BaseCopConfig::with_severity.
func defaultHeader(sev diag.Severity) Header {
	return Header{Enabled: true, Severity: sev.String()}
}

// compile builds this header's globsets from its Include/Exclude patterns.
// Called once per loaded Config, never per file (see Header.shouldRun).
func (h *Header) compile() {
	h.includeSet = newGlobSet(h.Include)
	h.excludeSet = newGlobSet(h.Exclude)
}

// shouldRun implements §4.5's should_run(rule_cfg_path, file_path): disabled
// rules never run; an Include list, if present, is an allowlist (the path
// must match it); Exclude always wins over Include when both match.
func (h *Header) shouldRun(path string) bool {
	if !h.Enabled {
		return false
	}
	if h.includeSet != nil && !h.includeSet.match(path) {
		return false
	}
	if h.excludeSet != nil && h.excludeSet.match(path) {
		return false
	}
	return true
}
