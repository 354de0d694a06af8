package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the RuboCop-compatible YAML config at path, resolving every
// inherit_from chain, and returns the normalized, glob-compiled Config the
// checking engine consumes. Grounded on original_source's
// load_rubocop_yaml/load_with_inheritance (config/loader.rs), generalized
// from serde_yaml to gopkg.in/yaml.v3 per SPEC_FULL.md §4.5/§6.
func Load(path string) (*Config, error) {
	doc, err := loadWithInheritance(path, make(map[string]struct{}))
	if err != nil {
		return nil, err
	}
	return FromDoc(doc), nil
}

// ParseString parses content as a standalone RuboCop YAML document with no
// inherit_from resolution — useful for tests (mirrors original_source's
// parse_rubocop_yaml).
func ParseString(content string) (*Config, error) {
	var doc rawDoc
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return nil, Wrap(ErrConfigParse, "parsing config", err)
	}
	if doc == nil {
		doc = rawDoc{}
	}
	return FromDoc(doc), nil
}

func loadWithInheritance(path string, visited map[string]struct{}) (rawDoc, error) {
	canonical := canonicalize(path)
	if _, seen := visited[canonical]; seen {
		return nil, Wrap(ErrCircularInheritance, fmt.Sprintf("circular inherit_from at %s", path), nil)
	}
	visited[canonical] = struct{}{}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, Wrap(ErrConfigIO, fmt.Sprintf("reading %s", path), err)
	}

	var doc rawDoc
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, Wrap(ErrConfigParse, fmt.Sprintf("parsing %s", path), err)
	}
	if doc == nil {
		doc = rawDoc{}
	}

	inherited := extractInheritFrom(doc)
	if len(inherited) == 0 {
		return doc, nil
	}

	baseDir := filepath.Dir(path)
	merged := rawDoc{}
	for _, rel := range inherited {
		parentPath := rel
		if !filepath.IsAbs(parentPath) {
			parentPath = filepath.Join(baseDir, rel)
		}
		// Missing inherited files are silently skipped (spec.md §4.5); a
		// file that exists but fails to parse, or whose own inheritance
		// chain cycles back here, is not "missing" and propagates instead.
		if _, statErr := os.Stat(parentPath); statErr != nil {
			continue
		}
		parentDoc, err := loadWithInheritance(parentPath, visited)
		if err != nil {
			return nil, err
		}
		merged = mergeDocs(merged, parentDoc)
	}
	return mergeDocs(merged, doc), nil
}

// canonicalize resolves symlinks when possible, falling back to an absolute
// path (and finally the raw input) so circular-inheritance detection keys on
// the same identity original_source's Path::canonicalize targets, without
// failing the whole load when a path segment doesn't exist yet.
func canonicalize(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
