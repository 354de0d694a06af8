package config

import (
	"strconv"
	"strings"
)

// rawDoc is one parsed .rubocop.yml as a generic map: RuboCop YAML's
// top-level keys are a flat mix of meta keys (inherit_from, AllCops) and
// `Category/RuleName` cop keys, so yaml.v3 decodes straight into
// map[string]interface{} rather than a single fixed struct — the set of
// valid cop keys is closed (see ruleKeys in config.go) but decoding generically
// lets merge operate uniformly over every key, known or not, the same way
// RuboCop itself tolerates cop names it doesn't recognize (spec §7: "Unknown
// cop names in config are silently ignored").
type rawDoc = map[string]interface{}

// extractInheritFrom reads inherit_from, accepting both the single-string and
// string-list shapes (original_source's InheritFrom::Single/Multiple).
func extractInheritFrom(doc rawDoc) []string {
	v, ok := doc["inherit_from"]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// mergeDocs overlays child onto parent. Every top-level key child supplies
// replaces parent's value for that key outright — "child overrides parent"
// at the whole-rule-block granularity spec.md §4.5/§6 describes — except
// AllCops, which original_source merges field-by-field via a dedicated
// merge_all_cops helper; this repurposes the same shallow key-overlay logic
// one level deeper for that one key.
func mergeDocs(parent, child rawDoc) rawDoc {
	out := make(rawDoc, len(parent)+len(child))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range child {
		if k == "AllCops" {
			if pm, ok := asMap(out["AllCops"]); ok {
				if cm, ok := asMap(v); ok {
					out["AllCops"] = mergeShallow(pm, cm)
					continue
				}
			}
		}
		out[k] = v
	}
	return out
}

func mergeShallow(parent, child map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(parent)+len(child))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range child {
		out[k] = v
	}
	return out
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

func asSubDoc(doc rawDoc, key string) rawDoc {
	if m, ok := asMap(doc[key]); ok {
		return m
	}
	return rawDoc{}
}

// getEnabled reads a rule block's Enabled field, accepting a bool or the
// RuboCop convention of a string such as "pending" (any string other than
// "false", case-insensitively, means enabled). Absent keeps def. Grounded on
// original_source's deserialize_enabled (config/serde_helpers.rs).
func getEnabled(m rawDoc, def bool) bool {
	v, ok := m["Enabled"]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.ToLower(t) != "false"
	default:
		return def
	}
}

// getSeverity reads a rule block's Severity string, or "" if absent/not a
// string (callers resolve "" against the rule's own default).
func getSeverity(m rawDoc) string {
	v, ok := m["Severity"]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func getStringSlice(m rawDoc, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	seq, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, e := range seq {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getString(m rawDoc, key, def string) string {
	v, ok := m[key]
	if !ok {
		return def
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// An unquoted value such as `TargetRubyVersion: 3.2` decodes as a float.
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return def
	}
}

func getBool(m rawDoc, key string, def bool) bool {
	v, ok := m[key]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// getInt reads an integer-valued key; yaml.v3 decodes unsuffixed YAML
// integers into map[string]interface{} as int, so this does not need to
// handle float64 the way a JSON-sourced map would.
func getInt(m rawDoc, key string, def int) int {
	v, ok := m[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	default:
		return def
	}
}
