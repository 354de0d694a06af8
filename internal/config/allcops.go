package config

// AllCopsConfig mirrors RuboCop's `AllCops` YAML key: settings that apply
// across every rule rather than to one in particular. Grounded on
// original_source's AllCopsConfig (config/yaml.rs).
type AllCopsConfig struct {
	TargetRubyVersion   string   `yaml:"TargetRubyVersion"`
	Exclude             []string `yaml:"Exclude"`
	Include             []string `yaml:"Include"`
	NewCops             string   `yaml:"NewCops"`
	UseCache            bool     `yaml:"UseCache"`
	CacheRootDirectory  string   `yaml:"CacheRootDirectory"`
	SuggestedExtensions bool     `yaml:"SuggestedExtensions"`

	excludeSet *globSet
	includeSet *globSet
}

func (a *AllCopsConfig) compile() {
	a.excludeSet = newGlobSet(a.Exclude)
	a.includeSet = newGlobSet(a.Include)
}

// Excluded reports whether path is excluded from checking by the global
// AllCops.Exclude list, independent of any one rule's own exclude list.
func (a *AllCopsConfig) Excluded(path string) bool {
	return a.excludeSet.match(path)
}
