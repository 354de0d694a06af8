// Package envconfig reads the small set of RUBOCHECK_* environment toggles
// that adjust ambient behavior (profiling) without flowing through the
// RuboCop-compatible YAML config tree at all — these are operator knobs, not
// per-rule settings.
//
// Grounded on the teacher's internal/config/config.go LoadConfig (MORFX_*
// env-var loader: string getenv with a default, int getenv parsed with
// strconv and a sanity check before it overrides the default), renamed to
// this repository's own RUBOCHECK_* variables.
package envconfig

import "os"

// Config holds the process-wide environment-derived settings.
type Config struct {
	// ProfileEnabled gates the Checker's per-rule invocation/duration
	// counters (SPEC_FULL.md §9 "Profiling counters, made concrete").
	ProfileEnabled bool
	// ProfileDBPath, if non-empty, is where counters are flushed to a
	// sqlite table on process exit. Profiling can be enabled with no path,
	// in which case counters are kept in memory only.
	ProfileDBPath string
}

// Load reads RUBOCHECK_PROFILE and RUBOCHECK_PROFILE_DB from the process
// environment.
func Load() *Config {
	return &Config{
		ProfileEnabled: os.Getenv("RUBOCHECK_PROFILE") == "1",
		ProfileDBPath:  os.Getenv("RUBOCHECK_PROFILE_DB"),
	}
}
