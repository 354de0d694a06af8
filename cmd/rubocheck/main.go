// Command rubocheck is the CLI entry point: parse flags, discover target
// files, run the checking engine (internal/cliapp wires together
// internal/checker, internal/config, internal/rewrite, internal/scanner),
// and exit with the status code SPEC_FULL.md §6 documents.
//
// Grounded on the teacher's cmd/morfx/main.go (thin main that loads a local
// .env via godotenv.Load, ignoring a missing file, then delegates the real
// work to a package function) — repointed at internal/cliapp.Run instead of
// morfx's DSL-query runner.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/oxhq/rubocheck/internal/cliapp"
)

func main() {
	// A missing .env is expected in most invocations (CI, a bare checkout);
	// only a local development environment carries one, same as the
	// teacher's own main().
	_ = godotenv.Load()

	os.Exit(cliapp.Run(os.Args[1:], os.Stdout, os.Stderr))
}
