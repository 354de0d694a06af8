// Package scanner discovers Ruby source files to check. File discovery is an
// external collaborator to the checking engine: it only has to produce a
// deterministic, deduplicated list of paths honoring include/exclude globs.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtensions lists the file extensions recognized without an explicit
// include glob, mirroring RuboCop's own default target list.
var DefaultExtensions = []string{
	"rb", "rake", "gemspec", "ru", "podspec", "jbuilder", "rabl", "thor", "rbi",
}

// DefaultFilenames lists extension-less filenames that are always recognized.
var DefaultFilenames = []string{
	"Gemfile", "Rakefile", "Guardfile", "Capfile", "Dangerfile", "Berksfile",
	"Brewfile", "Vagrantfile", "Thorfile", ".pryrc", ".irbrc", ".simplecov",
}

// defaultSkipDirs lists directory names the walk never descends into.
var defaultSkipDirs = []string{".git", "node_modules", "tmp", "vendor"}

// Config holds scanner configuration options, generally derived from the
// checking engine's resolved Config (Include/Exclude) plus CLI overrides.
type Config struct {
	MaxBytes       int64
	FollowSymlinks bool
	IncludeGlobs   []string
	ExcludeGlobs   []string
}

// Scanner handles recursive directory traversal with filtering capabilities.
//
// Deliberately does not consult .gitignore: RuboCop itself does not, and
// SPEC_FULL.md names this explicitly, so teaching this walker to respect
// .gitignore (as the teacher's own scanner does) would contradict the
// documented contract rather than merely go unused.
type Scanner struct {
	maxBytes       int64
	followSymlinks bool
	includeGlobs   []string
	excludeGlobs   []string
}

// New creates a new scanner with the given configuration.
func New(cfg Config) *Scanner {
	return &Scanner{
		maxBytes:       cfg.MaxBytes,
		followSymlinks: cfg.FollowSymlinks,
		includeGlobs:   cfg.IncludeGlobs,
		excludeGlobs:   cfg.ExcludeGlobs,
	}
}

// ScanTargets processes a list of file and directory targets, returning a
// deduplicated, sorted-by-discovery list of files to check.
func (s *Scanner) ScanTargets(ctx context.Context, targets []string) ([]string, error) {
	if len(targets) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		targets = []string{cwd}
	}

	var allFiles []string
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		files, err := s.scanTarget(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("scanning target %s: %w", target, err)
		}
		allFiles = append(allFiles, files...)
	}

	return deduplicateFiles(allFiles), nil
}

func (s *Scanner) scanTarget(ctx context.Context, target string) ([]string, error) {
	info, err := os.Lstat(target)
	if err != nil {
		return nil, fmt.Errorf("accessing target %s: %w", target, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !s.followSymlinks {
			return nil, nil
		}
		resolved, err := filepath.EvalSymlinks(target)
		if err != nil {
			return nil, fmt.Errorf("resolving symlink %s: %w", target, err)
		}
		return s.scanTarget(ctx, resolved)
	}

	if info.Mode().IsRegular() {
		if s.shouldProcessFile(target, info) {
			return []string{target}, nil
		}
		return nil, nil
	}

	if info.IsDir() {
		return s.scanDirectory(ctx, target)
	}

	return nil, nil
}

func (s *Scanner) scanDirectory(ctx context.Context, dir string) ([]string, error) {
	var files []string

	err := fs.WalkDir(os.DirFS(dir), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fullPath := filepath.Join(dir, path)

		if d.IsDir() {
			if path != "." && shouldSkipDirectory(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return fmt.Errorf("getting file info for %s: %w", fullPath, err)
			}
			if s.shouldProcessFile(fullPath, info) {
				files = append(files, fullPath)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", dir, err)
	}

	return files, nil
}

func (s *Scanner) shouldProcessFile(path string, info os.FileInfo) bool {
	if s.maxBytes > 0 && info.Size() > s.maxBytes {
		return false
	}

	basename := filepath.Base(path)
	if !isRecognizedRubyFile(basename) {
		return false
	}

	if len(s.includeGlobs) > 0 {
		matched := false
		for _, pattern := range s.includeGlobs {
			if ok, _ := doublestar.Match(pattern, basename); ok {
				matched = true
				break
			}
			if ok, _ := doublestar.Match(pattern, path); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, pattern := range s.excludeGlobs {
		if ok, _ := doublestar.Match(pattern, basename); ok {
			return false
		}
		if ok, _ := doublestar.Match(pattern, path); ok {
			return false
		}
	}

	return true
}

func isRecognizedRubyFile(basename string) bool {
	if slices.Contains(DefaultFilenames, basename) {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(basename), ".")
	return slices.Contains(DefaultExtensions, ext)
}

func shouldSkipDirectory(dirname string) bool {
	return slices.Contains(defaultSkipDirs, dirname)
}

func deduplicateFiles(files []string) []string {
	seen := make(map[string]bool, len(files))
	result := make([]string, 0, len(files))
	for _, file := range files {
		if !seen[file] {
			seen[file] = true
			result = append(result, file)
		}
	}
	return result
}
