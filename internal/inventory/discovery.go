package inventory

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery enumerates eligible Python source files under one root,
// applying gitignore-style exclusion patterns against root-relative POSIX
// paths.
type FileDiscovery struct {
	rootDir  string
	excludes []compiledPattern
	logger   *slog.Logger
}

// NewFileDiscovery compiles the exclusion patterns up front; an invalid
// pattern is a setup failure, not something to discover mid-walk.
func NewFileDiscovery(rootDir string, excludePatterns []string, logger *slog.Logger) (*FileDiscovery, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fd := &FileDiscovery{
		rootDir: rootDir,
		logger:  logger,
	}

	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		fd.excludes = append(fd.excludes, compiledPattern{pattern: pattern, glob: g})

		// A bare directory pattern like "vendor" also excludes everything
		// beneath it, gitignore-style.
		if !strings.ContainsAny(pattern, "*?[{") {
			deep, err := glob.Compile(pattern+"/**", '/')
			if err == nil {
				fd.excludes = append(fd.excludes, compiledPattern{pattern: pattern + "/**", glob: deep})
			}
		}
	}

	return fd, nil
}

// Discover walks the tree and returns the sorted absolute paths of every
// regular, non-symlinked .py file that survives the exclusion patterns,
// plus the count of files the patterns rejected. Permission errors are
// logged and skipped; the scan continues with what it can reach.
func (fd *FileDiscovery) Discover() ([]string, int, error) {
	files := []string{}
	excluded := 0

	err := filepath.WalkDir(fd.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fd.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		// Symlinks are never followed; only regular files count.
		if !d.Type().IsRegular() {
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if fd.matchesAnyPattern(relPath) {
			excluded++
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Strings(files)
	return files, excluded, nil
}

// matchesAnyPattern checks a root-relative path against the compiled
// exclusion patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string) bool {
	for _, cp := range fd.excludes {
		if cp.glob.Match(path) {
			return true
		}
	}

	// A root-level file has no directory component, so "**/*.py"-shaped
	// patterns never match it directly; retry with the **/ prefix removed.
	if !strings.Contains(path, "/") {
		for _, cp := range fd.excludes {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
