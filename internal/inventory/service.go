package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mvp-joe/api-inventory/internal/config"
	"github.com/mvp-joe/api-inventory/internal/inventory/extraction"
	"github.com/mvp-joe/api-inventory/internal/inventory/parsers"
)

// Service runs one inventory scan: discover files, build the package
// skeleton, fan parse work out to a worker pool, and assemble the report.
type Service struct {
	root          string
	cfg           *config.Config
	pyprojectPath string
	logger        *slog.Logger
	progress      ProgressReporter
}

// Options configures a Service.
type Options struct {
	// Root is the repository root to scan. Required; must be a directory.
	Root string
	// Config is the effective run configuration. Defaults when nil.
	Config *config.Config
	// PyprojectPath optionally points at a manifest for name/version lookup.
	PyprojectPath string
	Logger        *slog.Logger
	Progress      ProgressReporter
}

// NewService validates the scan root and fixes defaults. A missing or
// non-directory root is a setup failure.
func NewService(opts Options) (*Service, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("scan root is required")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %q: %w", opts.Root, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root %q: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", opts.Root)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	progress := opts.Progress
	if progress == nil {
		progress = NoOpProgressReporter{}
	}

	return &Service{
		root:          root,
		cfg:           cfg,
		pyprojectPath: opts.PyprojectPath,
		logger:        logger,
		progress:      progress,
	}, nil
}

// Run executes the scan and returns the assembled report. Per-file parse
// failures are counted and logged, never fatal; only setup-time problems
// (unwalkable root, invalid exclude pattern) return an error.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now().UTC()

	pkgName, pkgVersion := ReadProjectMeta(s.pyprojectPath)

	s.progress.OnDiscoveryStart()
	discovery, err := NewFileDiscovery(s.root, s.cfg.Exclude, s.logger)
	if err != nil {
		return nil, err
	}
	files, excluded, err := discovery.Discover()
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.root, err)
	}
	s.progress.OnDiscoveryComplete(len(files), excluded)

	packages, err := BuildPackageTree(s.root, files, s.cfg)
	if err != nil {
		return nil, err
	}

	totalModules := 0
	for i := range packages {
		totalModules += len(packages[i].Modules)
	}

	stats := Stats{
		FilesScanned:  len(files),
		FilesExcluded: excluded,
		Packages:      len(packages),
		Modules:       totalModules,
	}

	if totalModules > 0 {
		s.processModules(packages, totalModules, &stats)
	}

	sort.Slice(packages, func(i, j int) bool { return packages[i].QName < packages[j].QName })

	report := &Report{
		Meta: Meta{
			SchemaVersion:   SchemaVersion,
			GeneratedAt:     start.Format(time.RFC3339),
			Package:         PackageMeta{Name: pkgName, Version: pkgVersion},
			Root:            s.root,
			ConfigEffective: s.cfg,
		},
		Stats:    stats,
		Packages: packages,
	}

	s.progress.OnComplete(&report.Stats, time.Since(start))
	return report, nil
}

type parseResult struct {
	qname  string
	record *extraction.ModuleRecord
	errMsg string
}

// processModules fans one parse task per module skeleton out to a bounded
// worker pool and merges the results back in skeleton order. Results are
// keyed by qualified name, so completion order never influences the output;
// modules within each package are re-sorted by qualified name afterwards.
func (s *Service) processModules(packages []PackageRecord, total int, stats *Stats) {
	workers := s.cfg.Concurrency
	if workers < 1 {
		workers = 1
	}

	s.progress.OnParsingStart(total)

	jobs := make(chan string, total)
	results := make(chan parseResult, total)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- s.parseOne(path)
			}
		}()
	}

	for i := range packages {
		for j := range packages[i].Modules {
			jobs <- packages[i].Modules[j].Path
		}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	parsed := make(map[string]parseResult, total)
	for res := range results {
		parsed[res.qname] = res
		s.progress.OnModuleParsed(res.qname)
	}

	for i := range packages {
		pkg := &packages[i]
		merged := make([]extraction.ModuleRecord, 0, len(pkg.Modules))
		for j := range pkg.Modules {
			skeleton := &pkg.Modules[j]
			res, ok := parsed[skeleton.QName]
			if !ok || res.record == nil {
				stats.FilesParseErrors++
				msg := "no result"
				if ok {
					msg = res.errMsg
				}
				s.logger.Warn("module failed", "path", skeleton.Path, "error", msg)
				continue
			}
			stats.FilesParsedOK++
			updateStats(stats, res.record)
			merged = append(merged, *res.record)
		}
		sort.Slice(merged, func(a, b int) bool { return merged[a].QName < merged[b].QName })
		pkg.Modules = merged
	}
}

// parseOne is the worker task. It re-derives the relative path and
// qualified name from the file path alone, so it depends on nothing the
// coordinator computed. A panic inside parsing is downgraded to a
// per-module error.
func (s *Service) parseOne(skeletonPath string) (res parseResult) {
	absPath := filepath.Join(s.root, strings.TrimPrefix(skeletonPath, "/"))

	rel, err := NormalizeRelPath(s.root, absPath)
	if err != nil {
		return parseResult{qname: skeletonPath, errMsg: fmt.Sprintf("path error: %v", err)}
	}
	if s.cfg.LeadingSlashInPaths {
		rel = "/" + rel
	}
	qname := ModuleQName(rel)
	res.qname = qname

	defer func() {
		if r := recover(); r != nil {
			res.record = nil
			res.errMsg = fmt.Sprintf("worker panic: %v", r)
		}
	}()

	mod, err := parsers.ParseFile(absPath)
	if err != nil {
		res.errMsg = err.Error()
		return res
	}

	var docstring string
	if s.cfg.IncludeDocstrings {
		docstring = mod.Docstring
		if s.cfg.StripDocstrings {
			docstring = strings.TrimSpace(docstring)
		}
	}

	constants, enums, functions, classes := extraction.New(s.cfg, qname).Extract(mod.Decls, extraction.ScopeModule)

	record := &extraction.ModuleRecord{
		Path:      rel,
		QName:     qname,
		Docstring: docstring,
		Constants: constants,
		Enums:     enums,
		Functions: functions,
		Classes:   classes,
	}
	if !s.cfg.IncludeConstants {
		record.Constants = nil
	}
	if !s.cfg.IncludeEnums {
		record.Enums = nil
	}
	if !s.cfg.IncludeFunctions {
		record.Functions = nil
	}

	res.record = record
	return res
}

func updateStats(stats *Stats, mod *extraction.ModuleRecord) {
	stats.Constants += len(mod.Constants)
	stats.Enums += len(mod.Enums)
	stats.Functions += len(mod.Functions)
	stats.Classes += len(mod.Classes)
	for i := range mod.Classes {
		stats.Constants += len(mod.Classes[i].Constants)
		stats.Methods += len(mod.Classes[i].Methods)
	}
}
