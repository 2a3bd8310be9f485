package inventory

import (
	"path/filepath"
	"sort"

	"github.com/mvp-joe/api-inventory/internal/config"
	"github.com/mvp-joe/api-inventory/internal/inventory/extraction"
)

// PackageRecord groups the modules of one package directory.
type PackageRecord struct {
	Path      string                    `yaml:"path"`
	QName     string                    `yaml:"qname"`
	IsPackage bool                      `yaml:"is_package"`
	Modules   []extraction.ModuleRecord `yaml:"modules"`
}

// BuildPackageTree groups discovered files into a package skeleton before
// any parsing happens. Under any_dir_with_py every directory directly
// holding a .py file is a package; under require_init_py only directories
// with an __init__.py are. Files whose parent is not a recognized package
// are dropped silently. Each module skeleton carries only its identity
// (path, qualified name); content is filled in later by the parse workers.
func BuildPackageTree(root string, files []string, cfg *config.Config) ([]PackageRecord, error) {
	pkgDirs := map[string]bool{}
	for _, f := range files {
		if cfg.PackageMode == config.PackageModeRequireInit && filepath.Base(f) != "__init__.py" {
			continue
		}
		pkgDirs[filepath.Dir(f)] = true
	}

	dirs := make([]string, 0, len(pkgDirs))
	for d := range pkgDirs {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	packages := make([]PackageRecord, 0, len(dirs))
	byRel := map[string]int{}
	for _, dir := range dirs {
		rel, err := normalizeRel(root, dir, cfg)
		if err != nil {
			return nil, err
		}
		byRel[rel] = len(packages)
		packages = append(packages, PackageRecord{
			Path:      rel,
			QName:     PackageQName(rel),
			IsPackage: true,
			Modules:   []extraction.ModuleRecord{},
		})
	}

	for _, f := range files {
		parentRel, err := normalizeRel(root, filepath.Dir(f), cfg)
		if err != nil {
			return nil, err
		}
		idx, ok := byRel[parentRel]
		if !ok {
			continue
		}
		rel, err := normalizeRel(root, f, cfg)
		if err != nil {
			return nil, err
		}
		packages[idx].Modules = append(packages[idx].Modules, extraction.ModuleRecord{
			Path:    rel,
			QName:   ModuleQName(rel),
			Classes: []extraction.ClassRecord{},
		})
	}

	return packages, nil
}

func normalizeRel(root, path string, cfg *config.Config) (string, error) {
	rel, err := NormalizeRelPath(root, path)
	if err != nil {
		return "", err
	}
	if cfg.LeadingSlashInPaths {
		return "/" + rel, nil
	}
	return rel, nil
}
