package inventory

import (
	"path/filepath"
	"strings"
)

// NormalizeRelPath converts an absolute path into a forward-slash path
// relative to root. The leading-slash option is applied by callers on top of
// this canonical form.
func NormalizeRelPath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// ModuleQName derives the dotted qualified name of a module from its
// normalized relative path. A package initializer collapses onto its
// directory: "pkg/__init__.py" and "pkg" share the qualified name "pkg".
// Depends only on the path string, so every worker can compute it
// independently.
func ModuleQName(rel string) string {
	q := strings.TrimPrefix(rel, "/")
	q = strings.TrimSuffix(q, ".py")
	q = strings.TrimSuffix(q, "/__init__")
	return strings.ReplaceAll(q, "/", ".")
}

// PackageQName derives the dotted qualified name of a package directory from
// its normalized relative path. The repository root itself keeps ".".
func PackageQName(rel string) string {
	q := strings.TrimPrefix(rel, "/")
	return strings.ReplaceAll(q, "/", ".")
}
