package inventory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleQName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel  string
		want string
	}{
		{"pkg/a.py", "pkg.a"},
		{"pkg/sub/b.py", "pkg.sub.b"},
		{"pkg/__init__.py", "pkg"},
		{"pkg/sub/__init__.py", "pkg.sub"},
		{"a.py", "a"},
		{"__init__.py", "__init__"},
		{"/pkg/a.py", "pkg.a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ModuleQName(tt.rel), "ModuleQName(%q)", tt.rel)
	}
}

func TestPackageQName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pkg.sub", PackageQName("pkg/sub"))
	assert.Equal(t, "pkg.sub", PackageQName("/pkg/sub"))
	assert.Equal(t, ".", PackageQName("."))
}

func TestNormalizeRelPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rel, err := NormalizeRelPath(root, filepath.Join(root, "pkg", "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "pkg/a.py", rel)

	rel, err = NormalizeRelPath(root, root)
	require.NoError(t, err)
	assert.Equal(t, ".", rel)
}
