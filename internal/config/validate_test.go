package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Validate(Default()))
}

func TestValidate_PackageMode(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.PackageMode = "bogus"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidPackageMode)

	cfg.PackageMode = PackageModeRequireInit
	assert.NoError(t, Validate(cfg))
}

func TestValidate_ConstantVisibility(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.ConstantVisibility = "shouty"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidConstantVisibility)
}

func TestValidate_Concurrency(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Concurrency = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidConcurrency)

	cfg.Concurrency = -3
	assert.ErrorIs(t, Validate(cfg), ErrInvalidConcurrency)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.PackageMode = "bogus"
	cfg.ConstantVisibility = "shouty"
	cfg.Concurrency = 0

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid package mode")
	assert.Contains(t, err.Error(), "invalid constant visibility")
	assert.Contains(t, err.Error(), "invalid concurrency")
}
