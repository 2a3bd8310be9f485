package config

import "runtime"

// Package boundary policies. any_dir_with_py treats every directory that
// directly contains a Python file as a package; require_init_py only
// recognizes directories carrying an __init__.py.
const (
	PackageModeAnyDir      = "any_dir_with_py"
	PackageModeRequireInit = "require_init_py"
)

// Constant acceptance policies. no_underscore keeps any public name;
// uppercase additionally requires an ALL_CAPS name.
const (
	ConstantVisibilityNoUnderscore = "no_underscore"
	ConstantVisibilityUppercase    = "uppercase"
)

// Config is the full option set for one inventory run. It is loaded once,
// validated, and then threaded read-only through every component; there is
// no process-wide configuration singleton.
//
// The struct is echoed verbatim into the report's config_effective block,
// so field order here is the serialized key order.
type Config struct {
	PublicOnly          bool     `yaml:"public_only" mapstructure:"public_only"`
	IncludeConstants    bool     `yaml:"include_constants" mapstructure:"include_constants"`
	IncludeDocstrings   bool     `yaml:"include_docstrings" mapstructure:"include_docstrings"`
	StripDocstrings     bool     `yaml:"strip_docstrings" mapstructure:"strip_docstrings"`
	IncludeEnums        bool     `yaml:"include_enums" mapstructure:"include_enums"`
	IncludeFunctions    bool     `yaml:"include_functions" mapstructure:"include_functions"`
	PackageMode         string   `yaml:"package_mode" mapstructure:"package_mode"`
	LeadingSlashInPaths bool     `yaml:"leading_slash_in_paths" mapstructure:"leading_slash_in_paths"`
	ConstantVisibility  string   `yaml:"constant_visibility" mapstructure:"constant_visibility"`
	Concurrency         int      `yaml:"concurrency" mapstructure:"concurrency"`
	Exclude             []string `yaml:"exclude" mapstructure:"exclude"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		PublicOnly:          true,
		IncludeConstants:    true,
		IncludeDocstrings:   true,
		StripDocstrings:     false,
		IncludeEnums:        true,
		IncludeFunctions:    true,
		PackageMode:         PackageModeAnyDir,
		LeadingSlashInPaths: false,
		ConstantVisibility:  ConstantVisibilityNoUnderscore,
		Concurrency:         runtime.NumCPU(),
		Exclude:             []string{},
	}
}
