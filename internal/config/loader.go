package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Overrides carries explicit per-run option values, typically collected from
// command-line flags. Nil pointer fields mean "not set" and leave the file or
// default value untouched, so precedence stays defaults < file < overrides.
type Overrides struct {
	PublicOnly          *bool
	IncludeConstants    *bool
	IncludeDocstrings   *bool
	StripDocstrings     *bool
	IncludeEnums        *bool
	IncludeFunctions    *bool
	PackageMode         *string
	LeadingSlashInPaths *bool
	ConstantVisibility  *string
	Concurrency         *int
	Exclude             []string
}

// Load builds the effective configuration with the following priority
// (lowest to highest):
//  1. Built-in defaults
//  2. Config file (YAML, only when configFile is non-empty)
//  3. Environment variables (APIINV_*)
//  4. Explicit overrides
//
// A missing or unreadable config file that was explicitly requested is an
// error; setup failures here abort the run before any scanning begins.
func Load(configFile string, ov Overrides) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("APIINV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyOverrides(cfg, ov)

	// Zero means "pick for me": size the worker pool to the machine.
	if cfg.Concurrency == 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("public_only", defaults.PublicOnly)
	v.SetDefault("include_constants", defaults.IncludeConstants)
	v.SetDefault("include_docstrings", defaults.IncludeDocstrings)
	v.SetDefault("strip_docstrings", defaults.StripDocstrings)
	v.SetDefault("include_enums", defaults.IncludeEnums)
	v.SetDefault("include_functions", defaults.IncludeFunctions)
	v.SetDefault("package_mode", defaults.PackageMode)
	v.SetDefault("leading_slash_in_paths", defaults.LeadingSlashInPaths)
	v.SetDefault("constant_visibility", defaults.ConstantVisibility)
	v.SetDefault("concurrency", defaults.Concurrency)
	v.SetDefault("exclude", defaults.Exclude)
}

func applyOverrides(cfg *Config, ov Overrides) {
	if ov.PublicOnly != nil {
		cfg.PublicOnly = *ov.PublicOnly
	}
	if ov.IncludeConstants != nil {
		cfg.IncludeConstants = *ov.IncludeConstants
	}
	if ov.IncludeDocstrings != nil {
		cfg.IncludeDocstrings = *ov.IncludeDocstrings
	}
	if ov.StripDocstrings != nil {
		cfg.StripDocstrings = *ov.StripDocstrings
	}
	if ov.IncludeEnums != nil {
		cfg.IncludeEnums = *ov.IncludeEnums
	}
	if ov.IncludeFunctions != nil {
		cfg.IncludeFunctions = *ov.IncludeFunctions
	}
	if ov.PackageMode != nil {
		cfg.PackageMode = *ov.PackageMode
	}
	if ov.LeadingSlashInPaths != nil {
		cfg.LeadingSlashInPaths = *ov.LeadingSlashInPaths
	}
	if ov.ConstantVisibility != nil {
		cfg.ConstantVisibility = *ov.ConstantVisibility
	}
	if ov.Concurrency != nil {
		cfg.Concurrency = *ov.Concurrency
	}
	if ov.Exclude != nil {
		cfg.Exclude = ov.Exclude
	}
}
