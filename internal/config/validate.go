package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPackageMode indicates an unsupported package boundary policy
	ErrInvalidPackageMode = errors.New("invalid package mode")

	// ErrInvalidConstantVisibility indicates an unsupported constant policy
	ErrInvalidConstantVisibility = errors.New("invalid constant visibility")

	// ErrInvalidConcurrency indicates a non-positive worker count
	ErrInvalidConcurrency = errors.New("invalid concurrency")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	switch cfg.PackageMode {
	case PackageModeAnyDir, PackageModeRequireInit:
	default:
		errs = append(errs, fmt.Errorf("%w: must be '%s' or '%s', got '%s'",
			ErrInvalidPackageMode, PackageModeAnyDir, PackageModeRequireInit, cfg.PackageMode))
	}

	switch cfg.ConstantVisibility {
	case ConstantVisibilityNoUnderscore, ConstantVisibilityUppercase:
	default:
		errs = append(errs, fmt.Errorf("%w: must be '%s' or '%s', got '%s'",
			ErrInvalidConstantVisibility, ConstantVisibilityNoUnderscore, ConstantVisibilityUppercase, cfg.ConstantVisibility))
	}

	if cfg.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidConcurrency, cfg.Concurrency))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
