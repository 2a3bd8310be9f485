package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/api-inventory/internal/config"
	"github.com/mvp-joe/api-inventory/internal/inventory"
)

const defaultOutputFile = "api_signatures.yaml"

var (
	scanRoot       string
	scanConfigFile string
	scanOutput     string
	scanStdout     bool
	scanExcludes   []string
	scanPyproject  string
	printSummary   bool

	// Toggle flags. Only flags the user actually set become overrides, so
	// config-file values survive unset flags.
	flagPublicOnly      bool
	flagAllMethods      bool
	flagConstants       bool
	flagDocstrings      bool
	flagStripDocstrings bool
	flagEnums           bool
	flagNoEnums         bool
	flagFunctions       bool
	flagPackageMode     string
	flagLeadingSlash    bool
	flagNoLeadingSlash  bool
	flagConstantVis     string
	flagConcurrency     int
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a Python repository and write the API inventory",
	Long: `Scan discovers every .py file under --root, parses each one structurally,
extracts the configured API surface, and writes a deterministic YAML report.

A file that fails to parse is logged and counted; the run still completes
and still writes the report. The process exits 2 in that case, 0 on a
clean run, and 1 on setup failure.

Examples:
  # Scan a repository into api_signatures.yaml
  api-inventory scan --root ./myproject

  # Write to stdout, excluding tests and vendored code
  api-inventory scan --root . --stdout -e "tests/**" -e "vendor"

  # Pick up name/version from the project manifest
  api-inventory scan --root . --pyproject ./pyproject.toml

  # Only ALL_CAPS constants, packages need __init__.py
  api-inventory scan --root . --constant-visibility uppercase \
    --package-mode require_init_py
`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	f := scanCmd.Flags()
	f.StringVar(&scanRoot, "root", "", "top-level directory to scan (required)")
	f.StringVar(&scanConfigFile, "config", "", "path to a YAML config file")
	f.StringVarP(&scanOutput, "output", "o", "", "output file (default "+defaultOutputFile+")")
	f.BoolVar(&scanStdout, "stdout", false, "write the report to stdout")
	f.StringArrayVarP(&scanExcludes, "exclude", "e", nil, "glob pattern to exclude (repeatable)")
	f.StringVar(&scanPyproject, "pyproject", "", "pyproject.toml for name/version metadata")
	f.BoolVar(&printSummary, "print-summary", false, "print a one-line summary to stderr")

	f.BoolVar(&flagPublicOnly, "public-only", false, "only public classes, methods and functions")
	f.BoolVar(&flagAllMethods, "all-methods", false, "include private and dunder members")
	f.BoolVar(&flagConstants, "include-constants", false, "extract module and class constants")
	f.BoolVar(&flagDocstrings, "include-docstrings", false, "include module docstrings")
	f.BoolVar(&flagStripDocstrings, "strip-docstrings", false, "trim surrounding whitespace from docstrings")
	f.BoolVar(&flagEnums, "include-enums", false, "classify Enum subclasses separately")
	f.BoolVar(&flagNoEnums, "no-enums", false, "treat Enum subclasses as plain classes")
	f.BoolVar(&flagFunctions, "include-functions", false, "extract module-level functions")
	f.StringVar(&flagPackageMode, "package-mode", "", "package boundary policy: any_dir_with_py | require_init_py")
	f.BoolVar(&flagLeadingSlash, "leading-slash", false, "prefix relative paths with /")
	f.BoolVar(&flagNoLeadingSlash, "no-leading-slash", false, "no / prefix on relative paths")
	f.StringVar(&flagConstantVis, "constant-visibility", "", "constant policy: no_underscore | uppercase")
	f.IntVarP(&flagConcurrency, "concurrency", "j", 0, "parse worker count (default: number of CPUs)")

	scanCmd.MarkFlagRequired("root")
	scanCmd.MarkFlagsMutuallyExclusive("output", "stdout")
	scanCmd.MarkFlagsMutuallyExclusive("public-only", "all-methods")
	scanCmd.MarkFlagsMutuallyExclusive("include-enums", "no-enums")
	scanCmd.MarkFlagsMutuallyExclusive("leading-slash", "no-leading-slash")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(scanConfigFile, buildOverrides(cmd))
	if err != nil {
		return err
	}

	var progress inventory.ProgressReporter = inventory.NoOpProgressReporter{}
	if !quiet {
		progress = NewScanProgressReporter()
	}

	svc, err := inventory.NewService(inventory.Options{
		Root:          scanRoot,
		Config:        cfg,
		PyprojectPath: scanPyproject,
		Logger:        slog.Default(),
		Progress:      progress,
	})
	if err != nil {
		return err
	}

	report, err := svc.Run(cmd.Context())
	if err != nil {
		return err
	}

	if scanStdout {
		if err := inventory.WriteReport(os.Stdout, report); err != nil {
			return err
		}
	} else {
		out := scanOutput
		if out == "" {
			out = defaultOutputFile
		}
		if err := inventory.WriteReportFile(out, report); err != nil {
			return err
		}
		slog.Info("inventory written", "path", out)
	}

	if printSummary {
		s := report.Stats
		fmt.Fprintf(os.Stderr, "\nSummary: %d scanned, %d ok, %d errors.\n",
			s.FilesScanned, s.FilesParsedOK, s.FilesParseErrors)
	}

	if report.Stats.FilesParseErrors > 0 {
		return errParseFailures
	}
	return nil
}

// buildOverrides turns only the flags the user set into config overrides.
func buildOverrides(cmd *cobra.Command) config.Overrides {
	f := cmd.Flags()
	ov := config.Overrides{}

	if f.Changed("public-only") {
		ov.PublicOnly = ptr(true)
	}
	if f.Changed("all-methods") {
		ov.PublicOnly = ptr(false)
	}
	if f.Changed("include-constants") {
		ov.IncludeConstants = ptr(true)
	}
	if f.Changed("include-docstrings") {
		ov.IncludeDocstrings = ptr(true)
	}
	if f.Changed("strip-docstrings") {
		ov.StripDocstrings = ptr(true)
	}
	if f.Changed("include-enums") {
		ov.IncludeEnums = ptr(true)
	}
	if f.Changed("no-enums") {
		ov.IncludeEnums = ptr(false)
	}
	if f.Changed("include-functions") {
		ov.IncludeFunctions = ptr(true)
	}
	if f.Changed("package-mode") {
		ov.PackageMode = ptr(flagPackageMode)
	}
	if f.Changed("leading-slash") {
		ov.LeadingSlashInPaths = ptr(true)
	}
	if f.Changed("no-leading-slash") {
		ov.LeadingSlashInPaths = ptr(false)
	}
	if f.Changed("constant-visibility") {
		ov.ConstantVisibility = ptr(flagConstantVis)
	}
	if f.Changed("concurrency") {
		ov.Concurrency = ptr(flagConcurrency)
	}
	if f.Changed("exclude") {
		ov.Exclude = scanExcludes
	}

	return ov
}

func ptr[T any](v T) *T {
	return &v
}
