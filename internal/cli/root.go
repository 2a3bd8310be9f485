package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

// errParseFailures signals a run that completed and wrote its report but
// saw at least one file fail to parse. Mapped to a distinct exit code.
var errParseFailures = errors.New("one or more files failed to parse")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "api-inventory",
	Short: "Static Python API surface inventory",
	Long: `api-inventory walks a Python repository and writes a YAML inventory of its
API surface: packages, modules, classes, methods, functions, constants and
enumerations, with signatures and docstrings.

The tool is read-only. It never imports or executes the analyzed code;
everything comes from structural parsing of the source text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// Execute runs the root command and maps errors to process exit codes:
// 0 on a clean run, 2 when files failed to parse, 1 on setup failure.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errParseFailures) {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug-level logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "errors only")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
