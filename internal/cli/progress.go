package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/mvp-joe/api-inventory/internal/inventory"
)

// ScanProgressReporter renders scan progress on stderr, keeping stdout
// clean for --stdout report output.
type ScanProgressReporter struct {
	bar *progressbar.ProgressBar
}

// NewScanProgressReporter creates a progress reporter for interactive runs.
func NewScanProgressReporter() *ScanProgressReporter {
	return &ScanProgressReporter{}
}

func (c *ScanProgressReporter) OnDiscoveryStart() {
	slog.Debug("discovering files")
}

func (c *ScanProgressReporter) OnDiscoveryComplete(files, excluded int) {
	slog.Info("discovery complete", "files", files, "excluded", excluded)
}

func (c *ScanProgressReporter) OnParsingStart(totalModules int) {
	c.bar = progressbar.NewOptions(totalModules,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Parsing modules"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

func (c *ScanProgressReporter) OnModuleParsed(qname string) {
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *ScanProgressReporter) OnComplete(stats *inventory.Stats, elapsed time.Duration) {
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
	fmt.Fprintf(os.Stderr, "✓ Inventory complete: %d modules in %d packages (%.1fs)\n",
		stats.Modules, stats.Packages, elapsed.Seconds())
}
