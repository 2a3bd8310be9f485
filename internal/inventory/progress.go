package inventory

import "time"

// ProgressReporter receives scan lifecycle callbacks. Implementations must
// tolerate concurrent OnModuleParsed calls from the worker pool.
type ProgressReporter interface {
	OnDiscoveryStart()
	OnDiscoveryComplete(files, excluded int)
	OnParsingStart(totalModules int)
	OnModuleParsed(qname string)
	OnComplete(stats *Stats, elapsed time.Duration)
}

// NoOpProgressReporter ignores all callbacks.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnDiscoveryStart() {}

func (NoOpProgressReporter) OnDiscoveryComplete(files, excluded int) {}

func (NoOpProgressReporter) OnParsingStart(totalModules int) {}

func (NoOpProgressReporter) OnModuleParsed(qname string) {}

func (NoOpProgressReporter) OnComplete(stats *Stats, d time.Duration) {}
