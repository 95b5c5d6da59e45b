package reporter

// Reporter receives inspection events for a batch of files.
type Reporter interface {
	BatchStarted(info BatchStartInfo)
	FileReport(report FileReport)
	Error(err ReporterError)
	Warning(message string)
	Verbose(message string)
	BatchComplete(summary BatchSummary)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) BatchStarted(BatchStartInfo) {}
func (NullReporter) FileReport(FileReport)       {}
func (NullReporter) Error(ReporterError)         {}
func (NullReporter) Warning(string)              {}
func (NullReporter) Verbose(string)              {}
func (NullReporter) BatchComplete(BatchSummary)  {}
