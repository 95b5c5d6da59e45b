package reporter

import (
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/five82/mediameta/internal/logging"
)

// YAMLReporter writes one YAML document per file, each opened by "---".
type YAMLReporter struct {
	NullReporter
	writer io.Writer
	mu     sync.Mutex
}

// NewYAMLReporter creates a YAML reporter that writes to stdout.
func NewYAMLReporter() *YAMLReporter {
	return &YAMLReporter{writer: os.Stdout}
}

// NewYAMLReporterWithWriter creates a YAML reporter with a custom writer.
func NewYAMLReporterWithWriter(w io.Writer) *YAMLReporter {
	return &YAMLReporter{writer: w}
}

func (r *YAMLReporter) FileReport(report FileReport) {
	data, err := yaml.Marshal(NewDocument(report.File))
	if err != nil {
		logging.Error("Failed to encode YAML report", "error", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.writer, "---\n")
	_, _ = r.writer.Write(data)
}
