package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/five82/mediameta/internal/logging"
)

// JSONReporter writes one JSON object per file (NDJSON).
type JSONReporter struct {
	NullReporter
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{writer: os.Stdout}
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) write(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error("Failed to encode JSON report", "error", err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) FileReport(report FileReport) {
	r.write(NewDocument(report.File))
}
