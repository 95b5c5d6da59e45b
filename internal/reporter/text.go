package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/template"
)

// labelWidth is the column at which report values start.
const labelWidth = 24

// tagKeyWidth is the column, relative to the indent, at which tag values start.
const tagKeyWidth = 20

const fileTemplate = `{{with .Title}}{{label "Title"}}{{.}}
{{end}}{{label "Filename"}}{{.FileName}}
{{label "File size"}}{{.FileSize}} ({{.FileSizeBase10}}, {{.FileSizeBase2}})
{{with .Hash}}{{label "SHA-256 digest"}}{{.}}
{{end}}{{label "Container format"}}{{.ContainerFormat}}
{{label "Duration"}}{{or .Duration "Not available"}}
{{with .PixelDimensions}}{{label "Pixel dimensions"}}{{.}}
{{end}}{{with .SampleAspectRatio}}{{label "Sample aspect ratio"}}{{.}}
{{end}}{{with .DisplayAspectRatio}}{{label "Display aspect ratio"}}{{.}}
{{end}}{{with .ScanType}}{{label "Scan type"}}{{.}}
{{end}}{{with .FrameRate}}{{label "Frame rate"}}{{.}}
{{end}}{{label "Bit rate"}}{{or .BitRate "Not available"}}
Streams:
{{range .Streams}}    {{.Summary}}
{{end}}{{with .Tags}}Tags:
{{range .}}    {{padkey .Key}}{{.Value}}
{{end}}{{end}}{{range .StreamsTags}}{{if .Tags}}  #{{.Index}}
{{range .Tags}}    {{padkey .Key}}{{.Value}}
{{end}}{{end}}{{end}}`

var textTemplate = template.Must(template.New("file").Funcs(template.FuncMap{
	"label":  label,
	"padkey": padKey,
}).Parse(fileTemplate))

// label pads "name:" to the value column.
func label(name string) string {
	return fmt.Sprintf("%-*s", labelWidth, name+":")
}

// padKey pads "key: " to the tag value column.
func padKey(key string) string {
	return fmt.Sprintf("%-*s", tagKeyWidth, key+": ")
}

// RenderText renders doc in the human-readable layout.
func RenderText(doc Document) (string, error) {
	var b strings.Builder
	if err := textTemplate.Execute(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}

// TextReporter writes each file's report in the human-readable layout,
// followed by a blank line.
type TextReporter struct {
	NullReporter
	writer io.Writer
	mu     sync.Mutex
}

// NewTextReporter creates a text reporter that writes to stdout.
func NewTextReporter() *TextReporter {
	return &TextReporter{writer: os.Stdout}
}

// NewTextReporterWithWriter creates a text reporter with a custom writer.
func NewTextReporterWithWriter(w io.Writer) *TextReporter {
	return &TextReporter{writer: w}
}

func (r *TextReporter) FileReport(report FileReport) {
	text, err := RenderText(NewDocument(report.File))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: rendering %s: %v\n", report.File.Path, err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.writer, text)
}
