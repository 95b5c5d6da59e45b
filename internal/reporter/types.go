// Package reporter renders inspection results and batch events.
package reporter

import (
	"time"

	"github.com/five82/mediameta/internal/metadata"
)

// BatchStartInfo contains batch start metadata.
type BatchStartInfo struct {
	TotalFiles int
	FileList   []string
}

// FileReport carries one successfully inspected file. Position is the
// zero-based index of the file in the batch.
type FileReport struct {
	Position int
	File     *metadata.MediaFile
}

// ReporterError contains error information.
type ReporterError struct {
	Path    string
	Message string
}

// BatchSummary contains batch completion information.
type BatchSummary struct {
	SuccessfulCount int
	TotalFiles      int
	TotalDuration   time.Duration
	FailedFiles     []string
}
