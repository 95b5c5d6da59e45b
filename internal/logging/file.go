package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileLog is a log file that the global logger writes to.
type FileLog struct {
	file     *os.File
	filePath string
	previous *Logger
}

// Setup opens (or appends to) the log file at path and points the global
// logger at it. Debug records are written when verbose is set, otherwise Info
// and above. Close restores the previous global logger.
func Setup(path string, verbose bool) (*FileLog, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	level := LevelInfo
	if verbose {
		level = LevelDebug
	}

	l := &FileLog{file: file, filePath: path, previous: Global()}
	Init(level, file)
	Info("mediameta starting", "log_file", path, "verbose", verbose)
	return l, nil
}

// Close restores the previous global logger and closes the log file.
func (l *FileLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	SetGlobal(l.previous)
	return l.file.Close()
}

// FilePath returns the path to the log file.
func (l *FileLog) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}
