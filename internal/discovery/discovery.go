// Package discovery expands command-line inputs into the list of files to
// inspect.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/five82/mediameta/internal/util"
)

// DiscoveryLogger defines the interface for discovery logging.
type DiscoveryLogger interface {
	Info(format string, args ...any)
	Debug(format string, args ...any)
}

// DiscoveryResult contains the results of file discovery with metadata.
type DiscoveryResult struct {
	Files        []string
	SkippedCount int
	Errors       []error
}

// ExpandPaths returns the files to inspect for the given inputs, in input
// order. Without recursive, inputs pass through unchanged so that path
// validation reports directories and missing files. With recursive, each
// directory is replaced by the media files below it, sorted by path.
func ExpandPaths(inputs []string, recursive bool, logger DiscoveryLogger) *DiscoveryResult {
	result := &DiscoveryResult{}

	for _, input := range inputs {
		if !recursive || !util.DirectoryExists(input) {
			result.Files = append(result.Files, input)
			continue
		}

		files, skipped, err := FindMediaFiles(input)
		result.SkippedCount += skipped
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		if logger != nil {
			logDiscoveredFiles(input, files, logger)
		}
		result.Files = append(result.Files, files...)
	}

	return result
}

// FindMediaFiles walks dir and returns the media files below it, sorted by
// path. Hidden files and directories are skipped. skipped counts regular
// files without a media extension.
func FindMediaFiles(dir string) (files []string, skipped int, err error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("%s is not a directory", dir)
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}

		name := d.Name()
		// Skip hidden entries, but never the root itself
		if path != dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if util.IsMediaFile(path) {
			files = append(files, path)
		} else {
			skipped++
		}
		return nil
	})
	if err != nil {
		return nil, skipped, err
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i]) < strings.ToLower(files[j])
	})
	return files, skipped, nil
}

// logDiscoveredFiles logs the first 5 discovered files plus a count.
func logDiscoveredFiles(dir string, files []string, logger DiscoveryLogger) {
	if len(files) == 0 {
		logger.Info("No media files found in %s", dir)
		return
	}

	logger.Info("Found %d media file(s) in %s", len(files), dir)

	maxToLog := min(5, len(files))
	for i := 0; i < maxToLog; i++ {
		logger.Debug("  %s", filepath.Base(files[i]))
	}

	if len(files) > 5 {
		logger.Debug("  ... and %d more", len(files)-5)
	}
}
