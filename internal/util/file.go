package util

import (
	"os"
	"path/filepath"
	"strings"
)

// MediaExtensions is the list of extensions picked up when expanding directories.
var MediaExtensions = map[string]bool{
	".3g2":  true,
	".3gp":  true,
	".aac":  true,
	".aiff": true,
	".asf":  true,
	".avi":  true,
	".flac": true,
	".flv":  true,
	".m2ts": true,
	".m4a":  true,
	".m4v":  true,
	".mj2":  true,
	".mka":  true,
	".mkv":  true,
	".mov":  true,
	".mp3":  true,
	".mp4":  true,
	".mpeg": true,
	".mpg":  true,
	".ogg":  true,
	".ogv":  true,
	".opus": true,
	".qt":   true,
	".rm":   true,
	".ts":   true,
	".vob":  true,
	".wav":  true,
	".webm": true,
	".wmv":  true,
}

// IsMediaFile checks if the given path is a regular file with a known media extension.
func IsMediaFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return MediaExtensions[strings.ToLower(filepath.Ext(path))]
}

// GetFilename returns the filename from a path.
func GetFilename(path string) string {
	return filepath.Base(path)
}

// GetExtension returns the lower-cased extension of path without the dot.
func GetExtension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// DirectoryExists checks if a directory exists.
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
