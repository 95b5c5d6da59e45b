// Package config provides configuration types and defaults for mediameta.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidFormat indicates an unknown output format was provided.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidJobs indicates a job count outside the valid range.
	ErrInvalidJobs = errors.New("jobs out of range")

	// ErrEmptyFFprobePath indicates the ffprobe executable was set to an empty string.
	ErrEmptyFFprobePath = errors.New("ffprobe path is empty")
)
