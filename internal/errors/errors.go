// Package errors provides structured error types for mediameta operations.
package errors

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// KindIO represents I/O errors (file size, checksum reads).
	KindIO ErrorKind = iota
	// KindNotFound represents an input path that does not exist.
	KindNotFound
	// KindNotAFile represents an input path that is not a regular file.
	KindNotAFile
	// KindUnrecognizedContainer represents a file the facade cannot demux.
	KindUnrecognizedContainer
	// KindCodecInit represents a stream whose decoder cannot be constructed.
	KindCodecInit
	// KindCommand represents external command execution errors.
	KindCommand
	// KindJSONParse represents JSON parsing errors.
	KindJSONParse
	// KindConfig represents configuration validation errors.
	KindConfig
	// KindCancelled represents user-cancelled operations.
	KindCancelled
)

// String returns a string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindNotFound:
		return "Not found"
	case KindNotAFile:
		return "Not a file"
	case KindUnrecognizedContainer:
		return "Unrecognized container"
	case KindCodecInit:
		return "Codec initialization error"
	case KindCommand:
		return "Command error"
	case KindJSONParse:
		return "JSON parse error"
	case KindConfig:
		return "Configuration error"
	case KindCancelled:
		return "Operation cancelled"
	default:
		return "Unknown error"
	}
}

// CommandErrorKind represents the type of command error.
type CommandErrorKind int

const (
	// CommandStart means the command failed to start.
	CommandStart CommandErrorKind = iota
	// CommandWait means waiting for the command failed.
	CommandWait
	// CommandFailed means the command returned non-zero exit status.
	CommandFailed
)

// CommandError represents an error from executing an external command.
type CommandError struct {
	Command    string
	Kind       CommandErrorKind
	ExitCode   int
	Stderr     string
	Underlying error
}

func (e *CommandError) Error() string {
	switch e.Kind {
	case CommandStart:
		return fmt.Sprintf("failed to execute %s: %v", e.Command, e.Underlying)
	case CommandWait:
		return fmt.Sprintf("failed to wait for %s: %v", e.Command, e.Underlying)
	case CommandFailed:
		if e.Stderr != "" {
			return fmt.Sprintf("command %s failed with exit code %d: %s", e.Command, e.ExitCode, e.Stderr)
		}
		return fmt.Sprintf("command %s failed with exit code %d", e.Command, e.ExitCode)
	default:
		return fmt.Sprintf("command %s error: %v", e.Command, e.Underlying)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Underlying
}

// CoreError is the main error type for mediameta operations.
type CoreError struct {
	Kind       ErrorKind
	Message    string
	Underlying error
}

func (e *CoreError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Underlying
}

// Is reports whether target matches this error's kind.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewIOError creates a new I/O error.
func NewIOError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindIO, Message: message, Underlying: underlying}
}

// NewNotFoundError creates an error for an input path that does not exist.
func NewNotFoundError(path string) *CoreError {
	return &CoreError{Kind: KindNotFound, Message: fmt.Sprintf("%q does not exist", path)}
}

// NewNotAFileError creates an error for an input path that is not a regular file.
func NewNotAFileError(path string) *CoreError {
	return &CoreError{Kind: KindNotAFile, Message: fmt.Sprintf("%q is not a file", path)}
}

// NewUnrecognizedContainerError creates an error for a file that cannot be demuxed.
func NewUnrecognizedContainerError(path string, underlying error) *CoreError {
	return &CoreError{
		Kind:       KindUnrecognizedContainer,
		Message:    fmt.Sprintf("cannot open %q as a media container", path),
		Underlying: underlying,
	}
}

// NewCodecInitError creates an error for a stream whose decoder cannot be built.
func NewCodecInitError(streamIndex int, message string) *CoreError {
	return &CoreError{
		Kind:    KindCodecInit,
		Message: fmt.Sprintf("stream #%d: %s", streamIndex, message),
	}
}

// NewCommandError creates a new command execution error.
func NewCommandError(cmd string, kind CommandErrorKind, underlying error) *CoreError {
	cmdErr := &CommandError{
		Command:    cmd,
		Kind:       kind,
		Underlying: underlying,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewCommandStartError creates an error for when a command fails to start.
func NewCommandStartError(cmd string, err error) *CoreError {
	return NewCommandError(cmd, CommandStart, err)
}

// NewCommandWaitError creates an error for when waiting for a command fails.
func NewCommandWaitError(cmd string, err error) *CoreError {
	return NewCommandError(cmd, CommandWait, err)
}

// NewCommandFailedError creates an error for when a command returns non-zero exit status.
func NewCommandFailedError(cmd string, exitCode int, stderr string) *CoreError {
	cmdErr := &CommandError{
		Command:  cmd,
		Kind:     CommandFailed,
		ExitCode: exitCode,
		Stderr:   stderr,
	}
	return &CoreError{Kind: KindCommand, Message: cmdErr.Error(), Underlying: cmdErr}
}

// NewJSONParseError creates a new JSON parsing error.
func NewJSONParseError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindJSONParse, Message: message, Underlying: underlying}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, underlying error) *CoreError {
	return &CoreError{Kind: KindConfig, Message: message, Underlying: underlying}
}

// NewCancelledError creates an error for user-cancelled operations.
func NewCancelledError() *CoreError {
	return &CoreError{Kind: KindCancelled, Message: "operation was cancelled by the user"}
}

// IsKind checks if the error has the specified kind.
func IsKind(err error, kind ErrorKind) bool {
	var coreErr *CoreError
	if errors.As(err, &coreErr) {
		return coreErr.Kind == kind
	}
	return false
}

// IsCancelled checks if the error is a cancellation error.
func IsCancelled(err error) bool {
	return IsKind(err, KindCancelled)
}

// IsInvalidPath checks if the error was raised before any container was opened.
func IsInvalidPath(err error) bool {
	return IsKind(err, KindNotFound) || IsKind(err, KindNotAFile)
}

// WrapExecError wraps an exec.ExitError into a CoreError.
func WrapExecError(cmd string, err error, stderr string) *CoreError {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return NewCommandFailedError(cmd, exitErr.ExitCode(), stderr)
	}
	return NewCommandStartError(cmd, err)
}
