package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/yaklabco/qstripper/internal/configloader"
	"github.com/yaklabco/qstripper/pkg/fsutil"
	"github.com/yaklabco/qstripper/pkg/quill"
	"github.com/yaklabco/qstripper/pkg/runner"
)

// Exit codes for qstripper.
const (
	// ExitSuccess indicates every file was handled.
	ExitSuccess = 0

	// ExitFilesFailed indicates the run completed but at least one file failed.
	ExitFilesFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrFilesFailed is returned when a command finished but some files could not
// be decoded or written. The per-file errors have already been reported.
var ErrFilesFailed = errors.New("one or more files failed")

// ExitError carries an explicit exit code alongside the error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: errors.Join(errors.New("failed to load configuration"), err)}
}

// ExitCodeFromResult determines the exit code for a finished run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasFailures() {
		return ExitSuccess
	}
	return ExitFilesFailed
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.Is(err, ErrFilesFailed):
		return ExitFilesFailed
	case errors.As(err, &validationErr):
		return ExitConfigError
	case quill.ErrorKind(err) != "":
		return ExitFilesFailed
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrTooLarge),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIOError
	case isCobraUsageError(err):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// isCobraUsageError recognises the argument errors cobra builds with fmt.Errorf.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "accepts ", "requires at least", "requires at most", "unknown flag", "unknown shorthand flag"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
