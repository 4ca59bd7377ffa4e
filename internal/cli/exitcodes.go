package cli

import (
	"errors"

	"github.com/yaklabco/tmplpatch/internal/configloader"
	"github.com/yaklabco/tmplpatch/pkg/fsutil"
)

// Exit codes for tmplpatch.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates the command ran but found nothing to report,
	// such as a locate with no containing element.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration or edit file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors mapped to exit codes.
var (
	// ErrUsage marks invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks an unreadable or invalid config or edit file.
	ErrConfig = errors.New("invalid configuration")

	// ErrNoElement is returned by locate when no element contains the range.
	ErrNoElement = errors.New("no element contains the range")
)

// ExitCode maps an error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	var valErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoElement):
		return ExitFailure
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &valErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified),
		errors.Is(err, fsutil.ErrStdin):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
