//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "github.com/terassyi/gdvm/internal/i18n"

// ChecksumMismatchError means a downloaded archive's hash did not match
// the release metadata's declared hash.
type ChecksumMismatchError struct {
	Base Error `json:"error"`

	URL      string `json:"url,omitempty"`
	Expected string `json:"expected,omitempty"`
	Got      string `json:"got,omitempty"`
}

// NewChecksumMismatchError creates a ChecksumMismatchError.
func NewChecksumMismatchError(url, expected, got string) *ChecksumMismatchError {
	return &ChecksumMismatchError{
		Base: Error{
			Category: CategoryInstall,
			Code:     CodeChecksumMismatch,
			Message:  i18n.T("error.checksum_mismatch"),
			Hint:     i18n.T("error.checksum_mismatch.hint"),
		},
		URL:      url,
		Expected: expected,
		Got:      got,
	}
}

func (e *ChecksumMismatchError) Error() string { return e.Base.Error() }
func (e *ChecksumMismatchError) Unwrap() error { return e.Base.Cause }
func (e *ChecksumMismatchError) Is(target error) bool {
	t, ok := target.(*ChecksumMismatchError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// InvalidHashLengthError means a declared hash string's length matches
// neither SHA-256 nor SHA-512 hex encoding.
type InvalidHashLengthError struct {
	Base Error `json:"error"`

	Length int `json:"length,omitempty"`
}

// NewInvalidHashLengthError creates an InvalidHashLengthError.
func NewInvalidHashLengthError(length int) *InvalidHashLengthError {
	return &InvalidHashLengthError{
		Base: Error{
			Category: CategoryInstall,
			Code:     CodeInvalidHashLength,
			Message:  i18n.T("error.invalid_hash_length", length),
		},
		Length: length,
	}
}

func (e *InvalidHashLengthError) Error() string { return e.Base.Error() }
func (e *InvalidHashLengthError) Unwrap() error { return e.Base.Cause }
func (e *InvalidHashLengthError) Is(target error) bool {
	t, ok := target.(*InvalidHashLengthError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// DownloadFailedError wraps a failed download together with the number of
// the attempt that failed; DownloadFile makes a single attempt.
type DownloadFailedError struct {
	Base Error `json:"error"`

	URL     string `json:"url,omitempty"`
	Attempt int    `json:"attempt,omitempty"`
}

// NewDownloadFailedError creates a DownloadFailedError.
func NewDownloadFailedError(url string, attempt int, cause error) *DownloadFailedError {
	return &DownloadFailedError{
		Base: Error{
			Category: CategoryInstall,
			Code:     CodeDownloadFailed,
			Message:  i18n.T("error.download_failed", attempt),
			Cause:    cause,
		},
		URL:     url,
		Attempt: attempt,
	}
}

func (e *DownloadFailedError) Error() string { return e.Base.Error() }
func (e *DownloadFailedError) Unwrap() error { return e.Base.Cause }
func (e *DownloadFailedError) Is(target error) bool {
	t, ok := target.(*DownloadFailedError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// SymlinkPrivilegeError means the default/link step could not create or
// rewrite a symlink (commonly: Windows without developer mode or admin).
type SymlinkPrivilegeError struct {
	Base Error `json:"error"`

	Path string `json:"path,omitempty"`
}

// NewSymlinkPrivilegeError creates a SymlinkPrivilegeError.
func NewSymlinkPrivilegeError(path string, cause error) *SymlinkPrivilegeError {
	return &SymlinkPrivilegeError{
		Base: Error{
			Category: CategoryInstall,
			Code:     CodeSymlinkPrivilege,
			Message:  i18n.T("error.symlink_privilege"),
			Cause:    cause,
			Hint:     i18n.T("error.symlink_privilege.hint"),
		},
		Path: path,
	}
}

func (e *SymlinkPrivilegeError) Error() string { return e.Base.Error() }
func (e *SymlinkPrivilegeError) Unwrap() error { return e.Base.Cause }
func (e *SymlinkPrivilegeError) Is(target error) bool {
	t, ok := target.(*SymlinkPrivilegeError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// ExecutableNotFoundError means an installed version's directory exists
// but no recognizable engine binary or app bundle was found inside it.
type ExecutableNotFoundError struct {
	Base Error `json:"error"`

	Version string `json:"version,omitempty"`
}

// NewExecutableNotFoundError creates an ExecutableNotFoundError.
func NewExecutableNotFoundError(version string) *ExecutableNotFoundError {
	return &ExecutableNotFoundError{
		Base: Error{
			Category: CategoryInstall,
			Code:     CodeExecutableNotFound,
			Message:  i18n.T("error.executable_not_found", version),
			Hint:     i18n.T("error.executable_not_found.hint"),
		},
		Version: version,
	}
}

func (e *ExecutableNotFoundError) Error() string { return e.Base.Error() }
func (e *ExecutableNotFoundError) Unwrap() error { return e.Base.Cause }
func (e *ExecutableNotFoundError) Is(target error) bool {
	t, ok := target.(*ExecutableNotFoundError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
