//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "fmt"

// CacheCorruptedError means the on-disk metadata cache file failed to parse.
// The cache store does not return it: an unparsable cache file is reset to
// an empty default document instead, so this never reaches the user.
type CacheCorruptedError struct {
	Base Error `json:"error"`

	Path string `json:"path,omitempty"`
}

// NewCacheCorruptedError creates a CacheCorruptedError.
func NewCacheCorruptedError(path string, cause error) *CacheCorruptedError {
	return &CacheCorruptedError{
		Base: Error{
			Category: CategoryState,
			Code:     CodeCacheCorrupted,
			Message:  "metadata cache is corrupted",
			Cause:    cause,
		},
		Path: path,
	}
}

func (e *CacheCorruptedError) Error() string { return e.Base.Error() }
func (e *CacheCorruptedError) Unwrap() error { return e.Base.Cause }
func (e *CacheCorruptedError) Is(target error) bool {
	t, ok := target.(*CacheCorruptedError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// StateLockedError means another gdvm process holds the advisory lock on
// a shared state file.
type StateLockedError struct {
	Base Error `json:"error"`

	LockFile string `json:"lockFile,omitempty"`
}

// NewStateLockedError creates a StateLockedError.
func NewStateLockedError(lockFile string) *StateLockedError {
	return &StateLockedError{
		Base: Error{
			Category: CategoryState,
			Code:     CodeStateLocked,
			Message:  "state is locked by another gdvm process",
			Hint:     fmt.Sprintf("Wait for the other invocation to finish, or remove %s if it's stale.", lockFile),
		},
		LockFile: lockFile,
	}
}

func (e *StateLockedError) Error() string { return e.Base.Error() }
func (e *StateLockedError) Unwrap() error { return e.Base.Cause }
func (e *StateLockedError) Is(target error) bool {
	t, ok := target.(*StateLockedError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
