//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "github.com/terassyi/gdvm/internal/i18n"

// VersionNotFoundError means a requested version has no matching release.
type VersionNotFoundError struct {
	Base Error `json:"error"`

	// Requested is the version string the user asked for.
	Requested string `json:"requested,omitempty"`
}

// NewVersionNotFoundError creates a VersionNotFoundError.
func NewVersionNotFoundError(requested string) *VersionNotFoundError {
	return &VersionNotFoundError{
		Base: Error{
			Category: CategoryVersion,
			Code:     CodeVersionNotFound,
			Message:  i18n.T("error.version_not_found", requested),
			Hint:     i18n.T("error.version_not_found.hint"),
		},
		Requested: requested,
	}
}

func (e *VersionNotFoundError) Error() string  { return e.Base.Error() }
func (e *VersionNotFoundError) Unwrap() error  { return e.Base.Cause }
func (e *VersionNotFoundError) Is(target error) bool {
	t, ok := target.(*VersionNotFoundError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// MultipleVersionsFoundError means a partial version matched more than one release
// and the resolver cannot break the tie without more information.
type MultipleVersionsFoundError struct {
	Base Error `json:"error"`

	Requested string   `json:"requested,omitempty"`
	Matches   []string `json:"matches,omitempty"`
}

// NewMultipleVersionsFoundError creates a MultipleVersionsFoundError.
func NewMultipleVersionsFoundError(requested string, matches []string) *MultipleVersionsFoundError {
	return &MultipleVersionsFoundError{
		Base: Error{
			Category: CategoryVersion,
			Code:     CodeMultipleVersionsFound,
			Message:  i18n.T("error.multiple_versions_found", requested, len(matches)),
			Hint:     i18n.T("error.multiple_versions_found.hint"),
		},
		Requested: requested,
		Matches:   matches,
	}
}

func (e *MultipleVersionsFoundError) Error() string { return e.Base.Error() }
func (e *MultipleVersionsFoundError) Unwrap() error { return e.Base.Cause }
func (e *MultipleVersionsFoundError) Is(target error) bool {
	t, ok := target.(*MultipleVersionsFoundError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// InvalidVersionStringError means a version string could not be parsed in any dialect.
type InvalidVersionStringError struct {
	Base Error `json:"error"`

	Input string `json:"input,omitempty"`
}

// NewInvalidVersionStringError creates an InvalidVersionStringError.
func NewInvalidVersionStringError(input string) *InvalidVersionStringError {
	return &InvalidVersionStringError{
		Base: Error{
			Category: CategoryVersion,
			Code:     CodeInvalidVersionString,
			Message:  i18n.T("error.invalid_version_string", input),
			Hint:     i18n.T("error.invalid_version_string.hint"),
		},
		Input: input,
	}
}

func (e *InvalidVersionStringError) Error() string { return e.Base.Error() }
func (e *InvalidVersionStringError) Unwrap() error { return e.Base.Cause }
func (e *InvalidVersionStringError) Is(target error) bool {
	t, ok := target.(*InvalidVersionStringError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// NoDefaultError means no default version is pinned and none was given explicitly.
type NoDefaultError struct {
	Base Error `json:"error"`
}

// NewNoDefaultError creates a NoDefaultError.
func NewNoDefaultError() *NoDefaultError {
	return &NoDefaultError{
		Base: Error{
			Category: CategoryVersion,
			Code:     CodeNoDefault,
			Message:  i18n.T("error.no_default"),
			Hint:     i18n.T("error.no_default.hint"),
		},
	}
}

func (e *NoDefaultError) Error() string { return e.Base.Error() }
func (e *NoDefaultError) Unwrap() error { return e.Base.Cause }
func (e *NoDefaultError) Is(target error) bool {
	t, ok := target.(*NoDefaultError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// ProjectVersionMismatchError means an explicit or pinned version conflicts
// with the version the project.godot file declares.
type ProjectVersionMismatchError struct {
	Base Error `json:"error"`

	ProjectPath string `json:"projectPath,omitempty"`
	Requested   string `json:"requested,omitempty"`
}

// NewProjectVersionMismatchError creates a ProjectVersionMismatchError.
func NewProjectVersionMismatchError(projectPath, requested string) *ProjectVersionMismatchError {
	return &ProjectVersionMismatchError{
		Base: Error{
			Category: CategoryVersion,
			Code:     CodeProjectVersionMismatch,
			Message:  i18n.T("error.project_version_mismatch", requested),
			Hint:     i18n.T("error.project_version_mismatch.hint", requested),
		},
		ProjectPath: projectPath,
		Requested:   requested,
	}
}

func (e *ProjectVersionMismatchError) Error() string { return e.Base.Error() }
func (e *ProjectVersionMismatchError) Unwrap() error { return e.Base.Cause }
func (e *ProjectVersionMismatchError) Is(target error) bool {
	t, ok := target.(*ProjectVersionMismatchError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
