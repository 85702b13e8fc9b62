//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "github.com/terassyi/gdvm/internal/i18n"

// UnsupportedPlatformError means the host OS has no published Godot build.
type UnsupportedPlatformError struct {
	Base Error `json:"error"`

	OS string `json:"os,omitempty"`
}

// NewUnsupportedPlatformError creates an UnsupportedPlatformError.
func NewUnsupportedPlatformError(osName string) *UnsupportedPlatformError {
	return &UnsupportedPlatformError{
		Base: Error{
			Category: CategoryPlatform,
			Code:     CodeUnsupportedPlatform,
			Message:  i18n.T("error.unsupported_platform", osName),
		},
		OS: osName,
	}
}

func (e *UnsupportedPlatformError) Error() string { return e.Base.Error() }
func (e *UnsupportedPlatformError) Unwrap() error { return e.Base.Cause }
func (e *UnsupportedPlatformError) Is(target error) bool {
	t, ok := target.(*UnsupportedPlatformError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// UnsupportedArchError means the host CPU architecture has no published build
// for an otherwise-supported OS.
type UnsupportedArchError struct {
	Base Error `json:"error"`

	OS   string `json:"os,omitempty"`
	Arch string `json:"arch,omitempty"`
}

// NewUnsupportedArchError creates an UnsupportedArchError.
func NewUnsupportedArchError(osName, arch string) *UnsupportedArchError {
	return &UnsupportedArchError{
		Base: Error{
			Category: CategoryPlatform,
			Code:     CodeUnsupportedArch,
			Message:  i18n.T("error.unsupported_arch", osName, arch),
		},
		OS:   osName,
		Arch: arch,
	}
}

func (e *UnsupportedArchError) Error() string { return e.Base.Error() }
func (e *UnsupportedArchError) Unwrap() error { return e.Base.Cause }
func (e *UnsupportedArchError) Is(target error) bool {
	t, ok := target.(*UnsupportedArchError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// MissingBinaryURLError means a release's capability matrix has no asset URL
// for the current host.
type MissingBinaryURLError struct {
	Base Error `json:"error"`

	Version string `json:"version,omitempty"`
	OS      string `json:"os,omitempty"`
	Arch    string `json:"arch,omitempty"`
}

// NewMissingBinaryURLError creates a MissingBinaryURLError.
func NewMissingBinaryURLError(version, osName, arch string) *MissingBinaryURLError {
	return &MissingBinaryURLError{
		Base: Error{
			Category: CategoryPlatform,
			Code:     CodeMissingBinaryURL,
			Message:  i18n.T("error.missing_binary_url", version, osName, arch),
		},
		Version: version,
		OS:      osName,
		Arch:    arch,
	}
}

func (e *MissingBinaryURLError) Error() string { return e.Base.Error() }
func (e *MissingBinaryURLError) Unwrap() error { return e.Base.Cause }
func (e *MissingBinaryURLError) Is(target error) bool {
	t, ok := target.(*MissingBinaryURLError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
