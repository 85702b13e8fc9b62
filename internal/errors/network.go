//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "github.com/terassyi/gdvm/internal/i18n"

// NotFoundError means a single file download (an engine archive or a gdvm
// release binary) returned 404.
type NotFoundError struct {
	Base Error `json:"error"`

	URL string `json:"url,omitempty"`
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(url string) *NotFoundError {
	return &NotFoundError{
		Base: Error{
			Category: CategoryNetwork,
			Code:     CodeNotFound,
			Message:  i18n.T("error.not_found"),
		},
		URL: url,
	}
}

func (e *NotFoundError) Error() string { return e.Base.Error() }
func (e *NotFoundError) Unwrap() error { return e.Base.Cause }
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// RateLimitedError means the GitHub API responded 403 with a body message
// starting "API rate limit exceeded".
type RateLimitedError struct {
	Base Error `json:"error"`

	URL        string `json:"url,omitempty"`
	RetryAfter int    `json:"retryAfterSeconds,omitempty"`
}

// NewRateLimitedError creates a RateLimitedError.
func NewRateLimitedError(url string, retryAfter int) *RateLimitedError {
	return &RateLimitedError{
		Base: Error{
			Category: CategoryNetwork,
			Code:     CodeRateLimited,
			Message:  i18n.T("error.rate_limited", retryAfter),
			Hint:     i18n.T("error.rate_limited.hint"),
		},
		URL:        url,
		RetryAfter: retryAfter,
	}
}

func (e *RateLimitedError) Error() string { return e.Base.Error() }
func (e *RateLimitedError) Unwrap() error { return e.Base.Cause }
func (e *RateLimitedError) Is(target error) bool {
	t, ok := target.(*RateLimitedError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}

// GithubAPIError wraps a non-2xx response from the GitHub Releases API
// used by the self-updater and release listing.
type GithubAPIError struct {
	Base Error `json:"error"`

	StatusCode int    `json:"statusCode,omitempty"`
	URL        string `json:"url,omitempty"`
}

// NewGithubAPIError creates a GithubAPIError. message is the API's own
// "message" field from the error body, if any.
func NewGithubAPIError(url string, statusCode int, message string) *GithubAPIError {
	return &GithubAPIError{
		Base: Error{
			Category: CategoryNetwork,
			Code:     CodeGithubAPI,
			Message:  i18n.T("error.github_api", statusCode, message),
		},
		StatusCode: statusCode,
		URL:        url,
	}
}

func (e *GithubAPIError) Error() string { return e.Base.Error() }
func (e *GithubAPIError) Unwrap() error { return e.Base.Cause }
func (e *GithubAPIError) Is(target error) bool {
	t, ok := target.(*GithubAPIError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
