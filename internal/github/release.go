package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
)

// rateLimitMessagePrefix is the text GitHub's API puts at the start of a
// 403 response body's "message" field when the caller has exceeded the
// request rate limit, as opposed to any other 403 (e.g. a private repo).
const rateLimitMessagePrefix = "API rate limit exceeded"

// releaseResponse represents a subset of the GitHub Releases API response.
type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// GetLatestRelease fetches the latest release tag from a GitHub repository.
// It strips the optional tagPrefix from the tag name (e.g., "bun-v" from "bun-v1.2.3").
// Returns the version string without the prefix.
func GetLatestRelease(ctx context.Context, client *http.Client, owner, repo, tagPrefix string) (string, error) {
	if strings.Contains(owner, "/") || strings.Contains(repo, "/") {
		return "", fmt.Errorf("invalid owner %q or repo %q: must not contain '/'", owner, repo)
	}
	if owner == "" || repo == "" {
		return "", fmt.Errorf("owner and repo must not be empty")
	}

	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status %d for %s/%s", resp.StatusCode, owner, repo)
	}

	var release releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if release.TagName == "" {
		return "", fmt.Errorf("empty tag_name in latest release for %s/%s", owner, repo)
	}

	version := strings.TrimPrefix(release.TagName, tagPrefix)
	return version, nil
}

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name   string `json:"name"`
	Digest string `json:"digest"`
}

// Release is the subset of the GitHub Releases API response the
// self-updater needs: enough to filter out drafts/prereleases, parse a
// semver tag, and locate the asset (and its digest) for the host triple.
type Release struct {
	TagName    string  `json:"tag_name"`
	Draft      bool    `json:"draft"`
	Prerelease bool    `json:"prerelease"`
	Assets     []Asset `json:"assets"`
}

// ListReleases fetches every release of owner/repo, most recent first,
// the same ordering the GitHub API returns.
func ListReleases(ctx context.Context, client *http.Client, owner, repo string) ([]Release, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases", owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		message := readRateLimitMessage(resp)
		if resp.StatusCode == http.StatusForbidden && strings.HasPrefix(message, rateLimitMessagePrefix) {
			return nil, gdvmerrors.NewRateLimitedError(url, retryAfterSeconds(resp))
		}
		return nil, gdvmerrors.NewGithubAPIError(url, resp.StatusCode, message)
	}

	var releases []Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return releases, nil
}

// retryAfterSeconds reads the Retry-After header GitHub sets on some
// rate-limited responses, defaulting to 0 (retry immediately) when absent
// or unparsable.
func retryAfterSeconds(resp *http.Response) int {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	seconds, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return seconds
}

// readRateLimitMessage extracts the "message" field from a JSON error
// body, if present, so callers can detect the "API rate limit exceeded"
// prefix GitHub uses on 403 responses.
func readRateLimitMessage(resp *http.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Message
}
