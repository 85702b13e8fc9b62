// Package checksum verifies downloaded archives against the hash declared
// in release metadata.
package checksum

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"os"

	gdvmerrors "github.com/terassyi/gdvm/internal/errors"
)

// Algorithm identifies a supported hash algorithm.
type Algorithm string

const (
	AlgorithmSHA256 Algorithm = "sha256"
	AlgorithmSHA512 Algorithm = "sha512"
)

// DetectAlgorithm infers the algorithm from a hex-encoded hash's length,
// since release metadata declares a bare hash with no algorithm prefix.
func DetectAlgorithm(hexHash string) (Algorithm, error) {
	switch len(hexHash) {
	case 64:
		return AlgorithmSHA256, nil
	case 128:
		return AlgorithmSHA512, nil
	default:
		return "", gdvmerrors.NewInvalidHashLengthError(len(hexHash))
	}
}

// NewHash returns a fresh hash.Hash for the given algorithm.
func NewHash(algorithm Algorithm) (hash.Hash, error) {
	switch algorithm {
	case AlgorithmSHA256:
		return sha256.New(), nil
	case AlgorithmSHA512:
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", algorithm)
	}
}

// CalculateFromReader computes the hex-encoded digest of r using algorithm.
func CalculateFromReader(r io.Reader, algorithm Algorithm) (string, error) {
	h, err := NewHash(algorithm)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to read data: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Calculate computes the hex-encoded digest of the file at path.
func Calculate(path string, algorithm Algorithm) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return CalculateFromReader(f, algorithm)
}

// Verify checks that the file at path matches expectedHex, auto-detecting
// the algorithm from the hash's length as done for Godot release metadata.
func Verify(path, url, expectedHex string) error {
	algorithm, err := DetectAlgorithm(expectedHex)
	if err != nil {
		return err
	}

	actual, err := Calculate(path, algorithm)
	if err != nil {
		return err
	}

	if actual != expectedHex {
		slog.Warn("checksum mismatch", "url", url, "expected", expectedHex, "got", actual)
		return gdvmerrors.NewChecksumMismatchError(url, expectedHex, actual)
	}
	return nil
}
