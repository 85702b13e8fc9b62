package checksum_test

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terassyi/gdvm/internal/checksum"
)

func TestDetectAlgorithm(t *testing.T) {
	tests := []struct {
		name    string
		hash    string
		want    checksum.Algorithm
		wantErr bool
	}{
		{
			name: "sha256 length",
			hash: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			want: checksum.AlgorithmSHA256,
		},
		{
			name: "sha512 length",
			hash: "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
			want: checksum.AlgorithmSHA512,
		},
		{
			name:    "unknown length",
			hash:    "abc123",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checksum.DetectAlgorithm(tt.hash)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateFromReader(t *testing.T) {
	content := []byte("hello godot")
	expectedSHA256 := fmt.Sprintf("%x", sha256.Sum256(content))
	expectedSHA512 := fmt.Sprintf("%x", sha512.Sum512(content))

	got, err := checksum.CalculateFromReader(bytes.NewReader(content), checksum.AlgorithmSHA256)
	require.NoError(t, err)
	assert.Equal(t, expectedSHA256, got)

	got, err = checksum.CalculateFromReader(bytes.NewReader(content), checksum.AlgorithmSHA512)
	require.NoError(t, err)
	assert.Equal(t, expectedSHA512, got)
}

func TestVerify(t *testing.T) {
	content := []byte("Godot_v4.2-stable_linux.x86_64.zip contents")
	expectedSHA256 := fmt.Sprintf("%x", sha256.Sum256(content))

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "archive.zip")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	require.NoError(t, checksum.Verify(path, "https://example.com/archive.zip", expectedSHA256))

	err := checksum.Verify(path, "https://example.com/archive.zip",
		"0000000000000000000000000000000000000000000000000000000000000000")
	require.Error(t, err)
}
