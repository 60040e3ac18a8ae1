package hasher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

func TestHashFile_Deterministic(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "sample.py")
	require.NoError(t, os.WriteFile(testFile, []byte("x=1"), 0o644))

	first, err := HashFile(testFile)
	require.NoError(t, err)
	second, err := HashFile(testFile)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, HashContent("x=1"), first)
}

func TestHashFile_EmptyFile(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "empty.txt")
	require.NoError(t, os.WriteFile(testFile, nil, 0o644))

	digest, err := HashFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, emptySHA256, digest)
	assert.Equal(t, emptySHA256, HashContent(""))
}

func TestHashFile_Missing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestHashFile_LargerThanChunkSize(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "big.bin")
	content := make([]byte, 200_000)
	for i := range content {
		content[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(testFile, content, 0o644))

	digest, err := HashFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, HashContent(string(content)), digest)
}
