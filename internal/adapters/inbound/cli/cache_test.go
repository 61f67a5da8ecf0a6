package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheClearCommand(t *testing.T) {
	root := writeCorpus(t)
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	cacheFile := filepath.Join(cacheDir, "detections.json")

	_, err := run(t, "snapshot", "--corpus", root, "--output", filepath.Join(dir, "out.json"), "--cache-dir", cacheDir)
	require.NoError(t, err)
	require.FileExists(t, cacheFile)

	out, err := run(t, "cache", "clear", "--cache-dir", cacheDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared detection cache")
	assert.NoFileExists(t, cacheFile)

	_, err = run(t, "cache", "clear", "--cache-dir", cacheDir)
	assert.NoError(t, err, "clearing an empty cache succeeds")
}

func TestCacheClearCommand_NoDirectory(t *testing.T) {
	_, err := run(t, "cache", "clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cache directory")
}
