package history_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charsnap/charsnap/internal/adapters/outbound/history"
	"github.com/charsnap/charsnap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	h := history.New()

	entry := domain.RunEntry{
		ID:              "0b9f1c2e-8a4d-4c55-9d47-6c1f0f7e2a10",
		Timestamp:       "2026-02-25T10:00:00Z",
		OutputPath:      "encoding_results.json",
		RuntimeVersion:  "1.24.10",
		DetectorVersion: "0.0.0",
		CorpusRevision:  "abc1234",
		Files:           47,
		Digest:          "d1g3st",
	}

	err := h.Save(path, entry)
	require.NoError(t, err)

	entries, err := h.Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
}

func TestHistory_AppendMultiple(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	h := history.New()

	require.NoError(t, h.Save(path, domain.RunEntry{Timestamp: "t1", Files: 47}))
	require.NoError(t, h.Save(path, domain.RunEntry{Timestamp: "t2", Files: 62}))
	require.NoError(t, h.Save(path, domain.RunEntry{Timestamp: "t3", Files: 85}))

	entries, err := h.Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 47, entries[0].Files)
	assert.Equal(t, 85, entries[2].Files)
}

func TestHistory_LoadEmpty(t *testing.T) {
	h := history.New()

	entries, err := h.Load(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := history.New().Load(path)
	assert.Error(t, err)
	assert.Error(t, history.New().Save(path, domain.RunEntry{}))
}

func TestHistory_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "history.json")
	h := history.New()

	err := h.Save(path, domain.RunEntry{Timestamp: "t1", Files: 50})
	require.NoError(t, err)

	entries, err := h.Load(path)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
