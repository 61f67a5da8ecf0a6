package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charsnap/charsnap/internal/adapters/outbound/gitinfo"
)

func initRepo(t *testing.T, commit bool) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	if !commit {
		return dir
	}

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "testdata"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "testdata", "a.txt"), []byte("hello"), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("testdata/a.txt")
	require.NoError(t, err)
	_, err = wt.Commit("init", &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@test.com", When: time.Unix(0, 0)},
	})
	require.NoError(t, err)
	return dir
}

func TestGitInfo_CommitHash_ReturnsHash(t *testing.T) {
	dir := initRepo(t, true)

	gi := gitinfo.New()
	hash, err := gi.CommitHash(dir)
	require.NoError(t, err)
	assert.Len(t, hash, 40, "should be a full SHA-1 hash")
}

func TestGitInfo_CommitHash_FromSubdirectory(t *testing.T) {
	dir := initRepo(t, true)

	gi := gitinfo.New()
	fromRoot, err := gi.CommitHash(dir)
	require.NoError(t, err)
	fromCorpus, err := gi.CommitHash(filepath.Join(dir, "testdata"))
	require.NoError(t, err)
	assert.Equal(t, fromRoot, fromCorpus)
}

func TestGitInfo_CommitHash_NoCommits(t *testing.T) {
	dir := initRepo(t, false)
	gi := gitinfo.New()
	_, err := gi.CommitHash(dir)
	assert.Error(t, err)
}

func TestGitInfo_CommitHash_NotGitRepo(t *testing.T) {
	dir := t.TempDir()
	gi := gitinfo.New()
	_, err := gi.CommitHash(dir)
	assert.Error(t, err)
}
