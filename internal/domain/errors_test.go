package domain_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/charsnap/charsnap/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHarnessError_IsMatchesKindAndCause(t *testing.T) {
	err := domain.FileReadError("testdata/a.txt", fs.ErrPermission)

	assert.True(t, errors.Is(err, domain.ErrFileRead))
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.False(t, errors.Is(err, domain.ErrCorpusNotFound))
	assert.Equal(t, "file read failed: testdata/a.txt: permission denied", err.Error())
}

func TestHarnessError_SurvivesWrapping(t *testing.T) {
	err := domain.CorpusNotFound("missing", fs.ErrNotExist)
	wrapped := errors.Join(errors.New("context"), err)

	assert.True(t, errors.Is(wrapped, domain.ErrCorpusNotFound))
	assert.Equal(t, "missing", domain.FailedPath(wrapped))
}

func TestHarnessError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"kind only", &domain.HarnessError{Kind: domain.ErrSnapshotWrite}, "snapshot write failed"},
		{"path only", &domain.HarnessError{Kind: domain.ErrCorpusNotFound, Path: "x"}, "corpus not found: x"},
		{"cause only", domain.EnvironmentUnavailable(errors.New("no build info")), "environment unavailable: no build info"},
		{"path and cause", domain.SnapshotWriteError("out.json", errors.New("read-only")), "snapshot write failed: out.json: read-only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestFailedPath_NonHarnessError(t *testing.T) {
	assert.Empty(t, domain.FailedPath(errors.New("plain")))
}
