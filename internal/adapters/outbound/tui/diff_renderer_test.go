package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/charsnap/charsnap/internal/adapters/outbound/tui"
	"github.com/charsnap/charsnap/internal/domain"
)

func sampleDiff() *domain.SnapshotDiff {
	return &domain.SnapshotDiff{
		Metadata: []domain.MetadataChange{
			{Field: "runtime_version", Base: "1.24.9", Head: "1.24.10"},
		},
		Added:   []string{"testdata/new.txt"},
		Removed: []string{"testdata/old.txt"},
		Changed: []domain.ResultChange{{
			Path: "testdata/b.txt",
			Base: domain.NewDetectionResult("ISO-8859-1", 0.5, "fr"),
			Head: domain.NewDetectionResult("windows-1252", 0.6, "fr"),
		}},
		Unchanged: 7,
	}
}

func TestRenderDiff_ListsEverySection(t *testing.T) {
	output := tui.RenderDiff(sampleDiff())
	assert.Contains(t, output, "results drifted")
	assert.Contains(t, output, "runtime_version")
	assert.Contains(t, output, "testdata/new.txt")
	assert.Contains(t, output, "testdata/old.txt")
	assert.Contains(t, output, "testdata/b.txt")
	assert.Contains(t, output, "windows-1252")
	assert.Contains(t, output, "7 unchanged")
}

func TestRenderDiff_NoDrift(t *testing.T) {
	output := tui.RenderDiff(&domain.SnapshotDiff{Unchanged: 3})
	assert.Contains(t, output, "no drift")
	assert.NotContains(t, output, "Re-run")
}

func TestRenderDiff_MetadataOnly(t *testing.T) {
	output := tui.RenderDiff(&domain.SnapshotDiff{
		Metadata: []domain.MetadataChange{{Field: "detector_version", Base: "0.0.0", Head: "0.1.0"}},
	})
	assert.Contains(t, output, "environment changed")
}
