package domain

import "math"

// MetadataChange is one metadata field that differs between two snapshots.
type MetadataChange struct {
	Field string `json:"field"`
	Base  string `json:"base"`
	Head  string `json:"head"`
}

// ResultChange describes how one file's detection moved.
type ResultChange struct {
	Path string          `json:"path"`
	Base DetectionResult `json:"base"`
	Head DetectionResult `json:"head"`
}

// SnapshotDiff is the difference between a base and a head snapshot.
// All path lists are in lexical order.
type SnapshotDiff struct {
	Metadata  []MetadataChange `json:"metadata,omitempty"`
	Added     []string         `json:"added,omitempty"`
	Removed   []string         `json:"removed,omitempty"`
	Changed   []ResultChange   `json:"changed,omitempty"`
	Unchanged int              `json:"unchanged"`
}

// HasResultDrift reports whether any file was added, removed or changed.
func (d *SnapshotDiff) HasResultDrift() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Changed) > 0
}

// IsEmpty reports whether the snapshots are equivalent, metadata included.
func (d *SnapshotDiff) IsEmpty() bool {
	return !d.HasResultDrift() && len(d.Metadata) == 0
}

// CompareSnapshots diffs head against base. Confidence moves of at most
// tolerance are not reported.
func CompareSnapshots(base, head *Snapshot, tolerance float64) *SnapshotDiff {
	diff := &SnapshotDiff{
		Metadata: compareMetadata(base.Metadata, head.Metadata),
	}

	for _, p := range base.Paths() {
		if _, ok := head.Results[p]; !ok {
			diff.Removed = append(diff.Removed, p)
		}
	}

	for _, p := range head.Paths() {
		h := head.Results[p]
		b, ok := base.Results[p]
		if !ok {
			diff.Added = append(diff.Added, p)
			continue
		}
		if resultsEqual(b, h, tolerance) {
			diff.Unchanged++
			continue
		}
		diff.Changed = append(diff.Changed, ResultChange{Path: p, Base: b, Head: h})
	}

	return diff
}

func compareMetadata(base, head Metadata) []MetadataChange {
	fields := []struct {
		name       string
		base, head string
	}{
		{"runtime_version", base.RuntimeVersion, head.RuntimeVersion},
		{"detector_version", base.DetectorVersion, head.DetectorVersion},
		{"detector_module", base.DetectorModule, head.DetectorModule},
		{"corpus_revision", base.CorpusRevision, head.CorpusRevision},
	}

	var changes []MetadataChange
	for _, f := range fields {
		if f.base != f.head {
			changes = append(changes, MetadataChange{Field: f.name, Base: f.base, Head: f.head})
		}
	}
	return changes
}

func resultsEqual(a, b DetectionResult, tolerance float64) bool {
	if a.EncodingLabel() != b.EncodingLabel() || a.LanguageLabel() != b.LanguageLabel() {
		return false
	}
	// 1e-9 absorbs float noise from the JSON round trip.
	return math.Abs(a.Confidence-b.Confidence) <= tolerance+1e-9
}
