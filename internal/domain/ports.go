package domain

import "iter"

// CorpusWalker enumerates the regular files under a corpus root.
type CorpusWalker interface {
	Files(root string) iter.Seq2[string, error]
}

// Detector is the charset detection boundary. Detect must accept empty input,
// must not retain raw and must depend on nothing but raw.
type Detector interface {
	Detect(raw []byte) DetectionResult
}

// Fingerprinter captures the environment a run executes in.
type Fingerprinter interface {
	Fingerprint(corpusRoot string) (Metadata, error)
}

// SnapshotStore persists and reloads snapshots.
type SnapshotStore interface {
	Write(path string, snap *Snapshot) error
	Load(path string) (*Snapshot, error)
	Digest(snap *Snapshot) (string, error)
}

// DetectionCache memoises detection results by file content.
type DetectionCache interface {
	Lookup(raw []byte) (DetectionResult, bool)
	Remember(raw []byte, result DetectionResult)
	Stats() (hits, misses int)
	Flush() error
}

// ConfigLoader loads harness configuration from a directory.
type ConfigLoader interface {
	Load(dir string) (HarnessConfig, error)
}

// RunHistory records completed runs.
type RunHistory interface {
	Save(path string, entry RunEntry) error
	Load(path string) ([]RunEntry, error)
}
