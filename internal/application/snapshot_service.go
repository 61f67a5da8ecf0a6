package application

import (
	"fmt"
	"io"
	"iter"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/charsnap/charsnap/internal/domain"
	"github.com/charsnap/charsnap/internal/logging"
)

// CacheOpener opens the detection cache in dir for the detector described by
// meta.
type CacheOpener func(dir string, meta domain.Metadata) domain.DetectionCache

// SnapshotService orchestrates a run:
// fingerprint → walk corpus → read + detect each file → write snapshot.
type SnapshotService struct {
	walker        domain.CorpusWalker
	detector      domain.Detector
	fingerprinter domain.Fingerprinter
	store         domain.SnapshotStore
	openCache     CacheOpener
	history       domain.RunHistory
	log           *zap.SugaredLogger
}

func NewSnapshotService(
	walker domain.CorpusWalker,
	detector domain.Detector,
	fingerprinter domain.Fingerprinter,
	store domain.SnapshotStore,
	log *zap.SugaredLogger,
) *SnapshotService {
	if log == nil {
		log = logging.Nop()
	}
	return &SnapshotService{
		walker:        walker,
		detector:      detector,
		fingerprinter: fingerprinter,
		store:         store,
		log:           log,
	}
}

// WithCache enables the detection cache for configs that set cache_dir.
func (s *SnapshotService) WithCache(open CacheOpener) *SnapshotService {
	s.openCache = open
	return s
}

// WithHistory appends every written snapshot to cfg.HistoryFile when set.
func (s *SnapshotService) WithHistory(h domain.RunHistory) *SnapshotService {
	s.history = h
	return s
}

// Run takes a snapshot and writes it to cfg.OutputPath. When only the write
// fails, the fully computed snapshot is returned alongside the error.
func (s *SnapshotService) Run(cfg domain.HarnessConfig) (*domain.Snapshot, error) {
	start := time.Now()

	snap, cache, err := s.take(cfg)
	if err != nil {
		return nil, err
	}

	if err := s.store.Write(cfg.OutputPath, snap); err != nil {
		return snap, err
	}

	if cache != nil {
		hits, misses := cache.Stats()
		s.log.Infow("detection cache", "dir", cfg.CacheDir, "hits", hits, "misses", misses)
		if err := cache.Flush(); err != nil {
			s.log.Warnw("detection cache not saved", "dir", cfg.CacheDir, "error", err)
		}
	}

	if s.history != nil && cfg.HistoryFile != "" {
		s.recordRun(cfg, snap) // best-effort
	}

	s.log.Infow("snapshot written",
		"output", cfg.OutputPath,
		"files", len(snap.Results),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return snap, nil
}

func (s *SnapshotService) recordRun(cfg domain.HarnessConfig, snap *domain.Snapshot) {
	digest, err := s.store.Digest(snap)
	if err != nil {
		s.log.Warnw("run not recorded", "error", err)
		return
	}

	entry := domain.RunEntry{
		ID:              uuid.NewString(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		OutputPath:      cfg.OutputPath,
		RuntimeVersion:  snap.Metadata.RuntimeVersion,
		DetectorVersion: snap.Metadata.DetectorVersion,
		CorpusRevision:  snap.Metadata.CorpusRevision,
		Files:           len(snap.Results),
		Digest:          digest,
	}
	if err := s.history.Save(cfg.HistoryFile, entry); err != nil {
		s.log.Warnw("run not recorded", "history_file", cfg.HistoryFile, "error", err)
	}
}

// Take computes a snapshot in memory without writing anything.
func (s *SnapshotService) Take(cfg domain.HarnessConfig) (*domain.Snapshot, error) {
	snap, _, err := s.take(cfg)
	return snap, err
}

func (s *SnapshotService) take(cfg domain.HarnessConfig) (*domain.Snapshot, domain.DetectionCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	// 1. Fingerprint before touching the corpus
	meta, err := s.fingerprinter.Fingerprint(cfg.CorpusRoot)
	if err != nil {
		return nil, nil, err
	}
	s.log.Debugw("environment",
		"runtime_version", meta.RuntimeVersion,
		"detector_version", meta.DetectorVersion,
		"corpus_revision", meta.CorpusRevision,
	)

	var cache domain.DetectionCache
	if s.openCache != nil && cfg.CacheDir != "" {
		cache = s.openCache(cfg.CacheDir, meta)
	}

	// 2. Walk and record
	results, err := s.Record(s.walker.Files(cfg.CorpusRoot), cfg.MaxFileSize, cache)
	if err != nil {
		return nil, nil, err
	}

	return &domain.Snapshot{Metadata: meta, Results: results}, cache, nil
}

// Record reads every path, runs the detector on its bytes and keys the
// result by the path exactly as yielded. The first failure aborts the whole
// recording; no partial mapping is returned. limit caps the size of a single
// file, 0 means no cap. cache may be nil.
func (s *SnapshotService) Record(paths iter.Seq2[string, error], limit int64, cache domain.DetectionCache) (map[string]domain.DetectionResult, error) {
	results := make(map[string]domain.DetectionResult)

	for path, err := range paths {
		if err != nil {
			return nil, err
		}

		raw, err := ReadFixture(path, limit)
		if err != nil {
			return nil, err
		}

		result, hit := domain.DetectionResult{}, false
		if cache != nil {
			result, hit = cache.Lookup(raw)
		}
		if !hit {
			result = s.detector.Detect(raw)
			if cache != nil {
				cache.Remember(raw, result)
			}
		}

		results[path] = result
		s.log.Debugw("detected",
			"path", path,
			"encoding", result.EncodingLabel(),
			"confidence", result.Confidence,
			"cached", hit,
		)
	}

	return results, nil
}

// DetectFile runs the detector on a single file.
func (s *SnapshotService) DetectFile(path string, limit int64) (domain.DetectionResult, error) {
	raw, err := ReadFixture(path, limit)
	if err != nil {
		return domain.DetectionResult{}, err
	}
	return s.detector.Detect(raw), nil
}

// ReadFixture reads a whole file with a single open. Files larger than limit
// (when limit > 0) are rejected rather than truncated.
func ReadFixture(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.FileReadError(path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, domain.FileReadError(path, err)
	}
	if limit > 0 && int64(len(raw)) > limit {
		return nil, domain.FileReadError(path, fmt.Errorf("larger than max_file_size of %d bytes", limit))
	}
	return raw, nil
}
