package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/charsnap/charsnap/internal/domain"
	"github.com/charsnap/charsnap/internal/fsutil"
)

const fileName = "detections.json"

// Store is a file-backed implementation of domain.DetectionCache. Results are
// keyed by the BLAKE3 digest of the file content, so renamed or duplicated
// fixtures still hit.
type Store struct {
	dir     string
	off     bool
	file    *domain.CacheFile
	used    map[string]bool
	changed bool
	hits    int
	misses  int
}

// Open loads the cache in dir. A missing or unreadable cache, or one written
// by a different detector or charsnap build, starts empty. When meta is not
// cacheable the store never hits and Flush writes nothing.
func Open(dir string, meta domain.Metadata, mode domain.DetectorMode) *Store {
	s := &Store{
		dir:  dir,
		off:  !meta.Cacheable(),
		used: make(map[string]bool),
		file: &domain.CacheFile{
			DetectorVersion: meta.DetectorVersion,
			DetectorModule:  meta.DetectorModule,
			DetectorMode:    mode,
			HarnessBuild:    meta.HarnessBuild,
			Entries:         make(map[string]domain.DetectionResult),
		},
	}
	if s.off {
		return s
	}

	loaded, err := load(dir)
	if err != nil || loaded == nil || loaded.IsInvalidated(meta, mode) {
		s.changed = loaded != nil
		return s
	}
	if loaded.Entries != nil {
		s.file.Entries = loaded.Entries
	}
	return s
}

// Lookup returns the cached result for identical content.
func (s *Store) Lookup(raw []byte) (domain.DetectionResult, bool) {
	if s.off {
		s.misses++
		return domain.DetectionResult{}, false
	}
	key := Digest(raw)
	r, ok := s.file.Entries[key]
	if ok {
		s.hits++
		s.used[key] = true
	} else {
		s.misses++
	}
	return r, ok
}

// Remember stores the result for raw.
func (s *Store) Remember(raw []byte, result domain.DetectionResult) {
	if s.off {
		return
	}
	key := Digest(raw)
	s.file.Entries[key] = result
	s.used[key] = true
	s.changed = true
}

// Stats returns the lookup hit and miss counts.
func (s *Store) Stats() (hits, misses int) {
	return s.hits, s.misses
}

// Flush persists the entries used since Open. Entries for content that no
// longer appears in the corpus are dropped.
func (s *Store) Flush() error {
	if s.off {
		return nil
	}
	if len(s.used) != len(s.file.Entries) {
		for key := range s.file.Entries {
			if !s.used[key] {
				delete(s.file.Entries, key)
			}
		}
		s.changed = true
	}
	if !s.changed {
		return nil
	}

	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(cachePath(s.dir), data, 0644); err != nil {
		return err
	}
	s.changed = false
	return nil
}

// Invalidate removes the cache file in dir.
func Invalidate(dir string) error {
	if err := os.Remove(cachePath(dir)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Digest returns the hex BLAKE3 hash of raw.
func Digest(raw []byte) string {
	sum := blake3.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func load(dir string) (*domain.CacheFile, error) {
	data, err := os.ReadFile(cachePath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var file domain.CacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func cachePath(dir string) string {
	return filepath.Join(dir, fileName)
}
