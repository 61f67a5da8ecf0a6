package snapshot

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/zeebo/blake3"

	"github.com/charsnap/charsnap/internal/domain"
	"github.com/charsnap/charsnap/internal/fsutil"
)

const indent = "    "

// Store is a file-based implementation of domain.SnapshotStore.
type Store struct{}

// New creates a new file-based snapshot store.
func New() *Store {
	return &Store{}
}

// Encode renders snap in canonical form: metadata before results, result
// keys in byte order, four-space indent, non-ASCII text left unescaped and a
// trailing newline. Equal snapshots always encode to equal bytes. Paths that
// are not valid UTF-8 are written with U+FFFD in place of each bad byte; two
// paths that would become the same key are rejected.
func Encode(snap *domain.Snapshot) ([]byte, error) {
	out := *snap
	if out.Results == nil {
		out.Results = map[string]domain.DetectionResult{}
	}
	if err := checkKeys(out.Results); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

func checkKeys(results map[string]domain.DetectionResult) error {
	var invalid []string
	for path := range results {
		if !utf8.ValidString(path) {
			invalid = append(invalid, path)
		}
	}
	sort.Strings(invalid)

	seen := make(map[string]string, len(invalid))
	for _, path := range invalid {
		key := jsonKey(path)
		other, ok := seen[key]
		if _, valid := results[key]; valid {
			other, ok = key, true
		}
		if ok {
			return fmt.Errorf("paths %q and %q encode to the same key %q", other, path, key)
		}
		seen[key] = path
	}
	return nil
}

// jsonKey mirrors encoding/json, which replaces every invalid byte with U+FFFD.
func jsonKey(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// Digest returns the hex BLAKE3 hash of the canonical encoding.
func Digest(snap *domain.Snapshot) (string, error) {
	data, err := Encode(snap)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Digest implements domain.SnapshotStore.
func (s *Store) Digest(snap *domain.Snapshot) (string, error) {
	return Digest(snap)
}

// Write encodes the whole snapshot in memory and then replaces path
// atomically. A failed write leaves any previous file at path untouched.
// Snapshots without runtime and detector versions are refused.
func (s *Store) Write(path string, snap *domain.Snapshot) error {
	if snap.Metadata.IsZero() {
		return domain.SnapshotWriteError(path, errors.New("metadata has no runtime or detector version"))
	}
	data, err := Encode(snap)
	if err != nil {
		return domain.SnapshotWriteError(path, err)
	}
	if err := fsutil.WriteFileAtomic(path, data, 0644); err != nil {
		return domain.SnapshotWriteError(path, err)
	}
	return nil
}

// Load reads a snapshot written by Write, or any JSON document with the same
// two top-level keys.
func (s *Store) Load(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	if snap.Results == nil {
		return nil, fmt.Errorf("parsing snapshot %s: missing results", path)
	}
	return &snap, nil
}
