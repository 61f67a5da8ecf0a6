package history

import (
	"encoding/json"
	"os"

	"github.com/charsnap/charsnap/internal/domain"
	"github.com/charsnap/charsnap/internal/fsutil"
)

// FileHistory implements domain.RunHistory using JSON file storage.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

func (h *FileHistory) Save(path string, entry domain.RunEntry) error {
	entries, err := h.Load(path)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0644)
}

func (h *FileHistory) Load(path string) ([]domain.RunEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
