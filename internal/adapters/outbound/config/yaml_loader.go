package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/charsnap/charsnap/internal/domain"
)

// FileName is the config file looked up in the working directory.
const FileName = ".charsnap.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .charsnap.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .charsnap.yaml from dir.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.HarnessConfig, error) {
	return l.LoadFile(filepath.Join(dir, FileName))
}

// LoadFile reads an explicit config file. Values absent from the file keep
// their defaults.
func (l *YAMLLoader) LoadFile(path string) (domain.HarnessConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.HarnessConfig{}, err
	}

	name := filepath.Base(path)

	// Decoding onto the defaults keeps every key the file leaves out.
	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.HarnessConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.HarnessConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}
