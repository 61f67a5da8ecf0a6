package cli

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/charsnap/charsnap/internal/adapters/inbound/mcp"
	"github.com/charsnap/charsnap/internal/adapters/outbound/cache"
	"github.com/charsnap/charsnap/internal/adapters/outbound/config"
	"github.com/charsnap/charsnap/internal/adapters/outbound/detector"
	"github.com/charsnap/charsnap/internal/adapters/outbound/fingerprint"
	"github.com/charsnap/charsnap/internal/adapters/outbound/gitinfo"
	"github.com/charsnap/charsnap/internal/adapters/outbound/history"
	"github.com/charsnap/charsnap/internal/adapters/outbound/scanner"
	"github.com/charsnap/charsnap/internal/adapters/outbound/snapshot"
	"github.com/charsnap/charsnap/internal/application"
	"github.com/charsnap/charsnap/internal/domain"
	"github.com/charsnap/charsnap/internal/logging"
)

// environment carries the global flags and builds the outbound adapters
// every command shares.
type environment struct {
	configPath      string
	logLevel        string
	fingerprintOpts []fingerprint.Option
}

// loadConfig reads the config file and applies the global log level flag.
func (e *environment) loadConfig() (domain.HarnessConfig, error) {
	loader := config.New()

	var (
		cfg domain.HarnessConfig
		err error
	)
	if e.configPath != "" {
		cfg, err = loader.LoadFile(e.configPath)
	} else {
		cfg, err = loader.Load(".")
	}
	if err != nil {
		return domain.HarnessConfig{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg.Merge(domain.HarnessConfig{LogLevel: strings.ToLower(e.logLevel)}), nil
}

func (e *environment) logger(cfg domain.HarnessConfig, name string) *zap.SugaredLogger {
	return logging.New(name, cfg.LogLevel)
}

func (e *environment) fingerprinter(log *zap.SugaredLogger) *fingerprint.EnvFingerprinter {
	opts := append([]fingerprint.Option{
		fingerprint.WithRevisions(gitinfo.New()),
		fingerprint.WithLogger(log.Named("fingerprint")),
	}, e.fingerprintOpts...)
	return fingerprint.New(detector.ModulePath, opts...)
}

// services wires the snapshot and diff services for cfg.
func (e *environment) services(cfg domain.HarnessConfig, log *zap.SugaredLogger) mcp.Services {
	store := snapshot.New()
	snapshots := application.NewSnapshotService(
		scanner.New(log.Named("scanner")),
		detector.New(cfg.DetectorMode),
		e.fingerprinter(log),
		store,
		log,
	).WithCache(func(dir string, meta domain.Metadata) domain.DetectionCache {
		return cache.Open(dir, meta, cfg.DetectorMode)
	}).WithHistory(history.New())

	return mcp.Services{
		Snapshots: snapshots,
		Diffs:     application.NewDiffService(store, snapshots),
		Store:     store,
	}
}
