package application

import (
	"fmt"

	"github.com/charsnap/charsnap/internal/domain"
)

// VerifyReport is the outcome of comparing a fresh run with a baseline.
// Passed is false when any detection result drifted; metadata changes alone
// do not fail verification.
type VerifyReport struct {
	Baseline string               `json:"baseline"`
	Passed   bool                 `json:"passed"`
	Diff     *domain.SnapshotDiff `json:"diff"`
	Snapshot *domain.Snapshot     `json:"-"`
}

// DiffService compares snapshots, either two stored ones or a fresh run
// against a stored baseline.
type DiffService struct {
	store     domain.SnapshotStore
	snapshots *SnapshotService
}

func NewDiffService(store domain.SnapshotStore, snapshots *SnapshotService) *DiffService {
	return &DiffService{store: store, snapshots: snapshots}
}

// Diff loads two snapshot files and compares head against base.
func (s *DiffService) Diff(basePath, headPath string, tolerance float64) (*domain.SnapshotDiff, error) {
	base, err := s.store.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading base: %w", err)
	}
	head, err := s.store.Load(headPath)
	if err != nil {
		return nil, fmt.Errorf("loading head: %w", err)
	}
	return domain.CompareSnapshots(base, head, tolerance), nil
}

// Verify takes a snapshot in memory and compares it with the baseline file.
// Nothing is written.
func (s *DiffService) Verify(cfg domain.HarnessConfig, baselinePath string, tolerance float64) (*VerifyReport, error) {
	base, err := s.store.Load(baselinePath)
	if err != nil {
		return nil, fmt.Errorf("loading baseline: %w", err)
	}

	snap, err := s.snapshots.Take(cfg)
	if err != nil {
		return nil, err
	}

	diff := domain.CompareSnapshots(base, snap, tolerance)
	return &VerifyReport{
		Baseline: baselinePath,
		Passed:   !diff.HasResultDrift(),
		Diff:     diff,
		Snapshot: snap,
	}, nil
}
