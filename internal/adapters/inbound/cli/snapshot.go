package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charsnap/charsnap/internal/adapters/outbound/snapshot"
	"github.com/charsnap/charsnap/internal/adapters/outbound/tui"
	"github.com/charsnap/charsnap/internal/domain"
)

// runFlags are the config overrides shared by snapshot and verify.
type runFlags struct {
	corpus      string
	output      string
	maxFileSize int64
	mode        string
	cacheDir    string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.corpus, "corpus", "", "Corpus directory (overrides corpus_root)")
	cmd.Flags().StringVar(&f.output, "output", "", "Snapshot file (overrides output_path)")
	cmd.Flags().Int64Var(&f.maxFileSize, "max-file-size", 0, "Largest fixture in bytes, 0 for no limit (overrides max_file_size)")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Detector mode: text or html (overrides detector_mode)")
	cmd.Flags().StringVar(&f.cacheDir, "cache-dir", "", "Detection cache directory (overrides cache_dir)")
}

// apply overlays the flags the user set on cfg.
func (f *runFlags) apply(cmd *cobra.Command, cfg domain.HarnessConfig) (domain.HarnessConfig, error) {
	cfg = cfg.Merge(domain.HarnessConfig{
		CorpusRoot:   f.corpus,
		OutputPath:   f.output,
		DetectorMode: domain.DetectorMode(f.mode),
		CacheDir:     f.cacheDir,
	})
	// 0 is meaningful here, so Merge cannot carry it.
	if cmd.Flags().Changed("max-file-size") {
		cfg.MaxFileSize = f.maxFileSize
	}
	if err := cfg.Validate(); err != nil {
		return domain.HarnessConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newSnapshotCmd(env *environment) *cobra.Command {
	var (
		flags       runFlags
		jsonOutput  bool
		historyFile string
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record the detector's view of every fixture",
		Long: "Walk the corpus, run the charset detector on each file and write a snapshot with the " +
			"runtime and detector versions to the output path. Any unreadable file aborts the run " +
			"and leaves the previous snapshot untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := env.loadConfig()
			if err != nil {
				return err
			}
			cfg, err = flags.apply(cmd, cfg)
			if err != nil {
				return err
			}
			if historyFile != "" {
				cfg.HistoryFile = historyFile
			}

			log := env.logger(cfg, "snapshot")
			defer func() { _ = log.Sync() }()

			svc := env.services(cfg, log)
			snap, err := svc.Snapshots.Run(cfg)
			if err != nil {
				if errors.Is(err, domain.ErrSnapshotWrite) {
					log.Errorw("snapshot computed but not written", "files", len(snap.Results))
				} else if path := domain.FailedPath(err); path != "" {
					log.Errorw("run aborted", "path", path)
				}
				return fmt.Errorf("snapshot failed: %w", err)
			}

			if jsonOutput {
				data, err := snapshot.Encode(snap)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(snap, cfg.OutputPath))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the snapshot instead of the summary")
	cmd.Flags().StringVar(&historyFile, "history-file", "", "Append this run to a history file (overrides history_file)")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
