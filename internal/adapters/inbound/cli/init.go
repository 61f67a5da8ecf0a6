package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/charsnap/charsnap/internal/adapters/outbound/config"
	"github.com/charsnap/charsnap/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		corpus string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .charsnap.yaml configuration file",
		Long:  "Create a .charsnap.yaml with the default settings.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.DefaultConfig()
			if corpus != "" {
				cfg.CorpusRoot = corpus
			}

			if err := os.WriteFile(dest, []byte(generateConfig(cfg)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&corpus, "corpus", "", "Corpus directory to record in the file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .charsnap.yaml")

	return cmd
}

func generateConfig(cfg domain.HarnessConfig) string {
	return fmt.Sprintf(`# charsnap configuration

corpus_root: %s
output_path: %s
max_file_size: %d   # bytes, 0 = unlimited
detector_mode: %s   # text | html
log_level: %s

# cache_dir: .charsnap-cache
# history_file: .charsnap-history.json
`, cfg.CorpusRoot, cfg.OutputPath, cfg.MaxFileSize, cfg.DetectorMode, cfg.LogLevel)
}
