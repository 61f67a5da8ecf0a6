package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charsnap/charsnap/internal/adapters/outbound/detector"
	"github.com/charsnap/charsnap/internal/adapters/outbound/tui"
	"github.com/charsnap/charsnap/internal/application"
	"github.com/charsnap/charsnap/internal/domain"
)

func newDetectCmd(env *environment) *cobra.Command {
	var (
		all        bool
		jsonOutput bool
		mode       string
	)

	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Run the detector on a single file",
		Long:  "Print the detector's best guess for one file, or every candidate with --all.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := env.loadConfig()
			if err != nil {
				return err
			}
			if mode != "" {
				cfg.DetectorMode = domain.DetectorMode(mode)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			path := args[0]
			if !all {
				log := env.logger(cfg, "detect")
				defer func() { _ = log.Sync() }()

				r, err := env.services(cfg, log).Snapshots.DetectFile(path, cfg.MaxFileSize)
				if err != nil {
					return err
				}
				if jsonOutput {
					return renderJSON(cmd, r)
				}
				var results []domain.DetectionResult
				if r.Encoding != nil {
					results = []domain.DetectionResult{r}
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderDetection(path, results))
				return nil
			}

			raw, err := application.ReadFixture(path, cfg.MaxFileSize)
			if err != nil {
				return err
			}
			results := detector.New(cfg.DetectorMode).DetectAll(raw)
			if jsonOutput {
				if results == nil {
					results = []domain.DetectionResult{}
				}
				return renderJSON(cmd, results)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDetection(path, results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every candidate, most confident first")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&mode, "mode", "", "Detector mode: text or html")

	return cmd
}
