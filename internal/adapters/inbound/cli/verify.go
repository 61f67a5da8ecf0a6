package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charsnap/charsnap/internal/adapters/outbound/tui"
)

func newVerifyCmd(env *environment) *cobra.Command {
	var (
		flags      runFlags
		baseline   string
		tolerance  float64
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Fail if a fresh run differs from the committed snapshot",
		Long: "Take a snapshot in memory and compare it with the baseline (the output path by default). " +
			"Nothing is written. Exits non-zero when any result was added, removed or changed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tolerance < 0 {
				return fmt.Errorf("--tolerance must be >= 0")
			}
			cfg, err := env.loadConfig()
			if err != nil {
				return err
			}
			cfg, err = flags.apply(cmd, cfg)
			if err != nil {
				return err
			}
			if baseline == "" {
				baseline = cfg.OutputPath
			}

			log := env.logger(cfg, "verify")
			defer func() { _ = log.Sync() }()

			report, err := env.services(cfg, log).Diffs.Verify(cfg, baseline, tolerance)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderDiff(report.Diff))
			}

			if !report.Passed {
				d := report.Diff
				return fmt.Errorf("results drifted from %s: %d changed, %d added, %d removed",
					baseline, len(d.Changed), len(d.Added), len(d.Removed))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&baseline, "baseline", "", "Snapshot to compare against (defaults to output_path)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "Ignore confidence moves up to this value")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
