package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charsnap/charsnap/internal/adapters/outbound/snapshot"
	"github.com/charsnap/charsnap/internal/adapters/outbound/tui"
	"github.com/charsnap/charsnap/internal/application"
)

func newDiffCmd(env *environment) *cobra.Command {
	var (
		jsonOutput bool
		tolerance  float64
	)

	cmd := &cobra.Command{
		Use:   "diff <base> <head>",
		Short: "Compare two snapshot files",
		Long:  "Report environment changes and every fixture whose encoding, language or confidence moved between two snapshots.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tolerance < 0 {
				return fmt.Errorf("--tolerance must be >= 0")
			}

			svc := application.NewDiffService(snapshot.New(), nil)
			diff, err := svc.Diff(args[0], args[1], tolerance)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, diff)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDiff(diff))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the diff as JSON")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "Ignore confidence moves up to this value")

	return cmd
}
