package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charsnap/charsnap/internal/adapters/outbound/history"
	"github.com/charsnap/charsnap/internal/adapters/outbound/tui"
)

func newHistoryCmd(env *environment) *cobra.Command {
	var (
		file       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded snapshot runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				cfg, err := env.loadConfig()
				if err != nil {
					return err
				}
				file = cfg.HistoryFile
			}
			if file == "" {
				return fmt.Errorf("no history file: set history_file or pass --file")
			}

			entries, err := history.New().Load(file)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "History file (defaults to history_file)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
