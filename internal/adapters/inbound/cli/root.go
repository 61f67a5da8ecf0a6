package cli

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/charsnap/charsnap/internal/adapters/outbound/detector"
	"github.com/charsnap/charsnap/internal/adapters/outbound/fingerprint"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charsnap",
		Short: "Snapshot what a charset detector says about your fixtures",
		Long: "charsnap runs a charset detector over every file in a fixture corpus and records the " +
			"detected encoding, confidence and language, together with the runtime and detector versions, " +
			"in a deterministic JSON snapshot suitable for committing and diffing.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&env.configPath, "config", "", "Config file (defaults to ./.charsnap.yaml)")
	cmd.PersistentFlags().StringVar(&env.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSnapshotCmd(env))
	cmd.AddCommand(newDetectCmd(env))
	cmd.AddCommand(newDiffCmd(env))
	cmd.AddCommand(newVerifyCmd(env))
	cmd.AddCommand(newHistoryCmd(env))
	cmd.AddCommand(newCacheCmd(env))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(env))
	return cmd
}

// NewRootCmdForTest returns the root command for testing. Test binaries do
// not carry the detector in their build info, so the fingerprint is pinned.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd(&environment{fingerprintOpts: []fingerprint.Option{
		fingerprint.WithRuntimeVersion(func() string { return "go1.24.10" }),
		fingerprint.WithBuildInfo(func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{
				Main: debug.Module{Path: "github.com/charsnap/charsnap", Version: "v0.0.0-test"},
				Deps: []*debug.Module{{Path: detector.ModulePath, Version: "v0.0.0-20230101081208-5e3ef4b5456d"}},
			}, true
		}),
	}})
}

func Execute() error {
	return newRootCmd(&environment{}).Execute()
}
