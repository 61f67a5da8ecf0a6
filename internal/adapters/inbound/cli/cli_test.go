package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charsnap/charsnap/internal/adapters/inbound/cli"
)

func writeCorpus(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "corpus")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "nested", "b.txt"), []byte("world"), 0644))
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func newRoot() *cobra.Command {
	return cli.NewRootCmdForTest()
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "charsnap dev")
}

func TestMCPCommandExists(t *testing.T) {
	cmd := newRoot()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"mcp", "--help"})
	assert.NoError(t, cmd.Execute())
}

func TestMCPServeCommandExists(t *testing.T) {
	cmd := newRoot()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"mcp", "serve", "--help"})
	assert.NoError(t, cmd.Execute())
}

func TestRootRegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range newRoot().Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"snapshot", "detect", "diff", "verify", "history", "cache", "init", "mcp", "version"} {
		assert.True(t, names[want], "command %q should be registered", want)
	}
}
