package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/charsnap/charsnap/internal/adapters/inbound/mcp"
	"github.com/charsnap/charsnap/internal/adapters/outbound/detector"
	"github.com/charsnap/charsnap/internal/adapters/outbound/history"
	"github.com/charsnap/charsnap/internal/adapters/outbound/scanner"
	"github.com/charsnap/charsnap/internal/adapters/outbound/snapshot"
	"github.com/charsnap/charsnap/internal/application"
	"github.com/charsnap/charsnap/internal/domain"
)

type staticFingerprinter struct{}

func (staticFingerprinter) Fingerprint(string) (domain.Metadata, error) {
	return domain.Metadata{RuntimeVersion: "1.24.10", DetectorVersion: "0.0.0"}, nil
}

type fixture struct {
	server *server.MCPServer
	cfg    domain.HarnessConfig
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := filepath.Join(t.TempDir(), "corpus")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "empty.txt"), nil, 0644))

	cfg := domain.DefaultConfig()
	cfg.CorpusRoot = root
	cfg.OutputPath = filepath.Join(t.TempDir(), "encoding_results.json")
	cfg.HistoryFile = filepath.Join(t.TempDir(), "history.json")

	store := snapshot.New()
	snapshots := application.NewSnapshotService(
		scanner.New(nil), detector.New(domain.DetectorModeText), staticFingerprinter{}, store, nil,
	).WithHistory(history.New())
	svc := mcpadapter.Services{
		Snapshots: snapshots,
		Diffs:     application.NewDiffService(store, snapshots),
		Store:     store,
	}
	return fixture{server: mcpadapter.NewCharsnapMCPServer(cfg, svc, "test"), cfg: cfg}
}

func (f fixture) call(t *testing.T, tool string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	st := f.server.GetTool(tool)
	require.NotNil(t, st, "tool %q should be registered", tool)

	var req mcplib.CallToolRequest
	req.Params.Name = tool
	req.Params.Arguments = args
	res, err := st.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := mcplib.AsTextContent(res.Content[0])
	require.True(t, ok)
	return tc.Text
}

func TestMCPServerHasTools(t *testing.T) {
	f := newFixture(t)

	tools := f.server.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"charsnap_snapshot",
		"charsnap_detect_file",
		"charsnap_diff",
		"charsnap_verify",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}

func TestSnapshotTool_WritesOutput(t *testing.T) {
	f := newFixture(t)

	res := f.call(t, "charsnap_snapshot", nil)
	require.False(t, res.IsError, text(t, res))

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &snap))
	assert.Len(t, snap.Results, 2)
	assert.FileExists(t, f.cfg.OutputPath)
}

func TestSnapshotTool_RecordsHistory(t *testing.T) {
	f := newFixture(t)

	res := f.call(t, "charsnap_snapshot", nil)
	require.False(t, res.IsError, text(t, res))

	entries, err := history.New().Load(f.cfg.HistoryFile)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, f.cfg.OutputPath, entries[0].OutputPath)
	assert.Equal(t, 2, entries[0].Files)
	assert.Len(t, entries[0].Digest, 64)
}

func TestSnapshotTool_DryRun(t *testing.T) {
	f := newFixture(t)

	res := f.call(t, "charsnap_snapshot", map[string]any{"dry_run": true})
	require.False(t, res.IsError, text(t, res))
	assert.NoFileExists(t, f.cfg.OutputPath)
	assert.NoFileExists(t, f.cfg.HistoryFile, "dry runs are not recorded")
}

func TestSnapshotTool_MissingCorpus(t *testing.T) {
	f := newFixture(t)

	missing := filepath.Join(t.TempDir(), "missing")
	res := f.call(t, "charsnap_snapshot", map[string]any{"corpus_root": missing})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "corpus not found")
	assert.Contains(t, text(t, res), "snapshot failed at "+missing)
}

func TestDetectFileTool(t *testing.T) {
	f := newFixture(t)

	res := f.call(t, "charsnap_detect_file", map[string]any{
		"path": filepath.Join(f.cfg.CorpusRoot, "a.txt"),
	})
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), `"encoding": "ascii"`)

	res = f.call(t, "charsnap_detect_file", nil)
	assert.True(t, res.IsError)
}

func TestDiffAndVerifyTools(t *testing.T) {
	f := newFixture(t)
	require.False(t, f.call(t, "charsnap_snapshot", nil).IsError)

	res := f.call(t, "charsnap_diff", map[string]any{
		"base": f.cfg.OutputPath,
		"head": f.cfg.OutputPath,
	})
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), `"unchanged": 2`)

	res = f.call(t, "charsnap_verify", nil)
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), `"passed": true`)
}

func readSnapshotResource(t *testing.T, f fixture) string {
	t.Helper()
	msg := []byte(`{"jsonrpc":"2.0","id":1,"method":"resources/read","params":{"uri":"charsnap://snapshot"}}`)
	resp := f.server.HandleMessage(context.Background(), msg)
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(data)
}

func TestSnapshotResource(t *testing.T) {
	f := newFixture(t)
	require.False(t, f.call(t, "charsnap_snapshot", nil).IsError)

	body := readSnapshotResource(t, f)
	assert.Contains(t, body, "charsnap://snapshot")
	assert.Contains(t, body, "runtime_version")
	assert.Contains(t, body, "a.txt")
}

func TestSnapshotResource_NoSnapshotYet(t *testing.T) {
	f := newFixture(t)

	body := readSnapshotResource(t, f)
	assert.Contains(t, body, `"error"`)
}
