package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/charsnap/charsnap/internal/domain"
)

// registerTools registers all charsnap MCP tools on the given server.
func registerTools(s *server.MCPServer, cfg domain.HarnessConfig, svc Services) {
	// 1. charsnap_snapshot
	s.AddTool(
		mcplib.NewTool("charsnap_snapshot",
			mcplib.WithDescription("Runs the detector over every file in the corpus and writes the snapshot. Returns the snapshot as JSON"),
			mcplib.WithString("corpus_root", mcplib.Description("Corpus directory (defaults to the configured corpus_root)")),
			mcplib.WithString("output_path", mcplib.Description("Snapshot file to write (defaults to the configured output_path)")),
			mcplib.WithBoolean("dry_run", mcplib.Description("Compute the snapshot without writing it")),
		),
		handleSnapshot(cfg, svc),
	)

	// 2. charsnap_detect_file
	s.AddTool(
		mcplib.NewTool("charsnap_detect_file",
			mcplib.WithDescription("Detects the encoding of a single file"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path of the file to inspect"),
			),
		),
		handleDetectFile(cfg, svc),
	)

	// 3. charsnap_diff
	s.AddTool(
		mcplib.NewTool("charsnap_diff",
			mcplib.WithDescription("Compares two snapshot files and reports metadata changes and added, removed or changed results"),
			mcplib.WithString("base", mcplib.Required(), mcplib.Description("Baseline snapshot file")),
			mcplib.WithString("head", mcplib.Required(), mcplib.Description("Snapshot file to compare against the baseline")),
			mcplib.WithNumber("tolerance", mcplib.Description("Confidence differences up to this value are ignored (default 0)")),
		),
		handleDiff(svc),
	)

	// 4. charsnap_verify
	s.AddTool(
		mcplib.NewTool("charsnap_verify",
			mcplib.WithDescription("Takes a fresh snapshot in memory and compares it with the baseline file. Nothing is written"),
			mcplib.WithString("baseline", mcplib.Description("Baseline snapshot file (defaults to the configured output_path)")),
			mcplib.WithNumber("tolerance", mcplib.Description("Confidence differences up to this value are ignored (default 0)")),
		),
		handleVerify(cfg, svc),
	)
}

func handleSnapshot(cfg domain.HarnessConfig, svc Services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		runCfg := cfg.Merge(domain.HarnessConfig{
			CorpusRoot: request.GetString("corpus_root", ""),
			OutputPath: request.GetString("output_path", ""),
		})

		var (
			snap *domain.Snapshot
			err  error
		)
		if request.GetBool("dry_run", false) {
			snap, err = svc.Snapshots.Take(runCfg)
		} else {
			snap, err = svc.Snapshots.Run(runCfg)
		}
		if err != nil {
			if errors.Is(err, domain.ErrSnapshotWrite) {
				return errorResult(fmt.Sprintf("snapshot computed but not written: %v", err)), nil
			}
			if path := domain.FailedPath(err); path != "" {
				return errorResult(fmt.Sprintf("snapshot failed at %s: %v", path, err)), nil
			}
			return errorResult(fmt.Sprintf("snapshot failed: %v", err)), nil
		}
		return jsonResult(snap)
	}
}

func handleDetectFile(cfg domain.HarnessConfig, svc Services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := svc.Snapshots.DetectFile(path, cfg.MaxFileSize)
		if err != nil {
			return errorResult(fmt.Sprintf("detect failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleDiff(svc Services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		base, err := request.RequireString("base")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		head, err := request.RequireString("head")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		diff, err := svc.Diffs.Diff(base, head, request.GetFloat("tolerance", 0))
		if err != nil {
			return errorResult(fmt.Sprintf("diff failed: %v", err)), nil
		}
		return jsonResult(diff)
	}
}

func handleVerify(cfg domain.HarnessConfig, svc Services) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		baseline := request.GetString("baseline", cfg.OutputPath)

		report, err := svc.Diffs.Verify(cfg, baseline, request.GetFloat("tolerance", 0))
		if err != nil {
			return errorResult(fmt.Sprintf("verify failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
