package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"specdown/internal/semver"
	"specdown/pkg/docgen"
	"specdown/pkg/ledger"
	"specdown/pkg/project"
	"specdown/pkg/storage"
)

// openLedger wires up the project, synchronizer and ledger for one call.
func (s *Server) openLedger() (*project.Project, *ledger.Ledger, error) {
	p, err := project.Load(s.workdir)
	if err != nil {
		return nil, nil, err
	}
	if !p.HasManifest {
		return nil, nil, fmt.Errorf("no %s found in %s", project.ManifestName, s.workdir)
	}
	store := storage.NewDisk()
	return p, p.NewLedger(store, p.NewSynchronizer(store)), nil
}

// toolResult marshals a success payload the way the CLI's --json mode does.
func toolResult(data any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(map[string]any{
		"success": true,
		"data":    data,
	}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleBumpVersion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	levelArg, err := req.RequireString("level")
	if err != nil {
		return mcp.NewToolResultError("level is required (major, minor or patch)"), nil
	}
	level, err := semver.ParseLevel(levelArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notes := req.GetString("notes", "")

	_, l, err := s.openLedger()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := l.EnsureCurrentVersionValid(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	v, updates, err := l.Increment(ctx, level, notes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return toolResult(map[string]any{
		"version": v.String(),
		"level":   string(level),
		"updated": updates,
	})
}

func (s *Server) handleCurrentVersion(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, l, err := s.openLedger()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	v, err := l.CurrentVersion()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return toolResult(map[string]any{"version": v.String()})
}

func (s *Server) handleVersionHistory(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, l, err := s.openLedger()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries, err := l.History()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return toolResult(map[string]any{
		"history": entries,
		"total":   len(entries),
	})
}

func (s *Server) handleGenerateDocs(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, l, err := s.openLedger()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	v, err := l.CurrentVersion()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	gen := docgen.New(p.SpecPath(), docgen.Config{Title: p.Name, Version: v.String()})
	outPath := filepath.Join(p.OutputDir(), "index.md")
	if err := gen.WriteToFile(outPath); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return toolResult(map[string]any{
		"spec":   p.SpecPath(),
		"output": outPath,
	})
}
