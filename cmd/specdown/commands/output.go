package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"specdown/pkg/ledger"
	"specdown/pkg/syncer"
)

// jsonOutput is the global flag for JSON output mode
var jsonOutput bool

// projectDir is the global flag for the project root
var projectDir string

// JSONResponse is the standard response wrapper for JSON output
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BumpOutput represents the JSON output for the bump command
type BumpOutput struct {
	Version string              `json:"version"`
	Level   string              `json:"level"`
	Notes   string              `json:"notes,omitempty"`
	Updated []syncer.FileUpdate `json:"updated"`
}

// VersionOutput represents the JSON output for the version current command
type VersionOutput struct {
	Version string `json:"version"`
}

// HistoryOutput represents the JSON output for the version history command
type HistoryOutput struct {
	History []ledger.Entry `json:"history"`
	Total   int            `json:"total"`
}

// ValidateOutput represents the JSON output for the version validate command
type ValidateOutput struct {
	Valid   bool   `json:"valid"`
	Entries int    `json:"entries"`
	Error   string `json:"error,omitempty"`
}

// RecordOutput represents the JSON output for the version record command
type RecordOutput struct {
	Entry ledger.Entry `json:"entry"`
}

// GenerateOutput represents the JSON output for the generate command
type GenerateOutput struct {
	Spec   string `json:"spec"`
	Output string `json:"output"`
	Size   string `json:"size,omitempty"`
}

// InitOutput represents the JSON output for the init command
type InitOutput struct {
	Project   string   `json:"project"`
	Directory string   `json:"directory"`
	Created   []string `json:"created"`
}

// printJSON outputs data as formatted JSON to stdout
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

// printSuccess outputs a successful JSON response
func printSuccess(data any) {
	printJSON(JSONResponse{Success: true, Data: data})
}

// printJSONError outputs an error as JSON
func printJSONError(err error) {
	printJSON(JSONResponse{Success: false, Error: err.Error()})
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
