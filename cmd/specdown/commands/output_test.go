package commands

import (
	"encoding/json"
	"testing"

	"specdown/pkg/syncer"
)

func TestJSONResponse_Success(t *testing.T) {
	resp := JSONResponse{
		Success: true,
		Data:    map[string]string{"key": "value"},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded JSONResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if !decoded.Success {
		t.Error("Expected Success to be true")
	}
	if decoded.Error != "" {
		t.Error("Expected Error to be empty for success response")
	}
}

func TestJSONResponse_Error(t *testing.T) {
	resp := JSONResponse{
		Success: false,
		Error:   "something went wrong",
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded JSONResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if decoded.Success {
		t.Error("Expected Success to be false")
	}
	if decoded.Error != "something went wrong" {
		t.Errorf("Error mismatch: got %q", decoded.Error)
	}
}

func TestBumpOutput_JSON(t *testing.T) {
	output := BumpOutput{
		Version: "1.1.0",
		Level:   "minor",
		Notes:   "new endpoints",
		Updated: []syncer.FileUpdate{
			{Path: "specdown.yaml", OldVersion: "1.0.0", NewVersion: "1.1.0"},
			{Path: "README.md", OldVersion: "1.0.0", NewVersion: "1.1.0"},
		},
	}

	data, err := json.Marshal(output)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded BumpOutput
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if decoded.Version != "1.1.0" {
		t.Errorf("Version = %q, want 1.1.0", decoded.Version)
	}
	if len(decoded.Updated) != 2 {
		t.Errorf("Updated has %d entries, want 2", len(decoded.Updated))
	}
}

func TestValidateOutput_OmitsEmptyError(t *testing.T) {
	data, err := json.Marshal(ValidateOutput{Valid: true, Entries: 3})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(data) != `{"valid":true,"entries":3}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero bytes", 0, "0 B"},
		{"bytes", 500, "500 B"},
		{"kilobytes", 2048, "2.00 KB"},
		{"megabytes", 5 * 1024 * 1024, "5.00 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatBytes(tt.bytes); got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
