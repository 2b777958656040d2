package syncer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"specdown/internal/semver"
	"specdown/pkg/storage"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup write %s failed: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s failed: %v", path, err)
	}
	return string(data)
}

func newTestSyncer(t *testing.T) (*Synchronizer, string, string) {
	t.Helper()
	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "specdown.yaml")
	readme := filepath.Join(tmpDir, "README.md")

	s := New(storage.NewDisk(), []Reference{
		{Path: manifest, Strategy: StrategyManifest},
		{Path: readme, Strategy: StrategyFreeText},
	})
	return s, manifest, readme
}

func TestDetectAndUpdate_UpdatesBothStrategies(t *testing.T) {
	s, manifest, readme := newTestSyncer(t)
	writeFile(t, manifest, "name: demo\nversion: 1.0.0\nspec: openapi.yaml\n")
	writeFile(t, readme, "# Demo\n\nCurrent version: 1.0.0 of the API docs.\n")

	updates, err := s.DetectAndUpdate(context.Background(), "1.1.0")
	if err != nil {
		t.Fatalf("DetectAndUpdate failed: %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("got %d updates, want 2", len(updates))
	}

	for _, u := range updates {
		if u.OldVersion != "1.0.0" || u.NewVersion != "1.1.0" {
			t.Errorf("update %+v, want 1.0.0 -> 1.1.0", u)
		}
	}

	if got := readFile(t, manifest); !strings.Contains(got, "version: 1.1.0") {
		t.Errorf("manifest not rewritten:\n%s", got)
	}
	if got := readFile(t, readme); !strings.Contains(got, "version: 1.1.0") {
		t.Errorf("readme not rewritten:\n%s", got)
	}
}

func TestDetectAndUpdate_SecondRunIsEmpty(t *testing.T) {
	s, manifest, readme := newTestSyncer(t)
	writeFile(t, manifest, "version: 1.0.0\n")
	writeFile(t, readme, "version: 1.0.0\n")

	if _, err := s.DetectAndUpdate(context.Background(), "1.1.0"); err != nil {
		t.Fatalf("first DetectAndUpdate failed: %v", err)
	}

	updates, err := s.DetectAndUpdate(context.Background(), "1.1.0")
	if err != nil {
		t.Fatalf("second DetectAndUpdate failed: %v", err)
	}
	if len(updates) != 0 {
		t.Errorf("second run applied %d updates, want 0", len(updates))
	}
}

func TestDetectAndUpdate_NeverDowngrades(t *testing.T) {
	s, manifest, _ := newTestSyncer(t)
	writeFile(t, manifest, "version: 2.0.0\n")

	updates, err := s.DetectAndUpdate(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("DetectAndUpdate failed: %v", err)
	}
	if len(updates) != 0 {
		t.Errorf("applied %d updates, want 0 (file already ahead)", len(updates))
	}
	if got := readFile(t, manifest); !strings.Contains(got, "2.0.0") {
		t.Errorf("file ahead of target was modified:\n%s", got)
	}
}

func TestDetectAndUpdate_InvalidTargetFailsBeforeTouchingFiles(t *testing.T) {
	s, manifest, _ := newTestSyncer(t)
	original := "version: 1.0.0\n"
	writeFile(t, manifest, original)

	_, err := s.DetectAndUpdate(context.Background(), "1.2")
	if err == nil {
		t.Fatal("DetectAndUpdate should reject an invalid target version")
	}
	if !errors.Is(err, semver.ErrInvalid) {
		t.Errorf("error = %v, want ErrInvalid", err)
	}
	if got := readFile(t, manifest); got != original {
		t.Errorf("file was modified despite invalid target:\n%s", got)
	}
}

func TestDetectAndUpdate_MissingFileWarnsAndSkips(t *testing.T) {
	s, manifest, _ := newTestSyncer(t)
	writeFile(t, manifest, "version: 0.1.0\n")
	// README.md intentionally absent

	var warnings []string
	s.Logf = func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	updates, err := s.DetectAndUpdate(context.Background(), "0.2.0")
	if err != nil {
		t.Fatalf("DetectAndUpdate failed: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("got %d updates, want 1 (manifest only)", len(updates))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "not found") {
		t.Errorf("warnings = %v, want one missing-file warning", warnings)
	}
}

func TestDetectAndUpdate_WarningsAreSerialized(t *testing.T) {
	// Every reference is missing, so all workers warn at once. The hook
	// appends to a plain slice; calls must be serialized for this to hold
	// up under the race detector.
	tmpDir := t.TempDir()
	var refs []Reference
	for i := 0; i < 8; i++ {
		refs = append(refs, Reference{
			Path:     filepath.Join(tmpDir, fmt.Sprintf("notes-%d.md", i)),
			Strategy: StrategyFreeText,
		})
	}
	s := New(storage.NewDisk(), refs)

	var warnings []string
	s.Logf = func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	updates, err := s.DetectAndUpdate(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("DetectAndUpdate failed: %v", err)
	}
	if len(updates) != 0 {
		t.Errorf("got %d updates, want 0", len(updates))
	}
	if len(warnings) != len(refs) {
		t.Errorf("got %d warnings, want %d", len(warnings), len(refs))
	}
}

func TestDetectAndUpdate_UnparseableEmbeddedVersionSkipped(t *testing.T) {
	s, manifest, _ := newTestSyncer(t)
	writeFile(t, manifest, "version: not-a-version\n")

	var warnings []string
	s.Logf = func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	updates, err := s.DetectAndUpdate(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("DetectAndUpdate failed: %v", err)
	}
	if len(updates) != 0 {
		t.Errorf("got %d updates, want 0", len(updates))
	}
	if len(warnings) == 0 {
		t.Error("expected a warning for the unparseable embedded version")
	}
}

func TestManifestReplace_PreservesOtherFields(t *testing.T) {
	s, manifest, _ := newTestSyncer(t)
	writeFile(t, manifest, strings.Join([]string{
		"name: petstore-docs",
		"version: 0.9.0",
		"spec: api/openapi.yaml",
		"output: docs/",
		"",
	}, "\n"))

	if _, err := s.DetectAndUpdate(context.Background(), "1.0.0"); err != nil {
		t.Fatalf("DetectAndUpdate failed: %v", err)
	}

	got := readFile(t, manifest)
	for _, want := range []string{"name: petstore-docs", "version: 1.0.0", "spec: api/openapi.yaml", "output: docs/"} {
		if !strings.Contains(got, want) {
			t.Errorf("rewritten manifest missing %q:\n%s", want, got)
		}
	}
}

func TestFreeTextReplace_KeepsMarkerAndLaterMatches(t *testing.T) {
	content := "Release Version: 0.3.0 supersedes v0.2.0 entirely.\n"
	got, err := freeTextReplace(content, "0.4.0")
	if err != nil {
		t.Fatalf("freeTextReplace failed: %v", err)
	}

	// First match only; marker text stays verbatim.
	want := "Release Version: 0.4.0 supersedes v0.2.0 entirely.\n"
	if got != want {
		t.Errorf("freeTextReplace = %q, want %q", got, want)
	}
}

func TestFreeTextReplace_SubstitutesVersionSpanVerbatim(t *testing.T) {
	// The rewritten span must be exactly the new version: no remnant of the
	// old digits, no duplicated marker.
	got, err := freeTextReplace("version=1.2.3", "10.0.0")
	if err != nil {
		t.Fatalf("freeTextReplace failed: %v", err)
	}
	if got != "version=10.0.0" {
		t.Errorf("freeTextReplace = %q, want %q", got, "version=10.0.0")
	}
}

func TestFreeTextDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"colon marker", "version: 1.2.3", "1.2.3", true},
		{"equals marker", "VERSION=4.5.6", "4.5.6", true},
		{"v prefix", "released as v2.0.1 today", "2.0.1", true},
		{"first of several", "v1.0.0 then v2.0.0", "1.0.0", true},
		{"bare triple without marker", "1.2.3", "", false},
		{"no version at all", "nothing here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := freeTextDetect(tt.content)
			if ok != tt.ok || got != tt.want {
				t.Errorf("freeTextDetect(%q) = (%q, %v), want (%q, %v)", tt.content, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestManifestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"plain field", "version: 1.2.3\n", "1.2.3", true},
		{"quoted field", "version: \"1.2.3\"\n", "1.2.3", true},
		{"among other keys", "name: x\nversion: 0.1.0\n", "0.1.0", true},
		{"missing field", "name: x\n", "", false},
		{"not a mapping", "- a\n- b\n", "", false},
		{"invalid yaml", "version: [unclosed\n", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := manifestDetect(tt.content)
			if ok != tt.ok || got != tt.want {
				t.Errorf("manifestDetect(%q) = (%q, %v), want (%q, %v)", tt.content, got, ok, tt.want, tt.ok)
			}
		})
	}
}
