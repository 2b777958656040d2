package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDisk_ReadWriteRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "notes.txt")
	disk := NewDisk()

	if err := disk.WriteFile(path, "hello\n"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := disk.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got != "hello\n" {
		t.Errorf("ReadFile = %q, want %q", got, "hello\n")
	}
}

func TestDisk_WriteCreatesParentDirs(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "docs", "api", "index.md")
	disk := NewDisk()

	if err := disk.WriteFile(path, "# API"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !disk.FileExists(path) {
		t.Errorf("FileExists(%s) = false after write", path)
	}
}

func TestDisk_ReadMissingFile(t *testing.T) {
	disk := NewDisk()
	if _, err := disk.ReadFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("ReadFile should fail for a missing file")
	}
}

func TestDisk_FileExists(t *testing.T) {
	tmpDir := t.TempDir()
	disk := NewDisk()

	if disk.FileExists(filepath.Join(tmpDir, "absent.txt")) {
		t.Error("FileExists should be false for a missing file")
	}

	// Directories are not files
	if disk.FileExists(tmpDir) {
		t.Error("FileExists should be false for a directory")
	}

	path := filepath.Join(tmpDir, "present.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("setup write failed: %v", err)
	}
	if !disk.FileExists(path) {
		t.Error("FileExists should be true for an existing file")
	}
}
