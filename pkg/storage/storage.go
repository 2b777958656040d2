// Package storage defines the minimal file collaborator consumed by the
// version ledger and the reference synchronizer. It knows nothing about
// YAML, Markdown or version logs; it reads and writes text.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage is the key-value text file collaborator. I/O failures propagate
// to the caller unretried.
type Storage interface {
	ReadFile(path string) (string, error)
	WriteFile(path string, content string) error
	FileExists(path string) bool
}

// Disk is the os-backed Storage used outside of tests.
type Disk struct{}

// NewDisk returns a Storage backed by the local file system.
func NewDisk() Disk {
	return Disk{}
}

// ReadFile returns the file's content as text.
func (Disk) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile replaces the file's content, creating parent directories as
// needed.
func (Disk) WriteFile(path string, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func (Disk) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
