// Package fileio is the file I/O collaborator used to read component
// descriptors and HTML documents and to write rendered output.
package fileio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrRead wraps failures opening or reading a file.
	ErrRead = errors.New("fileio: read failed")
	// ErrWrite wraps failures creating or writing a file.
	ErrWrite = errors.New("fileio: write failed")
)

// FileSystem reads and writes whole files as text.
type FileSystem interface {
	ReadFileAsString(path string) (string, error)
	WriteToFile(path, text string) error
}

// OS is the FileSystem backed by the host file system.
type OS struct{}

// Default is the shared host file system.
var Default FileSystem = OS{}

func (OS) ReadFileAsString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	return string(data), nil
}

func (OS) WriteToFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}

// Memory is an in-memory FileSystem, mostly useful in tests.
type Memory struct {
	Files map[string]string
}

// NewMemory seeds a Memory file system with the provided files.
func NewMemory(files map[string]string) *Memory {
	m := &Memory{Files: make(map[string]string, len(files))}
	for path, text := range files {
		m.Files[filepath.Clean(path)] = text
	}
	return m
}

func (m *Memory) ReadFileAsString(path string) (string, error) {
	text, ok := m.Files[filepath.Clean(path)]
	if !ok {
		return "", fmt.Errorf("%w: %s: %w", ErrRead, path, os.ErrNotExist)
	}
	return text, nil
}

func (m *Memory) WriteToFile(path, text string) error {
	if m.Files == nil {
		m.Files = make(map[string]string)
	}
	m.Files[filepath.Clean(path)] = text
	return nil
}
