package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions provides utilities for asserting file system state in tests.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		baseDir: baseDir,
	}
}

// AssertFileExists validates that a file exists.
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist.
func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains expected content.
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)

	// #nosec G304 - test helper, paths are controlled by test code
	content, err := os.ReadFile(fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fullPath, err)
		return fa
	}
	if !strings.Contains(string(content), expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s",
			relativePath, expectedContent, string(content))
	}
	return fa
}

// AssertNoTempFiles validates that no atomic-write temporaries were left in the directory.
func (fa *FileAssertions) AssertNoTempFiles() *FileAssertions {
	fa.t.Helper()
	entries, err := os.ReadDir(fa.baseDir)
	if err != nil {
		fa.t.Errorf("Failed to read directory %s: %v", fa.baseDir, err)
		return fa
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			fa.t.Errorf("Temporary file left behind: %s", e.Name())
		}
	}
	return fa
}
