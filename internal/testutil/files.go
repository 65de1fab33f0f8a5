package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFiles writes each relative path to content pair under root, creating
// the parent directories as needed.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for path, content := range files {
		full := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("couldn't create the directory for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("couldn't write %s: %v", path, err)
		}
	}
}

// MakeDirs creates each directory under root.
func MakeDirs(t *testing.T, root string, dirs ...string) {
	t.Helper()

	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("couldn't create the directory %s: %v", dir, err)
		}
	}
}
