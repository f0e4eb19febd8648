package discover

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/autocontain/autocontain/internal/lang"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDiscoverFindsPythonFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.py"), "print('hi')\n")
	writeFile(t, filepath.Join(dir, "pkg", "util.py"), "x = 1\n")
	writeFile(t, filepath.Join(dir, "README.md"), "# readme\n")
	writeFile(t, filepath.Join(dir, "pkg", "data.json"), "{}\n")

	files, err := Discover(context.Background(), dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	for _, f := range files {
		if f.Language != lang.Python {
			t.Errorf("expected python, got %s", f.Language)
		}
		if filepath.Ext(f.Path) != ".py" {
			t.Errorf("unexpected file: %s", f.Path)
		}
	}
}

func TestDiscoverEntersHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".hidden", "secret.py"), "y = 2\n")

	files, err := Discover(context.Background(), dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].RelPath != ".hidden/secret.py" {
		t.Errorf("unexpected rel path: %s", files[0].RelPath)
	}
}

func TestDiscoverEmptyDir(t *testing.T) {
	files, err := Discover(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %d", len(files))
	}
}

func TestDiscoverCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"), "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Discover(ctx, dir); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
