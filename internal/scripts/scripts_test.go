package scripts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDockerFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Dockerfile":         "FROM python:3.12\n",
		"docker-compose.yml": "services: {}\n",
	}
	if err := WriteDockerFiles(dir, files); err != nil {
		t.Fatalf("WriteDockerFiles: %v", err)
	}
	for name, want := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(data) != want {
			t.Errorf("%s content mismatch: %q", name, data)
		}
	}
}

func TestAnalysisRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := WriteAnalysis(dir, "summary text"); err != nil {
		t.Fatalf("WriteAnalysis: %v", err)
	}
	got, err := ReadAnalysis(dir)
	if err != nil {
		t.Fatalf("ReadAnalysis: %v", err)
	}
	if got != "summary text" {
		t.Errorf("unexpected analysis: %q", got)
	}
}

func TestRunSkipsCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "touched")
	script := "# setup\n\necho hello\ntouch " + marker + "\n"
	path, err := WriteRunScript(dir, script)
	if err != nil {
		t.Fatalf("WriteRunScript: %v", err)
	}

	if err := Run(context.Background(), path); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Error("expected marker file from script execution")
	}
}

func TestRunStopsOnFailure(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "after")
	path, err := WriteRunScript(dir, "false\ntouch "+marker+"\n")
	if err != nil {
		t.Fatalf("WriteRunScript: %v", err)
	}

	if err := Run(context.Background(), path); err == nil {
		t.Fatal("expected error from failing command")
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Error("commands after a failure must not run")
	}
}
