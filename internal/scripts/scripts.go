// Package scripts materializes generated container files under a
// repository's scripts directory and executes the generated run script.
package scripts

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RunScriptName is the filename of the generated run script.
const RunScriptName = "run.sh"

// AnalysisFileName is the filename of the stored documentation analysis.
const AnalysisFileName = "analysis.md"

// WriteDockerFiles writes each collected or generated docker-related file
// into dir.
func WriteDockerFiles(dir string, files map[string]string) error {
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		slog.Info("scripts.write", "file", name)
	}
	return nil
}

// WriteRunScript writes the generated run script into dir and returns its
// path.
func WriteRunScript(dir, content string) (string, error) {
	path := filepath.Join(dir, RunScriptName)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return "", fmt.Errorf("write run script: %w", err)
	}
	return path, nil
}

// WriteAnalysis stores the documentation analysis next to the scripts.
func WriteAnalysis(dir, content string) error {
	if err := os.WriteFile(filepath.Join(dir, AnalysisFileName), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write analysis: %w", err)
	}
	return nil
}

// ReadAnalysis returns the stored documentation analysis.
func ReadAnalysis(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, AnalysisFileName))
	if err != nil {
		return "", fmt.Errorf("read analysis: %w", err)
	}
	return string(data), nil
}

// Run executes a run script one line at a time through the shell, skipping
// blank lines and comments. Execution stops at the first failing command.
func Run(ctx context.Context, scriptPath string) error {
	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		command := strings.TrimSpace(scanner.Text())
		if command == "" || strings.HasPrefix(command, "#") {
			continue
		}

		slog.Info("scripts.exec", "command", command)
		cmd := exec.CommandContext(ctx, "sh", "-c", command)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("command %q: %w", command, err)
		}
	}
	return scanner.Err()
}
