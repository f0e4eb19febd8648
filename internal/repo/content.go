package repo

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Content is what a repository scan yields for the analysis agents:
// merged markdown documentation and any container-definition files.
type Content struct {
	Markdown      string
	MarkdownCount int
	DockerFiles   map[string]string // filename -> content
}

// ScanContent recursively collects the repository's markdown documentation
// and docker-related files. Compose files are recognized by a top-level
// "services" key rather than by filename alone.
func ScanContent(root string) (*Content, error) {
	c := &Content{DockerFiles: map[string]string{}}
	var md strings.Builder

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			slog.Warn("repo.scan.skip", "path", path, "err", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		switch {
		case strings.HasSuffix(name, ".md"):
			data, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("repo.scan.skip", "path", path, "err", err)
				return nil
			}
			c.MarkdownCount++
			md.Write(data)
			md.WriteString("\n\n")
		case name == "Dockerfile":
			data, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("repo.scan.skip", "path", path, "err", err)
				return nil
			}
			c.DockerFiles[name] = string(data)
		case strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml"):
			data, err := os.ReadFile(path)
			if err != nil {
				slog.Warn("repo.scan.skip", "path", path, "err", err)
				return nil
			}
			if isComposeFile(data) {
				c.DockerFiles[name] = string(data)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	c.Markdown = md.String()
	return c, nil
}

// isComposeFile reports whether yaml content declares a top-level
// "services" mapping, the docker-compose convention.
func isComposeFile(data []byte) bool {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}
	_, ok := doc["services"]
	return ok
}

// RenderTree renders the directory structure under path with branch glyphs,
// one entry per line.
func RenderTree(path string) string {
	var b strings.Builder
	renderTree(&b, path, "")
	return b.String()
}

func renderTree(b *strings.Builder, path, prefix string) {
	entries, err := os.ReadDir(path)
	if err != nil {
		fmt.Fprintf(b, "%s(unreadable: %v)\n", prefix, err)
		return
	}
	for i, entry := range entries {
		last := i == len(entries)-1
		branch := "├─ "
		childPrefix := prefix + "│ "
		if last {
			branch = "└─ "
			childPrefix = prefix + "  "
		}
		fmt.Fprintf(b, "%s%s%s\n", prefix, branch, entry.Name())
		if entry.IsDir() {
			renderTree(b, filepath.Join(path, entry.Name()), childPrefix)
		}
	}
}
