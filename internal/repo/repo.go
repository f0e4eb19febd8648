// Package repo manages local copies of analyzed repositories: validating
// and cloning GitHub links, the persist-tag lifecycle, and cleanup of
// untagged working directories.
package repo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"

	"github.com/autocontain/autocontain/internal/config"
)

// Manager owns the source and scripts directories plus the tag registry.
type Manager struct {
	sourceDir  string
	scriptsDir string
	tagsFile   string
	httpClient *http.Client
}

// NewManager creates a Manager from configuration.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		sourceDir:  cfg.SourceDir,
		scriptsDir: cfg.ScriptsDir,
		tagsFile:   cfg.TagsFile,
		httpClient: http.DefaultClient,
	}
}

// NameFromLink derives the repository name from a GitHub link.
func NameFromLink(link string) string {
	link = strings.TrimSuffix(strings.TrimRight(link, "/"), ".git")
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}

// CheckRemote reports whether the GitHub repository behind link exists,
// by probing it over HTTP.
func (m *Manager) CheckRemote(ctx context.Context, link string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("check remote: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode != http.StatusNotFound, nil
}

// Clone clones link into <sourceDir>/<name>, skipping the clone when a
// local copy already exists, and updates the persist tag. Returns the
// repository name and its local path.
func (m *Manager) Clone(ctx context.Context, link string, persist bool) (string, string, error) {
	if err := os.MkdirAll(m.sourceDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create source dir: %w", err)
	}

	name := NameFromLink(link)
	localPath := filepath.Join(m.sourceDir, name)

	if _, err := os.Stat(localPath); err == nil {
		slog.Info("repo.clone.skip", "repo", name, "reason", "exists")
	} else {
		slog.Info("repo.clone.start", "repo", name, "path", localPath)
		if _, err := git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{
			URL: link,
		}); err != nil {
			return "", "", fmt.Errorf("clone %s: %w", link, err)
		}
		slog.Info("repo.clone.done", "repo", name)
	}

	if err := m.SetPersist(name, persist); err != nil {
		return "", "", err
	}
	return name, localPath, nil
}

// SetPersist adds or removes the repository's persist tag.
func (m *Manager) SetPersist(name string, persist bool) error {
	tags, err := m.loadTags()
	if err != nil {
		return err
	}
	if persist {
		tags[name] = true
	} else {
		delete(tags, name)
	}
	return m.saveTags(tags)
}

// Tagged reports whether the repository carries a persist tag.
func (m *Manager) Tagged(name string) (bool, error) {
	tags, err := m.loadTags()
	if err != nil {
		return false, err
	}
	return tags[name], nil
}

// Remove deletes a repository's source and scripts directories and drops
// its tag, regardless of persist state.
func (m *Manager) Remove(name string) error {
	for _, dir := range []string{m.sourceDir, m.scriptsDir} {
		path := filepath.Join(dir, name)
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return m.SetPersist(name, false)
}

// Cleanup removes every untagged subdirectory under the source and scripts
// directories.
func (m *Manager) Cleanup() error {
	tags, err := m.loadTags()
	if err != nil {
		return err
	}
	for _, dir := range []string{m.sourceDir, m.scriptsDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() || tags[entry.Name()] {
				continue
			}
			slog.Info("repo.cleanup", "dir", dir, "repo", entry.Name())
			if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
				return fmt.Errorf("cleanup %s: %w", entry.Name(), err)
			}
		}
	}
	return nil
}

// ScriptsPath returns the scripts directory for a repository, creating it.
func (m *Manager) ScriptsPath(name string) (string, error) {
	path := filepath.Join(m.scriptsDir, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("create scripts dir: %w", err)
	}
	return path, nil
}

func (m *Manager) loadTags() (map[string]bool, error) {
	tags := map[string]bool{}
	data, err := os.ReadFile(m.tagsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return tags, nil
		}
		return nil, fmt.Errorf("load tags: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			tags[line] = true
		}
	}
	return tags, nil
}

func (m *Manager) saveTags(tags map[string]bool) error {
	var b strings.Builder
	for name := range tags {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(m.tagsFile, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}
