package discover

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/autocontain/autocontain/internal/lang"
)

// FileInfo represents a discovered source file.
type FileInfo struct {
	Path     string        // absolute path
	RelPath  string        // relative to repo root
	Language lang.Language // detected language
}

// Discover walks a repository root and returns every file whose extension
// matches a supported source language. Every subdirectory is entered; there
// is no exclusion filtering here (tree presentation concerns live elsewhere).
// Unreadable entries are skipped and logged rather than aborting the walk.
func Discover(ctx context.Context, repoPath string) ([]FileInfo, error) {
	repoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}

	var files []FileInfo

	err = filepath.WalkDir(repoPath, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			slog.Warn("discover.entry.skip", "path", path, "err", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		spec := lang.ForExtension(filepath.Ext(path))
		if spec == nil {
			return nil
		}

		rel, _ := filepath.Rel(repoPath, path)
		files = append(files, FileInfo{
			Path:     path,
			RelPath:  filepath.ToSlash(rel),
			Language: spec.Language,
		})
		return nil
	})

	return files, err
}
