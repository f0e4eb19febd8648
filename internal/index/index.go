// Package index turns a repository's Python sources into rows in the
// relational store: one Class per class definition, one Function per
// function or method definition, and one dependency edge per unique callee.
package index

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/autocontain/autocontain/internal/discover"
	"github.com/autocontain/autocontain/internal/lang"
	"github.com/autocontain/autocontain/internal/parser"
	"github.com/autocontain/autocontain/internal/store"
)

// Indexer drives a single-threaded indexing run over one repository.
type Indexer struct {
	store *store.Store
}

// New creates an Indexer backed by the given store.
func New(s *store.Store) *Indexer {
	return &Indexer{store: s}
}

// IndexRepository inserts a repository record, parses every supported source
// file under repoPath and persists the extracted entities. Unreadable or
// unparseable files are skipped and logged; store failures abort the run.
// Returns the assigned repository id.
func (ix *Indexer) IndexRepository(ctx context.Context, name, repoPath string) (int64, error) {
	slog.Info("index.start", "repo", name, "path", repoPath)

	repoID, err := ix.store.InsertRepository(&store.Repository{Name: name})
	if err != nil {
		return 0, fmt.Errorf("insert repository: %w", err)
	}

	files, err := discover.Discover(ctx, repoPath)
	if err != nil {
		return 0, fmt.Errorf("discover: %w", err)
	}
	slog.Info("index.discovered", "repo", name, "files", len(files))

	indexed := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := ix.indexFile(ctx, repoID, f); err != nil {
			return 0, err
		}
		indexed++
	}

	slog.Info("index.done", "repo", name, "id", repoID, "files", indexed)
	return repoID, nil
}

// indexFile parses one file and writes its entities in a single transaction,
// so a store failure mid-file never leaves half a file behind.
func (ix *Indexer) indexFile(ctx context.Context, repoID int64, f discover.FileInfo) error {
	source, err := os.ReadFile(f.Path)
	if err != nil {
		slog.Warn("index.file.skip", "path", f.Path, "reason", "read", "err", err)
		return nil
	}

	spec := lang.ForLanguage(f.Language)
	if spec == nil {
		slog.Warn("index.file.skip", "path", f.Path, "reason", "no language spec")
		return nil
	}

	tree, err := parser.Parse(f.Language, source)
	if err != nil {
		slog.Warn("index.file.skip", "path", f.Path, "reason", "parse", "err", err)
		return nil
	}
	defer tree.Close()

	return ix.store.WithTransaction(ctx, func(tx *store.Store) error {
		ext := &extractor{
			store:  tx,
			spec:   spec,
			source: source,
			repoID: repoID,
			file:   f.RelPath,
		}
		return ext.extractModule(tree.RootNode())
	})
}
