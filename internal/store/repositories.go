package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Repository represents one indexed code repository.
type Repository struct {
	ID          int64
	Name        string
	Description string
}

// InsertRepository inserts a repository and returns its assigned id.
// Ids are auto-assigned and monotonically increasing.
func (s *Store) InsertRepository(r *Repository) (int64, error) {
	res, err := s.q.Exec(
		"INSERT INTO repositories (name, description) VALUES (?, ?)",
		r.Name, nullString(r.Description))
	if err != nil {
		return 0, fmt.Errorf("insert repository: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("repository id: %w", err)
	}
	return id, nil
}

// GetRepositoryByName returns the repository with the given name.
func (s *Store) GetRepositoryByName(name string) (*Repository, error) {
	var r Repository
	var desc sql.NullString
	err := s.q.QueryRow(
		"SELECT id, name, description FROM repositories WHERE name=?", name).
		Scan(&r.ID, &r.Name, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("repository %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get repository: %w", err)
	}
	r.Description = desc.String
	return &r, nil
}

// ListRepositories returns all repositories ordered by name.
func (s *Store) ListRepositories() ([]*Repository, error) {
	rows, err := s.q.Query("SELECT id, name, description FROM repositories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	defer rows.Close()
	var result []*Repository
	for rows.Next() {
		var r Repository
		var desc sql.NullString
		if err := rows.Scan(&r.ID, &r.Name, &desc); err != nil {
			return nil, err
		}
		r.Description = desc.String
		result = append(result, &r)
	}
	return result, rows.Err()
}

// DeleteRepository removes a repository and every row that belongs to it.
// Dependency edges are keyed by caller name and owning class rather than a
// function id, so edges are matched through the repository's classes and its
// class-less function names.
func (s *Store) DeleteRepository(id int64) error {
	_, err := s.q.Exec(`
		DELETE FROM function_dependencies
		WHERE class_id IN (SELECT id FROM classes WHERE repo_id=?)
		   OR (class_id IS NULL AND function_name IN
		       (SELECT name FROM functions WHERE repo_id=? AND class_id IS NULL))`,
		id, id)
	if err != nil {
		return fmt.Errorf("delete dependencies: %w", err)
	}
	if _, err := s.q.Exec("DELETE FROM functions WHERE repo_id=?", id); err != nil {
		return fmt.Errorf("delete functions: %w", err)
	}
	if _, err := s.q.Exec("DELETE FROM classes WHERE repo_id=?", id); err != nil {
		return fmt.Errorf("delete classes: %w", err)
	}
	if _, err := s.q.Exec("DELETE FROM repositories WHERE id=?", id); err != nil {
		return fmt.Errorf("delete repository: %w", err)
	}
	return nil
}
