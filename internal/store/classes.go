package store

import (
	"database/sql"
	"fmt"
)

// Class represents a class definition extracted from a source file.
// Attributes holds the serialized "name: type" pairs derived from the
// constructor's parameter list.
type Class struct {
	ID           int64
	RepoID       int64
	Name         string
	Attributes   string
	FileLocation string
	StartLine    int
	EndLine      int
	Docstring    string
}

// InsertClass inserts a class and returns its assigned id.
func (s *Store) InsertClass(c *Class) (int64, error) {
	res, err := s.q.Exec(`
		INSERT INTO classes (repo_id, name, attributes, file_location, start_line, end_line, docstring)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.RepoID, c.Name, nullString(c.Attributes), c.FileLocation,
		c.StartLine, c.EndLine, nullString(c.Docstring))
	if err != nil {
		return 0, fmt.Errorf("insert class: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("class id: %w", err)
	}
	return id, nil
}

// ClassesByRepo returns all classes of a repository.
func (s *Store) ClassesByRepo(repoID int64) ([]*Class, error) {
	rows, err := s.q.Query(`
		SELECT id, repo_id, name, attributes, file_location, start_line, end_line, docstring
		FROM classes WHERE repo_id=? ORDER BY id`, repoID)
	if err != nil {
		return nil, fmt.Errorf("classes by repo: %w", err)
	}
	defer rows.Close()
	var result []*Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// CountClasses returns the number of class rows for a repository.
func (s *Store) CountClasses(repoID int64) (int, error) {
	var n int
	err := s.q.QueryRow("SELECT COUNT(*) FROM classes WHERE repo_id=?", repoID).Scan(&n)
	return n, err
}

func scanClass(rows *sql.Rows) (*Class, error) {
	var c Class
	var attrs, file, doc sql.NullString
	var start, end sql.NullInt64
	if err := rows.Scan(&c.ID, &c.RepoID, &c.Name, &attrs, &file, &start, &end, &doc); err != nil {
		return nil, err
	}
	c.Attributes = attrs.String
	c.FileLocation = file.String
	c.StartLine = int(start.Int64)
	c.EndLine = int(end.Int64)
	c.Docstring = doc.String
	return &c, nil
}
