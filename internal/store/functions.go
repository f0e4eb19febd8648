package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Function represents a function definition extracted from a source file.
// ClassID is set iff the function is a method of a class.
type Function struct {
	ID           int64
	RepoID       int64
	ClassID      *int64
	Name         string
	Parameters   string
	ReturnType   string
	FileLocation string
	StartLine    int
	EndLine      int
	Docstring    string
}

// InsertFunction inserts a function and returns its assigned id.
func (s *Store) InsertFunction(f *Function) (int64, error) {
	res, err := s.q.Exec(`
		INSERT INTO functions (repo_id, class_id, name, parameters, return_type, file_location, start_line, end_line, docstring)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.RepoID, nullID(f.ClassID), f.Name, nullString(f.Parameters),
		nullString(f.ReturnType), f.FileLocation, f.StartLine, f.EndLine,
		nullString(f.Docstring))
	if err != nil {
		return 0, fmt.Errorf("insert function: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("function id: %w", err)
	}
	return id, nil
}

// GetFunctionDescription returns the docstring of the function matching
// (name, classID). A nil classID is an explicit "no owning class" condition,
// not a wildcard. Returns ErrNotFound when no row matches.
func (s *Store) GetFunctionDescription(name string, classID *int64) (string, error) {
	var doc sql.NullString
	var err error
	if classID != nil {
		err = s.q.QueryRow(
			"SELECT docstring FROM functions WHERE name=? AND class_id=?",
			name, *classID).Scan(&doc)
	} else {
		err = s.q.QueryRow(
			"SELECT docstring FROM functions WHERE name=? AND class_id IS NULL",
			name).Scan(&doc)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("function %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("function description: %w", err)
	}
	return doc.String, nil
}

// FunctionsByRepo returns all functions of a repository.
func (s *Store) FunctionsByRepo(repoID int64) ([]*Function, error) {
	rows, err := s.q.Query(`
		SELECT id, repo_id, class_id, name, parameters, return_type, file_location, start_line, end_line, docstring
		FROM functions WHERE repo_id=? ORDER BY id`, repoID)
	if err != nil {
		return nil, fmt.Errorf("functions by repo: %w", err)
	}
	defer rows.Close()
	var result []*Function
	for rows.Next() {
		f, err := scanFunction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

// CountFunctions returns the number of function rows for a repository.
func (s *Store) CountFunctions(repoID int64) (int, error) {
	var n int
	err := s.q.QueryRow("SELECT COUNT(*) FROM functions WHERE repo_id=?", repoID).Scan(&n)
	return n, err
}

func scanFunction(rows *sql.Rows) (*Function, error) {
	var f Function
	var classID sql.NullInt64
	var params, ret, file, doc sql.NullString
	var start, end sql.NullInt64
	if err := rows.Scan(&f.ID, &f.RepoID, &classID, &f.Name, &params, &ret, &file, &start, &end, &doc); err != nil {
		return nil, err
	}
	if classID.Valid {
		id := classID.Int64
		f.ClassID = &id
	}
	f.Parameters = params.String
	f.ReturnType = ret.String
	f.FileLocation = file.String
	f.StartLine = int(start.Int64)
	f.EndLine = int(end.Int64)
	f.Docstring = doc.String
	return &f, nil
}
